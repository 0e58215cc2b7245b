package model

import "testing"

func TestStatus(t *testing.T) {
	t.Parallel()

	t.Run("String returns correct value", func(t *testing.T) {
		t.Parallel()
		if got := StatusDanger.String(); got != "danger" {
			t.Errorf("expected danger, got %s", got)
		}
		if got := Status("bogus").String(); got != "unknown" {
			t.Errorf("expected unknown, got %s", got)
		}
	})

	t.Run("IsValid returns true for known statuses", func(t *testing.T) {
		t.Parallel()
		for _, s := range []Status{StatusSafe, StatusWarning, StatusDanger} {
			if !s.IsValid() {
				t.Errorf("expected %q to be valid", s)
			}
		}
		if Status("").IsValid() {
			t.Error("expected empty status to be invalid")
		}
	})

	t.Run("Rank orders by risk", func(t *testing.T) {
		t.Parallel()
		if !(StatusSafe.Rank() < StatusWarning.Rank() && StatusWarning.Rank() < StatusDanger.Rank()) {
			t.Error("expected safe < warning < danger")
		}
		if Status("").Rank() >= StatusSafe.Rank() {
			t.Error("expected invalid status to rank below safe")
		}
	})

	t.Run("ParseStatus parses correctly", func(t *testing.T) {
		t.Parallel()
		if got := ParseStatus("warn"); got != StatusWarning {
			t.Errorf("expected warning, got %v", got)
		}
		if got := ParseStatus("danger"); got != StatusDanger {
			t.Errorf("expected danger, got %v", got)
		}
		if got := ParseStatus("invalid"); got != "" {
			t.Errorf("expected empty status, got %v", got)
		}
	})
}
