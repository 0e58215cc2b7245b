package domain

import "testing"

func TestResolve(t *testing.T) {
	t.Parallel()

	lists := Lists{
		Whitelist: []string{"bank.example", "*.gov.example"},
		Blacklist: []string{"scam.example", "bank.example"},
	}

	tests := []struct {
		name   string
		domain string
		want   Membership
	}{
		{name: "only blacklisted", domain: "scam.example", want: Membership{Blacklisted: true}},
		{name: "only whitelisted", domain: "portal.gov.example", want: Membership{Whitelisted: true}},
		{name: "in both lists", domain: "www.bank.example", want: Membership{Whitelisted: true, Blacklisted: true}},
		{name: "in neither list", domain: "news.example", want: Membership{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Resolve(tt.domain, lists); got != tt.want {
				t.Errorf("Resolve(%q) = %+v, want %+v", tt.domain, got, tt.want)
			}
		})
	}

	t.Run("empty lists mean no membership", func(t *testing.T) {
		t.Parallel()
		if got := Resolve("scam.example", Lists{}); got != (Membership{}) {
			t.Errorf("expected no membership, got %+v", got)
		}
	})
}

func TestListsClone(t *testing.T) {
	t.Parallel()

	orig := Lists{Whitelist: []string{"a.example"}, Blacklist: []string{"b.example"}}
	clone := orig.Clone()
	clone.Whitelist[0] = "changed.example"
	clone.Blacklist = append(clone.Blacklist, "c.example")

	if orig.Whitelist[0] != "a.example" {
		t.Errorf("clone shares whitelist storage: %v", orig.Whitelist)
	}
	if len(orig.Blacklist) != 1 {
		t.Errorf("clone shares blacklist storage: %v", orig.Blacklist)
	}
}
