package guard

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/scamguard/internal/blocking"
	"github.com/nao1215/scamguard/internal/config"
	"github.com/nao1215/scamguard/internal/model"
)

func TestDecide(t *testing.T) {
	t.Parallel()

	defaults := config.DefaultSettings()

	dangerOnly := config.DefaultSettings()
	dangerOnly.NotifyThreshold = model.StatusDanger

	quiet := config.DefaultSettings()
	quiet.Notifications = false
	quiet.AutoBlock = false

	customRedirect := config.DefaultSettings()
	customRedirect.Redirect = &blocking.Redirect{URL: "https://warning.example/blocked"}

	result := func(score int, status model.Status) *model.ScanResult {
		return &model.ScanResult{Score: score, Status: status}
	}

	tests := []struct {
		name     string
		settings config.Settings
		result   *model.ScanResult
		want     Decision
	}{
		{name: "nil result", settings: defaults, result: nil, want: Decision{}},
		{name: "invalid status", settings: defaults, result: result(80, "bogus"), want: Decision{}},
		{name: "negative score", settings: defaults, result: result(-1, model.StatusSafe), want: Decision{}},
		{name: "safe", settings: defaults, result: result(10, model.StatusSafe), want: Decision{}},
		{name: "warning notifies", settings: defaults, result: result(55, model.StatusWarning), want: Decision{Notify: true}},
		{
			name:     "danger notifies and blocks",
			settings: defaults,
			result:   result(95, model.StatusDanger),
			want:     Decision{Notify: true, Block: true, RedirectTo: blocking.DefaultExtensionPath},
		},
		{name: "danger threshold ignores warning", settings: dangerOnly, result: result(55, model.StatusWarning), want: Decision{}},
		{
			name:     "danger threshold notifies danger",
			settings: dangerOnly,
			result:   result(70, model.StatusDanger),
			want:     Decision{Notify: true, Block: true, RedirectTo: blocking.DefaultExtensionPath},
		},
		{name: "everything disabled", settings: quiet, result: result(95, model.StatusDanger), want: Decision{}},
		{
			name:     "custom redirect",
			settings: customRedirect,
			result:   result(70, model.StatusDanger),
			want:     Decision{Notify: true, Block: true, RedirectTo: "https://warning.example/blocked"},
		},
		{
			name:     "unset threshold behaves like warning",
			settings: config.Settings{Notifications: true},
			result:   result(40, model.StatusWarning),
			want:     Decision{Notify: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Decide(tt.settings, tt.result)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decide() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
