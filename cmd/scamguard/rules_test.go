package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/scamguard/internal/blocking"
)

func TestRulesCompileCmd(t *testing.T) {
	t.Parallel()

	const cfg = `settings:
  redirect:
    url: https://warn.example/blocked
whitelist:
  - safe.example
blacklist:
  - scam.example
  - "*.phish.example"
  - safe.example
`

	t.Run("prints rules as JSON", func(t *testing.T) {
		t.Parallel()

		w := newWorkspace(t, cfg)
		out := w.mustRun(t, "rules", "compile")

		var got []blocking.Rule
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, out)
		}
		want := blocking.Compile(
			[]string{"scam.example", "*.phish.example", "safe.example"},
			[]string{"safe.example"},
			blocking.Redirect{URL: "https://warn.example/blocked"},
		)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("rules mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("writes rules file and records activity", func(t *testing.T) {
		t.Parallel()

		w := newWorkspace(t, cfg)
		path := filepath.Join(w.dir, "rules.json")
		out := w.mustRun(t, "rules", "compile", "-o", path)
		if !strings.Contains(out, "Wrote 3 rules to") {
			t.Errorf("unexpected output: %q", out)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("rules file missing: %v", err)
		}

		activity := w.mustRun(t, "history", "--activity")
		if !strings.Contains(activity, "rules_compiled") {
			t.Errorf("expected rules_compiled activity:\n%s", activity)
		}
	})
}
