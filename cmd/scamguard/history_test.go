package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	w := newWorkspace(t, "")
	contentFile := filepath.Join(w.dir, "page.txt")
	if err := os.WriteFile(contentFile, []byte("claim your prize, send your bvn"), 0600); err != nil {
		t.Fatal(err)
	}
	w.mustRun(t, "scan", "--content-file", contentFile, "http://www.prize.example/claim")
	w.mustRun(t, "scan", "--content-file", contentFile, "https://other.example")
	w.mustRun(t, "list", "add", "whitelist", "other.example")

	t.Run("lists recent results", func(t *testing.T) {
		out := w.mustRun(t, "history")
		for _, want := range []string{"http://www.prize.example/claim", "https://other.example", "TOTAL:   2 pages"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in:\n%s", want, out)
			}
		}
	})

	t.Run("filters by domain", func(t *testing.T) {
		out := w.mustRun(t, "history", "WWW.Prize.Example")
		if !strings.Contains(out, "prize.example/claim") || strings.Contains(out, "other.example") {
			t.Errorf("unexpected filtered history:\n%s", out)
		}
	})

	t.Run("shows activity", func(t *testing.T) {
		out := w.mustRun(t, "history", "--activity")
		if !strings.Contains(out, "list_add") || !strings.Contains(out, "other.example") {
			t.Errorf("unexpected activity:\n%s", out)
		}
	})

	t.Run("purge keeps results inside retention", func(t *testing.T) {
		out := w.mustRun(t, "history", "--purge")
		if !strings.Contains(out, "Removed 0 expired scan results") {
			t.Errorf("unexpected purge output: %q", out)
		}
		if out := w.mustRun(t, "history", "-n", "1"); strings.Contains(out, "TOTAL:") {
			t.Errorf("limit 1 should print a single entry:\n%s", out)
		}
	})
}
