package guard

import (
	"errors"
	"testing"

	"github.com/nao1215/scamguard/internal/config"
	"github.com/nao1215/scamguard/internal/database"
	"github.com/nao1215/scamguard/internal/model"
)

func TestReportServiceSubmit(t *testing.T) {
	t.Parallel()

	t.Run("stores report and blacklists hostname", func(t *testing.T) {
		t.Parallel()

		k, db, sink := setupKeeper(t, config.DefaultSettings())
		svc := NewReportService(db, k, config.DefaultSettings(), nil)
		ctx := t.Context()

		got, err := svc.Submit(ctx, model.Report{
			ReportedURL:   "https://Win-Prize.Example/claim?id=1",
			Reason:        "  asked for my BVN  ",
			ReporterEmail: "Victim <victim@mail.example>",
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if got.ID == 0 {
			t.Error("expected ID to be set")
		}
		if got.Domain != "win-prize.example" {
			t.Errorf("Domain = %q", got.Domain)
		}
		if got.Reason != "asked for my BVN" {
			t.Errorf("Reason = %q", got.Reason)
		}
		if got.ReporterEmail != "victim@mail.example" {
			t.Errorf("ReporterEmail = %q", got.ReporterEmail)
		}
		if !got.Blacklisted {
			t.Error("expected report to blacklist the domain")
		}

		blacklist, err := db.ListEntries(ctx, database.Blacklist)
		if err != nil {
			t.Fatal(err)
		}
		if len(blacklist) != 1 || blacklist[0] != "win-prize.example" {
			t.Errorf("blacklist = %v", blacklist)
		}
		rules, err := sink.Rules(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(rules) != 2 {
			t.Errorf("expected 2 rules after report, got %d", len(rules))
		}

		reports, err := db.ListReports(ctx, 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(reports) != 1 || !reports[0].Blacklisted {
			t.Errorf("stored reports = %+v", reports)
		}
	})

	t.Run("blacklist entry is normalized like other entries", func(t *testing.T) {
		t.Parallel()

		k, db, _ := setupKeeper(t, config.DefaultSettings())
		svc := NewReportService(db, k, config.DefaultSettings(), nil)
		ctx := t.Context()

		got, err := svc.Submit(ctx, model.Report{
			ReportedURL: "https://www.Bücher-Prize.example/claim",
			Reason:      "fake giveaway",
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if got.Domain != "www.xn--bcher-prize-thb.example" {
			t.Errorf("Domain = %q", got.Domain)
		}

		blacklist, err := db.ListEntries(ctx, database.Blacklist)
		if err != nil {
			t.Fatal(err)
		}
		if len(blacklist) != 1 || blacklist[0] != "xn--bcher-prize-thb.example" {
			t.Errorf("blacklist = %v", blacklist)
		}
	})

	t.Run("covered domain is not added twice", func(t *testing.T) {
		t.Parallel()

		k, db, _ := setupKeeper(t, config.DefaultSettings())
		svc := NewReportService(db, k, config.DefaultSettings(), nil)
		ctx := t.Context()

		if _, err := k.Add(ctx, database.Blacklist, "*.scam.example"); err != nil {
			t.Fatal(err)
		}
		got, err := svc.Submit(ctx, model.Report{ReportedURL: "http://login.scam.example/", Reason: "phishing"})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if got.Blacklisted {
			t.Error("expected no new blacklist entry")
		}
		blacklist, err := db.ListEntries(ctx, database.Blacklist)
		if err != nil {
			t.Fatal(err)
		}
		if len(blacklist) != 1 {
			t.Errorf("blacklist = %v", blacklist)
		}
	})

	t.Run("auto blacklist disabled", func(t *testing.T) {
		t.Parallel()

		settings := config.DefaultSettings()
		settings.AutoBlacklistOnReport = false
		k, db, _ := setupKeeper(t, settings)
		svc := NewReportService(db, k, settings, nil)
		ctx := t.Context()

		got, err := svc.Submit(ctx, model.Report{ReportedURL: "https://fraud.example", Reason: "fake shop"})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if got.Blacklisted {
			t.Error("expected domain not to be blacklisted")
		}
		blacklist, err := db.ListEntries(ctx, database.Blacklist)
		if err != nil {
			t.Fatal(err)
		}
		if len(blacklist) != 0 {
			t.Errorf("blacklist = %v", blacklist)
		}

		activity, err := db.ListActivity(ctx, 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(activity) != 1 || activity[0].Kind != model.ActivityReport {
			t.Errorf("activity = %+v", activity)
		}
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()

		k, db, _ := setupKeeper(t, config.DefaultSettings())
		svc := NewReportService(db, k, config.DefaultSettings(), nil)

		tests := []struct {
			name   string
			report model.Report
		}{
			{name: "empty url", report: model.Report{Reason: "scam"}},
			{name: "not http", report: model.Report{ReportedURL: "ftp://scam.example", Reason: "scam"}},
			{name: "missing reason", report: model.Report{ReportedURL: "https://scam.example", Reason: "   "}},
			{name: "bad email", report: model.Report{ReportedURL: "https://scam.example", Reason: "scam", ReporterEmail: "not-an-address"}},
		}
		for _, tt := range tests {
			if _, err := svc.Submit(t.Context(), tt.report); !errors.Is(err, ErrInvalidReport) {
				t.Errorf("%s: expected ErrInvalidReport, got %v", tt.name, err)
			}
		}

		reports, err := db.ListReports(t.Context(), 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(reports) != 0 {
			t.Errorf("invalid reports were stored: %+v", reports)
		}
	})
}
