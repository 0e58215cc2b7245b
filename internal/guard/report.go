package guard

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/nao1215/scamguard/internal/config"
	"github.com/nao1215/scamguard/internal/crawler"
	"github.com/nao1215/scamguard/internal/database"
	"github.com/nao1215/scamguard/internal/domain"
	"github.com/nao1215/scamguard/internal/model"
)

// MaxReasonLength bounds the stored report reason, in runes.
const MaxReasonLength = 2000

// ReportService accepts scam reports from users.
type ReportService struct {
	db       *database.GuardDB
	keeper   *Keeper
	settings config.Settings
	logger   *slog.Logger
	now      func() time.Time
}

// NewReportService creates a ReportService. Blacklist edits go through keeper
// so that blocking rules follow them.
func NewReportService(db *database.GuardDB, keeper *Keeper, settings config.Settings, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		db:       db,
		keeper:   keeper,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit validates and stores a report.
//
// With AutoBlacklistOnReport enabled, the reported hostname is appended to
// the blacklist unless an existing entry already covers it. The stored
// report is returned with ID, Domain, Blacklisted and ReportedAt filled in.
func (s *ReportService) Submit(ctx context.Context, r model.Report) (*model.Report, error) {
	report, err := validateReport(r)
	if err != nil {
		return nil, err
	}
	report.ReportedAt = s.now()

	if s.settings.AutoBlacklistOnReport {
		lists, err := s.db.Lists(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load lists: %w", err)
		}
		if pattern, found := domain.MatchesAny(report.Domain, lists.Blacklist); found {
			s.logger.Debug("reported domain already blacklisted", "domain", report.Domain, "pattern", pattern)
		} else {
			added, err := s.keeper.Add(ctx, database.Blacklist, report.Domain)
			switch {
			case err != nil && !added:
				return nil, fmt.Errorf("failed to blacklist %s: %w", report.Domain, err)
			case err != nil:
				s.logger.Warn("domain blacklisted but blocking rules not updated", "domain", report.Domain, "error", err)
			}
			report.Blacklisted = added
		}
	}

	id, err := s.db.InsertReport(ctx, &report)
	if err != nil {
		return nil, err
	}
	report.ID = id

	if err := s.db.InsertActivity(ctx, model.Activity{
		Kind:    model.ActivityReport,
		Subject: report.Domain,
		Detail:  report.Reason,
		At:      report.ReportedAt,
	}); err != nil {
		s.logger.Warn("failed to record activity", "kind", model.ActivityReport, "error", err)
	}

	s.logger.Info("scam report received",
		"domain", report.Domain,
		"blacklisted", report.Blacklisted,
		"reporter", report.ReporterEmail,
	)
	return &report, nil
}

// validateReport trims and checks r and derives its Domain.
func validateReport(r model.Report) (model.Report, error) {
	r.ReportedURL = strings.TrimSpace(r.ReportedURL)
	r.Reason = strings.TrimSpace(r.Reason)
	r.ReporterEmail = strings.TrimSpace(r.ReporterEmail)

	u, err := crawler.CheckURL(r.ReportedURL)
	if err != nil {
		return r, fmt.Errorf("%w: %w", ErrInvalidReport, err)
	}
	if r.Reason == "" {
		return r, fmt.Errorf("%w: reason is required", ErrInvalidReport)
	}
	if runes := []rune(r.Reason); len(runes) > MaxReasonLength {
		r.Reason = string(runes[:MaxReasonLength])
	}
	if r.ReporterEmail != "" {
		addr, err := mail.ParseAddress(r.ReporterEmail)
		if err != nil {
			return r, fmt.Errorf("%w: reporter email: %w", ErrInvalidReport, err)
		}
		r.ReporterEmail = addr.Address
	}

	r.Domain = model.HostnameASCII(u.Hostname())
	r.Blacklisted = false
	r.ID = 0
	return r, nil
}
