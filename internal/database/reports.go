package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nao1215/scamguard/internal/model"
)

// InsertReport stores report and sets its ID.
func (g *GuardDB) InsertReport(ctx context.Context, report *model.Report) (int64, error) {
	reportedAt := report.ReportedAt
	if reportedAt.IsZero() {
		reportedAt = g.now()
	}

	query := `
	INSERT INTO reports (reported_url, domain, reason, reporter_email, blacklisted, reported_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := g.db.ExecContext(ctx, query,
		report.ReportedURL,
		report.Domain,
		report.Reason,
		report.ReporterEmail,
		report.Blacklisted,
		formatTimestamp(reportedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert report: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to insert report: %w", err)
	}
	report.ID = id
	return id, nil
}

// ListReports returns stored reports, newest first. A non-positive limit
// returns all reports.
func (g *GuardDB) ListReports(ctx context.Context, limit int) ([]model.Report, error) {
	query := `
	SELECT id, reported_url, domain, reason, reporter_email, blacklisted, reported_at
	FROM reports
	ORDER BY reported_at DESC, id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := g.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]model.Report, 0)
	for rows.Next() {
		var (
			r          model.Report
			email      sql.NullString
			reportedAt string
		)
		if err := rows.Scan(&r.ID, &r.ReportedURL, &r.Domain, &r.Reason, &email, &r.Blacklisted, &reportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		r.ReporterEmail = email.String
		r.ReportedAt = parseTimestamp(reportedAt)
		reports = append(reports, r)
	}
	return reports, rows.Err()
}
