package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nao1215/scamguard/internal/model"
)

// SaveScanRecord stores record and sets its ID.
func (g *GuardDB) SaveScanRecord(ctx context.Context, record *model.ScanRecord) (int64, error) {
	issues := record.Result.Issues
	if issues == nil {
		issues = []string{}
	}
	issuesJSON, err := json.Marshal(issues)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize issues: %w", err)
	}

	scannedAt := record.ScannedAt
	if scannedAt.IsZero() {
		scannedAt = g.now()
	}

	query := `
	INSERT INTO scan_records (url, domain, score, status, issues, content_hash, source, scanned_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := g.db.ExecContext(ctx, query,
		record.URL,
		record.Domain,
		record.Result.Score,
		string(record.Result.Status),
		string(issuesJSON),
		record.ContentHash,
		string(record.Source),
		formatTimestamp(scannedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save scan record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to save scan record: %w", err)
	}
	record.ID = id
	return id, nil
}

const scanRecordColumns = `id, url, domain, score, status, issues, content_hash, source, scanned_at`

// LatestScanRecord returns the most recent record for url, or nil if none exists.
func (g *GuardDB) LatestScanRecord(ctx context.Context, url string) (*model.ScanRecord, error) {
	query := `SELECT ` + scanRecordColumns + `
	FROM scan_records
	WHERE url = ?
	ORDER BY scanned_at DESC, id DESC
	LIMIT 1
	`

	record, err := scanRecord(g.db.QueryRowContext(ctx, query, url))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan record: %w", err)
	}
	return record, nil
}

// HistoryFilter narrows ScanHistory.
type HistoryFilter struct {
	// Domain limits results to one hostname. Empty means all domains.
	Domain string

	// Since drops records scanned before it. Zero means no lower bound.
	Since time.Time

	// Limit caps the number of records. Zero means no limit.
	Limit int
}

// ScanHistory returns stored records, newest first.
func (g *GuardDB) ScanHistory(ctx context.Context, filter HistoryFilter) ([]*model.ScanRecord, error) {
	query := `SELECT ` + scanRecordColumns + `
	FROM scan_records
	WHERE 1=1
	`
	args := make([]any, 0, 3)

	if filter.Domain != "" {
		query += " AND domain = ?"
		args = append(args, filter.Domain)
	}
	if !filter.Since.IsZero() {
		query += " AND scanned_at >= ?"
		args = append(args, formatTimestamp(filter.Since))
	}
	query += " ORDER BY scanned_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := g.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get scan history: %w", err)
	}
	defer rows.Close()

	records := make([]*model.ScanRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// PurgeScanRecordsBefore deletes records scanned before cutoff and returns
// the number of deleted rows.
func (g *GuardDB) PurgeScanRecordsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := g.db.ExecContext(ctx, `DELETE FROM scan_records WHERE scanned_at < ?`, formatTimestamp(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to purge scan records: %w", err)
	}
	return result.RowsAffected()
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*model.ScanRecord, error) {
	var (
		record      model.ScanRecord
		status      string
		issuesJSON  string
		contentHash sql.NullString
		source      sql.NullString
		scannedAt   string
	)

	if err := row.Scan(
		&record.ID,
		&record.URL,
		&record.Domain,
		&record.Result.Score,
		&status,
		&issuesJSON,
		&contentHash,
		&source,
		&scannedAt,
	); err != nil {
		return nil, err
	}

	record.Result.Status = model.Status(status)
	record.ContentHash = contentHash.String
	record.Source = model.ScanSource(source.String)
	record.ScannedAt = parseTimestamp(scannedAt)

	if err := json.Unmarshal([]byte(issuesJSON), &record.Result.Issues); err != nil {
		return nil, fmt.Errorf("failed to parse issues: %w", err)
	}
	return &record, nil
}
