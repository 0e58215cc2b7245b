package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nao1215/scamguard/internal/model"
)

// InsertActivity appends an entry to the activity log.
func (g *GuardDB) InsertActivity(ctx context.Context, a model.Activity) error {
	at := a.At
	if at.IsZero() {
		at = g.now()
	}

	_, err := g.db.ExecContext(ctx, `
	INSERT INTO activity (kind, subject, detail, at)
	VALUES (?, ?, ?, ?)
	`, string(a.Kind), a.Subject, a.Detail, formatTimestamp(at))
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

// ListActivity returns activity entries, newest first. A non-positive limit
// returns all entries.
func (g *GuardDB) ListActivity(ctx context.Context, limit int) ([]model.Activity, error) {
	query := `
	SELECT id, kind, subject, detail, at
	FROM activity
	ORDER BY at DESC, id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := g.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	entries := make([]model.Activity, 0)
	for rows.Next() {
		var (
			a      model.Activity
			kind   string
			detail sql.NullString
			at     string
		)
		if err := rows.Scan(&a.ID, &kind, &a.Subject, &detail, &at); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Kind = model.ActivityKind(kind)
		a.Detail = detail.String
		a.At = parseTimestamp(at)
		entries = append(entries, a)
	}
	return entries, rows.Err()
}
