package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/nao1215/scamguard/internal/domain"
)

// List names a stored domain list.
type List string

// Stored lists.
const (
	Whitelist List = "whitelist"
	Blacklist List = "blacklist"
)

// ParseList converts a user-supplied list name.
func ParseList(s string) (List, error) {
	switch List(strings.ToLower(strings.TrimSpace(s))) {
	case Whitelist:
		return Whitelist, nil
	case Blacklist:
		return Blacklist, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownList, s)
	}
}

func (l List) validate() error {
	if l != Whitelist && l != Blacklist {
		return fmt.Errorf("%w: %q", ErrUnknownList, string(l))
	}
	return nil
}

// normalizePattern stores entries in the form the matcher compares them in,
// with internationalized names in punycode.
func normalizePattern(pattern string) (string, error) {
	p := domain.Normalize(strings.TrimSuffix(strings.TrimSpace(pattern), "/"))
	if p == "" || p == "*." {
		return "", ErrEmptyPattern
	}
	return p, nil
}

// AddListEntry appends pattern to list. It reports false when the
// normalized pattern is already present.
func (g *GuardDB) AddListEntry(ctx context.Context, list List, pattern string) (bool, error) {
	if err := list.validate(); err != nil {
		return false, err
	}
	p, err := normalizePattern(pattern)
	if err != nil {
		return false, err
	}

	query := `
	INSERT INTO list_entries (list, pattern, position, created_at)
	VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM list_entries WHERE list = ?), ?)
	ON CONFLICT(list, pattern) DO NOTHING
	`

	result, err := g.db.ExecContext(ctx, query, string(list), p, string(list), formatTimestamp(g.now()))
	if err != nil {
		return false, fmt.Errorf("failed to add %s entry: %w", list, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to add %s entry: %w", list, err)
	}
	return n > 0, nil
}

// RemoveListEntry deletes pattern from list. It reports false when the
// pattern was not present.
func (g *GuardDB) RemoveListEntry(ctx context.Context, list List, pattern string) (bool, error) {
	if err := list.validate(); err != nil {
		return false, err
	}
	p, err := normalizePattern(pattern)
	if err != nil {
		return false, err
	}

	result, err := g.db.ExecContext(ctx, `DELETE FROM list_entries WHERE list = ? AND pattern = ?`, string(list), p)
	if err != nil {
		return false, fmt.Errorf("failed to remove %s entry: %w", list, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to remove %s entry: %w", list, err)
	}
	return n > 0, nil
}

// ListEntries returns the patterns of list in insertion order.
func (g *GuardDB) ListEntries(ctx context.Context, list List) ([]string, error) {
	if err := list.validate(); err != nil {
		return nil, err
	}

	rows, err := g.db.QueryContext(ctx, `
	SELECT pattern FROM list_entries
	WHERE list = ?
	ORDER BY position, id
	`, string(list))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", list, err)
	}
	defer rows.Close()

	patterns := make([]string, 0)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan %s entry: %w", list, err)
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

// Lists returns a snapshot of both lists read in one transaction.
func (g *GuardDB) Lists(ctx context.Context) (domain.Lists, error) {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Lists{}, fmt.Errorf("failed to begin list snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `SELECT list, pattern FROM list_entries ORDER BY list, position, id`)
	if err != nil {
		return domain.Lists{}, fmt.Errorf("failed to query lists: %w", err)
	}
	defer rows.Close()

	lists := domain.Lists{Whitelist: []string{}, Blacklist: []string{}}
	for rows.Next() {
		var name, pattern string
		if err := rows.Scan(&name, &pattern); err != nil {
			return domain.Lists{}, fmt.Errorf("failed to scan list entry: %w", err)
		}
		switch List(name) {
		case Whitelist:
			lists.Whitelist = append(lists.Whitelist, pattern)
		case Blacklist:
			lists.Blacklist = append(lists.Blacklist, pattern)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.Lists{}, fmt.Errorf("failed to read lists: %w", err)
	}
	return lists, nil
}

// SeedLists adds the entries of lists that are not stored yet and returns
// the number of entries added.
func (g *GuardDB) SeedLists(ctx context.Context, lists domain.Lists) (int, error) {
	added := 0
	for _, seed := range []struct {
		list     List
		patterns []string
	}{
		{Whitelist, lists.Whitelist},
		{Blacklist, lists.Blacklist},
	} {
		for _, p := range seed.patterns {
			ok, err := g.AddListEntry(ctx, seed.list, p)
			if err != nil {
				return added, err
			}
			if ok {
				added++
			}
		}
	}
	return added, nil
}
