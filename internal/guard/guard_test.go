package guard

import (
	"testing"
	"time"

	"github.com/nao1215/scamguard/internal/blocking"
	"github.com/nao1215/scamguard/internal/config"
	"github.com/nao1215/scamguard/internal/database"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *database.GuardDB {
	t.Helper()

	db, err := database.Open(t.TempDir(), database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// setupKeeper returns a Keeper publishing into an in-memory sink.
func setupKeeper(t *testing.T, settings config.Settings) (*Keeper, *database.GuardDB, *blocking.MemorySink) {
	t.Helper()

	db := setupTestDB(t)
	sink := &blocking.MemorySink{}
	k := NewKeeper(db, settings, WithUpdater(blocking.NewUpdater(sink)))
	k.now = func() time.Time { return time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC) }
	return k, db, sink
}
