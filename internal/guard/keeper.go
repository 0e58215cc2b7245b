package guard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/scamguard/internal/blocking"
	"github.com/nao1215/scamguard/internal/config"
	"github.com/nao1215/scamguard/internal/database"
	"github.com/nao1215/scamguard/internal/model"
)

// Keeper edits the stored domain lists and keeps the compiled blocking
// rules in step with them. Every edit is recorded in the activity log.
type Keeper struct {
	db       *database.GuardDB
	updater  *blocking.Updater
	settings config.Settings
	logger   *slog.Logger
	now      func() time.Time
}

// KeeperOption configures a Keeper.
type KeeperOption func(*Keeper)

// WithUpdater makes the Keeper push recompiled rules through u after every
// list change. Without one, lists are edited but no rules are produced.
func WithUpdater(u *blocking.Updater) KeeperOption {
	return func(k *Keeper) {
		k.updater = u
	}
}

// WithKeeperLogger sets the logger.
func WithKeeperLogger(logger *slog.Logger) KeeperOption {
	return func(k *Keeper) {
		if logger != nil {
			k.logger = logger
		}
	}
}

// NewKeeper creates a Keeper backed by db.
func NewKeeper(db *database.GuardDB, settings config.Settings, opts ...KeeperOption) *Keeper {
	k := &Keeper{
		db:       db,
		settings: settings,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Add appends pattern to list and recompiles the blocking rules.
// It reports false, without recompiling, when the pattern was already present.
func (k *Keeper) Add(ctx context.Context, list database.List, pattern string) (bool, error) {
	added, err := k.db.AddListEntry(ctx, list, pattern)
	if err != nil {
		return false, err
	}
	if !added {
		return false, nil
	}
	k.record(ctx, model.ActivityListAdd, pattern, string(list))
	if _, err := k.Sync(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// Remove deletes pattern from list and recompiles the blocking rules.
func (k *Keeper) Remove(ctx context.Context, list database.List, pattern string) (bool, error) {
	removed, err := k.db.RemoveListEntry(ctx, list, pattern)
	if err != nil {
		return false, err
	}
	if !removed {
		return false, nil
	}
	k.record(ctx, model.ActivityListRemove, pattern, string(list))
	if _, err := k.Sync(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// Compile builds the blocking rules for the current lists without
// publishing them.
func (k *Keeper) Compile(ctx context.Context) ([]blocking.Rule, error) {
	lists, err := k.db.Lists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load lists: %w", err)
	}
	return blocking.Compile(lists.Blacklist, lists.Whitelist, k.settings.BlockRedirect()), nil
}

// Sync recompiles the blocking rules and replaces the published set.
// Without an updater it only compiles.
func (k *Keeper) Sync(ctx context.Context) ([]blocking.Rule, error) {
	compiled, err := k.Compile(ctx)
	if err != nil {
		return nil, err
	}
	if k.updater == nil {
		return compiled, nil
	}
	if err := k.updater.Replace(ctx, compiled); err != nil {
		return nil, fmt.Errorf("failed to publish blocking rules: %w", err)
	}
	k.record(ctx, model.ActivityRulesCompiled, fmt.Sprintf("%d rules", len(compiled)), "")
	return compiled, nil
}

// record appends to the activity log. Failures are logged, not returned.
func (k *Keeper) record(ctx context.Context, kind model.ActivityKind, subject, detail string) {
	err := k.db.InsertActivity(ctx, model.Activity{Kind: kind, Subject: subject, Detail: detail, At: k.now()})
	if err != nil {
		k.logger.Warn("failed to record activity", "kind", kind, "error", err)
	}
}
