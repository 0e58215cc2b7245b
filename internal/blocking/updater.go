package blocking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// Sink is the request-blocking layer that holds the active rule set.
type Sink interface {
	// Rules returns the currently installed rules.
	Rules(ctx context.Context) ([]Rule, error)

	// Update removes the rules with the given IDs and then installs add.
	Update(ctx context.Context, removeIDs []int, add []Rule) error
}

// Updater replaces the rules of a Sink as a whole.
type Updater struct {
	mu     sync.Mutex
	sink   Sink
	logger *slog.Logger
}

// UpdaterOption configures an Updater.
type UpdaterOption func(*Updater)

// WithLogger sets the logger used by the Updater.
func WithLogger(logger *slog.Logger) UpdaterOption {
	return func(u *Updater) {
		u.logger = logger
	}
}

// NewUpdater creates an Updater writing to sink.
func NewUpdater(sink Sink, opts ...UpdaterOption) *Updater {
	u := &Updater{sink: sink}
	for _, opt := range opts {
		opt(u)
	}
	if u.logger == nil {
		u.logger = slog.Default()
	}
	return u
}

// Replace removes every installed rule and installs rules in one update.
// Concurrent calls are serialized. A sink reporting ErrCorruptRuleSet is
// overwritten with rules.
func (u *Updater) Replace(ctx context.Context, rules []Rule) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	current, err := u.sink.Rules(ctx)
	switch {
	case errors.Is(err, ErrCorruptRuleSet):
		u.logger.Warn("overwriting corrupt blocking rules", "error", err)
		current = nil
	case err != nil:
		return fmt.Errorf("failed to read installed rules: %w", err)
	}

	if err := u.sink.Update(ctx, IDs(current), rules); err != nil {
		return fmt.Errorf("failed to install rules: %w", err)
	}

	u.logger.Debug("blocking rules replaced",
		"removed", len(current),
		"added", len(rules),
	)
	return nil
}

// MemorySink keeps rules in memory.
type MemorySink struct {
	mu    sync.Mutex
	rules []Rule
}

// Rules returns a copy of the installed rules.
func (m *MemorySink) Rules(_ context.Context) ([]Rule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.rules), nil
}

// Update applies removeIDs and then appends add.
func (m *MemorySink) Update(_ context.Context, removeIDs []int, add []Rule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = applyUpdate(m.rules, removeIDs, add)
	return nil
}

// FileSink stores the rule set as a JSON file.
// Every update rewrites the file through a temporary file and a rename.
type FileSink struct {
	mu   sync.Mutex
	path string
}

// NewFileSink returns a FileSink writing to path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Path returns the file the sink writes to.
func (f *FileSink) Path() string {
	return f.path
}

// Rules reads the rule file. A missing file holds no rules.
func (f *FileSink) Rules(_ context.Context) ([]Rule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

// Update applies removeIDs and add to the stored rules and rewrites the file.
// A file that cannot be decoded is replaced by add.
func (f *FileSink) Update(_ context.Context, removeIDs []int, add []Rule) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.read()
	switch {
	case errors.Is(err, ErrCorruptRuleSet):
		current = nil
	case err != nil:
		return err
	}
	return WriteRulesJSONAtomic(f.path, applyUpdate(current, removeIDs, add))
}

func (f *FileSink) read() ([]Rule, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}
	var rules []Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptRuleSet, f.path, err)
	}
	return rules, nil
}

// WriteRulesJSONAtomic writes rules to path as indented JSON. Readers see
// either the old file or the complete new one.
func WriteRulesJSONAtomic(path string, rules []Rule) error {
	if rules == nil {
		rules = []Rule{}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".rules.json.*")
	if err != nil {
		return fmt.Errorf("failed to create temporary rule file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rules); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary rule file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace rule file: %w", err)
	}
	return nil
}

func applyUpdate(current []Rule, removeIDs []int, add []Rule) []Rule {
	out := make([]Rule, 0, len(current)+len(add))
	for _, r := range current {
		if !slices.Contains(removeIDs, r.ID) {
			out = append(out, r)
		}
	}
	return append(out, add...)
}
