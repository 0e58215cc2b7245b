package guard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nao1215/scamguard/internal/config"
	"github.com/nao1215/scamguard/internal/model"
)

// Monitor defaults.
const (
	DefaultQueueSize = 64

	// maxTracked bounds the per-URL cooldown table. Expired entries are
	// pruned once it grows past this size.
	maxTracked = 4096
)

// Event is a page event delivered to the Monitor.
type Event struct {
	// URL is the page URL.
	URL string

	// Content is the page text if the host already has it. When empty the
	// scan function is expected to load the page itself.
	Content string

	// Source tells what produced the event.
	Source model.ScanSource
}

// ScanFunc scores the page behind an event and returns the stored record.
type ScanFunc func(ctx context.Context, ev Event) (*model.ScanRecord, error)

// Outcome is reported for every event the Monitor scanned.
type Outcome struct {
	Event    Event
	Record   *model.ScanRecord
	Decision Decision
	Err      error
}

// RecordPurger removes scan records older than a cutoff.
type RecordPurger interface {
	PurgeScanRecordsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ActivityRecorder appends to the activity log.
type ActivityRecorder interface {
	InsertActivity(ctx context.Context, a model.Activity) error
}

// MonitorStats counts what the Monitor did with the events it received.
type MonitorStats struct {
	Scanned int64
	Skipped int64
	Failed  int64
}

type lastScan struct {
	at   time.Time
	hash string
}

// Monitor processes page events one at a time.
//
// Events are queued on a buffered channel and consumed by Run on a single
// goroutine, so the scan function is never called concurrently. A URL that
// was scanned less than ScanCooldown ago is skipped unless the event is
// manual or carries content whose hash differs from the last scan.
type Monitor struct {
	scan     ScanFunc
	settings config.Settings
	events   chan Event
	done     chan struct{}
	closing  chan struct{}

	purger    RecordPurger
	activity  ActivityRecorder
	onOutcome func(Outcome)
	logger    *slog.Logger
	now       func() time.Time
	queueSize int

	// recent is owned by the Run goroutine.
	recent map[string]lastScan

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once

	scanned atomic.Int64
	skipped atomic.Int64
	failed  atomic.Int64
}

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

// WithPurger enables the scheduled retention cleanup.
func WithPurger(p RecordPurger) MonitorOption {
	return func(m *Monitor) {
		m.purger = p
	}
}

// WithActivityLog records notify and block decisions.
func WithActivityLog(r ActivityRecorder) MonitorOption {
	return func(m *Monitor) {
		m.activity = r
	}
}

// WithOutcomeHandler registers fn to be called after every scan.
// fn runs on the Monitor goroutine and should return quickly.
func WithOutcomeHandler(fn func(Outcome)) MonitorOption {
	return func(m *Monitor) {
		m.onOutcome = fn
	}
}

// WithQueueSize sets the event buffer size.
func WithQueueSize(n int) MonitorOption {
	return func(m *Monitor) {
		if n > 0 {
			m.queueSize = n
		}
	}
}

// WithMonitorLogger sets the logger.
func WithMonitorLogger(logger *slog.Logger) MonitorOption {
	return func(m *Monitor) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) MonitorOption {
	return func(m *Monitor) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMonitor creates a Monitor. The cleanup schedule in settings is
// validated here even when no purger is configured.
func NewMonitor(scan ScanFunc, settings config.Settings, opts ...MonitorOption) (*Monitor, error) {
	if scan == nil {
		return nil, ErrNilScanFunc
	}
	if settings.CleanupSchedule == "" {
		settings.CleanupSchedule = config.DefaultCleanupSchedule
	}
	if _, err := cron.ParseStandard(settings.CleanupSchedule); err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", settings.CleanupSchedule, err)
	}

	m := &Monitor{
		scan:      scan,
		settings:  settings,
		done:      make(chan struct{}),
		closing:   make(chan struct{}),
		logger:    slog.Default(),
		now:       time.Now,
		queueSize: DefaultQueueSize,
		recent:    make(map[string]lastScan),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.events = make(chan Event, m.queueSize)
	return m, nil
}

// Submit queues ev. It blocks while the queue is full, until ctx ends or
// the Monitor is closed.
func (m *Monitor) Submit(ctx context.Context, ev Event) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrMonitorClosed
	}
	select {
	case <-m.closing:
		return ErrMonitorClosed
	default:
	}
	select {
	case m.events <- ev:
		return nil
	case <-m.closing:
		return ErrMonitorClosed
	case <-m.done:
		return ErrMonitorClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting events. Submit calls blocked on a full queue
// return ErrMonitorClosed. Run drains what is already queued and returns.
func (m *Monitor) Close() {
	m.closeOnce.Do(func() { close(m.closing) })

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.events)
	}
}

// Run consumes events until Close is called or ctx is cancelled.
// It must be called at most once.
func (m *Monitor) Run(ctx context.Context) error {
	defer close(m.done)

	if m.purger != nil {
		c := cron.New()
		if _, err := c.AddFunc(m.settings.CleanupSchedule, func() {
			if _, err := m.Cleanup(ctx); err != nil {
				m.logger.Warn("scheduled cleanup failed", "error", err)
			}
		}); err != nil {
			return fmt.Errorf("failed to schedule cleanup: %w", err)
		}
		c.Start()
		defer func() { <-c.Stop().Done() }()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-m.events:
			if !ok {
				return nil
			}
			m.handle(ctx, ev)
		}
	}
}

// Cleanup removes scan records older than the retention window.
func (m *Monitor) Cleanup(ctx context.Context) (int64, error) {
	if m.purger == nil {
		return 0, nil
	}
	cutoff := m.now().Add(-m.settings.Retention)
	n, err := m.purger.PurgeScanRecordsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge scan records: %w", err)
	}
	m.logger.Debug("expired scan records removed", "count", n, "cutoff", cutoff)
	return n, nil
}

// Stats returns event counters.
func (m *Monitor) Stats() MonitorStats {
	return MonitorStats{
		Scanned: m.scanned.Load(),
		Skipped: m.skipped.Load(),
		Failed:  m.failed.Load(),
	}
}

func (m *Monitor) handle(ctx context.Context, ev Event) {
	ev.URL = strings.TrimSpace(ev.URL)
	if ev.Source == "" {
		ev.Source = model.SourcePageLoad
	}
	now := m.now()

	if m.inCooldown(ev, now) {
		m.skipped.Add(1)
		m.logger.Debug("scan skipped during cooldown", "url", ev.URL, "source", ev.Source)
		return
	}

	record, err := m.scan(ctx, ev)
	if err == nil && record == nil {
		err = fmt.Errorf("scan of %s returned no record", ev.URL)
	}
	if err != nil {
		m.failed.Add(1)
		m.logger.Warn("scan failed", "url", ev.URL, "error", err)
		m.report(Outcome{Event: ev, Err: err})
		return
	}
	m.scanned.Add(1)
	m.remember(ev.URL, lastScan{at: now, hash: record.ContentHash}, now)

	decision := Decide(m.settings, &record.Result)
	m.recordDecision(ctx, record, decision)
	m.report(Outcome{Event: ev, Record: record, Decision: decision})
}

func (m *Monitor) inCooldown(ev Event, now time.Time) bool {
	if ev.Source == model.SourceManual || m.settings.ScanCooldown <= 0 {
		return false
	}
	last, ok := m.recent[ev.URL]
	if !ok || now.Sub(last.at) >= m.settings.ScanCooldown {
		return false
	}
	if ev.Content != "" && last.hash != "" {
		return model.ContentHash(model.NormalizeContent(ev.Content)) == last.hash
	}
	return true
}

func (m *Monitor) remember(url string, s lastScan, now time.Time) {
	m.recent[url] = s
	if len(m.recent) <= maxTracked {
		return
	}
	for u, e := range m.recent {
		if now.Sub(e.at) >= m.settings.ScanCooldown {
			delete(m.recent, u)
		}
	}
}

func (m *Monitor) recordDecision(ctx context.Context, record *model.ScanRecord, d Decision) {
	if m.activity == nil {
		return
	}
	entries := make([]model.Activity, 0, 2)
	detail := fmt.Sprintf("%s (score %d)", record.Result.Status, record.Result.Score)
	if d.Notify {
		entries = append(entries, model.Activity{Kind: model.ActivityNotify, Subject: record.URL, Detail: detail, At: record.ScannedAt})
	}
	if d.Block {
		entries = append(entries, model.Activity{Kind: model.ActivityBlock, Subject: record.URL, Detail: detail, At: record.ScannedAt})
	}
	for _, a := range entries {
		if err := m.activity.InsertActivity(ctx, a); err != nil {
			m.logger.Warn("failed to record activity", "kind", a.Kind, "error", err)
		}
	}
}

func (m *Monitor) report(o Outcome) {
	if m.onOutcome != nil {
		m.onOutcome(o)
	}
}
