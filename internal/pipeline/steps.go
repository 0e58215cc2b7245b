package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/scamguard/internal/config"
	"github.com/nao1215/scamguard/internal/crawler"
	"github.com/nao1215/scamguard/internal/domain"
	"github.com/nao1215/scamguard/internal/guard"
	"github.com/nao1215/scamguard/internal/heuristic"
	"github.com/nao1215/scamguard/internal/model"
)

// Step names.
const (
	StepLoad    = "load"
	StepExtract = "extract"
	StepScore   = "score"
	StepPersist = "persist"
	StepDecide  = "decide"
)

// ListSource provides the whitelist and blacklist snapshot used for scoring.
type ListSource interface {
	Lists(ctx context.Context) (domain.Lists, error)
}

// StaticLists is a ListSource that always returns the same lists.
// Batch scans share one snapshot so that every page sees the same lists.
type StaticLists domain.Lists

// Lists returns a copy of the lists.
func (s StaticLists) Lists(_ context.Context) (domain.Lists, error) {
	return domain.Lists(s).Clone(), nil
}

// RecordStore persists scan records.
type RecordStore interface {
	SaveScanRecord(ctx context.Context, record *model.ScanRecord) (int64, error)
}

// LoadStep fetches or renders the target page.
type LoadStep struct {
	loader crawler.Loader
	logger *slog.Logger
}

// NewLoadStep creates a load step.
func NewLoadStep(loader crawler.Loader, logger *slog.Logger) *LoadStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoadStep{loader: loader, logger: logger}
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return StepLoad
}

// Do loads the page unless the job already carries content.
func (s *LoadStep) Do(ctx context.Context, job *Job) error {
	if job.Content != "" {
		s.logger.Debug("content supplied, skipping load", "target", job.Target)
		return nil
	}
	page, err := s.loader.Load(ctx, job.Target)
	if err != nil {
		return fmt.Errorf("failed to load page: %w", err)
	}
	job.Page = page
	return nil
}

// ExtractStep turns the loaded page into text.
type ExtractStep struct {
	extractor *crawler.Extractor
}

// NewExtractStep creates an extract step.
func NewExtractStep(extractor *crawler.Extractor) *ExtractStep {
	if extractor == nil {
		extractor = crawler.NewExtractor()
	}
	return &ExtractStep{extractor: extractor}
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return StepExtract
}

// Do extracts job.Page into job.Document and job.Content.
func (s *ExtractStep) Do(_ context.Context, job *Job) error {
	if job.Page == nil {
		return nil
	}
	doc, err := s.extractor.Extract(job.Page)
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}
	job.Document = doc
	job.Content = doc.Text
	return nil
}

// ScoreStep runs the heuristic engine.
type ScoreStep struct {
	engine           *heuristic.Engine
	lists            ListSource
	maxContentLength int
	logger           *slog.Logger
	now              func() time.Time
}

// ScoreStepOption configures a ScoreStep.
type ScoreStepOption func(*ScoreStep)

// WithMaxContentLength lowers the number of runes of page text that are scored.
func WithMaxContentLength(n int) ScoreStepOption {
	return func(s *ScoreStep) {
		s.maxContentLength = n
	}
}

// WithScoreLogger sets the logger.
func WithScoreLogger(logger *slog.Logger) ScoreStepOption {
	return func(s *ScoreStep) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScoreStep creates a score step. A nil engine uses the default rule set.
func NewScoreStep(engine *heuristic.Engine, lists ListSource, opts ...ScoreStepOption) *ScoreStep {
	if engine == nil {
		engine = heuristic.Default()
	}
	if lists == nil {
		lists = StaticLists{}
	}
	s := &ScoreStep{
		engine: engine,
		lists:  lists,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ScoreStep) Name() string {
	return StepScore
}

// Do scores the job. A URL that cannot be parsed is still scored; the
// engine reports it as an analysis error.
//
// When the loader followed a redirect to another host, the requested URL
// is scored against the same content as well and the higher score wins, so
// a blacklisted or shortened link keeps its verdict after the hand-off.
// Ties go to the final URL.
func (s *ScoreStep) Do(ctx context.Context, job *Job) error {
	lists, err := s.lists.Lists(ctx)
	if err != nil {
		return fmt.Errorf("failed to load lists: %w", err)
	}

	in := s.input(job.URL(), job.Content)
	result := s.engine.Score(in, lists)

	if origin, ok := s.redirectOrigin(job, in); ok {
		if r := s.engine.Score(origin, lists); r.Score > result.Score {
			s.logger.Debug("requested URL scores higher than redirect target",
				"url", origin.URL,
				"final_url", in.URL,
				"score", r.Score,
			)
			in, result = origin, r
		}
	}

	job.Input = in
	job.Result = result
	job.Record = model.NewScanRecord(in, job.Result, job.Source, s.now())

	s.logger.Debug("page scored",
		"url", in.URL,
		"score", job.Result.Score,
		"status", job.Result.Status,
	)
	return nil
}

func (s *ScoreStep) input(rawURL, content string) model.ScanInput {
	in, err := model.NewScanInput(rawURL, content)
	if err != nil {
		s.logger.Debug("scoring malformed URL", "url", rawURL, "error", err)
	}
	if s.maxContentLength > 0 {
		in.Content = model.BoundContent(in.Content, s.maxContentLength)
	}
	return in
}

// redirectOrigin returns the input for the requested URL when the loaded
// page ended up on a different host.
func (s *ScoreStep) redirectOrigin(job *Job, final model.ScanInput) (model.ScanInput, bool) {
	if job.Page == nil || job.Target == "" || job.Target == final.URL {
		return model.ScanInput{}, false
	}
	origin := s.input(job.Target, final.Content)
	if origin.Domain == "" || domain.Normalize(origin.Domain) == domain.Normalize(final.Domain) {
		return model.ScanInput{}, false
	}
	return origin, true
}

// PersistStep stores the scan record.
type PersistStep struct {
	store RecordStore
}

// NewPersistStep creates a persist step.
func NewPersistStep(store RecordStore) *PersistStep {
	return &PersistStep{store: store}
}

// Name returns the step name.
func (s *PersistStep) Name() string {
	return StepPersist
}

// Do saves job.Record.
func (s *PersistStep) Do(ctx context.Context, job *Job) error {
	if job.Record == nil {
		return nil
	}
	if _, err := s.store.SaveScanRecord(ctx, job.Record); err != nil {
		return fmt.Errorf("failed to save scan record: %w", err)
	}
	return nil
}

// DecideStep maps the result to host actions.
type DecideStep struct {
	settings config.Settings
}

// NewDecideStep creates a decide step.
func NewDecideStep(settings config.Settings) *DecideStep {
	return &DecideStep{settings: settings}
}

// Name returns the step name.
func (s *DecideStep) Name() string {
	return StepDecide
}

// Do sets job.Decision. Unscored jobs get the zero Decision.
func (s *DecideStep) Do(_ context.Context, job *Job) error {
	if !job.Scored() {
		job.Decision = guard.Decision{}
		return nil
	}
	job.Decision = guard.Decide(s.settings, &job.Result)
	return nil
}

// Deps holds what a standard scan pipeline needs.
type Deps struct {
	// Loader fetches or renders pages.
	Loader crawler.Loader

	// Extractor turns pages into text. Nil uses the defaults.
	Extractor *crawler.Extractor

	// Engine scores pages. Nil uses the default rule set.
	Engine *heuristic.Engine

	// Lists provides the list snapshot.
	Lists ListSource

	// Store persists records. Nil skips persistence.
	Store RecordStore

	// Settings drives the decision step.
	Settings config.Settings

	// MaxContentLength bounds the scored text, in runes. Zero keeps the default.
	MaxContentLength int

	// Logger is shared by the pipeline and its steps.
	Logger *slog.Logger
}

// NewScanPipeline builds load, extract, score, persist and decide steps.
func NewScanPipeline(deps Deps, opts ...Option) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	p := New(append([]Option{WithLogger(logger)}, opts...)...)
	p.AddSteps(
		NewLoadStep(deps.Loader, logger),
		NewExtractStep(deps.Extractor),
		NewScoreStep(deps.Engine, deps.Lists,
			WithMaxContentLength(deps.MaxContentLength),
			WithScoreLogger(logger),
		),
	)
	if deps.Store != nil {
		p.AddStep(NewPersistStep(deps.Store))
	}
	p.AddStep(NewDecideStep(deps.Settings))
	return p
}
