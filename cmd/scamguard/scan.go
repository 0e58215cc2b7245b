package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/scamguard/internal/config"
	"github.com/nao1215/scamguard/internal/crawler"
	"github.com/nao1215/scamguard/internal/heuristic"
	"github.com/nao1215/scamguard/internal/model"
	"github.com/nao1215/scamguard/internal/pipeline"
	"github.com/nao1215/scamguard/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [url]...",
		Short: "Score web pages for scam signals",
		Long: `Scan fetches each URL, extracts its visible text and scores it for scam
signals against the stored whitelist and blacklist.

The report shows the score, the status (safe, warning or danger), every
detected issue and what scamguard would do: notify the user, or block the
page and redirect it to the warning page.

Examples:
  # Scan a single page
  scamguard scan https://example.com/login

  # Scan several pages, three at a time
  scamguard scan -b 3 https://a.example https://b.example https://c.example

  # Render JavaScript with headless Chrome before scoring
  scamguard scan --render https://spa.example

  # Score text you already have instead of fetching the page
  scamguard scan --content-file page.txt http://free-scholarship-ng.tk/apply

  # Write a Markdown report
  scamguard scan -m -o report.md https://example.com`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Fetch flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Fetch or render timeout for each URL")
	cmd.Flags().Duration("delay", config.DefaultCrawlDelay,
		"Minimum interval between two fetches")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with each request")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum response body size in bytes")
	cmd.Flags().Int("max-content", config.DefaultMaxContentLength,
		"Maximum number of characters of page text to score")
	cmd.Flags().BoolP("render", "r", false,
		"Render pages with headless Chrome before scoring")
	cmd.Flags().String("content-file", "",
		"Score the text of this file instead of fetching the URL")

	// Batch scanning flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent scans")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-save", false,
		"Do not store scan results in the history")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	if err := applyScanFlags(cmd, e.cfg, args); err != nil {
		return err
	}
	if err := e.cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := e.openDB(ctx); err != nil {
		return err
	}
	defer e.close()

	return runScan(ctx, e, !noSave)
}

// applyScanFlags copies the scan flags into cfg.
func applyScanFlags(cmd *cobra.Command, cfg *config.Config, args []string) error {
	var err error

	if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
		return err
	}
	if cfg.CrawlDelay, err = cmd.Flags().GetDuration("delay"); err != nil {
		return err
	}
	if cfg.UserAgent, err = cmd.Flags().GetString("user-agent"); err != nil {
		return err
	}
	if cfg.MaxBodySize, err = cmd.Flags().GetInt64("max-body-size"); err != nil {
		return err
	}
	if cfg.MaxContentLength, err = cmd.Flags().GetInt("max-content"); err != nil {
		return err
	}
	if cfg.Render, err = cmd.Flags().GetBool("render"); err != nil {
		return err
	}
	if cfg.ContentFile, err = cmd.Flags().GetString("content-file"); err != nil {
		return err
	}
	if cfg.BatchSize, err = cmd.Flags().GetInt("batch"); err != nil {
		return err
	}
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return err
	}

	cfg.Targets = args
	return nil
}

// runScan scores every target and writes one report for all of them.
func runScan(ctx context.Context, e *env, save bool) error {
	cfg := e.cfg

	ruleSet, err := cfg.File.RuleSet()
	if err != nil {
		return err
	}
	engine, err := heuristic.New(ruleSet)
	if err != nil {
		return fmt.Errorf("failed to build scoring engine: %w", err)
	}

	// Every page of one invocation is scored against the same lists.
	lists, err := e.db.Lists(ctx)
	if err != nil {
		return err
	}

	deps := pipeline.Deps{
		Loader:           newLoader(cfg, e),
		Extractor:        crawler.NewExtractor(crawler.WithExtractorLogger(e.logger)),
		Engine:           engine,
		Lists:            pipeline.StaticLists(lists),
		Settings:         e.settings(),
		MaxContentLength: cfg.MaxContentLength,
		Logger:           e.logger,
	}
	if save {
		deps.Store = e.db
	}

	e.logger.Info("starting scan",
		"targets", len(cfg.Targets),
		"render", cfg.Render,
		"batchSize", cfg.BatchSize,
		"save", save,
	)
	startTime := time.Now()

	var jobs []*pipeline.Job
	if cfg.ContentFile != "" {
		job, err := scanContentFile(ctx, deps, cfg.ContentFile, cfg.Targets[0])
		if err != nil {
			return err
		}
		jobs = []*pipeline.Job{job}
	} else {
		jobs, err = runBatchScan(ctx, e, deps)
		if err != nil {
			return err
		}
	}

	e.logger.Info("scan completed",
		"targets", len(jobs),
		"elapsed", time.Since(startTime).Round(time.Millisecond),
	)

	entries := make([]report.Entry, 0, len(jobs))
	for _, job := range jobs {
		entries = append(entries, report.EntryFromJob(job))
	}
	return outputReport(cfg, e.out, report.NewSummary(entries, time.Now()))
}

// newLoader returns the headless renderer when --render is set and the
// rate-limited HTTP fetcher otherwise.
func newLoader(cfg *config.Config, e *env) crawler.Loader {
	if cfg.Render {
		return crawler.NewRenderer(
			crawler.WithRenderTimeout(cfg.Timeout),
			crawler.WithRendererUserAgent(cfg.UserAgent),
			crawler.WithRendererLogger(e.logger),
		)
	}
	return crawler.NewFetcher(&http.Client{Timeout: cfg.Timeout},
		crawler.WithDelay(cfg.CrawlDelay),
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
		crawler.WithFetcherLogger(e.logger),
	)
}

// scanContentFile scores the text of path as the content of target.
func scanContentFile(ctx context.Context, deps pipeline.Deps, path, target string) (*pipeline.Job, error) {
	content, err := os.ReadFile(path) //nolint:gosec // User-provided content path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}

	job := pipeline.NewJob(target, model.SourceManual)
	job.Content = string(content)
	_ = pipeline.NewScanPipeline(deps).Execute(ctx, job) //nolint:errcheck // Failures are kept in job.Err and reported
	return job, nil
}

// runBatchScan scans all targets concurrently using BatchProcessor.
func runBatchScan(ctx context.Context, e *env, deps pipeline.Deps) ([]*pipeline.Job, error) {
	targets := e.cfg.Targets
	source := model.SourceBatch
	if len(targets) == 1 {
		source = model.SourceManual
	}

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline { return pipeline.NewScanPipeline(deps) },
		pipeline.WithConcurrency(e.cfg.BatchSize),
		pipeline.WithSource(source),
		pipeline.WithBatchLogger(e.logger),
	)

	jobs := make([]*pipeline.Job, len(targets))
	err := bp.ProcessBatchWithCallback(ctx, targets, func(job *pipeline.Job, index int) {
		jobs[index] = job
		if len(targets) == 1 {
			return
		}
		status := "failed"
		if job.Scored() {
			status = job.Result.Status.String()
		}
		e.logger.Info("scan finished",
			"progress", fmt.Sprintf("%d/%d", index+1, len(targets)),
			"url", job.URL(),
			"status", status,
		)
	})
	return jobs, err
}

// outputReport writes the summary in the requested format to the report
// file or to out.
func outputReport(cfg *config.Config, out io.Writer, summary *report.Summary) error {
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports may contain visited URLs, so they are readable by the owner only.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewFullJSONWriter(out, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(out)
	default:
		w = report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose))
	}

	if _, err := w.Write(summary); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
