package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/scamguard/internal/crawler"
	"github.com/nao1215/scamguard/internal/guard"
	"github.com/nao1215/scamguard/internal/heuristic"
	"github.com/nao1215/scamguard/internal/model"
	"github.com/nao1215/scamguard/internal/pipeline"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Score page events read from stdin",
		Long: `Watch reads one page event per line from stdin and scores each page as a
browser would on navigation. A line is either a URL, or a URL and the page
text separated by a tab.

Repeated events for the same URL are skipped within the scan cooldown
unless the page text changed. Expired scan results are removed on the
cleanup schedule while watch runs. One line is printed per scanned page.

Examples:
  # Score URLs from a file
  scamguard watch < urls.txt

  # Treat every event as an explicit user request
  tail -f navigations.log | scamguard watch --source manual`,
		Args: cobra.NoArgs,
		RunE: runWatchCmd,
	}

	cmd.Flags().String("source", string(model.SourcePageLoad),
		"Event source: page_load, content_change or manual")

	return cmd
}

// runWatchCmd executes the watch command.
func runWatchCmd(cmd *cobra.Command, _ []string) error {
	sourceFlag, err := cmd.Flags().GetString("source")
	if err != nil {
		return err
	}
	source, err := parseSource(sourceFlag)
	if err != nil {
		return err
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := e.openDB(ctx); err != nil {
		return err
	}
	defer e.close()

	scan, err := newWatchScanFunc(e)
	if err != nil {
		return err
	}

	monitor, err := guard.NewMonitor(scan, e.settings(),
		guard.WithPurger(e.db),
		guard.WithActivityLog(e.db),
		guard.WithMonitorLogger(e.logger),
		guard.WithOutcomeHandler(func(o guard.Outcome) {
			printOutcome(e.out, o)
		}),
	)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return monitor.Run(gctx)
	})
	g.Go(func() error {
		defer monitor.Close()

		// A read from stdin cannot be interrupted, so the reader is not
		// waited for once the context is done.
		errc := make(chan error, 1)
		go func() {
			errc <- readEvents(gctx, cmd.InOrStdin(), source, monitor)
		}()
		select {
		case err := <-errc:
			return err
		case <-gctx.Done():
			return gctx.Err()
		}
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	stats := monitor.Stats()
	e.logger.Info("watch finished",
		"scanned", stats.Scanned,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)
	return nil
}

// parseSource converts the --source flag.
func parseSource(s string) (model.ScanSource, error) {
	switch src := model.ScanSource(strings.ToLower(strings.TrimSpace(s))); src {
	case model.SourcePageLoad, model.SourceContentChange, model.SourceManual:
		return src, nil
	default:
		return "", fmt.Errorf("unknown event source %q (use page_load, content_change or manual)", s)
	}
}

// newWatchScanFunc returns a ScanFunc that runs the scan pipeline against
// the live lists, so reports submitted while watching take effect.
func newWatchScanFunc(e *env) (guard.ScanFunc, error) {
	ruleSet, err := e.cfg.File.RuleSet()
	if err != nil {
		return nil, err
	}
	engine, err := heuristic.New(ruleSet)
	if err != nil {
		return nil, fmt.Errorf("failed to build scoring engine: %w", err)
	}

	p := pipeline.NewScanPipeline(pipeline.Deps{
		Loader:           newLoader(e.cfg, e),
		Extractor:        crawler.NewExtractor(crawler.WithExtractorLogger(e.logger)),
		Engine:           engine,
		Lists:            e.db,
		Store:            e.db,
		Settings:         e.settings(),
		MaxContentLength: e.cfg.MaxContentLength,
		Logger:           e.logger,
	})

	return func(ctx context.Context, ev guard.Event) (*model.ScanRecord, error) {
		job := pipeline.NewJob(ev.URL, ev.Source)
		job.Content = ev.Content
		if err := p.Execute(ctx, job); err != nil && !job.Scored() {
			return nil, err
		}
		return job.Record, nil
	}, nil
}

// readEvents submits one event per non-empty input line until EOF.
func readEvents(ctx context.Context, r io.Reader, source model.ScanSource, monitor *guard.Monitor) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ev := guard.Event{URL: line, Source: source}
		if u, content, ok := strings.Cut(line, "\t"); ok {
			ev.URL = strings.TrimSpace(u)
			ev.Content = content
		}
		if err := monitor.Submit(ctx, ev); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}
	return nil
}

// printOutcome writes one line per scanned event.
func printOutcome(w io.Writer, o guard.Outcome) {
	if o.Err != nil {
		fmt.Fprintf(w, "[FAILED]  %s: %v\n", o.Event.URL, o.Err)
		return
	}

	r := o.Record.Result
	line := fmt.Sprintf("[%-7s] %s (score %d)", strings.ToUpper(r.Status.String()), o.Record.URL, r.Score)
	if o.Decision.Block {
		line += " blocked -> " + o.Decision.RedirectTo
	} else if o.Decision.Notify {
		line += " notified"
	}
	fmt.Fprintln(w, line)
}
