package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultRenderWait is how long the renderer lets scripts run after the
// load event before capturing the DOM.
const DefaultRenderWait = 1500 * time.Millisecond

// Renderer loads pages in headless Chrome so that content injected by
// JavaScript is part of the captured HTML. It needs a Chrome or Chromium
// binary on the host.
type Renderer struct {
	allocOpts []chromedp.ExecAllocatorOption
	timeout   time.Duration
	wait      time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithRenderTimeout bounds a single page render.
func WithRenderTimeout(d time.Duration) RendererOption {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithRenderWait sets the settle time after navigation.
func WithRenderWait(d time.Duration) RendererOption {
	return func(r *Renderer) {
		r.wait = d
	}
}

// WithRendererUserAgent overrides the browser user agent.
func WithRendererUserAgent(ua string) RendererOption {
	return func(r *Renderer) {
		if ua != "" {
			r.allocOpts = append(r.allocOpts, chromedp.UserAgent(ua))
		}
	}
}

// WithExecPath points the renderer at a specific browser binary.
func WithExecPath(path string) RendererOption {
	return func(r *Renderer) {
		if path != "" {
			r.allocOpts = append(r.allocOpts, chromedp.ExecPath(path))
		}
	}
}

// WithRendererLogger sets the logger.
func WithRendererLogger(logger *slog.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer creates a Renderer with headless, sandbox-free defaults.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		allocOpts: append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.NoSandbox,
		),
		timeout: 30 * time.Second,
		wait:    DefaultRenderWait,
		logger:  slog.New(slog.DiscardHandler),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load renders rawURL and returns the serialized DOM.
// Each call starts its own browser process.
func (r *Renderer) Load(ctx context.Context, rawURL string) (*Page, error) {
	u, err := CheckURL(rawURL)
	if err != nil {
		return nil, err
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.allocOpts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		tabCtx, cancel = context.WithTimeout(tabCtx, r.timeout)
		defer cancel()
	}

	r.logger.Debug("rendering page", "url", u.String())

	var html, title, finalURL string
	actions := []chromedp.Action{chromedp.Navigate(u.String())}
	if r.wait > 0 {
		actions = append(actions, chromedp.Sleep(r.wait))
	}
	actions = append(actions,
		chromedp.OuterHTML("html", &html),
		chromedp.Title(&title),
		chromedp.Location(&finalURL),
	)
	if err := chromedp.Run(tabCtx, actions...); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", u.Redacted(), err)
	}
	if html == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPage, u.Redacted())
	}

	return &Page{
		URL:         u.String(),
		FinalURL:    finalURL,
		ContentType: "text/html",
		Title:       title,
		HTML:        []byte(html),
		Rendered:    true,
		FetchedAt:   r.now(),
	}, nil
}

var (
	_ Loader = (*Fetcher)(nil)
	_ Loader = (*Renderer)(nil)
)
