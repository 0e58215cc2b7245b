package crawler

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Page is a loaded web page before text extraction.
type Page struct {
	// URL is the URL that was requested.
	URL string

	// FinalURL is the URL after redirects.
	FinalURL string

	// StatusCode is the HTTP status. Zero when the page was rendered.
	StatusCode int

	// ContentType is the Content-Type header value.
	ContentType string

	// Title is the document title as reported by the loader, if any.
	Title string

	// HTML is the raw body (or the serialized DOM for rendered pages).
	HTML []byte

	// Rendered is true when JavaScript ran before the HTML was captured.
	Rendered bool

	// FetchedAt is when loading finished.
	FetchedAt time.Time
}

// IsHTML reports whether the page should be parsed as HTML.
// An empty content type is treated as HTML.
func (p *Page) IsHTML() bool {
	if p.Rendered || p.ContentType == "" {
		return true
	}
	ct := strings.ToLower(p.ContentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml")
}

// EffectiveURL returns FinalURL when known and URL otherwise.
func (p *Page) EffectiveURL() string {
	if p.FinalURL != "" {
		return p.FinalURL
	}
	return p.URL
}

// Loader loads a single page.
type Loader interface {
	Load(ctx context.Context, rawURL string) (*Page, error)
}

// CheckURL parses rawURL and verifies it is an absolute http(s) URL.
func CheckURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: %q", ErrMissingHost, rawURL)
	}
	return u, nil
}
