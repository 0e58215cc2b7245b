package crawler

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-shiori/go-readability"
	"golang.org/x/text/unicode/norm"
)

// DefaultExcerptLength is the number of runes kept in Document.Excerpt.
const DefaultExcerptLength = 280

// Document is the text view of a page that the scoring engine consumes.
type Document struct {
	// URL is the effective page URL.
	URL string

	// Title is the page title.
	Title string

	// Text is the whole visible text of the page, NFKC-folded with
	// whitespace collapsed.
	Text string

	// Excerpt is the start of the main article text, for display.
	Excerpt string

	// Forms lists the forms on the page.
	Forms []FormInfo
}

// SecretForms returns the forms that ask for passwords, card data or codes.
func (d *Document) SecretForms() []FormInfo {
	var out []FormInfo
	for _, f := range d.Forms {
		if f.AsksForSecrets() {
			out = append(out, f)
		}
	}
	return out
}

// Extractor turns a Page into a Document.
type Extractor struct {
	excerptLength int
	logger        *slog.Logger
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithExcerptLength sets the excerpt length in runes.
func WithExcerptLength(n int) ExtractorOption {
	return func(e *Extractor) {
		if n > 0 {
			e.excerptLength = n
		}
	}
}

// WithExtractorLogger sets the logger.
func WithExtractorLogger(logger *slog.Logger) ExtractorOption {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExtractor creates an Extractor.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		excerptLength: DefaultExcerptLength,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract builds a Document from page.
//
// The text is everything the HTML walk sees, including banners, buttons and
// form placeholders. Readability supplies the excerpt and fills in the text
// and title when the walk found none.
func (e *Extractor) Extract(page *Page) (*Document, error) {
	if page == nil || len(bytes.TrimSpace(page.HTML)) == 0 {
		return nil, ErrEmptyPage
	}

	doc := &Document{URL: page.EffectiveURL(), Title: page.Title}

	if !page.IsHTML() {
		doc.Text = NormalizeText(string(page.HTML))
		doc.Excerpt = truncateRunes(doc.Text, e.excerptLength)
		return doc, nil
	}

	parser, err := NewParser(doc.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create parser: %w", err)
	}
	parsed, err := parser.Parse(bytes.NewReader(page.HTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Text = NormalizeText(parsed.Text)
	doc.Forms = parsed.Forms
	if parsed.Title != "" {
		doc.Title = parsed.Title
	}

	var article string
	if u, err := CheckURL(doc.URL); err == nil {
		a, rerr := readability.FromReader(bytes.NewReader(page.HTML), u)
		if rerr != nil {
			e.logger.Debug("readability failed", "url", doc.URL, "error", rerr)
		} else {
			article = NormalizeText(a.TextContent)
			if doc.Title == "" {
				doc.Title = a.Title
			}
		}
	}

	if doc.Text == "" {
		doc.Text = article
	}
	switch {
	case article != "":
		doc.Excerpt = truncateRunes(article, e.excerptLength)
	case parsed.Description != "":
		doc.Excerpt = truncateRunes(NormalizeText(parsed.Description), e.excerptLength)
	default:
		doc.Excerpt = truncateRunes(doc.Text, e.excerptLength)
	}
	doc.Title = NormalizeText(doc.Title)
	return doc, nil
}

// NormalizeText folds compatibility characters (full-width letters,
// ligatures and similar lookalikes) with NFKC and collapses whitespace.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
