// Package crawler loads web pages and turns them into scannable text.
//
// # Components
//
//   - Fetcher: plain HTTP loader with a rate limiter, user agent and body size limit
//   - Renderer: headless Chrome loader for pages that build their content with JavaScript
//   - Parser: HTML walker that collects visible text, title and forms
//   - Extractor: combines Parser output with a readability pass into a Document
//
// Fetcher and Renderer both satisfy Loader, so callers can switch between
// them with a flag.
//
// # Usage
//
//	fetcher := crawler.NewFetcher(http.DefaultClient, crawler.WithDelay(500*time.Millisecond))
//	page, err := fetcher.Load(ctx, "https://example.com")
//	if err != nil {
//		return err
//	}
//	doc, err := crawler.NewExtractor().Extract(page)
//
// Only http and https URLs are accepted. Anything else fails with
// ErrUnsupportedScheme before a request is made.
package crawler
