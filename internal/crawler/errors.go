package crawler

import "errors"

var (
	// ErrUnsupportedScheme is returned when a URL is neither http nor https.
	ErrUnsupportedScheme = errors.New("unsupported URL scheme: only http and https can be scanned")

	// ErrMissingHost is returned when a URL has no hostname.
	ErrMissingHost = errors.New("URL has no host")

	// ErrUnexpectedStatus is returned when the server answers with a 4xx or 5xx status.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrEmptyPage is returned when a loader produced no HTML at all.
	ErrEmptyPage = errors.New("page has no content")
)
