package config

import "errors"

// Configuration validation errors returned by Config.Validate and Settings.Validate.
var (
	// ErrNoTarget is returned when no URL is given to scan.
	ErrNoTarget = errors.New("no target specified: provide at least one URL")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidCrawlDelay is returned when the delay between fetches is negative.
	ErrInvalidCrawlDelay = errors.New("invalid crawl delay: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidMaxContentLength is returned when the content bound is negative.
	ErrInvalidMaxContentLength = errors.New("invalid max content length: must be non-negative")

	// ErrContentFileWithMultipleTargets is returned when --content-file is
	// combined with more than one URL.
	ErrContentFileWithMultipleTargets = errors.New("--content-file accepts exactly one URL")

	// ErrInvalidThreshold is returned when the notification threshold is not
	// "warning" or "danger".
	ErrInvalidThreshold = errors.New("invalid notify threshold: must be warning or danger")

	// ErrInvalidCooldown is returned when the rescan cooldown is negative.
	ErrInvalidCooldown = errors.New("invalid scan cooldown: must be non-negative")

	// ErrInvalidRetention is returned when the result retention is not positive.
	ErrInvalidRetention = errors.New("invalid retention: must be positive")
)
