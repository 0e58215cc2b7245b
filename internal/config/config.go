package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/scamguard/internal/model"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "scamguard"

	// DefaultTimeout bounds a single page fetch or render.
	DefaultTimeout = 30 * time.Second

	// DefaultBatchSize is the number of URLs scanned concurrently.
	DefaultBatchSize = 5

	// DefaultCrawlDelay is the minimum interval between two fetches.
	DefaultCrawlDelay = 500 * time.Millisecond

	// DefaultUserAgent identifies scamguard in HTTP requests.
	DefaultUserAgent = "scamguard/1.0 (+https://github.com/nao1215/scamguard)"

	// DefaultMaxBodySize limits the response body read per page.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultMaxContentLength bounds the page text handed to the scorer, in runes.
	DefaultMaxContentLength = model.DefaultMaxContentLength

	// DefaultDBFile is the SQLite file name inside the data directory.
	DefaultDBFile = "scamguard.db"
)

// Config holds the options of one scamguard invocation.
// It is populated from CLI flags and passed down explicitly.
type Config struct {
	// Timeout is the fetch or render timeout for each URL.
	Timeout time.Duration

	// BatchSize is the number of concurrent scans when several URLs are given.
	BatchSize int

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the usual locations.
	ConfigFilePath string

	// File is the loaded configuration file. It is never nil after Load.
	File *File

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report; stdout when empty.
	ReportFile string

	// Targets are the URLs to scan.
	Targets []string

	// DBDir is the directory holding the SQLite database.
	DBDir string

	// CrawlDelay is the minimum interval between fetches.
	CrawlDelay time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes.
	// Zero means DefaultMaxBodySize.
	MaxBodySize int64

	// MaxContentLength bounds the extracted text, in runes.
	// Zero means DefaultMaxContentLength.
	MaxContentLength int

	// Render loads pages in headless Chrome instead of a plain HTTP GET.
	Render bool

	// ContentFile is a local file whose text is scored instead of fetching the URL.
	ContentFile string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Timeout:          DefaultTimeout,
		BatchSize:        DefaultBatchSize,
		CrawlDelay:       DefaultCrawlDelay,
		UserAgent:        DefaultUserAgent,
		MaxBodySize:      DefaultMaxBodySize,
		MaxContentLength: DefaultMaxContentLength,
		DBDir:            XDGDataDir(),
		File:             NewFile(),
	}
}

// DBPath returns the SQLite database path inside DBDir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DBDir, DefaultDBFile)
}

// XDGDataDir returns the XDG data directory for scamguard.
// On Linux: ~/.local/share/scamguard
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for scamguard.
// On Linux: ~/.config/scamguard
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for scamguard.
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks the scan options. It returns the first problem found.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.CrawlDelay < 0 {
		return ErrInvalidCrawlDelay
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.MaxContentLength < 0 {
		return ErrInvalidMaxContentLength
	}
	if c.ContentFile != "" && len(c.Targets) > 1 {
		return ErrContentFileWithMultipleTargets
	}
	if c.File != nil {
		return c.File.Settings.Validate()
	}
	return nil
}
