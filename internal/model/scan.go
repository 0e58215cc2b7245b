package model

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/sha3"
	"golang.org/x/net/idna"
)

// DefaultMaxContentLength bounds the page text handed to the scoring engine, in runes.
const DefaultMaxContentLength = 50000

// ErrInvalidURL is returned by NewScanInput when the URL has no usable host.
var ErrInvalidURL = errors.New("invalid URL: missing scheme or host")

// ScanInput is everything the scoring engine looks at for one page.
// It is built fresh for every scan and never modified afterwards.
type ScanInput struct {
	// URL is the absolute page URL.
	URL string `json:"url"`

	// Domain is the lowercased hostname of URL.
	Domain string `json:"domain"`

	// Content is the lowercased, length-bounded page text.
	Content string `json:"-"`
}

// NewScanInput builds a ScanInput from a raw URL and raw page text.
//
// The hostname is lowercased and converted to its ASCII (punycode) form. Content is
// lowercased and truncated to DefaultMaxContentLength runes.
//
// When the URL cannot be parsed the returned input still carries the raw URL
// and content together with ErrInvalidURL; the engine scores such input in
// degraded mode rather than refusing it.
func NewScanInput(rawURL, content string) (ScanInput, error) {
	in := ScanInput{
		URL:     strings.TrimSpace(rawURL),
		Content: NormalizeContent(content),
	}

	u, err := url.Parse(in.URL)
	if err != nil {
		return in, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Hostname() == "" {
		return in, ErrInvalidURL
	}

	in.Domain = HostnameASCII(u.Hostname())
	return in, nil
}

// NormalizeContent lowercases content and bounds it to
// DefaultMaxContentLength runes, exactly as NewScanInput does.
func NormalizeContent(content string) string {
	return BoundContent(strings.ToLower(content), DefaultMaxContentLength)
}

// HostnameASCII lowercases host and converts internationalized names to
// punycode. Hosts that fail IDNA conversion are returned lowercased as is.
func HostnameASCII(host string) string {
	host = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
	if ascii, err := idna.Lookup.ToASCII(host); err == nil && ascii != "" {
		return ascii
	}
	return host
}

// BoundContent truncates s to at most maxRunes runes without splitting a
// multi-byte character. A non-positive limit disables truncation.
func BoundContent(s string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	i := 0
	for pos := range s {
		if i == maxRunes {
			return s[:pos]
		}
		i++
	}
	return s
}

// ContentHash returns a hex SHA3-256 fingerprint of page content.
// Hosts use it to tell a content change from a repeated event.
func ContentHash(content string) string {
	sum := sha3.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// ScanResult is the outcome of scoring one ScanInput.
// It is produced once per scan and never mutated after it is returned.
type ScanResult struct {
	// Score is the non-negative sum of all triggered rule weights.
	Score int `json:"score"`

	// Status is the classification of Score.
	Status Status `json:"status"`

	// Issues lists one human-readable line per triggered rule, in evaluation order.
	Issues []string `json:"issues"`
}

// IsValid reports whether the result is usable by host collaborators.
// A nil result, a negative score or an unknown status are all invalid.
func (r *ScanResult) IsValid() bool {
	return r != nil && r.Score >= 0 && r.Status.IsValid()
}

// Clone returns a copy that does not share the Issues backing array.
func (r ScanResult) Clone() ScanResult {
	r.Issues = slices.Clone(r.Issues)
	return r
}

// ScanRecord is a persisted snapshot of a scan, kept for later display until
// the host's retention window expires.
type ScanRecord struct {
	// ID is the database identifier. Zero for records not yet stored.
	ID int64 `json:"id,omitempty"`

	// URL is the scanned page URL.
	URL string `json:"url"`

	// Domain is the scanned hostname.
	Domain string `json:"domain"`

	// Result is the scoring outcome.
	Result ScanResult `json:"result"`

	// ContentHash fingerprints the scanned content (see ContentHash).
	ContentHash string `json:"content_hash,omitempty"`

	// Source tells what triggered the scan.
	Source ScanSource `json:"source,omitempty"`

	// ScannedAt is when the scan finished.
	ScannedAt time.Time `json:"scanned_at"`
}

// NewScanRecord combines an input and its result into a record stamped with now.
func NewScanRecord(in ScanInput, result ScanResult, source ScanSource, now time.Time) *ScanRecord {
	return &ScanRecord{
		URL:         in.URL,
		Domain:      in.Domain,
		Result:      result.Clone(),
		ContentHash: ContentHash(in.Content),
		Source:      source,
		ScannedAt:   now,
	}
}

// Expired reports whether the record is older than retention at time now.
// A non-positive retention never expires records.
func (r *ScanRecord) Expired(now time.Time, retention time.Duration) bool {
	if retention <= 0 {
		return false
	}
	return now.Sub(r.ScannedAt) > retention
}
