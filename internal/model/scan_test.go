package model

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestNewScanInput(t *testing.T) {
	t.Parallel()

	t.Run("lowercases host and content", func(t *testing.T) {
		t.Parallel()
		in, err := NewScanInput("https://WWW.Example.COM/Path?q=1", "Guaranteed SCHOLARSHIP")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.Domain != "www.example.com" {
			t.Errorf("expected www.example.com, got %q", in.Domain)
		}
		if in.Content != "guaranteed scholarship" {
			t.Errorf("expected lowercased content, got %q", in.Content)
		}
		if in.URL != "https://WWW.Example.COM/Path?q=1" {
			t.Errorf("expected URL to be kept verbatim, got %q", in.URL)
		}
	})

	t.Run("converts internationalized hosts to punycode", func(t *testing.T) {
		t.Parallel()
		in, err := NewScanInput("https://bücher.example/", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.Domain != "xn--bcher-kva.example" {
			t.Errorf("expected punycode host, got %q", in.Domain)
		}
	})

	t.Run("missing host returns ErrInvalidURL but keeps content", func(t *testing.T) {
		t.Parallel()
		in, err := NewScanInput("not a url", "BVN")
		if !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("expected ErrInvalidURL, got %v", err)
		}
		if in.Content != "bvn" {
			t.Errorf("expected content to be kept, got %q", in.Content)
		}
		if in.Domain != "" {
			t.Errorf("expected empty domain, got %q", in.Domain)
		}
	})

	t.Run("content is bounded", func(t *testing.T) {
		t.Parallel()
		in, _ := NewScanInput("https://example.com", strings.Repeat("a", DefaultMaxContentLength+100))
		if got := utf8.RuneCountInString(in.Content); got != DefaultMaxContentLength {
			t.Errorf("expected %d runes, got %d", DefaultMaxContentLength, got)
		}
	})
}

func TestBoundContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{name: "shorter than limit", input: "abc", max: 10, want: "abc"},
		{name: "exact limit", input: "abc", max: 3, want: "abc"},
		{name: "truncated", input: "abcdef", max: 4, want: "abcd"},
		{name: "multi-byte runes kept whole", input: "ñañaña", max: 3, want: "ñañ"},
		{name: "zero disables limit", input: "abcdef", max: 0, want: "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := BoundContent(tt.input, tt.max); got != tt.want {
				t.Errorf("BoundContent(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
		})
	}
}

func TestContentHash(t *testing.T) {
	t.Parallel()

	a := ContentHash("hello")
	b := ContentHash("hello")
	c := ContentHash("hello!")

	if a != b {
		t.Error("expected identical content to hash identically")
	}
	if a == c {
		t.Error("expected different content to hash differently")
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(a))
	}
}

func TestScanResultIsValid(t *testing.T) {
	t.Parallel()

	var nilResult *ScanResult
	if nilResult.IsValid() {
		t.Error("expected nil result to be invalid")
	}
	if (&ScanResult{Score: -1, Status: StatusSafe}).IsValid() {
		t.Error("expected negative score to be invalid")
	}
	if (&ScanResult{Score: 10}).IsValid() {
		t.Error("expected missing status to be invalid")
	}
	if !(&ScanResult{Score: 10, Status: StatusSafe}).IsValid() {
		t.Error("expected well-formed result to be valid")
	}
}

func TestScanRecordExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	in := ScanInput{URL: "https://example.com", Domain: "example.com", Content: "text"}
	rec := NewScanRecord(in, ScanResult{Status: StatusSafe}, SourceManual, now.Add(-2*time.Hour))

	if rec.ContentHash != ContentHash("text") {
		t.Error("expected record to carry the content hash")
	}
	if !rec.Expired(now, time.Hour) {
		t.Error("expected record older than retention to be expired")
	}
	if rec.Expired(now, 3*time.Hour) {
		t.Error("expected record within retention not to be expired")
	}
	if rec.Expired(now, 0) {
		t.Error("expected zero retention to disable expiry")
	}
}
