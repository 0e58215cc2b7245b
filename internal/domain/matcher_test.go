package domain

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain domain", input: "example.com", want: "example.com"},
		{name: "uppercase", input: "EXAMPLE.Com", want: "example.com"},
		{name: "www prefix", input: "www.example.com", want: "example.com"},
		{name: "uppercase www prefix", input: "WWW.Example.com", want: "example.com"},
		{name: "https scheme", input: "https://www.example.com", want: "example.com"},
		{name: "http scheme", input: "http://example.com", want: "example.com"},
		{name: "surrounding spaces", input: "  example.com ", want: "example.com"},
		{name: "wildcard kept", input: "*.Example.com", want: "*.example.com"},
		{name: "unicode host to punycode", input: "Bücher.TK", want: "xn--bcher-kva.tk"},
		{name: "unicode wildcard keeps prefix", input: "*.bücher.tk", want: "*.xn--bcher-kva.tk"},
		{name: "unicode with scheme and www", input: "https://www.bücher.tk", want: "xn--bcher-kva.tk"},
		{name: "punycode unchanged", input: "xn--bcher-kva.tk", want: "xn--bcher-kva.tk"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		candidate string
		pattern   string
		want      bool
	}{
		{name: "exact match", candidate: "example.com", pattern: "example.com", want: true},
		{name: "case insensitive and www insensitive", candidate: "WWW.Example.com", pattern: "example.com", want: true},
		{name: "www on pattern side", candidate: "example.com", pattern: "www.example.com", want: true},
		{name: "subdomain of bare pattern", candidate: "login.example.com", pattern: "example.com", want: true},
		{name: "deep subdomain of wildcard", candidate: "a.b.example.com", pattern: "*.example.com", want: true},
		{name: "wildcard matches its base", candidate: "example.com", pattern: "*.example.com", want: true},
		{name: "wildcard does not match lookalike", candidate: "notexample.com", pattern: "*.example.com", want: false},
		{name: "bare does not match lookalike", candidate: "notexample.com", pattern: "example.com", want: false},
		{name: "parent does not match child pattern", candidate: "example.com", pattern: "login.example.com", want: false},
		{name: "different domain", candidate: "example.org", pattern: "example.com", want: false},
		{name: "empty candidate", candidate: "", pattern: "example.com", want: false},
		{name: "empty pattern", candidate: "example.com", pattern: "", want: false},
		{name: "bare wildcard", candidate: "example.com", pattern: "*.", want: false},
		{name: "scheme on candidate", candidate: "https://shop.example.com", pattern: "example.com", want: true},
		{name: "punycode candidate against unicode pattern", candidate: "xn--bcher-kva.tk", pattern: "bücher.tk", want: true},
		{name: "unicode candidate against punycode pattern", candidate: "shop.bücher.tk", pattern: "xn--bcher-kva.tk", want: true},
		{name: "punycode subdomain against unicode wildcard", candidate: "a.xn--bcher-kva.tk", pattern: "*.bücher.tk", want: true},
		{name: "unicode lookalike does not match ascii", candidate: "xn--bcher-kva.tk", pattern: "bucher.tk", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Matches(tt.candidate, tt.pattern); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.candidate, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestMatchesReflexive(t *testing.T) {
	t.Parallel()

	domains := []string{
		"example.com",
		"WWW.Example.com",
		"a.b.c.example.co.uk",
		"*.example.com",
		"xn--80ak6aa92e.com",
		"localhost",
	}
	for _, d := range domains {
		if !Matches(d, d) {
			t.Errorf("Matches(%q, %q) = false, want true", d, d)
		}
	}
}

func TestMatchesAny(t *testing.T) {
	t.Parallel()

	t.Run("returns first matching pattern", func(t *testing.T) {
		t.Parallel()
		got, ok := MatchesAny("pay.scam.example", []string{"other.example", "*.scam.example", "scam.example"})
		if !ok {
			t.Fatal("expected a match")
		}
		if got != "*.scam.example" {
			t.Errorf("expected *.scam.example, got %q", got)
		}
	})

	t.Run("no patterns", func(t *testing.T) {
		t.Parallel()
		if _, ok := MatchesAny("scam.example", nil); ok {
			t.Error("expected no match against empty list")
		}
	})
}

func TestIsWildcard(t *testing.T) {
	t.Parallel()

	if !IsWildcard("*.example.com") {
		t.Error("expected *.example.com to be a wildcard")
	}
	if IsWildcard("example.com") {
		t.Error("expected example.com not to be a wildcard")
	}
}
