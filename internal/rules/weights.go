package rules

import "fmt"

// Kind identifies a detection rule family.
type Kind int

const (
	// KindHTTPS fires when the page is not served over https.
	KindHTTPS Kind = iota
	// KindSuspiciousTLD fires when the domain ends with a low-trust TLD.
	KindSuspiciousTLD
	// KindURLShortener fires when the domain is a known link shortener.
	KindURLShortener
	// KindBlacklistHit fires when the domain is on the blacklist.
	KindBlacklistHit
	// KindKeywordCategory is the per-match weight for keyword categories.
	KindKeywordCategory
	// KindGenericSuspicious is the per-match weight for generic phishing phrases.
	KindGenericSuspicious
)

// Kinds lists every rule kind in evaluation order.
var Kinds = []Kind{
	KindHTTPS,
	KindSuspiciousTLD,
	KindURLShortener,
	KindBlacklistHit,
	KindKeywordCategory,
	KindGenericSuspicious,
}

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindHTTPS:
		return "https"
	case KindSuspiciousTLD:
		return "suspicious_tld"
	case KindURLShortener:
		return "url_shortener"
	case KindBlacklistHit:
		return "blacklist_hit"
	case KindKeywordCategory:
		return "keyword_category"
	case KindGenericSuspicious:
		return "generic_suspicious"
	default:
		return "unknown"
	}
}

// Default weights. Persisted and reported scores depend on these values.
const (
	DefaultHTTPSWeight             = 10
	DefaultSuspiciousTLDWeight     = 15
	DefaultURLShortenerWeight      = 10
	DefaultBlacklistHitWeight      = 70
	DefaultKeywordCategoryWeight   = 10
	DefaultGenericSuspiciousWeight = 3
)

// Weights maps every rule kind to its integer weight. A weight of zero
// switches the rule off.
type Weights struct {
	HTTPS             int `yaml:"https" json:"https"`
	SuspiciousTLD     int `yaml:"suspicious_tld" json:"suspicious_tld"`
	URLShortener      int `yaml:"url_shortener" json:"url_shortener"`
	BlacklistHit      int `yaml:"blacklist_hit" json:"blacklist_hit"`
	KeywordCategory   int `yaml:"keyword_category" json:"keyword_category"`
	GenericSuspicious int `yaml:"generic_suspicious" json:"generic_suspicious"`
}

// WeightOverrides holds the weights set by a configuration file.
// A nil field keeps the current weight; an explicit 0 disables the rule.
type WeightOverrides struct {
	HTTPS             *int `yaml:"https,omitempty"`
	SuspiciousTLD     *int `yaml:"suspicious_tld,omitempty"`
	URLShortener      *int `yaml:"url_shortener,omitempty"`
	BlacklistHit      *int `yaml:"blacklist_hit,omitempty"`
	KeywordCategory   *int `yaml:"keyword_category,omitempty"`
	GenericSuspicious *int `yaml:"generic_suspicious,omitempty"`
}

// DefaultWeights returns the canonical weight table.
func DefaultWeights() Weights {
	return Weights{
		HTTPS:             DefaultHTTPSWeight,
		SuspiciousTLD:     DefaultSuspiciousTLDWeight,
		URLShortener:      DefaultURLShortenerWeight,
		BlacklistHit:      DefaultBlacklistHitWeight,
		KeywordCategory:   DefaultKeywordCategoryWeight,
		GenericSuspicious: DefaultGenericSuspiciousWeight,
	}
}

// Of returns the weight for kind. Unknown kinds weigh nothing.
func (w Weights) Of(kind Kind) int {
	switch kind {
	case KindHTTPS:
		return w.HTTPS
	case KindSuspiciousTLD:
		return w.SuspiciousTLD
	case KindURLShortener:
		return w.URLShortener
	case KindBlacklistHit:
		return w.BlacklistHit
	case KindKeywordCategory:
		return w.KeywordCategory
	case KindGenericSuspicious:
		return w.GenericSuspicious
	default:
		return 0
	}
}

// Apply returns w with every field set in o applied.
func (w Weights) Apply(o WeightOverrides) Weights {
	set := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	set(&w.HTTPS, o.HTTPS)
	set(&w.SuspiciousTLD, o.SuspiciousTLD)
	set(&w.URLShortener, o.URLShortener)
	set(&w.BlacklistHit, o.BlacklistHit)
	set(&w.KeywordCategory, o.KeywordCategory)
	set(&w.GenericSuspicious, o.GenericSuspicious)
	return w
}

// Validate rejects negative weights, which would break score monotonicity.
func (w Weights) Validate() error {
	for _, k := range Kinds {
		if w.Of(k) < 0 {
			return fmt.Errorf("%w: %s=%d", ErrNegativeWeight, k, w.Of(k))
		}
	}
	return nil
}
