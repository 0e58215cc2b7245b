package rules

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestDefaultWeights pins the canonical weight table. Persisted scores depend
// on these values, so a failure here means a compatibility break.
func TestDefaultWeights(t *testing.T) {
	t.Parallel()

	want := Weights{
		HTTPS:             10,
		SuspiciousTLD:     15,
		URLShortener:      10,
		BlacklistHit:      70,
		KeywordCategory:   10,
		GenericSuspicious: 3,
	}
	if diff := cmp.Diff(want, DefaultWeights()); diff != "" {
		t.Errorf("default weights mismatch (-want +got):\n%s", diff)
	}
}

func TestWeightsOf(t *testing.T) {
	t.Parallel()

	w := DefaultWeights()
	if got := w.Of(KindBlacklistHit); got != 70 {
		t.Errorf("expected blacklist weight 70, got %d", got)
	}
	if got := w.Of(Kind(99)); got != 0 {
		t.Errorf("expected unknown kind weight 0, got %d", got)
	}
	if got := Kind(99).String(); got != "unknown" {
		t.Errorf("expected unknown, got %s", got)
	}
}

func TestWeightsApply(t *testing.T) {
	t.Parallel()

	weight := func(n int) *int { return &n }

	tests := []struct {
		name     string
		override WeightOverrides
		want     Weights
	}{
		{
			name: "empty override keeps defaults",
			want: DefaultWeights(),
		},
		{
			name:     "set fields replace defaults",
			override: WeightOverrides{HTTPS: weight(20), GenericSuspicious: weight(5)},
			want: Weights{
				HTTPS:             20,
				SuspiciousTLD:     DefaultSuspiciousTLDWeight,
				URLShortener:      DefaultURLShortenerWeight,
				BlacklistHit:      DefaultBlacklistHitWeight,
				KeywordCategory:   DefaultKeywordCategoryWeight,
				GenericSuspicious: 5,
			},
		},
		{
			name:     "explicit zero disables a rule",
			override: WeightOverrides{HTTPS: weight(0), URLShortener: weight(0)},
			want: Weights{
				SuspiciousTLD:     DefaultSuspiciousTLDWeight,
				BlacklistHit:      DefaultBlacklistHitWeight,
				KeywordCategory:   DefaultKeywordCategoryWeight,
				GenericSuspicious: DefaultGenericSuspiciousWeight,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, DefaultWeights().Apply(tt.override)); diff != "" {
				t.Errorf("weights mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDefaultRuleSet(t *testing.T) {
	t.Parallel()

	rs := Default()

	t.Run("is valid", func(t *testing.T) {
		t.Parallel()
		if err := rs.Validate(); err != nil {
			t.Errorf("expected default rule set to be valid, got %v", err)
		}
	})

	t.Run("categories in fixed order", func(t *testing.T) {
		t.Parallel()
		var names []string
		for _, c := range rs.KeywordCategories {
			names = append(names, c.Name)
		}
		want := []string{"scholarship", "financial", "government", "urgency"}
		if diff := cmp.Diff(want, names); diff != "" {
			t.Errorf("category order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("contains .tk", func(t *testing.T) {
		t.Parallel()
		found := false
		for _, tld := range rs.SuspiciousTLDs {
			if tld == ".tk" {
				found = true
			}
		}
		if !found {
			t.Error("expected .tk to be a suspicious TLD")
		}
	})

	t.Run("category weight falls back to keyword weight", func(t *testing.T) {
		t.Parallel()
		c, ok := rs.Category("financial")
		if !ok {
			t.Fatal("expected financial category")
		}
		if got := rs.CategoryWeight(c); got != DefaultKeywordCategoryWeight {
			t.Errorf("expected %d, got %d", DefaultKeywordCategoryWeight, got)
		}
		if got := rs.CategoryWeight(KeywordCategory{Weight: 4}); got != 4 {
			t.Errorf("expected explicit weight 4, got %d", got)
		}
	})
}

func TestDefaultIsIndependent(t *testing.T) {
	t.Parallel()

	a := Default()
	a.KeywordCategories[0].Keywords[0] = "mutated"
	a.SuspiciousTLDs[0] = ".mutated"

	b := Default()
	if b.KeywordCategories[0].Keywords[0] == "mutated" {
		t.Error("Default shares keyword storage between calls")
	}
	if b.SuspiciousTLDs[0] == ".mutated" {
		t.Error("Default shares TLD storage between calls")
	}
}

func TestRuleSetExtend(t *testing.T) {
	t.Parallel()

	rs := Default()
	tldWeight := 25
	rs.Extend(&Extension{
		Weights:        WeightOverrides{SuspiciousTLD: &tldWeight},
		SuspiciousTLDs: []string{"ZIP", ".tk"},
		URLShorteners:  []string{"Short.Example"},
		KeywordCategories: []KeywordCategory{
			{Name: "financial", Keywords: []string{"Advance Fee"}},
			{Name: "romance", Keywords: []string{"send me money darling"}, Weight: 15},
		},
		GenericSuspiciousPatterns: []string{"Reset Your PIN"},
	})

	if rs.Weights.SuspiciousTLD != 25 {
		t.Errorf("expected TLD weight 25, got %d", rs.Weights.SuspiciousTLD)
	}

	count := 0
	for _, tld := range rs.SuspiciousTLDs {
		if tld == ".tk" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected .tk once, got %d", count)
	}
	if rs.SuspiciousTLDs[len(rs.SuspiciousTLDs)-1] != ".zip" {
		t.Errorf("expected .zip appended with leading dot, got %v", rs.SuspiciousTLDs)
	}

	fin, _ := rs.Category("financial")
	if fin.Keywords[len(fin.Keywords)-1] != "advance fee" {
		t.Errorf("expected lowercased keyword appended to financial, got %v", fin.Keywords)
	}

	last := rs.KeywordCategories[len(rs.KeywordCategories)-1]
	if last.Name != "romance" || last.Weight != 15 {
		t.Errorf("expected romance category appended, got %+v", last)
	}

	if rs.URLShorteners[len(rs.URLShorteners)-1] != "short.example" {
		t.Errorf("expected shortener appended, got %v", rs.URLShorteners)
	}
}

func TestRuleSetValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*RuleSet)
		wantErr error
	}{
		{
			name:    "negative rule weight",
			mutate:  func(rs *RuleSet) { rs.Weights.HTTPS = -1 },
			wantErr: ErrNegativeWeight,
		},
		{
			name:    "negative category weight",
			mutate:  func(rs *RuleSet) { rs.KeywordCategories[0].Weight = -5 },
			wantErr: ErrNegativeWeight,
		},
		{
			name:    "empty category name",
			mutate:  func(rs *RuleSet) { rs.KeywordCategories[1].Name = " " },
			wantErr: ErrEmptyCategoryName,
		},
		{
			name: "duplicate category",
			mutate: func(rs *RuleSet) {
				rs.KeywordCategories = append(rs.KeywordCategories, KeywordCategory{Name: "urgency"})
			},
			wantErr: ErrDuplicateCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rs := Default()
			tt.mutate(rs)
			if err := rs.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
