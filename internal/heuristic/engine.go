package heuristic

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/scamguard/internal/domain"
	"github.com/nao1215/scamguard/internal/model"
	"github.com/nao1215/scamguard/internal/rules"
)

// Issue texts shared with hosts and tests.
const (
	IssueWhitelisted   = "Domain is whitelisted"
	IssueNoHTTPS       = "No HTTPS encryption"
	IssueBlacklisted   = "Domain is blacklisted"
	IssueAnalysisError = "Error during analysis"
)

// errMalformedURL stops the analysis when the input URL cannot be parsed.
var errMalformedURL = errors.New("malformed URL")

// Engine scores pages against a rule catalogue.
type Engine struct {
	rules *rules.RuleSet
}

// New creates an Engine for rs. The rule set is copied, so later changes by
// the caller do not affect the engine. A nil rs selects rules.Default().
func New(rs *rules.RuleSet) (*Engine, error) {
	if rs == nil {
		rs = rules.Default()
	}
	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rule set: %w", err)
	}
	return &Engine{rules: rs.Clone()}, nil
}

// Default returns an Engine using the built-in catalogue.
func Default() *Engine {
	return &Engine{rules: rules.Default()}
}

// Rules returns a copy of the engine's catalogue.
func (e *Engine) Rules() *rules.RuleSet {
	return e.rules.Clone()
}

// Score evaluates in against lists. It never panics and never returns an
// invalid result; identical inputs always produce identical results.
func (e *Engine) Score(in model.ScanInput, lists domain.Lists) (result model.ScanResult) {
	a := &analysis{}
	defer func() {
		if r := recover(); r != nil {
			a.fail()
			result = a.result()
		}
	}()

	host := hostOf(in)
	membership := domain.Resolve(host, lists)
	if membership.Whitelisted {
		return model.ScanResult{
			Score:  0,
			Status: model.StatusSafe,
			Issues: []string{IssueWhitelisted},
		}
	}

	c := &scanContext{
		rawURL:     in.URL,
		lowerURL:   strings.ToLower(in.URL),
		host:       host,
		content:    strings.ToLower(in.Content),
		membership: membership,
	}

	checks := []func(*scanContext, *analysis) error{
		e.checkHTTPS,
		e.checkSuspiciousTLD,
		e.checkURLShortener,
		e.checkBlacklist,
		e.checkKeywordCategories,
		e.checkGenericPatterns,
	}
	for _, check := range checks {
		if err := check(c, a); err != nil {
			a.fail()
			break
		}
	}

	return a.result()
}

// scanContext holds the normalized views of one ScanInput.
type scanContext struct {
	rawURL     string
	lowerURL   string
	host       string
	content    string
	membership domain.Membership
}

// analysis accumulates score and issues in evaluation order.
type analysis struct {
	score  int
	issues []string
	failed bool
}

// add records a fired rule. Rules weighted zero are switched off and report
// nothing.
func (a *analysis) add(weight int, issue string) {
	if weight == 0 {
		return
	}
	a.score += weight
	a.issues = append(a.issues, issue)
}

func (a *analysis) fail() {
	if a.failed {
		return
	}
	a.failed = true
	a.issues = append(a.issues, IssueAnalysisError)
}

func (a *analysis) result() model.ScanResult {
	score := max(a.score, 0)
	issues := a.issues
	if issues == nil {
		issues = []string{}
	}
	return model.ScanResult{
		Score:  score,
		Status: Classify(score),
		Issues: issues,
	}
}

// hostOf returns the input's domain, falling back to the URL hostname when
// the host did not supply one.
func hostOf(in model.ScanInput) string {
	if in.Domain != "" {
		return strings.ToLower(in.Domain)
	}
	if u, err := url.Parse(in.URL); err == nil {
		return strings.ToLower(u.Hostname())
	}
	return ""
}

func (e *Engine) checkHTTPS(c *scanContext, a *analysis) error {
	u, err := url.Parse(c.rawURL)
	if err != nil || u.Scheme == "" {
		return errMalformedURL
	}
	if !strings.EqualFold(u.Scheme, "https") {
		a.add(e.rules.Weights.HTTPS, IssueNoHTTPS)
	}
	return nil
}

func (e *Engine) checkSuspiciousTLD(c *scanContext, a *analysis) error {
	for _, tld := range e.rules.SuspiciousTLDs {
		if tld != "" && strings.HasSuffix(c.host, tld) {
			a.add(e.rules.Weights.SuspiciousTLD, "Suspicious TLD: "+tld)
			return nil
		}
	}
	return nil
}

func (e *Engine) checkURLShortener(c *scanContext, a *analysis) error {
	for _, s := range e.rules.URLShorteners {
		if s != "" && strings.Contains(c.host, s) {
			a.add(e.rules.Weights.URLShortener, "URL shortener detected: "+s)
			return nil
		}
	}
	return nil
}

func (e *Engine) checkBlacklist(c *scanContext, a *analysis) error {
	if c.membership.Blacklisted {
		a.add(e.rules.Weights.BlacklistHit, IssueBlacklisted)
	}
	return nil
}

func (e *Engine) checkKeywordCategories(c *scanContext, a *analysis) error {
	caser := cases.Title(language.English)
	for _, cat := range e.rules.KeywordCategories {
		matched := c.matchAll(cat.Keywords)
		if len(matched) == 0 {
			continue
		}
		a.add(
			len(matched)*e.rules.CategoryWeight(cat),
			fmt.Sprintf("%s keywords detected: %s", caser.String(cat.Name), strings.Join(matched, ", ")),
		)
	}
	return nil
}

func (e *Engine) checkGenericPatterns(c *scanContext, a *analysis) error {
	matched := c.matchAll(e.rules.GenericSuspiciousPatterns)
	if len(matched) == 0 {
		return nil
	}
	a.add(
		len(matched)*e.rules.Weights.GenericSuspicious,
		"Suspicious patterns detected: "+strings.Join(matched, ", "),
	)
	return nil
}

// matchAll returns the keywords found in the URL or the content, in table order.
func (c *scanContext) matchAll(keywords []string) []string {
	var matched []string
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(c.lowerURL, kw) || strings.Contains(c.content, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}
