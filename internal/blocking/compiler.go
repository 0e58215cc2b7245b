package blocking

import (
	"strings"

	"github.com/nao1215/scamguard/internal/domain"
)

// Compile derives the blocking rules for blacklist, skipping every entry
// covered by whitelist. The result is deterministic for identical inputs.
// An invalid redirect falls back to DefaultRedirect.
func Compile(blacklist, whitelist []string, redirect Redirect) []Rule {
	if redirect.Validate() != nil {
		redirect = DefaultRedirect()
	}

	rules := make([]Rule, 0, 2*len(blacklist))
	for i, entry := range blacklist {
		host := domain.Normalize(entry)
		if host == "" {
			continue
		}
		if _, ok := domain.MatchesAny(host, whitelist); ok {
			continue
		}

		if domain.IsWildcard(host) {
			base := strings.TrimPrefix(host, "*.")
			if base == "" {
				continue
			}
			rules = append(rules, newRule(2*i+1, urlFilter("*."+base), redirect))
			continue
		}

		rules = append(rules,
			newRule(2*i+1, urlFilter(host), redirect),
			newRule(2*i+2, urlFilter("www."+host), redirect),
		)
	}
	return rules
}

func newRule(id int, filter string, redirect Redirect) Rule {
	target := redirect
	return Rule{
		ID:       id,
		Priority: DefaultPriority,
		Action: Action{
			Type:     ActionRedirect,
			Redirect: &target,
		},
		Condition: Condition{
			URLFilter:     filter,
			ResourceTypes: []string{ResourceTypeMainFrame},
		},
	}
}

// urlFilter turns a host into a pattern matching any scheme and path on it.
func urlFilter(host string) string {
	return "*://" + host + "/*"
}
