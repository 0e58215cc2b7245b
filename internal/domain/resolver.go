package domain

import "slices"

// Lists is a read-only snapshot of the whitelist and blacklist handed to the
// scoring engine. The engine never modifies it.
type Lists struct {
	// Whitelist holds trusted entries. A whitelisted domain is always safe.
	Whitelist []string `json:"whitelist" yaml:"whitelist"`

	// Blacklist holds known scam entries.
	Blacklist []string `json:"blacklist" yaml:"blacklist"`
}

// Clone returns a deep copy so that callers can hand out snapshots without
// sharing the backing arrays.
func (l Lists) Clone() Lists {
	return Lists{
		Whitelist: slices.Clone(l.Whitelist),
		Blacklist: slices.Clone(l.Blacklist),
	}
}

// Membership reports whether a domain appears in each list.
type Membership struct {
	Whitelisted bool `json:"whitelisted"`
	Blacklisted bool `json:"blacklisted"`
}

// Resolve checks domain against both lists with any-match semantics.
// It reports both flags; the whitelist-first policy is applied by the caller.
func Resolve(domain string, lists Lists) Membership {
	_, white := MatchesAny(domain, lists.Whitelist)
	_, black := MatchesAny(domain, lists.Blacklist)
	return Membership{
		Whitelisted: white,
		Blacklisted: black,
	}
}
