// Package domain implements domain-list matching for scamguard.
//
// A list entry is either a bare domain ("example.com") or a wildcard
// ("*.example.com"). Candidates and patterns are compared after
// normalization: surrounding whitespace, an "http://" or "https://" prefix
// and a leading "www." are removed, and both sides are lowercased.
//
// Matching rules, evaluated in order:
//  1. Exact equality after normalization.
//  2. The candidate is a subdomain of the pattern ("a.example.com" vs "example.com").
//  3. For wildcard patterns, the candidate equals the base or is a subdomain of it.
//
// Every function in this package is pure and total: malformed input simply
// fails to match.
package domain
