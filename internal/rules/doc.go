// Package rules holds the weighted detection catalogue used by the heuristic
// scoring engine.
//
// The catalogue is data, not logic: rule weights, low-trust top-level
// domains, URL shortener hosts, keyword categories and generic phishing
// phrases. How matches turn into a score is decided by package heuristic.
//
// A RuleSet built by Default reproduces the canonical weight table. Hosts
// may extend or replace the tables from configuration; weights left at zero
// in an override keep their defaults.
package rules
