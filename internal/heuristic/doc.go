// Package heuristic implements the scam scoring engine.
//
// Engine.Score takes a model.ScanInput and a domain.Lists snapshot and
// returns a model.ScanResult. The algorithm runs in a fixed order:
//
//  1. Resolve whitelist and blacklist membership.
//  2. A whitelisted domain returns score 0, status safe, immediately. This
//     overrides every other signal including blacklist membership.
//  3. Otherwise independent checks add to the score: missing HTTPS,
//     suspicious TLD, URL shortener, blacklist hit, keyword categories and
//     generic phishing phrases.
//  4. The score is classified with Classify.
//
// Scoring never fails. A check that cannot complete (for example because the
// URL does not parse) ends the analysis, appends IssueAnalysisError and
// returns the partial score.
//
// Engines are immutable after construction and safe for concurrent use.
package heuristic
