// Package model defines the data structures shared by scamguard packages.
//
// This package contains the following main types:
//   - ScanInput: A page URL and its text, prepared for scoring
//   - ScanResult: The score, status and issues produced by the engine
//   - ScanRecord: A stored scan result kept for the history
//   - Report: A user submission flagging a URL as a scam
//   - Activity: An entry of the host activity log
//
// All of them serialize to JSON for reports and storage.
package model
