// Package guard turns scan results into host actions.
//
// Decide maps a ScanResult and the user's settings to a Decision: whether
// to notify, whether to block and where to redirect. ReportService accepts
// user scam reports and keeps the blacklist and the compiled blocking rules
// in step with them. Monitor consumes page events from a channel on a
// single goroutine, applies the per-URL rescan cooldown and runs the
// retention cleanup on a cron schedule.
package guard
