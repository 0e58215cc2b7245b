// Package database provides SQLite-based storage for scamguard.
//
// GuardDB stores:
//   - the whitelist and blacklist as ordered pattern lists
//   - scan records, kept until the retention window expires
//   - user scam reports
//   - the activity log (list edits, reports, blocks, rule recompilations)
//
// The pure driver modernc.org/sqlite keeps the binary CGO-free. Every query
// runs over a single connection, so list edits and rule recompilation read a
// consistent snapshot.
package database
