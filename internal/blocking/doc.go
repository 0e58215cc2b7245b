// Package blocking compiles the blacklist into request-blocking rules.
//
// Rules use the browser declarativeNetRequest JSON shape so the output of
// Compile can be loaded directly as a dynamic rule set. Each blacklist entry
// at position i produces rule 2i+1 for the bare or wildcard pattern and, for
// non-wildcard entries, rule 2i+2 for the "www." variant. Entries covered by
// the whitelist produce no rules, but still reserve their IDs, so a rule's ID
// depends only on the position of its entry.
//
// The Updater applies a compiled set to a Sink by removing every existing rule
// before adding the new ones. It serializes concurrent recompilations so a
// partial set is never left behind.
package blocking
