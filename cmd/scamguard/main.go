// Package main provides the entry point for the scamguard CLI.
//
// scamguard scores web pages for scam signals: insecure transport,
// suspicious domains, blacklisted hosts and fraud keywords. It keeps the
// whitelist, blacklist, scam reports and scan history in a local database
// and compiles the blacklist into browser blocking rules.
//
// Usage:
//
//	scamguard scan <url>...
//	scamguard list add blacklist "*.scam.example"
//	scamguard rules compile -o rules.json
//
// See --help for all available options.
package main

// main is the entry point for scamguard.
func main() {
	Execute()
}
