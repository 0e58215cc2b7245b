// Package log provides secure logging built on log/slog.
//
// The SecureHandler wraps any slog.Handler and masks sensitive data before it
// is written:
//   - attributes whose key names a secret (cookie, password, token, otp, ...)
//   - values that look like credentials (bearer tokens, JWTs, long API keys)
//   - the local part of e-mail addresses, such as scam reporters' addresses
//   - credential-bearing query parameters inside URLs
//
// Scanned pages are attacker-controlled and their URLs often carry session
// tokens or the victim's data, so URLs are logged with those parameters
// redacted instead of being dropped entirely.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Info("report submitted",
//	    "email", "victim@example.com",                      // ***@example.com
//	    "url", "https://scam.example/pay?otp=123456&step=2", // otp=***REDACTED***
//	)
package log
