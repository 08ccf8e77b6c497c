// Package log provides secure logging with automatic sanitization of
// sensitive information and defanging of URL values, built on top of the
// standard slog package.
//
// This package extends slog to provide:
//   - Automatic masking of sensitive values (cookies, tokens, secrets)
//   - Defanging of URL attributes so potentially malicious scan targets
//     are never rendered clickable in log output
//   - Configurable log levels with verbose mode support
//
// # Security Features
//
// The SecureHandler masks attributes whose key or value looks credential
// shaped. URL-valued attributes (url, target, endpoint and friends) are
// defanged with the conventional notation: "http" becomes "hxxp" and each
// dot becomes "[.]", so "https://evil.example/login" logs as
// "hxxps://evil[.]example/login".
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//	logger.Info("checking target",
//	    "url", "http://evil.example/login", // defanged in output
//	    "token", "abc123",                  // masked in output
//	)
package log
