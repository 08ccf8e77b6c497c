// Package database provides SQLite-based storage for check history.
//
// Every URL check can be persisted as a JSON report blob alongside summary
// columns (digest, verdict, timestamp) so history queries don't need to
// deserialize full reports. The database lives in the XDG data directory
// by default.
//
// Design decision: We use modernc.org/sqlite (pure Go) rather than a CGO
// driver so the binary cross-compiles without a C toolchain.
package database
