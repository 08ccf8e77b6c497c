// Package pipeline orchestrates the steps of a URL check.
//
// A check runs an ordered sequence of steps against one URLReport: feature
// extraction first, then optionally the remote classification call. The
// BatchProcessor runs many checks concurrently; this is safe because
// extraction is pure and each check owns its report.
//
// Design decision: Steps implement a small interface rather than being
// function values so each step can carry its own configuration and expose
// a name for logging.
package pipeline
