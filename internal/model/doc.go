// Package model defines the core data structures shared across safeurl.
//
// This package contains the following main types:
//   - URLReport: the result of checking one URL
//   - Verdict: the classifier's benign/malicious label
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (pipeline, classifier, report, database)
// need these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
