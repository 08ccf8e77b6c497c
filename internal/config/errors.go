package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoTarget is returned when no URL is specified.
	// This error occurs when neither --input nor a positional argument
	// provides a target.
	ErrNoTarget = errors.New("no target specified: provide a URL or use --input")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent checks, effectively
	// stopping the run.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrEmptyEndpoint is returned when classification is enabled but no
	// classifier endpoint is configured.
	ErrEmptyEndpoint = errors.New("classifier endpoint cannot be empty when classification is enabled")

	// ErrNoKeywords is returned when the configured keyword list is empty.
	// The feature vector schema requires at least one keyword flag.
	ErrNoKeywords = errors.New("keyword list cannot be empty")

	// ErrNoCommonTLDs is returned when the configured common-TLD list is
	// empty. An empty list would flag every URL as rare.
	ErrNoCommonTLDs = errors.New("common TLD list cannot be empty")
)
