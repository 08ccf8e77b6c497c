package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultEndpoint is the hosted classification service's predict route.
	// Overridable via the config file or the --endpoint flag, e.g. when
	// self-hosting the model.
	DefaultEndpoint = "https://nayds004-url-predictor-space.hf.space/predict"

	// DefaultTimeout is the per-request timeout for classifier calls.
	// The hosted service cold-starts occasionally, so this is generous
	// relative to a typical HTTPS round trip.
	DefaultTimeout = 15 * time.Second

	// DefaultBatchSize of 10 concurrent checks balances throughput with
	// politeness toward the shared classification service.
	DefaultBatchSize = 10

	// AppName is the application name used for XDG directory paths.
	AppName = "safeurl"
)

// Config holds all configuration options for safeurl.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// Targets is the list of raw URL strings to check.
	// The strings are never normalized; features are computed on the raw form.
	Targets []string

	// Endpoint is the classifier predict URL.
	Endpoint string

	// ProxyAddress optionally routes classifier calls through a SOCKS5
	// proxy in "host:port" format. Empty means direct connection.
	ProxyAddress string

	// Timeout is the per-request timeout for classifier calls.
	Timeout time.Duration

	// BatchSize is the number of concurrent checks when processing
	// multiple targets.
	BatchSize int

	// NoClassify skips the remote classification call; only the local
	// feature vector is computed.
	NoClassify bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .safeurl in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// Keywords overrides the default keyword list when non-empty.
	Keywords []string

	// CommonTLDs overrides the default common-TLD list when non-empty.
	CommonTLDs []string

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// DBDir is the directory path for storing the SQLite history database.
	// Defaults to the XDG data directory.
	DBDir string

	// NoSave disables persisting check results to the history database.
	NoSave bool
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, endpoint).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Endpoint:  DefaultEndpoint,
		Timeout:   DefaultTimeout,
		BatchSize: DefaultBatchSize,
		DBDir:     XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for safeurl.
// On Linux: ~/.local/share/safeurl
// On macOS: ~/Library/Application Support/safeurl
// On Windows: %LOCALAPPDATA%\safeurl
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for safeurl.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for safeurl.
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any checks begin.
// We return the first error found because fixing one error often makes
// others irrelevant.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if !c.NoClassify && c.Endpoint == "" {
		return ErrEmptyEndpoint
	}
	if c.Keywords != nil && len(c.Keywords) == 0 {
		return ErrNoKeywords
	}
	if c.CommonTLDs != nil && len(c.CommonTLDs) == 0 {
		return ErrNoCommonTLDs
	}
	return nil
}
