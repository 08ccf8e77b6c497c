package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/big2undey-pixel/URL-Classification/internal/classifier"
	"github.com/big2undey-pixel/URL-Classification/internal/config"
	"github.com/big2undey-pixel/URL-Classification/internal/database"
	"github.com/big2undey-pixel/URL-Classification/internal/features"
	"github.com/big2undey-pixel/URL-Classification/internal/log"
	"github.com/big2undey-pixel/URL-Classification/internal/model"
	"github.com/big2undey-pixel/URL-Classification/internal/pipeline"
	"github.com/big2undey-pixel/URL-Classification/internal/report"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [url...]",
		Short: "Check URLs for phishing and malware indicators",
		Long: `Check computes a lexical feature vector for each URL and queries the
classification service for a benign/malicious verdict.

URLs are analyzed exactly as given: nothing is normalized, resolved, or
fetched. The feature vector covers:
- Structure (length, digits, letters, special characters, path depth)
- Host shape (subdomain count, IPv4 literals, rare top-level domains)
- Shannon entropy of the character distribution
- Suspicious keywords (login, secure, account, verify, ...)

Examples:
  # Check a single URL
  safeurl check https://example.com/login

  # Check several URLs concurrently
  safeurl check https://a.example https://b.example

  # Check every URL listed in a file (one per line)
  safeurl check --input urls.txt

  # Local features only, no network call
  safeurl check --no-classify https://example.com

  # Output a JSON report to a file
  safeurl check --json -o report.json https://example.com

  # Route the classifier call through a SOCKS5 proxy
  safeurl check --proxy 127.0.0.1:9050 https://example.com`,
		Args: cobra.ArbitraryArgs,
		RunE: runCheckCmd,
	}

	// Classifier flags
	cmd.Flags().StringP("endpoint", "e", config.DefaultEndpoint,
		"Classification service predict URL")
	cmd.Flags().String("proxy", "",
		"Route classifier calls through a SOCKS5 proxy (e.g., 127.0.0.1:9050)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each classifier request")
	cmd.Flags().Bool("no-classify", false,
		"Skip the remote classifier; compute local features only")

	// Input flags
	cmd.Flags().StringP("input", "i", "",
		"Read URLs from a file, one per line (lines starting with # are ignored)")

	// Batch checking flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent checks")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .safeurl in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-save", false,
		"Do not record results in the history database")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with URL defanging
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCheck(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from the config file and cobra flags.
// Precedence: defaults < config file < explicitly set flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Merge config file overrides before flags so flags win.
	// If the user explicitly specified a config file path, error if not found.
	// If no path specified, silently continue without a file.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.Apply(file)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Flags explicitly set on the command line override the config file.
	if cmd.Flags().Changed("endpoint") || cfg.Endpoint == "" {
		cfg.Endpoint, err = cmd.Flags().GetString("endpoint")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("proxy") {
		cfg.ProxyAddress, err = cmd.Flags().GetString("proxy")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("batch") {
		cfg.BatchSize, err = cmd.Flags().GetInt("batch")
		if err != nil {
			return nil, err
		}
	}

	cfg.NoClassify, err = cmd.Flags().GetBool("no-classify")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.NoSave, err = cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}

	// Targets: positional arguments plus any --input file entries.
	cfg.Targets = args
	inputFile, err := cmd.Flags().GetString("input")
	if err != nil {
		return nil, err
	}
	if inputFile != "" {
		fromFile, err := readTargetsFile(inputFile)
		if err != nil {
			return nil, err
		}
		cfg.Targets = append(cfg.Targets, fromFile...)
	}

	return cfg, nil
}

// readTargetsFile reads URLs from a file, one per line.
// Blank lines and lines starting with # are skipped.
func readTargetsFile(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	var targets []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		// Trim file-format whitespace only; the URL itself is never altered.
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		targets = append(targets, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return targets, nil
}

// runCheck executes the check.
func runCheck(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting check",
		"targets", len(cfg.Targets),
		"no_classify", cfg.NoClassify,
		"batch_size", cfg.BatchSize,
	)

	// Open history database unless saving is disabled
	var db *database.ScanDB
	if !cfg.NoSave {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	// Configure the feature extractor
	var extractorOpts []features.Option
	if len(cfg.Keywords) > 0 {
		extractorOpts = append(extractorOpts, features.WithKeywords(cfg.Keywords))
	}
	if len(cfg.CommonTLDs) > 0 {
		extractorOpts = append(extractorOpts, features.WithCommonTLDs(cfg.CommonTLDs))
	}
	extractor := features.NewExtractor(extractorOpts...)

	// Configure the classifier client unless classification is disabled
	var client *classifier.Client
	if !cfg.NoClassify {
		clientOpts := []classifier.Option{
			classifier.WithTimeout(cfg.Timeout),
		}
		if cfg.ProxyAddress != "" {
			clientOpts = append(clientOpts, classifier.WithSOCKS5Proxy(cfg.ProxyAddress))
		}
		var err error
		client, err = classifier.NewClient(cfg.Endpoint, clientOpts...)
		if err != nil {
			return fmt.Errorf("failed to create classifier client: %w", err)
		}
	}

	pipelineFactory := func() *pipeline.Pipeline {
		return pipeline.DefaultPipeline(pipeline.DefaultPipelineConfig{
			Extractor:  extractor,
			Classifier: client,
			Logger:     logger,
		})
	}

	// Use the batch processor for parallel checking if multiple targets
	if len(cfg.Targets) > 1 && cfg.BatchSize > 1 {
		return runBatchCheck(ctx, cfg, pipelineFactory, db, logger)
	}

	return runSequentialCheck(ctx, cfg, pipelineFactory, db, logger)
}

// runSequentialCheck checks targets one at a time.
func runSequentialCheck(ctx context.Context, cfg *config.Config, factory func() *pipeline.Pipeline, db *database.ScanDB, logger *slog.Logger) error {
	var reports []*model.URLReport

	for _, target := range cfg.Targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		checkReport := model.NewURLReport(target)
		if err := factory().Execute(ctx, checkReport); err != nil {
			logger.Error("check failed", "url", target, "error", err)
			checkReport.SetError(err)
		}

		reports = append(reports, checkReport)

		if err := saveCheckReport(ctx, db, checkReport, logger); err != nil {
			logger.Error("failed to save check report", "url", target, "error", err)
		}
	}

	return outputReports(cfg, reports)
}

// runBatchCheck checks multiple targets concurrently using BatchProcessor.
func runBatchCheck(ctx context.Context, cfg *config.Config, factory func() *pipeline.Pipeline, db *database.ScanDB, logger *slog.Logger) error {
	fmt.Fprintf(os.Stderr, "Checking %d urls (concurrency: %d)...\n",
		len(cfg.Targets), cfg.BatchSize)

	startTime := time.Now()

	bp := pipeline.NewBatchProcessor(
		factory,
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	// Save via callback while collecting results in input order.
	reports := make([]*model.URLReport, len(cfg.Targets))
	var mu sync.Mutex
	err := bp.ProcessBatchWithCallback(ctx, cfg.Targets, func(checkReport *model.URLReport, index int) {
		mu.Lock()
		reports[index] = checkReport
		mu.Unlock()

		if err := saveCheckReport(ctx, db, checkReport, logger); err != nil {
			logger.Error("failed to save check report", "url", checkReport.URL, "error", err)
		}
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Batch check completed in %s\n\n",
		time.Since(startTime).Round(time.Millisecond))

	return outputReports(cfg, reports)
}

// outputReports writes the check results in the requested format.
func outputReports(cfg *config.Config, reports []*model.URLReport) error {
	output, cleanup, err := openReportOutput(cfg.ReportFile)
	if err != nil {
		return err
	}
	defer cleanup()

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	if len(reports) == 1 {
		_, err = w.Write(reports[0])
		return err
	}
	_, err = w.WriteBatch(reports)
	return err
}

// openReportOutput returns the report destination and a cleanup function.
// An empty path means stdout.
func openReportOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports may contain live malicious URLs; keep them owner-readable only.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// saveCheckReport saves the check report to the database if enabled.
// If db is nil, this function is a no-op.
func saveCheckReport(ctx context.Context, db *database.ScanDB, checkReport *model.URLReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	if err := db.SaveReport(ctx, checkReport); err != nil {
		return fmt.Errorf("failed to save check report: %w", err)
	}

	logger.Info("check report saved to database", "url", checkReport.URL)
	return nil
}
