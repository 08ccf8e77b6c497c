package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/big2undey-pixel/URL-Classification/internal/config"
	"github.com/big2undey-pixel/URL-Classification/internal/database"
	"github.com/big2undey-pixel/URL-Classification/internal/model"
	"github.com/big2undey-pixel/URL-Classification/internal/report"
)

// TestNewCheckCmd tests the check command creation.
func TestNewCheckCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCheckCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "check [url...]" {
			t.Errorf("expected use 'check [url...]', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has endpoint flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("endpoint")
		if flag == nil {
			t.Fatal("expected endpoint flag")
		}
		if flag.Shorthand != "e" {
			t.Errorf("expected shorthand 'e', got %q", flag.Shorthand)
		}
		if flag.DefValue != config.DefaultEndpoint {
			t.Errorf("expected default %q, got %q", config.DefaultEndpoint, flag.DefValue)
		}
	})

	t.Run("has proxy flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("proxy") == nil {
			t.Fatal("expected proxy flag")
		}
	})

	t.Run("has timeout flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("timeout")
		if flag == nil {
			t.Fatal("expected timeout flag")
		}
		if flag.Shorthand != "t" {
			t.Errorf("expected shorthand 't', got %q", flag.Shorthand)
		}
	})

	t.Run("has no-classify flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("no-classify")
		if flag == nil {
			t.Fatal("expected no-classify flag")
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("has input flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("input")
		if flag == nil {
			t.Fatal("expected input flag")
		}
		if flag.Shorthand != "i" {
			t.Errorf("expected shorthand 'i', got %q", flag.Shorthand)
		}
	})

	t.Run("has batch flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("batch")
		if flag == nil {
			t.Fatal("expected batch flag")
		}
		if flag.Shorthand != "b" {
			t.Errorf("expected shorthand 'b', got %q", flag.Shorthand)
		}
	})

	t.Run("has config flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("config")
		if flag == nil {
			t.Fatal("expected config flag")
		}
		if flag.Shorthand != "c" {
			t.Errorf("expected shorthand 'c', got %q", flag.Shorthand)
		}
	})

	t.Run("has report format flags", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("json") == nil {
			t.Fatal("expected json flag")
		}
		if cmd.Flags().Lookup("markdown") == nil {
			t.Fatal("expected markdown flag")
		}
		if cmd.Flags().Lookup("output") == nil {
			t.Fatal("expected output flag")
		}
	})

	t.Run("has no-save flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("no-save") == nil {
			t.Fatal("expected no-save flag")
		}
	})
}

// TestGetVerboseFlag tests the verbose flag retrieval.
func TestGetVerboseFlag(t *testing.T) {
	t.Run("returns false when flag not set", func(t *testing.T) {
		cmd := NewCheckCmd()
		if getVerboseFlag(cmd) {
			t.Error("expected false when flag not set")
		}
	})

	t.Run("returns value from parent verbose flag", func(t *testing.T) {
		root := NewRootCmd()
		_ = root.PersistentFlags().Set("verbose", "true")

		checkCmd, _, err := root.Find([]string{"check"})
		if err != nil {
			t.Fatalf("failed to find check command: %v", err)
		}

		if !getVerboseFlag(checkCmd) {
			t.Error("expected true from parent verbose flag")
		}
	})
}

// TestBuildConfig tests config construction from flags and config files.
func TestBuildConfig(t *testing.T) {
	t.Run("uses defaults when no flags set", func(t *testing.T) {
		cmd := NewCheckCmd()

		cfg, err := buildConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Endpoint != config.DefaultEndpoint {
			t.Errorf("Endpoint = %q, expected default", cfg.Endpoint)
		}
		if cfg.Timeout != config.DefaultTimeout {
			t.Errorf("Timeout = %v, expected default", cfg.Timeout)
		}
		if cfg.BatchSize != config.DefaultBatchSize {
			t.Errorf("BatchSize = %d, expected default", cfg.BatchSize)
		}
		if len(cfg.Targets) != 1 || cfg.Targets[0] != "https://example.com" {
			t.Errorf("Targets = %v, expected the positional argument", cfg.Targets)
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		cmd := NewCheckCmd()
		_ = cmd.Flags().Set("endpoint", "https://self-hosted.example/predict")
		_ = cmd.Flags().Set("timeout", "3s")
		_ = cmd.Flags().Set("batch", "5")
		_ = cmd.Flags().Set("no-classify", "true")
		_ = cmd.Flags().Set("no-save", "true")

		cfg, err := buildConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Endpoint != "https://self-hosted.example/predict" {
			t.Errorf("Endpoint = %q, expected flag value", cfg.Endpoint)
		}
		if cfg.Timeout != 3*time.Second {
			t.Errorf("Timeout = %v, expected 3s", cfg.Timeout)
		}
		if cfg.BatchSize != 5 {
			t.Errorf("BatchSize = %d, expected 5", cfg.BatchSize)
		}
		if !cfg.NoClassify {
			t.Error("expected NoClassify to be true")
		}
		if !cfg.NoSave {
			t.Error("expected NoSave to be true")
		}
	})

	t.Run("config file values apply", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), ".safeurl")
		content := "endpoint: \"https://from-file.example/predict\"\nbatch_size: 3\nkeywords:\n  - login\n  - casino\n"
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewCheckCmd()
		_ = cmd.Flags().Set("config", configPath)

		cfg, err := buildConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Endpoint != "https://from-file.example/predict" {
			t.Errorf("Endpoint = %q, expected file value", cfg.Endpoint)
		}
		if cfg.BatchSize != 3 {
			t.Errorf("BatchSize = %d, expected 3", cfg.BatchSize)
		}
		if len(cfg.Keywords) != 2 || cfg.Keywords[1] != "casino" {
			t.Errorf("Keywords = %v, expected file keywords", cfg.Keywords)
		}
	})

	t.Run("explicit flags win over config file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), ".safeurl")
		content := "endpoint: \"https://from-file.example/predict\"\n"
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewCheckCmd()
		_ = cmd.Flags().Set("config", configPath)
		_ = cmd.Flags().Set("endpoint", "https://from-flag.example/predict")

		cfg, err := buildConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Endpoint != "https://from-flag.example/predict" {
			t.Errorf("Endpoint = %q, expected flag to win", cfg.Endpoint)
		}
	})

	t.Run("missing explicit config file errors", func(t *testing.T) {
		cmd := NewCheckCmd()
		_ = cmd.Flags().Set("config", filepath.Join(t.TempDir(), "missing.yaml"))

		if _, err := buildConfig(cmd, []string{"https://example.com"}); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("input file targets are appended", func(t *testing.T) {
		inputPath := filepath.Join(t.TempDir(), "urls.txt")
		content := "# batch of urls\nhttps://a.example\n\n  https://b.example  \n"
		if err := os.WriteFile(inputPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write input file: %v", err)
		}

		cmd := NewCheckCmd()
		_ = cmd.Flags().Set("input", inputPath)

		cfg, err := buildConfig(cmd, []string{"https://first.example"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{"https://first.example", "https://a.example", "https://b.example"}
		if len(cfg.Targets) != len(expected) {
			t.Fatalf("got %d targets, expected %d", len(cfg.Targets), len(expected))
		}
		for i, want := range expected {
			if cfg.Targets[i] != want {
				t.Errorf("Targets[%d] = %q, expected %q", i, cfg.Targets[i], want)
			}
		}
	})
}

// TestReadTargetsFile tests the URL list file parser.
func TestReadTargetsFile(t *testing.T) {
	t.Parallel()

	t.Run("skips comments and blank lines", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "urls.txt")
		content := "# comment\nhttps://a.example\n\n# another\nhttps://b.example\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		targets, err := readTargetsFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(targets) != 2 {
			t.Fatalf("got %d targets, expected 2", len(targets))
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		t.Parallel()

		if _, err := readTargetsFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

// TestOutputReports tests report destination and format selection.
func TestOutputReports(t *testing.T) {
	t.Parallel()

	newReport := func(rawURL string) *model.URLReport {
		r := model.NewURLReport(rawURL)
		r.Verdict = model.VerdictBenign
		return r
	}

	t.Run("writes JSON report to a file", func(t *testing.T) {
		t.Parallel()

		outPath := filepath.Join(t.TempDir(), "nested", "report.json")
		cfg := config.NewConfig()
		cfg.JSONReport = true
		cfg.ReportFile = outPath

		err := outputReports(cfg, []*model.URLReport{newReport("https://example.com")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("failed to read report file: %v", err)
		}

		var parsed report.JSONReport
		if err := json.Unmarshal(data, &parsed); err != nil {
			t.Fatalf("report file is not valid JSON: %v", err)
		}
		if parsed.Report == nil || parsed.Report.URL != "https://example.com" {
			t.Error("expected the checked url in the report")
		}
	})

	t.Run("writes batch markdown report", func(t *testing.T) {
		t.Parallel()

		outPath := filepath.Join(t.TempDir(), "report.md")
		cfg := config.NewConfig()
		cfg.MarkdownReport = true
		cfg.ReportFile = outPath

		reports := []*model.URLReport{newReport("https://a.example"), newReport("https://b.example")}
		if err := outputReports(cfg, reports); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("failed to read report file: %v", err)
		}
		if !strings.Contains(string(data), "# SafeURL Batch Report") {
			t.Error("expected batch markdown header in report file")
		}
	})
}

// TestRunCheck tests the end-to-end check flow against a stub classifier.
func TestRunCheck(t *testing.T) {
	t.Parallel()

	newStubClassifier := func(t *testing.T, prediction string) *httptest.Server {
		t.Helper()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(prediction))
		}))
		t.Cleanup(server.Close)
		return server
	}

	quietLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("classifies and saves a single url", func(t *testing.T) {
		t.Parallel()

		server := newStubClassifier(t, `{"prediction":1}`)
		dbDir := t.TempDir()
		outPath := filepath.Join(t.TempDir(), "report.json")

		cfg := config.NewConfig()
		cfg.Targets = []string{"http://198.51.100.7/login"}
		cfg.Endpoint = server.URL
		cfg.DBDir = dbDir
		cfg.BatchSize = 1
		cfg.JSONReport = true
		cfg.ReportFile = outPath

		if err := runCheck(context.Background(), cfg, quietLogger); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Report file written with the verdict
		data, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(data), "MALICIOUS") {
			t.Error("expected malicious verdict in report")
		}

		// Result persisted in the history database
		db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false})
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		saved, err := db.GetLatestReport(context.Background(), "http://198.51.100.7/login")
		if err != nil {
			t.Fatalf("failed to get saved report: %v", err)
		}
		if saved == nil {
			t.Fatal("expected a saved report")
		}
		if saved.Verdict != model.VerdictMalicious {
			t.Errorf("Verdict = %v, expected VerdictMalicious", saved.Verdict)
		}
	})

	t.Run("no-classify skips the service entirely", func(t *testing.T) {
		t.Parallel()

		outPath := filepath.Join(t.TempDir(), "report.json")

		cfg := config.NewConfig()
		cfg.Targets = []string{"https://example.com"}
		cfg.NoClassify = true
		cfg.NoSave = true
		cfg.JSONReport = true
		cfg.ReportFile = outPath

		if err := runCheck(context.Background(), cfg, quietLogger); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(data), "UNKNOWN") {
			t.Error("expected unknown verdict without classification")
		}
		if !strings.Contains(string(data), "url_length") {
			t.Error("expected local features in report")
		}
	})

	t.Run("batch check keeps input order", func(t *testing.T) {
		t.Parallel()

		server := newStubClassifier(t, `{"prediction":0}`)
		outPath := filepath.Join(t.TempDir(), "report.json")

		cfg := config.NewConfig()
		cfg.Targets = []string{"https://a.example", "https://b.example", "https://c.example"}
		cfg.Endpoint = server.URL
		cfg.NoSave = true
		cfg.BatchSize = 2
		cfg.JSONReport = true
		cfg.ReportFile = outPath

		if err := runCheck(context.Background(), cfg, quietLogger); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}

		var parsed report.JSONReport
		if err := json.Unmarshal(data, &parsed); err != nil {
			t.Fatalf("report file is not valid JSON: %v", err)
		}
		if len(parsed.Reports) != 3 {
			t.Fatalf("got %d reports, expected 3", len(parsed.Reports))
		}
		for i, want := range cfg.Targets {
			if parsed.Reports[i].URL != want {
				t.Errorf("Reports[%d].URL = %q, expected %q", i, parsed.Reports[i].URL, want)
			}
		}
	})

	t.Run("classifier outage still produces a report", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "down", http.StatusServiceUnavailable)
		}))
		t.Cleanup(server.Close)

		outPath := filepath.Join(t.TempDir(), "report.json")

		cfg := config.NewConfig()
		cfg.Targets = []string{"https://example.com"}
		cfg.Endpoint = server.URL
		cfg.NoSave = true
		cfg.JSONReport = true
		cfg.ReportFile = outPath

		if err := runCheck(context.Background(), cfg, quietLogger); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(data), "url_length") {
			t.Error("expected local features despite classifier outage")
		}
	})
}
