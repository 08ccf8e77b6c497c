package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/big2undey-pixel/URL-Classification/internal/classifier"
	"github.com/big2undey-pixel/URL-Classification/internal/features"
	"github.com/big2undey-pixel/URL-Classification/internal/model"
)

// TestFeatureStep tests local feature extraction.
func TestFeatureStep(t *testing.T) {
	t.Parallel()

	t.Run("populates the report's feature vector", func(t *testing.T) {
		t.Parallel()

		step := NewFeatureStep(nil)
		report := model.NewURLReport("https://www.example.com/login")

		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Features == nil {
			t.Fatal("expected feature vector on report")
		}
		if report.Features.HasHTTPS != 1 {
			t.Errorf("HasHTTPS = %d, expected 1", report.Features.HasHTTPS)
		}
	})

	t.Run("never fails on malformed input", func(t *testing.T) {
		t.Parallel()

		step := NewFeatureStep(features.NewExtractor())
		report := model.NewURLReport("%%% not a url \x00")

		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Features == nil {
			t.Fatal("expected feature vector on report")
		}
	})
}

// TestClassifyStep tests the remote classification step.
func TestClassifyStep(t *testing.T) {
	t.Parallel()

	t.Run("records verdict and source", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"prediction":1}`))
		}))
		t.Cleanup(server.Close)

		client, err := classifier.NewClient(server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		step := NewClassifyStep(client)
		report := model.NewURLReport("http://198.51.100.7/login")

		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Verdict != model.VerdictMalicious {
			t.Errorf("Verdict = %v, expected VerdictMalicious", report.Verdict)
		}
		if report.VerdictSource != server.URL {
			t.Errorf("VerdictSource = %q, expected the endpoint", report.VerdictSource)
		}
	})

	t.Run("service failure surfaces as step error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "down", http.StatusBadGateway)
		}))
		t.Cleanup(server.Close)

		client, err := classifier.NewClient(server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		step := NewClassifyStep(client)
		report := model.NewURLReport("https://example.com")

		if err := step.Do(context.Background(), report); err == nil {
			t.Error("expected error from failing service")
		}
		if report.Verdict != model.VerdictUnknown {
			t.Errorf("Verdict = %v, expected VerdictUnknown", report.Verdict)
		}
	})
}

// TestDefaultPipeline tests the standard pipeline composition.
func TestDefaultPipeline(t *testing.T) {
	t.Parallel()

	t.Run("without classifier only extracts features", func(t *testing.T) {
		t.Parallel()

		p := DefaultPipeline(DefaultPipelineConfig{})
		names := p.StepNames()
		if len(names) != 1 || names[0] != "features" {
			t.Errorf("StepNames = %v, expected [features]", names)
		}
	})

	t.Run("with classifier runs both steps and survives outage", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "down", http.StatusServiceUnavailable)
		}))
		t.Cleanup(server.Close)

		client, err := classifier.NewClient(server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		p := DefaultPipeline(DefaultPipelineConfig{Classifier: client})
		report := model.NewURLReport("https://example.com")

		// Continue-on-error: the outage is recorded, not fatal.
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Features == nil {
			t.Error("expected feature vector despite classifier outage")
		}
		if report.ErrorMessage == "" {
			t.Error("expected classifier error recorded on report")
		}
		if len(report.PerformedSteps) != 2 {
			t.Errorf("got %d performed steps, expected 2", len(report.PerformedSteps))
		}
	})
}
