package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/big2undey-pixel/URL-Classification/internal/classifier"
	"github.com/big2undey-pixel/URL-Classification/internal/features"
	"github.com/big2undey-pixel/URL-Classification/internal/model"
)

// FeatureStep computes the lexical feature vector for the report's URL.
// Extraction is total, so this step never fails.
type FeatureStep struct {
	// extractor computes the vector. Shared across checks; it is immutable
	// and safe for concurrent use.
	extractor *features.Extractor

	// logger for structured logging.
	logger *slog.Logger
}

// FeatureStepOption configures a FeatureStep.
type FeatureStepOption func(*FeatureStep)

// WithFeatureLogger sets a custom logger for the feature step.
func WithFeatureLogger(logger *slog.Logger) FeatureStepOption {
	return func(s *FeatureStep) {
		s.logger = logger
	}
}

// NewFeatureStep creates a feature extraction step using the given
// extractor. A nil extractor gets the default configuration.
func NewFeatureStep(extractor *features.Extractor, opts ...FeatureStepOption) *FeatureStep {
	s := &FeatureStep{
		extractor: extractor,
		logger:    slog.Default(),
	}
	if s.extractor == nil {
		s.extractor = features.NewExtractor()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *FeatureStep) Name() string {
	return "features"
}

// Do executes the feature extraction step.
func (s *FeatureStep) Do(_ context.Context, report *model.URLReport) error {
	report.Features = s.extractor.Extract(report.URL)
	s.logger.Debug("features extracted",
		"url", report.URL,
		"entropy", report.Features.Entropy,
		"length", report.Features.URLLength,
	)
	return nil
}

// ClassifyStep queries the remote classification service for a verdict.
//
// Design decision: Classification failures are recorded on the report and
// returned as errors, but the CLI runs the pipeline with continue-on-error
// so a classifier outage still yields a feature-only report.
type ClassifyStep struct {
	// client calls the predict endpoint.
	client *classifier.Client

	// logger for structured logging.
	logger *slog.Logger
}

// ClassifyStepOption configures a ClassifyStep.
type ClassifyStepOption func(*ClassifyStep)

// WithClassifyLogger sets a custom logger for the classify step.
func WithClassifyLogger(logger *slog.Logger) ClassifyStepOption {
	return func(s *ClassifyStep) {
		s.logger = logger
	}
}

// NewClassifyStep creates a classification step using the given client.
func NewClassifyStep(client *classifier.Client, opts ...ClassifyStepOption) *ClassifyStep {
	s := &ClassifyStep{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ClassifyStep) Name() string {
	return "classify"
}

// Do executes the classification step.
func (s *ClassifyStep) Do(ctx context.Context, report *model.URLReport) error {
	verdict, err := s.client.Classify(ctx, report.URL)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	report.Verdict = verdict
	report.VerdictSource = s.client.Endpoint()
	s.logger.Debug("url classified",
		"url", report.URL,
		"verdict", verdict.String(),
	)
	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// Extractor computes feature vectors. Nil means default configuration.
	Extractor *features.Extractor

	// Classifier calls the predict endpoint. Nil skips classification.
	Classifier *classifier.Client

	// Logger is used by all steps. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultPipeline creates a pipeline with the standard check steps:
// feature extraction, then classification when a client is configured.
//
// Design decision: We provide a default pipeline because most callers want
// the same ordering, and continue-on-error is always enabled so a
// classifier outage still produces a feature-only report.
func DefaultPipeline(cfg DefaultPipelineConfig) *Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := New(
		WithLogger(logger),
		WithContinueOnError(true),
	)

	p.AddStep(NewFeatureStep(cfg.Extractor, WithFeatureLogger(logger)))
	if cfg.Classifier != nil {
		p.AddStep(NewClassifyStep(cfg.Classifier, WithClassifyLogger(logger)))
	}
	return p
}
