package model

import (
	"encoding/hex"
	"time"

	"github.com/big2undey-pixel/URL-Classification/internal/features"
	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"
)

// URLReport is the result of checking one URL. It accumulates the locally
// computed feature vector and the remote classifier's verdict as the
// pipeline steps run.
//
// Design decision: We use a single struct rather than per-step results to
// simplify serialization and database storage, mirroring how scan findings
// accumulate on one report object.
type URLReport struct {
	// ID uniquely identifies this check.
	ID string `json:"id"`

	// URL is the raw target string exactly as the user supplied it.
	// It is never normalized; the feature contract depends on the raw form.
	URL string `json:"url"`

	// Digest is the hex SHA3-256 of URL, used as the stable database key.
	Digest string `json:"digest"`

	// DateChecked is when the check was performed.
	DateChecked time.Time `json:"date_checked"`

	// Features is the lexical feature vector computed from URL.
	// Always present after the extraction step; nil before it runs.
	Features *features.Vector `json:"features,omitempty"`

	// Verdict is the classifier's label. VerdictUnknown when classification
	// was skipped or failed.
	Verdict Verdict `json:"verdict"`

	// VerdictSource records where the verdict came from, e.g. the classifier
	// endpoint. Empty when the URL was not classified.
	VerdictSource string `json:"verdict_source,omitempty"`

	// PerformedSteps lists the pipeline steps that actually ran.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error contains any error that occurred during the check.
	// Only set if a step failed.
	Error error `json:"-"` // Excluded from JSON

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewURLReport creates a report for the given raw URL.
func NewURLReport(rawURL string) *URLReport {
	return &URLReport{
		ID:          uuid.NewString(),
		URL:         rawURL,
		Digest:      URLDigest(rawURL),
		DateChecked: time.Now(),
		Verdict:     VerdictUnknown,
	}
}

// MarkStep records that a pipeline step ran on this report.
func (r *URLReport) MarkStep(name string) {
	r.PerformedSteps = append(r.PerformedSteps, name)
}

// SetError records a step failure on the report. Both the error value and
// its serializable message are kept so errors.Is still works in-process
// while the message survives a database round trip.
func (r *URLReport) SetError(err error) {
	if err == nil {
		return
	}
	r.Error = err
	r.ErrorMessage = err.Error()
}

// Classified reports whether the classifier produced a definite label.
func (r *URLReport) Classified() bool {
	return r.Verdict == VerdictBenign || r.Verdict == VerdictMalicious
}

// URLDigest returns the hex-encoded SHA3-256 digest of a raw URL string.
// Used as the database lookup key so arbitrarily long or binary-laden URLs
// index cleanly.
func URLDigest(rawURL string) string {
	sum := sha3.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}
