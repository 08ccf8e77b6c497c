package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/big2undey-pixel/URL-Classification/internal/features"
	"github.com/big2undey-pixel/URL-Classification/internal/log"
	"github.com/big2undey-pixel/URL-Classification/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables additional detail in the output, such as the URL
	// digest and the list of performed pipeline steps.
	verbose bool

	// defang rewrites URLs so they can't be clicked accidentally.
	// Recommended when reports may contain live malicious URLs.
	defang bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithDefang rewrites URLs into their non-clickable form in the output.
func WithDefang(defang bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.defang = defang
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		verbose:    false,
		defang:     false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs a single check report in human-readable format.
func (w *SimpleWriter) Write(report *model.URLReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb)
	w.writeReport(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteBatch outputs every report followed by a verdict summary.
func (w *SimpleWriter) WriteBatch(reports []*model.URLReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb)
	for _, report := range reports {
		w.writeReport(&sb, report)
	}
	w.writeBatchSummary(&sb, reports)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report banner.
func (w *SimpleWriter) writeHeader(sb *strings.Builder) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                          SAFEURL REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")
}

// writeReport writes one URL's check result.
func (w *SimpleWriter) writeReport(sb *strings.Builder, report *model.URLReport) {
	sb.WriteString(fmt.Sprintf("URL:           %s\n", w.displayURL(report.URL)))
	sb.WriteString(fmt.Sprintf("Date Checked:  %s\n", report.DateChecked.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Verdict:       %s\n", report.Verdict.String()))

	if report.VerdictSource != "" {
		sb.WriteString(fmt.Sprintf("Classifier:    %s\n", report.VerdictSource))
	}
	if report.ErrorMessage != "" {
		sb.WriteString(fmt.Sprintf("Status:        ERROR - %s\n", report.ErrorMessage))
	} else {
		sb.WriteString("Status:        Complete\n")
	}

	if w.verbose {
		sb.WriteString(fmt.Sprintf("Digest:        %s\n", report.Digest))
		if len(report.PerformedSteps) > 0 {
			sb.WriteString(fmt.Sprintf("Steps:         %s\n", strings.Join(report.PerformedSteps, ", ")))
		}
	}
	sb.WriteString("\n")

	if report.Features != nil {
		w.writeFeatures(sb, report.Features)
		w.writeKeywords(sb, report.Features)
	}
}

// writeFeatures writes the structural feature section.
func (w *SimpleWriter) writeFeatures(sb *strings.Builder, v *features.Vector) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FEATURES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, f := range v.Pairs() {
		if isKeywordFlag(f.Name) {
			continue // Keyword flags get their own section
		}
		sb.WriteString(fmt.Sprintf("  %-16s %s\n", f.Name, formatFeatureValue(f)))
	}
	sb.WriteString("\n")
}

// writeKeywords writes the keyword match section.
func (w *SimpleWriter) writeKeywords(sb *strings.Builder, v *features.Vector) {
	var matched []string
	for _, kw := range v.Keywords {
		if kw.Present == 1 {
			matched = append(matched, kw.Keyword)
		}
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("KEYWORD MATCHES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(matched) == 0 {
		sb.WriteString("  No suspicious keywords found\n")
	} else {
		for _, kw := range matched {
			sb.WriteString(fmt.Sprintf("  [+] %s\n", kw))
		}
	}
	sb.WriteString("\n")
}

// writeBatchSummary writes the verdict totals for a batch run.
func (w *SimpleWriter) writeBatchSummary(sb *strings.Builder, reports []*model.URLReport) {
	counts := countVerdicts(reports)

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("BATCH SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  MALICIOUS: %d\n", counts.malicious))
	sb.WriteString(fmt.Sprintf("  BENIGN:    %d\n", counts.benign))
	sb.WriteString(fmt.Sprintf("  UNKNOWN:   %d\n", counts.unknown))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  TOTAL:     %d urls checked\n", len(reports)))
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by safeurl\n")
	sb.WriteString("https://github.com/big2undey-pixel/URL-Classification\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// displayURL returns the URL in its configured display form.
func (w *SimpleWriter) displayURL(rawURL string) string {
	if w.defang {
		return log.Defang(rawURL)
	}
	return rawURL
}

// formatFeatureValue renders a feature value for display. Counts and flags
// print as integers, entropy prints with fixed precision.
func formatFeatureValue(f features.Feature) string {
	if f.IsInt {
		return fmt.Sprintf("%d", int(f.Value))
	}
	return fmt.Sprintf("%.4f", f.Value)
}
