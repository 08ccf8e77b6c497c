package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/big2undey-pixel/URL-Classification/internal/features"
	"github.com/big2undey-pixel/URL-Classification/internal/model"
)

// keywordCaser title-cases keyword names for display, e.g. "login" -> "Login".
var keywordCaser = cases.Title(language.English)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs a single check report in Markdown format.
func (w *MarkdownWriter) Write(report *model.URLReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("SafeURL Report")
	md.PlainText("")

	w.writeReport(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteBatch outputs every report plus a verdict distribution summary.
func (w *MarkdownWriter) WriteBatch(reports []*model.URLReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("SafeURL Batch Report")
	md.PlainText("")

	w.writeBatchSummary(md, reports)
	for _, report := range reports {
		w.writeReport(md, report)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeReport writes one URL's check result.
func (w *MarkdownWriter) writeReport(md *markdown.Markdown, report *model.URLReport) {
	md.H2("`" + report.URL + "`")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", "`" + report.URL + "`"},
			{"Date Checked", report.DateChecked.Format("2006-01-02 15:04:05 MST")},
			{"Verdict", verdictText(report.Verdict)},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")

	w.writeAlert(md, report)

	if report.Features != nil {
		w.writeFeatures(md, report.Features)
		w.writeKeywords(md, report.Features)
	}
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.URLReport) string {
	if report.ErrorMessage != "" {
		return "❌ Error - " + report.ErrorMessage
	}
	return "✅ Complete"
}

// verdictText returns the verdict with a visual indicator.
func verdictText(v model.Verdict) string {
	switch v {
	case model.VerdictMalicious:
		return "🔴 MALICIOUS"
	case model.VerdictBenign:
		return "🟢 BENIGN"
	default:
		return "⚪ UNKNOWN"
	}
}

// writeAlert writes an appropriate alert based on the verdict.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.URLReport) {
	switch report.Verdict {
	case model.VerdictMalicious:
		md.Caution("This URL was classified as malicious. Do not visit it.")
	case model.VerdictBenign:
		md.Tip("No malicious indicators detected by the classifier.")
	default:
		md.Note("The URL was not classified. Only local features are available.")
	}
	md.PlainText("")
}

// writeFeatures writes the structural feature table.
func (w *MarkdownWriter) writeFeatures(md *markdown.Markdown, v *features.Vector) {
	md.H3("Features")
	md.PlainText("")

	var rows [][]string
	for _, f := range v.Pairs() {
		if isKeywordFlag(f.Name) {
			continue // Keyword flags get their own table
		}
		rows = append(rows, []string{f.Name, formatFeatureValue(f)})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Feature", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeKeywords writes the keyword match table.
func (w *MarkdownWriter) writeKeywords(md *markdown.Markdown, v *features.Vector) {
	if len(v.Keywords) == 0 {
		return
	}

	md.H3("Keyword Matches")
	md.PlainText("")

	rows := make([][]string, len(v.Keywords))
	for i, kw := range v.Keywords {
		matched := "No"
		if kw.Present == 1 {
			matched = "**Yes**"
		}
		rows[i] = []string{keywordCaser.String(kw.Keyword), matched}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Keyword", "Matched"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeBatchSummary writes the verdict totals and a distribution chart.
func (w *MarkdownWriter) writeBatchSummary(md *markdown.Markdown, reports []*model.URLReport) {
	counts := countVerdicts(reports)

	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Verdict", "Count"},
		Rows: [][]string{
			{"🔴 Malicious", strconv.Itoa(counts.malicious)},
			{"🟢 Benign", strconv.Itoa(counts.benign)},
			{"⚪ Unknown", strconv.Itoa(counts.unknown)},
			{"**Total**", "**" + strconv.Itoa(len(reports)) + "**"},
		},
	})
	md.PlainText("")

	if len(reports) > 0 {
		w.writeVerdictChart(md, counts)
	}

	if counts.malicious > 0 {
		md.Cautionf("%d of %d checked URL(s) were classified as malicious.",
			counts.malicious, len(reports))
		md.PlainText("")
	}
}

// writeVerdictChart writes a mermaid pie chart for the verdict distribution.
func (w *MarkdownWriter) writeVerdictChart(md *markdown.Markdown, counts verdictCounts) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Verdict Distribution"),
		piechart.WithShowData(true),
	)

	if counts.malicious > 0 {
		chart.LabelAndIntValue("Malicious", uint64(counts.malicious))
	}
	if counts.benign > 0 {
		chart.LabelAndIntValue("Benign", uint64(counts.benign))
	}
	if counts.unknown > 0 {
		chart.LabelAndIntValue("Unknown", uint64(counts.unknown))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [safeurl](https://github.com/big2undey-pixel/URL-Classification)*")
}

// isKeywordFlag reports whether a serialized feature name is a keyword flag
// rather than a structural feature.
func isKeywordFlag(name string) bool {
	if name == features.FeatureHasHTTPS {
		return false
	}
	return len(name) > 4 && name[:4] == "has_"
}
