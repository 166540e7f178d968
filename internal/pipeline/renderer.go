package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/chronomap/internal/explain"
	"github.com/ppiankov/chronomap/internal/model"
)

// Renderer writes analysis reports as JSON and Markdown
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON
func (r *Renderer) RenderJSON(report *model.AnalysisReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(report *model.AnalysisReport, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Map dating report: %s\n\n", report.Subject)
	if report.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n\n", report.Source)
	}
	fmt.Fprintf(&b, "Analyzed: %s\n\n", report.AnalyzedAt.Format("2006-01-02 15:04 UTC"))

	est := report.Estimate
	fmt.Fprintf(&b, "## Estimate\n\n")
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Date range | %s |\n", est.Range)
	fmt.Fprintf(&b, "| Most likely year | %d |\n", est.MostLikelyYear)
	fmt.Fprintf(&b, "| Confidence | %.0f%% (%s) |\n", est.Confidence*100, explain.ConfidenceLabel(est.Confidence))
	fmt.Fprintf(&b, "| Signals | %d |\n", len(est.Evidence))
	fmt.Fprintf(&b, "| Conflicts | %d |\n\n", len(est.Conflicts))

	fmt.Fprintf(&b, "## Reasoning\n\n```\n%s\n```\n\n", report.Explanation)

	fmt.Fprintf(&b, "## Inputs\n\n")
	fmt.Fprintf(&b, "- Tokens: %d\n", report.Inputs.Tokens)
	fmt.Fprintf(&b, "- Entity matches: %d\n", report.Inputs.EntityMatches)
	fmt.Fprintf(&b, "- Year references: %d\n", report.Inputs.YearReferences)
	fmt.Fprintf(&b, "- Visual features: %d\n", report.Inputs.VisualFeatures)

	if r.includeFooter {
		b.WriteString("\n---\nGenerated by ChronoMap. Estimates describe what the evidence supports, not certified publication dates.\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// RenderSummary prints a short result line to stdout
func (r *Renderer) RenderSummary(report *model.AnalysisReport) {
	est := report.Estimate
	fmt.Printf("%s: %s (most likely %d, confidence %.0f%%)\n",
		report.Subject, est.Range, est.MostLikelyYear, est.Confidence*100)
}
