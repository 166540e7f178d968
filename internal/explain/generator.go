package explain

import (
	"fmt"
	"strings"

	"github.com/ppiankov/chronomap/internal/infer"
	"github.com/ppiankov/chronomap/internal/model"
)

// Generator renders a DateEstimate into ordered, human-readable evidence
// text and caveats. Stateless; it never introduces information that is not
// present in the estimate.
type Generator struct {
	engine  *infer.Engine
	verbose bool
}

// NewGenerator creates an explanation generator. The engine is consulted
// only to name the dominant confidence term; the evidence ordering is
// taken from the estimate as-is.
func NewGenerator(engine *infer.Engine, verbose bool) *Generator {
	return &Generator{engine: engine, verbose: verbose}
}

// Generate produces the full multi-section explanation.
func (g *Generator) Generate(est model.DateEstimate) string {
	var parts []string

	parts = append(parts, g.header(est))
	if len(est.Evidence) > 0 {
		parts = append(parts, g.evidenceSummary(est))
		parts = append(parts, g.detailedEvidence(est))
	}
	if len(est.Conflicts) > 0 {
		parts = append(parts, g.conflictSummary(est))
	}
	parts = append(parts, g.confidenceRationale(est))
	if g.verbose {
		if caveats := g.caveats(est); caveats != "" {
			parts = append(parts, caveats)
		}
	}

	return strings.Join(parts, "\n\n")
}

func (g *Generator) header(est model.DateEstimate) string {
	return fmt.Sprintf(
		"ESTIMATED DATE: %s\nMost likely year: %d\nConfidence: %d%% (%s)",
		est.Range, est.MostLikelyYear,
		int(est.Confidence*100), ConfidenceLabel(est.Confidence),
	)
}

func (g *Generator) evidenceSummary(est model.DateEstimate) string {
	counts := map[model.SignalKind]int{}
	for _, s := range est.Evidence {
		counts[s.Kind]++
	}

	lines := []string{"EVIDENCE SUMMARY:"}
	if n := counts[model.SignalEntity]; n > 0 {
		lines = append(lines, fmt.Sprintf("  - %d historical %s", n, plural(n, "entity", "entities")))
	}
	if n := counts[model.SignalTextualYear]; n > 0 {
		lines = append(lines, fmt.Sprintf("  - %d textual %s", n, plural(n, "reference", "references")))
	}
	if n := counts[model.SignalVisual]; n > 0 {
		lines = append(lines, fmt.Sprintf("  - %d visual %s", n, plural(n, "feature", "features")))
	}
	return strings.Join(lines, "\n")
}

// detailedEvidence emits one block per signal in evidence order, which the
// inference engine fixed as part of its contract.
func (g *Generator) detailedEvidence(est model.DateEstimate) string {
	lines := []string{"DETAILED EVIDENCE:"}

	for i, s := range est.Evidence {
		note := ""
		if s.NonBinding {
			note = " [non-binding: did not narrow the estimate]"
		}
		lines = append(lines, fmt.Sprintf("  %d. %s%s", i+1, s.Label, note))
		lines = append(lines, fmt.Sprintf("     Range: %s (confidence: %d%%)", s.Range, int(s.Confidence*100)))
		if s.Explanation != "" {
			lines = append(lines, fmt.Sprintf("     Reasoning: %s", s.Explanation))
		}
	}
	return strings.Join(lines, "\n")
}

func (g *Generator) conflictSummary(est model.DateEstimate) string {
	lines := []string{"CONFLICTS:"}
	for _, c := range est.Conflicts {
		lines = append(lines, fmt.Sprintf(
			"  - %s and %s did not coexist (severity %d%%)",
			c.LabelA, c.LabelB, int(c.Severity*100),
		))
	}
	lines = append(lines, "  The map may be composite or anachronistic.")
	return strings.Join(lines, "\n")
}

// confidenceRationale names the dominant confidence term.
func (g *Generator) confidenceRationale(est model.DateEstimate) string {
	lines := []string{"CONFIDENCE ANALYSIS:"}

	switch g.engine.DominantTerm(est) {
	case infer.TermConflict:
		lines = append(lines, fmt.Sprintf(
			"  Confidence reduced: %d conflicting evidence %s detected.",
			len(est.Conflicts), plural(len(est.Conflicts), "pair", "pairs")))
	case infer.TermCorroboration:
		lines = append(lines, fmt.Sprintf(
			"  Driven by corroboration: %d independent entities agree on the period.",
			est.EntityCount()))
	default:
		width := est.Range.Width()
		if width <= 10 {
			lines = append(lines, fmt.Sprintf("  Driven by precision: the %d-year window is narrow.", width))
		} else {
			lines = append(lines, fmt.Sprintf("  Limited by range width: a %d-year window leaves real uncertainty.", width))
		}
	}
	return strings.Join(lines, "\n")
}

func (g *Generator) caveats(est model.DateEstimate) string {
	var lines []string

	hasVisual := false
	for _, s := range est.Evidence {
		if s.Kind == model.SignalVisual {
			hasVisual = true
			break
		}
	}
	if !hasVisual && len(est.Evidence) > 0 {
		lines = append(lines, "  - No visual analysis available; estimate rests on textual evidence alone.")
	}
	if est.Range.Width() > 50 {
		lines = append(lines, "  - Wide date range: constraining evidence is limited.")
	}
	if len(lines) == 0 {
		return ""
	}
	return "CAVEATS:\n" + strings.Join(lines, "\n")
}

// ShortSummary is a one-line rendering for UI display.
func (g *Generator) ShortSummary(est model.DateEstimate) string {
	n := est.EntityCount()
	return fmt.Sprintf("Estimated %s (%d%% confidence) based on %d historical %s",
		est.Range, int(est.Confidence*100), n, plural(n, "entity", "entities"))
}

// ConfidenceLabel converts a confidence score to a qualitative label.
func ConfidenceLabel(confidence float64) string {
	switch {
	case confidence >= 0.9:
		return "very high"
	case confidence >= 0.75:
		return "high"
	case confidence >= 0.6:
		return "moderate"
	case confidence >= 0.4:
		return "low"
	default:
		return "very low"
	}
}

func plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
