package feedback

import (
	"fmt"
	"strings"

	"github.com/ppiankov/chronomap/internal/model"
)

// Generator renders a score breakdown plus the round's evidence into
// guided, pedagogical text. Focus on teaching, not just scoring.
type Generator struct {
	keySignals int
}

// NewGenerator creates a feedback generator. keySignals caps how many top
// evidence signals are surfaced per round.
func NewGenerator(keySignals int) *Generator {
	if keySignals <= 0 {
		keySignals = 5
	}
	return &Generator{keySignals: keySignals}
}

// Generate produces the full feedback text: verdict, direction, clue
// analysis, a difficulty-keyed learning tip, and the numeric breakdown
// echoed verbatim.
func (g *Generator) Generate(guess model.UserGuess, round model.GameRound, breakdown model.ScoreBreakdown) string {
	parts := []string{
		g.header(guess, round, breakdown),
		g.direction(guess, round.Estimate, breakdown),
		g.clueAnalysis(guess, round.Estimate),
		g.learningTip(round),
		g.scoreBreakdown(breakdown),
	}

	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}

func (g *Generator) header(guess model.UserGuess, round model.GameRound, breakdown model.ScoreBreakdown) string {
	verdict := "[X] Your guess does not overlap with the system estimate."
	if breakdown.WasAccurate {
		verdict = "[OK] Your guess overlaps with the system estimate!"
	}
	return fmt.Sprintf(
		"YOUR GUESS: %s\nSYSTEM ESTIMATE: %s\nMost likely year: %d\n\n%s",
		guess, round.AnswerRange(), round.Estimate.MostLikelyYear, verdict,
	)
}

// direction states too early / too late with the distance between the
// nearest bounds. Omitted for accurate guesses, which get a precision note
// instead.
func (g *Generator) direction(guess model.UserGuess, est model.DateEstimate, breakdown model.ScoreBreakdown) string {
	gr := guess.Range
	sys := est.Range

	if breakdown.WasAccurate {
		switch {
		case gr.Contains(sys):
			return "Your guess range encompasses the entire estimate. Good caution, but try to narrow it down."
		case sys.Contains(gr):
			return "Your guess fits entirely within the estimate. Excellent precision."
		default:
			return "Your guess partially overlaps with the estimate. Close."
		}
	}

	if gr.End < sys.Start {
		return fmt.Sprintf("You guessed TOO EARLY by about %d years.", sys.Start-gr.End)
	}
	return fmt.Sprintf("You guessed TOO LATE by about %d years.", gr.Start-sys.End)
}

// clueAnalysis marks each key signal as supporting or contradicting the
// guess. An entity supports the guess when its validity range contains the
// guess's midpoint.
func (g *Generator) clueAnalysis(guess model.UserGuess, est model.DateEstimate) string {
	key := est.KeySignals(g.keySignals)
	if len(key) == 0 {
		return ""
	}

	mid := guess.Range.Midpoint()
	lines := []string{"KEY CLUES:"}

	for i, s := range key {
		marker := "[-]"
		verdict := "This contradicts your guess."
		if s.Range.ContainsPoint(mid) {
			marker = "[+]"
			verdict = "This supports your guess."
		}
		lines = append(lines, fmt.Sprintf("  %d. %s %s\n     Valid: %s\n     %s", i+1, marker, s.Label, s.Range, verdict))
		if s.Explanation != "" {
			lines = append(lines, fmt.Sprintf("     Why: %s", s.Explanation))
		}
	}
	return strings.Join(lines, "\n")
}

// learningTip picks one tip from a fixed pool keyed by the round's most
// informative signal kind, phrased for the round's difficulty.
func (g *Generator) learningTip(round model.GameRound) string {
	key := round.Estimate.KeySignals(1)
	kind := model.SignalEntity
	if len(key) > 0 {
		kind = key[0].Kind
	}

	pool, ok := tipPool[round.Difficulty]
	if !ok {
		pool = tipPool[model.DifficultyBeginner]
	}
	tip, ok := pool[kind]
	if !ok {
		tip = "Look for multiple types of clues and triangulate."
	}
	return "TIP: " + tip
}

// tipPool is the fixed learning-tip pool, keyed by difficulty and the
// dominant signal kind.
var tipPool = map[model.Difficulty]map[model.SignalKind]string{
	model.DifficultyBeginner: {
		model.SignalEntity: "Pay close attention to political entity names. Countries and cities change names " +
			"when borders shift or regimes change. For example: USSR (1922-1991), Constantinople became Istanbul in 1930.",
		model.SignalTextualYear: "Years printed on a map are clues, but be careful: a map from 1950 can reference " +
			"events from 1914. Look for several temporal clues to triangulate.",
		model.SignalVisual: "Printing style, border drawing, and colors reveal the era of production. " +
			"Hand-drawn borders suggest earlier maps; digital precision suggests modern ones.",
	},
	model.DifficultyIntermediate: {
		model.SignalEntity:      "Watch for subtle name changes and short-lived states. Interwar borders and decolonization reshuffle the map quickly.",
		model.SignalTextualYear: "Cross-check printed years against entity lifespans: a single year reference can mislead by decades.",
		model.SignalVisual:      "Combine weak visual cues with entity evidence; neither alone pins down a transitional period.",
	},
	model.DifficultyExpert: {
		model.SignalEntity:      "At this level entity clues may be ambiguous; weigh every signal and expect composites.",
		model.SignalTextualYear: "Treat printed years as soft evidence and reason about which bound they actually constrain.",
		model.SignalVisual:      "Typography, border styles, and printing techniques can narrow the era when entities cannot.",
	},
}

// scoreBreakdown echoes the numeric breakdown verbatim.
func (g *Generator) scoreBreakdown(b model.ScoreBreakdown) string {
	lines := []string{"SCORING BREAKDOWN:"}
	lines = append(lines, fmt.Sprintf("  Base score (overlap): %.1f points", b.BaseScore))
	if b.AccuracyBonus > 0 {
		lines = append(lines, fmt.Sprintf("  Accuracy bonus: +%.1f points", b.AccuracyBonus))
	}
	if b.OverconfidencePenalty > 0 {
		lines = append(lines, fmt.Sprintf("  Overconfidence penalty: -%.1f points", b.OverconfidencePenalty))
	}
	if b.DifficultyMultiplier != 1.0 {
		lines = append(lines, fmt.Sprintf("  Difficulty multiplier: x%.1f", b.DifficultyMultiplier))
	}
	lines = append(lines, fmt.Sprintf("\n  FINAL SCORE: %d/100", b.FinalScore))
	return strings.Join(lines, "\n")
}

// SupportingSignals returns the key signals whose ranges contain the
// guess's midpoint.
func (g *Generator) SupportingSignals(guess model.UserGuess, est model.DateEstimate) []model.Signal {
	return g.partitionSignals(guess, est, true)
}

// MissedSignals returns the key signals the guess ignored or contradicted.
func (g *Generator) MissedSignals(guess model.UserGuess, est model.DateEstimate) []model.Signal {
	return g.partitionSignals(guess, est, false)
}

func (g *Generator) partitionSignals(guess model.UserGuess, est model.DateEstimate, supporting bool) []model.Signal {
	mid := guess.Range.Midpoint()
	var out []model.Signal
	for _, s := range est.KeySignals(g.keySignals) {
		if s.Range.ContainsPoint(mid) == supporting {
			out = append(out, s)
		}
	}
	return out
}
