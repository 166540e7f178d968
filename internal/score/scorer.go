package score

import (
	"math"

	"github.com/ppiankov/chronomap/internal/model"
)

// Scorer grades a guess against the system's date estimate.
//
// Scoring philosophy:
// - Reward overlap with the system estimate (base, 0-80).
// - Bonus for narrow guesses fully contained in the estimate (0-20).
// - Penalty for overconfident narrow guesses that miss entirely (0-30).
// - Scale by difficulty, clamp to 0-100.
//
// Pure computation over request-scoped inputs; safe for concurrent use.
type Scorer struct {
	cfg model.ScoringConfig
}

// NewScorer creates a scorer with the given tuning.
func NewScorer(cfg model.ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score computes the breakdown for a guess against the round's hidden
// estimate. Guess validity (horizon bounds, range shape) is enforced at
// construction; the scorer assumes well-formed input and never fails.
func (s *Scorer) Score(guess model.UserGuess, estimate model.DateEstimate, difficulty model.Difficulty) model.ScoreBreakdown {
	g := guess.Range
	sys := estimate.Range

	overlap, accurate := g.Intersect(sys)

	var base, bonus, penalty float64
	overlapFraction := 0.0

	if accurate {
		if overlap.Width() == g.Width() {
			// Full containment, point guesses included, earns the full base.
			overlapFraction = 1
		} else {
			overlapFraction = float64(overlap.Width()) / float64(g.Width())
		}
		base = 80 * overlapFraction

		// Bonus only when the guess lies fully inside the system range:
		// narrower correct guesses earn more.
		if overlap.Width() == g.Width() {
			sysWidth := sys.Width()
			if sysWidth < 1 {
				sysWidth = 1
			}
			bonus = 20 * (1 - float64(g.Width())/float64(sysWidth))
			if bonus < 0 {
				bonus = 0
			}
		}
	} else {
		// Overconfidence penalty: narrow misses are penalized hardest,
		// saturating at the reference width.
		ref := float64(s.cfg.ReferenceWidth)
		if ref < 1 {
			ref = 1
		}
		penalty = 30 * math.Max(0, 1-float64(g.Width())/ref)
	}

	multiplier := s.cfg.Multiplier(difficulty)

	final := (base + bonus - penalty) * multiplier
	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}

	return model.ScoreBreakdown{
		BaseScore:             base,
		AccuracyBonus:         bonus,
		OverconfidencePenalty: penalty,
		DifficultyMultiplier:  multiplier,
		FinalScore:            int(math.Round(final)),
		OverlapFraction:       overlapFraction,
		WasAccurate:           accurate,
	}
}

// IsExact reports whether the guess lands within the exactness threshold
// of the estimate's most likely year.
func (s *Scorer) IsExact(guess model.UserGuess, estimate model.DateEstimate) bool {
	g := guess.Range
	ml := estimate.MostLikelyYear

	if g.ContainsPoint(ml) {
		return true
	}
	threshold := s.cfg.ExactThresholdYears
	return abs(g.Start-ml) <= threshold || abs(g.End-ml) <= threshold
}

// YearsOff is the distance from the guess to the estimate's most likely
// year (0 when the year falls inside the guess). Used for stats tracking.
func YearsOff(guess model.UserGuess, estimate model.DateEstimate) int {
	g := guess.Range
	ml := estimate.MostLikelyYear

	if g.ContainsPoint(ml) {
		return 0
	}
	if ml < g.Start {
		return g.Start - ml
	}
	return ml - g.End
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
