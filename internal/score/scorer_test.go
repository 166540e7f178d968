package score

import (
	"testing"

	"github.com/ppiankov/chronomap/internal/model"
)

var horizon = model.MustYearRange(1000, 2100)

func testScorer() *Scorer {
	return NewScorer(model.DefaultConfig().Scoring)
}

func estimate(start, end int) model.DateEstimate {
	r := model.MustYearRange(start, end)
	return model.DateEstimate{
		Range:          r,
		MostLikelyYear: r.Midpoint(),
		Confidence:     0.8,
	}
}

func rangeGuess(t *testing.T, start, end int) model.UserGuess {
	t.Helper()
	g, err := model.NewRangeGuess(start, end, horizon)
	if err != nil {
		t.Fatalf("Guess construction failed: %v", err)
	}
	return g
}

func pointGuess(t *testing.T, year int) model.UserGuess {
	t.Helper()
	g, err := model.NewPointGuess(year, horizon)
	if err != nil {
		t.Fatalf("Guess construction failed: %v", err)
	}
	return g
}

func TestScore_ContainedRangeGuess(t *testing.T) {
	// Guess 1960-1980 inside estimate 1949-1990 at beginner.
	b := testScorer().Score(rangeGuess(t, 1960, 1980), estimate(1949, 1990), model.DifficultyBeginner)

	if !b.WasAccurate {
		t.Fatal("Expected accurate guess")
	}
	if b.BaseScore != 80 {
		t.Errorf("Full containment should earn base 80, got %g", b.BaseScore)
	}
	if b.AccuracyBonus <= 0 {
		t.Errorf("Narrower guess (20y < 41y) should earn a bonus, got %g", b.AccuracyBonus)
	}
	if b.FinalScore <= 80 || b.FinalScore > 100 {
		t.Errorf("Expected final score in (80,100], got %d", b.FinalScore)
	}
}

func TestScore_PointGuessInside(t *testing.T) {
	b := testScorer().Score(pointGuess(t, 1970), estimate(1949, 1990), model.DifficultyBeginner)

	if b.BaseScore != 80 {
		t.Errorf("Contained point guess should earn full base, got %g", b.BaseScore)
	}
	if b.AccuracyBonus != 20 {
		t.Errorf("Zero-width guess should earn maximal bonus, got %g", b.AccuracyBonus)
	}
	if b.FinalScore != 100 {
		t.Errorf("Expected final score 100 (clamped), got %d", b.FinalScore)
	}
}

func TestScore_WideGuessContainingEstimate(t *testing.T) {
	// Guess 1900-2000 (width 100) fully containing 1949-1990 (width 41).
	b := testScorer().Score(rangeGuess(t, 1900, 2000), estimate(1949, 1990), model.DifficultyBeginner)

	want := 80 * 41.0 / 100.0 // 32.8
	if b.BaseScore != want {
		t.Errorf("Expected base %g, got %g", want, b.BaseScore)
	}
	if b.AccuracyBonus != 0 {
		t.Errorf("Guess not contained in estimate earns no bonus, got %g", b.AccuracyBonus)
	}
	if b.FinalScore >= 50 {
		t.Errorf("Expected final score well below 50, got %d", b.FinalScore)
	}
}

func TestScore_NarrowMiss(t *testing.T) {
	// Point guess 1800 misses 1949-1990 entirely: near-maximal penalty.
	for _, d := range []model.Difficulty{model.DifficultyBeginner, model.DifficultyIntermediate, model.DifficultyExpert} {
		b := testScorer().Score(pointGuess(t, 1800), estimate(1949, 1990), d)

		if b.WasAccurate {
			t.Fatal("Expected miss")
		}
		if b.BaseScore != 0 {
			t.Errorf("Miss earns no base, got %g", b.BaseScore)
		}
		if b.OverconfidencePenalty != 30 {
			t.Errorf("Zero-width miss should earn full penalty 30, got %g", b.OverconfidencePenalty)
		}
		if b.FinalScore != 0 {
			t.Errorf("Expected final 0 at difficulty %s, got %d", d, b.FinalScore)
		}
	}
}

func TestScore_WideMissNotPenalized(t *testing.T) {
	// A 60-year wrong guess is beyond the 50-year reference width: no penalty.
	b := testScorer().Score(rangeGuess(t, 1700, 1760), estimate(1949, 1990), model.DifficultyBeginner)

	if b.OverconfidencePenalty != 0 {
		t.Errorf("Wide miss beyond reference width should not be penalized, got %g", b.OverconfidencePenalty)
	}
	if b.FinalScore != 0 {
		t.Errorf("Miss still scores 0, got %d", b.FinalScore)
	}
}

func TestScore_DifficultyMultiplier(t *testing.T) {
	guess := rangeGuess(t, 1950, 1970)
	est := estimate(1949, 1990)

	beginner := testScorer().Score(guess, est, model.DifficultyBeginner)
	expert := testScorer().Score(guess, est, model.DifficultyExpert)

	if expert.DifficultyMultiplier != 1.6 || beginner.DifficultyMultiplier != 1.0 {
		t.Errorf("Unexpected multipliers: %g / %g", beginner.DifficultyMultiplier, expert.DifficultyMultiplier)
	}
	if expert.FinalScore < beginner.FinalScore {
		t.Error("Expert multiplier must not lower an accurate score")
	}
	if expert.FinalScore > 100 {
		t.Errorf("Final score must clamp at 100, got %d", expert.FinalScore)
	}
}

func TestScore_PartialOverlap(t *testing.T) {
	// Guess 1940-1960 overlaps 1949-1990 at 1949-1960: 11/20 of the guess.
	b := testScorer().Score(rangeGuess(t, 1940, 1960), estimate(1949, 1990), model.DifficultyBeginner)

	want := 80 * 11.0 / 20.0
	if b.BaseScore != want {
		t.Errorf("Expected base %g, got %g", want, b.BaseScore)
	}
	if b.AccuracyBonus != 0 {
		t.Error("Partial overlap earns no bonus")
	}
	if b.OverconfidencePenalty != 0 {
		t.Error("Accurate guess earns no penalty")
	}
}

func TestIsExact(t *testing.T) {
	est := model.DateEstimate{Range: model.MustYearRange(1949, 1990), MostLikelyYear: 1970}
	s := testScorer()

	if !s.IsExact(pointGuess(t, 1972), est) {
		t.Error("1972 is within 5 years of 1970")
	}
	if s.IsExact(pointGuess(t, 1980), est) {
		t.Error("1980 is not within 5 years of 1970")
	}
	if !s.IsExact(rangeGuess(t, 1960, 1980), est) {
		t.Error("Range containing the most likely year is exact")
	}
}

func TestYearsOff(t *testing.T) {
	est := model.DateEstimate{Range: model.MustYearRange(1949, 1990), MostLikelyYear: 1970}

	if got := YearsOff(pointGuess(t, 1800), est); got != 170 {
		t.Errorf("Expected 170 years off, got %d", got)
	}
	if got := YearsOff(rangeGuess(t, 1960, 1980), est); got != 0 {
		t.Errorf("Expected 0 years off for containing guess, got %d", got)
	}
	if got := YearsOff(rangeGuess(t, 1991, 2000), est); got != 21 {
		t.Errorf("Expected 21 years off, got %d", got)
	}
}
