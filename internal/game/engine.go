package game

import (
	"fmt"

	"github.com/ppiankov/chronomap/internal/feedback"
	"github.com/ppiankov/chronomap/internal/model"
	"github.com/ppiankov/chronomap/internal/score"
)

// Engine runs rounds for one player: it grades guesses, generates
// feedback, and keeps the player's statistics current.
type Engine struct {
	scorer   *score.Scorer
	feedback *feedback.Generator
	hints    *feedback.HintEngine
	stats    *StatsStore
	horizon  model.YearRange
}

// NewEngine creates a game engine from configuration.
func NewEngine(cfg *model.Config, stats *StatsStore) *Engine {
	return &Engine{
		scorer:   score.NewScorer(cfg.Scoring),
		feedback: feedback.NewGenerator(cfg.Game.KeySignals),
		hints:    feedback.NewHintEngine(cfg.Game.KeySignals),
		stats:    stats,
		horizon:  cfg.Horizon.Range(),
	}
}

// Horizon returns the guessable year range.
func (e *Engine) Horizon() model.YearRange {
	return e.horizon
}

// Hints returns the pre-guess hints for a round.
func (e *Engine) Hints(round model.GameRound, revealCount int) []string {
	return e.hints.PreGuessHints(round, revealCount)
}

// SubmitGuess grades a guess against the round's hidden estimate and
// returns the full result, with feedback and signal accounting.
func (e *Engine) SubmitGuess(round model.GameRound, guess model.UserGuess) model.GameResult {
	breakdown := e.scorer.Score(guess, round.Estimate, round.Difficulty)

	return model.GameResult{
		RoundID:           round.ID,
		Guess:             guess,
		Estimate:          round.Estimate,
		Score:             breakdown,
		Feedback:          e.feedback.Generate(guess, round, breakdown),
		WasExact:          e.scorer.IsExact(guess, round.Estimate),
		Difficulty:        round.Difficulty,
		SupportingSignals: e.feedback.SupportingSignals(guess, round.Estimate),
		MissedSignals:     e.feedback.MissedSignals(guess, round.Estimate),
	}
}

// RecordResult folds the result into the player's persisted stats and
// returns the updated stats.
func (e *Engine) RecordResult(playerID string, result model.GameResult) (model.PlayerStats, error) {
	stats, err := e.stats.Load(playerID)
	if err != nil {
		return model.PlayerStats{}, fmt.Errorf("load stats: %w", err)
	}

	Record(&stats, result, score.YearsOff(result.Guess, result.Estimate))

	if err := e.stats.Save(stats); err != nil {
		return model.PlayerStats{}, fmt.Errorf("save stats: %w", err)
	}
	return stats, nil
}

// LearningPoints returns post-guess study pointers for missed signals.
func (e *Engine) LearningPoints(round model.GameRound, result model.GameResult) []string {
	return e.hints.PostGuessLearningPoints(round, result.MissedSignals)
}
