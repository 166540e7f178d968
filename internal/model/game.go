package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidGuess is returned when a guess falls outside the configured
// horizon or a range guess is malformed. Rejected before scoring; the core
// never receives a malformed guess.
var ErrInvalidGuess = errors.New("invalid guess")

// Difficulty is a game difficulty tier.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyExpert       Difficulty = "expert"
)

// ParseDifficulty validates a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyExpert:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("unknown difficulty: %q", s)
}

// UserGuess is a player's guess, either a single year or a range.
// Normalized to a YearRange before scoring (point guess → zero-width range).
type UserGuess struct {
	Range YearRange `json:"year_range"`
	Point bool      `json:"point"` // true when the guess was a single year
}

// NewPointGuess constructs a single-year guess, validated against the horizon.
func NewPointGuess(year int, horizon YearRange) (UserGuess, error) {
	if !horizon.ContainsPoint(year) {
		return UserGuess{}, fmt.Errorf("%w: year %d outside horizon %s", ErrInvalidGuess, year, horizon)
	}
	return UserGuess{Range: YearRange{Start: year, End: year}, Point: true}, nil
}

// NewRangeGuess constructs a range guess. Requires start < end; a
// degenerate range guess should be a point guess instead.
func NewRangeGuess(start, end int, horizon YearRange) (UserGuess, error) {
	if start >= end {
		return UserGuess{}, fmt.Errorf("%w: range %d-%d (start must precede end)", ErrInvalidGuess, start, end)
	}
	if start < horizon.Start || end > horizon.End {
		return UserGuess{}, fmt.Errorf("%w: range %d-%d outside horizon %s", ErrInvalidGuess, start, end, horizon)
	}
	return UserGuess{Range: YearRange{Start: start, End: end}}, nil
}

// Width is the guess width in years.
func (g UserGuess) Width() int {
	return g.Range.Width()
}

func (g UserGuess) String() string {
	return g.Range.String()
}

// MapMetadata describes a source map in the catalog.
type MapMetadata struct {
	MapID       string `json:"map_id" yaml:"map_id"`
	Source      string `json:"source" yaml:"source"` // "Library of Congress", etc.
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
	Region      string `json:"region" yaml:"region"`
	ImagePath   string `json:"image_path,omitempty" yaml:"image_path,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// DifficultyHint suggests which tier the map suits; empty means any.
	DifficultyHint Difficulty `json:"difficulty_hint,omitempty" yaml:"difficulty_hint,omitempty"`
}

// GameRound is a single round: the map, the hidden system estimate, and
// the difficulty tier.
type GameRound struct {
	ID         string       `json:"round_id"`
	Map        MapMetadata  `json:"map_metadata"`
	Estimate   DateEstimate `json:"-"` // hidden answer, not serialized to players
	Difficulty Difficulty   `json:"difficulty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// AnswerRange returns the system's estimated range for the round.
func (r GameRound) AnswerRange() YearRange {
	return r.Estimate.Range
}

// ScoreBreakdown is the transparent scoring result for one guess.
// Computed fresh per guess; never mutated after creation.
type ScoreBreakdown struct {
	BaseScore             float64 `json:"base_score"`             // 0-80
	AccuracyBonus         float64 `json:"accuracy_bonus"`         // 0-20
	OverconfidencePenalty float64 `json:"overconfidence_penalty"` // 0-30
	DifficultyMultiplier  float64 `json:"difficulty_multiplier"`
	FinalScore            int     `json:"final_score"` // 0-100, clamped, rounded
	OverlapFraction       float64 `json:"overlap_fraction"`
	WasAccurate           bool    `json:"was_accurate"`
}

// GameResult is the full outcome of a round after a guess, including the
// revealed estimate and educational feedback.
type GameResult struct {
	RoundID    string         `json:"round_id"`
	Guess      UserGuess      `json:"user_guess"`
	Estimate   DateEstimate   `json:"system_estimate"`
	Score      ScoreBreakdown `json:"score"`
	Feedback   string         `json:"feedback"`
	WasExact   bool           `json:"was_exact"` // most likely year within 5 years of the guess
	Difficulty Difficulty     `json:"difficulty"`

	// Signals the guess agreed with / ignored, for stats tracking.
	SupportingSignals []Signal `json:"supporting_signals,omitempty"`
	MissedSignals     []Signal `json:"missed_signals,omitempty"`
}

// PlayerStats tracks a player's performance over time.
type PlayerStats struct {
	PlayerID     string  `json:"player_id"`
	RoundsPlayed int     `json:"rounds_played"`
	TotalScore   float64 `json:"total_score"`

	AccurateGuesses int `json:"accurate_guesses"`
	ExactGuesses    int `json:"exact_guesses"`

	BeginnerRounds     int `json:"beginner_rounds"`
	IntermediateRounds int `json:"intermediate_rounds"`
	ExpertRounds       int `json:"expert_rounds"`

	AvgYearsOff           float64        `json:"avg_years_off"`
	FrequentMissedSignals map[string]int `json:"frequently_missed_signals,omitempty"`
}

// AverageScore returns the mean final score across played rounds.
func (s PlayerStats) AverageScore() float64 {
	if s.RoundsPlayed == 0 {
		return 0
	}
	return s.TotalScore / float64(s.RoundsPlayed)
}

// AccuracyRate returns the percentage of guesses that overlapped the answer.
func (s PlayerStats) AccuracyRate() float64 {
	if s.RoundsPlayed == 0 {
		return 0
	}
	return float64(s.AccurateGuesses) / float64(s.RoundsPlayed) * 100
}
