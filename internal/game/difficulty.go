package game

import "github.com/ppiankov/chronomap/internal/model"

// Promotion gates. A player moves up a tier once they have played enough
// rounds at a sustained accuracy and score.
const (
	intermediateMinRounds   = 3
	intermediateMinAccuracy = 70.0
	intermediateMinAvgScore = 60.0

	expertMinRounds   = 5
	expertMinAccuracy = 60.0
	expertMinAvgScore = 50.0
)

// NextDifficulty decides the tier for the player's next round. Promotion
// only moves one tier at a time and never demotes.
func NextDifficulty(current model.Difficulty, stats model.PlayerStats) model.Difficulty {
	switch current {
	case model.DifficultyBeginner:
		if stats.RoundsPlayed >= intermediateMinRounds &&
			stats.AccuracyRate() >= intermediateMinAccuracy &&
			stats.AverageScore() >= intermediateMinAvgScore {
			return model.DifficultyIntermediate
		}
	case model.DifficultyIntermediate:
		if stats.RoundsPlayed >= expertMinRounds &&
			stats.AccuracyRate() >= expertMinAccuracy &&
			stats.AverageScore() >= expertMinAvgScore {
			return model.DifficultyExpert
		}
	}
	return current
}
