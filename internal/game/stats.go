package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/chronomap/internal/model"
)

// StatsStore persists player statistics as one JSON file per player
// under the stats directory.
type StatsStore struct {
	dir string
}

// NewStatsStore creates a stats store rooted at dir.
func NewStatsStore(dir string) *StatsStore {
	return &StatsStore{dir: dir}
}

// Load reads a player's stats. An unknown player gets fresh stats, not
// an error.
func (s *StatsStore) Load(playerID string) (model.PlayerStats, error) {
	data, err := os.ReadFile(s.path(playerID))
	if os.IsNotExist(err) {
		return model.PlayerStats{PlayerID: playerID}, nil
	}
	if err != nil {
		return model.PlayerStats{}, fmt.Errorf("read stats: %w", err)
	}

	var stats model.PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return model.PlayerStats{}, fmt.Errorf("parse stats: %w", err)
	}
	return stats, nil
}

// Save writes a player's stats to disk.
func (s *StatsStore) Save(stats model.PlayerStats) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create stats dir: %w", err)
	}

	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	return os.WriteFile(s.path(stats.PlayerID), data, 0o644)
}

// Record folds one round result into the stats.
func Record(stats *model.PlayerStats, result model.GameResult, yearsOff int) {
	played := float64(stats.RoundsPlayed)

	stats.RoundsPlayed++
	stats.TotalScore += float64(result.Score.FinalScore)

	if result.Score.WasAccurate {
		stats.AccurateGuesses++
	}
	if result.WasExact {
		stats.ExactGuesses++
	}

	switch result.Difficulty {
	case model.DifficultyBeginner:
		stats.BeginnerRounds++
	case model.DifficultyIntermediate:
		stats.IntermediateRounds++
	case model.DifficultyExpert:
		stats.ExpertRounds++
	}

	// Running mean, so stored stats never need the per-round history.
	stats.AvgYearsOff = (stats.AvgYearsOff*played + float64(yearsOff)) / float64(stats.RoundsPlayed)

	for _, sig := range result.MissedSignals {
		if stats.FrequentMissedSignals == nil {
			stats.FrequentMissedSignals = make(map[string]int)
		}
		stats.FrequentMissedSignals[string(sig.Kind)]++
	}
}

func (s *StatsStore) path(playerID string) string {
	return filepath.Join(s.dir, sanitizeID(playerID)+".json")
}

// sanitizeID keeps player IDs filename-safe
func sanitizeID(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "player"
	}
	return b.String()
}
