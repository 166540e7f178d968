package feedback

import "github.com/ppiankov/chronomap/internal/model"

// HintEngine generates difficulty-appropriate hints: beginners get
// explicit nudges, experts get minimal guidance.
type HintEngine struct {
	keySignals int
}

// NewHintEngine creates a hint engine.
func NewHintEngine(keySignals int) *HintEngine {
	if keySignals <= 0 {
		keySignals = 5
	}
	return &HintEngine{keySignals: keySignals}
}

// PreGuessHints returns mild nudges before the player guesses; they point
// at signal kinds, never at the answer.
func (h *HintEngine) PreGuessHints(round model.GameRound, revealCount int) []string {
	if revealCount <= 0 {
		revealCount = 1
	}

	switch round.Difficulty {
	case model.DifficultyBeginner:
		var hints []string
		for _, s := range round.Estimate.KeySignals(h.keySignals) {
			if len(hints) >= revealCount {
				break
			}
			switch s.Kind {
			case model.SignalEntity:
				hints = append(hints, "Look for country or city names; many changed throughout the 20th century.")
			case model.SignalTextualYear:
				hints = append(hints, "Check whether any years are printed on the map; they may date nearby events.")
			case model.SignalVisual:
				hints = append(hints, "Study the drawing and printing style; it narrows down the era.")
			}
		}
		if len(hints) == 0 {
			hints = append(hints, "Look for political entity names like countries and cities.")
		}
		return hints

	case model.DifficultyIntermediate:
		return []string{
			"Focus on political entities and territorial names.",
			"Consider major historical events that changed borders.",
		}

	default:
		return []string{"Analyze all available signals carefully."}
	}
}

// PostGuessLearningPoints turns missed signals into educational notes.
func (h *HintEngine) PostGuessLearningPoints(round model.GameRound, missed []model.Signal) []string {
	var points []string

	hasEntity, hasVisual := false, false
	for _, s := range missed {
		switch s.Kind {
		case model.SignalEntity:
			hasEntity = true
		case model.SignalVisual:
			hasVisual = true
		}
	}

	if hasEntity {
		points = append(points,
			"LEARNING POINT: Historical entity names are powerful dating clues. "+
				"Countries like the USSR or East Germany and cities like Leningrad have precise existence dates.")
	}
	if hasVisual && round.Difficulty == model.DifficultyExpert {
		points = append(points,
			"LEARNING POINT: At expert level visual features matter. Border drawing style, "+
				"typography, and printing techniques can narrow the era significantly.")
	}
	return points
}

// DifficultyDescription describes what each tier tests.
func (h *HintEngine) DifficultyDescription(d model.Difficulty) string {
	switch d {
	case model.DifficultyBeginner:
		return "BEGINNER MODE\nMaps with clear political entity clues (USSR, East Germany). Focus on recognizing country and city names."
	case model.DifficultyIntermediate:
		return "INTERMEDIATE MODE\nMaps requiring attention to subtle name changes (Constantinople to Istanbul). Combine multiple weak signals."
	default:
		return "EXPERT MODE\nMaps where visual analysis matters. Typography, border styles, and printing techniques are critical; entity clues may be ambiguous."
	}
}
