package knowledge

import (
	"fmt"

	"github.com/ppiankov/chronomap/internal/model"
)

// EntitySignals converts knowledge base matches into entity signals for
// the inference engine. Confidence is fixed by match quality: exact name
// matches are near-certain, alternative and fuzzy matches progressively
// less so.
func EntitySignals(matches []model.EntityMatch, cfg model.InferenceConfig) []model.Signal {
	signals := make([]model.Signal, 0, len(matches))

	for _, m := range matches {
		conf := cfg.ExactMatchConfidence
		switch m.Quality {
		case model.MatchAlternative:
			conf = cfg.AltMatchConfidence
		case model.MatchFuzzy:
			conf = cfg.FuzzyMatchConfidence
		}

		signals = append(signals, model.Signal{
			Kind:       model.SignalEntity,
			Label:      fmt.Sprintf("%s: %s", titleCase(m.Entity.EntityType), m.Entity.CanonicalName),
			Range:      m.Entity.ValidRange,
			Confidence: conf,
			Explanation: fmt.Sprintf("%s existed from %d to %d",
				m.Entity.CanonicalName, m.Entity.ValidRange.Start, m.Entity.ValidRange.End),
			Metadata: map[string]string{
				"match_quality": string(m.Quality),
				"matched_token": m.Token,
			},
		})
	}
	return signals
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
