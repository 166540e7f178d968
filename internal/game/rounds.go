package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/ppiankov/chronomap/internal/model"
	"github.com/ppiankov/chronomap/internal/pipeline"
	"github.com/ppiankov/chronomap/internal/source"
)

// RoundGenerator produces playable rounds: it picks a map from the
// catalog and runs the analysis pipeline to obtain the hidden answer.
type RoundGenerator struct {
	catalog *source.Catalog
	pipe    *pipeline.Pipeline
	rng     *rand.Rand
	counter int
}

// NewRoundGenerator creates a round generator. Pass seed 0 for a
// time-based seed.
func NewRoundGenerator(catalog *source.Catalog, pipe *pipeline.Pipeline, seed int64) *RoundGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RoundGenerator{
		catalog: catalog,
		pipe:    pipe,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// NextRound picks a map for the difficulty tier and analyzes it. Maps
// whose analysis yields no usable evidence are skipped, since a round
// with a horizon-wide answer cannot be scored meaningfully.
func (g *RoundGenerator) NextRound(ctx context.Context, difficulty model.Difficulty) (model.GameRound, error) {
	const maxTries = 5

	var lastErr error
	for try := 0; try < maxTries; try++ {
		m, err := g.catalog.Pick(g.rng, difficulty)
		if err != nil {
			return model.GameRound{}, err
		}

		report, err := g.pipe.Analyze(ctx, pipeline.Input{
			Subject:     m.MapID,
			Source:      m.Source,
			Description: m.Description,
			ImageURL:    m.ImagePath,
		})
		if err != nil {
			lastErr = err
			continue
		}
		if report.Estimate.Confidence == 0 {
			lastErr = fmt.Errorf("map %s produced no usable evidence", m.MapID)
			continue
		}

		g.counter++
		return model.GameRound{
			ID:         fmt.Sprintf("round-%d-%08x", g.counter, g.rng.Uint32()),
			Map:        m,
			Estimate:   report.Estimate,
			Difficulty: difficulty,
			CreatedAt:  time.Now().UTC(),
		}, nil
	}

	return model.GameRound{}, fmt.Errorf("no playable map found: %w", lastErr)
}
