package extract

import (
	"github.com/ppiankov/chronomap/internal/model"
)

// VisualSignals converts analyzer feature claims into visual signals.
// Claims entirely outside the horizon are dropped; partially overlapping
// ones are clipped to it.
func VisualSignals(features []model.VisualFeature, horizon model.HorizonConfig) []model.Signal {
	h := horizon.Range()

	signals := make([]model.Signal, 0, len(features))
	for _, f := range features {
		r, ok := f.EstimatedRange.Intersect(h)
		if !ok {
			continue
		}
		conf := f.Confidence
		if conf < 0 {
			conf = 0
		}
		if conf > 1 {
			conf = 1
		}

		signals = append(signals, model.Signal{
			Kind:        model.SignalVisual,
			Label:       f.Name,
			Range:       r,
			Confidence:  conf,
			Explanation: f.Description,
		})
	}
	if len(signals) == 0 {
		return nil
	}
	return signals
}
