package model

// Conflict is a pair of entity signals whose ranges do not overlap,
// indicating an anachronistic or composite input. Derived data, recomputed
// on each inference, never persisted independently.
type Conflict struct {
	LabelA   string  `json:"label_a"`
	LabelB   string  `json:"label_b"`
	Severity float64 `json:"severity"` // min confidence of the two signals
}

// DateEstimate is the fused output of the inference engine. Created once
// per inference call; immutable; held as the round's hidden answer in game
// mode.
type DateEstimate struct {
	Range          YearRange  `json:"year_range"`
	MostLikelyYear int        `json:"most_likely_year"`
	Confidence     float64    `json:"confidence"`
	Evidence       []Signal   `json:"evidence"`
	Conflicts      []Conflict `json:"conflicts,omitempty"`
}

// EntityCount returns the number of entity signals in the evidence.
func (e DateEstimate) EntityCount() int {
	n := 0
	for _, s := range e.Evidence {
		if s.Kind == SignalEntity {
			n++
		}
	}
	return n
}

// KeySignals returns the top signals by evidence order, capped at n.
// Evidence is already ordered by the inference engine, so the prefix is
// the most informative slice for hints and feedback.
func (e DateEstimate) KeySignals(n int) []Signal {
	if n > len(e.Evidence) {
		n = len(e.Evidence)
	}
	out := make([]Signal, n)
	copy(out, e.Evidence[:n])
	return out
}
