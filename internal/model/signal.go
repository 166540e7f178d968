package model

import (
	"errors"
	"fmt"
)

// ErrInvalidConfidence is returned when a signal constructor receives a
// confidence outside [0,1].
var ErrInvalidConfidence = errors.New("confidence must be between 0 and 1")

// SignalKind is a closed set of temporal claim sources.
type SignalKind string

const (
	SignalEntity      SignalKind = "entity"       // named political/geographic entity existence
	SignalTextualYear SignalKind = "textual_year" // OCR'd year reference
	SignalVisual      SignalKind = "visual"       // visual-style cue from the vision analyzer
)

// Signal is a single uncertain temporal claim: a year range, a confidence,
// and a human-readable justification. Produced by collaborators, consumed
// by the inference engine. Immutable once created.
type Signal struct {
	Kind        SignalKind        `json:"kind"`
	Label       string            `json:"label"`
	Range       YearRange         `json:"year_range"`
	Confidence  float64           `json:"confidence"`
	Explanation string            `json:"explanation"`
	Metadata    map[string]string `json:"metadata,omitempty"`

	// NonBinding marks a textual/visual signal whose narrowing effect was
	// discarded during fusion because it would have emptied the estimate.
	// Set by the inference engine on its output copy only.
	NonBinding bool `json:"non_binding,omitempty"`
}

// NewSignal validates and constructs a Signal.
func NewSignal(kind SignalKind, label string, r YearRange, confidence float64, explanation string) (Signal, error) {
	if confidence < 0 || confidence > 1 {
		return Signal{}, fmt.Errorf("%w: got %g", ErrInvalidConfidence, confidence)
	}
	switch kind {
	case SignalEntity, SignalTextualYear, SignalVisual:
	default:
		return Signal{}, fmt.Errorf("unknown signal kind: %q", kind)
	}
	return Signal{
		Kind:        kind,
		Label:       label,
		Range:       r,
		Confidence:  confidence,
		Explanation: explanation,
	}, nil
}
