package infer

import (
	"math"
	"sort"

	"github.com/ppiankov/chronomap/internal/model"
)

// Engine fuses heterogeneous temporal signals into a single date estimate.
//
// Entity signals are hard existence constraints; textual and visual signals
// are advisory and only narrow the estimate when doing so keeps it
// non-empty. All methods are pure: the engine never mutates its inputs and
// holds no state beyond configuration, so concurrent calls are safe.
type Engine struct {
	horizon model.YearRange
	cfg     model.InferenceConfig
}

// NewEngine creates an inference engine for the given horizon and tuning.
func NewEngine(horizon model.HorizonConfig, cfg model.InferenceConfig) *Engine {
	return &Engine{horizon: horizon.Range(), cfg: cfg}
}

// ConfidenceTerm identifies which component dominated the final confidence.
type ConfidenceTerm string

const (
	TermWidth         ConfidenceTerm = "width"
	TermCorroboration ConfidenceTerm = "corroboration"
	TermConflict      ConfidenceTerm = "conflict"
)

// Infer fuses the signals into a DateEstimate. Never fails: zero signals
// yield a horizon-wide estimate at confidence 0. Input order carries no
// meaning; identical signal sets produce identical estimates regardless of
// order.
func (e *Engine) Infer(signals []model.Signal) model.DateEstimate {
	if len(signals) == 0 {
		return model.DateEstimate{
			Range:          e.horizon,
			MostLikelyYear: e.horizon.Midpoint(),
			Confidence:     0,
		}
	}

	ordered := orderSignals(signals)

	var entities, advisory []model.Signal
	for _, s := range ordered {
		if s.Kind == model.SignalEntity {
			entities = append(entities, s)
		} else {
			advisory = append(advisory, s)
		}
	}

	conflicts := detectConflicts(entities)

	baseRange, contributing, unioned := e.baseRange(entities, ordered)

	// Advisory signals narrow the base only when the result stays
	// non-empty; a discarded narrowing is surfaced as non-binding evidence.
	// The union bounding fallback already consumed every signal, so nothing
	// is left to narrow with there.
	nonBinding := make(map[string]bool)
	if !unioned {
		for _, s := range advisory {
			if narrowed, ok := baseRange.Intersect(s.Range); ok {
				baseRange = narrowed
				contributing = append(contributing, s)
			} else {
				nonBinding[evidenceKey(s)] = true
			}
		}
	}

	mostLikely := mostLikelyYear(baseRange, contributing)
	confidence, _ := e.confidence(signals, baseRange, conflicts, countEntities(contributing), unioned)

	evidence := make([]model.Signal, len(ordered))
	copy(evidence, ordered)
	for i := range evidence {
		if nonBinding[evidenceKey(evidence[i])] {
			evidence[i].NonBinding = true
		}
	}

	return model.DateEstimate{
		Range:          baseRange,
		MostLikelyYear: mostLikely,
		Confidence:     confidence,
		Evidence:       evidence,
		Conflicts:      conflicts,
	}
}

// DominantTerm reports which confidence component dominated for an
// estimate's signal set. Used by the explanation generator to phrase the
// confidence rationale; it re-derives the terms rather than storing them.
func (e *Engine) DominantTerm(est model.DateEstimate) ConfidenceTerm {
	if len(est.Conflicts) > 0 {
		return TermConflict
	}
	widthTerm := e.widthTerm(est.Range)
	corrTerm := e.corroborationTerm(est.EntityCount())
	if corrTerm > widthTerm {
		return TermCorroboration
	}
	return TermWidth
}

// baseRange computes the fused range before advisory narrowing. Returns
// the range, the entity signals that constrained it, and whether the
// union bounding fallback was taken.
func (e *Engine) baseRange(entities, all []model.Signal) (model.YearRange, []model.Signal, bool) {
	if len(entities) > 0 {
		subset := maximalConsistentSubset(entities)
		r := subset[0].Range
		for _, s := range subset[1:] {
			r, _ = r.Intersect(s.Range) // pairwise-consistent, cannot be empty
		}
		contributing := make([]model.Signal, len(subset))
		copy(contributing, subset)
		return r, contributing, false
	}

	// No entities: intersect everything, fall back to the union's bounding
	// range when nothing overlaps.
	r := all[0].Range
	ok := true
	for _, s := range all[1:] {
		if r, ok = r.Intersect(s.Range); !ok {
			break
		}
	}
	if ok {
		contributing := make([]model.Signal, len(all))
		copy(contributing, all)
		return r, contributing, false
	}

	bound := all[0].Range
	for _, s := range all[1:] {
		if s.Range.Start < bound.Start {
			bound.Start = s.Range.Start
		}
		if s.Range.End > bound.End {
			bound.End = s.Range.End
		}
	}
	return bound, nil, true
}

// mostLikelyYear is the confidence-weighted average of contributing signal
// midpoints, clamped into the fused range.
func mostLikelyYear(fused model.YearRange, contributing []model.Signal) int {
	if len(contributing) == 0 {
		return fused.Midpoint()
	}

	var weighted, total float64
	for _, s := range contributing {
		weighted += s.Confidence * float64(s.Range.Midpoint())
		total += s.Confidence
	}
	if total == 0 {
		return fused.Midpoint()
	}

	year := int(math.Round(weighted / total))
	if year < fused.Start {
		year = fused.Start
	}
	if year > fused.End {
		year = fused.End
	}
	return year
}

func (e *Engine) widthTerm(r model.YearRange) float64 {
	hw := e.horizon.Width()
	if hw <= 0 {
		return 0
	}
	t := 1 - float64(r.Width())/float64(hw)
	if t < 0 {
		t = 0
	}
	return t
}

func (e *Engine) corroborationTerm(agreeingEntities int) float64 {
	sat := e.cfg.CorroborationSaturation
	if sat <= 0 {
		sat = 1
	}
	if agreeingEntities > sat {
		agreeingEntities = sat
	}
	return float64(agreeingEntities) / float64(sat)
}

// confidence combines the inverse-width, corroboration, and conflict terms.
func (e *Engine) confidence(signals []model.Signal, fused model.YearRange, conflicts []model.Conflict, agreeingEntities int, unioned bool) (float64, ConfidenceTerm) {
	// A lone signal becomes the estimate verbatim, discounted for lack of
	// corroboration.
	if len(signals) == 1 {
		return clamp01(signals[0].Confidence * e.cfg.SingleSignalDiscount), TermCorroboration
	}

	widthTerm := e.widthTerm(fused)
	corrTerm := e.corroborationTerm(agreeingEntities)

	conf := 0.55*widthTerm + 0.45*corrTerm

	dominant := TermWidth
	if corrTerm > widthTerm {
		dominant = TermCorroboration
	}

	if len(conflicts) > 0 {
		maxSeverity := 0.0
		for _, c := range conflicts {
			if c.Severity > maxSeverity {
				maxSeverity = c.Severity
			}
		}
		conf *= 1 - e.cfg.ConflictPenalty*maxSeverity
		dominant = TermConflict
	}

	// Union bounding fallback: nothing overlapped at all.
	if unioned {
		conf *= 0.5
	}

	return clamp01(conf), dominant
}

// detectConflicts records every pair of entity signals with disjoint
// ranges. Advisory signals are never flagged.
func detectConflicts(entities []model.Signal) []model.Conflict {
	var conflicts []model.Conflict
	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			if entities[i].Range.Overlaps(entities[j].Range) {
				continue
			}
			sev := entities[i].Confidence
			if entities[j].Confidence < sev {
				sev = entities[j].Confidence
			}
			conflicts = append(conflicts, model.Conflict{
				LabelA:   entities[i].Label,
				LabelB:   entities[j].Label,
				Severity: sev,
			})
		}
	}
	return conflicts
}

// orderSignals produces the evidence ordering: entity signals first, then
// textual, then visual, each by confidence descending with ties broken by
// narrower range and then input order.
func orderSignals(signals []model.Signal) []model.Signal {
	out := make([]model.Signal, len(signals))
	copy(out, signals)

	sort.SliceStable(out, func(i, j int) bool {
		if a, b := kindOrder(out[i].Kind), kindOrder(out[j].Kind); a != b {
			return a < b
		}
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Range.Width() < out[j].Range.Width()
	})
	return out
}

func kindOrder(k model.SignalKind) int {
	switch k {
	case model.SignalEntity:
		return 0
	case model.SignalTextualYear:
		return 1
	default:
		return 2
	}
}

func countEntities(signals []model.Signal) int {
	n := 0
	for _, s := range signals {
		if s.Kind == model.SignalEntity {
			n++
		}
	}
	return n
}

func evidenceKey(s model.Signal) string {
	return string(s.Kind) + "|" + s.Label + "|" + s.Range.String()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
