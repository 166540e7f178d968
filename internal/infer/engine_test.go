package infer

import (
	"reflect"
	"testing"

	"github.com/ppiankov/chronomap/internal/model"
)

func testEngine() *Engine {
	cfg := model.DefaultConfig()
	return NewEngine(cfg.Horizon, cfg.Inference)
}

func entitySignal(label string, start, end int, conf float64) model.Signal {
	return model.Signal{
		Kind:        model.SignalEntity,
		Label:       label,
		Range:       model.MustYearRange(start, end),
		Confidence:  conf,
		Explanation: label + " existed " + model.MustYearRange(start, end).String(),
	}
}

func TestInfer_ZeroSignals(t *testing.T) {
	est := testEngine().Infer(nil)

	if est.Confidence != 0 {
		t.Errorf("Expected confidence 0 for zero signals, got %g", est.Confidence)
	}
	if est.Range != model.MustYearRange(1000, 2100) {
		t.Errorf("Expected full horizon range, got %v", est.Range)
	}
	if len(est.Evidence) != 0 {
		t.Errorf("Expected empty evidence, got %d signals", len(est.Evidence))
	}
}

func TestInfer_SingleSignal(t *testing.T) {
	s := entitySignal("USSR", 1922, 1991, 0.95)
	est := testEngine().Infer([]model.Signal{s})

	if est.Range != s.Range {
		t.Errorf("Single signal should become the estimate verbatim, got %v", est.Range)
	}
	want := 0.95 * 0.9
	if est.Confidence != want {
		t.Errorf("Expected discounted confidence %g, got %g", want, est.Confidence)
	}
}

func TestInfer_OverlappingEntities(t *testing.T) {
	// USSR-like and East-Germany-like: overlap, no conflict.
	signals := []model.Signal{
		entitySignal("Soviet Union", 1922, 1991, 0.95),
		entitySignal("East Germany", 1949, 1990, 0.95),
	}

	est := testEngine().Infer(signals)

	if len(est.Conflicts) != 0 {
		t.Errorf("Expected no conflicts, got %v", est.Conflicts)
	}
	if est.Range != model.MustYearRange(1949, 1990) {
		t.Errorf("Expected fused range 1949-1990, got %v", est.Range)
	}
	if !est.Range.ContainsPoint(est.MostLikelyYear) {
		t.Errorf("Most likely year %d outside fused range %v", est.MostLikelyYear, est.Range)
	}
}

func TestInfer_IntersectionOfAllEntities(t *testing.T) {
	// When every entity pairwise overlaps the fused range is the
	// intersection of all entity ranges.
	signals := []model.Signal{
		entitySignal("Soviet Union", 1922, 1991, 0.95),
		entitySignal("East Germany", 1949, 1990, 0.95),
		entitySignal("Yugoslavia", 1918, 1992, 0.80),
	}

	est := testEngine().Infer(signals)

	if est.Range != model.MustYearRange(1949, 1990) {
		t.Errorf("Expected 1949-1990, got %v", est.Range)
	}
}

func TestInfer_ConflictingEntities(t *testing.T) {
	// Disjoint ranges: the medieval city cannot coexist with the USSR.
	signals := []model.Signal{
		entitySignal("Soviet Union", 1922, 1991, 0.95),
		entitySignal("Byzantine Constantinople", 330, 1453, 0.80),
	}

	est := testEngine().Infer(signals)

	if len(est.Conflicts) != 1 {
		t.Fatalf("Expected one conflict, got %d", len(est.Conflicts))
	}
	c := est.Conflicts[0]
	if c.Severity != 0.80 {
		t.Errorf("Expected severity min(0.95, 0.80)=0.80, got %g", c.Severity)
	}

	// Fallback: the higher-confidence single-entity subset wins.
	if est.Range != model.MustYearRange(1922, 1991) {
		t.Errorf("Expected fallback to higher-confidence subset 1922-1991, got %v", est.Range)
	}
}

func TestInfer_LargestConsistentSubsetWins(t *testing.T) {
	// Two cold-war entities agree; one medieval outlier conflicts with both.
	signals := []model.Signal{
		entitySignal("Byzantine Constantinople", 330, 1453, 0.95),
		entitySignal("Soviet Union", 1922, 1991, 0.90),
		entitySignal("East Germany", 1949, 1990, 0.85),
	}

	est := testEngine().Infer(signals)

	if est.Range != model.MustYearRange(1949, 1990) {
		t.Errorf("Expected consistent pair to win over lone high-confidence outlier, got %v", est.Range)
	}
	if len(est.Conflicts) != 2 {
		t.Errorf("Expected 2 conflict pairs, got %d", len(est.Conflicts))
	}
}

func TestInfer_AdvisoryNarrowing(t *testing.T) {
	textual := model.Signal{
		Kind:       model.SignalTextualYear,
		Label:      "Year reference: 1965",
		Range:      model.MustYearRange(1955, 1975),
		Confidence: 0.6,
	}
	signals := []model.Signal{
		entitySignal("Soviet Union", 1922, 1991, 0.95),
		textual,
	}

	est := testEngine().Infer(signals)

	if est.Range != model.MustYearRange(1955, 1975) {
		t.Errorf("Expected textual signal to narrow to 1955-1975, got %v", est.Range)
	}
}

func TestInfer_AdvisoryDiscardedWhenEmpty(t *testing.T) {
	// A visual signal disjoint from the entity core must not empty the
	// estimate; it stays in evidence marked non-binding.
	visual := model.Signal{
		Kind:       model.SignalVisual,
		Label:      "copper engraving",
		Range:      model.MustYearRange(1700, 1850),
		Confidence: 0.5,
	}
	signals := []model.Signal{
		entitySignal("Soviet Union", 1922, 1991, 0.95),
		entitySignal("East Germany", 1949, 1990, 0.95),
		visual,
	}

	est := testEngine().Infer(signals)

	if est.Range != model.MustYearRange(1949, 1990) {
		t.Errorf("Expected entity core to survive, got %v", est.Range)
	}
	if len(est.Conflicts) != 0 {
		t.Errorf("Advisory signals must never be flagged as conflicts, got %v", est.Conflicts)
	}

	found := false
	for _, s := range est.Evidence {
		if s.Kind == model.SignalVisual {
			found = true
			if !s.NonBinding {
				t.Error("Expected discarded visual signal to be marked non-binding")
			}
		}
	}
	if !found {
		t.Error("Discarded signal must still appear in evidence")
	}
}

func TestInfer_NoEntities_UnionFallback(t *testing.T) {
	signals := []model.Signal{
		{Kind: model.SignalTextualYear, Label: "Year reference: 1820", Range: model.MustYearRange(1810, 1830), Confidence: 0.6},
		{Kind: model.SignalVisual, Label: "photolithography", Range: model.MustYearRange(1900, 1950), Confidence: 0.5},
	}

	est := testEngine().Infer(signals)

	if est.Range != model.MustYearRange(1810, 1950) {
		t.Errorf("Expected union bounding range 1810-1950, got %v", est.Range)
	}
	if est.Confidence >= 0.5 {
		t.Errorf("Union fallback must be low-confidence, got %g", est.Confidence)
	}
	for _, s := range est.Evidence {
		if s.NonBinding {
			t.Errorf("Signal %q marked non-binding, but all signals feed the bounding range", s.Label)
		}
	}
}

func TestInfer_EvidenceOrdering(t *testing.T) {
	signals := []model.Signal{
		{Kind: model.SignalVisual, Label: "offset print", Range: model.MustYearRange(1930, 2000), Confidence: 0.9},
		{Kind: model.SignalTextualYear, Label: "Year reference: 1970", Range: model.MustYearRange(1960, 1980), Confidence: 0.6},
		entitySignal("East Germany", 1949, 1990, 0.85),
		entitySignal("Soviet Union", 1922, 1991, 0.95),
	}

	est := testEngine().Infer(signals)

	wantLabels := []string{"Soviet Union", "East Germany", "Year reference: 1970", "offset print"}
	var got []string
	for _, s := range est.Evidence {
		got = append(got, s.Label)
	}
	if !reflect.DeepEqual(got, wantLabels) {
		t.Errorf("Evidence order = %v, want %v", got, wantLabels)
	}
}

func TestInfer_OrderIndependence(t *testing.T) {
	signals := []model.Signal{
		entitySignal("Soviet Union", 1922, 1991, 0.95),
		entitySignal("East Germany", 1949, 1990, 0.85),
		{Kind: model.SignalTextualYear, Label: "Year reference: 1970", Range: model.MustYearRange(1960, 1980), Confidence: 0.6},
	}
	reversed := []model.Signal{signals[2], signals[1], signals[0]}

	a := testEngine().Infer(signals)
	b := testEngine().Infer(reversed)

	if !reflect.DeepEqual(a, b) {
		t.Errorf("Infer must be order-independent:\n%+v\nvs\n%+v", a, b)
	}
}

func TestInfer_MostLikelyYearInRange(t *testing.T) {
	// Weighted midpoint average must always land inside the fused range.
	signals := []model.Signal{
		entitySignal("Soviet Union", 1922, 1991, 0.95),
		entitySignal("East Germany", 1949, 1990, 0.85),
		{Kind: model.SignalTextualYear, Label: "Year reference: 1987", Range: model.MustYearRange(1977, 1997), Confidence: 0.6},
	}

	est := testEngine().Infer(signals)

	if !est.Range.ContainsPoint(est.MostLikelyYear) {
		t.Errorf("Most likely year %d outside %v", est.MostLikelyYear, est.Range)
	}
}

func TestMaximalConsistentSubset_TieBreaksOnConfidence(t *testing.T) {
	// Two disjoint singletons: higher confidence wins the tie.
	a := entitySignal("A", 1700, 1750, 0.6)
	b := entitySignal("B", 1900, 1950, 0.9)

	subset := maximalConsistentSubset([]model.Signal{a, b})

	if len(subset) != 1 || subset[0].Label != "B" {
		t.Errorf("Expected higher-confidence singleton B, got %v", subset)
	}
}

func TestGreedySubset_MatchesExhaustiveOnCluster(t *testing.T) {
	signals := []model.Signal{
		entitySignal("A", 1900, 1950, 0.9),
		entitySignal("B", 1920, 1960, 0.8),
		entitySignal("C", 1700, 1800, 0.7),
		entitySignal("D", 1930, 1945, 0.85),
	}

	greedy := greedySubset(signals)
	exhaustive := exhaustiveSubset(signals)

	if len(greedy) != len(exhaustive) {
		t.Errorf("Greedy found %d, exhaustive %d", len(greedy), len(exhaustive))
	}
	if len(greedy) != 3 {
		t.Errorf("Expected cluster of 3, got %d", len(greedy))
	}
}
