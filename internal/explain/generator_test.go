package explain

import (
	"strings"
	"testing"

	"github.com/ppiankov/chronomap/internal/infer"
	"github.com/ppiankov/chronomap/internal/model"
)

func testGenerator(verbose bool) (*Generator, *infer.Engine) {
	cfg := model.DefaultConfig()
	engine := infer.NewEngine(cfg.Horizon, cfg.Inference)
	return NewGenerator(engine, verbose), engine
}

func TestGenerate_ContainsEvidenceInOrder(t *testing.T) {
	gen, engine := testGenerator(false)

	est := engine.Infer([]model.Signal{
		{Kind: model.SignalEntity, Label: "Soviet Union", Range: model.MustYearRange(1922, 1991), Confidence: 0.95, Explanation: "Soviet Union existed 1922-1991"},
		{Kind: model.SignalTextualYear, Label: "Year reference: 1970", Range: model.MustYearRange(1960, 1980), Confidence: 0.6, Explanation: "Text contains year 1970"},
	})

	text := gen.Generate(est)

	entityIdx := strings.Index(text, "Soviet Union")
	textualIdx := strings.Index(text, "Year reference: 1970")
	if entityIdx == -1 || textualIdx == -1 {
		t.Fatalf("Expected both signals in explanation:\n%s", text)
	}
	if entityIdx > textualIdx {
		t.Error("Entity evidence must precede textual evidence")
	}
	if !strings.Contains(text, "ESTIMATED DATE: 1960-1980") {
		t.Errorf("Expected header with fused range, got:\n%s", text)
	}
}

func TestGenerate_ConflictPhrasing(t *testing.T) {
	gen, engine := testGenerator(false)

	est := engine.Infer([]model.Signal{
		{Kind: model.SignalEntity, Label: "Soviet Union", Range: model.MustYearRange(1922, 1991), Confidence: 0.95},
		{Kind: model.SignalEntity, Label: "Byzantine Constantinople", Range: model.MustYearRange(330, 1453), Confidence: 0.8},
	})

	text := gen.Generate(est)

	if !strings.Contains(text, "did not coexist") {
		t.Errorf("Expected conflict phrased as non-coexistence, got:\n%s", text)
	}
	if !strings.Contains(text, "Confidence reduced") {
		t.Errorf("Conflict must dominate the confidence rationale, got:\n%s", text)
	}
}

func TestGenerate_NonBindingMarker(t *testing.T) {
	gen, engine := testGenerator(false)

	est := engine.Infer([]model.Signal{
		{Kind: model.SignalEntity, Label: "Soviet Union", Range: model.MustYearRange(1922, 1991), Confidence: 0.95},
		{Kind: model.SignalEntity, Label: "East Germany", Range: model.MustYearRange(1949, 1990), Confidence: 0.95},
		{Kind: model.SignalVisual, Label: "copper engraving", Range: model.MustYearRange(1700, 1850), Confidence: 0.5},
	})

	text := gen.Generate(est)

	if !strings.Contains(text, "non-binding") {
		t.Errorf("Discarded advisory signal should be marked non-binding:\n%s", text)
	}
}

func TestGenerate_NoFabricatedInformation(t *testing.T) {
	gen, engine := testGenerator(false)

	est := engine.Infer(nil)
	text := gen.Generate(est)

	if strings.Contains(text, "DETAILED EVIDENCE") {
		t.Error("Zero-signal estimate must not render an evidence section")
	}
	if !strings.Contains(text, "Confidence: 0%") {
		t.Errorf("Expected zero confidence in header, got:\n%s", text)
	}
}

func TestConfidenceLabel(t *testing.T) {
	cases := []struct {
		conf float64
		want string
	}{
		{0.95, "very high"},
		{0.8, "high"},
		{0.65, "moderate"},
		{0.45, "low"},
		{0.1, "very low"},
	}
	for _, tc := range cases {
		if got := ConfidenceLabel(tc.conf); got != tc.want {
			t.Errorf("ConfidenceLabel(%g) = %q, want %q", tc.conf, got, tc.want)
		}
	}
}
