package extract

import (
	"testing"

	"github.com/ppiankov/chronomap/internal/model"
)

func testExtractor() *YearExtractor {
	cfg := model.DefaultConfig()
	return NewYearExtractor(cfg.Inference, cfg.Horizon)
}

func TestExtract_SingleYear(t *testing.T) {
	e := testExtractor()

	signals := e.Extract(Tokenize("Railway map printed 1957 in Moscow"))

	if len(signals) != 1 {
		t.Fatalf("Expected 1 signal, got %d", len(signals))
	}
	s := signals[0]
	if s.Kind != model.SignalTextualYear {
		t.Errorf("Kind = %s, want %s", s.Kind, model.SignalTextualYear)
	}
	if s.Range != model.MustYearRange(1947, 1967) {
		t.Errorf("Range = %v, want 1947-1967", s.Range)
	}
	if s.Confidence != 0.6 {
		t.Errorf("Confidence = %g, want 0.6 at full token confidence", s.Confidence)
	}
	if s.Label != "Year reference: 1957" {
		t.Errorf("Unexpected label %q", s.Label)
	}
}

func TestExtract_NearbyYearsGrouped(t *testing.T) {
	e := testExtractor()

	signals := e.Extract(Tokenize("surveys of 1953 1955 1957"))

	if len(signals) != 1 {
		t.Fatalf("Years 5 or fewer apart group into one reference, got %d signals", len(signals))
	}
	// Median 1955, spread 10.
	if signals[0].Range != model.MustYearRange(1945, 1965) {
		t.Errorf("Range = %v, want 1945-1965", signals[0].Range)
	}
	if signals[0].Label != "Year references: 1953-1957" {
		t.Errorf("Unexpected label %q", signals[0].Label)
	}
}

func TestExtract_DistantYearsSplit(t *testing.T) {
	e := testExtractor()

	signals := e.Extract(Tokenize("first published 1890, revised 1962"))

	if len(signals) != 2 {
		t.Fatalf("Expected 2 separate references, got %d", len(signals))
	}
	if signals[0].Range.Midpoint() != 1890 || signals[1].Range.Midpoint() != 1962 {
		t.Errorf("Unexpected group centers: %v, %v", signals[0].Range, signals[1].Range)
	}
}

func TestExtract_ConfidenceScaledByToken(t *testing.T) {
	e := testExtractor()

	signals := e.Extract([]model.OCRToken{{Text: "1940", Confidence: 0.5}})

	if len(signals) != 1 {
		t.Fatalf("Expected 1 signal, got %d", len(signals))
	}
	if got, want := signals[0].Confidence, 0.3; got != want {
		t.Errorf("Confidence = %g, want base 0.6 x token 0.5 = %g", got, want)
	}
}

func TestExtract_IgnoresNonYears(t *testing.T) {
	e := testExtractor()

	for _, text := range []string{
		"scale 1:25000",
		"page 3 of 12",
		"elevation 2750 meters above 900",
		"",
	} {
		if got := e.Extract(Tokenize(text)); got != nil {
			t.Errorf("Extract(%q) = %v, want nil", text, got)
		}
	}
}

func TestExtract_ClampsSpreadToHorizon(t *testing.T) {
	e := testExtractor()

	signals := e.Extract(Tokenize("charted 2095"))

	if len(signals) != 1 {
		t.Fatalf("Expected 1 signal, got %d", len(signals))
	}
	if signals[0].Range.End != 2100 {
		t.Errorf("Range end = %d, must not exceed horizon", signals[0].Range.End)
	}
}

func TestVisualSignals_ClipsAndDrops(t *testing.T) {
	cfg := model.DefaultConfig()

	features := []model.VisualFeature{
		{Name: "Chromolithography", Description: "color lithographic printing", EstimatedRange: model.MustYearRange(1860, 1930), Confidence: 0.65},
		{Name: "Portolan style", Description: "rhumb line network", EstimatedRange: model.MustYearRange(300, 900), Confidence: 0.9},
	}

	signals := VisualSignals(features, cfg.Horizon)

	if len(signals) != 1 {
		t.Fatalf("Feature outside horizon must be dropped, got %d signals", len(signals))
	}
	if signals[0].Kind != model.SignalVisual || signals[0].Label != "Chromolithography" {
		t.Errorf("Unexpected signal %+v", signals[0])
	}
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("  Soviet   Union 1960 ")
	if len(tokens) != 3 {
		t.Fatalf("Expected 3 tokens, got %d", len(tokens))
	}
	for _, tok := range tokens {
		if tok.Confidence != 1.0 {
			t.Errorf("Typed tokens carry confidence 1.0, got %g", tok.Confidence)
		}
	}
	if Tokenize("   ") != nil {
		t.Error("Blank input yields no tokens")
	}
}
