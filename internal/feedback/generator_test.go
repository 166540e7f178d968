package feedback

import (
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/chronomap/internal/model"
)

var horizon = model.MustYearRange(1000, 2100)

func testRound(difficulty model.Difficulty) model.GameRound {
	est := model.DateEstimate{
		Range:          model.MustYearRange(1949, 1990),
		MostLikelyYear: 1970,
		Confidence:     0.8,
		Evidence: []model.Signal{
			{Kind: model.SignalEntity, Label: "Soviet Union", Range: model.MustYearRange(1922, 1991), Confidence: 0.95, Explanation: "Soviet Union existed 1922-1991"},
			{Kind: model.SignalEntity, Label: "East Germany", Range: model.MustYearRange(1949, 1990), Confidence: 0.95, Explanation: "East Germany existed 1949-1990"},
		},
	}
	return model.GameRound{
		ID:         "round-1",
		Estimate:   est,
		Difficulty: difficulty,
		CreatedAt:  time.Now(),
	}
}

func TestGenerate_MissDirection(t *testing.T) {
	gen := NewGenerator(5)
	round := testRound(model.DifficultyBeginner)

	guess, _ := model.NewPointGuess(1900, horizon)
	breakdown := model.ScoreBreakdown{WasAccurate: false, OverconfidencePenalty: 30, DifficultyMultiplier: 1.0}

	text := gen.Generate(guess, round, breakdown)

	if !strings.Contains(text, "TOO EARLY by about 49 years") {
		t.Errorf("Expected too-early distance 49 (1949-1900), got:\n%s", text)
	}
	if !strings.Contains(text, "Overconfidence penalty: -30.0") {
		t.Errorf("Expected penalty echoed verbatim, got:\n%s", text)
	}
}

func TestGenerate_AccurateOmitsDirection(t *testing.T) {
	gen := NewGenerator(5)
	round := testRound(model.DifficultyBeginner)

	guess, _ := model.NewRangeGuess(1960, 1980, horizon)
	breakdown := model.ScoreBreakdown{WasAccurate: true, BaseScore: 80, AccuracyBonus: 10, DifficultyMultiplier: 1.0, FinalScore: 90}

	text := gen.Generate(guess, round, breakdown)

	if strings.Contains(text, "TOO EARLY") || strings.Contains(text, "TOO LATE") {
		t.Error("Accurate guess must not carry a directional statement")
	}
	if !strings.Contains(text, "Excellent precision") {
		t.Errorf("Contained guess should be praised for precision:\n%s", text)
	}
	if !strings.Contains(text, "FINAL SCORE: 90/100") {
		t.Errorf("Expected final score echoed, got:\n%s", text)
	}
}

func TestGenerate_ClueMarkers(t *testing.T) {
	gen := NewGenerator(5)
	round := testRound(model.DifficultyBeginner)

	// Midpoint 1930: inside USSR's range, outside East Germany's.
	guess, _ := model.NewRangeGuess(1925, 1935, horizon)
	text := gen.Generate(guess, round, model.ScoreBreakdown{DifficultyMultiplier: 1.0})

	ussr := strings.Index(text, "[+] Soviet Union")
	gdr := strings.Index(text, "[-] East Germany")
	if ussr == -1 {
		t.Errorf("USSR should support a 1925-1935 guess:\n%s", text)
	}
	if gdr == -1 {
		t.Errorf("East Germany should contradict a 1925-1935 guess:\n%s", text)
	}
}

func TestGenerate_TipKeyedByDifficultyAndKind(t *testing.T) {
	gen := NewGenerator(5)
	guess, _ := model.NewPointGuess(1970, horizon)

	beginner := gen.Generate(guess, testRound(model.DifficultyBeginner), model.ScoreBreakdown{DifficultyMultiplier: 1.0})
	expert := gen.Generate(guess, testRound(model.DifficultyExpert), model.ScoreBreakdown{DifficultyMultiplier: 1.6})

	if !strings.Contains(beginner, "TIP:") || !strings.Contains(expert, "TIP:") {
		t.Fatal("Every round gets exactly one learning tip")
	}
	if beginner == expert {
		t.Error("Tips must vary by difficulty")
	}
}

func TestMissedAndSupportingSignals(t *testing.T) {
	gen := NewGenerator(5)
	round := testRound(model.DifficultyBeginner)

	guess, _ := model.NewRangeGuess(1925, 1935, horizon)

	support := gen.SupportingSignals(guess, round.Estimate)
	missed := gen.MissedSignals(guess, round.Estimate)

	if len(support) != 1 || support[0].Label != "Soviet Union" {
		t.Errorf("Expected only USSR to support, got %v", support)
	}
	if len(missed) != 1 || missed[0].Label != "East Germany" {
		t.Errorf("Expected East Germany missed, got %v", missed)
	}
}

func TestHintEngine_ByDifficulty(t *testing.T) {
	h := NewHintEngine(5)

	beginner := h.PreGuessHints(testRound(model.DifficultyBeginner), 1)
	expert := h.PreGuessHints(testRound(model.DifficultyExpert), 3)

	if len(beginner) != 1 {
		t.Errorf("Expected one revealed beginner hint, got %d", len(beginner))
	}
	if len(expert) != 1 || !strings.Contains(expert[0], "carefully") {
		t.Errorf("Experts get minimal guidance, got %v", expert)
	}
}

func TestHintEngine_LearningPoints(t *testing.T) {
	h := NewHintEngine(5)
	round := testRound(model.DifficultyBeginner)

	missed := []model.Signal{
		{Kind: model.SignalEntity, Label: "East Germany", Range: model.MustYearRange(1949, 1990), Confidence: 0.95},
	}
	points := h.PostGuessLearningPoints(round, missed)

	if len(points) != 1 || !strings.Contains(points[0], "entity names") {
		t.Errorf("Expected an entity learning point, got %v", points)
	}
	if pts := h.PostGuessLearningPoints(round, nil); len(pts) != 0 {
		t.Errorf("No missed signals means no learning points, got %v", pts)
	}
}
