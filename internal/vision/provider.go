package vision

import (
	"context"

	"github.com/ppiankov/chronomap/internal/model"
)

// Provider defines the interface for visual map analyzers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Analyze inspects a map image and returns dated feature claims
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// AnalyzeRequest contains the input for visual analysis
type AnalyzeRequest struct {
	// ImageURL points at the map image; either this or ImageBase64 is set
	ImageURL string

	// ImageBase64 is an inline data-URL encoded image
	ImageBase64 string

	// Hint is optional context for the analyzer (title, region)
	Hint string

	// Model overrides the configured model for this call
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// AnalyzeResponse contains the analyzer's structured output
type AnalyzeResponse struct {
	// Features are the dated visual-feature claims the analyzer produced
	Features []model.VisualFeature

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

const analyzePrompt = `You are a historical cartography expert. Examine the map image and identify visual features that constrain WHEN the map was produced: printing technique, color process, typography, projection style, border decoration, paper appearance.

Respond with ONLY a JSON array, no prose. Each element:
{"name": "<short feature name>", "description": "<one sentence on what you see and why it dates the map>", "start_year": <int>, "end_year": <int>, "confidence": <0.0-1.0>}

Rules:
- start_year <= end_year, Gregorian years CE only.
- confidence reflects how reliably the feature dates maps in general, not how clearly you see it.
- Report at most 5 features. An empty array [] is a valid answer.
- Do NOT read place names or printed dates; those are handled separately.`
