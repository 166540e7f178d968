package model

import "time"

// AnalysisReport is the complete output of one map analysis: the fused
// date estimate plus the rendered explanation and input accounting.
type AnalysisReport struct {
	Subject    string    `json:"subject"` // map title or input file name
	Source     string    `json:"source,omitempty"`
	AnalyzedAt time.Time `json:"analyzed_at"`

	Estimate    DateEstimate `json:"estimate"`
	Explanation string       `json:"explanation"`

	// Input accounting, for transparency about what fed the estimate.
	Inputs InputSummary `json:"inputs"`
}

// InputSummary counts the raw inputs that produced the signals.
type InputSummary struct {
	Tokens         int `json:"tokens"`          // recognized text tokens
	EntityMatches  int `json:"entity_matches"`  // knowledge base hits
	YearReferences int `json:"year_references"` // grouped OCR year mentions
	VisualFeatures int `json:"visual_features"` // analyzer feature claims
}
