package extract

import (
	"strings"

	"github.com/ppiankov/chronomap/internal/model"
)

// Tokenize splits a typed map description into tokens at full confidence.
// Used by the analyze command, where the text comes from the user rather
// than an OCR pass.
func Tokenize(text string) []model.OCRToken {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	tokens := make([]model.OCRToken, len(fields))
	for i, f := range fields {
		tokens[i] = model.OCRToken{Text: f, Confidence: 1.0}
	}
	return tokens
}
