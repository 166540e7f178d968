package model

// OCRToken is one recognized text fragment from a map image, with the
// recognizer's confidence in the reading. Tokens typed in by hand (the
// analyze command's description input) carry confidence 1.0.
type OCRToken struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// VisualFeature is one dated feature claim from the visual analyzer:
// cartographic style, printing technique, color process and similar.
type VisualFeature struct {
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	EstimatedRange YearRange `json:"estimated_range"`
	Confidence     float64   `json:"confidence"`
}
