package model

// HistoricalEntity is a named entity with a temporal validity period.
// Owned by the knowledge base; the core consumes matches as entity signals.
type HistoricalEntity struct {
	Name             string    `json:"name" yaml:"name"`
	CanonicalName    string    `json:"canonical_name" yaml:"canonical_name"`
	EntityType       string    `json:"entity_type" yaml:"entity_type"` // "country", "city", "empire", "territory"
	ValidRange       YearRange `json:"valid_range" yaml:"valid_range"`
	AlternativeNames []string  `json:"alternative_names,omitempty" yaml:"alternative_names,omitempty"`
}

// WasValidIn reports whether the entity existed in the given year.
func (e HistoricalEntity) WasValidIn(year int) bool {
	return e.ValidRange.ContainsPoint(year)
}

// MatchQuality classifies how a recognized token matched an entity name.
type MatchQuality string

const (
	MatchExact       MatchQuality = "exact"       // canonical name match
	MatchAlternative MatchQuality = "alternative" // known alternative name
	MatchFuzzy       MatchQuality = "fuzzy"       // prefix/normalized match
)

// EntityMatch pairs an entity with the quality of the token match that
// produced it. The match quality fixes the entity signal's confidence.
type EntityMatch struct {
	Entity  HistoricalEntity `json:"entity"`
	Quality MatchQuality     `json:"quality"`
	Token   string           `json:"token"` // the recognized text that matched
}
