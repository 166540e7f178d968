package model

import "time"

// Config holds all ChronoMap configuration. Passed explicitly into the
// engines; never ambient global state.
type Config struct {
	Horizon     HorizonConfig     `yaml:"horizon" mapstructure:"horizon"`
	Inference   InferenceConfig   `yaml:"inference" mapstructure:"inference"`
	Scoring     ScoringConfig     `yaml:"scoring" mapstructure:"scoring"`
	Knowledge   KnowledgeConfig   `yaml:"knowledge" mapstructure:"knowledge"`
	Vision      VisionConfig      `yaml:"vision" mapstructure:"vision"`
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Game        GameConfig        `yaml:"game" mapstructure:"game"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HorizonConfig bounds every open-ended claim. Dates before Min (and BCE
// years in general) are out of scope.
type HorizonConfig struct {
	Min int `yaml:"min" mapstructure:"min"`
	Max int `yaml:"max" mapstructure:"max"`
}

// Range returns the horizon as a YearRange.
func (h HorizonConfig) Range() YearRange {
	return YearRange{Start: h.Min, End: h.Max}
}

// InferenceConfig tunes signal fusion.
type InferenceConfig struct {
	// Entity signal confidence by match quality.
	ExactMatchConfidence float64 `yaml:"exact_match_confidence" mapstructure:"exact_match_confidence"`
	AltMatchConfidence   float64 `yaml:"alt_match_confidence" mapstructure:"alt_match_confidence"`
	FuzzyMatchConfidence float64 `yaml:"fuzzy_match_confidence" mapstructure:"fuzzy_match_confidence"`

	// CorroborationSaturation is the entity count beyond which additional
	// agreeing entities stop raising confidence.
	CorroborationSaturation int `yaml:"corroboration_saturation" mapstructure:"corroboration_saturation"`

	// SingleSignalDiscount is applied to a lone signal's confidence for
	// lack of corroboration.
	SingleSignalDiscount float64 `yaml:"single_signal_discount" mapstructure:"single_signal_discount"`

	// ConflictPenalty scales how hard a recorded conflict of severity 1.0
	// multiplies confidence down.
	ConflictPenalty float64 `yaml:"conflict_penalty" mapstructure:"conflict_penalty"`

	// TextualYearConfidence is the base confidence of an OCR year reference.
	TextualYearConfidence float64 `yaml:"textual_year_confidence" mapstructure:"textual_year_confidence"`

	// TextualYearSpread is the half-width of the range attributed to a
	// year reference (a map may pre- or post-date the years it mentions).
	TextualYearSpread int `yaml:"textual_year_spread" mapstructure:"textual_year_spread"`

	// YearGroupGap is the maximum distance between years merged into one
	// textual reference group.
	YearGroupGap int `yaml:"year_group_gap" mapstructure:"year_group_gap"`
}

// ScoringConfig tunes guess grading.
type ScoringConfig struct {
	// ReferenceWidth is the guess width beyond which a wrong guess is not
	// penalized further for overconfidence.
	ReferenceWidth int `yaml:"reference_width" mapstructure:"reference_width"`

	// ExactThresholdYears is the distance from the most likely year within
	// which a guess counts as exact.
	ExactThresholdYears int `yaml:"exact_threshold_years" mapstructure:"exact_threshold_years"`

	Multipliers map[Difficulty]float64 `yaml:"multipliers" mapstructure:"multipliers"`
}

// Multiplier returns the configured difficulty multiplier.
func (s ScoringConfig) Multiplier(d Difficulty) float64 {
	if m, ok := s.Multipliers[d]; ok {
		return m
	}
	return 1.0
}

// KnowledgeConfig locates the entity catalog.
type KnowledgeConfig struct {
	// ExtraCatalog is an optional YAML file of additional entities merged
	// over the built-in catalog.
	ExtraCatalog string `yaml:"extra_catalog" mapstructure:"extra_catalog"`

	// LookupCacheTTL bounds how long token lookups stay cached.
	LookupCacheTTL time.Duration `yaml:"lookup_cache_ttl" mapstructure:"lookup_cache_ttl"`
}

// VisionConfig configures the visual-feature analyzer (black-box
// collaborator reached over an OpenAI-compatible API).
type VisionConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai", "" = disabled
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"-"` // from env only, never persisted
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// HTTPConfig configures archive fetching.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RatePerSec   float64       `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	Burst        int           `yaml:"burst" mapstructure:"burst"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
}

// CacheConfig configures the layered lookup/fetch cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig sizes the batch worker pool.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// GameConfig configures game mode.
type GameConfig struct {
	// KeySignals caps how many top signals a round exposes to hints and
	// feedback.
	KeySignals int `yaml:"key_signals" mapstructure:"key_signals"`

	// StatsDir is where player statistics are persisted as JSON.
	StatsDir string `yaml:"stats_dir" mapstructure:"stats_dir"`

	// MapsDir holds the local map catalog.
	MapsDir string `yaml:"maps_dir" mapstructure:"maps_dir"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Horizon: HorizonConfig{Min: 1000, Max: 2100},
		Inference: InferenceConfig{
			ExactMatchConfidence:    0.95,
			AltMatchConfidence:      0.80,
			FuzzyMatchConfidence:    0.70,
			CorroborationSaturation: 3,
			SingleSignalDiscount:    0.9,
			ConflictPenalty:         0.5,
			TextualYearConfidence:   0.6,
			TextualYearSpread:       10,
			YearGroupGap:            5,
		},
		Scoring: ScoringConfig{
			ReferenceWidth:      50,
			ExactThresholdYears: 5,
			Multipliers: map[Difficulty]float64{
				DifficultyBeginner:     1.0,
				DifficultyIntermediate: 1.3,
				DifficultyExpert:       1.6,
			},
		},
		Knowledge: KnowledgeConfig{
			LookupCacheTTL: 30 * time.Minute,
		},
		Vision: VisionConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1000,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "ChronoMap/0.1 (+https://github.com/ppiankov/chronomap)",
			MaxBodyBytes: 2_000_000,
			RatePerSec:   1,
			Burst:        3,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{Workers: 4},
		Game: GameConfig{
			KeySignals: 5,
		},
		Output: OutputConfig{IncludeFooter: true},
	}
}
