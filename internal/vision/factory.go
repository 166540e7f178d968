package vision

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/chronomap/internal/model"
)

// NewProvider creates a vision provider based on configuration. An empty
// provider name disables visual analysis and returns (nil, nil).
func NewProvider(config model.VisionConfig) (Provider, error) {
	if config.APIKey == "" {
		config.APIKey = APIKeyFromEnv()
	}

	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown vision provider: %s (supported: openai)", config.Provider)
	}
}

// APIKeyFromEnv reads the vision API key from the environment. The
// key never lives in the config file.
func APIKeyFromEnv() string {
	if key := os.Getenv("CHRONOMAP_VISION_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("OPENAI_API_KEY")
}
