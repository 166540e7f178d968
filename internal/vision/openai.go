package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ppiankov/chronomap/internal/model"
)

// OpenAIProvider implements the Provider interface over an
// OpenAI-compatible vision API
type OpenAIProvider struct {
	client *openai.Client
	config model.VisionConfig
}

// NewOpenAIProvider creates a new OpenAI vision provider
func NewOpenAIProvider(config model.VisionConfig) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("vision API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vision API check failed: %v\n", err)
		return false
	}
	return true
}

// Analyze sends the map image to the vision model and parses the
// structured feature claims out of its reply
func (p *OpenAIProvider) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error) {
	imageURL := req.ImageURL
	if imageURL == "" {
		imageURL = req.ImageBase64
	}
	if imageURL == "" {
		return nil, fmt.Errorf("no image provided")
	}

	chatModel := req.Model
	if chatModel == "" {
		chatModel = p.config.Model
	}
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 1000
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	userParts := []openai.ChatMessagePart{
		{
			Type:     openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{URL: imageURL, Detail: openai.ImageURLDetailHigh},
		},
	}
	if req.Hint != "" {
		userParts = append(userParts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeText,
			Text: "Context: " + req.Hint,
		})
	}

	chatReq := openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: analyzePrompt,
			},
			{
				Role:         openai.ChatMessageRoleUser,
				MultiContent: userParts,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.2, // Lower temperature for more consistent structured output
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return nil, fmt.Errorf("vision API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from vision model")
	}

	features, err := parseFeatures(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("parse vision response: %w", err)
	}

	return &AnalyzeResponse{
		Features:   features,
		Model:      chatModel,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

// featurePayload is the JSON shape the prompt asks for
type featurePayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StartYear   int     `json:"start_year"`
	EndYear     int     `json:"end_year"`
	Confidence  float64 `json:"confidence"`
}

// parseFeatures decodes the model's JSON array, tolerating markdown code
// fences, and drops malformed entries rather than failing the analysis
func parseFeatures(content string) ([]model.VisualFeature, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var payload []featurePayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("expected JSON array: %w", err)
	}

	var features []model.VisualFeature
	for _, f := range payload {
		if f.Name == "" || f.StartYear > f.EndYear {
			continue
		}
		conf := f.Confidence
		if conf < 0 {
			conf = 0
		}
		if conf > 1 {
			conf = 1
		}
		features = append(features, model.VisualFeature{
			Name:           f.Name,
			Description:    f.Description,
			EstimatedRange: model.YearRange{Start: f.StartYear, End: f.EndYear},
			Confidence:     conf,
		})
	}
	return features, nil
}
