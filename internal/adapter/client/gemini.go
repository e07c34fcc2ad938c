package client

import (
	"context"
	"fmt"

	"gift-suggest-core/internal/domain/entity"

	"google.golang.org/genai"
)

// GeminiConfig selects the Gemini API (APIKey) or Vertex AI (Project/Location).
type GeminiConfig struct {
	APIKey   string
	Project  string
	Location string
	Model    string
	BaseURL  string // optional override, mostly for tests
}

type GeminiClient struct {
	client *genai.Client // nil when no credentials were configured
	model  string
}

// NewGeminiClient builds a client from cfg. Missing credentials are not an
// error here; they surface per call through CheckCredentials.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	var cc *genai.ClientConfig
	switch {
	case cfg.APIKey != "":
		cc = &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		}
	case cfg.Project != "":
		cc = &genai.ClientConfig{
			Project:  cfg.Project,
			Location: cfg.Location,
			Backend:  genai.BackendVertexAI,
		}
	default:
		return &GeminiClient{model: cfg.Model}, nil
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to init genai client: %w", err)
	}
	return &GeminiClient{client: client, model: cfg.Model}, nil
}

func (g *GeminiClient) Name() string { return "gemini" }

func (g *GeminiClient) CheckCredentials() error {
	if g.client == nil {
		return fmt.Errorf("%w: set GEMINI_API_KEY or GOOGLE_CLOUD_PROJECT", entity.ErrConfig)
	}
	return nil
}

func (g *GeminiClient) Generate(ctx context.Context, req entity.GenerationRequest) (*entity.ModelResponse, error) {
	if err := g.CheckCredentials(); err != nil {
		return nil, err
	}

	// Zero thinking budget is Gemini's equivalent of minimal reasoning effort.
	thinkingBudget := int32(0)
	config := &genai.GenerateContentConfig{
		MaxOutputTokens:    int32(req.MaxOutputTokens),
		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: req.Schema,
		ThinkingConfig:     &genai.ThinkingConfig{ThinkingBudget: &thinkingBudget},
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), config)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	resp := &entity.ModelResponse{
		Text:       result.Text(),
		ResponseID: result.ResponseID,
		Model:      result.ModelVersion,
	}
	if resp.Model == "" {
		resp.Model = g.model
	}
	if len(result.Candidates) > 0 {
		resp.FinishReason = string(result.Candidates[0].FinishReason)
	}
	if result.UsageMetadata != nil {
		resp.TokenCount = int(result.UsageMetadata.TotalTokenCount)
	}
	return resp, nil
}
