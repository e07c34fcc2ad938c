package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gift-suggest-core/internal/domain/entity"

	"github.com/sashabaranov/go-openai"
)

// OpenAIConfig configures an OpenAI-compatible chat completions backend.
type OpenAIConfig struct {
	APIKey          string
	BaseURL         string // empty means api.openai.com
	Model           string
	ReasoningEffort string // e.g. "minimal"; empty omits it for non-reasoning models
}

type OpenAIClient struct {
	client          *openai.Client // nil when no API key was configured
	model           string
	reasoningEffort string
}

func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	c := &OpenAIClient{
		model:           cfg.Model,
		reasoningEffort: cfg.ReasoningEffort,
	}
	if cfg.APIKey == "" {
		return c
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	c.client = openai.NewClientWithConfig(clientConfig)
	return c
}

func (c *OpenAIClient) Name() string { return "openai" }

func (c *OpenAIClient) CheckCredentials() error {
	if c.client == nil {
		return fmt.Errorf("%w: set OPENAI_API_KEY", entity.ErrConfig)
	}
	return nil
}

func (c *OpenAIClient) Generate(ctx context.Context, req entity.GenerationRequest) (*entity.ModelResponse, error) {
	if err := c.CheckCredentials(); err != nil {
		return nil, err
	}

	schema, err := json.Marshal(req.Schema)
	if err != nil {
		return nil, fmt.Errorf("marshal response schema: %w", err)
	}

	result, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxCompletionTokens: req.MaxOutputTokens,
		ReasoningEffort:     c.reasoningEffort,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.SchemaName,
				Schema: json.RawMessage(schema),
				Strict: true,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}

	resp := &entity.ModelResponse{
		ResponseID: result.ID,
		Model:      result.Model,
		TokenCount: result.Usage.TotalTokens,
	}
	if len(result.Choices) > 0 {
		resp.Text = result.Choices[0].Message.Content
		resp.FinishReason = string(result.Choices[0].FinishReason)
	}
	return resp, nil
}
