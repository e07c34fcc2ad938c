package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gift-suggest-core/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"required":             []any{"suggestions"},
		"additionalProperties": false,
	}
}

func TestOpenAIClient_MissingKey(t *testing.T) {
	c := NewOpenAIClient(OpenAIConfig{Model: "gpt-5-nano"})

	require.ErrorIs(t, c.CheckCredentials(), entity.ErrConfig)
	_, err := c.Generate(context.Background(), entity.GenerationRequest{Prompt: "x"})
	require.ErrorIs(t, err, entity.ErrConfig)
}

func TestOpenAIClient_Generate(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-42",
			"object": "chat.completion",
			"model": "gpt-5-nano-2025-08-07",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"suggestions\":[]}"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 100, "completion_tokens": 50, "total_tokens": 150}
		}`))
	}))
	defer server.Close()

	c := NewOpenAIClient(OpenAIConfig{
		APIKey:          "sk-test",
		BaseURL:         server.URL + "/v1/",
		Model:           "gpt-5-nano",
		ReasoningEffort: "minimal",
	})
	require.NoError(t, c.CheckCredentials())

	resp, err := c.Generate(context.Background(), entity.GenerationRequest{
		Prompt:          "Erstelle exakt 3 Geschenkideen",
		SchemaName:      "gift_suggestions",
		Schema:          testSchema(),
		MaxOutputTokens: 1400,
	})
	require.NoError(t, err)

	assert.Equal(t, `{"suggestions":[]}`, resp.Text)
	assert.Equal(t, "chatcmpl-42", resp.ResponseID)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, 150, resp.TokenCount)

	assert.Equal(t, "gpt-5-nano", body["model"])
	assert.Equal(t, "minimal", body["reasoning_effort"])
	assert.EqualValues(t, 1400, body["max_completion_tokens"])

	format := body["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	schema := format["json_schema"].(map[string]any)
	assert.Equal(t, "gift_suggestions", schema["name"])
	assert.Equal(t, true, schema["strict"])
	assert.Equal(t, false, schema["schema"].(map[string]any)["additionalProperties"])
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-7","model":"gpt-5-nano","choices":[],"usage":{"total_tokens":12}}`))
	}))
	defer server.Close()

	c := NewOpenAIClient(OpenAIConfig{APIKey: "sk-test", BaseURL: server.URL, Model: "gpt-5-nano"})
	resp, err := c.Generate(context.Background(), entity.GenerationRequest{Prompt: "x", Schema: testSchema()})
	require.NoError(t, err)
	assert.Empty(t, resp.Text)
	assert.Equal(t, "chatcmpl-7", resp.ResponseID)
}

func TestOpenAIClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	}))
	defer server.Close()

	c := NewOpenAIClient(OpenAIConfig{APIKey: "sk-test", BaseURL: server.URL, Model: "gpt-5-nano"})
	_, err := c.Generate(context.Background(), entity.GenerationRequest{Prompt: "x", Schema: testSchema()})
	require.Error(t, err)
	assert.NotErrorIs(t, err, entity.ErrConfig)
}

func TestOpenAIClient_HonoursCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewOpenAIClient(OpenAIConfig{APIKey: "sk-test", BaseURL: server.URL, Model: "gpt-5-nano"})
	_, err := c.Generate(ctx, entity.GenerationRequest{Prompt: "x", Schema: testSchema()})
	require.ErrorIs(t, err, context.Canceled)
}
