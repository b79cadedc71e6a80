package llm

import (
	"context"
	"fmt"
	"strings"

	"news-map/internal/services/upstream"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/rs/zerolog/log"
)

type OpenAIClient struct {
	client      openai.Client
	model       string
	maxTokens   int64
	temperature float64
}

func NewOpenAIClient(apiKey string, opts Options) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	// One attempt per article; the SDK would otherwise retry twice.
	requestOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		requestOpts = append(requestOpts, option.WithHTTPClient(opts.HTTPClient))
	}

	model := opts.Model
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 150
	}

	return &OpenAIClient{
		client:      openai.NewClient(requestOpts...),
		model:       model,
		maxTokens:   int64(maxTokens),
		temperature: opts.Temperature,
	}, nil
}

func (c *OpenAIClient) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildPrompt(text)),
		},
		MaxTokens:   openai.Int(c.maxTokens),
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", upstream.FromSDK(upstream.ServiceLLM, err)
	}

	if len(resp.Choices) == 0 {
		log.Error().Str("model", c.model).Str("response_id", resp.ID).Msg("OpenAI response has no choices")
		return "", &upstream.UpstreamError{
			Service: upstream.ServiceLLM,
			Message: "invalid response from OpenAI API: no completion choices",
		}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *OpenAIClient) Name() string {
	return "openai:" + c.model
}
