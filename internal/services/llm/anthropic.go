package llm

import (
	"context"
	"fmt"
	"strings"

	"news-map/internal/services/upstream"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog/log"
)

type AnthropicClient struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
}

func NewAnthropicClient(apiKey string, opts Options) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

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
		model = "claude-3-5-haiku-latest"
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 150
	}

	return &AnthropicClient{
		client:      anthropic.NewClient(requestOpts...),
		model:       model,
		maxTokens:   int64(maxTokens),
		temperature: opts.Temperature,
	}, nil
}

func (c *AnthropicClient) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(text))),
		},
		Temperature: anthropic.Float(c.temperature),
	})
	if err != nil {
		return "", upstream.FromSDK(upstream.ServiceLLM, err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	summary := strings.TrimSpace(sb.String())
	if summary == "" {
		log.Error().Str("model", c.model).Str("response_id", resp.ID).Msg("Anthropic response has no text content")
		return "", &upstream.UpstreamError{
			Service: upstream.ServiceLLM,
			Message: "invalid response from Anthropic API: no text content",
		}
	}

	return summary, nil
}

func (c *AnthropicClient) Name() string {
	return "anthropic:" + c.model
}
