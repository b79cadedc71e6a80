package llm

import (
	"context"
	"fmt"
	"net/http"

	"news-map/internal/config"
)

const systemPrompt = "You are a helpful assistant."

// The city-first instruction is what lets location.ExtractCity find the
// place name in the summary.
const summaryPromptTemplate = "Summarize the following news article and make sure the first word is the name of the city where the article takes place. The first word MUST be the city name without any prepositions or other words before it.:\n\n%s\n\nSummary:"

// Summarizer sends article text to a completion endpoint and returns the
// generated summary. Each call is independent.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
	Name() string
}

// Options are the generation settings shared by every provider.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature float64
	BaseURL     string
	HTTPClient  *http.Client
}

func buildPrompt(text string) string {
	return fmt.Sprintf(summaryPromptTemplate, text)
}

// New builds the Summarizer selected by cfg.Provider.
func New(cfg config.LLMConfig) (Summarizer, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		return NewOpenAIClient(cfg.OpenAIKey, Options{
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			BaseURL:     cfg.OpenAIBaseURL,
		})
	case config.ProviderAnthropic:
		return NewAnthropicClient(cfg.AnthropicKey, Options{
			Model:       cfg.AnthropicModel,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			BaseURL:     cfg.AnthropicBaseURL,
		})
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownProvider, cfg.Provider)
	}
}
