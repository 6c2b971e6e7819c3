package llm

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"

	"github.com/lorefoundry/triviaforge/internal/model"
)

// NewProvider creates a suggestion provider based on configuration. The
// returned provider is throttled to the configured request rate.
func NewProvider(config Config) (Provider, error) {
	var (
		provider Provider
		err      error
	)
	switch strings.ToLower(config.Provider) {
	case "openai":
		provider, err = NewOpenAIProvider(config)

	case "anthropic", "claude":
		provider, err = NewAnthropicProvider(config)

	case "ollama":
		provider, err = NewOllamaProvider(config)

	case "":
		// No provider configured - suggestions disabled
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
	if err != nil {
		return nil, err
	}

	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &throttledProvider{
		Provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

// throttledProvider paces suggestion calls so a review session over a large
// question set never hammers the API.
type throttledProvider struct {
	Provider
	limiter *rate.Limiter
}

func (t *throttledProvider) Suggest(ctx context.Context, req SuggestRequest) (*SuggestResponse, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return t.Provider.Suggest(ctx, req)
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	cfg := DefaultConfig()
	cfg.Provider = modelConfig.Provider
	cfg.Model = modelConfig.Model
	cfg.APIKey = modelConfig.APIKey
	cfg.BaseURL = modelConfig.BaseURL
	if modelConfig.Timeout > 0 {
		cfg.Timeout = modelConfig.Timeout
	}
	if modelConfig.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = modelConfig.RequestsPerSecond
	}
	return cfg
}
