package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/lorefoundry/triviaforge/internal/model"
)

// Provider defines the interface for rephrase-suggestion providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Suggest proposes a rephrasing of a flagged question. Suggestions are
	// display-only: they never enter the question set without a human
	// accepting them through the correction workflow.
	Suggest(ctx context.Context, req SuggestRequest) (*SuggestResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SuggestRequest contains the input for a rephrase suggestion
type SuggestRequest struct {
	// Question is the flagged trivia question to rephrase
	Question model.Question

	// Issues are the detector tags that got the question flagged, so the
	// model knows what to fix
	Issues []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SuggestResponse contains the provider's suggestion
type SuggestResponse struct {
	// Suggestion is the proposed replacement question text
	Suggestion string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds suggestion provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// AnswerGuard rejects suggestions that reveal the answer in the
	// question text (should always be true)
	AnswerGuard bool

	// MaxTokens for response generation
	MaxTokens int

	// RequestsPerSecond throttles calls across a review session
	RequestsPerSecond float64

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:          "", // Disabled by default
		Model:             "",
		Timeout:           30,
		AnswerGuard:       true,
		MaxTokens:         200,
		RequestsPerSecond: 1,
	}
}

// BuildPrompt constructs the default rephrase prompt
func BuildPrompt(q model.Question, issues []string) string {
	prompt := fmt.Sprintf(`You are rephrasing a trivia question that was flagged as unnatural.

RULES:
1. Keep the question answerable by exactly: %q
2. Do NOT include the answer text in the question.
3. Fix only the phrasing; do not add facts that are not implied by the question.
4. Reply with the rephrased question alone, no commentary.

Flagged question: %s
`, q.Answer, q.Text)

	if len(issues) > 0 {
		prompt += fmt.Sprintf("Detected issues: %s\n", strings.Join(issues, ", "))
	}
	if q.Series != "" {
		prompt += fmt.Sprintf("Series context: %s\n", q.Series)
	}
	if q.Episode != "" {
		prompt += fmt.Sprintf("Episode context: %s\n", q.Episode)
	}
	return prompt
}

// verifyNoAnswerLeak rejects a suggestion that embeds the answer - a
// question containing its own answer is worse than the flagged original.
func verifyNoAnswerLeak(suggestion, answer string) error {
	if answer == "" {
		return nil
	}
	if strings.Contains(strings.ToLower(suggestion), strings.ToLower(answer)) {
		return fmt.Errorf("ANSWER LEAK: suggestion contains the answer %q", answer)
	}
	return nil
}

// firstLine reduces a multi-line model reply to the question itself.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx != -1 {
		s = strings.TrimSpace(s[:idx])
	}
	return strings.Trim(s, `"`)
}
