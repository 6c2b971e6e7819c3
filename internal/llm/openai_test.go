package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"

	"github.com/lorefoundry/triviaforge/internal/model"
)

func openAIServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected Authorization header Bearer test-key, got %s", r.Header.Get("Authorization"))
		}

		resp := openai.ChatCompletionResponse{
			ID:     "chatcmpl-123",
			Object: "chat.completion",
			Model:  "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{
					Index: 0,
					Message: openai.ChatCompletionMessage{
						Role:    "assistant",
						Content: reply,
					},
					FinishReason: "stop",
				},
			},
			Usage: openai.Usage{
				TotalTokens: 42,
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func flaggedQuestion() model.Question {
	return model.Question{
		Text:      "In which episode did Alynna Nechayev have a particular fondness?",
		Answer:    "The Chase",
		Character: "Alynna Nechayev",
		Series:    "TNG",
	}
}

func TestOpenAIProvider_Suggest_Success(t *testing.T) {
	server := openAIServer(t, "In which episode was Alynna Nechayev's favorite delicacy served?")
	defer server.Close()

	config := Config{
		APIKey:      "test-key",
		BaseURL:     server.URL,
		Model:       "gpt-4o-mini",
		Timeout:     5,
		AnswerGuard: true,
	}
	provider, err := NewOpenAIProvider(config)
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Suggest(context.Background(), SuggestRequest{
		Question: flaggedQuestion(),
		Issues:   []string{"incomplete_action"},
	})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	if resp.Suggestion != "In which episode was Alynna Nechayev's favorite delicacy served?" {
		t.Errorf("Unexpected suggestion: %s", resp.Suggestion)
	}
	if resp.TokensUsed != 42 {
		t.Errorf("Expected 42 tokens used, got %d", resp.TokensUsed)
	}
}

func TestOpenAIProvider_Suggest_AnswerLeak(t *testing.T) {
	server := openAIServer(t, `Was "The Chase" the episode with Nechayev's fondness?`)
	defer server.Close()

	config := Config{
		APIKey:      "test-key",
		BaseURL:     server.URL,
		Timeout:     5,
		AnswerGuard: true,
	}
	provider, err := NewOpenAIProvider(config)
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Suggest(context.Background(), SuggestRequest{Question: flaggedQuestion()})
	if err == nil {
		t.Fatal("Expected answer leak error, got nil")
	}
	if !strings.Contains(err.Error(), "ANSWER LEAK") {
		t.Errorf("Expected ANSWER LEAK error, got: %v", err)
	}
}

func TestOpenAIProvider_Suggest_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "Internal Server Error", "type": "server_error"}}`))
	}))
	defer server.Close()

	config := Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 5,
	}
	provider, err := NewOpenAIProvider(config)
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Suggest(context.Background(), SuggestRequest{Question: flaggedQuestion()})
	if err == nil {
		t.Fatal("Expected API error, got nil")
	}
}

func TestNewOpenAIProvider_MissingKey(t *testing.T) {
	_, err := NewOpenAIProvider(Config{})
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
}
