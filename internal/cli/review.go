package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/lorefoundry/triviaforge/internal/generate"
	"github.com/lorefoundry/triviaforge/internal/llm"
	"github.com/lorefoundry/triviaforge/internal/model"
	"github.com/spf13/cobra"
)

var (
	llmEnabled    bool
	llmProvider   string
	llmModel      string
	reviewTimeout time.Duration
)

// reviewCmd represents the review command
var reviewCmd = &cobra.Command{
	Use:   "review <document.json>",
	Short: "Flag unnatural questions in a generated document",
	Long: `Review runs the phrasing detector over a generated question document
and reports questions that read unnaturally: dangling prepositions,
fragments, redundant words, or phrasings editors have rejected before.

With --llm, a language model suggests a rephrasing for each flagged
question. Suggestions are display-only; fixes enter the generator
through 'triviaforge learn'.

Example:
  triviaforge review trivia/Worf.json
  triviaforge review trivia/Worf.json --llm --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)

	reviewCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM rephrase suggestions")
	reviewCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	reviewCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
	reviewCmd.Flags().DurationVar(&reviewTimeout, "timeout", 2*time.Minute, "overall review timeout")
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), reviewTimeout)
	defer cancel()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	var doc model.CharacterDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	provider, err := reviewProvider()
	if err != nil {
		return err
	}

	detector := generate.NewDetector(nil)

	flagged := 0
	for _, q := range doc.TriviaFacts {
		issues := detector.Flag(q.Text)
		if len(issues) == 0 {
			continue
		}
		flagged++

		fmt.Printf("✗ %s\n", q.Text)
		for _, issue := range issues {
			fmt.Printf("    issue: %s\n", issue)
		}

		if provider != nil {
			resp, err := provider.Suggest(ctx, llm.SuggestRequest{Question: q, Issues: issues})
			if err != nil {
				fmt.Fprintf(os.Stderr, "    suggestion failed: %v\n", err)
				continue
			}
			fmt.Printf("    suggestion: %s\n", resp.Suggestion)
		}
	}

	if flagged == 0 {
		fmt.Printf("✓ All %d questions read naturally\n", len(doc.TriviaFacts))
	} else {
		fmt.Printf("\n%d of %d questions flagged\n", flagged, len(doc.TriviaFacts))
		fmt.Println("Apply fixes with 'triviaforge learn' so the generator improves.")
	}
	return nil
}

// reviewProvider builds the suggestion provider from flags and environment,
// or returns nil when suggestions are disabled.
func reviewProvider() (llm.Provider, error) {
	if !llmEnabled {
		return nil, nil
	}

	cfg := model.DefaultConfig()
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
}
