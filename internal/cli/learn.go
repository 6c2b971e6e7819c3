package cli

import (
	"fmt"

	"github.com/lorefoundry/triviaforge/internal/learn"
	"github.com/lorefoundry/triviaforge/internal/model"
	"github.com/spf13/cobra"
)

var (
	learnCharacter string
	learnSeries    string
	learnEpisode   string
	learnType      string
	learnSource    string
)

// learnCmd represents the learn command
var learnCmd = &cobra.Command{
	Use:   "learn <original> <corrected>",
	Short: "Learn a question correction as a reusable template",
	Long: `Learn records an editor's correction of a generated question and
generalizes it into a template for future synthesis:
- Character, series, and episode names become placeholders
- The contextual item, when one is found, becomes {item}
- The template is verified to reproduce the correction exactly

Corrections that cannot be generalized are stored verbatim and
still suppress the rejected phrasing.

Example:
  triviaforge learn \
    "In which episode did Alynna Nechayev have a particular fondness?" \
    "Which episode of TNG showed Alynna Nechayev's particular fondness for Bularian canapés?" \
    --character "Alynna Nechayev" --series TNG --type which --source event`,
	Args: cobra.ExactArgs(2),
	RunE: runLearn,
}

func init() {
	rootCmd.AddCommand(learnCmd)

	learnCmd.Flags().StringVar(&learnCharacter, "character", "", "character name the question was about")
	learnCmd.Flags().StringVar(&learnSeries, "series", "", "series code or name in the question")
	learnCmd.Flags().StringVar(&learnEpisode, "episode", "", "episode title in the question")
	learnCmd.Flags().StringVar(&learnType, "type", "", "question type (what, who, when, where, which)")
	learnCmd.Flags().StringVar(&learnSource, "source", "", "fact category the question came from (e.g. event, family)")
	learnCmd.Flags().StringVar(&libraryPath, "corrections", "", "correction library path (default: corrections.json)")

	_ = learnCmd.MarkFlagRequired("character")
}

func runLearn(cmd *cobra.Command, args []string) error {
	ctx := learn.Context{
		Character:    learnCharacter,
		Series:       learnSeries,
		Episode:      learnEpisode,
		QuestionType: model.QuestionType(learnType),
		Source:       model.SourceCategory(learnSource),
	}

	pattern, err := learn.Learn(args[0], args[1], ctx)
	if err != nil {
		return fmt.Errorf("learn correction: %w", err)
	}

	cfg := model.DefaultConfig()
	if libraryPath != "" {
		cfg.Learn.LibraryPath = libraryPath
	}

	lib, err := learn.Open(cfg.Learn.LibraryPath)
	if err != nil {
		return fmt.Errorf("open correction library: %w", err)
	}

	added, err := lib.Add(pattern)
	if err != nil {
		return fmt.Errorf("store correction: %w", err)
	}

	if added {
		fmt.Printf("✓ Learned template: %s\n", pattern.Generalized)
	} else {
		fmt.Printf("✓ Template already known, use count bumped: %s\n", pattern.Generalized)
	}
	if pattern.ContextualItem != "" {
		fmt.Printf("  Contextual item: %s\n", pattern.ContextualItem)
	}
	return nil
}
