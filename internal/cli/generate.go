package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lorefoundry/triviaforge/internal/learn"
	"github.com/lorefoundry/triviaforge/internal/model"
	"github.com/lorefoundry/triviaforge/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON       string
	noCache       bool
	noPretty      bool
	includeStubs  bool
	maxQuestions  int
	maxDifficulty float64
	questionTypes []string
	libraryPath   string
	genTimeout    time.Duration
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <page-file>",
	Short: "Generate trivia questions from a character page",
	Long: `Generate extracts a structured character record from a wiki page file
and synthesizes a scored trivia question set from it:
- Parse the character sidebar and biography prose
- Extract species, birth, family, portrayals, appearances, events, traits
- Fill question templates, learned correction templates first
- Score and grade each question by difficulty

Example:
  triviaforge generate pages/Worf.txt
  triviaforge generate pages/Worf.txt --json worf.json --max-difficulty 0.67
  triviaforge generate pages/Worf.txt --types who,which --no-cache`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	// Output flags
	generateCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: stdout)")
	generateCmd.Flags().BoolVar(&noPretty, "compact", false, "emit compact JSON")

	// Extraction flags
	generateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the record cache (force fresh extraction)")
	generateCmd.Flags().BoolVar(&includeStubs, "include-stubs", false, "keep records with no extractable facts")

	// Synthesis flags
	generateCmd.Flags().IntVar(&maxQuestions, "max-questions", 25, "maximum questions per character")
	generateCmd.Flags().Float64Var(&maxDifficulty, "max-difficulty", 1.0, "drop questions scoring above this difficulty")
	generateCmd.Flags().StringSliceVar(&questionTypes, "types", nil, "question types to generate (what,who,when,where,which)")
	generateCmd.Flags().StringVar(&libraryPath, "corrections", "", "correction library path (default: corrections.json)")
	generateCmd.Flags().DurationVar(&genTimeout, "timeout", time.Minute, "overall generation timeout")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), genTimeout)
	defer cancel()

	page, err := readPageFile(args[0])
	if err != nil {
		return err
	}

	cfg := buildConfig()
	lib, err := openLibrary(cfg)
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg, lib.Patterns())
	p.OnTemplateUse(recordTemplateUse(lib))
	doc, err := p.ProcessPage(ctx, page)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.Pretty, verbose)
	if outJSON != "" {
		return renderer.WriteDocumentFile(outJSON, doc)
	}
	return renderer.WriteDocument(os.Stdout, doc)
}

// buildConfig assembles the runtime configuration from defaults and flags.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Extract.SkipStubs = !includeStubs
	if maxQuestions > 0 {
		cfg.Generate.MaxQuestionsPerRecord = maxQuestions
	}
	if maxDifficulty > 0 {
		cfg.Generate.MaxDifficulty = maxDifficulty
	}
	if len(questionTypes) > 0 {
		cfg.Generate.QuestionTypes = questionTypes
	}
	if libraryPath != "" {
		cfg.Learn.LibraryPath = libraryPath
	}
	cfg.Output.Verbose = verbose
	cfg.Output.Pretty = !noPretty
	return cfg
}

// openLibrary opens the correction library. A missing library file is fine,
// it just means nothing has been learned yet.
func openLibrary(cfg *model.Config) (*learn.Library, error) {
	lib, err := learn.Open(cfg.Learn.LibraryPath)
	if err != nil {
		return nil, fmt.Errorf("open correction library: %w", err)
	}
	return lib, nil
}

// recordTemplateUse bumps a learned template's use counter each time
// synthesis applies it. Counting is advisory; a failure never blocks the run.
func recordTemplateUse(lib *learn.Library) func(string) {
	return func(generalized string) {
		if err := lib.RecordUse(generalized); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "Warning: record template use: %v\n", err)
		}
	}
}

// readPageFile loads one wiki page dump. The title is the file name without
// its extension.
func readPageFile(path string) (*model.Page, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	name := filepath.Base(path)
	title := strings.TrimSuffix(name, filepath.Ext(name))
	return &model.Page{Title: title, Text: string(text)}, nil
}
