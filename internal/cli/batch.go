package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/lorefoundry/triviaforge/internal/pipeline"
	"github.com/lorefoundry/triviaforge/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <pages-dir>",
	Short: "Generate trivia for a directory of pages in parallel",
	Long: `Batch processes a directory of wiki page files concurrently:
- Read every .txt, .wiki, and .wikitext file in the directory
- Extract and synthesize in parallel with a configurable worker count
- Write one JSON document per character to the output directory

Example:
  triviaforge batch ./pages
  triviaforge batch ./pages --concurrency 10 --output-dir ./trivia
  triviaforge batch ./pages --max-difficulty 0.67 --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./triviaforge-out", "output directory for question documents")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Inherit flags from the generate command
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the record cache (force fresh extraction)")
	batchCmd.Flags().BoolVar(&includeStubs, "include-stubs", false, "keep records with no extractable facts")
	batchCmd.Flags().IntVar(&maxQuestions, "max-questions", 25, "maximum questions per character")
	batchCmd.Flags().Float64Var(&maxDifficulty, "max-difficulty", 1.0, "drop questions scoring above this difficulty")
	batchCmd.Flags().StringSliceVar(&questionTypes, "types", nil, "question types to generate (what,who,when,where,which)")
	batchCmd.Flags().StringVar(&libraryPath, "corrections", "", "correction library path (default: corrections.json)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  TriviaForge Batch Processing\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Pages dir:    %s\n", dir)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	cfg := buildConfig()
	cfg.Concurrency.Workers = concurrency

	lib, err := openLibrary(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg, lib.Patterns())
	p.OnTemplateUse(recordTemplateUse(lib))
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)

	results, err := processor.ProcessDir(ctx, dir)
	if err != nil {
		return fmt.Errorf("process pages: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.Pretty, verbose)

	successCount := 0
	stubCount := 0
	failureCount := 0
	questionCount := 0

	for _, result := range results {
		if result.Error != nil {
			if errors.Is(result.Error, pipeline.ErrStubRecord) {
				stubCount++
				if verbose {
					fmt.Fprintf(os.Stderr, "- %s: stub, skipped\n", result.Title)
				}
				continue
			}
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Title, result.Error)
			continue
		}

		jsonPath := filepath.Join(outputDir, sanitizeFilename(result.Title)+".json")
		if err := renderer.WriteDocumentFile(jsonPath, result.Document); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Title, err)
			continue
		}

		successCount++
		questionCount += len(result.Document.TriviaFacts)
		fmt.Fprintf(os.Stderr, "✓ %s (%d questions)\n", result.Title, len(result.Document.TriviaFacts))
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Pages:      %d\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:    %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Stubs:      %d\n", stubCount)
	fmt.Fprintf(os.Stderr, "  Failures:   %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Questions:  %d\n", questionCount)
	fmt.Fprintf(os.Stderr, "  Output:     %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// sanitizeFilename sanitizes a character name for use as a filename
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(s)
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
