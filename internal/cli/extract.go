package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lorefoundry/triviaforge/internal/pipeline"
	"github.com/spf13/cobra"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <page-file>",
	Short: "Extract the structured character record from a page",
	Long: `Extract parses a wiki page file into a structured character record
without synthesizing questions. Useful for inspecting what the
parser recovered before generating.

Example:
  triviaforge extract pages/Worf.txt
  triviaforge extract pages/Worf.txt --no-cache --compact`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the record cache (force fresh extraction)")
	extractCmd.Flags().BoolVar(&noPretty, "compact", false, "emit compact JSON")
	extractCmd.Flags().DurationVar(&genTimeout, "timeout", time.Minute, "extraction timeout")
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), genTimeout)
	defer cancel()

	page, err := readPageFile(args[0])
	if err != nil {
		return err
	}

	cfg := buildConfig()
	p := pipeline.NewPipeline(cfg, nil)

	rec, err := p.ExtractRecord(ctx, page)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.Pretty, verbose)
	return renderer.WriteRecord(os.Stdout, rec)
}
