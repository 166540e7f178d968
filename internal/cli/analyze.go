package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/chronomap/internal/pipeline"
	"github.com/ppiankov/chronomap/internal/vision"
)

var (
	outJSON        string
	outMD          string
	analyzeTimeout time.Duration
	subject        string
	imageURL       string
	noCache        bool
	noFooter       bool
	visionProvider string
	visionModel    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <description...>",
	Short: "Estimate when a map was made from its description",
	Long: `Analyze dates a historical map from the text on it:
- Match place and country names against the historical knowledge base
- Extract printed year references
- Optionally send a map image to a vision model for production features
- Fuse all signals into a dated estimate with a signal-by-signal explanation

Example:
  chronomap analyze "Railway map of the Soviet Union, printed 1957"
  chronomap analyze "Map of East Germany" --json report.json --md report.md
  chronomap analyze "City plan of Constantinople" --image https://example.org/map.jpg --vision openai`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&subject, "subject", "", "map title for the report (default: leading words of the description)")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the report cache (force fresh analysis)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Vision flags
	analyzeCmd.Flags().StringVar(&imageURL, "image", "", "map image URL for visual analysis")
	analyzeCmd.Flags().StringVar(&visionProvider, "vision", "", "vision provider (openai; empty disables visual analysis)")
	analyzeCmd.Flags().StringVar(&visionModel, "vision-model", "", "vision model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	description := strings.Join(args, " ")
	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	cfg := loadConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Output.IncludeFooter = !noFooter

	if visionProvider != "" {
		cfg.Vision.Provider = visionProvider
		if visionModel != "" {
			cfg.Vision.Model = visionModel
		}
		cfg.Vision.APIKey = vision.APIKeyFromEnv()
		if cfg.Vision.APIKey == "" {
			return fmt.Errorf("CHRONOMAP_VISION_API_KEY or OPENAI_API_KEY environment variable not set")
		}
	}

	if subject == "" {
		subject = defaultSubject(description)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", subject)
		if imageURL != "" {
			fmt.Fprintf(os.Stderr, "Image: %s\n", imageURL)
		}
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	report, err := p.Analyze(ctx, pipeline.Input{
		Subject:     subject,
		Description: description,
		ImageURL:    imageURL,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Matched %d entities, %d year references, %d visual features\n",
			report.Inputs.EntityMatches, report.Inputs.YearReferences, report.Inputs.VisualFeatures)
		fmt.Fprintln(os.Stderr)
	}

	fmt.Println(report.Explanation)
	fmt.Println()

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

func defaultSubject(description string) string {
	words := strings.Fields(description)
	n := len(words)
	if n > 6 {
		n = 6
	}
	return strings.Join(words[:n], " ")
}
