package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/claimlens/claimlens/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	checkJSON     string
	checkMD       string
	checkTimeout  time.Duration
	checkValidate bool
	checkResults  int
	noFooter      bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <claim>",
	Short: "Search the web for a claim and rank sources by quality and relevance",
	Long: `Check searches the web for a claim and scores every result:
- Quality (0-50): domain credibility from AdFontes and MediaBiasFactCheck ratings
- Similarity (0-50): semantic closeness between the claim and the result title
- Total (0-100): quality + similarity, best first

Scores describe the source, not the claim's truth.

Requires BRAVE_API_KEY for search and OPENAI_API_KEY (or a local
Ollama) for embeddings.

Example:
  claimlens check "The global sea level rose 10cm since 1993"
  claimlens check "..." --json report.json --md report.md
  claimlens check "..." --validate`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkJSON, "json", "report.json", "output JSON path")
	checkCmd.Flags().StringVar(&checkMD, "md", "", "output Markdown path (optional)")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().BoolVar(&checkValidate, "validate", false, "probe each result link for accessibility")
	checkCmd.Flags().IntVar(&checkResults, "max-results", 0, "max search results to score (default from config)")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runCheck(cmd *cobra.Command, args []string) error {
	claim := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg := buildConfig()
	if checkResults > 0 {
		cfg.Search.MaxResults = checkResults
	}
	cfg.Output.IncludeFooter = !noFooter

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", claim)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", checkTimeout)
		fmt.Fprintln(os.Stderr)
	}

	report, err := p.CheckClaim(ctx, claim, checkValidate)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Scored %d sources\n", len(report.Results))
		if checkValidate {
			accessible := 0
			for _, c := range report.LinkChecks {
				if c.IsAccessible {
					accessible++
				}
			}
			fmt.Fprintf(os.Stderr, "Link checks: %d/%d accessible\n", accessible, len(report.LinkChecks))
		}
		fmt.Fprintln(os.Stderr)
	}

	p.Renderer().RenderClaimSummary(report)

	if checkJSON != "" {
		if err := p.Renderer().RenderJSON(report, checkJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", checkJSON)
		}
	}
	if checkMD != "" {
		if err := p.Renderer().RenderClaimMarkdown(report, checkMD); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", checkMD)
		}
	}

	return nil
}
