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
	claimsFile    string
	claimsURL     string
	claimsJSON    string
	claimsTimeout time.Duration
	embedProvider string
	embedModel    string
)

// claimsCmd represents the claims command
var claimsCmd = &cobra.Command{
	Use:   "claims [text]",
	Short: "Extract check-worthy claims from post text",
	Long: `Claims segments text into clauses and classifies each clause as a
check-worthy factual claim or not, using a pretrained classifier over
sentence embeddings.

The text comes from the argument, a file, or a fetched web page.

Example:
  claimlens claims "The economy grew 3% last year. I love this city."
  claimlens claims --file post.txt
  claimlens claims --url https://example.com/post --json claims.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClaims,
}

func init() {
	rootCmd.AddCommand(claimsCmd)

	claimsCmd.Flags().StringVar(&claimsFile, "file", "", "read post text from a file")
	claimsCmd.Flags().StringVar(&claimsURL, "url", "", "fetch post text from a URL")
	claimsCmd.Flags().StringVar(&claimsJSON, "json", "", "output JSON path (optional)")
	claimsCmd.Flags().DurationVar(&claimsTimeout, "timeout", 2*time.Minute, "overall timeout")
	claimsCmd.Flags().StringVar(&embedProvider, "provider", "", "embedding provider (openai, ollama)")
	claimsCmd.Flags().StringVar(&embedModel, "model", "", "embedding model name")
}

func runClaims(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), claimsTimeout)
	defer cancel()

	cfg := buildConfig()
	if embedProvider != "" {
		cfg.Embedding.Provider = embedProvider
	}
	if embedModel != "" {
		cfg.Embedding.Model = embedModel
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	text, source, err := resolveText(ctx, p, args)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Extracting claims from %d bytes of text\n", len(text))
	}

	report, err := p.ExtractClaims(ctx, text, source)
	if err != nil {
		return fmt.Errorf("extract claims: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Segmented %d clauses, %d classified as claims\n",
			len(report.Clauses), len(report.Claims))
	}

	p.Renderer().RenderPostSummary(report)

	if claimsJSON != "" {
		if err := p.Renderer().RenderJSON(report, claimsJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", claimsJSON)
		}
	}

	return nil
}

// resolveText picks the input text from the argument, --file, or --url.
// Exactly one source must be given.
func resolveText(ctx context.Context, p *pipeline.Pipeline, args []string) (text, source string, err error) {
	sources := 0
	if len(args) == 1 {
		sources++
	}
	if claimsFile != "" {
		sources++
	}
	if claimsURL != "" {
		sources++
	}
	if sources != 1 {
		return "", "", fmt.Errorf("provide exactly one of: text argument, --file, --url")
	}

	switch {
	case claimsFile != "":
		data, err := os.ReadFile(claimsFile)
		if err != nil {
			return "", "", fmt.Errorf("read file: %w", err)
		}
		return string(data), claimsFile, nil
	case claimsURL != "":
		if verbose {
			fmt.Fprintf(os.Stderr, "Fetching: %s\n", claimsURL)
		}
		text, err := p.FetchText(ctx, claimsURL)
		if err != nil {
			return "", "", err
		}
		return text, claimsURL, nil
	default:
		return args[0], "", nil
	}
}
