package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/claimlens/claimlens/internal/pipeline"
	"github.com/claimlens/claimlens/internal/worker"
	"github.com/spf13/cobra"
)

var (
	batchConcurrency int
	batchOutputDir   string
	batchTimeout     time.Duration
	batchValidate    bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Check multiple claims from a file in parallel",
	Long: `Batch checks multiple claims concurrently:
- Read claims from input file (one per line, # comments skipped)
- Check claims in parallel with configurable worker count
- Generate an individual JSON report for each claim

Example:
  claimlens batch claims.txt
  claimlens batch claims.txt --concurrency 5 --output-dir ./reports
  claimlens batch claims.txt --validate --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "./claimlens-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&batchValidate, "validate", false, "probe each result link for accessibility")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildConfig()
	concurrency := cfg.Concurrency.BatchWorkers
	if batchConcurrency > 0 {
		concurrency = batchConcurrency
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(batchOutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Input file: %s\n", file)
	fmt.Fprintf(os.Stderr, "Workers:    %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Output dir: %s\n", batchOutputDir)
	fmt.Fprintln(os.Stderr)

	processor := worker.NewBatchProcessor(p, concurrency, batchValidate)

	outcomes, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	successCount := 0
	failureCount := 0

	for _, outcome := range outcomes {
		if outcome.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %q: %v\n", outcome.Claim, outcome.Error)
			continue
		}

		successCount++

		jsonPath := filepath.Join(batchOutputDir, claimSlug(outcome.Claim)+".json")
		if err := p.Renderer().RenderJSON(outcome.Report, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %q: write report: %v\n", outcome.Claim, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "ok   %q (%d sources)\n", outcome.Claim, len(outcome.Report.Results))
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Total:    %d claims\n", len(outcomes))
	fmt.Fprintf(os.Stderr, "Success:  %d\n", successCount)
	fmt.Fprintf(os.Stderr, "Failures: %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "Output:   %s\n", batchOutputDir)

	if failureCount > 0 {
		return fmt.Errorf("%d of %d claims failed", failureCount, len(outcomes))
	}
	return nil
}

// claimSlug derives a filesystem-safe file name from a claim
func claimSlug(claim string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(claim) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if len(slug) > 80 {
		slug = strings.TrimSuffix(slug[:80], "-")
	}
	if slug == "" {
		slug = "claim"
	}
	return slug
}
