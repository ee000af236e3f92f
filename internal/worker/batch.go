package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// ClaimChecker defines the interface for checking a single claim
type ClaimChecker interface {
	CheckClaim(ctx context.Context, claim string, withChecks bool) (*model.ClaimReport, error)
}

// CheckJob represents a single claim check job
type CheckJob struct {
	Claim      string
	Checker    ClaimChecker
	WithChecks bool
}

// Execute executes the check job
func (j *CheckJob) Execute(ctx context.Context) Result {
	report, err := j.Checker.CheckClaim(ctx, j.Claim, j.WithChecks)
	return &CheckOutcome{
		Claim:  j.Claim,
		Report: report,
		Error:  err,
	}
}

// CheckOutcome represents the result of a claim check job
type CheckOutcome struct {
	Claim  string
	Report *model.ClaimReport
	Error  error
}

// GetError returns the error from the check outcome
func (o *CheckOutcome) GetError() error {
	return o.Error
}

// BatchProcessor checks multiple claims concurrently
type BatchProcessor struct {
	checker     ClaimChecker
	concurrency int
	withChecks  bool
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(checker ClaimChecker, concurrency int, withChecks bool) *BatchProcessor {
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
		withChecks:  withChecks,
	}
}

// ProcessClaims checks multiple claims concurrently. Submission and result
// collection overlap, so the claim count is not bounded by the pool's channel
// buffers. Cancelling ctx stops queued and in-flight checks.
func (b *BatchProcessor) ProcessClaims(ctx context.Context, claims []string) []*CheckOutcome {
	if len(claims) == 0 {
		return []*CheckOutcome{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	go func() {
		for _, claim := range claims {
			pool.Submit(&CheckJob{
				Claim:      claim,
				Checker:    b.checker,
				WithChecks: b.withChecks,
			})
		}
		pool.Close()
	}()

	results := pool.Wait()

	outcomes := make([]*CheckOutcome, len(results))
	for i, result := range results {
		outcomes[i] = result.(*CheckOutcome)
	}

	return outcomes
}

// ProcessFile reads claims from a file and checks them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*CheckOutcome, error) {
	claims, err := ReadClaimsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}

	return b.ProcessClaims(ctx, claims), nil
}

// ReadClaimsFromFile reads claims from a file (one per line)
func ReadClaimsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var claims []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			claims = append(claims, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return claims, nil
}
