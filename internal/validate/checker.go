// Package validate probes ranked result links for accessibility. Checks are
// advisory: they never change scores or ordering.
package validate

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/worker"
)

const checkMaxRetries = 3

// checkSleepFunc is the sleep function used between retries (injectable for tests)
var checkSleepFunc = time.Sleep

// Checker checks result links concurrently with robots.txt politeness and
// per-domain rate limiting
type Checker struct {
	httpClient *http.Client
	robots     *RobotsChecker
	limiter    *worker.Limiter
	userAgent  string
	maxWorkers int
}

// NewChecker creates a link checker
func NewChecker(httpCfg model.HTTPConfig, maxWorkers int) *Checker {
	if maxWorkers <= 0 {
		maxWorkers = 10
	}

	timeout := httpCfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Checker{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:     NewRobotsChecker(httpCfg.UserAgent, timeout),
		limiter:    worker.NewLimiter(2, 2),
		userAgent:  httpCfg.UserAgent,
		maxWorkers: maxWorkers,
	}
}

// Check probes every scored result that carries a URL. Results without a URL
// are skipped (there is nothing to probe). Output order matches input order.
func (c *Checker) Check(ctx context.Context, results []model.ScoredResult) []model.CheckResult {
	var urls []string
	for _, r := range results {
		if r.Result.URL != "" {
			urls = append(urls, r.Result.URL)
		}
	}
	if len(urls) == 0 {
		return []model.CheckResult{}
	}

	checks := make([]model.CheckResult, len(urls))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, c.maxWorkers)

	for i, u := range urls {
		wg.Add(1)
		go func(idx int, link string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				checks[idx] = model.CheckResult{
					URL:   link,
					Error: "context cancelled",
				}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			checks[idx] = c.checkSingleWithRetry(ctx, link)
		}(i, u)
	}

	wg.Wait()
	return checks
}

// checkSingle probes a single link with a HEAD request
func (c *Checker) checkSingle(ctx context.Context, link string) model.CheckResult {
	result := model.CheckResult{URL: link}

	allowed, crawlDelay, err := c.robots.CanFetch(ctx, link)
	if err != nil {
		result.Error = fmt.Sprintf("robots check: %v", err)
		return result
	}
	if !allowed {
		result.RobotsDenied = true
		return result
	}

	if err := c.limiter.WaitWithDelay(ctx, link, crawlDelay); err != nil {
		result.Error = fmt.Sprintf("rate limit: %v", err)
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, link, nil)
	if err != nil {
		result.Error = fmt.Sprintf("create request: %v", err)
		return result
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		result.IsAccessible = true
	}

	if resp.Request.URL.String() != link {
		result.RedirectURL = resp.Request.URL.String()
	}

	return result
}

// checkSingleWithRetry retries transient failures with exponential backoff
func (c *Checker) checkSingleWithRetry(ctx context.Context, link string) model.CheckResult {
	var result model.CheckResult
	for attempt := 0; attempt < checkMaxRetries; attempt++ {
		result = c.checkSingle(ctx, link)
		if !isRetryable(result) {
			return result
		}
		if attempt < checkMaxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			checkSleepFunc(backoff)
		}
	}
	return result
}

// isRetryable returns true for results that indicate transient failures
func isRetryable(result model.CheckResult) bool {
	if result.RobotsDenied {
		return false
	}
	if result.StatusCode >= 500 && result.StatusCode < 600 {
		return true
	}
	if result.StatusCode == 429 {
		return true
	}
	if result.Error != "" {
		s := strings.ToLower(result.Error)
		return strings.Contains(s, "timeout") ||
			strings.Contains(s, "connection refused") ||
			strings.Contains(s, "connection reset")
	}
	return false
}
