package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1) // 100 rps, burst 1
	ctx := context.Background()

	url := "http://example.com/foo"
	if err := limiter.Wait(ctx, url); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// Different domain should also work
	if err := limiter.Wait(ctx, "http://google.com"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	start := time.Now()
	err := limiter.WaitWithDelay(ctx, "http://example.com", 50*time.Millisecond)
	if err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}

	duration := time.Since(start)
	if duration < 50*time.Millisecond {
		t.Errorf("expected delay >= 50ms, got %v", duration)
	}
}

func TestLimiter_RateLimitBlocks(t *testing.T) {
	// 20 rps, burst 1: the second request on the same domain must wait
	limiter := NewLimiter(20, 1)
	ctx := context.Background()
	url := "http://example.com"

	if err := limiter.Wait(ctx, url); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	start := time.Now()
	if err := limiter.Wait(ctx, url); err != nil {
		t.Fatalf("second wait failed: %v", err)
	}
	if time.Since(start) < 30*time.Millisecond {
		t.Errorf("expected second wait to be rate limited")
	}
}

func TestLimiter_DomainsIndependent(t *testing.T) {
	limiter := NewLimiter(1, 1) // 1 rps, burst 1
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com"); err != nil {
		t.Fatalf("wait failed: %v", err)
	}

	// A different domain has its own token bucket and must not block
	start := time.Now()
	if err := limiter.Wait(ctx, "http://other.com"); err != nil {
		t.Fatalf("wait failed: %v", err)
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Errorf("expected other domain to pass immediately, took %v", time.Since(start))
	}
}

func TestLimiter_SameDomainSharesLimiter(t *testing.T) {
	limiter := NewLimiter(10, 1)

	a := limiter.getLimiter("example.com")
	b := limiter.getLimiter("example.com")
	if a != b {
		t.Error("expected the same limiter instance for a domain")
	}

	c := limiter.getLimiter("other.com")
	if a == c {
		t.Error("expected a separate limiter per domain")
	}
}

func TestExtractDomain(t *testing.T) {
	domain, err := extractDomain("http://example.com/foo")
	if err != nil {
		t.Fatalf("extractDomain failed: %v", err)
	}
	if domain != "example.com" {
		t.Errorf("expected example.com, got %s", domain)
	}

	_, err = extractDomain("::invalid")
	if err == nil {
		t.Errorf("expected error for invalid URL")
	}
}
