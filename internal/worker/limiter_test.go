package worker

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLimiter_PerHostBudgets(t *testing.T) {
	limiter := NewLimiter(0.01, 1)

	if !limiter.Allow("https://maps.archive-a.org/index") {
		t.Error("First request to archive-a should be allowed")
	}
	if limiter.Allow("https://maps.archive-a.org/sheet-7") {
		t.Error("Second immediate request to archive-a should be throttled")
	}
	if !limiter.Allow("https://maps.archive-b.org/index") {
		t.Error("archive-b has its own budget and should be allowed")
	}
}

func TestLimiter_BurstClamped(t *testing.T) {
	limiter := NewLimiter(0.01, -3)

	if !limiter.Allow("https://maps.archive.example/") {
		t.Error("Clamped burst should still allow one request")
	}
	if limiter.Allow("https://maps.archive.example/") {
		t.Error("Burst clamped to 1 should throttle the second request")
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(100, 1)
	delay := 50 * time.Millisecond

	start := time.Now()
	if err := limiter.WaitWithDelay(context.Background(), "https://maps.archive.example/index", delay); err != nil {
		t.Fatalf("WaitWithDelay: %v", err)
	}
	if elapsed := time.Since(start); elapsed < delay {
		t.Errorf("Expected crawl delay of at least %v, waited %v", delay, elapsed)
	}
}

func TestLimiter_WaitWithDelayCanceled(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := limiter.WaitWithDelay(ctx, "https://maps.archive.example/index", time.Second)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected DeadlineExceeded, got %v", err)
	}
}

func TestLimiter_BadURL(t *testing.T) {
	limiter := NewLimiter(100, 1)

	if err := limiter.Wait(context.Background(), "https://maps.archive.example/%zz"); err == nil {
		t.Error("Expected error for unparseable URL")
	}
	if limiter.Allow("https://maps.archive.example/%zz") {
		t.Error("Unparseable URL should not be allowed")
	}
}
