package resilience

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 1, Burst: 3})

	for i := 0; i < 3; i++ {
		if !rl.Allow() {
			t.Errorf("request %d should be allowed", i)
		}
	}
	if rl.Allow() {
		t.Error("request should be rejected over burst limit")
	}
}

func TestRateLimiter_OnLimitCallback(t *testing.T) {
	var calls atomic.Int32
	rl := NewRateLimiter(RateLimiterConfig{
		Name:    "rtdb",
		Rate:    0.001,
		Burst:   1,
		OnLimit: func(name string) {
			if name != "rtdb" {
				t.Errorf("expected name rtdb, got %q", name)
			}
			calls.Add(1)
		},
	})

	rl.Allow()
	rl.Allow()
	if calls.Load() != 1 {
		t.Errorf("expected 1 OnLimit call, got %d", calls.Load())
	}
}

func TestRateLimiter_Unlimited(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test"})
	if !rl.Unlimited() {
		t.Fatal("zero rate should disable limiting")
	}
	if rl.Rate() != 0 {
		t.Errorf("expected rate 0, got %f", rl.Rate())
	}
	for i := 0; i < 100; i++ {
		if !rl.Allow() {
			t.Fatalf("request %d rejected by unlimited limiter", i)
		}
	}
}

func TestRateLimiter_WaitRespectsContext(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 0.01, Burst: 1})
	rl.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := rl.Wait(ctx); err == nil {
		t.Error("expected Wait to fail before a token is available")
	}
}

func TestRateLimiter_WaitRefills(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 100, Burst: 1})
	rl.Allow()

	start := time.Now()
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("wait took far longer than the refill interval")
	}
}

func TestRateLimiter_Execute(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 0.001, Burst: 1})

	ran := false
	if err := rl.Execute(func() error { ran = true; return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Error("expected fn to run")
	}
	if err := rl.Execute(func() error { return nil }); !errors.Is(err, ErrRateLimited) {
		t.Errorf("expected ErrRateLimited, got %v", err)
	}
}

func TestDefaultRateLimiterConfig(t *testing.T) {
	cfg := DefaultRateLimiterConfig("x")
	rl := NewRateLimiter(cfg)
	if rl.Rate() != 10 {
		t.Errorf("expected rate 10, got %f", rl.Rate())
	}
	if rl.Burst() != 1 {
		t.Errorf("expected burst 1, got %d", rl.Burst())
	}
}
