package signal

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	rl := NewMessageRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("c1") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if rl.Allow("c1") {
		t.Fatal("attempt over the limit should be denied")
	}
	if !rl.Allow("c2") {
		t.Fatal("limits are per connection")
	}
}

func TestRateLimiterWindowSlides(t *testing.T) {
	rl := NewMessageRateLimiter(1, 30*time.Millisecond)

	if !rl.Allow("c1") {
		t.Fatal("first attempt should pass")
	}
	if rl.Allow("c1") {
		t.Fatal("second attempt inside window should be denied")
	}
	time.Sleep(50 * time.Millisecond)
	if !rl.Allow("c1") {
		t.Fatal("attempt after window lapse should pass")
	}
}

func TestRateLimiterZeroLimitDisables(t *testing.T) {
	rl := NewMessageRateLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		if !rl.Allow("c1") {
			t.Fatal("zero limit means no limiting")
		}
	}
}

func TestRateLimiterForget(t *testing.T) {
	rl := NewMessageRateLimiter(1, time.Minute)
	rl.Allow("c1")
	rl.Forget("c1")
	if !rl.Allow("c1") {
		t.Fatal("forgotten connection starts a fresh window")
	}
}
