package rate

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func TestLimiterAllow(t *testing.T) {
	mock := clock.NewMock()
	limiter := NewLimiterWithClock(time.Second, 3, mock)

	for i := 0; i < 3; i++ {
		if !limiter.Allow() {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if limiter.Allow() {
		t.Fatal("request above limit should be denied")
	}
	if got := limiter.Slots(); got != 0 {
		t.Errorf("expected 0 slots, got %d", got)
	}
}

func TestLimiterWindowSlides(t *testing.T) {
	mock := clock.NewMock()
	limiter := NewLimiterWithClock(time.Second, 2, mock)

	if !limiter.Allow() {
		t.Fatal("first request should be allowed")
	}

	mock.Add(500 * time.Millisecond)
	if !limiter.Allow() {
		t.Fatal("second request should be allowed")
	}
	if limiter.Allow() {
		t.Fatal("third request should be denied inside the window")
	}

	// The first request falls out of the window, freeing one slot.
	mock.Add(600 * time.Millisecond)
	if got := limiter.Slots(); got != 1 {
		t.Errorf("expected 1 slot after slide, got %d", got)
	}
	if !limiter.Allow() {
		t.Fatal("request should be allowed after the window slid")
	}
	if limiter.Allow() {
		t.Fatal("limit reached again, request should be denied")
	}
}

func TestLimiterFullWindowExpiry(t *testing.T) {
	mock := clock.NewMock()
	limiter := NewLimiterWithClock(time.Second, 2, mock)

	limiter.Allow()
	limiter.Allow()

	mock.Add(2 * time.Second)
	if got := limiter.Slots(); got != 2 {
		t.Errorf("expected full slots after expiry, got %d", got)
	}
}
