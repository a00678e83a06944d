package resilience

import (
	"testing"
	"time"
)

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	b := NewCircuitBreaker(2, time.Minute, 1)

	if err := b.Allow(); err != nil {
		t.Fatalf("closed breaker should allow: %v", err)
	}
	b.RecordFailure()
	if b.State() != CircuitStateClosed {
		t.Fatalf("one failure should not open, state=%s", b.State())
	}
	b.RecordFailure()
	if b.State() != CircuitStateOpen {
		t.Fatalf("expected open, state=%s", b.State())
	}
	if err := b.Allow(); err != ErrCircuitOpen {
		t.Fatalf("open breaker should reject, got %v", err)
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	b := NewCircuitBreaker(1, 10*time.Millisecond, 1)
	current := time.Now()
	b.now = func() time.Time { return current }

	b.RecordFailure()
	if b.State() != CircuitStateOpen {
		t.Fatalf("expected open, state=%s", b.State())
	}

	current = current.Add(20 * time.Millisecond)
	if err := b.Allow(); err != nil {
		t.Fatalf("half-open probe should be allowed: %v", err)
	}
	if b.State() != CircuitStateHalfOpen {
		t.Fatalf("expected half_open, state=%s", b.State())
	}

	b.RecordSuccess()
	if b.State() != CircuitStateClosed {
		t.Fatalf("expected closed after probe success, state=%s", b.State())
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	b := NewCircuitBreaker(1, 10*time.Millisecond, 1)
	current := time.Now()
	b.now = func() time.Time { return current }

	b.RecordFailure()
	current = current.Add(20 * time.Millisecond)
	if err := b.Allow(); err != nil {
		t.Fatalf("half-open probe should be allowed: %v", err)
	}
	b.RecordFailure()
	if b.State() != CircuitStateOpen {
		t.Fatalf("expected reopened, state=%s", b.State())
	}
}

func TestNormalizeCircuitBreakerConfig(t *testing.T) {
	out := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{})
	if out.FailureThreshold != 5 || out.OpenTimeout != 15*time.Second || out.HalfOpenMaxReq != 2 {
		t.Fatalf("unexpected normalized config: %+v", out)
	}
}
