package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(now *time.Time) *CircuitBreaker {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   1,
	})
	b.now = func() time.Time { return *now }
	return b
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open trial request to pass, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second trial request to be rejected, got %v", err)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open trial request, got %s", state)
	}
}

func TestCircuitBreaker_ExecuteCountsOnlyFailures(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)

	errDenied := errors.New("denied")
	errTransient := errors.New("transient")
	isFailure := func(err error) bool { return errors.Is(err, errTransient) }

	for i := 0; i < 3; i++ {
		if err := b.Execute(func() error { return errDenied }, isFailure); !errors.Is(err, errDenied) {
			t.Fatalf("expected caller error passed through, got %v", err)
		}
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("non-failure errors must not open the breaker, got %s", state)
	}

	for i := 0; i < 2; i++ {
		_ = b.Execute(func() error { return errTransient }, isFailure)
	}
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after transient failures, got %s", state)
	}

	called := false
	err := b.Execute(func() error { called = true; return nil }, isFailure)
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected open breaker to short-circuit, err=%v called=%v", err, called)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)

	b.RecordFailure()
	b.RecordFailure()
	now = now.Add(5 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected trial request allowed, got %v", err)
	}
	b.RecordFailure()

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected reopened breaker, got %v", err)
	}
}
