package infra

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRequestDeduplicator_Do_SingleRequest(t *testing.T) {
	d := NewRequestDeduplicator()

	called := 0
	result, shared, err := d.Do(context.Background(), "key1", func() (interface{}, error) {
		called++
		return "value1", nil
	})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if shared {
		t.Error("expected shared=false for single request")
	}
	if result != "value1" {
		t.Errorf("expected result='value1', got %v", result)
	}
	if called != 1 {
		t.Errorf("expected function to be called once, got %d", called)
	}
}

func TestRequestDeduplicator_Do_ConcurrentRequests(t *testing.T) {
	d := NewRequestDeduplicator()

	var callCount int32
	var wg sync.WaitGroup

	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, _, err := d.Do(context.Background(), "shared-key", func() (interface{}, error) {
				atomic.AddInt32(&callCount, 1)
				time.Sleep(50 * time.Millisecond)
				return "shared-value", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if result != "shared-value" {
				t.Errorf("expected 'shared-value', got %v", result)
			}
		}()
	}

	wg.Wait()

	if atomic.LoadInt32(&callCount) != 1 {
		t.Errorf("expected function to be called once, got %d", callCount)
	}
}

func TestRequestDeduplicator_Do_DifferentKeys(t *testing.T) {
	d := NewRequestDeduplicator()

	var callCount int32
	var wg sync.WaitGroup

	for i := range 5 {
		wg.Add(1)
		key := "key-" + string(rune('a'+i))
		go func(k string) {
			defer wg.Done()
			_, _, err := d.Do(context.Background(), k, func() (interface{}, error) {
				atomic.AddInt32(&callCount, 1)
				time.Sleep(20 * time.Millisecond)
				return k, nil
			})
			if err != nil {
				t.Errorf("unexpected error for key %s: %v", k, err)
			}
		}(key)
	}

	wg.Wait()

	if atomic.LoadInt32(&callCount) != 5 {
		t.Errorf("expected 5 calls for different keys, got %d", callCount)
	}
}

func TestRequestDeduplicator_Do_ErrorPropagation(t *testing.T) {
	d := NewRequestDeduplicator()

	expectedErr := errors.New("test error")
	result, _, err := d.Do(context.Background(), "error-key", func() (interface{}, error) {
		return nil, expectedErr
	})

	if err != expectedErr {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
	if result != nil {
		t.Errorf("expected nil result, got %v", result)
	}
}

func TestRequestDeduplicator_Do_ContextCancellation(t *testing.T) {
	d := NewRequestDeduplicator()

	go func() {
		_, _, _ = d.Do(context.Background(), "slow-key", func() (interface{}, error) {
			time.Sleep(500 * time.Millisecond)
			return "slow-value", nil
		})
	}()

	// Give the first request time to register
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := d.Do(ctx, "slow-key", func() (interface{}, error) {
		return "should-not-call", nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled error, got %v", err)
	}
}

func TestRequestDeduplicator_Stats(t *testing.T) {
	d := NewRequestDeduplicator()

	if d.Stats() != 0 {
		t.Errorf("expected 0 in-flight, got %d", d.Stats())
	}

	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		close(started)
		_, _, _ = d.Do(context.Background(), "slow-key", func() (interface{}, error) {
			<-done
			return "value", nil
		})
	}()

	<-started
	time.Sleep(10 * time.Millisecond)

	if d.Stats() != 1 {
		t.Errorf("expected 1 in-flight, got %d", d.Stats())
	}

	close(done)
	time.Sleep(10 * time.Millisecond)

	if d.Stats() != 0 {
		t.Errorf("expected 0 in-flight after completion, got %d", d.Stats())
	}
}

func TestNewCircuitBreaker(t *testing.T) {
	cb := NewCircuitBreaker()
	if cb == nil {
		t.Fatal("NewCircuitBreaker returned nil")
	}
	if cb.failureThreshold != 5 {
		t.Errorf("expected failureThreshold=5, got %d", cb.failureThreshold)
	}
	if cb.resetTimeout != 30*time.Second {
		t.Errorf("expected resetTimeout=30s, got %v", cb.resetTimeout)
	}
	if cb.state != CircuitClosed {
		t.Errorf("expected state=Closed, got %v", cb.state)
	}
}

func TestCircuitBreaker_TransitionToOpen(t *testing.T) {
	cb := NewCircuitBreakerWithConfig(3, 1*time.Second, 1)

	cb.RecordFailure()
	cb.RecordFailure()
	if cb.State() != CircuitClosed {
		t.Error("circuit should still be closed after 2 failures")
	}

	cb.RecordFailure()
	if cb.State() != CircuitOpen {
		t.Errorf("circuit should be open after 3 failures, got %v", cb.State())
	}

	if cb.Allow() {
		t.Error("open circuit should reject requests")
	}
}

func TestCircuitBreaker_TransitionToHalfOpen(t *testing.T) {
	cb := NewCircuitBreakerWithConfig(2, 50*time.Millisecond, 1)

	cb.RecordFailure()
	cb.RecordFailure()
	if cb.State() != CircuitOpen {
		t.Fatal("circuit should be open")
	}

	time.Sleep(60 * time.Millisecond)

	if !cb.Allow() {
		t.Error("circuit should allow request after reset timeout")
	}
	if cb.State() != CircuitHalfOpen {
		t.Errorf("circuit should be half-open, got %v", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenToClose(t *testing.T) {
	cb := NewCircuitBreakerWithConfig(2, 10*time.Millisecond, 1)

	cb.RecordFailure()
	cb.RecordFailure()
	time.Sleep(20 * time.Millisecond)

	cb.Allow()
	if cb.State() != CircuitHalfOpen {
		t.Fatal("circuit should be half-open")
	}

	cb.RecordSuccess()
	if cb.State() != CircuitClosed {
		t.Errorf("circuit should be closed after success in half-open, got %v", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenToOpen(t *testing.T) {
	cb := NewCircuitBreakerWithConfig(2, 10*time.Millisecond, 1)

	cb.RecordFailure()
	cb.RecordFailure()
	time.Sleep(20 * time.Millisecond)

	cb.Allow()
	if cb.State() != CircuitHalfOpen {
		t.Fatal("circuit should be half-open")
	}

	cb.RecordFailure()
	if cb.State() != CircuitOpen {
		t.Errorf("circuit should be open after failure in half-open, got %v", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenMaxRequests(t *testing.T) {
	cb := NewCircuitBreakerWithConfig(2, 10*time.Millisecond, 2)

	cb.RecordFailure()
	cb.RecordFailure()
	time.Sleep(20 * time.Millisecond)

	// First request transitions Open -> HalfOpen and does not count against max
	if !cb.Allow() {
		t.Error("first request (transition) should be allowed")
	}
	if !cb.Allow() {
		t.Error("second request should be allowed")
	}
	if !cb.Allow() {
		t.Error("third request should be allowed (halfOpenMax=2)")
	}
	if cb.Allow() {
		t.Error("fourth request should be rejected (max=2 reached)")
	}
}

func TestCircuitBreaker_RecordSuccessResetsFails(t *testing.T) {
	cb := NewCircuitBreakerWithConfig(5, 1*time.Second, 1)

	cb.RecordFailure()
	cb.RecordFailure()
	cb.RecordFailure()

	cb.RecordSuccess()

	cb.RecordFailure()
	cb.RecordFailure()
	cb.RecordFailure()
	cb.RecordFailure()
	if cb.State() != CircuitClosed {
		t.Error("circuit should still be closed after 4 failures post-success")
	}

	cb.RecordFailure()
	if cb.State() != CircuitOpen {
		t.Error("circuit should be open after 5 failures")
	}
}

func TestCircuitBreaker_Stats(t *testing.T) {
	cb := NewCircuitBreaker()

	stats := cb.Stats()
	if stats.State != "closed" {
		t.Errorf("expected state='closed', got %q", stats.State)
	}
	if stats.ConsecutiveFails != 0 {
		t.Errorf("expected 0 consecutive fails, got %d", stats.ConsecutiveFails)
	}

	cb.RecordFailure()
	cb.RecordFailure()

	stats = cb.Stats()
	if stats.ConsecutiveFails != 2 {
		t.Errorf("expected 2 consecutive fails, got %d", stats.ConsecutiveFails)
	}
	if stats.LastFailure.IsZero() {
		t.Error("LastFailure should be set")
	}
}

func TestCircuitState_String(t *testing.T) {
	tests := []struct {
		state    CircuitState
		expected string
	}{
		{CircuitClosed, "closed"},
		{CircuitOpen, "open"},
		{CircuitHalfOpen, "half-open"},
		{CircuitState(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("CircuitState(%d).String() = %q, want %q", tt.state, got, tt.expected)
		}
	}
}

func TestErrCircuitOpen_Error(t *testing.T) {
	err := ErrCircuitOpen{
		State:    "open",
		RetryAt:  time.Now().Add(30 * time.Second),
		Failures: 5,
	}

	if !strings.Contains(err.Error(), "circuit breaker is open") {
		t.Errorf("error message should mention the open circuit, got %q", err.Error())
	}
}

func TestCircuitBreaker_ConcurrencySafety(t *testing.T) {
	cb := NewCircuitBreakerWithConfig(10, 100*time.Millisecond, 5)

	var wg sync.WaitGroup

	for range 100 {
		wg.Add(3)

		go func() {
			defer wg.Done()
			cb.Allow()
		}()

		go func() {
			defer wg.Done()
			cb.RecordSuccess()
		}()

		go func() {
			defer wg.Done()
			cb.RecordFailure()
		}()
	}

	wg.Wait()

	state := cb.State()
	if state != CircuitClosed && state != CircuitOpen && state != CircuitHalfOpen {
		t.Errorf("unexpected state: %v", state)
	}
}

func TestRequestDeduplicator_ConcurrencySafety(t *testing.T) {
	d := NewRequestDeduplicator()

	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)
		key := "key-" + string(rune('a'+i%10))
		go func(k string) {
			defer wg.Done()
			_, _, _ = d.Do(context.Background(), k, func() (interface{}, error) {
				time.Sleep(10 * time.Millisecond)
				return k, nil
			})
		}(key)
	}

	wg.Wait()

	if d.Stats() != 0 {
		t.Errorf("expected 0 in-flight after all complete, got %d", d.Stats())
	}
}
