package circuitbreaker_test

import (
	"errors"
	"testing"
	"time"

	"bookshelf/internal/resilience/circuitbreaker"

	"github.com/sony/gobreaker"
)

func TestExecuteSuccess(t *testing.T) {
	t.Parallel()

	cb := circuitbreaker.New(circuitbreaker.DefaultConfig("test"))

	result, err := cb.Execute(func() (interface{}, error) {
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result != "ok" {
		t.Errorf("result = %v, want ok", result)
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("state = %v, want closed", cb.State())
	}
}

func TestExecutePassesError(t *testing.T) {
	t.Parallel()

	cb := circuitbreaker.New(circuitbreaker.DefaultConfig("test"))
	wantErr := errors.New("boom")

	_, err := cb.Execute(func() (interface{}, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
}

func TestTripsAfterThreshold(t *testing.T) {
	t.Parallel()

	cfg := circuitbreaker.Config{
		Name:             "trip-test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 1.0,
		MinRequests:      3,
	}
	cb := circuitbreaker.New(cfg)

	for i := 0; i < 3; i++ {
		cb.Execute(func() (interface{}, error) {
			return nil, errors.New("down")
		})
	}

	if !cb.IsOpen() {
		t.Fatalf("breaker not open after %d consecutive failures, state = %v", 3, cb.State())
	}

	_, err := cb.Execute(func() (interface{}, error) {
		t.Error("function called while circuit open")
		return nil, nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want ErrOpenState", err)
	}
}

func TestStaysClosedBelowMinRequests(t *testing.T) {
	t.Parallel()

	cfg := circuitbreaker.Config{
		Name:             "min-requests-test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      10,
	}
	cb := circuitbreaker.New(cfg)

	for i := 0; i < 9; i++ {
		cb.Execute(func() (interface{}, error) {
			return nil, errors.New("down")
		})
	}

	if cb.IsOpen() {
		t.Error("breaker opened below MinRequests")
	}
}

func TestName(t *testing.T) {
	t.Parallel()

	cb := circuitbreaker.New(circuitbreaker.DefaultConfig("books-db"))
	if cb.Name() != "books-db" {
		t.Errorf("Name() = %q, want books-db", cb.Name())
	}
}
