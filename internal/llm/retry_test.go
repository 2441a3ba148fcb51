package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry_RetriesServerErrors(t *testing.T) {
	mock := NewMockClient().
		WithResponse("", &StatusError{Code: 503}).
		WithResponse("", &StatusError{Code: 429}).
		WithResponses("ok")

	var waits []time.Duration
	r := NewRetry(mock, RetryConfig{MaxAttempts: 3, InitialDelay: 10 * time.Millisecond, Multiplier: 2}, nil)
	r.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}

	text, err := r.Generate(context.Background(), Request{Prompt: "x"})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if text != "ok" {
		t.Errorf("Generate() = %q, want ok", text)
	}
	if mock.CallCount() != 3 {
		t.Errorf("CallCount() = %d, want 3", mock.CallCount())
	}
	if len(waits) != 2 || waits[0] != 10*time.Millisecond || waits[1] != 20*time.Millisecond {
		t.Errorf("waits = %v, want [10ms 20ms]", waits)
	}
}

func TestRetry_StopsOnNonRetryable(t *testing.T) {
	boom := errors.New("bad request")
	mock := NewMockClient().WithResponse("", boom).WithResponses("never")
	r := NewRetry(mock, DefaultRetryConfig(), nil)
	r.sleep = func(context.Context, time.Duration) error { return nil }

	if _, err := r.Generate(context.Background(), Request{}); !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
	if mock.CallCount() != 1 {
		t.Errorf("CallCount() = %d, want 1", mock.CallCount())
	}
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockClient().WithError(&StatusError{Code: 500})
	r := NewRetry(mock, RetryConfig{MaxAttempts: 2}, nil)
	r.sleep = func(context.Context, time.Duration) error { return nil }

	_, err := r.Generate(context.Background(), Request{})
	var se *StatusError
	if !errors.As(err, &se) || se.Code != 500 {
		t.Errorf("error = %v, want status 500", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("CallCount() = %d, want 2", mock.CallCount())
	}
}

func TestThrottle_SpacesCalls(t *testing.T) {
	mock := NewMockClient().WithDefault("x")
	th := NewThrottle(mock, 20*time.Millisecond)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := th.Generate(context.Background(), Request{}); err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 35*time.Millisecond {
		t.Errorf("3 throttled calls took %v, want at least ~40ms", elapsed)
	}
}

func TestThrottle_CancelledContext(t *testing.T) {
	th := NewThrottle(NewMockClient(), time.Hour)
	ctx := context.Background()
	if _, err := th.Generate(ctx, Request{}); err != nil {
		t.Fatalf("first call should pass: %v", err)
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := th.Generate(cctx, Request{}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestThrottle_Disabled(t *testing.T) {
	th := NewThrottle(NewMockClient().WithDefault("x"), 0)
	for i := 0; i < 100; i++ {
		if _, err := th.Generate(context.Background(), Request{}); err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
	}
}

func TestMockClient_FailAfter(t *testing.T) {
	boom := errors.New("down")
	m := NewMockClient().WithDefault("ok").WithFailAfter(2, boom)
	for i := 0; i < 2; i++ {
		if _, err := m.Generate(context.Background(), Request{}); err != nil {
			t.Fatalf("call %d: unexpected error %v", i, err)
		}
	}
	if _, err := m.Generate(context.Background(), Request{Prompt: "third"}); !errors.Is(err, boom) {
		t.Errorf("call 2 error = %v, want %v", err, boom)
	}
	if m.LastRequest().Prompt != "third" {
		t.Errorf("LastRequest().Prompt = %q, want third", m.LastRequest().Prompt)
	}
	m.Reset()
	if m.CallCount() != 0 {
		t.Errorf("CallCount() after Reset = %d, want 0", m.CallCount())
	}
}
