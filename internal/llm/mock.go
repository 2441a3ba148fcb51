package llm

import (
	"context"
	"sync"
)

// MockResponse is one scripted reply.
type MockResponse struct {
	Text string
	Err  error
}

// MockClient implements Client for testing purposes.
// Scripted responses are consumed in order; once exhausted, the default
// text is returned. Every call is recorded.
type MockClient struct {
	mu sync.Mutex

	responses   []MockResponse
	fn          func(call int, req Request) (string, error)
	defaultText string
	err         error
	failAfter   int
	failErr     error
	available   bool

	// Calls records every request in order.
	Calls []Request
}

// NewMockClient creates a new MockClient with default settings.
// By default, it is available and returns an empty string.
func NewMockClient() *MockClient {
	return &MockClient{
		available: true,
		failAfter: -1,
		Calls:     make([]Request, 0),
	}
}

// WithResponses appends scripted successful replies.
func (m *MockClient) WithResponses(texts ...string) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range texts {
		m.responses = append(m.responses, MockResponse{Text: t})
	}
	return m
}

// WithResponse appends one scripted reply, which may be an error.
func (m *MockClient) WithResponse(text string, err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, MockResponse{Text: text, Err: err})
	return m
}

// WithDefault configures the text returned once scripted replies run out.
func (m *MockClient) WithDefault(text string) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultText = text
	return m
}

// WithFunc configures a responder consulted before the script.
// call is the zero-based call index.
func (m *MockClient) WithFunc(fn func(call int, req Request) (string, error)) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fn = fn
	return m
}

// WithError configures the error returned by every call.
func (m *MockClient) WithError(err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithFailAfter makes every call with index >= n return err.
func (m *MockClient) WithFailAfter(n int, err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failAfter = n
	m.failErr = err
	return m
}

// WithAvailable configures whether Available() returns true or false.
func (m *MockClient) WithAvailable(available bool) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.available = available
	return m
}

// Generate implements Client.Generate.
func (m *MockClient) Generate(ctx context.Context, req Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := len(m.Calls)
	m.Calls = append(m.Calls, req)

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.err != nil {
		return "", m.err
	}
	if m.failAfter >= 0 && call >= m.failAfter {
		return "", m.failErr
	}
	if m.fn != nil {
		return m.fn(call, req)
	}
	if len(m.responses) > 0 {
		r := m.responses[0]
		m.responses = m.responses[1:]
		return r.Text, r.Err
	}
	return m.defaultText, nil
}

// Available implements Client.Available.
func (m *MockClient) Available() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.available
}

// CallCount returns the number of times Generate was called.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastRequest returns the most recent request, or a zero Request.
func (m *MockClient) LastRequest() Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return Request{}
	}
	return m.Calls[len(m.Calls)-1]
}

// Reset clears call tracking and configured responses.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = nil
	m.fn = nil
	m.defaultText = ""
	m.err = nil
	m.failAfter = -1
	m.failErr = nil
	m.available = true
	m.Calls = make([]Request, 0)
}
