package synth

import (
	"context"
	"sync"
)

// MockEngine is a test double that fabricates audio bytes and records every
// synthesis call, so tests can assert whether the cache-miss path was taken.
type MockEngine struct {
	mu sync.Mutex

	// Calls records the text of each Synthesize invocation, in order.
	Calls []string

	// Audio is returned on success. Defaults to a small non-empty payload.
	Audio []byte

	// Err, when set, makes every Synthesize call fail.
	Err error

	// ValidateErr, when set, makes Validate fail.
	ValidateErr error
}

// NewMockEngine returns a mock that succeeds with placeholder audio.
func NewMockEngine() *MockEngine {
	return &MockEngine{Audio: []byte("mock-mp3-audio")}
}

// Name implements Engine.
func (m *MockEngine) Name() string { return "mock" }

// Synthesize implements Engine.
func (m *MockEngine) Synthesize(_ context.Context, text string) ([]byte, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, text)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Audio, nil
}

// Validate implements Engine.
func (m *MockEngine) Validate() error { return m.ValidateErr }

// CallCount returns how many synthesis calls were made.
func (m *MockEngine) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

var _ Engine = (*MockEngine)(nil)
