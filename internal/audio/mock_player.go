package audio

import (
	"context"
	"sync"
)

// MockPlayer is a test double recording every clip handed to the sink.
type MockPlayer struct {
	mu sync.Mutex

	// Played holds the payload of each successful Play call.
	Played [][]byte

	// Err, when set, makes every Play call fail. FailN, when positive, fails
	// only the first N calls and then clears Err behavior, which lets tests
	// exercise the hit-playback-fails-then-resynthesize fallback.
	Err   error
	FailN int

	closed bool
}

// NewMockPlayer returns a player that always succeeds.
func NewMockPlayer() *MockPlayer {
	return &MockPlayer{}
}

// Play implements Player.
func (m *MockPlayer) Play(_ context.Context, mp3 []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		if m.FailN == 0 {
			return m.Err
		}
		m.FailN--
		err := m.Err
		if m.FailN == 0 {
			m.Err = nil
		}
		return err
	}

	buf := make([]byte, len(mp3))
	copy(buf, mp3)
	m.Played = append(m.Played, buf)
	return nil
}

// Close implements Player.
func (m *MockPlayer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// PlayCount returns how many clips were played successfully.
func (m *MockPlayer) PlayCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Played)
}

var _ Player = (*MockPlayer)(nil)
