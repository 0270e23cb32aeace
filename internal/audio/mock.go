package audio

import "sync"

// MockStream is a test double recording the calls a controller makes.
type MockStream struct {
	mu        sync.Mutex
	URL       string
	Levels    []float64
	Started   bool
	Paused    bool
	Closed    bool
	StartErr  error
	ResumeErr error
}

func (m *MockStream) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StartErr != nil {
		return m.StartErr
	}
	m.Started = true
	return nil
}

func (m *MockStream) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Paused = true
}

func (m *MockStream) Resume() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ResumeErr != nil {
		return m.ResumeErr
	}
	m.Paused = false
	return nil
}

func (m *MockStream) SetLevel(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Levels = append(m.Levels, level)
}

func (m *MockStream) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
}

// LastLevel returns the most recently set level, or 0 if none.
func (m *MockStream) LastLevel() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Levels) == 0 {
		return 0
	}
	return m.Levels[len(m.Levels)-1]
}

// LevelCount returns how many times SetLevel was called.
func (m *MockStream) LevelCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Levels)
}

// NewMockFactory returns a Factory handing out fresh MockStreams and a
// function to inspect every stream created so far.
func NewMockFactory() (Factory, func() []*MockStream) {
	var mu sync.Mutex
	var streams []*MockStream

	factory := func(url string) (Stream, error) {
		mu.Lock()
		defer mu.Unlock()
		s := &MockStream{URL: url}
		streams = append(streams, s)
		return s, nil
	}
	created := func() []*MockStream {
		mu.Lock()
		defer mu.Unlock()
		out := make([]*MockStream, len(streams))
		copy(out, streams)
		return out
	}
	return factory, created
}
