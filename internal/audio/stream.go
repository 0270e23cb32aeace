// Package audio owns the single active preview stream and its fade
// transitions. At most one stream is ever audible; starting a new one
// silently supersedes whatever was playing.
package audio

// Stream is one playable preview. Level is linear, 0 (silent) to 1 (full).
type Stream interface {
	// Start begins playback. It returns once audio is audible; it does
	// not wait for any fade to complete.
	Start() error
	Pause()
	Resume() error
	SetLevel(level float64)
	Close()
}

// Factory creates a stream for a preview URL.
type Factory func(url string) (Stream, error)
