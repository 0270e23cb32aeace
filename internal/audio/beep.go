package audio

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
)

var speakerInitialized bool

// NewBeepFactory returns a Factory that fetches the preview MP3 over HTTP
// and plays it through the beep speaker.
func NewBeepFactory() Factory {
	client := &http.Client{Timeout: 30 * time.Second}

	return func(url string) (Stream, error) {
		resp, err := client.Get(url)
		if err != nil {
			return nil, fmt.Errorf("fetch preview: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch preview: unexpected status %s", resp.Status)
		}

		streamer, format, err := mp3.Decode(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("decode preview: %w", err)
		}

		if !speakerInitialized {
			if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
				streamer.Close()
				return nil, fmt.Errorf("init speaker: %w", err)
			}
			speakerInitialized = true
		}

		ctrl := &beep.Ctrl{Streamer: streamer}
		vol := &effects.Volume{Streamer: ctrl, Base: 2, Volume: -10, Silent: true}

		return &beepStream{ctrl: ctrl, vol: vol, streamer: streamer}, nil
	}
}

type beepStream struct {
	ctrl     *beep.Ctrl
	vol      *effects.Volume
	streamer beep.StreamSeekCloser
}

func (b *beepStream) Start() error {
	speaker.Play(b.vol)
	return nil
}

func (b *beepStream) Pause() {
	speaker.Lock()
	b.ctrl.Paused = true
	speaker.Unlock()
}

func (b *beepStream) Resume() error {
	speaker.Lock()
	b.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

func (b *beepStream) SetLevel(level float64) {
	speaker.Lock()
	b.vol.Silent = level <= 0
	b.vol.Volume = levelToVolume(level)
	speaker.Unlock()
}

func (b *beepStream) Close() {
	speaker.Lock()
	b.ctrl.Paused = true
	speaker.Unlock()
	// A closed streamer drains immediately, so the mixer drops it.
	b.streamer.Close()
}

// levelToVolume converts a linear 0..1 level to beep's log scale, where
// 0 means unchanged and each -1 halves the volume.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
