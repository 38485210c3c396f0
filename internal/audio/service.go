package audio

import (
	"errors"
	"fmt"
	"log"
	"sync"
)

// DefaultSampleRate is used when NewService is given a non-positive rate.
const DefaultSampleRate = 22050

var (
	ErrUnknownCue = errors.New("unknown cue")
	ErrClosed     = errors.New("audio service closed")
)

// Service owns the synthesized cue clips. Clips are rendered on first use
// and kept until Close.
type Service struct {
	rate int

	mu     sync.Mutex
	clips  map[Cue][]byte
	closed bool
}

func NewService(rate int) *Service {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return &Service{rate: rate, clips: map[Cue][]byte{}}
}

// WAV returns the encoded clip for c.
func (s *Service) WAV(c Cue) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if b, ok := s.clips[c]; ok {
		return b, nil
	}
	vs := voicesFor(c)
	if len(vs) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCue, c)
	}
	b, err := encodeWAV(render(vs, s.rate), s.rate)
	if err != nil {
		return nil, fmt.Errorf("synthesize %s: %w", c, err)
	}
	s.clips[c] = b
	return b, nil
}

// Warm renders every cue in the background. Failures are logged only.
func (s *Service) Warm() {
	go func() {
		for _, c := range Cues {
			if _, err := s.WAV(c); err != nil {
				log.Printf("audio warm failed cue=%s error=%v", c, err)
			}
		}
	}()
}

// Close releases the cached clips. Later WAV calls fail with ErrClosed.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.clips = nil
	return nil
}
