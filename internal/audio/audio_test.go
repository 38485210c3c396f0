package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestParseCue(t *testing.T) {
	for _, c := range Cues {
		got, ok := ParseCue(string(c))
		if !ok || got != c {
			t.Errorf("ParseCue(%q): expected %q, got %q (ok=%v)", c, c, got, ok)
		}
	}
	if _, ok := ParseCue("explosion"); ok {
		t.Error("Expected unknown cue to be rejected")
	}
}

func TestService_WAVHeader(t *testing.T) {
	s := NewService(8000)
	defer s.Close()

	for _, c := range Cues {
		b, err := s.WAV(c)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c, err)
		}
		if len(b) <= 44 {
			t.Fatalf("%s: expected audio data after the header, got %d bytes", c, len(b))
		}
		if !bytes.Equal(b[0:4], []byte("RIFF")) || !bytes.Equal(b[8:12], []byte("WAVE")) {
			t.Errorf("%s: expected RIFF/WAVE header, got %q", c, b[:12])
		}
		if rate := binary.LittleEndian.Uint32(b[24:28]); rate != 8000 {
			t.Errorf("%s: expected sample rate 8000, got %d", c, rate)
		}
		if dataLen := binary.LittleEndian.Uint32(b[40:44]); int(dataLen) != len(b)-44 {
			t.Errorf("%s: expected data length %d, got %d", c, len(b)-44, dataLen)
		}
	}
}

func TestService_Durations(t *testing.T) {
	s := NewService(10000)
	defer s.Close()

	tests := []struct {
		cue     Cue
		samples int
	}{
		{CueSuccess, 3500}, // last note starts at 0.2s and lasts 0.15s
		{CueWrong, 3500},
		{CueClick, 500},
		{CueRocket, 5000},
		{CueAmbient, 20000},
	}
	for _, tt := range tests {
		b, err := s.WAV(tt.cue)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.cue, err)
		}
		got := (len(b) - 44) / 2
		if got < tt.samples-1 || got > tt.samples+1 {
			t.Errorf("%s: expected about %d samples, got %d", tt.cue, tt.samples, got)
		}
	}
}

func TestService_Caches(t *testing.T) {
	s := NewService(0)
	defer s.Close()

	a, err := s.WAV(CueClick)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	b, _ := s.WAV(CueClick)
	if &a[0] != &b[0] {
		t.Error("Expected the second call to reuse the cached clip")
	}
}

func TestService_Errors(t *testing.T) {
	s := NewService(0)
	if _, err := s.WAV("explosion"); !errors.Is(err, ErrUnknownCue) {
		t.Errorf("Expected ErrUnknownCue, got %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Unexpected error on Close: %v", err)
	}
	if _, err := s.WAV(CueClick); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
}

func TestRender_StaysInRange(t *testing.T) {
	for _, c := range Cues {
		for i, s := range render(voicesFor(c), 8000) {
			if s < -1 || s > 1 {
				t.Fatalf("%s: sample %d out of range: %f", c, i, s)
			}
		}
	}
}

func TestQueue(t *testing.T) {
	var q Queue
	var p Player = &q
	p.Play(CueClick)
	p.Play("explosion")
	p.Play(CueRocket)

	got := q.Cues()
	if len(got) != 2 || got[0] != CueClick || got[1] != CueRocket {
		t.Errorf("Expected [click rocket], got %v", got)
	}

	var nilQueue *Queue
	if nilQueue.Cues() != nil {
		t.Error("Expected nil queue to have no cues")
	}
}
