// Package audio synthesizes the game's cue sounds and tracks which cues a
// rendered screen should play.
package audio

import (
	"math"
)

// Cue names one short sound effect.
type Cue string

const (
	CueSuccess Cue = "success"
	CueWrong   Cue = "wrong"
	CueClick   Cue = "click"
	CueRocket  Cue = "rocket"
	CueAmbient Cue = "ambient"
)

// Cues lists every cue the service can synthesize.
var Cues = []Cue{CueSuccess, CueWrong, CueClick, CueRocket, CueAmbient}

// ParseCue maps a URL segment to a Cue.
func ParseCue(s string) (Cue, bool) {
	for _, c := range Cues {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

type waveform int

const (
	sine waveform = iota
	sawtooth
)

// voice is one oscillator: a tone from From to To Hz (exponential glide)
// starting at Start seconds, with gain decaying exponentially to 0.01 unless
// Sustain is set.
type voice struct {
	From, To float64
	Wave     waveform
	Start    float64
	Duration float64
	Gain     float64
	Sustain  bool
}

func notes(freqs []float64, stagger, duration, gain float64) []voice {
	vs := make([]voice, len(freqs))
	for i, f := range freqs {
		vs[i] = voice{From: f, To: f, Start: float64(i) * stagger, Duration: duration, Gain: gain}
	}
	return vs
}

// voicesFor returns the oscillators making up c.
func voicesFor(c Cue) []voice {
	switch c {
	case CueSuccess:
		// C5 E5 G5
		return notes([]float64{523.25, 659.25, 783.99}, 0.1, 0.15, 0.3)
	case CueWrong:
		// A4 G4, soft
		return notes([]float64{440, 392}, 0.15, 0.2, 0.15)
	case CueClick:
		return notes([]float64{800}, 0, 0.05, 0.1)
	case CueRocket:
		return []voice{{From: 100, To: 400, Wave: sawtooth, Duration: 0.5, Gain: 0.2}}
	case CueAmbient:
		// 2s of 220Hz is a whole number of cycles, so the clip loops cleanly.
		return []voice{{From: 220, To: 220, Duration: 2, Gain: 0.03, Sustain: true}}
	default:
		return nil
	}
}

// render mixes voices into mono float samples in [-1, 1].
func render(vs []voice, rate int) []float64 {
	end := 0.0
	for _, v := range vs {
		end = math.Max(end, v.Start+v.Duration)
	}
	out := make([]float64, int(math.Ceil(end*float64(rate))))
	dt := 1 / float64(rate)
	for _, v := range vs {
		first := int(v.Start * float64(rate))
		n := int(v.Duration * float64(rate))
		phase := 0.0
		for i := 0; i < n && first+i < len(out); i++ {
			t := float64(i) * dt
			frac := t / v.Duration
			freq := v.From * math.Pow(v.To/v.From, frac)
			gain := v.Gain
			if !v.Sustain {
				gain = v.Gain * math.Pow(0.01/v.Gain, frac)
			}
			var s float64
			switch v.Wave {
			case sawtooth:
				s = 2 * (phase - math.Floor(phase+0.5))
			default:
				s = math.Sin(2 * math.Pi * phase)
			}
			out[first+i] += s * gain
			phase += freq * dt
			phase -= math.Floor(phase)
		}
	}
	for i, s := range out {
		out[i] = math.Max(-1, math.Min(1, s))
	}
	return out
}
