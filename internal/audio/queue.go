package audio

// Player accepts cues to play. Playing never fails from the caller's side.
type Player interface {
	Play(c Cue)
}

// Queue collects the cues produced while handling one request so the
// rendered screen can play them. The zero value is ready to use.
type Queue struct {
	cues []Cue
}

func (q *Queue) Play(c Cue) {
	if _, ok := ParseCue(string(c)); !ok {
		return
	}
	q.cues = append(q.cues, c)
}

// Cues returns the queued cues in play order.
func (q *Queue) Cues() []Cue {
	if q == nil {
		return nil
	}
	return append([]Cue(nil), q.cues...)
}
