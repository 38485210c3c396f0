package game

import (
	"fmt"
)

// Engine applies session transitions against a level catalog. It holds no
// session state itself: every method takes a Session and returns the next one.
type Engine struct {
	Catalog *Catalog
}

// StepResult is the outcome of one transition. Applied is false when the
// transition was not legal in the given state; State is then unchanged.
type StepResult struct {
	State      Session
	Applied    bool
	FirstClear bool // CompleteLevel only: the level had not been completed before
	Credited   int  // CompleteLevel only: stars added to the session
}

// NewSession returns the initial state for a catalog of levelCount levels.
func NewSession(levelCount int) Session {
	if levelCount < 0 {
		levelCount = 0
	}
	return Session{
		Phase:     PhaseStart,
		Completed: make([]bool, levelCount),
	}
}

// NewSession returns the initial state for the engine's catalog.
func (e *Engine) NewSession() Session {
	return NewSession(e.Catalog.Len())
}

// Start leaves the start screen for the map. From any other phase it is a
// no-op, so a late start never drags a finished session back to the map.
func (e *Engine) Start(st Session) StepResult {
	if st.Phase != PhaseStart {
		return StepResult{State: st}
	}
	st = st.clone()
	st.Phase = PhaseMap
	return applied(st)
}

// SelectLevel enters level index when it is unlocked and the learner is on
// the map. Anything else leaves the session untouched.
func (e *Engine) SelectLevel(st Session, index int) StepResult {
	if st.Phase != PhaseMap || !st.Unlocked(index) {
		return StepResult{State: st}
	}
	st = st.clone()
	st.CurrentLevel = index
	st.Phase = PhasePlaying
	return applied(st)
}

// CompleteLevel finishes the current level with award stars. Only the first
// completion of a level credits stars; negative awards count as zero.
func (e *Engine) CompleteLevel(st Session, award int) StepResult {
	if st.Phase != PhasePlaying || st.CurrentLevel < 0 || st.CurrentLevel >= len(st.Completed) {
		return StepResult{State: st}
	}
	if award < 0 {
		award = 0
	}
	st = st.clone()

	res := StepResult{}
	if !st.Completed[st.CurrentLevel] {
		st.Completed[st.CurrentLevel] = true
		st.Stars += award
		res.FirstClear = true
		res.Credited = award
	}

	if st.AllCompleted() {
		st.Phase = PhaseEnd
	} else {
		st.Phase = PhaseMap
	}
	res.State, res.Applied = bump(st), true
	return res
}

// ReturnToMap abandons the current level without any other effect.
func (e *Engine) ReturnToMap(st Session) StepResult {
	if st.Phase != PhasePlaying {
		return StepResult{State: st}
	}
	st = st.clone()
	st.Phase = PhaseMap
	return applied(st)
}

// Restart resets the session to its initial values. The completion list
// keeps its length.
func (e *Engine) Restart(st Session) StepResult {
	next := NewSession(len(st.Completed))
	next.Seq = st.Seq
	return applied(next)
}

// CurrentLevel returns the catalog entry being played.
func (e *Engine) CurrentLevel(st Session) (*Level, error) {
	if st.Phase != PhasePlaying {
		return nil, fmt.Errorf("no level in play: phase %s", st.Phase)
	}
	lvl := e.Catalog.Level(st.CurrentLevel)
	if lvl == nil {
		return nil, fmt.Errorf("unknown level: %d", st.CurrentLevel)
	}
	return lvl, nil
}

func applied(st Session) StepResult {
	return StepResult{State: bump(st), Applied: true}
}

func bump(st Session) Session {
	st.Seq++
	return st
}

// Unlocked reports whether level index may be selected: the first level
// always, any other level once its predecessor is completed.
func (s Session) Unlocked(index int) bool {
	if index < 0 || index >= len(s.Completed) {
		return false
	}
	return index == 0 || s.Completed[index-1]
}

// AllCompleted reports whether every level is completed. An empty session
// is never complete.
func (s Session) AllCompleted() bool {
	if len(s.Completed) == 0 {
		return false
	}
	for _, c := range s.Completed {
		if !c {
			return false
		}
	}
	return true
}

// CompletedCount returns how many levels are completed.
func (s Session) CompletedCount() int {
	n := 0
	for _, c := range s.Completed {
		if c {
			n++
		}
	}
	return n
}

// NextUnlockedIndex is the first level not yet completed, or the last level
// once everything is done. It places the rocket on the map and is always
// derived from Completed, never stored.
func (s Session) NextUnlockedIndex() int {
	for i, c := range s.Completed {
		if !c {
			return i
		}
	}
	if len(s.Completed) == 0 {
		return 0
	}
	return len(s.Completed) - 1
}

// Expect captures the state a deferred transition must still find.
func (s Session) Expect() Expectation {
	return Expectation{Phase: s.Phase, Level: s.CurrentLevel, Seq: s.Seq}
}

// Matches reports whether the session is still in the expected state.
func (s Session) Matches(x Expectation) bool {
	if s.Phase != x.Phase || s.Seq != x.Seq {
		return false
	}
	return s.Phase != PhasePlaying || s.CurrentLevel == x.Level
}

func (s Session) clone() Session {
	s.Completed = append([]bool(nil), s.Completed...)
	return s
}
