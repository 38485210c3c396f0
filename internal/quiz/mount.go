package quiz

// Result is the outcome of one interaction with a mounted level.
type Result struct {
	Correct bool // the interaction solved the question
	Wrong   bool // the interaction was evaluated and rejected
	Award   int  // stars the level will report, set once solved
	Ignored bool // the interaction did not apply (already solved, unknown key, wrong kind)
}

// Mount is the state of one visit to a level: created when the level is
// selected, discarded when the learner leaves it. Each level screen gets a
// fresh Mount, so attempt counts never leak between visits.
type Mount struct {
	Level    int
	Attempts int
	Picks    []string // ordered questions: picks so far
	Count    int      // count questions: taps so far
	Solved   bool
	Award    int
	Reported bool
}

// NewMount starts a fresh visit to the level at index.
func NewMount(level int) Mount {
	return Mount{Level: level}
}

// Correct reports whether keys answer q. Ordered questions compare the
// sequence; count questions are not answered with keys.
func Correct(q Question, keys []string) bool {
	switch q.Kind {
	case KindSingle:
		if len(keys) != 1 {
			return false
		}
		o, ok := q.Option(keys[0])
		return ok && o.Correct
	case KindMulti:
		chosen := map[string]bool{}
		for _, k := range keys {
			if _, ok := q.Option(k); !ok {
				return false
			}
			chosen[k] = true
		}
		for _, o := range q.Options {
			if o.Correct != chosen[o.Key] {
				return false
			}
		}
		return true
	case KindOrdered:
		if len(keys) != len(q.Order) {
			return false
		}
		for i, k := range keys {
			if q.Order[i] != k {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Submit submits a complete answer for single, multi and ordered questions.
func (m *Mount) Submit(q Question, keys []string) Result {
	if m.Solved || q.Kind == KindCount {
		return Result{Ignored: true}
	}
	return m.evaluate(q, Correct(q, keys))
}

// Pick adds one option to an ordered question. The sequence is evaluated
// once it is as long as the target order; a wrong sequence starts over.
func (m *Mount) Pick(q Question, key string) Result {
	if m.Solved || q.Kind != KindOrdered {
		return Result{Ignored: true}
	}
	if _, ok := q.Option(key); !ok {
		return Result{Ignored: true}
	}
	for _, p := range m.Picks {
		if p == key {
			return Result{Ignored: true}
		}
	}
	m.Picks = append(m.Picks, key)
	if len(m.Picks) < len(q.Order) {
		return Result{}
	}
	res := m.evaluate(q, Correct(q, m.Picks))
	if res.Wrong {
		m.Picks = nil
	}
	return res
}

// Increment counts one tap on a count question; reaching the target solves it.
func (m *Mount) Increment(q Question) Result {
	if m.Solved || q.Kind != KindCount {
		return Result{Ignored: true}
	}
	m.Count++
	if m.Count < q.Target {
		return Result{}
	}
	return m.evaluate(q, true)
}

// Reset clears in-progress picks and counts. Attempts are kept.
func (m *Mount) Reset() {
	if m.Solved {
		return
	}
	m.Picks = nil
	m.Count = 0
}

// Report hands out the award exactly once per mount, and only once solved.
func (m *Mount) Report() (int, bool) {
	if !m.Solved || m.Reported {
		return 0, false
	}
	m.Reported = true
	return m.Award, true
}

func (m *Mount) evaluate(q Question, correct bool) Result {
	m.Attempts++
	if !correct {
		return Result{Wrong: true}
	}
	m.Solved = true
	m.Award = q.Award.StarsFor(m.Attempts)
	return Result{Correct: true, Award: m.Award}
}
