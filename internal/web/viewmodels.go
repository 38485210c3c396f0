package web

import (
	"fmt"
	"html/template"
	"time"

	"spaceexplorer/internal/audio"
	"spaceexplorer/internal/game"
	"spaceexplorer/internal/i18n"
	"spaceexplorer/internal/quiz"
)

// Page is the data every screen renders from. Screen picks the body
// template inside layout.html.
type Page struct {
	Screen string
	L      *i18n.Printer
	P      game.Projection
	Cues   []audio.Cue

	// RefreshMS reloads the page after a deferred transition is due. Zero
	// means no reload.
	RefreshMS int64

	Launching bool       // start screen, rocket on its way
	Level     *LevelPage // level screen only
}

// LevelPage is the level screen: the question and this visit's progress.
type LevelPage struct {
	Level    *game.Level
	Question quiz.Question
	Options  []OptionView
	Count    int
	Moons    []int // one tappable moon per unit of the count target
	Picked   int
	Solved   bool
	Wrong    bool
	Success  string
}

type OptionView struct {
	Key      string
	Label    string
	Emoji    string
	Selected bool // multi: ticked in the last submission
	Pick     int  // ordered: 1-based pick position, 0 when not picked
}

func newLevelPage(lvl *game.Level, m quiz.Mount, res quiz.Result, selected []string) *LevelPage {
	q := lvl.Question
	lp := &LevelPage{
		Level:    lvl,
		Question: q,
		Count:    m.Count,
		Picked:   len(m.Picks),
		Solved:   m.Solved,
		Wrong:    res.Wrong,
	}
	if m.Solved {
		lp.Success = q.Success
	}
	sel := map[string]bool{}
	for _, k := range selected {
		sel[k] = true
	}
	for _, o := range q.Options {
		v := OptionView{Key: o.Key, Label: o.Label, Emoji: o.Emoji, Selected: sel[o.Key] && !res.Wrong}
		for i, p := range m.Picks {
			if p == o.Key {
				v.Pick = i + 1
			}
		}
		lp.Options = append(lp.Options, v)
	}
	for i := 0; i < q.Target; i++ {
		lp.Moons = append(lp.Moons, i+1)
	}
	return lp
}

func refreshAfter(d time.Duration) int64 {
	// Land just after the transition is due.
	return (d + 100*time.Millisecond).Milliseconds()
}

var templateFuncs = template.FuncMap{
	"planetURL": func(index int) string { return fmt.Sprintf("/planets/%d", index) },
	"nameURL":   func(index int) string { return fmt.Sprintf("/audio/names/%d", index) },
	"cueURL":    func(c audio.Cue) string { return "/audio/cues/" + string(c) },
	"selectURL": func(index int) string { return fmt.Sprintf("/levels/%d", index) },
	// meta refresh only takes whole seconds
	"refreshSeconds": func(ms int64) int64 { return (ms + 999) / 1000 },
}
