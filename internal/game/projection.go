package game

// LevelView is one planet as the map screen sees it.
type LevelView struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Emoji     string `json:"emoji"`
	Completed bool   `json:"completed"`
	Locked    bool   `json:"locked"`
	Next      bool   `json:"next"` // the rocket sits here
}

// Projection is the read-only view of a Session handed to renderers.
type Projection struct {
	Phase           Phase       `json:"phase"`
	Title           string      `json:"title"`
	Levels          []LevelView `json:"levels"`
	Stars           int         `json:"stars"`
	CompletedCount  int         `json:"completedCount"`
	LevelCount      int         `json:"levelCount"`
	RocketIndex     int         `json:"rocketIndex"`
	ProgressPercent int         `json:"progressPercent"`
	Current         *LevelView  `json:"current,omitempty"` // only while playing
}

// Project builds the renderer view of st.
func (e *Engine) Project(st Session) Projection {
	rocket := st.NextUnlockedIndex()
	p := Projection{
		Phase:          st.Phase,
		Levels:         make([]LevelView, len(st.Completed)),
		Stars:          st.Stars,
		CompletedCount: st.CompletedCount(),
		LevelCount:     len(st.Completed),
		RocketIndex:    rocket,
	}
	if e.Catalog != nil {
		p.Title = e.Catalog.Title
	}
	if p.LevelCount > 0 {
		p.ProgressPercent = p.CompletedCount * 100 / p.LevelCount
	}
	for i := range st.Completed {
		v := LevelView{
			Index:     i,
			Completed: st.Completed[i],
			Locked:    !st.Unlocked(i),
			Next:      i == rocket,
		}
		if lvl := e.Catalog.Level(i); lvl != nil {
			v.Name = lvl.Name
			v.Emoji = lvl.Emoji
		}
		p.Levels[i] = v
	}
	if st.Phase == PhasePlaying && st.CurrentLevel >= 0 && st.CurrentLevel < len(p.Levels) {
		cur := p.Levels[st.CurrentLevel]
		p.Current = &cur
	}
	return p
}
