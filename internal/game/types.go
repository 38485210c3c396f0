package game

import "spaceexplorer/internal/quiz"

// Phase is the top-level screen the learner is on.
type Phase string

const (
	PhaseStart   Phase = "start"
	PhaseMap     Phase = "map"
	PhasePlaying Phase = "playing"
	PhaseEnd     Phase = "end"
)

// Session is one play-through. It is only changed through the Engine's
// transition methods; everything else reads it or a Projection of it.
type Session struct {
	Phase        Phase
	CurrentLevel int    // meaningful only while Phase == PhasePlaying
	Completed    []bool // index-aligned with the catalog, fixed length
	Stars        int
	// Seq counts applied transitions and survives restarts, so a deferred
	// transition scheduled against an older state never matches a newer one.
	Seq uint64
}

// Expectation is the state a deferred transition was scheduled against.
type Expectation struct {
	Phase Phase
	Level int
	Seq   uint64
}

// Catalog is the ordered, immutable list of levels for a session.
type Catalog struct {
	Title  string  `yaml:"title"`
	Levels []Level `yaml:"levels"`
}

// Level describes one planet lesson.
type Level struct {
	Index     int           `yaml:"-"`
	Name      string        `yaml:"name"`
	Emoji     string        `yaml:"emoji"`
	Colors    []string      `yaml:"colors"`    // gradient, "#rrggbb"
	NameAudio string        `yaml:"nameAudio"` // clip under <assets>/names/
	Rings     bool          `yaml:"rings"`
	Question  quiz.Question `yaml:"question"`
}
