// Package quiz is the level template: one quiz engine driven by a declarative
// question descriptor. Every planet lesson is a Question plus an award policy;
// the engine tracks one visit ("mount") to a level and reports its award at
// most once.
package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects the interaction model of a question.
type Kind string

const (
	KindSingle  Kind = "single"  // pick the one correct option
	KindMulti   Kind = "multi"   // select exactly the correct set
	KindOrdered Kind = "ordered" // pick options in the target order
	KindCount   Kind = "count"   // count up to the target
)

// Award policies.
const (
	PolicyFixed    = "fixed"
	PolicyAttempts = "attempts"
)

// DefaultStars is the award of a fixed policy with no explicit star count,
// and the best award of the attempts policy.
const DefaultStars = 3

var (
	ErrUnknownKind   = errors.New("unknown question kind")
	ErrNoPrompt      = errors.New("question prompt is required")
	ErrTooFewOptions = errors.New("question needs at least two options")
	ErrCorrectCount  = errors.New("question has the wrong number of correct options")
	ErrBadOrder      = errors.New("question order is invalid")
	ErrBadTarget     = errors.New("question target must be positive")
	ErrBadAward      = errors.New("question award policy is invalid")
	ErrDuplicateKey  = errors.New("question option keys must be unique")
)

// Option is one selectable answer.
type Option struct {
	Key     string `yaml:"key"`
	Label   string `yaml:"label"`
	Emoji   string `yaml:"emoji"`
	Correct bool   `yaml:"correct"`
}

// Award describes how many stars a solved question reports.
type Award struct {
	Policy string `yaml:"policy"` // "fixed" | "attempts"
	Stars  int    `yaml:"stars"`  // fixed policy only
}

// Question is the declarative descriptor of one lesson.
type Question struct {
	Kind    Kind     `yaml:"kind"`
	Prompt  string   `yaml:"prompt"`
	Hint    string   `yaml:"hint"`
	Options []Option `yaml:"options"`
	Order   []string `yaml:"order"`  // ordered kind: option keys in target order
	Target  int      `yaml:"target"` // count kind
	Award   Award    `yaml:"award"`
	Success string   `yaml:"success"` // shown while the success state is on screen
}

// Validate checks the question is answerable for its kind.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return ErrNoPrompt
	}
	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if o.Key == "" || seen[o.Key] {
			return fmt.Errorf("%w: %q", ErrDuplicateKey, o.Key)
		}
		seen[o.Key] = true
	}

	switch q.Kind {
	case KindSingle:
		if len(q.Options) < 2 {
			return ErrTooFewOptions
		}
		if n := q.correctCount(); n != 1 {
			return fmt.Errorf("%w: single choice has %d", ErrCorrectCount, n)
		}
	case KindMulti:
		if len(q.Options) < 2 {
			return ErrTooFewOptions
		}
		if q.correctCount() == 0 {
			return fmt.Errorf("%w: multi select has none", ErrCorrectCount)
		}
	case KindOrdered:
		if len(q.Order) < 2 {
			return fmt.Errorf("%w: needs at least two entries", ErrBadOrder)
		}
		used := map[string]bool{}
		for _, k := range q.Order {
			if !seen[k] || used[k] {
				return fmt.Errorf("%w: key %q", ErrBadOrder, k)
			}
			used[k] = true
		}
	case KindCount:
		if q.Target <= 0 {
			return ErrBadTarget
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, q.Kind)
	}

	switch q.Award.Policy {
	case "", PolicyFixed, PolicyAttempts:
	default:
		return fmt.Errorf("%w: %q", ErrBadAward, q.Award.Policy)
	}
	if q.Award.Stars < 0 {
		return fmt.Errorf("%w: negative stars", ErrBadAward)
	}
	return nil
}

func (q Question) correctCount() int {
	n := 0
	for _, o := range q.Options {
		if o.Correct {
			n++
		}
	}
	return n
}

// Option returns the option with the given key.
func (q Question) Option(key string) (Option, bool) {
	for _, o := range q.Options {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}

// StarsFor returns the award for a question solved on the given attempt (1-based).
func (a Award) StarsFor(attempt int) int {
	switch a.Policy {
	case PolicyAttempts:
		switch {
		case attempt <= 1:
			return 3
		case attempt == 2:
			return 2
		default:
			return 1
		}
	default:
		if a.Stars > 0 {
			return a.Stars
		}
		return DefaultStars
	}
}
