package quiz

import (
	"errors"
	"testing"
)

func singleQuestion() Question {
	return Question{
		Kind:   KindSingle,
		Prompt: "Which planet is closest to the Sun?",
		Options: []Option{
			{Key: "mercury", Label: "Mercury", Correct: true},
			{Key: "venus", Label: "Venus"},
			{Key: "earth", Label: "Earth"},
		},
	}
}

func multiQuestion() Question {
	return Question{
		Kind:   KindMulti,
		Prompt: "Which planets have rings?",
		Options: []Option{
			{Key: "saturn", Correct: true},
			{Key: "earth"},
			{Key: "mars"},
			{Key: "uranus", Correct: true},
		},
		Award: Award{Policy: PolicyAttempts},
	}
}

func orderedQuestion() Question {
	return Question{
		Kind:   KindOrdered,
		Prompt: "Order the planets from smallest to largest!",
		Options: []Option{
			{Key: "mercury"},
			{Key: "earth"},
			{Key: "jupiter"},
		},
		Order: []string{"mercury", "earth", "jupiter"},
	}
}

func countQuestion() Question {
	return Question{Kind: KindCount, Prompt: "How many moons does Mars have?", Target: 2}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *Question)
		base    func() Question
		wantErr error
	}{
		{"single ok", func(*Question) {}, singleQuestion, nil},
		{"multi ok", func(*Question) {}, multiQuestion, nil},
		{"ordered ok", func(*Question) {}, orderedQuestion, nil},
		{"count ok", func(*Question) {}, countQuestion, nil},
		{"no prompt", func(q *Question) { q.Prompt = "  " }, singleQuestion, ErrNoPrompt},
		{"unknown kind", func(q *Question) { q.Kind = "drag" }, singleQuestion, ErrUnknownKind},
		{"single two correct", func(q *Question) { q.Options[1].Correct = true }, singleQuestion, ErrCorrectCount},
		{"single one option", func(q *Question) { q.Options = q.Options[:1] }, singleQuestion, ErrTooFewOptions},
		{"multi none correct", func(q *Question) {
			for i := range q.Options {
				q.Options[i].Correct = false
			}
		}, multiQuestion, ErrCorrectCount},
		{"ordered unknown key", func(q *Question) { q.Order[2] = "pluto" }, orderedQuestion, ErrBadOrder},
		{"ordered repeated key", func(q *Question) { q.Order[2] = "mercury" }, orderedQuestion, ErrBadOrder},
		{"count zero target", func(q *Question) { q.Target = 0 }, countQuestion, ErrBadTarget},
		{"duplicate key", func(q *Question) { q.Options[1].Key = "mercury" }, singleQuestion, ErrDuplicateKey},
		{"bad policy", func(q *Question) { q.Award.Policy = "random" }, singleQuestion, ErrBadAward},
		{"negative stars", func(q *Question) { q.Award.Stars = -1 }, singleQuestion, ErrBadAward},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.base()
			tt.mutate(&q)
			err := q.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate: unexpected error %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate: expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAwardStarsFor(t *testing.T) {
	attempts := Award{Policy: PolicyAttempts}
	for attempt, want := range map[int]int{1: 3, 2: 2, 3: 1, 7: 1} {
		if got := attempts.StarsFor(attempt); got != want {
			t.Errorf("attempts policy, attempt %d: expected %d, got %d", attempt, want, got)
		}
	}

	if got := (Award{}).StarsFor(5); got != DefaultStars {
		t.Errorf("default policy: expected %d, got %d", DefaultStars, got)
	}
	if got := (Award{Policy: PolicyFixed, Stars: 2}).StarsFor(1); got != 2 {
		t.Errorf("fixed policy with 2 stars: expected 2, got %d", got)
	}
}

func TestCorrect(t *testing.T) {
	tests := []struct {
		name string
		q    Question
		keys []string
		want bool
	}{
		{"single right", singleQuestion(), []string{"mercury"}, true},
		{"single wrong", singleQuestion(), []string{"venus"}, false},
		{"single two keys", singleQuestion(), []string{"mercury", "venus"}, false},
		{"single unknown", singleQuestion(), []string{"pluto"}, false},
		{"multi exact", multiQuestion(), []string{"uranus", "saturn"}, true},
		{"multi duplicate keys", multiQuestion(), []string{"saturn", "uranus", "saturn"}, true},
		{"multi missing one", multiQuestion(), []string{"saturn"}, false},
		{"multi extra", multiQuestion(), []string{"saturn", "uranus", "earth"}, false},
		{"multi unknown", multiQuestion(), []string{"saturn", "uranus", "pluto"}, false},
		{"ordered right", orderedQuestion(), []string{"mercury", "earth", "jupiter"}, true},
		{"ordered swapped", orderedQuestion(), []string{"earth", "mercury", "jupiter"}, false},
		{"ordered short", orderedQuestion(), []string{"mercury", "earth"}, false},
		{"count never by keys", countQuestion(), []string{"2"}, false},
	}
	for _, tt := range tests {
		if got := Correct(tt.q, tt.keys); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestMount_AttemptBasedAward(t *testing.T) {
	q := multiQuestion()
	m := NewMount(6)

	if res := m.Submit(q, []string{"saturn"}); !res.Wrong {
		t.Fatalf("expected first answer to be wrong, got %+v", res)
	}
	res := m.Submit(q, []string{"saturn", "uranus"})
	if !res.Correct {
		t.Fatalf("expected second answer to be correct, got %+v", res)
	}
	if res.Award != 2 {
		t.Errorf("expected award 2 on second attempt, got %d", res.Award)
	}
	if m.Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", m.Attempts)
	}

	// Solved mounts ignore further answers.
	if res := m.Submit(q, []string{"earth"}); !res.Ignored {
		t.Errorf("expected answer after solve to be ignored, got %+v", res)
	}
	if m.Award != 2 {
		t.Errorf("expected award to stay 2, got %d", m.Award)
	}
}

func TestMount_ReportAtMostOnce(t *testing.T) {
	q := singleQuestion()
	m := NewMount(0)

	if _, ok := m.Report(); ok {
		t.Fatal("expected no report before the question is solved")
	}
	m.Submit(q, []string{"mercury"})

	award, ok := m.Report()
	if !ok || award != DefaultStars {
		t.Fatalf("expected first report (%d, true), got (%d, %v)", DefaultStars, award, ok)
	}
	if _, ok := m.Report(); ok {
		t.Error("expected second report to be refused")
	}
}

func TestMount_PickOrdered(t *testing.T) {
	q := orderedQuestion()
	m := NewMount(5)

	m.Pick(q, "earth")
	if res := m.Pick(q, "earth"); !res.Ignored {
		t.Errorf("expected repeated pick to be ignored, got %+v", res)
	}
	if res := m.Pick(q, "pluto"); !res.Ignored {
		t.Errorf("expected unknown pick to be ignored, got %+v", res)
	}
	m.Pick(q, "mercury")
	res := m.Pick(q, "jupiter")
	if !res.Wrong {
		t.Fatalf("expected wrong order to be rejected, got %+v", res)
	}
	if len(m.Picks) != 0 {
		t.Errorf("expected picks cleared after a wrong order, got %v", m.Picks)
	}

	for _, k := range []string{"mercury", "earth"} {
		if res := m.Pick(q, k); res.Correct || res.Wrong {
			t.Fatalf("expected partial pick %q to be pending, got %+v", k, res)
		}
	}
	res = m.Pick(q, "jupiter")
	if !res.Correct {
		t.Fatalf("expected right order to solve, got %+v", res)
	}
	if res.Award != DefaultStars {
		t.Errorf("expected fixed award %d, got %d", DefaultStars, res.Award)
	}
}

func TestMount_IncrementCount(t *testing.T) {
	q := countQuestion()
	m := NewMount(4)

	if res := m.Increment(q); res.Correct {
		t.Fatal("expected first tap not to solve")
	}
	m.Reset()
	if m.Count != 0 {
		t.Errorf("expected count reset to 0, got %d", m.Count)
	}
	m.Increment(q)
	res := m.Increment(q)
	if !res.Correct {
		t.Fatalf("expected reaching target to solve, got %+v", res)
	}
	if res := m.Increment(q); !res.Ignored {
		t.Errorf("expected tap after solve to be ignored, got %+v", res)
	}
	m.Reset()
	if m.Count != 2 {
		t.Errorf("expected reset after solve to keep count, got %d", m.Count)
	}
}

func TestMount_WrongKindIgnored(t *testing.T) {
	m := NewMount(0)
	if res := m.Increment(singleQuestion()); !res.Ignored {
		t.Errorf("expected Increment on single choice to be ignored, got %+v", res)
	}
	if res := m.Pick(singleQuestion(), "mercury"); !res.Ignored {
		t.Errorf("expected Pick on single choice to be ignored, got %+v", res)
	}
	if res := m.Submit(countQuestion(), nil); !res.Ignored {
		t.Errorf("expected Submit on count question to be ignored, got %+v", res)
	}
	if m.Attempts != 0 {
		t.Errorf("expected ignored interactions not to count as attempts, got %d", m.Attempts)
	}
}
