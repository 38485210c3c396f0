package web

import (
	"context"
	"log"
	"time"

	"spaceexplorer/internal/game"
	"spaceexplorer/internal/quiz"
	"spaceexplorer/internal/telemetry"
)

// step applies one controller operation to a player's state. It may touch
// the mount; the session is replaced by the result only when it applied.
type step func(ps *PlayerState) game.StepResult

// transition runs fn atomically against the stored state of session id.
// A non-nil guard makes it a deferred transition: it only applies while the
// session still matches the state it was scheduled against.
func (s *Server) transition(ctx context.Context, id, op string, guard *game.Expectation, fn step) (game.StepResult, error) {
	ctx, span := s.tracer().Transition(ctx, op, id)

	var res game.StepResult
	stale := false
	_, err := s.Store.Update(ctx, id, func(ps *PlayerState) error {
		if guard != nil && !ps.Session.Matches(*guard) {
			stale = true
			res = game.StepResult{State: ps.Session}
			return nil
		}
		res = fn(ps)
		if res.Applied {
			ps.Session = res.State
		}
		return nil
	})
	telemetry.Finish(span, res.Applied, string(res.State.Phase), err)

	switch {
	case err != nil:
		log.Printf("transition failed op=%s session_id=%s error=%v", op, id, err)
		return res, err
	case stale:
		s.debugf("stale transition discarded op=%s session_id=%s", op, id)
	case !res.Applied:
		s.debugf("transition ignored op=%s session_id=%s phase=%s", op, id, res.State.Phase)
	default:
		log.Printf("transition op=%s session_id=%s phase=%s stars=%d completed=%d",
			op, id, res.State.Phase, res.State.Stars, res.State.CompletedCount())
		if s.Live != nil {
			s.Live.Publish(id, s.Engine.Project(res.State))
		}
	}
	return res, nil
}

// later runs the transition after d, guarded by guard. A zero d runs it
// before later returns.
func (s *Server) later(id, op string, d time.Duration, guard game.Expectation, fn step) {
	run := func() {
		if _, err := s.transition(context.Background(), id, op, &guard, fn); err != nil {
			log.Printf("deferred transition failed op=%s session_id=%s error=%v", op, id, err)
		}
	}
	if s.Scheduler == nil {
		run()
		return
	}
	s.Scheduler.Schedule(id, d, run)
}

func (s *Server) cancelPending(id string) {
	if s.Scheduler != nil && s.Scheduler.Cancel(id) {
		s.debugf("pending transition cancelled session_id=%s", id)
	}
}

func (s *Server) tracer() *telemetry.Tracer {
	if s.Tracer == nil {
		return telemetry.NewTracer(nil)
	}
	return s.Tracer
}

func (s *Server) stepStart(ps *PlayerState) game.StepResult {
	return s.Engine.Start(ps.Session)
}

func (s *Server) stepSelect(index int) step {
	return func(ps *PlayerState) game.StepResult {
		res := s.Engine.SelectLevel(ps.Session, index)
		if res.Applied {
			ps.Mount = quiz.NewMount(index)
		}
		return res
	}
}

// stepComplete reports the mount's award to the controller. A mount that
// already reported, or belongs to another level, completes nothing.
func (s *Server) stepComplete(ps *PlayerState) game.StepResult {
	if ps.Mount.Level != ps.Session.CurrentLevel {
		return game.StepResult{State: ps.Session}
	}
	award, ok := ps.Mount.Report()
	if !ok {
		return game.StepResult{State: ps.Session}
	}
	return s.Engine.CompleteLevel(ps.Session, award)
}

func (s *Server) stepBack(ps *PlayerState) game.StepResult {
	res := s.Engine.ReturnToMap(ps.Session)
	if res.Applied {
		ps.Mount = quiz.Mount{}
	}
	return res
}

func (s *Server) stepRestart(ps *PlayerState) game.StepResult {
	ps.Mount = quiz.Mount{}
	return s.Engine.Restart(ps.Session)
}
