package web

import (
	"log"
	"net/http"
	"strconv"

	"spaceexplorer/internal/audio"
	"spaceexplorer/internal/game"
	"spaceexplorer/internal/i18n"
	"spaceexplorer/internal/quiz"
)

// printer picks the locale for r and persists an explicit ?lang= choice.
func (s *Server) printer(w http.ResponseWriter, r *http.Request) *i18n.Printer {
	tag, persist := s.I18n.ResolveTag(r, s.DefaultLocale)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	return s.I18n.Printer(tag)
}

// requestCues is the cue carried over a redirect in the query string.
func requestCues(r *http.Request) []audio.Cue {
	var q audio.Queue
	if c, ok := audio.ParseCue(r.URL.Query().Get("cue")); ok {
		q.Play(c)
	}
	return q.Cues()
}

func (s *Server) render(w http.ResponseWriter, page Page) {
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	if err := s.Tmpl.ExecuteTemplate(w, "layout.html", page); err != nil {
		log.Printf("render failed screen=%s error=%v", page.Screen, err)
		http.Error(w, "failed to render template", http.StatusInternalServerError)
	}
}

// GET /start
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	ps, _ := s.getOrCreateState(r.Context(), w, r)
	if ps.Session.Phase != game.PhaseStart {
		redirect(w, r, ps.Session.Phase, "")
		return
	}
	cues := append([]audio.Cue{audio.CueAmbient}, requestCues(r)...)
	s.render(w, Page{Screen: "start", L: s.printer(w, r), P: s.Engine.Project(ps.Session), Cues: cues})
}

// POST /start plays the rocket and moves to the map once it has taken off.
func (s *Server) handleLaunch(w http.ResponseWriter, r *http.Request) {
	ps, id := s.getOrCreateState(r.Context(), w, r)
	if ps.Session.Phase != game.PhaseStart {
		redirect(w, r, ps.Session.Phase, "")
		return
	}
	var q audio.Queue
	q.Play(audio.CueRocket)

	s.later(id, "start", s.StartDelay, ps.Session.Expect(), s.stepStart)
	if s.StartDelay <= 0 {
		redirect(w, r, game.PhaseMap, audio.CueRocket)
		return
	}
	s.render(w, Page{
		Screen:    "start",
		L:         s.printer(w, r),
		P:         s.Engine.Project(ps.Session),
		Cues:      q.Cues(),
		RefreshMS: refreshAfter(s.StartDelay),
		Launching: true,
	})
}

// GET /map
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	ps, _ := s.getOrCreateState(r.Context(), w, r)
	if ps.Session.Phase != game.PhaseMap {
		redirect(w, r, ps.Session.Phase, "")
		return
	}
	s.render(w, Page{Screen: "map", L: s.printer(w, r), P: s.Engine.Project(ps.Session), Cues: requestCues(r)})
}

// POST /levels/{index}. A locked or unknown level leaves the learner on the map.
func (s *Server) handleSelectLevel(w http.ResponseWriter, r *http.Request) {
	_, id := s.getOrCreateState(r.Context(), w, r)
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		index = -1
	}
	res, err := s.transition(r.Context(), id, "select_level", nil, s.stepSelect(index))
	if err != nil {
		http.Error(w, "failed to save state", http.StatusInternalServerError)
		return
	}
	if !res.Applied {
		redirect(w, r, res.State.Phase, "")
		return
	}
	redirect(w, r, res.State.Phase, audio.CueClick)
}

// GET /level
func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	ps, _ := s.getOrCreateState(r.Context(), w, r)
	lvl, err := s.Engine.CurrentLevel(ps.Session)
	if err != nil {
		redirect(w, r, ps.Session.Phase, "")
		return
	}
	page := Page{
		Screen: "level",
		L:      s.printer(w, r),
		P:      s.Engine.Project(ps.Session),
		Cues:   requestCues(r),
		Level:  newLevelPage(lvl, ps.Mount, quiz.Result{}, nil),
	}
	if ps.Mount.Solved {
		// Reloaded during the success delay.
		page.RefreshMS = refreshAfter(s.SuccessDelay)
	}
	s.render(w, page)
}

// POST /level/answer takes one interaction with the level: action=submit
// with key values, pick with one key, count, or reset.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	_, id := s.getOrCreateState(ctx, w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	action := r.FormValue("action")
	keys := r.Form["key"]

	var (
		res   quiz.Result
		after PlayerState
		lvl   *game.Level
	)
	after, err := s.Store.Update(ctx, id, func(ps *PlayerState) error {
		l, err := s.Engine.CurrentLevel(ps.Session)
		if err != nil {
			return nil
		}
		lvl = l
		if ps.Mount.Level != l.Index {
			ps.Mount = quiz.NewMount(l.Index)
		}
		q := l.Question
		switch action {
		case "pick":
			if len(keys) > 0 {
				res = ps.Mount.Pick(q, keys[0])
			}
		case "count":
			res = ps.Mount.Increment(q)
		case "reset":
			ps.Mount.Reset()
		default:
			res = ps.Mount.Submit(q, keys)
		}
		return nil
	})
	if err != nil {
		http.Error(w, "failed to save state", http.StatusInternalServerError)
		return
	}
	if lvl == nil {
		redirect(w, r, after.Session.Phase, "")
		return
	}

	var q audio.Queue
	playFeedback(&q, res)
	if res.Correct {
		log.Printf("level solved session_id=%s level=%d attempts=%d award=%d", id, lvl.Index, after.Mount.Attempts, res.Award)
		s.later(id, "complete_level", s.SuccessDelay, after.Session.Expect(), s.stepComplete)
		if s.SuccessDelay <= 0 {
			ps, _, _ := s.Store.Get(ctx, id)
			redirect(w, r, ps.Session.Phase, audio.CueSuccess)
			return
		}
	}

	page := Page{
		Screen: "level",
		L:      s.printer(w, r),
		P:      s.Engine.Project(after.Session),
		Cues:   q.Cues(),
		Level:  newLevelPage(lvl, after.Mount, res, keys),
	}
	if after.Mount.Solved {
		page.RefreshMS = refreshAfter(s.SuccessDelay)
	}
	s.render(w, page)
}

// playFeedback queues the cue for one answer interaction.
func playFeedback(p audio.Player, res quiz.Result) {
	switch {
	case res.Correct:
		p.Play(audio.CueSuccess)
	case res.Wrong:
		p.Play(audio.CueWrong)
	case !res.Ignored:
		p.Play(audio.CueClick)
	}
}

// POST /level/back
func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	_, id := s.getOrCreateState(r.Context(), w, r)
	s.cancelPending(id)
	res, err := s.transition(r.Context(), id, "return_to_map", nil, s.stepBack)
	if err != nil {
		http.Error(w, "failed to save state", http.StatusInternalServerError)
		return
	}
	redirect(w, r, res.State.Phase, "")
}

// GET /end
func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	ps, _ := s.getOrCreateState(r.Context(), w, r)
	if ps.Session.Phase != game.PhaseEnd {
		redirect(w, r, ps.Session.Phase, "")
		return
	}
	cues := requestCues(r)
	if len(cues) == 0 {
		cues = []audio.Cue{audio.CueSuccess}
	}
	s.render(w, Page{Screen: "end", L: s.printer(w, r), P: s.Engine.Project(ps.Session), Cues: cues})
}

// POST /restart
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	_, id := s.getOrCreateState(r.Context(), w, r)
	s.cancelPending(id)
	res, err := s.transition(r.Context(), id, "restart", nil, s.stepRestart)
	if err != nil {
		http.Error(w, "failed to save state", http.StatusInternalServerError)
		return
	}
	redirect(w, r, res.State.Phase, audio.CueClick)
}
