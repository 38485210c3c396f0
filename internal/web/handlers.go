package web

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"golang.org/x/text/language"

	"spaceexplorer/internal/audio"
	"spaceexplorer/internal/game"
	"spaceexplorer/internal/i18n"
	"spaceexplorer/internal/quiz"
	"spaceexplorer/internal/scheduler"
	"spaceexplorer/internal/session"
	"spaceexplorer/internal/telemetry"
)

// PlayerState is everything kept per browser session: the progression
// state and the visit to the level currently on screen.
type PlayerState struct {
	Session game.Session
	Mount   quiz.Mount
}

type Server struct {
	Engine    *game.Engine
	Store     session.Store[PlayerState]
	Tmpl      *template.Template
	Scheduler *scheduler.Scheduler
	Audio     *audio.Service
	I18n      *i18n.Bundle
	Tracer    *telemetry.Tracer
	Live      *Hub

	// AssetsDir holds optional names/ clips and planets/ artwork.
	AssetsDir string

	StartDelay    time.Duration
	SuccessDelay  time.Duration
	DefaultLocale language.Tag
	SecureCookies bool
	Debug         bool
}

const cookieName = "space_sid"

// ParseTemplates loads the screen templates from dir.
func ParseTemplates(dir string) (*template.Template, error) {
	return template.New("layout.html").Funcs(templateFuncs).ParseFiles(
		filepath.Join(dir, "layout.html"),
		filepath.Join(dir, "start.html"),
		filepath.Join(dir, "map.html"),
		filepath.Join(dir, "level.html"),
		filepath.Join(dir, "end.html"),
	)
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)

	mux.HandleFunc("GET /start", s.handleStart)
	mux.HandleFunc("POST /start", s.handleLaunch)
	mux.HandleFunc("GET /map", s.handleMap)
	mux.HandleFunc("POST /levels/{index}", s.handleSelectLevel)
	mux.HandleFunc("GET /level", s.handleLevel)
	mux.HandleFunc("POST /level/answer", s.handleAnswer)
	mux.HandleFunc("POST /level/back", s.handleBack)
	mux.HandleFunc("GET /end", s.handleEnd)
	mux.HandleFunc("POST /restart", s.handleRestart)

	mux.HandleFunc("GET /chart", s.handleChart)
	mux.HandleFunc("GET /audio/cues/{cue}", s.handleCue)
	mux.HandleFunc("GET /audio/names/{index}", s.handleNameAudio)
	mux.HandleFunc("GET /planets/{index}", s.handlePlanet)
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	return mux
}

// screenPath is where a session in phase p belongs.
func screenPath(p game.Phase) string {
	switch p {
	case game.PhaseMap:
		return "/map"
	case game.PhasePlaying:
		return "/level"
	case game.PhaseEnd:
		return "/end"
	default:
		return "/start"
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ps, _ := s.getOrCreateState(r.Context(), w, r)
	http.Redirect(w, r, screenPath(ps.Session.Phase), http.StatusFound)
}

func (s *Server) getOrCreateState(ctx context.Context, w http.ResponseWriter, r *http.Request) (PlayerState, string) {
	id := s.sessionID(r)
	if id == "" {
		id = s.Store.NewID()
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			Secure:   s.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}

	ps, ok, err := s.Store.Get(ctx, id)
	if err != nil || !ok {
		ps = PlayerState{Session: s.Engine.NewSession()}
		if err := s.Store.Put(ctx, id, ps); err != nil {
			log.Printf("session create failed session_id=%s error=%v", id, err)
		}
	}
	return ps, id
}

func (s *Server) sessionID(r *http.Request) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// redirect sends the browser to the screen for ps, playing cue there if set.
func redirect(w http.ResponseWriter, r *http.Request, p game.Phase, cue audio.Cue) {
	target := screenPath(p)
	if cue != "" {
		target += "?cue=" + string(cue)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) debugf(format string, args ...any) {
	if s.Debug {
		log.Printf(format, args...)
	}
}
