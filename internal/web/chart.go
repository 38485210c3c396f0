package web

import (
	"net/http"

	"golang.org/x/text/language"

	"spaceexplorer/internal/game"
	"spaceexplorer/internal/i18n"
	"spaceexplorer/internal/mapgen"
)

// handleChart serves the printable star chart of the caller's session.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := s.sessionID(r)
	if id == "" {
		http.Redirect(w, r, "/start", http.StatusFound)
		return
	}
	ps, ok, err := s.Store.Get(ctx, id)
	if err != nil || !ok {
		http.Redirect(w, r, "/start", http.StatusFound)
		return
	}
	p := s.Engine.Project(ps.Session)

	// The chart's core fonts are Latin-1, so its copy is always the base locale.
	l := s.I18n.Printer(language.MustParse(i18n.BaseLocale))
	title := p.Title
	if title == "" {
		title = l.T("app.title")
	}
	labels := mapgen.Labels{
		Title:   title,
		Summary: l.T("chart.summary", p.CompletedCount, p.LevelCount, p.Stars),
	}
	if p.Phase == game.PhaseEnd {
		labels.Certificate = l.T("chart.certificate")
	}

	pdf, err := mapgen.Generate(s.Engine.Catalog, p, labels, s.AssetsDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if pdf == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="star-chart.pdf"`)
	if _, err := w.Write(pdf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
