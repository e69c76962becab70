// internal/adapters/http_server/handlers.go
package httpserver

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/govind-tiwari/review-extractor/internal/app"
	"github.com/govind-tiwari/review-extractor/internal/render"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type Handlers struct{ S *app.SessionService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Group(func(r chi.Router) {
		r.Use(Session)
		r.Get("/", h.page)
		r.Post("/extract", h.submit)
		r.Get("/api/session", h.sessionJSON)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func (h *Handlers) page(w http.ResponseWriter, r *http.Request) {
	st, err := h.S.Current(r.Context(), SessionID(r.Context()))
	if err != nil {
		log.Error().Err(err).Msg("load session for page failed")
		writeProblem(w, http.StatusServiceUnavailable, "Session store unavailable", "")
		return
	}

	// render into a buffer so a template error never leaves a half-written page
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, render.Build(st)); err != nil {
		log.Error().Err(err).Msg("render page failed")
		writeProblem(w, http.StatusInternalServerError, "Render failed", "")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error().Err(err).Msg("failed to write page body")
	}
}

func (h *Handlers) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid form", err.Error())
		return
	}
	id := SessionID(r.Context())
	_, err := h.S.Start(r.Context(), id, r.PostFormValue("url"))
	switch {
	case errors.Is(err, app.ErrBusy):
		// the button is disabled while loading; a resubmit from a stale tab is dropped
		log.Info().Str("session", id).Msg("submission ignored, request in flight")
	case err != nil:
		log.Error().Err(err).Str("session", id).Msg("start submission failed")
		writeProblem(w, http.StatusServiceUnavailable, "Session store unavailable", "")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) sessionJSON(w http.ResponseWriter, r *http.Request) {
	st, err := h.S.Current(r.Context(), SessionID(r.Context()))
	if err != nil {
		log.Error().Err(err).Msg("load session failed")
		writeProblem(w, http.StatusServiceUnavailable, "Session store unavailable", "")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(render.Build(st)); err != nil {
		log.Error().Err(err).Msg("failed to write session body")
	}
}
