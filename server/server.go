// Package server renders songs over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/gordonklaus/piano"
	"github.com/gordonklaus/piano/export"
)

const maxRequestBytes = 1 << 20

// RenderRequest is the body of POST /render. Ticks are 480 per quarter; a
// zero BPM means piano.DefaultBPM.
type RenderRequest struct {
	BPM   uint16       `json:"bpm"`
	Notes []RenderNote `json:"notes"`
}

type RenderNote struct {
	Pitch    uint8  `json:"pitch"`
	Velocity uint8  `json:"velocity"`
	Start    uint32 `json:"start"`
	Duration uint32 `json:"duration"`
}

func (r RenderRequest) song() (*piano.Song, error) {
	bpm := r.BPM
	if bpm == 0 {
		bpm = piano.DefaultBPM
	}
	notes := make([]piano.Note, len(r.Notes))
	for i, n := range r.Notes {
		notes[i] = piano.Note{Pitch: n.Pitch, Velocity: n.Velocity, Start: n.Start, Duration: n.Duration}
	}
	return piano.NewSong(bpm, notes...)
}

type Server struct {
	renderer *piano.Renderer
	log      *slog.Logger
}

func New(r *piano.Renderer, log *slog.Logger) *Server {
	return &Server{renderer: r, log: log}
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/render", s.handleRender).Methods(http.MethodPost)
	router.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"X-Render-Id"},
	}).Handler(router)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	w.Header().Set("X-Render-Id", id)
	log := s.log.With("id", id)
	start := time.Now()

	var req RenderRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			s.fail(w, log, http.StatusRequestEntityTooLarge, err)
			return
		}
		s.fail(w, log, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}
	song, err := req.song()
	if err != nil {
		s.fail(w, log, http.StatusBadRequest, err)
		return
	}

	x, err := s.renderer.Render(r.Context(), song)
	switch {
	case errors.Is(err, piano.ErrBufferTooLarge):
		s.fail(w, log, http.StatusRequestEntityTooLarge, err)
		return
	case err != nil:
		s.fail(w, log, http.StatusInternalServerError, err)
		return
	}
	rate := s.renderer.Config().SampleRate
	b, err := export.EncodeWAV(x, rate)
	if err != nil {
		s.fail(w, log, http.StatusInternalServerError, err)
		return
	}

	log.Info("rendered", "notes", song.Len(), "samples", len(x), "elapsed", time.Since(start))
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	if _, err := w.Write(b); err != nil {
		log.Debug("writing response", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, log *slog.Logger, code int, err error) {
	log.Warn("render failed", "status", code, "err", err)
	http.Error(w, err.Error(), code)
}
