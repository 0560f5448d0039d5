package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/Alex-Programs/nuenki-dictionary/internal/entity"
	"github.com/Alex-Programs/nuenki-dictionary/internal/usecase"
)

// Handler exposes the lookup API over HTTP.
type Handler struct {
	uc  usecase.LookupUsecase
	log *logrus.Logger
}

func NewHandler(uc usecase.LookupUsecase, log *logrus.Logger) *Handler {
	return &Handler{uc: uc, log: log}
}

// Router assembles the route table.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(h.requestLogger)
	r.Get("/api/definition", h.getDefinition)
	r.Get("/healthz", h.healthz)
	return r
}

func (h *Handler) getDefinition(w http.ResponseWriter, r *http.Request) {
	language := r.URL.Query().Get("language")
	word := r.URL.Query().Get("word")

	el, err := h.uc.Lookup(language, word)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, definitionResponse{
			Element:        toElementDTO(el),
			WiktionaryLink: el.WiktionaryLink(),
		})
	case errors.Is(err, entity.ErrNotFound):
		http.Error(w, "Word not found", http.StatusNotFound)
	case errors.Is(err, entity.ErrUnknownLanguage), errors.Is(err, entity.ErrInvalidWord):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.log.WithError(err).Error("lookup failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// requestLogger records method, path, status, and latency per request.
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		entry := h.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		})
		if rec.status >= http.StatusInternalServerError {
			entry.Error("request completed")
		} else {
			entry.Info("request completed")
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
