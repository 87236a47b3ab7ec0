package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jingjai/verifier/internal/capture"
	"github.com/jingjai/verifier/internal/catalog"
	"github.com/jingjai/verifier/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "verifier_sessions_started_total",
		Help: "Number of verification sessions created",
	})
	photosUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "verifier_photos_uploaded_total",
		Help: "Number of slot photos uploaded",
	})
	submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verifier_submissions_total",
		Help: "Number of analysis submissions by outcome",
	}, []string{"outcome"})
)

type Handler struct {
	sessionStore *storage.SessionStore
	catalog      catalog.Provider
	sink         capture.Sink
	uploadsDir   string
}

func New(provider catalog.Provider, sink capture.Sink, uploadsDir string) *Handler {
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}
	return &Handler{
		sessionStore: storage.New(),
		catalog:      provider,
		sink:         sink,
		uploadsDir:   uploadsDir,
	}
}

// Store exposes the session store for export tooling.
func (h *Handler) Store() *storage.SessionStore {
	return h.sessionStore
}

// UploadsDir returns the directory uploaded photos are written to.
func (h *Handler) UploadsDir() string {
	return h.uploadsDir
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		slog.Error("Unable to encode error response", "err", err)
	}
}

// Session helpers
func (h *Handler) getSessionOrError(w http.ResponseWriter, sessionID string) (*storage.StoredSession, bool) {
	session, exists := h.sessionStore.Get(sessionID)
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}
