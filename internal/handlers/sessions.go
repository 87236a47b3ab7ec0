package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jingjai/verifier/internal/capture"
	"github.com/jingjai/verifier/internal/catalog"
	"github.com/jingjai/verifier/internal/models"
	"github.com/jingjai/verifier/internal/storage"
)

func (h *Handler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		sessions := h.sessionStore.GetAll()
		sessionList := make([]*models.VerificationSession, 0, len(sessions))
		for _, session := range sessions {
			session.Lock()
			sessionList = append(sessionList, session.View())
			session.Unlock()
		}
		h.writeJSON(w, sessionList)
	case "POST":
		h.handleCreateSession(w, r)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ProductID   string `json:"product_id"`
		ServiceType string `json:"service_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if request.ProductID == "" {
		h.writeError(w, "product_id is required", http.StatusBadRequest)
		return
	}

	spec, err := h.catalog.Spec(request.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			h.writeError(w, "Product not found", http.StatusNotFound)
			return
		}
		h.writeError(w, "Failed to load product: "+err.Error(), http.StatusInternalServerError)
		return
	}

	engineSession, err := capture.NewSession(spec)
	if err != nil {
		// Catalog handed over an unusable checklist; the workflow cannot start.
		h.writeError(w, "Cannot start this authentication: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	session := &storage.StoredSession{
		ID:          uuid.New().String(),
		ServiceType: request.ServiceType,
		CreatedAt:   time.Now(),
		Session:     engineSession,
		Photos:      make(map[string]models.PhotoRecord),
	}
	h.sessionStore.Set(session.ID, session)
	sessionsStarted.Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	h.writeJSON(w, session.View())
}

// HandleSessionDetail routes /api/sessions/{id}[/cursor|/photos/{slot}|/submit]
func (h *Handler) HandleSessionDetail(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		h.writeError(w, "Session id required", http.StatusBadRequest)
		return
	}
	sessionID := parts[0]

	session, ok := h.getSessionOrError(w, sessionID)
	if !ok {
		return
	}

	switch {
	case len(parts) == 1:
		switch r.Method {
		case "GET":
			session.Lock()
			view := session.View()
			session.Unlock()
			h.writeJSON(w, view)
		case "DELETE":
			h.handleDiscard(w, r, session)
		default:
			h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case len(parts) == 2 && parts[1] == "cursor":
		h.handleCursor(w, r, session)
	case len(parts) == 2 && parts[1] == "submit":
		h.handleSubmit(w, r, session)
	case len(parts) == 3 && parts[1] == "photos":
		h.handlePhoto(w, r, session, parts[2])
	default:
		h.writeError(w, "Not found", http.StatusNotFound)
	}
}

// handleDiscard destroys a session. Discarding captured photos is
// destructive, so a non-empty session requires explicit confirmation.
func (h *Handler) handleDiscard(w http.ResponseWriter, r *http.Request, session *storage.StoredSession) {
	session.Lock()
	filled := session.Session.FilledCount()
	session.Unlock()

	if filled > 0 && r.URL.Query().Get("confirm") != "1" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		if err := json.NewEncoder(w).Encode(map[string]any{
			"error":        "confirm_required",
			"message":      "Session has uploaded photos; repeat with ?confirm=1 to discard them",
			"filled_count": filled,
		}); err != nil {
			h.writeError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.sessionStore.Delete(session.ID)
	h.writeJSON(w, map[string]string{"message": "Session discarded"})
}

func (h *Handler) handleCursor(w http.ResponseWriter, r *http.Request, session *storage.StoredSession) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		Op    string `json:"op"`
		Index int    `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	session.Lock()
	defer session.Unlock()

	switch request.Op {
	case "select":
		if err := session.Session.SelectSlot(request.Index); err != nil {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
	case "advance":
		session.Session.Advance()
	case "retreat":
		session.Session.Retreat()
	default:
		h.writeError(w, "Invalid op. Must be 'select', 'advance', or 'retreat'", http.StatusBadRequest)
		return
	}

	h.writeJSON(w, session.View())
}
