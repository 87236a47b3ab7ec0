package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jingjai/verifier/internal/capture"
	"github.com/jingjai/verifier/internal/storage"
)

// handleSubmit forwards a completed photo set to the analysis sink.
// The readiness gate is checked here for a friendly 409, and again by the
// engine itself, which never lets a partial set through.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request, session *storage.StoredSession) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session.Lock()
	defer session.Unlock()

	if !session.Session.ReadyToSubmit() {
		submissions.WithLabelValues("incomplete").Inc()
		h.writeError(w,
			"incomplete_submission: "+remainingMessage(session.Session.Remaining()),
			http.StatusConflict)
		return
	}

	report, err := session.Session.Submit(r.Context(), h.sink)
	if err != nil {
		if errors.Is(err, capture.ErrIncompleteSubmission) {
			submissions.WithLabelValues("incomplete").Inc()
			h.writeError(w, err.Error(), http.StatusConflict)
			return
		}
		// Sink failure: photos are preserved, the client can retry.
		submissions.WithLabelValues("rejected").Inc()
		slog.Error("Analysis submission rejected", "session_id", session.ID, "err", err)
		h.writeError(w, "Analysis failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	now := time.Now()
	session.Report = report
	session.SubmittedAt = &now
	submissions.WithLabelValues("ok").Inc()

	slog.Info("Session submitted", "session_id", session.ID, "status", report.Status, "score", report.Score)
	h.writeJSON(w, session.View())
}

func remainingMessage(remaining int) string {
	if remaining == 1 {
		return "1 photo still required"
	}
	return fmt.Sprintf("%d photos still required", remaining)
}
