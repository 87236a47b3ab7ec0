package storage

import (
	"sync"
	"time"

	"github.com/jingjai/verifier/internal/capture"
	"github.com/jingjai/verifier/internal/models"
)

// StoredSession wraps a capture session with the service-side metadata
// the API exposes. Its mutex serializes mutations from concurrent HTTP
// requests; the engine itself stays single-actor.
type StoredSession struct {
	ID          string
	ServiceType string
	CreatedAt   time.Time
	SubmittedAt *time.Time

	Session *capture.Session
	Photos  map[string]models.PhotoRecord
	Report  *models.AnalysisReport

	mu sync.Mutex
}

// Lock takes the per-session mutation lock.
func (s *StoredSession) Lock() { s.mu.Lock() }

// Unlock releases the per-session mutation lock.
func (s *StoredSession) Unlock() { s.mu.Unlock() }

// View builds the wire representation of the session. Counts and
// readiness are derived from the engine on every call.
func (s *StoredSession) View() *models.VerificationSession {
	spec := s.Session.Spec()
	photos := make(map[string]models.PhotoRecord, len(s.Photos))
	for slotID, record := range s.Photos {
		photos[slotID] = record
	}
	return &models.VerificationSession{
		ID:          s.ID,
		ProductID:   spec.ProductID,
		ItemName:    spec.ItemName,
		ServiceType: s.ServiceType,
		Slots:       spec.Slots,
		Photos:      photos,
		CursorIndex: s.Session.Cursor(),
		FilledCount: s.Session.FilledCount(),
		Remaining:   s.Session.Remaining(),
		Ready:       s.Session.ReadyToSubmit(),
		Report:      s.Report,
		CreatedAt:   s.CreatedAt,
		SubmittedAt: s.SubmittedAt,
	}
}

// SessionStore is an in-memory session registry. Sessions are not
// persisted; they die with the process.
type SessionStore struct {
	sessions map[string]*StoredSession
	mu       sync.RWMutex
}

func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*StoredSession),
	}
}

func (s *SessionStore) Get(sessionID string) (*StoredSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists
}

func (s *SessionStore) Set(sessionID string, session *StoredSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = session
}

func (s *SessionStore) GetAll() map[string]*StoredSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*StoredSession, len(s.sessions))
	for k, v := range s.sessions {
		result[k] = v
	}
	return result
}

// Completed returns sessions that have been submitted and carry a report.
func (s *SessionStore) Completed() []*StoredSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var completed []*StoredSession
	for _, session := range s.sessions {
		if session.Report != nil {
			completed = append(completed, session)
		}
	}
	return completed
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
