// Package capture implements the guided photo-capture workflow: an ordered
// checklist of required photo slots for one product, a cursor over that
// checklist, retake/removal, and a completion gate in front of submission.
package capture

import (
	"context"
	"fmt"

	"github.com/jingjai/verifier/internal/models"
)

// Sink receives a completed slot-to-photo mapping for downstream analysis.
// Implementations are free to call out over the network; the session only
// guarantees they never see a partial photo set.
type Sink interface {
	Analyze(ctx context.Context, productID, itemName string, photos map[string]string) (*models.AnalysisReport, error)
}

// Session is the mutable state of one in-progress capture workflow.
// It is owned by a single actor; operations are synchronous transitions
// and the caller is responsible for not running two captures at once.
type Session struct {
	spec   *models.CaptureSpec
	photos map[string]string
	cursor int
}

// NewSession starts a workflow for the given spec. The spec is held by
// reference but never mutated.
func NewSession(spec *models.CaptureSpec) (*Session, error) {
	if spec == nil || len(spec.Slots) == 0 {
		return nil, ErrInvalidSpec
	}
	seen := make(map[string]struct{}, len(spec.Slots))
	for _, slot := range spec.Slots {
		if slot.ID == "" {
			return nil, fmt.Errorf("%w: empty slot id", ErrInvalidSpec)
		}
		if _, dup := seen[slot.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate slot id %q", ErrInvalidSpec, slot.ID)
		}
		seen[slot.ID] = struct{}{}
	}
	return &Session{
		spec:   spec,
		photos: make(map[string]string, len(spec.Slots)),
	}, nil
}

// Spec returns the capture spec in effect for this session.
func (s *Session) Spec() *models.CaptureSpec { return s.spec }

// Cursor returns the index of the slot currently presented.
func (s *Session) Cursor() int { return s.cursor }

// CurrentSlot returns the slot at the cursor.
func (s *Session) CurrentSlot() models.PhotoSlot { return s.spec.Slots[s.cursor] }

// SelectSlot moves the cursor to an explicit index. Out-of-range indexes
// are rejected, never clamped.
func (s *Session) SelectSlot(index int) error {
	if index < 0 || index >= len(s.spec.Slots) {
		return fmt.Errorf("%w: %d (have %d slots)", ErrIndexOutOfRange, index, len(s.spec.Slots))
	}
	s.cursor = index
	return nil
}

// Advance moves the cursor forward one slot. No-op at the last slot.
func (s *Session) Advance() {
	if s.cursor < len(s.spec.Slots)-1 {
		s.cursor++
	}
}

// Retreat moves the cursor back one slot. No-op at the first slot.
func (s *Session) Retreat() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// Capture acquires a photo for slotID from the source and attaches it.
// The source is invoked exactly once. A cancellation or acquisition
// failure leaves the session untouched: either the photo is stored or
// nothing changed.
func (s *Session) Capture(ctx context.Context, src Source, kind SourceKind, slotID string) error {
	if _, err := s.slotIndex(slotID); err != nil {
		return err
	}
	handle, err := src.Acquire(ctx, kind, slotID)
	if err != nil {
		return err
	}
	return s.Attach(slotID, handle)
}

// Attach stores a photo handle for a slot. A handle already present for
// the slot is overwritten (the retake path). When the filled slot is the
// cursor slot and not the last one, the cursor auto-advances so the UI
// lands on the next photo to take; filling the last slot leaves the
// cursor put so the submit affordance can show.
func (s *Session) Attach(slotID, handle string) error {
	idx, err := s.slotIndex(slotID)
	if err != nil {
		return err
	}
	s.photos[slotID] = handle
	if idx == s.cursor {
		s.Advance()
	}
	return nil
}

// Remove deletes the photo for a slot if present. The cursor does not
// move. User confirmation is the caller's responsibility.
func (s *Session) Remove(slotID string) {
	delete(s.photos, slotID)
}

// Handle returns the stored photo handle for a slot, if any.
func (s *Session) Handle(slotID string) (string, bool) {
	handle, ok := s.photos[slotID]
	return handle, ok
}

// Filled reports whether a slot has a photo.
func (s *Session) Filled(slotID string) bool {
	_, ok := s.photos[slotID]
	return ok
}

// FilledCount returns how many slots have photos.
func (s *Session) FilledCount() int { return len(s.photos) }

// Remaining returns how many slots still need photos.
func (s *Session) Remaining() int { return len(s.spec.Slots) - len(s.photos) }

// ReadyToSubmit reports whether every slot has a photo. This is derived
// from the photo map on every call rather than stored, so it can never
// drift from the actual session contents.
func (s *Session) ReadyToSubmit() bool {
	for _, slot := range s.spec.Slots {
		if _, ok := s.photos[slot.ID]; !ok {
			return false
		}
	}
	return true
}

// Photos returns a copy of the slot-to-handle mapping.
func (s *Session) Photos() map[string]string {
	photos := make(map[string]string, len(s.photos))
	for id, handle := range s.photos {
		photos[id] = handle
	}
	return photos
}

// Submit hands the completed photo set to the sink. It refuses to call
// the sink unless every slot is filled. A sink failure propagates to the
// caller with the captured photos intact, so a retry does not require
// recapturing anything.
func (s *Session) Submit(ctx context.Context, sink Sink) (*models.AnalysisReport, error) {
	if !s.ReadyToSubmit() {
		return nil, fmt.Errorf("%w: %d of %d photos captured",
			ErrIncompleteSubmission, s.FilledCount(), len(s.spec.Slots))
	}
	return sink.Analyze(ctx, s.spec.ProductID, s.spec.ItemName, s.Photos())
}

func (s *Session) slotIndex(slotID string) (int, error) {
	for i, slot := range s.spec.Slots {
		if slot.ID == slotID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownSlot, slotID)
}
