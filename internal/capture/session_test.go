package capture

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jingjai/verifier/internal/models"
)

func threeSlotSpec() *models.CaptureSpec {
	return &models.CaptureSpec{
		ProductID: "attica-bag",
		ItemName:  "Alexander Wang Attica Bag",
		Slots: []models.PhotoSlot{
			{ID: "front", Label: "Front View"},
			{ID: "label", Label: "Brand Label"},
			{ID: "serial", Label: "Serial Number"},
		},
	}
}

// stubSource returns a fixed handle or error and counts invocations.
type stubSource struct {
	handle string
	err    error
	calls  int
}

func (s *stubSource) Acquire(ctx context.Context, kind SourceKind, slotID string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	if s.handle != "" {
		return s.handle, nil
	}
	return "file:///" + slotID + ".jpg", nil
}

// stubSink records Analyze calls.
type stubSink struct {
	calls  int
	photos map[string]string
	err    error
}

func (s *stubSink) Analyze(ctx context.Context, productID, itemName string, photos map[string]string) (*models.AnalysisReport, error) {
	s.calls++
	s.photos = photos
	if s.err != nil {
		return nil, s.err
	}
	return &models.AnalysisReport{Status: "Authentic", Score: 98.7}, nil
}

func TestNewSession(t *testing.T) {
	session, err := NewSession(threeSlotSpec())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if session.FilledCount() != 0 {
		t.Errorf("expected 0 photos, got %d", session.FilledCount())
	}
	if session.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", session.Cursor())
	}
	if session.ReadyToSubmit() {
		t.Error("fresh session should not be ready to submit")
	}
	if session.Remaining() != 3 {
		t.Errorf("expected 3 remaining, got %d", session.Remaining())
	}
}

func TestNewSessionInvalidSpec(t *testing.T) {
	tests := []struct {
		name string
		spec *models.CaptureSpec
	}{
		{"nil spec", nil},
		{"no slots", &models.CaptureSpec{ProductID: "x"}},
		{"empty slot id", &models.CaptureSpec{ProductID: "x", Slots: []models.PhotoSlot{{ID: ""}}}},
		{"duplicate slot ids", &models.CaptureSpec{ProductID: "x", Slots: []models.PhotoSlot{{ID: "front"}, {ID: "front"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSession(tt.spec); !errors.Is(err, ErrInvalidSpec) {
				t.Errorf("expected ErrInvalidSpec, got %v", err)
			}
		})
	}
}

func TestSelectSlot(t *testing.T) {
	session, _ := NewSession(threeSlotSpec())

	if err := session.SelectSlot(2); err != nil {
		t.Fatalf("SelectSlot(2): %v", err)
	}
	if session.Cursor() != 2 {
		t.Errorf("expected cursor 2, got %d", session.Cursor())
	}

	for _, index := range []int{-1, 3, 100} {
		if err := session.SelectSlot(index); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("SelectSlot(%d): expected ErrIndexOutOfRange, got %v", index, err)
		}
		if session.Cursor() != 2 {
			t.Errorf("SelectSlot(%d) must not move the cursor, got %d", index, session.Cursor())
		}
	}
}

func TestAdvanceRetreatRoundTrip(t *testing.T) {
	session, _ := NewSession(threeSlotSpec())

	if err := session.SelectSlot(1); err != nil {
		t.Fatal(err)
	}
	session.Advance()
	session.Retreat()
	if session.Cursor() != 1 {
		t.Errorf("advance then retreat from interior position: expected cursor 1, got %d", session.Cursor())
	}

	// Boundary no-ops
	if err := session.SelectSlot(0); err != nil {
		t.Fatal(err)
	}
	session.Retreat()
	if session.Cursor() != 0 {
		t.Errorf("retreat at first slot should be a no-op, got %d", session.Cursor())
	}
	if err := session.SelectSlot(2); err != nil {
		t.Fatal(err)
	}
	session.Advance()
	if session.Cursor() != 2 {
		t.Errorf("advance at last slot should be a no-op, got %d", session.Cursor())
	}
}

func TestAutoAdvance(t *testing.T) {
	session, _ := NewSession(threeSlotSpec())
	src := &stubSource{}
	ctx := context.Background()

	if err := session.Capture(ctx, src, SourceCamera, "front"); err != nil {
		t.Fatalf("capture front: %v", err)
	}
	if session.Cursor() != 1 {
		t.Errorf("after filling cursor slot, expected cursor 1, got %d", session.Cursor())
	}

	if err := session.Capture(ctx, src, SourceCamera, "label"); err != nil {
		t.Fatalf("capture label: %v", err)
	}
	if session.Cursor() != 2 {
		t.Errorf("expected cursor 2, got %d", session.Cursor())
	}

	if err := session.Capture(ctx, src, SourceCamera, "serial"); err != nil {
		t.Fatalf("capture serial: %v", err)
	}
	if session.Cursor() != 2 {
		t.Errorf("filling the last slot must leave the cursor put, got %d", session.Cursor())
	}
	if !session.ReadyToSubmit() {
		t.Error("all slots filled, expected ready to submit")
	}
	if src.calls != 3 {
		t.Errorf("source should be invoked once per capture, got %d calls", src.calls)
	}
}

func TestRetakeOverwrites(t *testing.T) {
	session, _ := NewSession(threeSlotSpec())
	ctx := context.Background()

	if err := session.Capture(ctx, &stubSource{handle: "first.jpg"}, SourceCamera, "front"); err != nil {
		t.Fatal(err)
	}
	cursorBefore := session.Cursor()

	// Cursor has auto-advanced past "front"; a retake must overwrite the
	// handle without touching count or cursor.
	if err := session.Capture(ctx, &stubSource{handle: "second.jpg"}, SourceGallery, "front"); err != nil {
		t.Fatal(err)
	}

	handle, ok := session.Handle("front")
	if !ok || handle != "second.jpg" {
		t.Errorf("expected retake to overwrite handle, got %q (ok=%v)", handle, ok)
	}
	if session.FilledCount() != 1 {
		t.Errorf("retake must not change filled count, got %d", session.FilledCount())
	}
	if session.Cursor() != cursorBefore {
		t.Errorf("retake of a non-cursor slot must not move cursor, got %d", session.Cursor())
	}
}

func TestCaptureCancelledLeavesSessionUnchanged(t *testing.T) {
	session, _ := NewSession(threeSlotSpec())
	ctx := context.Background()

	tests := []struct {
		name string
		err  error
	}{
		{"cancelled", ErrCancelled},
		{"permission denied", errors.New("camera permission denied")},
		{"io error", fmt.Errorf("reading picker result: %w", errors.New("io failure"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := session.Capture(ctx, &stubSource{err: tt.err}, SourceCamera, "front")
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if session.FilledCount() != 0 {
				t.Errorf("failed capture must not store a photo, got %d", session.FilledCount())
			}
			if session.Cursor() != 0 {
				t.Errorf("failed capture must not move cursor, got %d", session.Cursor())
			}
		})
	}
}

func TestCaptureUnknownSlotDoesNotInvokeSource(t *testing.T) {
	session, _ := NewSession(threeSlotSpec())
	src := &stubSource{}

	err := session.Capture(context.Background(), src, SourceCamera, "bogus")
	if !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
	if src.calls != 0 {
		t.Errorf("source must not be invoked for an unknown slot, got %d calls", src.calls)
	}
}

func TestAttachUnknownSlot(t *testing.T) {
	session, _ := NewSession(threeSlotSpec())
	if err := session.Attach("bogus", "x.jpg"); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
	if session.FilledCount() != 0 {
		t.Errorf("unknown slot attach must not store anything, got %d", session.FilledCount())
	}
}

func TestRemoveDropsCompletion(t *testing.T) {
	session, _ := NewSession(threeSlotSpec())
	for _, id := range []string{"front", "label", "serial"} {
		if err := session.Attach(id, id+".jpg"); err != nil {
			t.Fatal(err)
		}
	}
	if !session.ReadyToSubmit() {
		t.Fatal("expected complete session")
	}

	session.Remove("label")
	if session.FilledCount() != 2 {
		t.Errorf("expected 2 photos after removal, got %d", session.FilledCount())
	}
	if session.ReadyToSubmit() {
		t.Error("removal must drop readiness")
	}

	// Removing an absent slot is a no-op.
	session.Remove("label")
	if session.FilledCount() != 2 {
		t.Errorf("double removal changed filled count: %d", session.FilledCount())
	}

	// Recapturing restores readiness.
	if err := session.Attach("label", "label-retake.jpg"); err != nil {
		t.Fatal(err)
	}
	if !session.ReadyToSubmit() {
		t.Error("recapturing the removed slot must restore readiness")
	}
}

func TestFillOrderIndependence(t *testing.T) {
	orders := [][]string{
		{"front", "label", "serial"},
		{"serial", "front", "label"},
		{"label", "serial", "front", "front"}, // with a retake
	}

	for _, order := range orders {
		session, _ := NewSession(threeSlotSpec())
		for i, id := range order {
			if err := session.Attach(id, fmt.Sprintf("%s-%d.jpg", id, i)); err != nil {
				t.Fatal(err)
			}
		}
		if !session.ReadyToSubmit() {
			t.Errorf("order %v: expected ready after covering all slots", order)
		}
	}
}

func TestSubmitGate(t *testing.T) {
	session, _ := NewSession(threeSlotSpec())
	sink := &stubSink{}

	_, err := session.Submit(context.Background(), sink)
	if !errors.Is(err, ErrIncompleteSubmission) {
		t.Fatalf("expected ErrIncompleteSubmission, got %v", err)
	}
	if sink.calls != 0 {
		t.Errorf("sink must never see a partial photo set, got %d calls", sink.calls)
	}

	for _, id := range []string{"front", "label", "serial"} {
		if err := session.Attach(id, id+".jpg"); err != nil {
			t.Fatal(err)
		}
	}

	report, err := session.Submit(context.Background(), sink)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if report.Status != "Authentic" {
		t.Errorf("unexpected report status %q", report.Status)
	}
	if sink.calls != 1 {
		t.Errorf("expected exactly one sink call, got %d", sink.calls)
	}
	if len(sink.photos) != 3 {
		t.Errorf("sink should receive all 3 photos, got %d", len(sink.photos))
	}
}

func TestSubmitSinkFailurePreservesPhotos(t *testing.T) {
	session, _ := NewSession(threeSlotSpec())
	for _, id := range []string{"front", "label", "serial"} {
		if err := session.Attach(id, id+".jpg"); err != nil {
			t.Fatal(err)
		}
	}

	sinkErr := errors.New("analysis service unreachable")
	if _, err := session.Submit(context.Background(), &stubSink{err: sinkErr}); !errors.Is(err, sinkErr) {
		t.Fatalf("expected sink error to propagate, got %v", err)
	}

	// Retry must not require recapturing.
	if session.FilledCount() != 3 || !session.ReadyToSubmit() {
		t.Error("photos must survive a rejected submission")
	}
	if _, err := session.Submit(context.Background(), &stubSink{}); err != nil {
		t.Fatalf("retry after sink failure: %v", err)
	}
}

func TestPhotosReturnsCopy(t *testing.T) {
	session, _ := NewSession(threeSlotSpec())
	if err := session.Attach("front", "front.jpg"); err != nil {
		t.Fatal(err)
	}

	photos := session.Photos()
	photos["front"] = "tampered.jpg"
	delete(photos, "front")

	if handle, _ := session.Handle("front"); handle != "front.jpg" {
		t.Errorf("mutating the returned map must not affect the session, got %q", handle)
	}
}
