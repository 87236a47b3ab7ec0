package capture

import "errors"

var (
	// ErrInvalidSpec means the catalog handed over an unusable capture spec
	// (nil, no slots, or duplicate slot ids). Fatal to workflow start.
	ErrInvalidSpec = errors.New("invalid capture spec")

	// ErrIndexOutOfRange means a caller selected a slot index outside the
	// spec. A defect in caller wiring, never a user-facing condition.
	ErrIndexOutOfRange = errors.New("slot index out of range")

	// ErrUnknownSlot means a photo was attached for a slot id the spec
	// does not define.
	ErrUnknownSlot = errors.New("unknown slot id")

	// ErrCancelled means the user backed out of the camera or gallery UI.
	// Recovered locally; the slot stays unfilled.
	ErrCancelled = errors.New("capture cancelled")

	// ErrIncompleteSubmission means Submit was called before every slot
	// was filled. The sink must never receive a partial photo set.
	ErrIncompleteSubmission = errors.New("incomplete submission: not all required photos captured")
)
