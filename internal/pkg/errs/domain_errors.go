package errs

// Error kinds surfaced to callers of the booking core. All of them are
// expected outcomes and are never retried internally.
var (
	// Admission
	ErrActivityNotBookable = New("activity is not bookable")
	ErrActivityFull        = New("activity is full")
	ErrDuplicateBooking    = New("user already holds a live booking for this activity")

	// Booking lifecycle
	ErrBookingNotFound    = New("booking not found")
	ErrAlreadyCancelled   = New("booking is already cancelled")
	ErrInvalidState       = New("invalid booking state transition")
	ErrActivityNotStarted = New("activity has not started yet")

	// History
	ErrInvalidOutcome = New("invalid outcome status")

	// Store failures that are safe to retry with the same arguments
	ErrStoreUnavailable = New("store unavailable")
)
