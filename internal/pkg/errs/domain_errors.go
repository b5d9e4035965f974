package errs

// Domain-specific sentinel errors shared by the command and query sides
var (
	// Validation errors
	ErrInvalidSpace = New("invalid space")
	ErrMissingField = New("missing required field")
	ErrInvalidField = New("invalid field value")

	// Reservation errors
	ErrDuplicateBooking    = New("duplicate booking")
	ErrReservationNotFound = New("reservation not found")
	ErrReservationActive   = New("reservation is still active")

	// Complaint errors
	ErrComplaintNotFound      = New("complaint not found")
	ErrInvalidComplaintStatus = New("invalid complaint status")

	// Store errors
	ErrConflict           = New("conflict")
	ErrStorageUnavailable = New("storage unavailable")
)
