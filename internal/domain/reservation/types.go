package reservation

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusWaitlist  Status = "waitlist"
	StatusCanceled  Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusWaitlist, StatusCanceled:
		return true
	default:
		return false
	}
}

// IsActive reports whether the reservation still counts against its bucket.
func (s Status) IsActive() bool {
	return s == StatusConfirmed || s == StatusWaitlist
}

// ParseStatus normalizes stored spellings such as "Cancelled" or " WAITLISTED ".
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "confirmed":
		return StatusConfirmed, nil
	case "waitlist", "waitlisted", "waiting":
		return StatusWaitlist, nil
	case "canceled", "cancelled":
		return StatusCanceled, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}
