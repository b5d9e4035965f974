package complaint

import (
	"fmt"
	"strings"
)

type Urgency string

const (
	UrgencyUrgent Urgency = "urgent"
	UrgencyNormal Urgency = "normal"
	UrgencyLow    Urgency = "low"
)

func (u Urgency) String() string { return string(u) }

// ParseUrgency also accepts the Korean labels used by the original forms.
func ParseUrgency(raw string) (Urgency, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "urgent", "긴급":
		return UrgencyUrgent, nil
	case "normal", "보통":
		return UrgencyNormal, nil
	case "low", "낮음":
		return UrgencyLow, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidUrgency, raw)
	}
}

type Status string

const (
	StatusReceived   Status = "received"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

func (s Status) String() string { return string(s) }

func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "received", "접수":
		return StatusReceived, nil
	case "in_progress", "in-progress", "inprogress", "처리중":
		return StatusInProgress, nil
	case "resolved", "처리완료":
		return StatusResolved, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}
