package commands

import (
	"context"
	"time"

	"dorm-services/internal/domain/reservation"

	"github.com/google/uuid"
)

type EventType string

const (
	EventReservationCreated  EventType = "reservation.created"
	EventReservationCanceled EventType = "reservation.canceled"
	EventReservationPromoted EventType = "reservation.promoted"
)

// ReservationEvent is published after the bucket transaction has committed.
type ReservationEvent struct {
	Type          EventType `json:"type"`
	ReservationID uuid.UUID `json:"reservationId"`
	SpaceID       string    `json:"spaceId"`
	Date          string    `json:"date"`
	TimeSlot      string    `json:"timeSlot"`
	StudentID     string    `json:"studentId"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurredAt"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event ReservationEvent) error
}

func newReservationEvent(t EventType, r *reservation.Reservation, at time.Time) ReservationEvent {
	return ReservationEvent{
		Type:          t,
		ReservationID: r.ID(),
		SpaceID:       r.SpaceID(),
		Date:          r.Date(),
		TimeSlot:      r.TimeSlot(),
		StudentID:     r.Requester().ID(),
		Status:        r.Status().String(),
		OccurredAt:    at,
	}
}
