//go:build unit || e2e

package builder

import (
	"time"

	"dorm-services/internal/domain/reservation"
	reqdto "dorm-services/internal/handler/dto/request"
	"dorm-services/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID            uuid.UUID
	SpaceID       string
	Date          string
	TimeSlot      string
	RequesterID   string
	RequesterName string
	Phone         *string
	Email         *string
	Status        reservation.Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		SpaceID:       "ROOM_A",
		Date:          "2025-03-20",
		TimeSlot:      "10:00-11:00",
		RequesterID:   "20231234",
		RequesterName: "김민수",
		Status:        reservation.StatusConfirmed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithBucket(bucket reservation.Bucket) *ReservationBuilder {
	b.SpaceID, b.Date, b.TimeSlot = bucket.SpaceID, bucket.Date, bucket.TimeSlot
	return b
}

func (b *ReservationBuilder) WithRequester(id, name string) *ReservationBuilder {
	b.RequesterID, b.RequesterName = id, name
	return b
}

func (b *ReservationBuilder) WithStatus(status reservation.Status) *ReservationBuilder {
	b.Status = status
	return b
}

func (b *ReservationBuilder) WithCreatedAt(at time.Time) *ReservationBuilder {
	b.CreatedAt, b.UpdatedAt = at, at
	return b
}

func (b *ReservationBuilder) Bucket() reservation.Bucket {
	return reservation.NewBucket(b.SpaceID, b.Date, b.TimeSlot)
}

// Build methods
func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	return reservation.ReconstructReservation(
		b.ID,
		b.Bucket(),
		reservation.ReconstructRequester(b.RequesterID, b.RequesterName, b.Phone, b.Email),
		b.Status,
		b.CreatedAt,
		b.UpdatedAt,
	)
}

func (b *ReservationBuilder) BuildView() queries.ReservationView {
	id := b.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return queries.ReservationView{
		ID:          id,
		SpaceID:     b.SpaceID,
		SpaceName:   "스터디룸 A",
		Date:        b.Date,
		TimeSlot:    b.TimeSlot,
		StudentID:   b.RequesterID,
		StudentName: b.RequesterName,
		Phone:       b.Phone,
		Email:       b.Email,
		Status:      b.Status.String(),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		SpaceID:     b.SpaceID,
		Date:        b.Date,
		TimeSlot:    b.TimeSlot,
		StudentID:   b.RequesterID,
		StudentName: b.RequesterName,
		Phone:       b.Phone,
		Email:       b.Email,
	}
}
