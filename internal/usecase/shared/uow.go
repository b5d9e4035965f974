package shared

import (
	"context"
	"time"

	"dorm-services/internal/domain/complaint"
	"dorm-services/internal/domain/reservation"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// WithinBucket serializes fn against every other caller holding the same bucket.
	// Writes made through the given store are committed together or not at all.
	WithinBucket(ctx context.Context, bucket reservation.Bucket, fn func(ctx context.Context, store ReservationStore) error) error
	// Reservations: single statements outside any bucket lock
	Reservations() ReservationStore
	Complaints() ComplaintStore
}

type ReservationStore interface {
	// Insert assigns an id when the reservation has none.
	Insert(ctx context.Context, r *reservation.Reservation) (*reservation.Reservation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// FindActiveInBucket returns confirmed and waitlisted reservations, oldest first.
	FindActiveInBucket(ctx context.Context, bucket reservation.Bucket) ([]*reservation.Reservation, error)
	// FindActiveByRequester orders by date, time slot, then creation.
	FindActiveByRequester(ctx context.Context, requesterID string) ([]*reservation.Reservation, error)
	// FindBySpaceDate returns every status.
	FindBySpaceDate(ctx context.Context, spaceID, date string) ([]*reservation.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status, at time.Time) (*reservation.Reservation, error)
	// FindOldestWaitlisted returns nil, nil when the bucket has no waitlist.
	FindOldestWaitlisted(ctx context.Context, bucket reservation.Bucket) (*reservation.Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ComplaintFilter struct {
	Urgency *complaint.Urgency
	Status  *complaint.Status
}

type ComplaintStore interface {
	Insert(ctx context.Context, c *complaint.Complaint) (*complaint.Complaint, error)
	FindByID(ctx context.Context, id uuid.UUID) (*complaint.Complaint, error)
	// List and ListByStudent return newest first.
	List(ctx context.Context, filter ComplaintFilter) ([]*complaint.Complaint, error)
	ListByStudent(ctx context.Context, studentID string) ([]*complaint.Complaint, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status complaint.Status, at time.Time) (*complaint.Complaint, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenDenylist remembers revoked JWT ids until they would have expired anyway.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
