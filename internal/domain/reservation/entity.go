package reservation

import (
	"time"

	"github.com/google/uuid"
)

type Reservation struct {
	id        uuid.UUID
	bucket    Bucket
	requester Requester
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewReservation leaves the id nil; the store assigns one at insert.
func NewReservation(bucket Bucket, requester Requester, status Status, now time.Time) *Reservation {
	return &Reservation{
		bucket:    bucket,
		requester: requester,
		status:    status,
		createdAt: now,
		updatedAt: now,
	}
}

func ReconstructReservation(
	id uuid.UUID,
	bucket Bucket,
	requester Requester,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		bucket:    bucket,
		requester: requester,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// DecideStatus is the admission rule for a bucket holding confirmed seats out of capacity.
func DecideStatus(confirmed, capacity int) Status {
	if confirmed < capacity {
		return StatusConfirmed
	}
	return StatusWaitlist
}

func CountConfirmed(rs []*Reservation) int {
	n := 0
	for _, r := range rs {
		if r.status == StatusConfirmed {
			n++
		}
	}
	return n
}

// Cancel moves an active reservation to canceled, which is terminal.
func (r *Reservation) Cancel(now time.Time) error {
	if !r.status.IsActive() {
		return ErrInvalidTransition
	}
	r.status = StatusCanceled
	r.updatedAt = now
	return nil
}

// Promote moves a waitlisted reservation to confirmed.
func (r *Reservation) Promote(now time.Time) error {
	if r.status != StatusWaitlist {
		return ErrInvalidTransition
	}
	r.status = StatusConfirmed
	r.updatedAt = now
	return nil
}

// WithID returns a copy carrying the store-assigned id.
func (r *Reservation) WithID(id uuid.UUID) *Reservation {
	cp := *r
	cp.id = id
	return &cp
}

func (r *Reservation) IsActive() bool   { return r.status.IsActive() }
func (r *Reservation) IsCanceled() bool { return r.status == StatusCanceled }

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) Bucket() Bucket       { return r.bucket }
func (r *Reservation) SpaceID() string      { return r.bucket.SpaceID }
func (r *Reservation) Date() string         { return r.bucket.Date }
func (r *Reservation) TimeSlot() string     { return r.bucket.TimeSlot }
func (r *Reservation) Requester() Requester { return r.requester }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }
