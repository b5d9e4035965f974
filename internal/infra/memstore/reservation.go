package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"dorm-services/internal/domain/reservation"
	"dorm-services/internal/infra"

	"github.com/google/uuid"
)

type reservationEntry struct {
	res *reservation.Reservation
	seq int64
}

// ReservationStore keeps reservations in process memory. The zero value is not usable.
type ReservationStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]reservationEntry
	seq     int64
}

func NewReservationStore() *ReservationStore {
	return &ReservationStore{
		records: make(map[uuid.UUID]reservationEntry),
	}
}

func (s *ReservationStore) Insert(_ context.Context, r *reservation.Reservation) (*reservation.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID() == uuid.Nil {
		r = r.WithID(uuid.New())
	}
	if _, exists := s.records[r.ID()]; exists {
		return nil, infra.WrapRepoErr("reservation id already exists", nil, infra.KindDuplicateKey)
	}
	if r.IsActive() {
		for _, e := range s.records {
			if e.res.IsActive() && e.res.Bucket() == r.Bucket() && e.res.Requester().ID() == r.Requester().ID() {
				return nil, infra.WrapRepoErr("active reservation already exists for requester", nil, infra.KindDuplicateKey)
			}
		}
	}

	s.seq++
	s.records[r.ID()] = reservationEntry{res: cloneReservation(r), seq: s.seq}
	return cloneReservation(r), nil
}

func (s *ReservationStore) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.records[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return cloneReservation(e.res), nil
}

func (s *ReservationStore) FindActiveInBucket(_ context.Context, bucket reservation.Bucket) ([]*reservation.Reservation, error) {
	entries := s.collect(func(r *reservation.Reservation) bool {
		return r.IsActive() && r.Bucket() == bucket
	})
	sort.Slice(entries, func(i, j int) bool {
		return createdBefore(entries[i], entries[j])
	})
	return unwrap(entries), nil
}

func (s *ReservationStore) FindActiveByRequester(_ context.Context, requesterID string) ([]*reservation.Reservation, error) {
	entries := s.collect(func(r *reservation.Reservation) bool {
		return r.IsActive() && r.Requester().ID() == requesterID
	})
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].res, entries[j].res
		if a.Date() != b.Date() {
			return a.Date() < b.Date()
		}
		if a.TimeSlot() != b.TimeSlot() {
			return a.TimeSlot() < b.TimeSlot()
		}
		return createdBefore(entries[i], entries[j])
	})
	return unwrap(entries), nil
}

func (s *ReservationStore) FindBySpaceDate(_ context.Context, spaceID, date string) ([]*reservation.Reservation, error) {
	entries := s.collect(func(r *reservation.Reservation) bool {
		return r.SpaceID() == spaceID && r.Date() == date
	})
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].res, entries[j].res
		if a.TimeSlot() != b.TimeSlot() {
			return a.TimeSlot() < b.TimeSlot()
		}
		return createdBefore(entries[i], entries[j])
	})
	return unwrap(entries), nil
}

func (s *ReservationStore) UpdateStatus(_ context.Context, id uuid.UUID, status reservation.Status, at time.Time) (*reservation.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.records[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	e.res = withStatus(e.res, status, at)
	s.records[id] = e
	return cloneReservation(e.res), nil
}

func (s *ReservationStore) FindOldestWaitlisted(_ context.Context, bucket reservation.Bucket) (*reservation.Reservation, error) {
	entries := s.collect(func(r *reservation.Reservation) bool {
		return r.Status() == reservation.StatusWaitlist && r.Bucket() == bucket
	})
	if len(entries) == 0 {
		return nil, nil
	}
	oldest := entries[0]
	for _, e := range entries[1:] {
		if createdBefore(e, oldest) {
			oldest = e
		}
	}
	return oldest.res, nil
}

func (s *ReservationStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	delete(s.records, id)
	return nil
}

func (s *ReservationStore) snapshot(id uuid.UUID) (reservationEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.records[id]
	return e, ok
}

func (s *ReservationStore) restore(id uuid.UUID, e reservationEntry, existed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existed {
		s.records[id] = e
	} else {
		delete(s.records, id)
	}
}

// collect returns clones of the matching entries.
func (s *ReservationStore) collect(match func(*reservation.Reservation) bool) []reservationEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []reservationEntry
	for _, e := range s.records {
		if match(e.res) {
			out = append(out, reservationEntry{res: cloneReservation(e.res), seq: e.seq})
		}
	}
	return out
}

func createdBefore(a, b reservationEntry) bool {
	if !a.res.CreatedAt().Equal(b.res.CreatedAt()) {
		return a.res.CreatedAt().Before(b.res.CreatedAt())
	}
	return a.seq < b.seq
}

func unwrap(entries []reservationEntry) []*reservation.Reservation {
	out := make([]*reservation.Reservation, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.res)
	}
	return out
}

func cloneReservation(r *reservation.Reservation) *reservation.Reservation {
	cp := *r
	return &cp
}

func withStatus(r *reservation.Reservation, status reservation.Status, at time.Time) *reservation.Reservation {
	return reservation.ReconstructReservation(r.ID(), r.Bucket(), r.Requester(), status, r.CreatedAt(), at)
}
