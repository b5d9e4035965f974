package memstore

import (
	"context"
	"sync"
	"time"

	"dorm-services/internal/domain/reservation"
	"dorm-services/internal/usecase/shared"

	"github.com/google/uuid"
)

type UnitOfWork struct {
	reservations *ReservationStore
	complaints   *ComplaintStore

	mu    sync.Mutex
	locks map[string]*bucketLock
}

// bucketLock is dropped from the map once no caller holds or waits on it.
type bucketLock struct {
	ch   chan struct{}
	refs int
}

func NewUnitOfWork(reservations *ReservationStore, complaints *ComplaintStore) shared.UnitOfWork {
	return &UnitOfWork{
		reservations: reservations,
		complaints:   complaints,
		locks:        make(map[string]*bucketLock),
	}
}

func (u *UnitOfWork) Reservations() shared.ReservationStore {
	return u.reservations
}

func (u *UnitOfWork) Complaints() shared.ComplaintStore {
	return u.complaints
}

// WithinBucket holds the bucket lock for the duration of fn and undoes fn's writes when it fails.
func (u *UnitOfWork) WithinBucket(ctx context.Context, bucket reservation.Bucket, fn func(ctx context.Context, store shared.ReservationStore) error) error {
	key := bucket.Key()
	lock := u.acquireLock(key)
	defer u.releaseLock(key, lock)

	select {
	case lock.ch <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-lock.ch }()

	tx := &journaledStore{ReservationStore: u.reservations}
	if err := fn(ctx, tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

func (u *UnitOfWork) acquireLock(key string) *bucketLock {
	u.mu.Lock()
	defer u.mu.Unlock()

	l, ok := u.locks[key]
	if !ok {
		l = &bucketLock{ch: make(chan struct{}, 1)}
		u.locks[key] = l
	}
	l.refs++
	return l
}

func (u *UnitOfWork) releaseLock(key string, l *bucketLock) {
	u.mu.Lock()
	defer u.mu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(u.locks, key)
	}
}

func (u *UnitOfWork) lockCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.locks)
}

type undoEntry struct {
	id      uuid.UUID
	prev    reservationEntry
	existed bool
}

// journaledStore records the previous state of every record it touches.
type journaledStore struct {
	*ReservationStore
	journal []undoEntry
}

func (j *journaledStore) Insert(ctx context.Context, r *reservation.Reservation) (*reservation.Reservation, error) {
	inserted, err := j.ReservationStore.Insert(ctx, r)
	if err != nil {
		return nil, err
	}
	j.journal = append(j.journal, undoEntry{id: inserted.ID()})
	return inserted, nil
}

func (j *journaledStore) UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status, at time.Time) (*reservation.Reservation, error) {
	j.remember(id)
	return j.ReservationStore.UpdateStatus(ctx, id, status, at)
}

func (j *journaledStore) Delete(ctx context.Context, id uuid.UUID) error {
	j.remember(id)
	return j.ReservationStore.Delete(ctx, id)
}

func (j *journaledStore) remember(id uuid.UUID) {
	prev, existed := j.ReservationStore.snapshot(id)
	j.journal = append(j.journal, undoEntry{id: id, prev: prev, existed: existed})
}

func (j *journaledStore) rollback() {
	for i := len(j.journal) - 1; i >= 0; i-- {
		e := j.journal[i]
		j.ReservationStore.restore(e.id, e.prev, e.existed)
	}
	j.journal = nil
}
