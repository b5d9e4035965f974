//go:build unit || e2e

// Package storetest holds the behaviour every shared.UnitOfWork implementation must show.
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"dorm-services/internal/domain/complaint"
	"dorm-services/internal/domain/reservation"
	"dorm-services/internal/infra"
	"dorm-services/internal/usecase/shared"
	"dorm-services/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store for every call.
type Factory func(t *testing.T) shared.UnitOfWork

var base = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func Run(t *testing.T, newUoW Factory) {
	t.Run("reservations", func(t *testing.T) { RunReservations(t, newUoW) })
	t.Run("bucket", func(t *testing.T) { RunWithinBucket(t, newUoW) })
	t.Run("complaints", func(t *testing.T) { RunComplaints(t, newUoW) })
}

func RunReservations(t *testing.T, newUoW Factory) {
	ctx := context.Background()

	t.Run("insert assigns id and find returns it", func(t *testing.T) {
		store := newUoW(t).Reservations()
		phone := "010-1234-5678"
		in := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) { b.Phone = &phone }).BuildDomain()

		saved, err := store.Insert(ctx, in)
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, saved.ID())

		got, err := store.FindByID(ctx, saved.ID())
		require.NoError(t, err)
		assert.Equal(t, saved.Bucket(), got.Bucket())
		assert.Equal(t, "20231234", got.Requester().ID())
		require.NotNil(t, got.Requester().Phone())
		assert.Equal(t, phone, *got.Requester().Phone())
		assert.Nil(t, got.Requester().Email())
		assert.Equal(t, reservation.StatusConfirmed, got.Status())
		assert.True(t, base.Equal(got.CreatedAt()))
	})

	t.Run("insert keeps a preset id and rejects reuse", func(t *testing.T) {
		store := newUoW(t).Reservations()
		id := uuid.New()

		saved, err := store.Insert(ctx, builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) { b.ID = id }).BuildDomain())
		require.NoError(t, err)
		assert.Equal(t, id, saved.ID())

		_, err = store.Insert(ctx, builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) { b.ID = id }).
			WithRequester("20239999", "이영희").BuildDomain())
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey), "got %v", err)
	})

	t.Run("second active booking of a requester in a bucket is rejected", func(t *testing.T) {
		store := newUoW(t).Reservations()

		_, err := store.Insert(ctx, builder.NewReservationBuilder().BuildDomain())
		require.NoError(t, err)

		_, err = store.Insert(ctx, builder.NewReservationBuilder().WithStatus(reservation.StatusWaitlist).BuildDomain())
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey), "got %v", err)
	})

	t.Run("canceled booking does not block a new one", func(t *testing.T) {
		store := newUoW(t).Reservations()

		_, err := store.Insert(ctx, builder.NewReservationBuilder().WithStatus(reservation.StatusCanceled).BuildDomain())
		require.NoError(t, err)

		_, err = store.Insert(ctx, builder.NewReservationBuilder().BuildDomain())
		assert.NoError(t, err)
	})

	t.Run("find by unknown id is not found", func(t *testing.T) {
		store := newUoW(t).Reservations()

		_, err := store.FindByID(ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)
	})

	t.Run("active in bucket excludes canceled and other buckets, oldest first", func(t *testing.T) {
		store := newUoW(t).Reservations()
		b := builder.NewReservationBuilder().Bucket()

		second := insert(t, store, builder.NewReservationBuilder().WithRequester("s2", "B").WithCreatedAt(base.Add(2*time.Minute)))
		first := insert(t, store, builder.NewReservationBuilder().WithRequester("s1", "A").WithCreatedAt(base.Add(time.Minute)))
		insert(t, store, builder.NewReservationBuilder().WithRequester("s3", "C").WithStatus(reservation.StatusCanceled))
		insert(t, store, builder.NewReservationBuilder().WithRequester("s4", "D").With(func(r *builder.ReservationBuilder) { r.TimeSlot = "11:00-12:00" }))
		third := insert(t, store, builder.NewReservationBuilder().WithRequester("s5", "E").
			WithStatus(reservation.StatusWaitlist).WithCreatedAt(base.Add(3*time.Minute)))

		got, err := store.FindActiveInBucket(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{first.ID(), second.ID(), third.ID()}, ids(got))
	})

	t.Run("equal creation times keep insertion order", func(t *testing.T) {
		store := newUoW(t).Reservations()

		a := insert(t, store, builder.NewReservationBuilder().WithRequester("s1", "A").WithStatus(reservation.StatusWaitlist))
		b := insert(t, store, builder.NewReservationBuilder().WithRequester("s2", "B").WithStatus(reservation.StatusWaitlist))

		got, err := store.FindActiveInBucket(ctx, builder.NewReservationBuilder().Bucket())
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{a.ID(), b.ID()}, ids(got))

		oldest, err := store.FindOldestWaitlisted(ctx, builder.NewReservationBuilder().Bucket())
		require.NoError(t, err)
		require.NotNil(t, oldest)
		assert.Equal(t, a.ID(), oldest.ID())
	})

	t.Run("active by requester ordered by date and slot", func(t *testing.T) {
		store := newUoW(t).Reservations()

		late := insert(t, store, builder.NewReservationBuilder().With(func(r *builder.ReservationBuilder) {
			r.Date, r.TimeSlot = "2025-03-21", "09:00-10:00"
		}))
		evening := insert(t, store, builder.NewReservationBuilder().With(func(r *builder.ReservationBuilder) {
			r.TimeSlot = "19:00-20:00"
		}))
		morning := insert(t, store, builder.NewReservationBuilder().With(func(r *builder.ReservationBuilder) {
			r.SpaceID, r.TimeSlot = "HALL_1", "09:00-10:00"
		}))
		insert(t, store, builder.NewReservationBuilder().WithStatus(reservation.StatusCanceled))
		insert(t, store, builder.NewReservationBuilder().WithRequester("other", "X"))

		got, err := store.FindActiveByRequester(ctx, "20231234")
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{morning.ID(), evening.ID(), late.ID()}, ids(got))
	})

	t.Run("by space and date returns every status", func(t *testing.T) {
		store := newUoW(t).Reservations()

		insert(t, store, builder.NewReservationBuilder().WithRequester("s1", "A"))
		insert(t, store, builder.NewReservationBuilder().WithRequester("s2", "B").WithStatus(reservation.StatusWaitlist))
		insert(t, store, builder.NewReservationBuilder().WithRequester("s3", "C").WithStatus(reservation.StatusCanceled))
		insert(t, store, builder.NewReservationBuilder().WithRequester("s4", "D").With(func(r *builder.ReservationBuilder) { r.Date = "2025-03-21" }))

		got, err := store.FindBySpaceDate(ctx, "ROOM_A", "2025-03-20")
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("update status", func(t *testing.T) {
		store := newUoW(t).Reservations()
		saved := insert(t, store, builder.NewReservationBuilder().WithStatus(reservation.StatusWaitlist))
		at := base.Add(time.Hour)

		updated, err := store.UpdateStatus(ctx, saved.ID(), reservation.StatusConfirmed, at)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusConfirmed, updated.Status())
		assert.True(t, at.Equal(updated.UpdatedAt()))
		assert.True(t, base.Equal(updated.CreatedAt()))

		got, err := store.FindByID(ctx, saved.ID())
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusConfirmed, got.Status())

		_, err = store.UpdateStatus(ctx, uuid.New(), reservation.StatusCanceled, at)
		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)
	})

	t.Run("oldest waitlisted is nil without waitlist", func(t *testing.T) {
		store := newUoW(t).Reservations()
		insert(t, store, builder.NewReservationBuilder())

		got, err := store.FindOldestWaitlisted(ctx, builder.NewReservationBuilder().Bucket())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete", func(t *testing.T) {
		store := newUoW(t).Reservations()
		saved := insert(t, store, builder.NewReservationBuilder())

		require.NoError(t, store.Delete(ctx, saved.ID()))
		_, err := store.FindByID(ctx, saved.ID())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))

		err = store.Delete(ctx, saved.ID())
		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)
	})
}

func RunWithinBucket(t *testing.T, newUoW Factory) {
	ctx := context.Background()
	bucket := builder.NewReservationBuilder().Bucket()

	t.Run("writes are visible after commit", func(t *testing.T) {
		uow := newUoW(t)

		var saved *reservation.Reservation
		err := uow.WithinBucket(ctx, bucket, func(ctx context.Context, store shared.ReservationStore) error {
			var err error
			saved, err = store.Insert(ctx, builder.NewReservationBuilder().BuildDomain())
			return err
		})
		require.NoError(t, err)

		got, err := uow.Reservations().FindByID(ctx, saved.ID())
		require.NoError(t, err)
		assert.Equal(t, saved.ID(), got.ID())
	})

	t.Run("failure rolls back every write", func(t *testing.T) {
		uow := newUoW(t)
		existing := insert(t, uow.Reservations(), builder.NewReservationBuilder().WithRequester("s0", "Z").WithStatus(reservation.StatusWaitlist))

		var inserted *reservation.Reservation
		err := uow.WithinBucket(ctx, bucket, func(ctx context.Context, store shared.ReservationStore) error {
			var err error
			inserted, err = store.Insert(ctx, builder.NewReservationBuilder().BuildDomain())
			if err != nil {
				return err
			}
			if _, err := store.UpdateStatus(ctx, existing.ID(), reservation.StatusConfirmed, base.Add(time.Hour)); err != nil {
				return err
			}
			return assert.AnError
		})
		require.ErrorIs(t, err, assert.AnError)

		_, err = uow.Reservations().FindByID(ctx, inserted.ID())
		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)

		got, err := uow.Reservations().FindByID(ctx, existing.ID())
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusWaitlist, got.Status())
	})

	t.Run("same bucket is serialized", func(t *testing.T) {
		uow := newUoW(t)
		const workers = 8

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			inside   int
			maxInner int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := uow.WithinBucket(ctx, bucket, func(ctx context.Context, _ shared.ReservationStore) error {
					mu.Lock()
					inside++
					if inside > maxInner {
						maxInner = inside
					}
					mu.Unlock()

					time.Sleep(5 * time.Millisecond)

					mu.Lock()
					inside--
					mu.Unlock()
					return nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, maxInner)
	})

	t.Run("canceled context while waiting for the bucket", func(t *testing.T) {
		uow := newUoW(t)
		held := make(chan struct{})
		release := make(chan struct{})

		go func() {
			_ = uow.WithinBucket(ctx, bucket, func(context.Context, shared.ReservationStore) error {
				close(held)
				<-release
				return nil
			})
		}()
		<-held
		defer close(release)

		waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		err := uow.WithinBucket(waitCtx, bucket, func(context.Context, shared.ReservationStore) error {
			t.Error("fn must not run without the bucket lock")
			return nil
		})
		assert.Error(t, err)
	})
}

func RunComplaints(t *testing.T, newUoW Factory) {
	ctx := context.Background()

	t.Run("insert and find", func(t *testing.T) {
		store := newUoW(t).Complaints()

		saved, err := store.Insert(ctx, builder.NewComplaintBuilder().BuildDomain())
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, saved.ID())

		got, err := store.FindByID(ctx, saved.ID())
		require.NoError(t, err)
		assert.Equal(t, "형광등 깜빡임", got.Title())
		assert.Equal(t, complaint.UrgencyNormal, got.Urgency())
		assert.Equal(t, complaint.StatusReceived, got.Status())

		_, err = store.FindByID(ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)
	})

	t.Run("list filters and orders newest first", func(t *testing.T) {
		store := newUoW(t).Complaints()

		oldUrgent := insertComplaint(t, store, builder.NewComplaintBuilder().
			With(func(b *builder.ComplaintBuilder) { b.Urgency = complaint.UrgencyUrgent }).WithCreatedAt(base))
		newUrgent := insertComplaint(t, store, builder.NewComplaintBuilder().
			With(func(b *builder.ComplaintBuilder) { b.Urgency = complaint.UrgencyUrgent }).WithCreatedAt(base.Add(time.Hour)))
		resolvedLow := insertComplaint(t, store, builder.NewComplaintBuilder().
			With(func(b *builder.ComplaintBuilder) {
				b.Urgency, b.Status = complaint.UrgencyLow, complaint.StatusResolved
			}).WithCreatedAt(base.Add(2*time.Hour)))

		all, err := store.List(ctx, shared.ComplaintFilter{})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{resolvedLow.ID(), newUrgent.ID(), oldUrgent.ID()}, complaintIDs(all))

		urgent := complaint.UrgencyUrgent
		got, err := store.List(ctx, shared.ComplaintFilter{Urgency: &urgent})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{newUrgent.ID(), oldUrgent.ID()}, complaintIDs(got))

		resolved := complaint.StatusResolved
		got, err = store.List(ctx, shared.ComplaintFilter{Status: &resolved})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{resolvedLow.ID()}, complaintIDs(got))

		got, err = store.List(ctx, shared.ComplaintFilter{Urgency: &urgent, Status: &resolved})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("list by student", func(t *testing.T) {
		store := newUoW(t).Complaints()

		older := insertComplaint(t, store, builder.NewComplaintBuilder().WithCreatedAt(base))
		newer := insertComplaint(t, store, builder.NewComplaintBuilder().WithCreatedAt(base.Add(time.Minute)))
		insertComplaint(t, store, builder.NewComplaintBuilder().With(func(b *builder.ComplaintBuilder) { b.StudentID = "other" }))

		got, err := store.ListByStudent(ctx, "20231234")
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{newer.ID(), older.ID()}, complaintIDs(got))
	})

	t.Run("update status and delete", func(t *testing.T) {
		store := newUoW(t).Complaints()
		saved := insertComplaint(t, store, builder.NewComplaintBuilder())
		at := base.Add(time.Hour)

		updated, err := store.UpdateStatus(ctx, saved.ID(), complaint.StatusInProgress, at)
		require.NoError(t, err)
		assert.Equal(t, complaint.StatusInProgress, updated.Status())
		assert.True(t, at.Equal(updated.UpdatedAt()))

		_, err = store.UpdateStatus(ctx, uuid.New(), complaint.StatusResolved, at)
		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)

		require.NoError(t, store.Delete(ctx, saved.ID()))
		err = store.Delete(ctx, saved.ID())
		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)
	})
}

func insert(t *testing.T, store shared.ReservationStore, b *builder.ReservationBuilder) *reservation.Reservation {
	t.Helper()
	saved, err := store.Insert(context.Background(), b.BuildDomain())
	require.NoError(t, err)
	return saved
}

func insertComplaint(t *testing.T, store shared.ComplaintStore, b *builder.ComplaintBuilder) *complaint.Complaint {
	t.Helper()
	saved, err := store.Insert(context.Background(), b.BuildDomain())
	require.NoError(t, err)
	return saved
}

func ids(rs []*reservation.Reservation) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID())
	}
	return out
}

func complaintIDs(cs []*complaint.Complaint) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID())
	}
	return out
}
