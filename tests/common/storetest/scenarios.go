//go:build unit || e2e

package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"dorm-services/internal/domain/reservation"
	"dorm-services/internal/domain/space"
	reqdto "dorm-services/internal/handler/dto/request"
	"dorm-services/internal/pkg/clock"
	"dorm-services/internal/pkg/errs"
	"dorm-services/internal/usecase/commands"
	"dorm-services/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type allocator struct {
	cmd commands.ReservationCommands
	qry queries.ReservationQueries
}

func newAllocator(t *testing.T, newUoW Factory) allocator {
	uow := newUoW(t)
	catalog := space.DefaultCatalog()
	clk := clock.NewTickingClock(base, time.Millisecond)
	return allocator{
		cmd: commands.NewReservationCommands(uow, catalog, nil, nil, clk),
		qry: queries.NewReservationQueries(uow, catalog),
	}
}

func book(spaceID, date, slot, studentID string) reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		SpaceID:     spaceID,
		Date:        date,
		TimeSlot:    slot,
		StudentID:   studentID,
		StudentName: "학생 " + studentID,
	}
}

// RunAllocatorScenarios drives the booking and cancellation use cases on top of a store.
func RunAllocatorScenarios(t *testing.T, newUoW Factory) {
	ctx := context.Background()
	const (
		date = "2025-03-20"
		slot = "10:00-11:00"
	)

	t.Run("third booking waits and is promoted when the first cancels", func(t *testing.T) {
		a := newAllocator(t, newUoW)

		first, err := a.cmd.CreateReservation(ctx, book("ROOM_A", date, slot, "A"))
		require.NoError(t, err)
		second, err := a.cmd.CreateReservation(ctx, book("ROOM_A", date, slot, "B"))
		require.NoError(t, err)
		third, err := a.cmd.CreateReservation(ctx, book("ROOM_A", date, slot, "C"))
		require.NoError(t, err)

		assert.Equal(t, "confirmed", first.Status)
		assert.Equal(t, "confirmed", second.Status)
		assert.Equal(t, "waitlist", third.Status)

		result, err := a.cmd.CancelReservation(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, result.Canceled.ID)
		assert.Equal(t, "canceled", result.Canceled.Status)
		require.NotNil(t, result.Promoted)
		assert.Equal(t, third.ID, result.Promoted.ID)
		assert.Equal(t, "confirmed", result.Promoted.Status)

		avail, err := a.qry.GetAvailability(ctx, "ROOM_A", date)
		require.NoError(t, err)
		s := findSlot(t, avail, slot)
		assert.Equal(t, 2, s.Confirmed)
		assert.Equal(t, 0, s.Available)
	})

	t.Run("empty day reports full capacity for every slot", func(t *testing.T) {
		a := newAllocator(t, newUoW)

		avail, err := a.qry.GetAvailability(ctx, "HALL_1", "2025-01-01")
		require.NoError(t, err)
		require.Len(t, avail.Slots, 12)
		for _, s := range avail.Slots {
			assert.Equal(t, 10, s.Capacity)
			assert.Equal(t, 0, s.Confirmed)
			assert.Equal(t, 10, s.Available)
		}
	})

	t.Run("duplicate active booking is rejected without changing counts", func(t *testing.T) {
		a := newAllocator(t, newUoW)

		_, err := a.cmd.CreateReservation(ctx, book("ROOM_A", date, slot, "S1"))
		require.NoError(t, err)

		_, err = a.cmd.CreateReservation(ctx, book("ROOM_A", date, slot, "S1"))
		assert.True(t, errs.Is(err, errs.ErrDuplicateBooking), "got %v", err)

		avail, err := a.qry.GetAvailability(ctx, "ROOM_A", date)
		require.NoError(t, err)
		assert.Equal(t, 1, findSlot(t, avail, slot).Confirmed)
	})

	t.Run("rebooking after cancel is allowed", func(t *testing.T) {
		a := newAllocator(t, newUoW)

		first, err := a.cmd.CreateReservation(ctx, book("ROOM_A", date, slot, "S1"))
		require.NoError(t, err)
		_, err = a.cmd.CancelReservation(ctx, first.ID)
		require.NoError(t, err)

		again, err := a.cmd.CreateReservation(ctx, book("ROOM_A", date, slot, "S1"))
		require.NoError(t, err)
		assert.Equal(t, "confirmed", again.Status)
	})

	t.Run("cancel of unknown or canceled reservation is not found", func(t *testing.T) {
		a := newAllocator(t, newUoW)

		_, err := a.cmd.CancelReservation(ctx, uuid.New())
		assert.True(t, errs.Is(err, errs.ErrReservationNotFound), "got %v", err)

		r, err := a.cmd.CreateReservation(ctx, book("ROOM_A", date, slot, "S1"))
		require.NoError(t, err)
		_, err = a.cmd.CancelReservation(ctx, r.ID)
		require.NoError(t, err)

		_, err = a.cmd.CancelReservation(ctx, r.ID)
		assert.True(t, errs.Is(err, errs.ErrReservationNotFound), "got %v", err)
	})

	t.Run("canceling a waitlisted reservation promotes nobody", func(t *testing.T) {
		a := newAllocator(t, newUoW)

		for _, s := range []string{"A", "B"} {
			_, err := a.cmd.CreateReservation(ctx, book("ROOM_B", date, slot, s))
			require.NoError(t, err)
		}
		waiting, err := a.cmd.CreateReservation(ctx, book("ROOM_B", date, slot, "C"))
		require.NoError(t, err)
		later, err := a.cmd.CreateReservation(ctx, book("ROOM_B", date, slot, "D"))
		require.NoError(t, err)

		result, err := a.cmd.CancelReservation(ctx, waiting.ID)
		require.NoError(t, err)
		assert.Nil(t, result.Promoted)

		mine, err := a.qry.ListMyReservations(ctx, "D")
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, later.ID, mine[0].ID)
		assert.Equal(t, "waitlist", mine[0].Status)
	})

	t.Run("waitlist is promoted in arrival order", func(t *testing.T) {
		a := newAllocator(t, newUoW)

		var confirmed []uuid.UUID
		for _, s := range []string{"A", "B"} {
			r, err := a.cmd.CreateReservation(ctx, book("ROOM_A", date, slot, s))
			require.NoError(t, err)
			confirmed = append(confirmed, r.ID)
		}
		var waiting []uuid.UUID
		for _, s := range []string{"W1", "W2", "W3"} {
			r, err := a.cmd.CreateReservation(ctx, book("ROOM_A", date, slot, s))
			require.NoError(t, err)
			waiting = append(waiting, r.ID)
		}

		for i, id := range confirmed {
			result, err := a.cmd.CancelReservation(ctx, id)
			require.NoError(t, err)
			require.NotNil(t, result.Promoted)
			assert.Equal(t, waiting[i], result.Promoted.ID)
		}
	})

	t.Run("concurrent bookings never exceed capacity", func(t *testing.T) {
		a := newAllocator(t, newUoW)
		const students = 30

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			statuses = map[string]int{}
		)
		for i := 0; i < students; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				r, err := a.cmd.CreateReservation(ctx, book("HALL_1", date, slot, fmt.Sprintf("S%02d", i)))
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				statuses[r.Status]++
				mu.Unlock()
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 10, statuses["confirmed"])
		assert.Equal(t, students-10, statuses["waitlist"])

		avail, err := a.qry.GetAvailability(ctx, "HALL_1", date)
		require.NoError(t, err)
		assert.Equal(t, 10, findSlot(t, avail, slot).Confirmed)
	})

	t.Run("two students race for the last seat", func(t *testing.T) {
		a := newAllocator(t, newUoW)

		_, err := a.cmd.CreateReservation(ctx, book("ROOM_A", date, slot, "first"))
		require.NoError(t, err)

		results := make(chan string, 2)
		var wg sync.WaitGroup
		for _, s := range []string{"racer-1", "racer-2"} {
			wg.Add(1)
			go func(s string) {
				defer wg.Done()
				r, err := a.cmd.CreateReservation(ctx, book("ROOM_A", date, slot, s))
				if assert.NoError(t, err) {
					results <- r.Status
				}
			}(s)
		}
		wg.Wait()
		close(results)

		got := map[string]int{}
		for s := range results {
			got[s]++
		}
		assert.Equal(t, map[string]int{"confirmed": 1, "waitlist": 1}, got)
	})

	t.Run("concurrent cancels promote each waiter once", func(t *testing.T) {
		a := newAllocator(t, newUoW)

		var confirmed []uuid.UUID
		for _, s := range []string{"A", "B"} {
			r, err := a.cmd.CreateReservation(ctx, book("ROOM_A", date, slot, s))
			require.NoError(t, err)
			confirmed = append(confirmed, r.ID)
		}
		for _, s := range []string{"W1", "W2", "W3"} {
			_, err := a.cmd.CreateReservation(ctx, book("ROOM_A", date, slot, s))
			require.NoError(t, err)
		}

		var wg sync.WaitGroup
		for _, id := range confirmed {
			wg.Add(1)
			go func(id uuid.UUID) {
				defer wg.Done()
				_, err := a.cmd.CancelReservation(ctx, id)
				assert.NoError(t, err)
			}(id)
		}
		wg.Wait()

		all, err := a.qry.ListBySpaceDate(ctx, "ROOM_A", date)
		require.NoError(t, err)
		counts := map[string]int{}
		for _, r := range all {
			counts[r.Status]++
		}
		assert.Equal(t, map[string]int{
			reservation.StatusConfirmed.String(): 2,
			reservation.StatusWaitlist.String():  1,
			reservation.StatusCanceled.String():  2,
		}, counts)
	})
}

func findSlot(t *testing.T, avail *queries.AvailabilityView, label string) queries.SlotAvailabilityView {
	t.Helper()
	for _, s := range avail.Slots {
		if s.TimeSlot == label {
			return s
		}
	}
	t.Fatalf("slot %s missing from availability", label)
	return queries.SlotAvailabilityView{}
}
