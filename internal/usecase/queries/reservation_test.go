//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"dorm-services/internal/domain/reservation"
	"dorm-services/internal/domain/space"
	"dorm-services/internal/infra/memstore"
	"dorm-services/internal/pkg/errs"
	"dorm-services/internal/usecase/queries"
	"dorm-services/internal/usecase/shared"
	"dorm-services/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUoW(t *testing.T) shared.UnitOfWork {
	t.Helper()
	return memstore.NewUnitOfWork(memstore.NewReservationStore(), memstore.NewComplaintStore())
}

func seedReservations(t *testing.T, uow shared.UnitOfWork, builders ...*builder.ReservationBuilder) []*reservation.Reservation {
	t.Helper()
	saved := make([]*reservation.Reservation, 0, len(builders))
	for _, b := range builders {
		r, err := uow.Reservations().Insert(context.Background(), b.BuildDomain())
		require.NoError(t, err)
		saved = append(saved, r)
	}
	return saved
}

func TestReservationQueries_ListSpaces(t *testing.T) {
	q := queries.NewReservationQueries(newUoW(t), space.DefaultCatalog())

	got := q.ListSpaces(context.Background())

	want := []queries.SpaceView{
		{ID: "ROOM_A", Name: "스터디룸 A", Capacity: 2},
		{ID: "ROOM_B", Name: "스터디룸 B", Capacity: 2},
		{ID: "HALL_1", Name: "다목적홀 1", Capacity: 10},
	}
	if diff := cmp.Diff(want, got.Spaces); diff != "" {
		t.Errorf("spaces mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, got.TimeSlots, 12)
	assert.Equal(t, "09:00-10:00", got.TimeSlots[0])
}

func TestReservationQueries_GetAvailability(t *testing.T) {
	ctx := context.Background()
	uow := newUoW(t)
	q := queries.NewReservationQueries(uow, space.DefaultCatalog())

	seedReservations(t, uow,
		builder.NewReservationBuilder().WithRequester("A", "가"),
		builder.NewReservationBuilder().WithRequester("B", "나"),
		builder.NewReservationBuilder().WithRequester("C", "다").WithStatus(reservation.StatusWaitlist),
		builder.NewReservationBuilder().WithRequester("D", "라").WithStatus(reservation.StatusCanceled),
		builder.NewReservationBuilder().WithRequester("E", "마").With(func(b *builder.ReservationBuilder) {
			b.TimeSlot = "11:00-12:00"
		}),
		builder.NewReservationBuilder().WithRequester("F", "바").With(func(b *builder.ReservationBuilder) {
			b.Date = "2025-03-21"
		}),
	)

	got, err := q.GetAvailability(ctx, "ROOM_A", "2025-03-20")
	require.NoError(t, err)
	assert.Equal(t, "ROOM_A", got.Space.ID)
	assert.Equal(t, "2025-03-20", got.Date)
	require.Len(t, got.Slots, 12)

	bySlot := make(map[string]queries.SlotAvailabilityView)
	for _, s := range got.Slots {
		bySlot[s.TimeSlot] = s
	}
	assert.Equal(t, queries.SlotAvailabilityView{TimeSlot: "10:00-11:00", Capacity: 2, Confirmed: 2, Available: 0}, bySlot["10:00-11:00"])
	assert.Equal(t, queries.SlotAvailabilityView{TimeSlot: "11:00-12:00", Capacity: 2, Confirmed: 1, Available: 1}, bySlot["11:00-12:00"])
	assert.Equal(t, queries.SlotAvailabilityView{TimeSlot: "09:00-10:00", Capacity: 2, Confirmed: 0, Available: 2}, bySlot["09:00-10:00"])
}

func TestReservationQueries_GetAvailability_Errors(t *testing.T) {
	q := queries.NewReservationQueries(newUoW(t), space.DefaultCatalog())

	tests := []struct {
		name    string
		spaceID string
		date    string
		want    error
	}{
		{name: "unknown space is checked first", spaceID: "GYM", date: "", want: errs.ErrInvalidSpace},
		{name: "missing date", spaceID: "ROOM_A", date: " ", want: errs.ErrMissingField},
		{name: "malformed date", spaceID: "ROOM_A", date: "2025/03/20", want: errs.ErrInvalidField},
		{name: "impossible date", spaceID: "ROOM_A", date: "2025-02-30", want: errs.ErrInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := q.GetAvailability(context.Background(), tt.spaceID, tt.date)
			require.Error(t, err)
			assert.True(t, errs.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestReservationQueries_ListMyReservations(t *testing.T) {
	ctx := context.Background()
	uow := newUoW(t)
	q := queries.NewReservationQueries(uow, space.DefaultCatalog())

	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	seeded := seedReservations(t, uow,
		builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.Date, b.TimeSlot = "2025-03-21", "09:00-10:00"
		}).WithCreatedAt(base),
		builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.TimeSlot = "15:00-16:00"
		}).WithCreatedAt(base.Add(time.Minute)),
		builder.NewReservationBuilder().WithStatus(reservation.StatusWaitlist).WithCreatedAt(base.Add(2*time.Minute)),
		builder.NewReservationBuilder().WithStatus(reservation.StatusCanceled).With(func(b *builder.ReservationBuilder) {
			b.TimeSlot = "12:00-13:00"
		}),
		builder.NewReservationBuilder().WithRequester("other", "다른 학생"),
	)

	got, err := q.ListMyReservations(ctx, " 20231234 ")
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, v := range got {
		ids = append(ids, v.ID.String())
	}
	assert.Equal(t, []string{seeded[2].ID().String(), seeded[1].ID().String(), seeded[0].ID().String()}, ids)
	assert.Equal(t, "waitlist", got[0].Status)
	assert.Equal(t, "스터디룸 A", got[0].SpaceName)

	_, err = q.ListMyReservations(ctx, "")
	assert.True(t, errs.Is(err, errs.ErrMissingField), "got %v", err)
}

func unpaddedCatalog(t *testing.T) *space.Catalog {
	t.Helper()
	roomA, err := space.NewSpace("ROOM_A", "스터디룸 A", 2)
	require.NoError(t, err)
	c, err := space.NewCatalog([]space.Space{roomA}, []string{"9:00-10:00", "10:00-11:00", "11:00-12:00"})
	require.NoError(t, err)
	return c
}

func TestReservationQueries_OrderFollowsCatalogSlots(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	slot := func(label string) func(*builder.ReservationBuilder) {
		return func(b *builder.ReservationBuilder) { b.TimeSlot = label }
	}

	t.Run("my reservations", func(t *testing.T) {
		uow := newUoW(t)
		q := queries.NewReservationQueries(uow, unpaddedCatalog(t))
		seedReservations(t, uow,
			builder.NewReservationBuilder().With(slot("11:00-12:00")).WithCreatedAt(base),
			builder.NewReservationBuilder().With(slot("10:00-11:00")).WithCreatedAt(base.Add(time.Minute)),
			builder.NewReservationBuilder().With(slot("9:00-10:00")).WithCreatedAt(base.Add(2*time.Minute)),
		)

		got, err := q.ListMyReservations(ctx, "20231234")
		require.NoError(t, err)
		slots := make([]string, 0, len(got))
		for _, v := range got {
			slots = append(slots, v.TimeSlot)
		}
		assert.Equal(t, []string{"9:00-10:00", "10:00-11:00", "11:00-12:00"}, slots)
	})

	t.Run("admin listing keeps creation order within a slot", func(t *testing.T) {
		uow := newUoW(t)
		q := queries.NewReservationQueries(uow, unpaddedCatalog(t))
		seeded := seedReservations(t, uow,
			builder.NewReservationBuilder().WithRequester("A", "가").With(slot("10:00-11:00")).WithCreatedAt(base),
			builder.NewReservationBuilder().WithRequester("B", "나").With(slot("9:00-10:00")).WithCreatedAt(base.Add(time.Minute)),
			builder.NewReservationBuilder().WithRequester("C", "다").With(slot("9:00-10:00")).WithCreatedAt(base.Add(2*time.Minute)),
		)

		got, err := q.ListBySpaceDate(ctx, "ROOM_A", "2025-03-20")
		require.NoError(t, err)
		ids := make([]string, 0, len(got))
		for _, v := range got {
			ids = append(ids, v.ID.String())
		}
		assert.Equal(t, []string{seeded[1].ID().String(), seeded[2].ID().String(), seeded[0].ID().String()}, ids)
	})
}

func TestReservationQueries_ListBySpaceDate(t *testing.T) {
	ctx := context.Background()
	uow := newUoW(t)
	q := queries.NewReservationQueries(uow, space.DefaultCatalog())

	seedReservations(t, uow,
		builder.NewReservationBuilder().WithRequester("A", "가"),
		builder.NewReservationBuilder().WithRequester("B", "나").WithStatus(reservation.StatusCanceled),
		builder.NewReservationBuilder().WithRequester("C", "다").With(func(b *builder.ReservationBuilder) {
			b.SpaceID = "ROOM_B"
		}),
	)

	got, err := q.ListBySpaceDate(ctx, "ROOM_A", "2025-03-20")
	require.NoError(t, err)
	require.Len(t, got, 2)

	statuses := []string{got[0].Status, got[1].Status}
	assert.ElementsMatch(t, []string{"confirmed", "canceled"}, statuses)

	_, err = q.ListBySpaceDate(ctx, "ROOM_Z", "2025-03-20")
	assert.True(t, errs.Is(err, errs.ErrInvalidSpace), "got %v", err)
}
