package queries

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"dorm-services/internal/domain/reservation"
	"dorm-services/internal/domain/space"
	"dorm-services/internal/pkg/errs"
	"dorm-services/internal/usecase/shared"
)

type ReservationQueries interface {
	ListSpaces(ctx context.Context) CatalogView
	GetAvailability(ctx context.Context, spaceID, date string) (*AvailabilityView, error)
	ListMyReservations(ctx context.Context, studentID string) ([]ReservationView, error)
	// ListBySpaceDate is the admin listing and includes canceled reservations.
	ListBySpaceDate(ctx context.Context, spaceID, date string) ([]ReservationView, error)
}

type reservationQueriesImpl struct {
	store   shared.ReservationStore
	catalog *space.Catalog
}

func NewReservationQueries(uow shared.UnitOfWork, catalog *space.Catalog) ReservationQueries {
	return &reservationQueriesImpl{
		store:   uow.Reservations(),
		catalog: catalog,
	}
}

func (q *reservationQueriesImpl) ListSpaces(_ context.Context) CatalogView {
	spaces := q.catalog.Spaces()
	views := make([]SpaceView, 0, len(spaces))
	for _, s := range spaces {
		views = append(views, ToSpaceView(s))
	}
	return CatalogView{Spaces: views, TimeSlots: q.catalog.TimeSlots()}
}

func (q *reservationQueriesImpl) GetAvailability(ctx context.Context, spaceID, date string) (*AvailabilityView, error) {
	sp, date, err := q.resolveSpaceDate(spaceID, date)
	if err != nil {
		return nil, err
	}

	all, err := q.store.FindBySpaceDate(ctx, sp.ID(), date)
	if err != nil {
		return nil, shared.TranslateStoreError(err, nil)
	}

	confirmed := make(map[string]int)
	for _, r := range all {
		if r.Status() == reservation.StatusConfirmed {
			confirmed[r.TimeSlot()]++
		}
	}

	slots := make([]SlotAvailabilityView, 0, len(q.catalog.TimeSlots()))
	for _, ts := range q.catalog.TimeSlots() {
		count := confirmed[ts]
		slots = append(slots, SlotAvailabilityView{
			TimeSlot:  ts,
			Capacity:  sp.Capacity(),
			Confirmed: count,
			Available: max(sp.Capacity()-count, 0),
		})
	}

	return &AvailabilityView{
		Space: ToSpaceView(sp),
		Date:  date,
		Slots: slots,
	}, nil
}

func (q *reservationQueriesImpl) ListMyReservations(ctx context.Context, studentID string) ([]ReservationView, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, errs.Wrap(errs.ErrMissingField, "studentId")
	}

	rs, err := q.store.FindActiveByRequester(ctx, studentID)
	if err != nil {
		return nil, shared.TranslateStoreError(err, nil)
	}
	q.sortByCatalogSlot(rs)
	return ToReservationViews(rs, q.catalog), nil
}

func (q *reservationQueriesImpl) ListBySpaceDate(ctx context.Context, spaceID, date string) ([]ReservationView, error) {
	sp, date, err := q.resolveSpaceDate(spaceID, date)
	if err != nil {
		return nil, err
	}

	rs, err := q.store.FindBySpaceDate(ctx, sp.ID(), date)
	if err != nil {
		return nil, shared.TranslateStoreError(err, nil)
	}
	q.sortByCatalogSlot(rs)
	return ToReservationViews(rs, q.catalog), nil
}

// sortByCatalogSlot orders by date, then by the slot's position in the catalog, since
// catalog labels need not sort as strings ("9:00-10:00" after "10:00-11:00").
// The stable sort keeps the store's creation order within a slot.
func (q *reservationQueriesImpl) sortByCatalogSlot(rs []*reservation.Reservation) {
	slices.SortStableFunc(rs, func(a, b *reservation.Reservation) int {
		if c := strings.Compare(a.Date(), b.Date()); c != 0 {
			return c
		}
		return cmp.Compare(q.catalog.SlotIndex(a.TimeSlot()), q.catalog.SlotIndex(b.TimeSlot()))
	})
}

// resolveSpaceDate checks the space before the date.
func (q *reservationQueriesImpl) resolveSpaceDate(spaceID, date string) (space.Space, string, error) {
	sp, ok := q.catalog.Space(strings.TrimSpace(spaceID))
	if !ok {
		return space.Space{}, "", errs.Wrapf(errs.ErrInvalidSpace, "spaceId %q", spaceID)
	}

	date = strings.TrimSpace(date)
	if date == "" {
		return space.Space{}, "", errs.Wrap(errs.ErrMissingField, "date")
	}
	if err := reservation.ValidateDate(date); err != nil {
		return space.Space{}, "", errs.Mark(errs.Wrap(err, "date"), errs.ErrInvalidField)
	}
	return sp, date, nil
}
