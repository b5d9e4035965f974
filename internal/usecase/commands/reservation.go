package commands

import (
	"context"
	"log/slog"
	"strings"

	"dorm-services/internal/domain/reservation"
	"dorm-services/internal/domain/space"
	reqdto "dorm-services/internal/handler/dto/request"
	"dorm-services/internal/infra"
	"dorm-services/internal/pkg/clock"
	"dorm-services/internal/pkg/errs"
	"dorm-services/internal/pkg/metrics"
	"dorm-services/internal/usecase/queries"
	"dorm-services/internal/usecase/shared"

	"github.com/google/uuid"
)

type CancelReservationResult struct {
	Canceled queries.ReservationView
	Promoted *queries.ReservationView
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, req reqdto.CreateReservationRequest) (*queries.ReservationView, error)
	CancelReservation(ctx context.Context, id uuid.UUID) (*CancelReservationResult, error)
	// PurgeReservation removes a canceled reservation for good.
	PurgeReservation(ctx context.Context, id uuid.UUID) error
}

type reservationCommandsImpl struct {
	uow       shared.UnitOfWork
	catalog   *space.Catalog
	publisher EventPublisher
	metrics   *metrics.Metrics
	clock     clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	catalog *space.Catalog,
	publisher EventPublisher,
	m *metrics.Metrics,
	clock clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:       uow,
		catalog:   catalog,
		publisher: publisher,
		metrics:   m,
		clock:     clock,
	}
}

func (r *reservationCommandsImpl) CreateReservation(ctx context.Context, req reqdto.CreateReservationRequest) (*queries.ReservationView, error) {
	sp, bucket, requester, err := r.validateCreate(req)
	if err != nil {
		return nil, err
	}

	var saved *reservation.Reservation
	err = r.uow.WithinBucket(ctx, bucket, func(ctx context.Context, store shared.ReservationStore) error {
		active, err := store.FindActiveInBucket(ctx, bucket)
		if err != nil {
			return shared.TranslateStoreError(err, nil)
		}
		for _, existing := range active {
			if existing.Requester().ID() == requester.ID() {
				return errs.Wrapf(errs.ErrDuplicateBooking, "requester %s already holds %s", requester.ID(), existing.ID())
			}
		}

		status := reservation.DecideStatus(reservation.CountConfirmed(active), sp.Capacity())
		saved, err = store.Insert(ctx, reservation.NewReservation(bucket, requester, status, r.clock.Now()))
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrDuplicateBooking)
			}
			return shared.TranslateStoreError(err, nil)
		}
		return nil
	})
	if err != nil {
		return nil, shared.TranslateStoreError(err, nil)
	}

	slog.Info("reservation created",
		"reservation_id", saved.ID().String(),
		"bucket", bucket.Key(),
		"status", saved.Status().String())

	r.metrics.ReservationCreated(sp.ID(), saved.Status().String())
	r.publish(ctx, newReservationEvent(EventReservationCreated, saved, saved.CreatedAt()))

	view := queries.ToReservationView(saved, r.catalog)
	return &view, nil
}

// validateCreate checks the space, then presence, then format.
func (r *reservationCommandsImpl) validateCreate(req reqdto.CreateReservationRequest) (space.Space, reservation.Bucket, reservation.Requester, error) {
	var (
		zeroSpace     space.Space
		zeroBucket    reservation.Bucket
		zeroRequester reservation.Requester
	)

	sp, ok := r.catalog.Space(strings.TrimSpace(req.SpaceID))
	if !ok {
		return zeroSpace, zeroBucket, zeroRequester, errs.Wrapf(errs.ErrInvalidSpace, "spaceId %q", req.SpaceID)
	}

	date := strings.TrimSpace(req.Date)
	timeSlot := strings.TrimSpace(req.TimeSlot)
	if date == "" {
		return zeroSpace, zeroBucket, zeroRequester, errs.Wrap(errs.ErrMissingField, "date")
	}
	if timeSlot == "" {
		return zeroSpace, zeroBucket, zeroRequester, errs.Wrap(errs.ErrMissingField, "timeSlot")
	}
	requester, err := reservation.NewRequester(req.StudentID, req.StudentName, req.Phone, req.Email)
	if err != nil {
		return zeroSpace, zeroBucket, zeroRequester, errs.Mark(err, errs.ErrMissingField)
	}

	if err := reservation.ValidateDate(date); err != nil {
		return zeroSpace, zeroBucket, zeroRequester, errs.Mark(errs.Wrap(err, "date"), errs.ErrInvalidField)
	}
	if !r.catalog.HasTimeSlot(timeSlot) {
		return zeroSpace, zeroBucket, zeroRequester, errs.Wrapf(errs.ErrInvalidField, "timeSlot %q is not offered", timeSlot)
	}

	return sp, reservation.NewBucket(sp.ID(), date, timeSlot), requester, nil
}

func (r *reservationCommandsImpl) CancelReservation(ctx context.Context, id uuid.UUID) (*CancelReservationResult, error) {
	current, err := r.uow.Reservations().FindByID(ctx, id)
	if err != nil {
		return nil, shared.TranslateStoreError(err, errs.ErrReservationNotFound)
	}
	if current.IsCanceled() {
		return nil, errs.Wrapf(errs.ErrReservationNotFound, "reservation %s already canceled", id)
	}

	// A space dropped from the catalog keeps capacity zero, so nothing is promoted into it.
	var capacity int
	if sp, ok := r.catalog.Space(current.SpaceID()); ok {
		capacity = sp.Capacity()
	}

	bucket := current.Bucket()
	var canceled, promoted *reservation.Reservation
	err = r.uow.WithinBucket(ctx, bucket, func(ctx context.Context, store shared.ReservationStore) error {
		target, err := store.FindByID(ctx, id)
		if err != nil {
			return shared.TranslateStoreError(err, errs.ErrReservationNotFound)
		}

		now := r.clock.Now()
		if err := target.Cancel(now); err != nil {
			return errs.Mark(err, errs.ErrReservationNotFound)
		}
		canceled, err = store.UpdateStatus(ctx, id, target.Status(), now)
		if err != nil {
			return shared.TranslateStoreError(err, errs.ErrReservationNotFound)
		}

		active, err := store.FindActiveInBucket(ctx, bucket)
		if err != nil {
			return shared.TranslateStoreError(err, nil)
		}
		if reservation.CountConfirmed(active) >= capacity {
			return nil
		}

		next, err := store.FindOldestWaitlisted(ctx, bucket)
		if err != nil {
			return shared.TranslateStoreError(err, nil)
		}
		if next == nil {
			return nil
		}
		if err := next.Promote(now); err != nil {
			return err
		}
		promoted, err = store.UpdateStatus(ctx, next.ID(), next.Status(), now)
		if err != nil {
			return shared.TranslateStoreError(err, nil)
		}
		return nil
	})
	if err != nil {
		return nil, shared.TranslateStoreError(err, nil)
	}

	r.metrics.ReservationCanceled(promoted != nil)
	r.publish(ctx, newReservationEvent(EventReservationCanceled, canceled, canceled.UpdatedAt()))

	result := &CancelReservationResult{Canceled: queries.ToReservationView(canceled, r.catalog)}
	if promoted != nil {
		slog.Info("waitlisted reservation promoted",
			"reservation_id", promoted.ID().String(),
			"bucket", bucket.Key(),
			"canceled_id", canceled.ID().String())

		r.publish(ctx, newReservationEvent(EventReservationPromoted, promoted, promoted.UpdatedAt()))
		view := queries.ToReservationView(promoted, r.catalog)
		result.Promoted = &view
	}
	return result, nil
}

func (r *reservationCommandsImpl) PurgeReservation(ctx context.Context, id uuid.UUID) error {
	current, err := r.uow.Reservations().FindByID(ctx, id)
	if err != nil {
		return shared.TranslateStoreError(err, errs.ErrReservationNotFound)
	}

	err = r.uow.WithinBucket(ctx, current.Bucket(), func(ctx context.Context, store shared.ReservationStore) error {
		target, err := store.FindByID(ctx, id)
		if err != nil {
			return shared.TranslateStoreError(err, errs.ErrReservationNotFound)
		}
		if target.IsActive() {
			return errs.Wrapf(errs.ErrReservationActive, "reservation %s is %s", id, target.Status())
		}
		return shared.TranslateStoreError(store.Delete(ctx, id), errs.ErrReservationNotFound)
	})
	if err != nil {
		return shared.TranslateStoreError(err, nil)
	}

	slog.Info("reservation purged", "reservation_id", id.String())
	return nil
}

// publish never fails the request; the reservation is already committed.
func (r *reservationCommandsImpl) publish(ctx context.Context, event ReservationEvent) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		r.metrics.PublishFailed()
		slog.Warn("failed to publish reservation event",
			"type", string(event.Type),
			"reservation_id", event.ReservationID.String(),
			"error", err.Error())
	}
}
