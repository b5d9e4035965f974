package repository

import (
	"context"
	"time"

	"dorm-services/internal/domain/reservation"
	"dorm-services/internal/infra"
	"dorm-services/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationColumns = `id, space_id, date, time_slot, requester_id, requester_name,
	requester_phone, requester_email, status, created_at, updated_at`

const (
	insertReservation = `
INSERT INTO reservations (id, space_id, date, time_slot, requester_id, requester_name,
	requester_phone, requester_email, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	findReservationByID = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	findReservationsInBucket = `SELECT ` + reservationColumns + `
FROM reservations
WHERE space_id = $1 AND date = $2 AND time_slot = $3
ORDER BY created_at, seq`

	findReservationsByRequester = `SELECT ` + reservationColumns + `
FROM reservations
WHERE requester_id = $1
ORDER BY date, time_slot, created_at, seq`

	findReservationsBySpaceDate = `SELECT ` + reservationColumns + `
FROM reservations
WHERE space_id = $1 AND date = $2
ORDER BY time_slot, created_at, seq`

	updateReservationStatus = `
UPDATE reservations SET status = $2, updated_at = $3
WHERE id = $1
RETURNING ` + reservationColumns

	deleteReservation = `DELETE FROM reservations WHERE id = $1`
)

// ReservationRepository stores reservations in PostgreSQL. Status filtering happens after
// ParseStatus so rows written with legacy spellings are treated like canonical ones.
type ReservationRepository struct {
	db DBTX
}

func NewReservationRepository(db DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Insert(ctx context.Context, res *reservation.Reservation) (*reservation.Reservation, error) {
	if res.ID() == uuid.Nil {
		res = res.WithID(uuid.New())
	}

	date, err := pgconv.DateToPgtype(res.Date())
	if err != nil {
		return nil, infra.WrapRepoErr("invalid reservation date", err, infra.KindDBFailure)
	}

	requester := res.Requester()
	_, err = r.db.Exec(ctx, insertReservation,
		res.ID(),
		res.SpaceID(),
		date,
		res.TimeSlot(),
		requester.ID(),
		requester.Name(),
		pgconv.StringPtrToPgtype(requester.Phone()),
		pgconv.StringPtrToPgtype(requester.Email()),
		res.Status().String(),
		pgconv.TimeToPgtype(res.CreatedAt()),
		pgconv.TimeToPgtype(res.UpdatedAt()),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to insert reservation", err)
	}
	return res, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := scanReservation(r.db.QueryRow(ctx, findReservationByID, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return res, nil
}

func (r *ReservationRepository) FindActiveInBucket(ctx context.Context, bucket reservation.Bucket) ([]*reservation.Reservation, error) {
	all, err := r.findInBucket(ctx, bucket)
	if err != nil {
		return nil, err
	}
	return filterReservations(all, (*reservation.Reservation).IsActive), nil
}

func (r *ReservationRepository) FindActiveByRequester(ctx context.Context, requesterID string) ([]*reservation.Reservation, error) {
	all, err := r.query(ctx, "failed to find reservations by requester", findReservationsByRequester, requesterID)
	if err != nil {
		return nil, err
	}
	return filterReservations(all, (*reservation.Reservation).IsActive), nil
}

func (r *ReservationRepository) FindBySpaceDate(ctx context.Context, spaceID, date string) ([]*reservation.Reservation, error) {
	d, err := pgconv.DateToPgtype(date)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid reservation date", err, infra.KindDBFailure)
	}
	return r.query(ctx, "failed to find reservations by space and date", findReservationsBySpaceDate, spaceID, d)
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status, at time.Time) (*reservation.Reservation, error) {
	res, err := scanReservation(r.db.QueryRow(ctx, updateReservationStatus, id, status.String(), pgconv.TimeToPgtype(at)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to update reservation status", err)
	}
	return res, nil
}

func (r *ReservationRepository) FindOldestWaitlisted(ctx context.Context, bucket reservation.Bucket) (*reservation.Reservation, error) {
	all, err := r.findInBucket(ctx, bucket)
	if err != nil {
		return nil, err
	}
	for _, res := range all {
		if res.Status() == reservation.StatusWaitlist {
			return res, nil
		}
	}
	return nil, nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteReservation, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) findInBucket(ctx context.Context, bucket reservation.Bucket) ([]*reservation.Reservation, error) {
	d, err := pgconv.DateToPgtype(bucket.Date)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid reservation date", err, infra.KindDBFailure)
	}
	return r.query(ctx, "failed to find reservations in bucket", findReservationsInBucket, bucket.SpaceID, d, bucket.TimeSlot)
}

func (r *ReservationRepository) query(ctx context.Context, failMsg, sql string, args ...any) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(failMsg, err)
	}
	defer rows.Close()

	var out []*reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(failMsg, err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(failMsg, err)
	}
	return out, nil
}

func scanReservation(row rowScanner) (*reservation.Reservation, error) {
	var (
		id                   uuid.UUID
		spaceID, timeSlot    string
		date                 pgtype.Date
		requesterID, name    string
		phone, email         pgtype.Text
		rawStatus            string
		createdAt, updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &spaceID, &date, &timeSlot, &requesterID, &name,
		&phone, &email, &rawStatus, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	status, err := reservation.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	return reservation.ReconstructReservation(
		id,
		reservation.NewBucket(spaceID, pgconv.DateFromPgtype(date), timeSlot),
		reservation.ReconstructRequester(requesterID, name,
			pgconv.StringPtrFromPgtype(phone), pgconv.StringPtrFromPgtype(email)),
		status,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func filterReservations(rs []*reservation.Reservation, keep func(*reservation.Reservation) bool) []*reservation.Reservation {
	out := make([]*reservation.Reservation, 0, len(rs))
	for _, r := range rs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
