package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"dorm-services/internal/domain/reservation"
	"dorm-services/internal/infra"
	"dorm-services/internal/infra/repository"
	"dorm-services/internal/pkg/errs"
	"dorm-services/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// Held until the surrounding transaction ends.
const acquireBucketLock = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

type PostgresUoW struct {
	pool         *pgxpool.Pool
	reservations *repository.ReservationRepository
	complaints   *repository.ComplaintRepository
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{
		pool:         pool,
		reservations: repository.NewReservationRepository(pool),
		complaints:   repository.NewComplaintRepository(pool),
	}
}

func (u *PostgresUoW) Reservations() shared.ReservationStore {
	return u.reservations
}

func (u *PostgresUoW) Complaints() shared.ComplaintStore {
	return u.complaints
}

// ReadCommitted is enough once the advisory lock serializes writers of the bucket
func (u *PostgresUoW) WithinBucket(ctx context.Context, bucket reservation.Bucket, fn func(ctx context.Context, store shared.ReservationStore) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, acquireBucketLock, bucket.Key()); err != nil {
			return infra.WrapRepoErr("failed to lock bucket", err)
		}
		return fn(ctx, repository.NewReservationRepository(tx))
	})
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx pgx.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return infra.WrapRepoErr("failed to begin transaction", errs.Mark(err, errTransactionBegin), beginFailureKind(err))
		}

		err = fn(ctx, pgxTx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = infra.WrapRepoErr("failed to commit transaction", errs.Mark(err, errTransactionCommit))
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries && isRetryableError(err) {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

// A pool that cannot hand out a connection means the database is unreachable.
func beginFailureKind(err error) infra.RepositoryErrorKind {
	if kind := infra.Classify(err); kind != infra.KindDBFailure {
		return kind
	}
	return infra.KindUnavailable
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}
