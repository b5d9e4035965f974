//go:build unit

package infra

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want RepositoryErrorKind
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: KindNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), want: KindNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: KindDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: KindForeignKeyViolated},
		{name: "connection failure", err: &pgconn.PgError{Code: "08006"}, want: KindUnavailable},
		{name: "admin shutdown", err: &pgconn.PgError{Code: "57P01"}, want: KindUnavailable},
		{name: "deadline", err: context.DeadlineExceeded, want: KindUnavailable},
		{name: "syntax error", err: &pgconn.PgError{Code: "42601"}, want: KindDBFailure},
		{name: "other", err: assert.AnError, want: KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestWrapRepoErr(t *testing.T) {
	t.Run("explicit kind wins", func(t *testing.T) {
		err := WrapRepoErr("reservation not found", assert.AnError, KindNotFound)
		assert.True(t, IsKind(err, KindNotFound))
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("kind derived from driver error", func(t *testing.T) {
		err := WrapRepoErr("failed to insert reservation", &pgconn.PgError{Code: "23505"})
		assert.True(t, IsKind(err, KindDuplicateKey))
		assert.False(t, IsKind(err, KindDBFailure))
	})

	t.Run("message carries kind", func(t *testing.T) {
		err := WrapRepoErr("failed", nil, KindUnavailable)
		assert.Equal(t, "UNAVAILABLE: failed", err.Error())
	})
}
