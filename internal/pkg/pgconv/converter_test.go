//go:build unit

package pgconv_test

import (
	"database/sql"
	"errors"
	"testing"

	"dorm-services/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRoundTrip(t *testing.T) {
	d, err := pgconv.DateToPgtype("2025-03-14")
	require.NoError(t, err)
	assert.True(t, d.Valid)
	assert.Equal(t, "2025-03-14", pgconv.DateFromPgtype(d))

	_, err = pgconv.DateToPgtype("14/03/2025")
	assert.Error(t, err)
	assert.Equal(t, "", pgconv.DateFromPgtype(pgtype.Date{}))
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, pgconv.StringPtrFromPgtype(pgtype.Text{}))
	s := "010-1234-5678"
	assert.Equal(t, &s, pgconv.StringPtrFromPgtype(pgconv.StringPtrToPgtype(&s)))
	assert.False(t, pgconv.StringPtrToPgtype(nil).Valid)
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.True(t, pgconv.IsNoRows(sql.ErrNoRows))
	assert.False(t, pgconv.IsNoRows(errors.New("boom")))
}
