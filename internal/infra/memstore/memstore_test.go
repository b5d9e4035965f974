//go:build unit

package memstore_test

import (
	"context"
	"testing"

	"dorm-services/internal/domain/reservation"
	"dorm-services/internal/infra/memstore"
	"dorm-services/internal/usecase/shared"
	"dorm-services/tests/common/builder"
	"dorm-services/tests/common/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUoW(t *testing.T) shared.UnitOfWork {
	t.Helper()
	return memstore.NewUnitOfWork(memstore.NewReservationStore(), memstore.NewComplaintStore())
}

func TestMemstoreConformance(t *testing.T) {
	storetest.Run(t, newUoW)
}

func TestReservationStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewReservationStore()

	saved, err := store.Insert(ctx, builder.NewReservationBuilder().BuildDomain())
	require.NoError(t, err)

	got, err := store.FindByID(ctx, saved.ID())
	require.NoError(t, err)
	require.NoError(t, got.Cancel(got.UpdatedAt()))

	again, err := store.FindByID(ctx, saved.ID())
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusConfirmed, again.Status())
}

func TestUnitOfWork_RollbackRestoresDeleted(t *testing.T) {
	ctx := context.Background()
	uow := newUoW(t)

	saved, err := uow.Reservations().Insert(ctx, builder.NewReservationBuilder().BuildDomain())
	require.NoError(t, err)

	err = uow.WithinBucket(ctx, saved.Bucket(), func(ctx context.Context, store shared.ReservationStore) error {
		require.NoError(t, store.Delete(ctx, saved.ID()))
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = uow.Reservations().FindByID(ctx, saved.ID())
	assert.NoError(t, err)
}
