package loyalty

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/docstore"
)

func TestRepository(t *testing.T) {
	repo := NewRepository(docstore.NewMemory())
	ctx := context.Background()

	_, err := repo.Get(ctx, "user-1")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	account := &domain.LoyaltyAccount{UserID: "user-1", PointsHistory: []domain.PointsEntry{}}
	require.NoError(t, repo.Create(ctx, account))
	assert.ErrorIs(t, repo.Create(ctx, account), ErrAccountExists)

	stale, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)

	account.Points = 23
	account.PointsHistory = append(account.PointsHistory, domain.PointsEntry{
		Type:        domain.PointsEarn,
		Amount:      23,
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Description: "Payment for booking b-1",
	})
	require.NoError(t, repo.Update(ctx, account))
	assert.Equal(t, int64(2), account.Version)

	stale.Points = 100
	assert.ErrorIs(t, repo.Update(ctx, stale), ErrConcurrentModification)

	got, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 23, got.Points)
	require.Len(t, got.PointsHistory, 1)
	assert.Equal(t, domain.PointsEarn, got.PointsHistory[0].Type)
}
