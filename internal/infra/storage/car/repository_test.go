package car

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/docstore"
)

func TestRepository_UpsertAndGet(t *testing.T) {
	repo := NewRepository(docstore.NewMemory())
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "car-1")
	assert.ErrorIs(t, err, ErrCarNotFound)

	car := &domain.Car{ID: "car-1", Make: "Toyota", Model: "Corolla", PricePerDay: 30, Available: true}
	require.NoError(t, repo.Upsert(ctx, car))

	got, err := repo.GetByID(ctx, "car-1")
	require.NoError(t, err)
	assert.Equal(t, "Toyota", got.Make)
	assert.Equal(t, 30.0, got.PricePerDay)
	assert.True(t, got.Available)

	car.PricePerDay = 45
	car.Available = false
	require.NoError(t, repo.Upsert(ctx, car))

	got, err = repo.GetByID(ctx, "car-1")
	require.NoError(t, err)
	assert.Equal(t, 45.0, got.PricePerDay)
	assert.False(t, got.Available)
	assert.Equal(t, "Corolla", got.Model)
}
