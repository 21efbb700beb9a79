package loyalty

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/docstore"
	loyaltyRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/loyalty"
	"github.com/m04kA/SMC-CarRentalService/pkg/logger"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func newService() *Service {
	store := docstore.NewMemory()
	return NewService(loyaltyRepo.NewRepository(store), store, logger.NewNop()).
		WithTimeProvider(fixedTime{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)})
}

func TestService_AwardAndGet(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	owner := domain.Principal{ID: "user-1"}

	account, err := svc.Get(ctx, owner, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, account.Points)
	assert.Empty(t, account.PointsHistory)

	require.NoError(t, svc.Award(ctx, "user-1", 23, "Payment for booking b-1"))
	require.NoError(t, svc.Award(ctx, "user-1", 200, "Finalized booking b-2"))
	require.NoError(t, svc.Award(ctx, "user-1", 0, "nothing"))

	account, err = svc.Get(ctx, owner, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 223, account.Points)
	require.Len(t, account.PointsHistory, 2)
	assert.Equal(t, domain.PointsEarn, account.PointsHistory[1].Type)
	assert.Equal(t, 200, account.PointsHistory[1].Amount)
	assert.Equal(t, "Finalized booking b-2", account.PointsHistory[1].Description)
}

func TestService_GetAccessDenied(t *testing.T) {
	svc := newService()

	_, err := svc.Get(context.Background(), domain.Principal{ID: "user-2"}, "user-1")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Get(context.Background(), domain.Principal{ID: "admin-1", IsAdmin: true}, "user-1")
	assert.NoError(t, err)
}

func TestService_Redeem(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	owner := domain.Principal{ID: "user-1"}

	_, err := svc.Redeem(ctx, owner, "user-1", 10, "discount")
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	require.NoError(t, svc.Award(ctx, "user-1", 50, "Payment"))

	tests := []struct {
		name      string
		principal domain.Principal
		points    int
		wantErr   error
	}{
		{name: "other user", principal: domain.Principal{ID: "user-2"}, points: 10, wantErr: ErrAccessDenied},
		{name: "zero points", principal: owner, points: 0, wantErr: ErrInvalidInput},
		{name: "more than balance", principal: owner, points: 51, wantErr: ErrInsufficientPoints},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Redeem(ctx, tt.principal, "user-1", tt.points, "discount")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	account, err := svc.Redeem(ctx, owner, "user-1", 30, "discount")
	require.NoError(t, err)
	assert.Equal(t, 20, account.Points)
	require.Len(t, account.PointsHistory, 2)
	assert.Equal(t, domain.PointsRedeem, account.PointsHistory[1].Type)
	assert.Equal(t, 30, account.PointsHistory[1].Amount)

	// неудачное списание не меняет баланс
	account, err = svc.Get(ctx, owner, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 20, account.Points)
}
