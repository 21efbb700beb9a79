package finalize_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/booking"
	carRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/car"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/docstore"
	loyaltyRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/loyalty"
	"github.com/m04kA/SMC-CarRentalService/internal/service/loyalty"
	"github.com/m04kA/SMC-CarRentalService/internal/service/pricing"
	"github.com/m04kA/SMC-CarRentalService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CarRentalService/pkg/logger"
	"github.com/m04kA/SMC-CarRentalService/pkg/ptr"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type MockAwarder struct {
	mock.Mock
}

func (m *MockAwarder) Award(ctx context.Context, userID string, points int, description string) error {
	args := m.Called(ctx, userID, points, description)
	return args.Error(0)
}

var now = time.Date(2024, 5, 22, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store    *docstore.Memory
	bookings *bookingRepo.Repository
	accounts *loyaltyRepo.Repository
	creator  *create_booking.UseCase
}

func newFixture(t *testing.T, pricePerDay float64) *fixture {
	t.Helper()

	store := docstore.NewMemory()
	bookings := bookingRepo.NewRepository(store)
	cars := carRepo.NewRepository(store)
	require.NoError(t, cars.Upsert(context.Background(), &domain.Car{
		ID: "car-1", Make: "Toyota", Model: "Corolla", PricePerDay: pricePerDay, Available: true,
	}))

	creator := create_booking.NewUseCase(bookings, cars, store, pricing.NewCalculator(pricing.DefaultRules()), true, logger.NewNop()).
		WithTimeProvider(fixedTime{now: now})

	return &fixture{
		store:    store,
		bookings: bookings,
		accounts: loyaltyRepo.NewRepository(store),
		creator:  creator,
	}
}

func request(start time.Time, days int) *Request {
	return &Request{
		Principal:      domain.Principal{ID: "user-1"},
		CarID:          "car-1",
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, days),
		PickupLocation: "Airport",
		ReturnLocation: "Airport",
		Status:         ptr.Ptr(domain.StatusPending),
	}
}

func TestUseCase_Execute_EarlyBooking(t *testing.T) {
	// 37.60 * 4 = 150.40
	f := newFixture(t, 37.6)
	awarder := loyalty.NewService(f.accounts, f.store, logger.NewNop())
	uc := NewUseCase(f.creator, awarder, pricing.NewCalculator(pricing.DefaultRules()), logger.NewNop())

	resp, err := uc.Execute(context.Background(), request(now.AddDate(0, 0, 10), 4))
	require.NoError(t, err)
	assert.Equal(t, 150.4, resp.Booking.TotalPrice)
	assert.Equal(t, 200, resp.PointsEarned)
	assert.Equal(t, domain.StatusFinalized, resp.Booking.Status)

	stored, err := f.bookings.GetByID(context.Background(), resp.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFinalized, stored.Status)
	require.NotNil(t, stored.FinalizedAt)
	assert.True(t, now.Equal(*stored.FinalizedAt))
	assert.Equal(t, int64(1), stored.Version)

	account, err := f.accounts.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 200, account.Points)
}

func TestUseCase_Execute_LateBooking(t *testing.T) {
	f := newFixture(t, 37.6)

	awarder := new(MockAwarder)
	awarder.On("Award", mock.Anything, "user-1", 150, mock.AnythingOfType("string")).Return(nil)

	uc := NewUseCase(f.creator, awarder, pricing.NewCalculator(pricing.DefaultRules()), logger.NewNop())

	resp, err := uc.Execute(context.Background(), request(now.AddDate(0, 0, 6), 4))
	require.NoError(t, err)
	assert.Equal(t, 150, resp.PointsEarned)
	awarder.AssertExpectations(t)
}

func TestUseCase_Execute_AwardFailure(t *testing.T) {
	f := newFixture(t, 30)

	awarder := new(MockAwarder)
	awarder.On("Award", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("boom"))

	uc := NewUseCase(f.creator, awarder, pricing.NewCalculator(pricing.DefaultRules()), logger.NewNop())

	resp, err := uc.Execute(context.Background(), request(now.AddDate(0, 0, 10), 3))
	require.NoError(t, err)
	assert.Equal(t, 0, resp.PointsEarned)
	assert.Equal(t, domain.StatusFinalized, resp.Booking.Status)
}

func TestUseCase_Execute_CreateFailure(t *testing.T) {
	f := newFixture(t, 30)
	awarder := new(MockAwarder)
	uc := NewUseCase(f.creator, awarder, pricing.NewCalculator(pricing.DefaultRules()), logger.NewNop())

	req := request(now.AddDate(0, 0, 10), 3)
	req.CarID = "missing"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, create_booking.ErrCarNotFound)
	awarder.AssertNotCalled(t, "Award", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
