package extend_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/booking"
	carRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/car"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/docstore"
	invoiceRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/invoice"
	"github.com/m04kA/SMC-CarRentalService/internal/service/pricing"
	"github.com/m04kA/SMC-CarRentalService/pkg/logger"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// failingUpdates подменяет Update репозитория бронирований ошибкой
type failingUpdates struct {
	*bookingRepo.Repository
	err error
}

func (f failingUpdates) Update(context.Context, *domain.Booking) error {
	return f.err
}

type fixture struct {
	store    *docstore.Memory
	bookings *bookingRepo.Repository
	invoices *invoiceRepo.Repository
	cars     *carRepo.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := docstore.NewMemory()
	f := &fixture{
		store:    store,
		bookings: bookingRepo.NewRepository(store),
		invoices: invoiceRepo.NewRepository(store),
		cars:     carRepo.NewRepository(store),
	}

	require.NoError(t, f.cars.Upsert(context.Background(), &domain.Car{
		ID: "car-1", Make: "Toyota", Model: "Corolla", PricePerDay: 30, Available: true,
	}))
	f.seed(t, &domain.Booking{
		ID:              "b-1",
		UserID:          "user-1",
		CarID:           "car-1",
		StartDate:       date(2024, 6, 1),
		EndDate:         date(2024, 6, 4),
		DurationDays:    3,
		BasePrice:       90,
		AdditionalCosts: 45,
		TotalPrice:      135,
		InsuranceOption: domain.InsuranceBasic,
		PickupLocation:  "Airport",
		ReturnLocation:  "Airport",
		Status:          domain.StatusConfirmed,
	})

	return f
}

func (f *fixture) seed(t *testing.T, booking *domain.Booking) {
	t.Helper()
	require.NoError(t, f.bookings.Create(context.Background(), booking))
}

func (f *fixture) useCase(repo BookingRepository) *UseCase {
	return NewUseCase(repo, f.cars, f.invoices, f.store, pricing.NewCalculator(pricing.DefaultRules()), true, logger.NewNop()).
		WithTimeProvider(fixedTime{now: date(2024, 5, 20)})
}

func TestUseCase_Execute(t *testing.T) {
	f := newFixture(t)
	uc := f.useCase(f.bookings)

	resp, err := uc.Execute(context.Background(), &Request{
		Principal:  domain.Principal{ID: "user-1"},
		BookingID:  "b-1",
		NewEndDate: date(2024, 6, 6),
	})
	require.NoError(t, err)

	assert.True(t, date(2024, 6, 4).Equal(resp.PreviousEndDate))
	assert.True(t, date(2024, 6, 6).Equal(resp.NewEndDate))
	assert.Equal(t, 2, resp.AdditionalDays)
	// база 30*2 + страховка basic 15*2
	assert.Equal(t, 90.0, resp.AdditionalCost)
	assert.NotEmpty(t, resp.InvoiceID)

	stored, err := f.bookings.GetByID(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, 5, stored.DurationDays)
	assert.Equal(t, 150.0, stored.BasePrice)
	assert.Equal(t, 75.0, stored.AdditionalCosts)
	assert.Equal(t, 225.0, stored.TotalPrice)
	assert.Equal(t, stored.BasePrice+stored.AdditionalCosts, stored.TotalPrice)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
	require.Len(t, stored.ExtensionHistory, 1)
	assert.Equal(t, 2, stored.ExtensionHistory[0].AdditionalDays)
	assert.Equal(t, resp.InvoiceID, stored.ExtensionHistory[0].InvoiceID)

	invoice, err := f.invoices.GetByID(context.Background(), resp.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceKindExtension, invoice.Kind)
	assert.Equal(t, 90.0, invoice.Amount)
	assert.Equal(t, invoice.Amount, invoice.ItemsTotal())
	assert.Equal(t, domain.PaymentStatusPending, invoice.PaymentStatus)
}

func TestUseCase_Execute_ServicesPerDay(t *testing.T) {
	f := newFixture(t)
	f.seed(t, &domain.Booking{
		ID:                 "b-gps",
		UserID:             "user-1",
		CarID:              "car-1",
		StartDate:          date(2024, 7, 1),
		EndDate:            date(2024, 7, 3),
		DurationDays:       2,
		BasePrice:          60,
		AdditionalCosts:    10,
		TotalPrice:         70,
		AdditionalServices: []domain.AdditionalService{{ID: "gps", Price: 10}},
		Status:             domain.StatusActive,
	})

	resp, err := f.useCase(f.bookings).Execute(context.Background(), &Request{
		Principal:  domain.Principal{ID: "user-1"},
		BookingID:  "b-gps",
		NewEndDate: date(2024, 7, 4),
	})
	require.NoError(t, err)
	assert.Equal(t, 35.0, resp.AdditionalCost)
	assert.Equal(t, []domain.AdditionalService{{ID: "gps", Price: 15}}, resp.Booking.AdditionalServices)
	assert.Equal(t, 105.0, resp.Booking.TotalPrice)
	assert.Equal(t, domain.StatusActive, resp.Booking.Status)
}

func TestUseCase_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, f *fixture)
		req     Request
		wantErr error
	}{
		{
			name:    "missing booking id",
			req:     Request{Principal: domain.Principal{ID: "user-1"}, NewEndDate: date(2024, 6, 6)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "not found",
			req:     Request{Principal: domain.Principal{ID: "user-1"}, BookingID: "missing", NewEndDate: date(2024, 6, 6)},
			wantErr: ErrBookingNotFound,
		},
		{
			name:    "other user",
			req:     Request{Principal: domain.Principal{ID: "user-2"}, BookingID: "b-1", NewEndDate: date(2024, 6, 6)},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "same end date",
			req:     Request{Principal: domain.Principal{ID: "user-1"}, BookingID: "b-1", NewEndDate: date(2024, 6, 4)},
			wantErr: ErrInvalidEndDate,
		},
		{
			name:    "earlier end date",
			req:     Request{Principal: domain.Principal{ID: "user-1"}, BookingID: "b-1", NewEndDate: date(2024, 6, 3)},
			wantErr: ErrInvalidEndDate,
		},
		{
			name: "cancelled booking",
			prepare: func(t *testing.T, f *fixture) {
				f.seed(t, &domain.Booking{ID: "b-c", UserID: "user-1", CarID: "car-1",
					StartDate: date(2024, 6, 10), EndDate: date(2024, 6, 12), Status: domain.StatusCancelled})
			},
			req:     Request{Principal: domain.Principal{ID: "user-1"}, BookingID: "b-c", NewEndDate: date(2024, 6, 14)},
			wantErr: ErrCannotExtend,
		},
		{
			name: "next booking starts at current end",
			prepare: func(t *testing.T, f *fixture) {
				f.seed(t, &domain.Booking{ID: "b-next", UserID: "user-2", CarID: "car-1",
					StartDate: date(2024, 6, 4), EndDate: date(2024, 6, 8), Status: domain.StatusConfirmed})
			},
			req:     Request{Principal: domain.Principal{ID: "user-1"}, BookingID: "b-1", NewEndDate: date(2024, 6, 6)},
			wantErr: ErrCarBooked,
		},
		{
			name: "next booking inside extension",
			prepare: func(t *testing.T, f *fixture) {
				f.seed(t, &domain.Booking{ID: "b-next", UserID: "user-2", CarID: "car-1",
					StartDate: date(2024, 6, 5), EndDate: date(2024, 6, 8), Status: domain.StatusActive})
			},
			req:     Request{Principal: domain.Principal{ID: "user-1"}, BookingID: "b-1", NewEndDate: date(2024, 6, 6)},
			wantErr: ErrCarBooked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.prepare != nil {
				tt.prepare(t, f)
			}

			req := tt.req
			resp, err := f.useCase(f.bookings).Execute(context.Background(), &req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, resp)

			stored, err := f.bookings.GetByID(context.Background(), "b-1")
			require.NoError(t, err)
			assert.Equal(t, 135.0, stored.TotalPrice)
			assert.Empty(t, stored.ExtensionHistory)
		})
	}
}

func TestUseCase_Execute_AdjacentBookingAfterExtension(t *testing.T) {
	f := newFixture(t)
	f.seed(t, &domain.Booking{ID: "b-next", UserID: "user-2", CarID: "car-1",
		StartDate: date(2024, 6, 6), EndDate: date(2024, 6, 8), Status: domain.StatusConfirmed})

	resp, err := f.useCase(f.bookings).Execute(context.Background(), &Request{
		Principal:  domain.Principal{ID: "admin-1", IsAdmin: true},
		BookingID:  "b-1",
		NewEndDate: date(2024, 6, 6),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.AdditionalDays)
}

func TestUseCase_Execute_RollsBackInvoice(t *testing.T) {
	f := newFixture(t)
	updateErr := errors.New("store unavailable")

	_, err := f.useCase(failingUpdates{Repository: f.bookings, err: updateErr}).Execute(context.Background(), &Request{
		Principal:  domain.Principal{ID: "user-1"},
		BookingID:  "b-1",
		NewEndDate: date(2024, 6, 6),
	})
	assert.ErrorIs(t, err, ErrInternal)

	invoices, err := f.invoices.GetByBookingID(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Empty(t, invoices)
}

func TestUseCase_Execute_PartialDayPeriod(t *testing.T) {
	f := newFixture(t)
	start := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	f.seed(t, &domain.Booking{
		ID:             "b-partial",
		UserID:         "user-1",
		CarID:          "car-1",
		StartDate:      start,
		EndDate:        start.Add(36 * time.Hour),
		DurationDays:   2,
		BasePrice:      60,
		TotalPrice:     60,
		PickupLocation: "Airport",
		ReturnLocation: "Airport",
		Status:         domain.StatusConfirmed,
	})
	uc := f.useCase(f.bookings)

	// Продление в пределах уже оплаченных суток
	resp, err := uc.Execute(context.Background(), &Request{
		Principal:  domain.Principal{ID: "user-1"},
		BookingID:  "b-partial",
		NewEndDate: start.Add(48 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.AdditionalDays)
	assert.Equal(t, 0.0, resp.AdditionalCost)

	stored, err := f.bookings.GetByID(context.Background(), "b-partial")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.DurationDays)
	assert.Equal(t, pricing.DurationDays(stored.StartDate, stored.EndDate), stored.DurationDays)
	assert.Equal(t, 60.0, stored.BasePrice)
	assert.Equal(t, 60.0, stored.TotalPrice)

	// Следующее продление переходит в третьи сутки
	resp, err = uc.Execute(context.Background(), &Request{
		Principal:  domain.Principal{ID: "user-1"},
		BookingID:  "b-partial",
		NewEndDate: start.Add(50 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.AdditionalDays)
	assert.Equal(t, 30.0, resp.AdditionalCost)

	stored, err = f.bookings.GetByID(context.Background(), "b-partial")
	require.NoError(t, err)
	assert.Equal(t, 3, stored.DurationDays)
	assert.Equal(t, 90.0, stored.BasePrice)
	assert.Equal(t, stored.BasePrice+stored.AdditionalCosts, stored.TotalPrice)
}
