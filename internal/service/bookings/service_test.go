package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/docstore"
	"github.com/m04kA/SMC-CarRentalService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CarRentalService/pkg/logger"
	"github.com/m04kA/SMC-CarRentalService/pkg/ptr"
)

var (
	owner = domain.Principal{ID: "user-1"}
	other = domain.Principal{ID: "user-2"}
	admin = domain.Principal{ID: "admin-1", Role: domain.RoleAdmin, IsAdmin: true}
)

func newService(t *testing.T) (*Service, *bookingRepo.Repository) {
	t.Helper()

	store := docstore.NewMemory()
	repo := bookingRepo.NewRepository(store)
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, b := range []*domain.Booking{
		{ID: "b-1", UserID: "user-1", CarID: "car-1", StartDate: start, EndDate: start.AddDate(0, 0, 2), Status: domain.StatusConfirmed},
		{ID: "b-2", UserID: "user-1", CarID: "car-2", StartDate: start, EndDate: start.AddDate(0, 0, 2), Status: domain.StatusCancelled},
		{ID: "b-draft", UserID: "user-1", CarID: "car-2", StartDate: start, EndDate: start.AddDate(0, 0, 2), Status: domain.StatusDraft},
		{ID: "b-3", UserID: "user-2", CarID: "car-1", StartDate: start, EndDate: start.AddDate(0, 0, 2), Status: domain.StatusActive},
	} {
		require.NoError(t, repo.Create(context.Background(), b))
	}

	return NewService(repo, store, logger.NewNop()), repo
}

func TestService_GetByID(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	booking, err := svc.GetByID(ctx, "b-1", owner)
	require.NoError(t, err)
	assert.Equal(t, "car-1", booking.CarID)

	_, err = svc.GetByID(ctx, "b-1", admin)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, "b-1", other)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, "missing", owner)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetUserBookings(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	bookings, err := svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{Principal: owner, UserID: "user-1"})
	require.NoError(t, err)
	assert.Len(t, bookings, 3)

	bookings, err = svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{Principal: admin, UserID: "user-1", Status: ptr.Ptr("cancelled")})
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "b-2", bookings[0].ID)

	_, err = svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{Principal: owner, UserID: "user-1", Status: ptr.Ptr("lost")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{Principal: other, UserID: "user-1"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_DeleteDraft(t *testing.T) {
	tests := []struct {
		name      string
		principal domain.Principal
		bookingID string
		wantErr   error
	}{
		{name: "confirmed booking", principal: owner, bookingID: "b-1", wantErr: ErrCannotDelete},
		{name: "other user", principal: other, bookingID: "b-draft", wantErr: ErrAccessDenied},
		{name: "admin is not owner", principal: admin, bookingID: "b-draft", wantErr: ErrAccessDenied},
		{name: "missing", principal: owner, bookingID: "missing", wantErr: ErrBookingNotFound},
		{name: "owner deletes draft", principal: owner, bookingID: "b-draft"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)

			err := svc.DeleteDraft(context.Background(), &models.DeleteBookingRequest{Principal: tt.principal, BookingID: tt.bookingID})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			_, err = repo.GetByID(context.Background(), tt.bookingID)
			assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)
		})
	}
}
