package get_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRentalService/internal/api/middleware"
	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	"github.com/m04kA/SMC-CarRentalService/internal/service/bookings"
	"github.com/m04kA/SMC-CarRentalService/pkg/logger"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) GetByID(ctx context.Context, id string, principal domain.Principal) (*domain.Booking, error) {
	args := m.Called(ctx, id, principal)
	booking, _ := args.Get(0).(*domain.Booking)
	return booking, args.Error(1)
}

func serve(svc BookingService) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/b1", nil)
	req = req.WithContext(middleware.WithPrincipal(req.Context(), domain.Principal{ID: "user-1"}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	principal := domain.Principal{ID: "user-1"}

	t.Run("ok", func(t *testing.T) {
		svc := new(MockBookingService)
		svc.On("GetByID", mock.Anything, "b1", principal).
			Return(&domain.Booking{ID: "b1", UserID: "user-1", Status: domain.StatusConfirmed}, nil)

		rec := serve(svc)

		require.Equal(t, http.StatusOK, rec.Code)
		var booking domain.Booking
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &booking))
		assert.Equal(t, "b1", booking.ID)
		svc.AssertExpectations(t)
	})

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "forbidden", err: bookings.ErrAccessDenied, status: http.StatusForbidden},
		{name: "internal", err: errors.New("boom"), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockBookingService)
			svc.On("GetByID", mock.Anything, "b1", principal).Return(nil, tt.err)

			assert.Equal(t, tt.status, serve(svc).Code)
		})
	}
}
