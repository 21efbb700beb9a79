package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/api/middleware"
	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	createBooking "github.com/m04kA/SMC-CarRentalService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CarRentalService/pkg/logger"
	"github.com/m04kA/SMC-CarRentalService/pkg/metrics"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *createBooking.Request, opts ...createBooking.ExecuteOption) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*createBooking.Response)
	return resp, args.Error(1)
}

const body = `{"carId":"car-1","startDate":"2024-06-01","endDate":"2024-06-04","pickupLocation":"Airport","returnLocation":"Airport"}`

func serve(h *Handler, payload string, withPrincipal bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(payload))
	if withPrincipal {
		req = req.WithContext(middleware.WithPrincipal(req.Context(), domain.Principal{ID: "user-1"}))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Created(t *testing.T) {
	uc := new(MockUseCase)
	booking := &domain.Booking{ID: "b1", UserID: "user-1", CarID: "car-1", TotalPrice: 90}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.Principal.ID == "user-1" &&
			req.CarID == "car-1" &&
			req.StartDate.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) &&
			req.EndDate.Equal(time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC))
	})).Return(&createBooking.Response{Booking: booking}, nil)

	rec := serve(NewHandler(uc, (*metrics.Metrics)(nil), logger.NewNop()), body, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "b1", resp.BookingID)
	assert.Equal(t, 90.0, resp.Booking.TotalPrice)
	uc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{name: "invalid dates", err: createBooking.ErrInvalidDates, status: http.StatusBadRequest, kind: handlers.KindValidation},
		{name: "start in past", err: createBooking.ErrStartInPast, status: http.StatusBadRequest, kind: handlers.KindValidation},
		{name: "car not found", err: createBooking.ErrCarNotFound, status: http.StatusNotFound, kind: handlers.KindNotFound},
		{name: "car booked", err: createBooking.ErrCarBooked, status: http.StatusConflict, kind: handlers.KindConflict},
		{name: "concurrent booking", err: createBooking.ErrConcurrentUpdate, status: http.StatusConflict, kind: handlers.KindConflict},
		{name: "internal", err: errors.New("boom"), status: http.StatusInternalServerError, kind: handlers.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(NewHandler(uc, (*metrics.Metrics)(nil), logger.NewNop()), body, true)

			assert.Equal(t, tt.status, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.kind, resp.Kind)
		})
	}
}

func TestHandler_BadRequests(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, (*metrics.Metrics)(nil), logger.NewNop())

	assert.Equal(t, http.StatusUnauthorized, serve(h, body, false).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, `{"carId":`, true).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, `{"carId":"car-1","startDate":"01.06.2024","endDate":"2024-06-04"}`, true).Code)

	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
