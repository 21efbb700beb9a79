package check_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/booking"
	carRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/car"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/docstore"
	checkAvailability "github.com/m04kA/SMC-CarRentalService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-CarRentalService/pkg/logger"
)

func newRouter(t *testing.T) *mux.Router {
	ctx := context.Background()
	store := docstore.NewMemory()
	cars := carRepo.NewRepository(store)
	bookings := bookingRepo.NewRepository(store)

	require.NoError(t, cars.Upsert(ctx, &domain.Car{ID: "car-1", Make: "Skoda", Model: "Octavia", PricePerDay: 30, Available: true}))
	require.NoError(t, bookings.Create(ctx, &domain.Booking{
		ID:        "b1",
		CarID:     "car-1",
		UserID:    "user-1",
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		Status:    domain.StatusConfirmed,
	}))

	uc := checkAvailability.NewUseCase(bookings, cars, logger.NewNop())
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/cars/{carId}/availability", NewHandler(uc, logger.NewNop()).Handle)
	return router
}

func get(router *mux.Router, url string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHandler(t *testing.T) {
	router := newRouter(t)

	t.Run("overlap", func(t *testing.T) {
		rec := get(router, "/api/v1/cars/car-1/availability?startDate=2024-06-03&endDate=2024-06-05")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp AvailabilityResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Available)
		require.Len(t, resp.Conflicts, 1)
		assert.Equal(t, "2024-06-01T00:00:00Z", resp.Conflicts[0].StartDate)
	})

	t.Run("touching boundary", func(t *testing.T) {
		rec := get(router, "/api/v1/cars/car-1/availability?startDate=2024-06-04&endDate=2024-06-06")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp AvailabilityResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Available)
		assert.Empty(t, resp.Conflicts)
	})

	t.Run("errors", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get(router, "/api/v1/cars/car-1/availability?startDate=2024-06-04").Code)
		assert.Equal(t, http.StatusBadRequest, get(router, "/api/v1/cars/car-1/availability?startDate=2024-06-04&endDate=2024-06-01").Code)
		assert.Equal(t, http.StatusNotFound, get(router, "/api/v1/cars/nope/availability?startDate=2024-06-04&endDate=2024-06-05").Code)
	})
}
