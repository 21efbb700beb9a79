package upsert_car

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/api/middleware"
	"github.com/m04kA/SMC-CarRentalService/internal/service/cars"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPrincipal   = "пользователь не аутентифицирован"
	msgForbidden          = "требуются права администратора"
	msgInvalidInput       = "некорректные данные автомобиля"
)

type Handler struct {
	service CarService
	logger  Logger
}

func NewHandler(service CarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/cars/{carId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carID := mux.Vars(r)["carId"]

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("PUT /cars/{id} - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req UpsertCarRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /cars/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	car, err := h.service.Upsert(r.Context(), principal, req.ToDomain(carID))
	if err != nil {
		switch {
		case errors.Is(err, cars.ErrAccessDenied):
			h.logger.Warn("PUT /cars/{id} - Access denied: car_id=%s, user_id=%s", carID, principal.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cars.ErrInvalidInput):
			h.logger.Warn("PUT /cars/{id} - Invalid input: car_id=%s, error=%v", carID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /cars/{id} - Failed to save car: car_id=%s, error=%v", carID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /cars/{id} - Car saved: car_id=%s, user_id=%s", carID, principal.ID)
	handlers.RespondJSON(w, http.StatusOK, car)
}
