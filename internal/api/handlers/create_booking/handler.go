package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-CarRentalService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD или RFC3339"
	msgMissingPrincipal   = "пользователь не аутентифицирован"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidDates       = "дата окончания должна быть позже даты начала"
	msgStartInPast        = "дата начала уже прошла"
	msgCarNotFound        = "автомобиль не найден"
	msgCarUnavailable     = "автомобиль недоступен для аренды"
	msgCarBooked          = "автомобиль уже забронирован на выбранные даты"
	msgConcurrentUpdate   = "автомобиль бронируется параллельно, повторите запрос"
)

const operation = "create"

type Handler struct {
	useCase  CreateBookingUseCase
	observer handlers.OperationObserver
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, observer handlers.OperationObserver, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		observer: observer,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(principal)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	h.observer.ObserveBookingOperation(operation, err)
	if err != nil {
		RespondUseCaseError(w, h.logger, "POST /bookings", principal.ID, req.CarID, err)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, car_id=%s",
		result.Booking.ID, principal.ID, req.CarID)
	handlers.RespondJSON(w, http.StatusCreated, &CreateBookingResponse{
		BookingID: result.Booking.ID,
		Booking:   result.Booking,
	})
}

// RespondUseCaseError переводит ошибку создания бронирования в HTTP ответ
func RespondUseCaseError(w http.ResponseWriter, logger Logger, route, userID, carID string, err error) {
	switch {
	case errors.Is(err, createBooking.ErrInvalidDates):
		logger.Warn("%s - Invalid dates: user_id=%s", route, userID)
		handlers.RespondBadRequest(w, msgInvalidDates)

	case errors.Is(err, createBooking.ErrStartInPast):
		logger.Warn("%s - Start date in the past: user_id=%s", route, userID)
		handlers.RespondBadRequest(w, msgStartInPast)

	case errors.Is(err, createBooking.ErrInvalidInput):
		logger.Warn("%s - Invalid input: user_id=%s, error=%v", route, userID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, createBooking.ErrCarNotFound):
		logger.Warn("%s - Car not found: car_id=%s", route, carID)
		handlers.RespondNotFound(w, msgCarNotFound)

	case errors.Is(err, createBooking.ErrCarUnavailable):
		logger.Warn("%s - Car unavailable: car_id=%s", route, carID)
		handlers.RespondConflict(w, msgCarUnavailable)

	case errors.Is(err, createBooking.ErrCarBooked):
		logger.Warn("%s - Car already booked: car_id=%s, user_id=%s", route, carID, userID)
		handlers.RespondConflict(w, msgCarBooked)

	case errors.Is(err, createBooking.ErrConcurrentUpdate):
		logger.Warn("%s - Concurrent booking: car_id=%s, user_id=%s", route, carID, userID)
		handlers.RespondConflict(w, msgConcurrentUpdate)

	default:
		logger.Error("%s - Failed to create booking: user_id=%s, car_id=%s, error=%v", route, userID, carID, err)
		handlers.RespondInternalError(w)
	}
}
