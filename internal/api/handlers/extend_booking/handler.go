package extend_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/api/middleware"
	extendBooking "github.com/m04kA/SMC-CarRentalService/internal/usecase/extend_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD или RFC3339"
	msgMissingPrincipal   = "пользователь не аутентифицирован"
	msgNotFound           = "бронирование не найдено"
	msgCarNotFound        = "автомобиль бронирования не найден"
	msgForbidden          = "доступ запрещен"
	msgCannotExtend       = "бронирование не может быть продлено"
	msgInvalidEndDate     = "новая дата окончания должна быть позже текущей"
	msgCarBooked          = "автомобиль уже забронирован на даты продления"
	msgConcurrentUpdate   = "бронирование было изменено, повторите запрос"
	msgInvalidInput       = "некорректные данные продления"
)

const operation = "extend"

type Handler struct {
	useCase  ExtendBookingUseCase
	observer handlers.OperationObserver
	logger   Logger
}

func NewHandler(useCase ExtendBookingUseCase, observer handlers.OperationObserver, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		observer: observer,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/extend
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/extend - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req ExtendBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/extend - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	newEndDate, err := handlers.ParseDate(req.NewEndDate)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/extend - Invalid newEndDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &extendBooking.Request{
		Principal:  principal,
		BookingID:  bookingID,
		NewEndDate: newEndDate,
	})
	h.observer.ObserveBookingOperation(operation, err)
	if err != nil {
		switch {
		case errors.Is(err, extendBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/extend - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, extendBooking.ErrCarNotFound):
			h.logger.Warn("POST /bookings/{id}/extend - Car not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgCarNotFound)

		case errors.Is(err, extendBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/extend - Access denied: booking_id=%s, user_id=%s", bookingID, principal.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, extendBooking.ErrInvalidEndDate):
			h.logger.Warn("POST /bookings/{id}/extend - End date not after current: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgInvalidEndDate)

		case errors.Is(err, extendBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/extend - Invalid input: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, extendBooking.ErrCannotExtend):
			h.logger.Warn("POST /bookings/{id}/extend - Cannot extend: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgCannotExtend)

		case errors.Is(err, extendBooking.ErrCarBooked):
			h.logger.Warn("POST /bookings/{id}/extend - Car booked: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgCarBooked)

		case errors.Is(err, extendBooking.ErrConcurrentUpdate):
			h.logger.Warn("POST /bookings/{id}/extend - Concurrent update: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("POST /bookings/{id}/extend - Failed to extend booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/extend - Booking extended: booking_id=%s, days=%d, invoice_id=%s",
		bookingID, result.AdditionalDays, result.InvoiceID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
