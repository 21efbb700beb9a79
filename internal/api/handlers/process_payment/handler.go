package process_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/api/middleware"
	processPayment "github.com/m04kA/SMC-CarRentalService/internal/usecase/process_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPrincipal   = "пользователь не аутентифицирован"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgAlreadyPaid        = "бронирование не ожидает оплаты"
	msgCarBooked          = "автомобиль уже забронирован на эти даты"
	msgConcurrentUpdate   = "бронирование было изменено, повторите запрос"
	msgInvalidInput       = "некорректный способ оплаты"
)

const operation = "payment"

type Handler struct {
	useCase  ProcessPaymentUseCase
	observer handlers.OperationObserver
	logger   Logger
}

func NewHandler(useCase ProcessPaymentUseCase, observer handlers.OperationObserver, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		observer: observer,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/payment - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req ProcessPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &processPayment.Request{
		Principal:     principal,
		BookingID:     bookingID,
		PaymentMethod: req.PaymentMethod,
	})
	h.observer.ObserveBookingOperation(operation, err)
	if err != nil {
		switch {
		case errors.Is(err, processPayment.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/payment - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, processPayment.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/payment - Access denied: booking_id=%s, user_id=%s", bookingID, principal.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, processPayment.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/payment - Invalid input: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, processPayment.ErrAlreadyPaid):
			h.logger.Warn("POST /bookings/{id}/payment - Not awaiting payment: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgAlreadyPaid)

		case errors.Is(err, processPayment.ErrCarBooked):
			h.logger.Warn("POST /bookings/{id}/payment - Car booked: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgCarBooked)

		case errors.Is(err, processPayment.ErrConcurrentUpdate):
			h.logger.Warn("POST /bookings/{id}/payment - Concurrent update: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("POST /bookings/{id}/payment - Failed to process payment: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payment - Payment processed: booking_id=%s, invoice_id=%s, points=%d",
		bookingID, result.InvoiceID, result.PointsEarned)
	handlers.RespondJSON(w, http.StatusOK, &ProcessPaymentResponse{
		InvoiceID:    result.InvoiceID,
		Status:       result.Status,
		PointsEarned: result.PointsEarned,
	})
}
