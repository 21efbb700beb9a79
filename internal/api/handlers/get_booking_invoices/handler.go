package get_booking_invoices

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/api/middleware"
	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	"github.com/m04kA/SMC-CarRentalService/internal/service/invoices"
)

const (
	msgNotFound         = "бронирование не найдено"
	msgMissingPrincipal = "пользователь не аутентифицирован"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service InvoiceService
	logger  Logger
}

func NewHandler(service InvoiceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/invoices
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id}/invoices - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	result, err := h.service.ListForBooking(r.Context(), bookingID, principal)
	if err != nil {
		switch {
		case errors.Is(err, invoices.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/invoices - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, invoices.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id}/invoices - Access denied: booking_id=%s, user_id=%s", bookingID, principal.ID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/{id}/invoices - Failed to list invoices: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result == nil {
		result = []*domain.Invoice{}
	}

	h.logger.Info("GET /bookings/{id}/invoices - Invoices retrieved: booking_id=%s, count=%d", bookingID, len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
