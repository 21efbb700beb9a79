package finalize_booking

import (
	"net/http"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	createBookingHandler "github.com/m04kA/SMC-CarRentalService/internal/api/handlers/create_booking"
	"github.com/m04kA/SMC-CarRentalService/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD или RFC3339"
	msgMissingPrincipal   = "пользователь не аутентифицирован"
)

const operation = "finalize"

type Handler struct {
	useCase  FinalizeBookingUseCase
	observer handlers.OperationObserver
	logger   Logger
}

func NewHandler(useCase FinalizeBookingUseCase, observer handlers.OperationObserver, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		observer: observer,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings/finalize
// Тело запроса такое же, как при создании бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/finalize - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req createBookingHandler.CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/finalize - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(principal)
	if err != nil {
		h.logger.Warn("POST /bookings/finalize - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	h.observer.ObserveBookingOperation(operation, err)
	if err != nil {
		createBookingHandler.RespondUseCaseError(w, h.logger, "POST /bookings/finalize", principal.ID, req.CarID, err)
		return
	}

	h.logger.Info("POST /bookings/finalize - Booking finalized: booking_id=%s, user_id=%s, points=%d",
		result.Booking.ID, principal.ID, result.PointsEarned)
	handlers.RespondJSON(w, http.StatusCreated, &FinalizeBookingResponse{
		BookingID:    result.Booking.ID,
		Booking:      result.Booking,
		PointsEarned: result.PointsEarned,
	})
}
