package redeem_points

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/api/middleware"
	"github.com/m04kA/SMC-CarRentalService/internal/service/loyalty"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPrincipal   = "пользователь не аутентифицирован"
	msgForbidden          = "доступ запрещен"
	msgInvalidPoints      = "количество баллов должно быть положительным"
	msgInsufficientPoints = "недостаточно баллов"
)

const defaultDescription = "Points redemption"

type Handler struct {
	service LoyaltyService
	logger  Logger
}

func NewHandler(service LoyaltyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/users/{userId}/loyalty/redeem
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /users/{userId}/loyalty/redeem - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req RedeemPointsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users/{userId}/loyalty/redeem - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = defaultDescription
	}

	account, err := h.service.Redeem(r.Context(), principal, userID, req.Points, description)
	if err != nil {
		switch {
		case errors.Is(err, loyalty.ErrAccessDenied):
			h.logger.Warn("POST /users/{userId}/loyalty/redeem - Access denied: user_id=%s, principal=%s", userID, principal.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, loyalty.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidPoints)

		case errors.Is(err, loyalty.ErrInsufficientPoints):
			h.logger.Warn("POST /users/{userId}/loyalty/redeem - Insufficient points: user_id=%s, points=%d", userID, req.Points)
			handlers.RespondConflict(w, msgInsufficientPoints)

		default:
			h.logger.Error("POST /users/{userId}/loyalty/redeem - Failed to redeem: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /users/{userId}/loyalty/redeem - Redeemed %d points: user_id=%s, balance=%d",
		req.Points, userID, account.Points)
	handlers.RespondJSON(w, http.StatusOK, account)
}
