package redeem_points

import (
	"context"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

type LoyaltyService interface {
	Redeem(ctx context.Context, principal domain.Principal, userID string, points int, description string) (*domain.LoyaltyAccount, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
