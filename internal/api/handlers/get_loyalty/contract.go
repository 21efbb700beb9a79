package get_loyalty

import (
	"context"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

type LoyaltyService interface {
	Get(ctx context.Context, principal domain.Principal, userID string) (*domain.LoyaltyAccount, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
