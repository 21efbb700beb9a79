package loyalty

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/docstore"
)

// Collection коллекция пользователей, документ хранит баланс баллов
const Collection = "users"

// Repository репозиторий баллов лояльности
type Repository struct {
	store Store
}

// NewRepository создает новый экземпляр репозитория баллов
func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// Get получает счет баллов пользователя
func (r *Repository) Get(ctx context.Context, userID string) (*domain.LoyaltyAccount, error) {
	doc, err := r.store.Get(ctx, Collection, userID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("%w: Get - get document: %v", ErrStore, err)
	}

	var account domain.LoyaltyAccount
	if err := doc.DataTo(&account); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	account.UserID = doc.ID
	account.Version = doc.Version

	return &account, nil
}

// Create заводит счет баллов пользователя
func (r *Repository) Create(ctx context.Context, account *domain.LoyaltyAccount) error {
	if err := r.store.Add(ctx, Collection, account.UserID, account); err != nil {
		if errors.Is(err, docstore.ErrAlreadyExists) {
			return ErrAccountExists
		}
		return fmt.Errorf("%w: Create - add document: %v", ErrStore, err)
	}

	account.Version = 1
	return nil
}

// Update сохраняет баланс и историю, если счет не менялся с момента чтения
func (r *Repository) Update(ctx context.Context, account *domain.LoyaltyAccount) error {
	patch := map[string]interface{}{
		"points":        account.Points,
		"pointsHistory": account.PointsHistory,
	}

	if err := r.store.Update(ctx, Collection, account.UserID, patch, account.Version); err != nil {
		switch {
		case errors.Is(err, docstore.ErrNotFound):
			return ErrAccountNotFound
		case errors.Is(err, docstore.ErrVersionConflict):
			return ErrConcurrentModification
		}
		return fmt.Errorf("%w: Update - update document: %v", ErrStore, err)
	}

	account.Version++
	return nil
}
