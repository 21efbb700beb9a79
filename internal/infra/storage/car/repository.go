package car

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/docstore"
)

// Collection коллекция каталога автомобилей
const Collection = "cars"

// Repository репозиторий каталога автомобилей
type Repository struct {
	store Store
}

// NewRepository создает новый экземпляр репозитория автомобилей
func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// GetByID получает автомобиль по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - get document: %v", ErrStore, err)
	}

	var car domain.Car
	if err := doc.DataTo(&car); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	car.ID = doc.ID

	return &car, nil
}

// Upsert создает автомобиль или перезаписывает его поля
func (r *Repository) Upsert(ctx context.Context, car *domain.Car) error {
	err := r.store.Update(ctx, Collection, car.ID, car, 0)
	if err == nil {
		return nil
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		return fmt.Errorf("%w: Upsert - update document: %v", ErrStore, err)
	}

	if err := r.store.Add(ctx, Collection, car.ID, car); err != nil {
		return fmt.Errorf("%w: Upsert - add document: %v", ErrStore, err)
	}
	return nil
}
