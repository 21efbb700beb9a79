package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/docstore"
)

// Collection коллекция бронирований
const Collection = "reservations"

// Repository репозиторий для работы с бронированиями
type Repository struct {
	store Store
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// Create сохраняет новое бронирование с уже назначенным ID
// Если в контексте передана активная транзакция, запись выполняется в ней.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) error {
	if err := r.store.Add(ctx, Collection, booking.ID, booking); err != nil {
		if errors.Is(err, docstore.ErrAlreadyExists) {
			return ErrBookingExists
		}
		return fmt.Errorf("%w: Create - add document: %v", ErrStore, err)
	}

	booking.Version = 1
	return nil
}

// GetByID получает бронирование по ID
// Внутри транзакции документ блокируется до её завершения
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - get document: %v", ErrStore, err)
	}

	return decode(doc)
}

// GetByFilter получает бронирования по пользователю, автомобилю и статусам
// Пустой фильтр возвращает все бронирования коллекции
func (r *Repository) GetByFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	filters := make([]docstore.Filter, 0, 3)

	if filter.UserID != nil {
		filters = append(filters, docstore.Eq("userId", *filter.UserID))
	}
	if filter.CarID != nil {
		filters = append(filters, docstore.Eq("carId", *filter.CarID))
	}
	if filter.Statuses != nil {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			statuses = append(statuses, string(status))
		}
		filters = append(filters, docstore.In("status", statuses...))
	}

	docs, err := r.store.Query(ctx, Collection, filters...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - query documents: %v", ErrStore, err)
	}

	bookings := make([]*domain.Booking, 0, len(docs))
	for _, doc := range docs {
		booking, err := decode(doc)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

// Update сохраняет бронирование, если его версия не изменилась с момента чтения
// После успешной записи booking.Version указывает на новую версию
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	err := r.store.Update(ctx, Collection, booking.ID, booking, booking.Version)
	if err != nil {
		switch {
		case errors.Is(err, docstore.ErrNotFound):
			return ErrBookingNotFound
		case errors.Is(err, docstore.ErrVersionConflict):
			return ErrConcurrentModification
		}
		return fmt.Errorf("%w: Update - update document: %v", ErrStore, err)
	}

	booking.Version++
	return nil
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, Collection, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("%w: Delete - delete document: %v", ErrStore, err)
	}
	return nil
}

func decode(doc *docstore.Document) (*domain.Booking, error) {
	var booking domain.Booking
	if err := doc.DataTo(&booking); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	booking.ID = doc.ID
	booking.Version = doc.Version
	return &booking, nil
}
