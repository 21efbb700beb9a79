package invoice

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/docstore"
)

// Collection коллекция счетов
const Collection = "invoices"

// Repository репозиторий счетов
// Счета только добавляются: после создания их суммы не меняются
type Repository struct {
	store Store
}

// NewRepository создает новый экземпляр репозитория счетов
func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// Create сохраняет новый счет
func (r *Repository) Create(ctx context.Context, invoice *domain.Invoice) error {
	if err := r.store.Add(ctx, Collection, invoice.ID, invoice); err != nil {
		if errors.Is(err, docstore.ErrAlreadyExists) {
			return ErrInvoiceExists
		}
		return fmt.Errorf("%w: Create - add document: %v", ErrStore, err)
	}
	return nil
}

// GetByID получает счет по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - get document: %v", ErrStore, err)
	}
	return decode(doc)
}

// GetByBookingID получает все счета бронирования в порядке создания
func (r *Repository) GetByBookingID(ctx context.Context, bookingID string) ([]*domain.Invoice, error) {
	docs, err := r.store.Query(ctx, Collection, docstore.Eq("bookingId", bookingID))
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - query documents: %v", ErrStore, err)
	}

	invoices := make([]*domain.Invoice, 0, len(docs))
	for _, doc := range docs {
		invoice, err := decode(doc)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, nil
}

func decode(doc *docstore.Document) (*domain.Invoice, error) {
	var invoice domain.Invoice
	if err := doc.DataTo(&invoice); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	invoice.ID = doc.ID
	return &invoice, nil
}
