package invoice

import (
	"context"

	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/docstore"
)

// Store документное хранилище, поверх которого работает репозиторий
// Поддерживает *docstore.Postgres, *docstore.Firestore и *docstore.Memory
type Store interface {
	Get(ctx context.Context, collection, id string) (*docstore.Document, error)
	Query(ctx context.Context, collection string, filters ...docstore.Filter) ([]*docstore.Document, error)
	Add(ctx context.Context, collection, id string, data interface{}) error
	Update(ctx context.Context, collection, id string, patch interface{}, expectedVersion int64) error
	Delete(ctx context.Context, collection, id string) error
}
