package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// versionField служебное поле с версией документа
const versionField = "_version"

type firestoreTxKey struct{}

// Firestore документное хранилище поверх Cloud Firestore
//
// Внутри транзакции Firestore сам обеспечивает оптимистичную блокировку прочитанных документов,
// поэтому expectedVersion проверяется явно только вне транзакции.
type Firestore struct {
	client *firestore.Client
}

// NewFirestore создает хранилище поверх клиента Firestore
func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

func txFromContext(ctx context.Context) (*firestore.Transaction, bool) {
	tx, ok := ctx.Value(firestoreTxKey{}).(*firestore.Transaction)
	return tx, ok
}

// DoSerializable выполняет fn в транзакции Firestore (fn может быть вызвана повторно при конфликте)
func (s *Firestore) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		return fn(context.WithValue(ctx, firestoreTxKey{}, tx))
	})
}

func (s *Firestore) Get(ctx context.Context, collection, id string) (*Document, error) {
	ref := s.client.Collection(collection).Doc(id)

	var (
		snap *firestore.DocumentSnapshot
		err  error
	)
	if tx, ok := txFromContext(ctx); ok {
		snap, err = tx.Get(ref)
	} else {
		snap, err = ref.Get(ctx)
	}

	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - %v", ErrExecQuery, err)
	}

	return snapshotToDocument(snap)
}

func (s *Firestore) Query(ctx context.Context, collection string, filters ...Filter) ([]*Document, error) {
	query := s.client.Collection(collection).Query

	for _, filter := range filters {
		switch len(filter.Values) {
		case 0:
			return []*Document{}, nil
		case 1:
			query = query.Where(filter.Field, "==", filter.Values[0])
		default:
			query = query.Where(filter.Field, "in", filter.Values)
		}
	}

	var (
		snaps []*firestore.DocumentSnapshot
		err   error
	)
	if tx, ok := txFromContext(ctx); ok {
		snaps, err = tx.Documents(query).GetAll()
	} else {
		snaps, err = query.Documents(ctx).GetAll()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Query - %v", ErrExecQuery, err)
	}

	docs := make([]*Document, 0, len(snaps))
	for _, snap := range snaps {
		doc, err := snapshotToDocument(snap)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *Firestore) Add(ctx context.Context, collection, id string, data interface{}) error {
	fields, err := toMap(data)
	if err != nil {
		return err
	}
	fields[versionField] = int64(1)

	ref := s.client.Collection(collection).Doc(id)
	if tx, ok := txFromContext(ctx); ok {
		err = tx.Create(ref, fields)
	} else {
		_, err = ref.Create(ctx, fields)
	}

	if status.Code(err) == codes.AlreadyExists {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("%w: Add - %v", ErrExecQuery, err)
	}
	return nil
}

func (s *Firestore) Update(ctx context.Context, collection, id string, patch interface{}, expectedVersion int64) error {
	fields, err := toMap(patch)
	if err != nil {
		return err
	}

	updates := make([]firestore.Update, 0, len(fields)+1)
	for field, value := range fields {
		updates = append(updates, firestore.Update{Path: field, Value: value})
	}
	updates = append(updates, firestore.Update{Path: versionField, Value: firestore.Increment(1)})

	ref := s.client.Collection(collection).Doc(id)

	if tx, ok := txFromContext(ctx); ok {
		return mapWriteError(tx.Update(ref, updates))
	}

	if expectedVersion == 0 {
		_, err := ref.Update(ctx, updates)
		return mapWriteError(err)
	}

	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: Update - %v", ErrExecQuery, err)
		}
		if versionOf(snap.Data()) != expectedVersion {
			return ErrVersionConflict
		}
		return mapWriteError(tx.Update(ref, updates))
	})
}

func (s *Firestore) Delete(ctx context.Context, collection, id string) error {
	ref := s.client.Collection(collection).Doc(id)

	var err error
	if tx, ok := txFromContext(ctx); ok {
		err = tx.Delete(ref, firestore.Exists)
	} else {
		_, err = ref.Delete(ctx, firestore.Exists)
	}
	return mapWriteError(err)
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrExecQuery, err)
}

func versionOf(data map[string]interface{}) int64 {
	switch v := data[versionField].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func snapshotToDocument(snap *firestore.DocumentSnapshot) (*Document, error) {
	data := snap.Data()
	version := versionOf(data)
	delete(data, versionField)

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return &Document{
		ID:        snap.Ref.ID,
		Data:      raw,
		Version:   version,
		CreatedAt: snap.CreateTime,
		UpdatedAt: snap.UpdateTime,
	}, nil
}
