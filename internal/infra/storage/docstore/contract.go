package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Store контракт документного хранилища
//
// Update выполняет частичное слияние верхнеуровневых полей документа и увеличивает версию.
// Если expectedVersion > 0, обновление выполняется только при совпадении версии (compare-and-set).
// DoSerializable выполняет fn в одной транзакции; вложенные вызовы присоединяются к внешней.
type Store interface {
	Get(ctx context.Context, collection, id string) (*Document, error)
	Query(ctx context.Context, collection string, filters ...Filter) ([]*Document, error)
	Add(ctx context.Context, collection, id string, data interface{}) error
	Update(ctx context.Context, collection, id string, patch interface{}, expectedVersion int64) error
	Delete(ctx context.Context, collection, id string) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Document документ коллекции
type Document struct {
	ID        string
	Data      json.RawMessage
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DataTo декодирует данные документа в v
func (d *Document) DataTo(v interface{}) error {
	if err := json.Unmarshal(d.Data, v); err != nil {
		return fmt.Errorf("%w: document %s: %v", ErrDecode, d.ID, err)
	}
	return nil
}

// Filter условие на строковое поле верхнего уровня: равенство одному из Values
type Filter struct {
	Field  string
	Values []string
}

// Eq фильтр по равенству
func Eq(field, value string) Filter {
	return Filter{Field: field, Values: []string{value}}
}

// In фильтр по вхождению в список
func In(field string, values ...string) Filter {
	return Filter{Field: field, Values: values}
}

// toMap приводит структуру или map к map[string]interface{} через JSON
func toMap(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return m, nil
}

// toJSON кодирует данные документа
func toJSON(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return raw, nil
}
