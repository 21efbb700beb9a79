package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"
)

type memoryTxKey struct{}

type memoryKey struct {
	collection string
	id         string
}

// memoryTx журнал отката: исходное состояние документов, измененных в транзакции
// nil означает, что документа до транзакции не было
type memoryTx struct {
	undo map[memoryKey]*memoryDocument
}

func (tx *memoryTx) remember(key memoryKey, doc *memoryDocument) {
	if _, seen := tx.undo[key]; seen {
		return
	}
	tx.undo[key] = doc
}

type memoryDocument struct {
	data      map[string]interface{}
	version   int64
	seq       int64
	createdAt time.Time
	updatedAt time.Time
}

// Memory документное хранилище в памяти
// Транзакции сериализуются; при ошибке fn откатываются только документы, измененные в транзакции
type Memory struct {
	mu          sync.RWMutex
	txMu        sync.Mutex
	collections map[string]map[string]*memoryDocument
	seq         int64
	now         func() time.Time
}

// NewMemory создает пустое хранилище в памяти
func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string]map[string]*memoryDocument),
		now:         time.Now,
	}
}

// DoSerializable выполняет fn эксклюзивно, откатывая изменения fn при ошибке
func (s *Memory) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if memoryTxFromContext(ctx) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &memoryTx{undo: make(map[memoryKey]*memoryDocument)}

	if err := fn(context.WithValue(ctx, memoryTxKey{}, tx)); err != nil {
		s.rollback(tx)
		return err
	}

	return nil
}

func memoryTxFromContext(ctx context.Context) *memoryTx {
	tx, _ := ctx.Value(memoryTxKey{}).(*memoryTx)
	return tx
}

func (s *Memory) rollback(tx *memoryTx) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, doc := range tx.undo {
		if doc == nil {
			delete(s.collections[key.collection], key.id)
			continue
		}
		docs, ok := s.collections[key.collection]
		if !ok {
			docs = make(map[string]*memoryDocument)
			s.collections[key.collection] = docs
		}
		docs[key.id] = doc
	}
}

// track запоминает исходное состояние документа перед изменением внутри транзакции
// Вызывается под s.mu
func (s *Memory) track(ctx context.Context, collection, id string) {
	tx := memoryTxFromContext(ctx)
	if tx == nil {
		return
	}
	tx.remember(memoryKey{collection: collection, id: id}, s.collections[collection][id])
}

func (s *Memory) Get(_ context.Context, collection, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return toDocument(id, doc)
}

func (s *Memory) Query(_ context.Context, collection string, filters ...Filter) ([]*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type match struct {
		id  string
		doc *memoryDocument
	}
	matches := make([]match, 0)

	for id, doc := range s.collections[collection] {
		if matchesFilters(doc.data, filters) {
			matches = append(matches, match{id: id, doc: doc})
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].doc.seq < matches[j].doc.seq })

	docs := make([]*Document, 0, len(matches))
	for _, m := range matches {
		doc, err := toDocument(m.id, m.doc)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *Memory) Add(ctx context.Context, collection, id string, data interface{}) error {
	fields, err := toMap(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]*memoryDocument)
		s.collections[collection] = docs
	}
	if _, exists := docs[id]; exists {
		return ErrAlreadyExists
	}

	s.track(ctx, collection, id)
	s.seq++
	now := s.now()
	docs[id] = &memoryDocument{
		data:      fields,
		version:   1,
		seq:       s.seq,
		createdAt: now,
		updatedAt: now,
	}
	return nil
}

func (s *Memory) Update(ctx context.Context, collection, id string, patch interface{}, expectedVersion int64) error {
	fields, err := toMap(patch)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	if expectedVersion > 0 && doc.version != expectedVersion {
		return ErrVersionConflict
	}

	s.track(ctx, collection, id)

	merged := make(map[string]interface{}, len(doc.data)+len(fields))
	for k, v := range doc.data {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	s.collections[collection][id] = &memoryDocument{
		data:      merged,
		version:   doc.version + 1,
		seq:       doc.seq,
		createdAt: doc.createdAt,
		updatedAt: s.now(),
	}
	return nil
}

func (s *Memory) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return ErrNotFound
	}
	s.track(ctx, collection, id)
	delete(s.collections[collection], id)
	return nil
}

func matchesFilters(data map[string]interface{}, filters []Filter) bool {
	for _, filter := range filters {
		value, ok := data[filter.Field]
		if !ok {
			return false
		}
		str := fmt.Sprint(value)

		found := false
		for _, candidate := range filter.Values {
			if candidate == str {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func toDocument(id string, doc *memoryDocument) (*Document, error) {
	raw, err := json.Marshal(doc.data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return &Document{
		ID:        id,
		Data:      raw,
		Version:   doc.version,
		CreatedAt: doc.createdAt,
		UpdatedAt: doc.updatedAt,
	}, nil
}
