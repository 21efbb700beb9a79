package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CarRentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarRentalService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-CarRentalService/pkg/txmanager"
)

const (
	documentsTable = "documents"

	pgUniqueViolation = "23505"
)

// DB соединение, поддерживающее запросы и транзакции (*dbmetrics.DB)
type DB interface {
	dbmetrics.DBExecutor
	dbmetrics.TxBeginner
}

// Postgres документное хранилище поверх таблицы documents (JSONB)
type Postgres struct {
	db        DB
	txManager *txmanager.TransactionManager
}

// NewPostgres создает хранилище поверх PostgreSQL
func NewPostgres(db DB) *Postgres {
	return &Postgres{
		db:        db,
		txManager: txmanager.NewTransactionManager(db),
	}
}

// DoSerializable выполняет fn в сериализуемой транзакции
// Get и Query внутри транзакции блокируют строки (FOR UPDATE)
// Конфликты сериализации повторяются менеджером транзакций; если повторы не помогли, возвращается ErrVersionConflict
func (s *Postgres) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	err := s.txManager.DoSerializable(ctx, fn)
	if errors.Is(err, txmanager.ErrSerializationFailure) {
		return fmt.Errorf("%w: %v", ErrVersionConflict, err)
	}
	return err
}

// checkSerialization отмечает транзакцию для повтора, если запрос упал на конфликте сериализации
func checkSerialization(ctx context.Context, err error) {
	if txmanager.IsSerializationFailure(err) {
		txmanager.MarkSerializationFailure(ctx)
	}
}

// Get получает документ по id
func (s *Postgres) Get(ctx context.Context, collection, id string) (*Document, error) {
	executor := dbmetrics.GetExecutor(ctx, s.db)

	selectBuilder := psqlbuilder.Select("id", "data", "version", "created_at", "updated_at").
		From(documentsTable).
		Where(squirrel.Eq{"collection": collection, "id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	doc, err := scanDocument(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		checkSerialization(ctx, err)
		return nil, fmt.Errorf("%w: Get - scan document: %v", ErrScanRow, err)
	}

	return doc, nil
}

// Query выбирает документы коллекции по фильтрам на поля верхнего уровня
func (s *Postgres) Query(ctx context.Context, collection string, filters ...Filter) ([]*Document, error) {
	executor := dbmetrics.GetExecutor(ctx, s.db)

	selectBuilder := psqlbuilder.Select("id", "data", "version", "created_at", "updated_at").
		From(documentsTable).
		Where(squirrel.Eq{"collection": collection})

	for _, filter := range filters {
		switch len(filter.Values) {
		case 0:
			return []*Document{}, nil
		case 1:
			selectBuilder = selectBuilder.Where(squirrel.Expr("data->>? = ?", filter.Field, filter.Values[0]))
		default:
			selectBuilder = selectBuilder.Where(squirrel.Expr("data->>? = ANY(?)", filter.Field, pq.Array(filter.Values)))
		}
	}

	selectBuilder = selectBuilder.OrderBy("created_at ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Query - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		checkSerialization(ctx, err)
		return nil, fmt.Errorf("%w: Query - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	docs := make([]*Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: Query - scan row: %v", ErrScanRow, err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		checkSerialization(ctx, err)
		return nil, fmt.Errorf("%w: Query - rows error: %v", ErrScanRow, err)
	}

	return docs, nil
}

// Add добавляет документ с заданным id
func (s *Postgres) Add(ctx context.Context, collection, id string, data interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, s.db)

	raw, err := toJSON(data)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Insert(documentsTable).
		Columns("collection", "id", "data").
		Values(collection, id, string(raw)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Add - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return ErrAlreadyExists
		}
		checkSerialization(ctx, err)
		return fmt.Errorf("%w: Add - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Update сливает patch с документом (оператор || для JSONB) и увеличивает версию
func (s *Postgres) Update(ctx context.Context, collection, id string, patch interface{}, expectedVersion int64) error {
	executor := dbmetrics.GetExecutor(ctx, s.db)

	raw, err := toJSON(patch)
	if err != nil {
		return err
	}

	updateBuilder := psqlbuilder.Update(documentsTable).
		Set("data", squirrel.Expr("data || ?::jsonb", string(raw))).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"collection": collection, "id": id})

	if expectedVersion > 0 {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"version": expectedVersion})
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		checkSerialization(ctx, err)
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected > 0 {
		return nil
	}

	if expectedVersion == 0 {
		return ErrNotFound
	}

	// Различаем отсутствие документа и конфликт версий
	if _, err := s.Get(ctx, collection, id); err != nil {
		return err
	}
	return ErrVersionConflict
}

// Delete удаляет документ
func (s *Postgres) Delete(ctx context.Context, collection, id string) error {
	executor := dbmetrics.GetExecutor(ctx, s.db)

	query, args, err := psqlbuilder.Delete(documentsTable).
		Where(squirrel.Eq{"collection": collection, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		checkSerialization(ctx, err)
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row rowScanner) (*Document, error) {
	var (
		doc                  Document
		data                 []byte
		createdAt, updatedAt sql.NullTime
	)

	if err := row.Scan(&doc.ID, &data, &doc.Version, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	doc.Data = json.RawMessage(data)
	doc.CreatedAt = createdAt.Time
	doc.UpdatedAt = updatedAt.Time

	return &doc, nil
}
