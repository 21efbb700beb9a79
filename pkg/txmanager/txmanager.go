package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-CarRentalService/pkg/dbmetrics"
)

var (
	// ErrBeginTx возвращается, если не удалось начать транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается, если не удалось зафиксировать транзакцию
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrSerializationFailure возвращается, когда транзакция так и не прошла из-за конфликтов сериализации
	ErrSerializationFailure = errors.New("txmanager: serialization failure")
)

const (
	// maxAttempts попыток выполнить транзакцию при конфликтах сериализации
	maxAttempts = 3

	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

type stateKey struct{}

// txState состояние текущей попытки транзакции
type txState struct {
	serializationFailure bool
}

// IsSerializationFailure проверяет, что ошибка PostgreSQL означает конфликт сериализации или дедлок
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pgSerializationFailure || pqErr.Code == pgDeadlockDetected
}

// MarkSerializationFailure отмечает текущую транзакцию как прерванную конфликтом сериализации
// Такая транзакция будет выполнена повторно
func MarkSerializationFailure(ctx context.Context) {
	if state, ok := ctx.Value(stateKey{}).(*txState); ok {
		state.serializationFailure = true
	}
}

// TransactionManager управляет транзакциями, передавая их через context
type TransactionManager struct {
	db dbmetrics.TxBeginner
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db dbmetrics.TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// Вложенный вызов присоединяется к внешней транзакции
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		var retry bool
		retry, err = m.attempt(ctx, opts, fn)
		if !retry {
			return err
		}
	}

	return fmt.Errorf("%w: after %d attempts: %v", ErrSerializationFailure, maxAttempts, err)
}

// attempt выполняет одну попытку транзакции; retry = true, если попытку можно повторить
func (m *TransactionManager) attempt(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (bool, error) {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	state := &txState{}
	txCtx := context.WithValue(dbmetrics.WithTx(ctx, tx), stateKey{}, state)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return state.serializationFailure || IsSerializationFailure(err), err
	}

	if err := tx.Commit(); err != nil {
		if IsSerializationFailure(err) {
			return true, err
		}
		return false, fmt.Errorf("%w: %v", ErrCommitTx, err)
	}

	return false, nil
}
