package docstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCar struct {
	Make        string  `json:"make"`
	PricePerDay float64 `json:"pricePerDay"`
	Status      string  `json:"status,omitempty"`
	CarID       string  `json:"carId,omitempty"`
}

func TestMemory_AddGet(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "cars", "car-1", testCar{Make: "Skoda", PricePerDay: 30}))

	doc, err := store.Get(ctx, "cars", "car-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), doc.Version)

	var car testCar
	require.NoError(t, doc.DataTo(&car))
	assert.Equal(t, "Skoda", car.Make)
	assert.Equal(t, 30.0, car.PricePerDay)

	err = store.Add(ctx, "cars", "car-1", testCar{})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = store.Get(ctx, "cars", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_UpdateMergesAndChecksVersion(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "cars", "car-1", testCar{Make: "Skoda", PricePerDay: 30}))

	require.NoError(t, store.Update(ctx, "cars", "car-1", map[string]interface{}{"pricePerDay": 35.0}, 1))

	doc, err := store.Get(ctx, "cars", "car-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), doc.Version)

	var car testCar
	require.NoError(t, doc.DataTo(&car))
	assert.Equal(t, "Skoda", car.Make)
	assert.Equal(t, 35.0, car.PricePerDay)

	err = store.Update(ctx, "cars", "car-1", map[string]interface{}{"pricePerDay": 40.0}, 1)
	assert.ErrorIs(t, err, ErrVersionConflict)

	require.NoError(t, store.Update(ctx, "cars", "car-1", map[string]interface{}{"pricePerDay": 40.0}, 0))

	err = store.Update(ctx, "cars", "missing", map[string]interface{}{"pricePerDay": 40.0}, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_QueryFilters(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "reservations", "b-1", testCar{CarID: "car-1", Status: "confirmed"}))
	require.NoError(t, store.Add(ctx, "reservations", "b-2", testCar{CarID: "car-1", Status: "cancelled"}))
	require.NoError(t, store.Add(ctx, "reservations", "b-3", testCar{CarID: "car-2", Status: "active"}))
	require.NoError(t, store.Add(ctx, "reservations", "b-4", testCar{CarID: "car-1", Status: "active"}))

	docs, err := store.Query(ctx, "reservations", Eq("carId", "car-1"), In("status", "confirmed", "active"))
	require.NoError(t, err)

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	assert.Equal(t, []string{"b-1", "b-4"}, ids)

	docs, err = store.Query(ctx, "reservations", In("status"))
	require.NoError(t, err)
	assert.Empty(t, docs)

	docs, err = store.Query(ctx, "invoices")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemory_Delete(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "reservations", "b-1", testCar{}))
	require.NoError(t, store.Delete(ctx, "reservations", "b-1"))
	assert.ErrorIs(t, store.Delete(ctx, "reservations", "b-1"), ErrNotFound)
}

func TestMemory_DoSerializableRollsBack(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, "cars", "car-1", testCar{Make: "Skoda", PricePerDay: 30}))

	fnErr := errors.New("invoice write failed")
	err := store.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := store.Update(txCtx, "cars", "car-1", map[string]interface{}{"pricePerDay": 99.0}, 0); err != nil {
			return err
		}
		if err := store.Add(txCtx, "invoices", "inv-1", testCar{}); err != nil {
			return err
		}
		// вложенная транзакция присоединяется к внешней
		return store.DoSerializable(txCtx, func(context.Context) error { return fnErr })
	})
	assert.ErrorIs(t, err, fnErr)

	doc, err := store.Get(ctx, "cars", "car-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), doc.Version)

	_, err = store.Get(ctx, "invoices", "inv-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_DoSerializableRollbackKeepsOutsideWrites(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, "reservations", "b-1", testCar{Status: "confirmed"}))
	require.NoError(t, store.Add(ctx, "reservations", "b-2", testCar{Status: "confirmed"}))
	require.NoError(t, store.Add(ctx, "cars", "car-old", testCar{Make: "Lada"}))

	fnErr := errors.New("car is booked")
	err := store.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := store.Update(txCtx, "reservations", "b-2", map[string]interface{}{"status": "cancelled"}, 0); err != nil {
			return err
		}
		if err := store.Delete(txCtx, "cars", "car-old"); err != nil {
			return err
		}

		// записи вне транзакции
		if err := store.Update(ctx, "reservations", "b-1", map[string]interface{}{"status": "active"}, 1); err != nil {
			return err
		}
		if err := store.Add(ctx, "cars", "car-new", testCar{Make: "Skoda"}); err != nil {
			return err
		}
		return fnErr
	})
	assert.ErrorIs(t, err, fnErr)

	var b1 testCar
	doc, err := store.Get(ctx, "reservations", "b-1")
	require.NoError(t, err)
	require.NoError(t, doc.DataTo(&b1))
	assert.Equal(t, "active", b1.Status)
	assert.Equal(t, int64(2), doc.Version)

	_, err = store.Get(ctx, "cars", "car-new")
	assert.NoError(t, err)

	var b2 testCar
	doc, err = store.Get(ctx, "reservations", "b-2")
	require.NoError(t, err)
	require.NoError(t, doc.DataTo(&b2))
	assert.Equal(t, "confirmed", b2.Status)
	assert.Equal(t, int64(1), doc.Version)

	_, err = store.Get(ctx, "cars", "car-old")
	assert.NoError(t, err)
}
