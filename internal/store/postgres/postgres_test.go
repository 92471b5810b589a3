package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentalops-backend/internal/store"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestGetByID(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name"}).
		AddRow("c1", []byte("John"), []byte("Smith"))
	mock.ExpectQuery(`SELECT * FROM customers WHERE id = $1`).
		WithArgs("c1").
		WillReturnRows(rows)

	rec, err := s.GetByID(context.Background(), store.Customers, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", rec.ID())
	// []byte columns come back as strings.
	assert.Equal(t, "John", rec["first_name"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT * FROM customers WHERE id = $1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.GetByID(context.Background(), store.Customers, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListBuildsDeterministicWhere(t *testing.T) {
	s, mock := newMockStore(t)

	// Filter keys are sorted, so invoice_id always precedes status.
	mock.ExpectQuery(`SELECT * FROM payments WHERE invoice_id = $1 AND status = $2`).
		WithArgs("inv1", "completed").
		WillReturnRows(sqlmock.NewRows([]string{"id", "amount"}).AddRow("p1", []byte("200")))

	recs, err := s.List(context.Background(), store.Payments, store.Filter{
		"status":     "completed",
		"invoice_id": "inv1",
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "200", recs[0]["amount"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListIn(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT * FROM customers WHERE id = ANY($1)`).
		WithArgs(pq.Array([]string{"c1", "c2"})).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("c1").AddRow("c2"))

	recs, err := s.ListIn(context.Background(), store.Customers, "id", []string{"c1", "c2"})
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListInEmptyValuesSkipsQuery(t *testing.T) {
	s, mock := newMockStore(t)

	recs, err := s.ListIn(context.Background(), store.Customers, "id", nil)
	require.NoError(t, err)
	assert.Empty(t, recs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInsertsSortedColumns(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO vehicle_categories (id, base_rental_rate, name) VALUES ($1, $2, $3) RETURNING *`).
		WithArgs(sqlmock.AnyArg(), 50.0, "Midsize").
		WillReturnRows(sqlmock.NewRows([]string{"id", "base_rental_rate", "name"}).
			AddRow("cat1", []byte("50"), []byte("Midsize")))

	rec, err := s.Create(context.Background(), store.VehicleCategories, store.Fields{
		"name":             "Midsize",
		"base_rental_rate": 50.0,
	})
	require.NoError(t, err)
	assert.Equal(t, "cat1", rec.ID())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWhereConditionFailed(t *testing.T) {
	s, mock := newMockStore(t)

	// The conditional update matches nothing, but the record itself exists.
	mock.ExpectQuery(`UPDATE vehicles SET status = $1 WHERE id = $2 AND status = $3 RETURNING *`).
		WithArgs("reserved", "v1", "available").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}))
	mock.ExpectQuery(`SELECT * FROM vehicles WHERE id = $1`).
		WithArgs("v1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow("v1", []byte("rented")))

	_, err := s.UpdateWhere(context.Background(), store.Vehicles, "v1",
		store.Fields{"status": "reserved"}, store.Filter{"status": "available"})
	assert.ErrorIs(t, err, store.ErrConditionFailed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`UPDATE vehicles SET status = $1 WHERE id = $2 RETURNING *`).
		WithArgs("available", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}))

	_, err := s.Update(context.Background(), store.Vehicles, "missing", store.Fields{"status": "available"})
	assert.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM payments WHERE id = $1`).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Delete(context.Background(), store.Payments, "p1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM payments WHERE id = $1`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Delete(context.Background(), store.Payments, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIdentRejectsBadNames(t *testing.T) {
	s, mock := newMockStore(t)

	_, err := s.List(context.Background(), store.Collection("bad; DROP TABLE x"), nil)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
