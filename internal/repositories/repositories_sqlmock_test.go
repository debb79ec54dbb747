package repositories_test

import (
	"context"
	"regexp"
	"testing"

	"toystore/internal/models"
	"toystore/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestDecrementStock_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repositories.NewGORMProductRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET "stock_quantity"=stock_quantity - $1 WHERE (id = $2 AND stock_quantity >= $3)`)).
		WithArgs(2, 7, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DecrementStock(context.Background(), 7, 2)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementStock_NotEnoughStock(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repositories.NewGORMProductRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.DecrementStock(context.Background(), 3, 10)
	assert.ErrorIs(t, err, repositories.ErrStockConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repositories.NewGORMOrderRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders" SET "status"=$1 WHERE id = $2 AND status = $3`)).
		WithArgs(string(models.OrderStatusShipped), 5, string(models.OrderStatusPaid)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateStatus(context.Background(), 5, models.OrderStatusPaid, models.OrderStatusShipped)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_StatusChanged(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repositories.NewGORMOrderRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders" SET "status"=$1 WHERE id = $2 AND status = $3`)).
		WithArgs(string(models.OrderStatusPaid), 99, string(models.OrderStatusCreated)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdateStatus(context.Background(), 99, models.OrderStatusCreated, models.OrderStatusPaid)
	assert.ErrorIs(t, err, repositories.ErrStatusConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDAndUserID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repositories.NewGORMOrderRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders" WHERE id = $1 AND user_id = $2`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status", "order_date"}))

	order, err := repo.GetByIDAndUserID(context.Background(), 1, 2)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Nil(t, order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPaymentByOrderID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repositories.NewGORMPaymentRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payments" WHERE order_id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id"}))

	payment, err := repo.GetByOrderID(context.Background(), 4)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Nil(t, payment)
}
