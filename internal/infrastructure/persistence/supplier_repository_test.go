package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/partner"
	"github.com/partsflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func newMockSupplierRepository(t *testing.T) (*GormSupplierRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormSupplierRepository(gormDB), mock, mockDB
}

func TestGormSupplierRepository_FindByID(t *testing.T) {
	t.Run("finds existing supplier", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		supplierID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "code", "name", "status", "payment_terms", "version"}).
			AddRow(supplierID, "SUP-00001", "Acme Parts", "active", "NET_30", 1)

		mock.ExpectQuery(`SELECT \* FROM "suppliers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(supplierID, 1).
			WillReturnRows(rows)

		supplier, err := repo.FindByID(context.Background(), supplierID)

		assert.NoError(t, err)
		assert.NotNil(t, supplier)
		assert.Equal(t, supplierID, supplier.ID)
		assert.Equal(t, "SUP-00001", supplier.Code)
		assert.Equal(t, partner.SupplierStatusActive, supplier.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing supplier to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		supplierID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "suppliers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(supplierID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		supplier, err := repo.FindByID(context.Background(), supplierID)

		assert.Error(t, err)
		assert.Nil(t, supplier)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSupplierRepository_ExistsByCode(t *testing.T) {
	t.Run("returns true when code is taken", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "suppliers" WHERE code = \$1`).
			WithArgs("SUP-00001").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByCode(context.Background(), "SUP-00001")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false when code is free", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "suppliers" WHERE code = \$1`).
			WithArgs("SUP-99999").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByCode(context.Background(), "SUP-99999")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSupplierRepository_Delete(t *testing.T) {
	t.Run("deletes existing supplier", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		supplierID := uuid.New()

		mock.ExpectExec(`DELETE FROM "suppliers" WHERE id = \$1`).
			WithArgs(supplierID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), supplierID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		supplierID := uuid.New()

		mock.ExpectExec(`DELETE FROM "suppliers" WHERE id = \$1`).
			WithArgs(supplierID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), supplierID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSupplierRepository_GenerateSupplierCode(t *testing.T) {
	t.Run("continues the sequence from the last code", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT "code" FROM "suppliers" WHERE code LIKE \$1 ORDER BY code DESC LIMIT .*`).
			WithArgs("SUP-%", 1).
			WillReturnRows(sqlmock.NewRows([]string{"code"}).AddRow("SUP-00041"))

		mock.ExpectQuery(`SELECT count\(\*\) FROM "suppliers" WHERE code = \$1`).
			WithArgs("SUP-00042").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		code, err := repo.GenerateSupplierCode(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, "SUP-00042", code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("starts at one when no codes exist", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT "code" FROM "suppliers" WHERE code LIKE \$1 ORDER BY code DESC LIMIT .*`).
			WithArgs("SUP-%", 1).
			WillReturnRows(sqlmock.NewRows([]string{"code"}))

		mock.ExpectQuery(`SELECT count\(\*\) FROM "suppliers" WHERE code = \$1`).
			WithArgs("SUP-00001").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		code, err := repo.GenerateSupplierCode(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, "SUP-00001", code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSupplierRepository_InterfaceCompliance(t *testing.T) {
	repo, _, mockDB := newMockSupplierRepository(t)
	defer mockDB.Close()

	var _ partner.SupplierRepository = repo
}
