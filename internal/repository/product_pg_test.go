package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
)

func newPgMock(t *testing.T) (pgxmock.PgxPoolIface, repository.ProductRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})

	return mock, repository.NewProductRepository(mock)
}

func TestProductRepositoryListProducts(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta(`SELECT "ProductId", "ProdName" FROM "Products" ORDER BY "ProductId"`)

	t.Run("Should return all rows in store order", func(t *testing.T) {
		mock, repo := newPgMock(t)
		mock.ExpectQuery(query).
			WillReturnRows(pgxmock.NewRows([]string{"ProductId", "ProdName"}).
				AddRow(int64(1), "Paris Getaway").
				AddRow(int64(2), "Safari Tour"))

		products, err := repo.ListProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.Product{
			{ID: 1, Name: "Paris Getaway"},
			{ID: 2, Name: "Safari Tour"},
		}, products)
	})

	t.Run("Should return an empty slice for an empty table", func(t *testing.T) {
		mock, repo := newPgMock(t)
		mock.ExpectQuery(query).
			WillReturnRows(pgxmock.NewRows([]string{"ProductId", "ProdName"}))

		products, err := repo.ListProducts(ctx)
		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("Should wrap store failures", func(t *testing.T) {
		mock, repo := newPgMock(t)
		storeErr := errors.New("connection reset")
		mock.ExpectQuery(query).WillReturnError(storeErr)

		_, err := repo.ListProducts(ctx)
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestProductRepositoryGetProduct(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta(`SELECT "ProductId", "ProdName" FROM "Products" WHERE "ProductId" = $1`)

	t.Run("Should return the matching row", func(t *testing.T) {
		mock, repo := newPgMock(t)
		mock.ExpectQuery(query).WithArgs(int64(7)).
			WillReturnRows(pgxmock.NewRows([]string{"ProductId", "ProdName"}).AddRow(int64(7), "Safari Tour"))

		product, err := repo.GetProduct(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, model.Product{ID: 7, Name: "Safari Tour"}, product)
	})

	t.Run("Should map no rows to not found", func(t *testing.T) {
		mock, repo := newPgMock(t)
		mock.ExpectQuery(query).WithArgs(int64(8)).WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetProduct(ctx, 8)
		assert.ErrorIs(t, err, repository.ErrProductNotFound)
	})
}

func TestProductRepositoryCreateProduct(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta(`INSERT INTO "Products" ("ProdName") VALUES ($1) RETURNING "ProductId"`)

	t.Run("Should return the generated id", func(t *testing.T) {
		mock, repo := newPgMock(t)
		mock.ExpectQuery(query).WithArgs("Safari Tour").
			WillReturnRows(pgxmock.NewRows([]string{"ProductId"}).AddRow(int64(7)))

		id, err := repo.CreateProduct(ctx, "Safari Tour")
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
	})

	t.Run("Should classify unique violations", func(t *testing.T) {
		mock, repo := newPgMock(t)
		mock.ExpectQuery(query).WithArgs("Safari Tour").
			WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

		_, err := repo.CreateProduct(ctx, "Safari Tour")
		assert.ErrorIs(t, err, repository.ErrProductDuplicate)

		var pgErr *pgconn.PgError
		assert.ErrorAs(t, err, &pgErr)
	})

	t.Run("Should not classify other failures as duplicates", func(t *testing.T) {
		mock, repo := newPgMock(t)
		mock.ExpectQuery(query).WithArgs("Safari Tour").
			WillReturnError(&pgconn.PgError{Code: "42P01", Message: "relation does not exist"})

		_, err := repo.CreateProduct(ctx, "Safari Tour")
		require.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrProductDuplicate)
	})
}

func TestProductRepositoryUpdateProductName(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta(`UPDATE "Products" SET "ProdName" = $1 WHERE "ProductId" = $2`)

	t.Run("Should succeed when one row changes", func(t *testing.T) {
		mock, repo := newPgMock(t)
		mock.ExpectExec(query).WithArgs("Safari Tour Deluxe", int64(7)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repo.UpdateProductName(ctx, 7, "Safari Tour Deluxe"))
	})

	t.Run("Should report not found when no row changes", func(t *testing.T) {
		mock, repo := newPgMock(t)
		mock.ExpectExec(query).WithArgs("Safari Tour Deluxe", int64(99)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		assert.ErrorIs(t, repo.UpdateProductName(ctx, 99, "Safari Tour Deluxe"), repository.ErrProductNotFound)
	})
}

func TestProductRepositoryDeleteProduct(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta(`DELETE FROM "Products" WHERE "ProductId" = $1`)

	t.Run("Should succeed when one row is removed", func(t *testing.T) {
		mock, repo := newPgMock(t)
		mock.ExpectExec(query).WithArgs(int64(7)).WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, repo.DeleteProduct(ctx, 7))
	})

	t.Run("Should report not found when nothing is removed", func(t *testing.T) {
		mock, repo := newPgMock(t)
		mock.ExpectExec(query).WithArgs(int64(7)).WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, repo.DeleteProduct(ctx, 7), repository.ErrProductNotFound)
	})

	t.Run("Should wrap store failures", func(t *testing.T) {
		mock, repo := newPgMock(t)
		storeErr := errors.New("connection reset")
		mock.ExpectExec(query).WithArgs(int64(7)).WillReturnError(storeErr)

		err := repo.DeleteProduct(ctx, 7)
		assert.ErrorIs(t, err, storeErr)
		assert.NotErrorIs(t, err, repository.ErrProductNotFound)
	})
}
