package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

const (
	mysqlListProducts = `SELECT ProductId, ProdName FROM Products ORDER BY ProductId`
	mysqlGetProduct   = `SELECT ProductId, ProdName FROM Products WHERE ProductId = ?`
	mysqlCreate       = `INSERT INTO Products (ProdName) VALUES (?)`
	mysqlUpdateName   = `UPDATE Products SET ProdName = ? WHERE ProductId = ?`
	mysqlDelete       = `DELETE FROM Products WHERE ProductId = ?`
)

type mysqlProductRepository struct {
	db *sqlx.DB
}

// NewMySQLProductRepository creates a ProductRepository backed by MySQL.
func NewMySQLProductRepository(db *sqlx.DB) ProductRepository {
	return &mysqlProductRepository{
		db: db,
	}
}

func (r mysqlProductRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	if err := r.db.SelectContext(ctx, &products, mysqlListProducts); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}

	return products, nil
}

func (r mysqlProductRepository) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	var product model.Product
	if err := r.db.GetContext(ctx, &product, mysqlGetProduct, id); err != nil {
		if db.IsNoRows(err) {
			return model.Product{}, ErrProductNotFound
		}
		return model.Product{}, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

func (r mysqlProductRepository) CreateProduct(ctx context.Context, name string) (int64, error) {
	res, err := r.db.ExecContext(ctx, mysqlCreate, name)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %w", ErrProductDuplicate, err)
		}
		return 0, fmt.Errorf("create product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	return id, nil
}

func (r mysqlProductRepository) UpdateProductName(ctx context.Context, id int64, name string) error {
	res, err := r.db.ExecContext(ctx, mysqlUpdateName, name, id)
	if err != nil {
		return fmt.Errorf("update product name: %w", err)
	}

	return requireAffected(res.RowsAffected())
}

func (r mysqlProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, mysqlDelete, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	return requireAffected(res.RowsAffected())
}

func requireAffected(n int64, err error) error {
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}
