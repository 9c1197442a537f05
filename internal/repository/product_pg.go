package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

const (
	pgListProducts = `SELECT "ProductId", "ProdName" FROM "Products" ORDER BY "ProductId"`
	pgGetProduct   = `SELECT "ProductId", "ProdName" FROM "Products" WHERE "ProductId" = $1`
	pgCreate       = `INSERT INTO "Products" ("ProdName") VALUES ($1) RETURNING "ProductId"`
	pgUpdateName   = `UPDATE "Products" SET "ProdName" = $1 WHERE "ProductId" = $2`
	pgDelete       = `DELETE FROM "Products" WHERE "ProductId" = $1`
)

type productRepository struct {
	db db.DB
}

// NewProductRepository creates a ProductRepository backed by Postgres.
func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{
		db: db,
	}
}

func (r productRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, pgListProducts)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect products: %w", err)
	}

	return products, nil
}

func (r productRepository) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	product, err := scanProduct(r.db.QueryRow(ctx, pgGetProduct, id))
	if err != nil {
		if db.IsNoRows(err) {
			return model.Product{}, ErrProductNotFound
		}
		return model.Product{}, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

func (r productRepository) CreateProduct(ctx context.Context, name string) (int64, error) {
	var id int64
	if err := r.db.QueryRow(ctx, pgCreate, name).Scan(&id); err != nil {
		if db.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %w", ErrProductDuplicate, err)
		}
		return 0, fmt.Errorf("create product: %w", err)
	}

	return id, nil
}

func (r productRepository) UpdateProductName(ctx context.Context, id int64, name string) error {
	tag, err := r.db.Exec(ctx, pgUpdateName, name, id)
	if err != nil {
		return fmt.Errorf("update product name: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r productRepository) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, pgDelete, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name)
	return p, err
}
