package repository

import (
	"context"
	"errors"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
)

var (
	// ErrProductNotFound is returned when no row matches the product id.
	ErrProductNotFound = errors.New("product not found")

	// ErrProductDuplicate is returned when the store rejects a product
	// because of a uniqueness constraint.
	ErrProductDuplicate = errors.New("product already exists")
)

// ProductRepository issues exactly one statement per call against the Products table.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	// CreateProduct inserts a product and returns the id assigned by the store.
	CreateProduct(ctx context.Context, name string) (int64, error)
	UpdateProductName(ctx context.Context, id int64, name string) error
	DeleteProduct(ctx context.Context, id int64) error
}
