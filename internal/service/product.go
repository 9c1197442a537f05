package service

import (
	"context"
	"errors"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/event"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

type CreateProductParams struct {
	Name string
}

type UpdateProductParams struct {
	ID   int64
	Name string
}

// ProductService runs the catalog operations. Every error it returns carries a
// zerror.ZError from apperr describing the outcome.
type ProductService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	UpdateProduct(ctx context.Context, params UpdateProductParams) (model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type productService struct {
	productRepo repository.ProductRepository
	publisher   event.Publisher
}

func NewProductService(
	productRepo repository.ProductRepository,
	publisher event.Publisher,
) ProductService {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}

	return &productService{
		productRepo: productRepo,
		publisher:   publisher,
	}
}

func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, apperr.ProductListFailedErr.WrapParent(err)
	}

	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	product, err := s.productRepo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return model.Product{}, apperr.ProductNotFoundErr.WrapParent(err)
		}
		return model.Product{}, apperr.ProductGetFailedErr.WrapParent(err)
	}

	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	id, err := s.productRepo.CreateProduct(ctx, params.Name)
	if err != nil {
		if errors.Is(err, repository.ErrProductDuplicate) {
			return model.Product{}, apperr.ProductDuplicateErr.WrapParent(err)
		}
		return model.Product{}, apperr.ProductCreateFailedErr.
			WithDetails(db.DriverMessage(err)).
			WrapParent(err)
	}

	product := model.Product{
		ID:   id,
		Name: params.Name,
	}
	s.publisher.ProductCreated(ctx, product)

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, params UpdateProductParams) (model.Product, error) {
	if err := s.productRepo.UpdateProductName(ctx, params.ID, params.Name); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return model.Product{}, apperr.ProductNotFoundErr.WrapParent(err)
		}
		return model.Product{}, apperr.ProductUpdateFailedErr.WrapParent(err)
	}

	product := model.Product{
		ID:   params.ID,
		Name: params.Name,
	}
	s.publisher.ProductUpdated(ctx, product)

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return apperr.ProductIDNotFoundErr(id).WrapParent(err)
		}
		return apperr.ProductDeleteFailedErr.WrapParent(err)
	}

	s.publisher.ProductDeleted(ctx, id)

	return nil
}
