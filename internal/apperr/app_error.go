package apperr

import (
	"fmt"

	"github.com/tuanvumaihuynh/product-catalog/pkg/zerror"
)

const (
	MalformedBodyCode       = "MALFORMED_BODY"
	ProductNotFoundCode     = "PRODUCT_NOT_FOUND"
	ProductDuplicateCode    = "PRODUCT_DUPLICATE"
	ProductListFailedCode   = "PRODUCT_LIST_FAILED"
	ProductGetFailedCode    = "PRODUCT_GET_FAILED"
	ProductCreateFailedCode = "PRODUCT_CREATE_FAILED"
	ProductUpdateFailedCode = "PRODUCT_UPDATE_FAILED"
	ProductDeleteFailedCode = "PRODUCT_DELETE_FAILED"
)

var (
	MalformedBodyErr = zerror.NewBadRequest(MalformedBodyCode, "Malformed JSON body")

	ProductNotFoundErr  = zerror.NewNotFound(ProductNotFoundCode, "Product not found")
	ProductDuplicateErr = zerror.NewBadRequest(ProductDuplicateCode, "Duplicate entry. Product already exists.")

	ProductListFailedErr   = zerror.NewInternalServerError(ProductListFailedCode, "Failed to fetch products")
	ProductGetFailedErr    = zerror.NewInternalServerError(ProductGetFailedCode, "Failed to fetch product")
	ProductCreateFailedErr = zerror.NewInternalServerError(ProductCreateFailedCode, "Database query failed")
	ProductUpdateFailedErr = zerror.NewInternalServerError(ProductUpdateFailedCode, "Failed to update product")
	ProductDeleteFailedErr = zerror.NewInternalServerError(ProductDeleteFailedCode, "Failed to delete product")
)

// ProductIDNotFoundErr is the not-found error reported by delete, naming the id.
func ProductIDNotFoundErr(id int64) zerror.ZError {
	return zerror.NewNotFound(ProductNotFoundCode, fmt.Sprintf("No product found with ID %d", id))
}
