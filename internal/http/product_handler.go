package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/service"
	"github.com/tuanvumaihuynh/product-catalog/pkg/ptr"
	"github.com/tuanvumaihuynh/product-catalog/pkg/validator"
)

const maxBodyBytes = 1 << 20 // 1 MiB

const productIDMessage = "Product ID must be an integer"

type productIDRequest struct {
	ID string `json:"id" validate:"intstr" msg:"Product ID must be an integer"`
}

type productBody struct {
	ProdName *string `json:"ProdName" validate:"required,min=1" msg:"Product name must be a non-empty string"`
}

type updateProductRequest struct {
	ID       string  `json:"id" validate:"intstr" msg:"Product ID must be an integer"`
	ProdName *string `json:"ProdName" validate:"required,min=1" msg:"Product name must be a non-empty string"`
}

type createProductResponse struct {
	Message   string `json:"message"`
	ProductID int64  `json:"productId"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type productHandler struct {
	productSvc service.ProductService
	validator  validator.Validator
	respond    *responder
}

func newProductHandler(
	productSvc service.ProductService,
	v validator.Validator,
	respond *responder,
) *productHandler {
	return &productHandler{
		productSvc: productSvc,
		validator:  v,
		respond:    respond,
	}
}

func (h *productHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productSvc.ListProducts(r.Context())
	if err != nil {
		h.respond.Error(w, r, fmt.Errorf("product service list products: %w", err))
		return
	}

	if products == nil {
		products = []model.Product{}
	}

	h.respond.JSON(w, r, http.StatusOK, products)
}

func (h *productHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := h.bindID(r)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}

	product, err := h.productSvc.GetProduct(r.Context(), id)
	if err != nil {
		h.respond.Error(w, r, fmt.Errorf("product service get product: %w", err))
		return
	}

	h.respond.JSON(w, r, http.StatusOK, product)
}

func (h *productHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var body productBody
	if err := decodeBody(w, r, &body); err != nil {
		h.respond.Error(w, r, err)
		return
	}

	if err := h.validator.Validate(body); err != nil {
		h.respond.Error(w, r, err)
		return
	}

	product, err := h.productSvc.CreateProduct(r.Context(), service.CreateProductParams{
		Name: ptr.Value(body.ProdName),
	})
	if err != nil {
		h.respond.Error(w, r, fmt.Errorf("product service create product: %w", err))
		return
	}

	h.respond.JSON(w, r, http.StatusCreated, createProductResponse{
		Message:   "Product created",
		ProductID: product.ID,
	})
}

func (h *productHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var body productBody
	if err := decodeBody(w, r, &body); err != nil {
		h.respond.Error(w, r, err)
		return
	}

	req := updateProductRequest{
		ID:       chi.URLParam(r, "id"),
		ProdName: body.ProdName,
	}
	if err := h.validator.Validate(req); err != nil {
		h.respond.Error(w, r, err)
		return
	}

	id, err := parseID(req.ID)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}

	if _, err := h.productSvc.UpdateProduct(r.Context(), service.UpdateProductParams{
		ID:   id,
		Name: ptr.Value(req.ProdName),
	}); err != nil {
		h.respond.Error(w, r, fmt.Errorf("product service update product: %w", err))
		return
	}

	h.respond.JSON(w, r, http.StatusOK, messageResponse{Message: "Product updated"})
}

func (h *productHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := h.bindID(r)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}

	if err := h.productSvc.DeleteProduct(r.Context(), id); err != nil {
		h.respond.Error(w, r, fmt.Errorf("product service delete product: %w", err))
		return
	}

	h.respond.JSON(w, r, http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}

// bindID validates the {id} path segment.
func (h *productHandler) bindID(r *http.Request) (int64, error) {
	req := productIDRequest{ID: chi.URLParam(r, "id")}
	if err := h.validator.Validate(req); err != nil {
		return 0, err
	}

	return parseID(req.ID)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, validator.FieldErrors{{Field: "id", Message: productIDMessage}}
	}
	return id, nil
}

// decodeBody reads a JSON object into dst. An empty body leaves dst untouched,
// and a value of the wrong type leaves its field for validation to report.
// The body must hold exactly one JSON value. A repeated key keeps its last value.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return apperr.MalformedBodyErr.WrapParent(err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if !json.Valid(data) {
		return apperr.MalformedBodyErr
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil
	}

	// Re-encoding the map drops all but the last occurrence of each key.
	data, err = json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode body fields: %w", err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil
		}
		return apperr.MalformedBodyErr.WrapParent(err)
	}

	return nil
}
