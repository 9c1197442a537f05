package http_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	apihttp "github.com/tuanvumaihuynh/product-catalog/internal/http"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/internal/service"
	"github.com/tuanvumaihuynh/product-catalog/pkg/correlationid"
)

// memRepo is an in-memory Products table with a unique name constraint.
type memRepo struct {
	mu     sync.Mutex
	rows   map[int64]string
	nextID int64
	calls  int
	err    error
}

func newMemRepo(nextID int64) *memRepo {
	return &memRepo{rows: map[int64]string{}, nextID: nextID}
}

func (m *memRepo) ListProducts(context.Context) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}

	products := make([]model.Product, 0, len(m.rows))
	for id, name := range m.rows {
		products = append(products, model.Product{ID: id, Name: name})
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (m *memRepo) GetProduct(_ context.Context, id int64) (model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return model.Product{}, m.err
	}

	name, ok := m.rows[id]
	if !ok {
		return model.Product{}, repository.ErrProductNotFound
	}
	return model.Product{ID: id, Name: name}, nil
}

func (m *memRepo) CreateProduct(_ context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return 0, m.err
	}

	for _, existing := range m.rows {
		if existing == name {
			return 0, repository.ErrProductDuplicate
		}
	}

	id := m.nextID
	m.nextID++
	m.rows[id] = name
	return id, nil
}

func (m *memRepo) UpdateProductName(_ context.Context, id int64, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}

	if _, ok := m.rows[id]; !ok {
		return repository.ErrProductNotFound
	}
	m.rows[id] = name
	return nil
}

func (m *memRepo) DeleteProduct(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}

	if _, ok := m.rows[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memRepo) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type fakeHealth struct {
	err error
}

func (f fakeHealth) IsHealthy(context.Context) (bool, error) {
	return f.err == nil, f.err
}

func newRouter(t *testing.T, repo repository.ProductRepository) http.Handler {
	t.Helper()

	svc, err := apihttp.New(
		config.HTTP{Swagger: true, UI: true},
		slog.New(slog.DiscardHandler),
		service.NewProductService(repo, nil),
		fakeHealth{},
	)
	require.NoError(t, err)

	return svc.Router()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestProductLifecycle(t *testing.T) {
	repo := newMemRepo(7)
	h := newRouter(t, repo)

	resp := do(t, h, http.MethodPost, "/products", `{"ProdName":"Safari Tour"}`)
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.JSONEq(t, `{"message":"Product created","productId":7}`, resp.Body.String())

	resp = do(t, h, http.MethodGet, "/products/7", "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"ProductId":7,"ProdName":"Safari Tour"}`, resp.Body.String())

	resp = do(t, h, http.MethodGet, "/products", "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[{"ProductId":7,"ProdName":"Safari Tour"}]`, resp.Body.String())

	resp = do(t, h, http.MethodPut, "/products/7", `{"ProdName":"Safari Tour Deluxe"}`)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"message":"Product updated"}`, resp.Body.String())

	resp = do(t, h, http.MethodGet, "/products/7", "")
	assert.JSONEq(t, `{"ProductId":7,"ProdName":"Safari Tour Deluxe"}`, resp.Body.String())

	resp = do(t, h, http.MethodDelete, "/products/7", "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"message":"Product deleted successfully"}`, resp.Body.String())

	resp = do(t, h, http.MethodDelete, "/products/7", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.JSONEq(t, `{"message":"No product found with ID 7"}`, resp.Body.String())
}

func TestListProducts(t *testing.T) {
	t.Run("Should return an empty array for an empty table", func(t *testing.T) {
		resp := do(t, newRouter(t, newMemRepo(1)), http.MethodGet, "/products", "")

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `[]`, resp.Body.String())
	})

	t.Run("Should hide store errors behind a fixed message", func(t *testing.T) {
		repo := newMemRepo(1)
		repo.err = errors.New("dial tcp 10.0.0.3:5432: connection refused")

		resp := do(t, newRouter(t, repo), http.MethodGet, "/products", "")

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.JSONEq(t, `{"error":"Failed to fetch products"}`, resp.Body.String())
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("Should round-trip a created product", func(t *testing.T) {
		h := newRouter(t, newMemRepo(1))

		resp := do(t, h, http.MethodPost, "/products", `{"ProdName":"Paris Getaway"}`)
		require.Equal(t, http.StatusCreated, resp.Code)

		resp = do(t, h, http.MethodGet, "/products/1", "")
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{"ProductId":1,"ProdName":"Paris Getaway"}`, resp.Body.String())
	})

	t.Run("Should return not found for an unknown id", func(t *testing.T) {
		resp := do(t, newRouter(t, newMemRepo(1)), http.MethodGet, "/products/99", "")

		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.JSONEq(t, `{"message":"Product not found"}`, resp.Body.String())
	})

	t.Run("Should return a fixed message on store failure", func(t *testing.T) {
		repo := newMemRepo(1)
		repo.err = errors.New("timeout")

		resp := do(t, newRouter(t, repo), http.MethodGet, "/products/1", "")

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.JSONEq(t, `{"error":"Failed to fetch product"}`, resp.Body.String())
	})
}

func TestInvalidIDNeverReachesStore(t *testing.T) {
	const idError = `{"errors":[{"field":"id","message":"Product ID must be an integer"}]}`

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{method: http.MethodGet, path: "/products/abc"},
		{method: http.MethodGet, path: "/products/-1"},
		{method: http.MethodGet, path: "/products/1.5"},
		{method: http.MethodGet, path: "/products/99999999999999999999"},
		{method: http.MethodPut, path: "/products/abc", body: `{"ProdName":"Safari Tour"}`},
		{method: http.MethodDelete, path: "/products/abc"},
		{method: http.MethodDelete, path: "/products/%207"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			repo := newMemRepo(1)

			resp := do(t, newRouter(t, repo), tt.method, tt.path, tt.body)

			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.JSONEq(t, idError, resp.Body.String())
			assert.Zero(t, repo.callCount())
		})
	}
}

func TestCreateProduct(t *testing.T) {
	const nameError = `{"errors":[{"field":"ProdName","message":"Product name must be a non-empty string"}]}`

	invalid := map[string]string{
		"missing name": `{}`,
		"empty name":   `{"ProdName":""}`,
		"null name":    `{"ProdName":null}`,
		"numeric name": `{"ProdName":42}`,
		"no body":      "",
	}

	for name, body := range invalid {
		t.Run("Should reject "+name, func(t *testing.T) {
			repo := newMemRepo(1)

			resp := do(t, newRouter(t, repo), http.MethodPost, "/products", body)

			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.JSONEq(t, nameError, resp.Body.String())
			assert.Zero(t, repo.callCount())
		})
	}

	malformed := map[string]string{
		"truncated JSON":     `{"ProdName":`,
		"trailing text":      `{"ProdName":"Safari"} trailing`,
		"two JSON documents": `{"ProdName":"Safari"}{"ProdName":""}`,
	}

	for name, body := range malformed {
		t.Run("Should reject "+name, func(t *testing.T) {
			repo := newMemRepo(1)

			resp := do(t, newRouter(t, repo), http.MethodPost, "/products", body)

			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.JSONEq(t, `{"error":"Malformed JSON body"}`, resp.Body.String())
			assert.Zero(t, repo.callCount())
		})
	}

	t.Run("Should accept trailing whitespace", func(t *testing.T) {
		resp := do(t, newRouter(t, newMemRepo(1)), http.MethodPost, "/products", "{\"ProdName\":\"Safari\"}\n  ")

		assert.Equal(t, http.StatusCreated, resp.Code)
	})

	t.Run("Should keep the last value of a repeated key", func(t *testing.T) {
		repo := newMemRepo(1)

		resp := do(t, newRouter(t, repo), http.MethodPost, "/products", `{"ProdName":"a","ProdName":7}`)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.JSONEq(t, nameError, resp.Body.String())
		assert.Zero(t, repo.callCount())

		resp = do(t, newRouter(t, repo), http.MethodPost, "/products", `{"ProdName":"a","ProdName":"Safari Tour"}`)

		assert.Equal(t, http.StatusCreated, resp.Code)
		assert.Equal(t, "Safari Tour", repo.rows[1])
	})

	t.Run("Should ignore a client supplied id", func(t *testing.T) {
		h := newRouter(t, newMemRepo(3))

		resp := do(t, h, http.MethodPost, "/products", `{"ProductId":100,"ProdName":"Safari Tour"}`)

		assert.Equal(t, http.StatusCreated, resp.Code)
		assert.JSONEq(t, `{"message":"Product created","productId":3}`, resp.Body.String())
	})

	t.Run("Should report duplicates as a bad request", func(t *testing.T) {
		h := newRouter(t, newMemRepo(1))

		require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/products", `{"ProdName":"Safari Tour"}`).Code)
		resp := do(t, h, http.MethodPost, "/products", `{"ProdName":"Safari Tour"}`)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.JSONEq(t, `{"error":"Duplicate entry. Product already exists."}`, resp.Body.String())
	})

	t.Run("Should expose the driver message on other store failures", func(t *testing.T) {
		repo := newMemRepo(1)
		repo.err = fmt.Errorf("insert product: %w", &mysql.MySQLError{Number: 1146, Message: "Table 'te.Products' doesn't exist"})

		resp := do(t, newRouter(t, repo), http.MethodPost, "/products", `{"ProdName":"Safari Tour"}`)

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.JSONEq(t, `{"error":"Database query failed","details":"Table 'te.Products' doesn't exist"}`, resp.Body.String())
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("Should aggregate every invalid field", func(t *testing.T) {
		repo := newMemRepo(1)

		resp := do(t, newRouter(t, repo), http.MethodPut, "/products/abc", `{"ProdName":""}`)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.JSONEq(t, `{"errors":[
			{"field":"id","message":"Product ID must be an integer"},
			{"field":"ProdName","message":"Product name must be a non-empty string"}
		]}`, resp.Body.String())
		assert.Zero(t, repo.callCount())
	})

	t.Run("Should return not found for an unknown id", func(t *testing.T) {
		resp := do(t, newRouter(t, newMemRepo(1)), http.MethodPut, "/products/99", `{"ProdName":"Safari Tour"}`)

		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.JSONEq(t, `{"message":"Product not found"}`, resp.Body.String())
	})

	t.Run("Should return a fixed message on store failure", func(t *testing.T) {
		repo := newMemRepo(1)
		repo.err = errors.New("deadlock detected")

		resp := do(t, newRouter(t, repo), http.MethodPut, "/products/1", `{"ProdName":"Safari Tour"}`)

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.JSONEq(t, `{"error":"Failed to update product"}`, resp.Body.String())
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("Should return a fixed message on store failure", func(t *testing.T) {
		repo := newMemRepo(1)
		repo.err = errors.New("deadlock detected")

		resp := do(t, newRouter(t, repo), http.MethodDelete, "/products/1", "")

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.JSONEq(t, `{"error":"Failed to delete product"}`, resp.Body.String())
	})
}

func TestAncillaryRoutes(t *testing.T) {
	h := newRouter(t, newMemRepo(1))

	t.Run("Should greet on the root path", func(t *testing.T) {
		resp := do(t, h, http.MethodGet, "/", "")

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Header().Get("Content-Type"), "text/plain")
		assert.Equal(t, "Welcome to the TravelExperts API", resp.Body.String())
	})

	t.Run("Should report healthy", func(t *testing.T) {
		resp := do(t, h, http.MethodGet, "/healthz", "")

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{"status":"healthy"}`, resp.Body.String())
	})

	t.Run("Should expose metrics", func(t *testing.T) {
		do(t, h, http.MethodGet, "/products", "")
		resp := do(t, h, http.MethodGet, "/metrics", "")

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "product_catalog_http_requests_total")
	})

	t.Run("Should attach a correlation id", func(t *testing.T) {
		resp := do(t, h, http.MethodGet, "/products", "")

		assert.NotEmpty(t, resp.Header().Get(correlationid.Header))
	})

	t.Run("Should serve docs and the browser page", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/docs", "").Code)
		assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/ui/", "").Code)
	})
}

func TestHealthzUnhealthy(t *testing.T) {
	svc, err := apihttp.New(
		config.HTTP{},
		slog.New(slog.DiscardHandler),
		service.NewProductService(newMemRepo(1), nil),
		fakeHealth{err: errors.New("ping database: connection refused")},
	)
	require.NoError(t, err)

	resp := do(t, svc.Router(), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.JSONEq(t, `{"status":"unhealthy","error":"ping database: connection refused"}`, resp.Body.String())
	assert.Equal(t, http.StatusNotFound, do(t, svc.Router(), http.MethodGet, "/docs", "").Code)
}
