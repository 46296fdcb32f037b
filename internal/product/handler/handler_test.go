package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleapi/simpleapi/internal/product"
	"github.com/simpleapi/simpleapi/internal/product/repository"
	"github.com/simpleapi/simpleapi/internal/product/service"
	"github.com/simpleapi/simpleapi/pkg/middleware"
)

type fakeVerifier struct {
	err error
}

func (f *fakeVerifier) Verify(ctx context.Context, raw string) (map[string]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return map[string]interface{}{"sub": "user-1"}, nil
}

func newTestRouter(t *testing.T, ver middleware.Verifier) (*gin.Engine, service.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := service.New(repository.NewMemoryRepo())
	RegisterProductRoutes(r, svc, middleware.RequireToken(ver))
	return r, svc
}

func doJSON(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProductRequiresToken(t *testing.T) {
	r, _ := newTestRouter(t, &fakeVerifier{err: errors.New("bad token")})

	w := doJSON(r, http.MethodPost, "/products", ProductInput{Name: "Mouse", Price: 10}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/products", ProductInput{Name: "Mouse", Price: 10}, "whatever")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Unauthorized", body["title"])
	assert.Equal(t, "InvalidToken", body["type"])
}

func TestCreateProduct(t *testing.T) {
	r, _ := newTestRouter(t, &fakeVerifier{})

	w := doJSON(r, http.MethodPost, "/products", ProductInput{Name: "Mouse", Description: "wired", Price: 10.5}, "tok")
	require.Equal(t, http.StatusCreated, w.Code)

	var created product.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Mouse", created.Name)
	assert.Equal(t, "/products/"+created.ID, w.Header().Get("Location"))

	// Reads are anonymous.
	w = doJSON(r, http.MethodGet, "/products/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCreateProductValidation(t *testing.T) {
	r, _ := newTestRouter(t, &fakeVerifier{})

	w := doJSON(r, http.MethodPost, "/products", map[string]interface{}{"price": 10}, "tok")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Bad request", body["title"])
}

func TestListProducts(t *testing.T) {
	r, svc := newTestRouter(t, &fakeVerifier{})
	for _, n := range []string{"Mouse", "Keyboard", "Monitor"} {
		_, err := svc.Create(&product.Product{Name: n})
		require.NoError(t, err)
	}

	w := doJSON(r, http.MethodGet, "/products", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []product.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 3)

	w = doJSON(r, http.MethodGet, "/products?page=2&pageSize=2", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = doJSON(r, http.MethodGet, "/products?query=mo", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

func TestUpdateProduct(t *testing.T) {
	r, svc := newTestRouter(t, &fakeVerifier{})
	id, err := svc.Create(&product.Product{Name: "Mouse", Price: 10})
	require.NoError(t, err)

	w := doJSON(r, http.MethodPut, "/products/"+id, ProductInput{Name: "Gaming Mouse", Price: 20}, "tok")
	require.Equal(t, http.StatusNoContent, w.Code)

	got, err := svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Gaming Mouse", got.Name)
	assert.Equal(t, 20.0, got.Price)

	w = doJSON(r, http.MethodPut, "/products/missing", ProductInput{Name: "x", Price: 1}, "tok")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPut, "/products/"+id, ProductInput{Name: "x", Price: 1}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteProduct(t *testing.T) {
	r, svc := newTestRouter(t, &fakeVerifier{})
	id, err := svc.Create(&product.Product{Name: "Mouse"})
	require.NoError(t, err)

	w := doJSON(r, http.MethodDelete, "/products/"+id, nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodDelete, "/products/"+id, nil, "tok")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(r, http.MethodGet, "/products/"+id, nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodDelete, "/products/"+id, nil, "tok")
	require.Equal(t, http.StatusNotFound, w.Code)
}
