package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"prestamos-api/internal/domain"
	"prestamos-api/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockProductService is a testify mock of service.ProductService
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) GetAllProducts(ctx context.Context) ([]*domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func (m *MockProductService) GetProductByID(ctx context.Context, idProducto string) (*domain.Product, error) {
	args := m.Called(ctx, idProducto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, idProducto string, update domain.ProductUpdate) error {
	args := m.Called(ctx, idProducto, update)
	return args.Error(0)
}

func (m *MockProductService) DeleteProduct(ctx context.Context, idProducto string) (*domain.Product, error) {
	args := m.Called(ctx, idProducto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func newProductRouter(svc *MockProductService) chi.Router {
	logger, _ := zap.NewDevelopment()
	router := chi.NewRouter()
	NewProductHandler(svc, logger).RegisterRoutes(router)
	return router
}

func TestCreateProductReturns201(t *testing.T) {
	svc := new(MockProductService)
	svc.On("CreateProduct", mock.Anything, mock.AnythingOfType("*domain.Product")).
		Return(&domain.Product{IDProducto: "123", Descripcion: "Anillo", Precio: 100}, nil).Once()

	router := newProductRouter(svc)

	body := bytes.NewBufferString(`{"idProducto":"123","descripcion":"Anillo","precio":100}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var got domain.Product
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "123", got.IDProducto)
	assert.Equal(t, 100.0, got.Precio)
	svc.AssertExpectations(t)
}

func TestCreateProductValidationFailure(t *testing.T) {
	svc := new(MockProductService)
	router := newProductRouter(svc)

	cases := []string{
		`{"descripcion":"sin id","precio":10}`,
		`{"idProducto":"1","descripcion":"x","precio":"100"}`,
		`{"idProducto":1,"descripcion":"x","precio":100}`,
	}

	for _, payload := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBufferString(payload))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "payload: %s", payload)

		var body struct {
			Error   string                   `json:"error"`
			Details []map[string]interface{} `json:"details"`
		}
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "Error en la validación del body", body.Error)
		assert.NotEmpty(t, body.Details)
	}

	svc.AssertNotCalled(t, "CreateProduct")
}

func TestCreateProductStoreFailureReturns400(t *testing.T) {
	svc := new(MockProductService)
	svc.On("CreateProduct", mock.Anything, mock.Anything).
		Return(nil, errors.New("producto con ID 123 ya existe")).Once()

	router := newProductRouter(svc)

	body := bytes.NewBufferString(`{"idProducto":"123","descripcion":"x","precio":1}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var got map[string]string
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Contains(t, got["error"], "ya existe")
}

func TestGetAllProductsReturns200(t *testing.T) {
	svc := new(MockProductService)
	svc.On("GetAllProducts", mock.Anything).
		Return([]*domain.Product{{IDProducto: "1"}, {IDProducto: "2"}}, nil).Once()

	router := newProductRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got []domain.Product
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Len(t, got, 2)
}

func TestGetAllProductsFailureReturns500(t *testing.T) {
	svc := new(MockProductService)
	svc.On("GetAllProducts", mock.Anything).
		Return(nil, errors.New("connection refused")).Once()

	router := newProductRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetProductByIDReturns200(t *testing.T) {
	svc := new(MockProductService)
	svc.On("GetProductByID", mock.Anything, "123").
		Return(&domain.Product{IDProducto: "123", Descripcion: "Anillo", Precio: 100}, nil).Once()

	router := newProductRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got domain.Product
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "123", got.IDProducto)
}

func TestGetProductByIDNotFoundReturns404(t *testing.T) {
	svc := new(MockProductService)
	svc.On("GetProductByID", mock.Anything, "missing").
		Return(nil, repository.ErrProductNotFound).Once()

	router := newProductRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var got map[string]string
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "Producto no encontrado", got["error"])
}

func TestUpdateProductReturns204WithEmptyBody(t *testing.T) {
	svc := new(MockProductService)
	svc.On("UpdateProduct", mock.Anything, "123", mock.AnythingOfType("domain.ProductUpdate")).
		Return(nil).Once()

	router := newProductRouter(svc)

	body := bytes.NewBufferString(`{"precio":42}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/123", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, w.Body.Len())
	svc.AssertExpectations(t)
}

func TestUpdateProductNotFoundReturns404(t *testing.T) {
	svc := new(MockProductService)
	svc.On("UpdateProduct", mock.Anything, "missing", mock.Anything).
		Return(repository.ErrProductNotFound).Once()

	router := newProductRouter(svc)

	body := bytes.NewBufferString(`{"precio":42}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/missing", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProductStoreFailureReturns400(t *testing.T) {
	svc := new(MockProductService)
	svc.On("UpdateProduct", mock.Anything, "123", mock.Anything).
		Return(errors.New("boom")).Once()

	router := newProductRouter(svc)

	body := bytes.NewBufferString(`{"precio":42}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/123", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProductReturns200WithMessage(t *testing.T) {
	svc := new(MockProductService)
	svc.On("DeleteProduct", mock.Anything, "123").
		Return(&domain.Product{IDProducto: "123"}, nil).Once()

	router := newProductRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got map[string]string
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "Producto eliminado correctamente", got["message"])
}

func TestDeleteProductAlreadyGoneReturns404(t *testing.T) {
	svc := new(MockProductService)
	svc.On("DeleteProduct", mock.Anything, "gone").
		Return(nil, repository.ErrProductNotFound).Once()

	router := newProductRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/gone", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProductStoreFailureReturns500(t *testing.T) {
	svc := new(MockProductService)
	svc.On("DeleteProduct", mock.Anything, "123").
		Return(nil, errors.New("boom")).Once()

	router := newProductRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
