package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/nskopt/catalog-api/internal/api/middleware"
	"github.com/nskopt/catalog-api/internal/core/domain"
	"github.com/nskopt/catalog-api/internal/core/ports"
)

type stubProductService struct {
	product *domain.Product
	err     error

	createdInput ports.ProductInput
	categoryIDs  []string
	imageIDs     []string
}

func (s *stubProductService) List(context.Context) ([]domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Product{*s.product}, nil
}

func (s *stubProductService) ListByCategory(context.Context, string) ([]domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Product{*s.product}, nil
}

func (s *stubProductService) Get(context.Context, string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductService) Create(_ context.Context, in ports.ProductInput) (*domain.Product, error) {
	s.createdInput = in
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductService) Update(_ context.Context, _ string, in ports.ProductInput) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductService) Delete(context.Context, string) error {
	return s.err
}

func (s *stubProductService) UpdateCategories(_ context.Context, _ string, categoryIDs []string) error {
	s.categoryIDs = categoryIDs
	return s.err
}

func (s *stubProductService) UpdateImages(_ context.Context, _ string, imageIDs []string) error {
	s.imageIDs = imageIDs
	return s.err
}

func (s *stubProductService) ImageIDs(context.Context, string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product.ImageIDs, nil
}

func sampleProduct() *domain.Product {
	return &domain.Product{
		ID:          "p-1",
		Name:        "lamp",
		Description: "desk lamp",
		Cost: domain.Cost{
			WholesalePrice: 7.5,
			RetailPrice:    19.99,
		},
		Availability: 3,
		CategoryIDs:  []string{"c-1"},
		ImageIDs:     []string{"i-1"},
	}
}

func newProductContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestProductHandler_Get_UserProjection(t *testing.T) {
	h := NewProductHandler(&stubProductService{product: sampleProduct()})

	c, rec := newProductContext(t, http.MethodGet, "/api/products/p-1", "")
	c.SetParamNames("id")
	c.SetParamValues("p-1")

	if err := h.Get(c); err != nil {
		t.Fatalf("get: %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["price"] != 19.99 {
		t.Fatalf("price = %v", body["price"])
	}
	// The user view never carries the cost breakdown.
	if _, ok := body["cost"]; ok {
		t.Fatalf("user projection leaks cost: %v", body)
	}
}

func TestProductHandler_Get_AdminProjection(t *testing.T) {
	h := NewProductHandler(&stubProductService{product: sampleProduct()})

	c, rec := newProductContext(t, http.MethodGet, "/api/products/p-1", "")
	c.SetParamNames("id")
	c.SetParamValues("p-1")
	middleware.SetIdentity(c, domain.Identity{Username: "root", Role: domain.RoleAdmin})

	if err := h.Get(c); err != nil {
		t.Fatalf("get: %v", err)
	}

	var body struct {
		Cost costResponse `json:"cost"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Cost.WholesalePrice != 7.5 || body.Cost.RetailPrice != 19.99 {
		t.Fatalf("cost = %+v", body.Cost)
	}
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	h := NewProductHandler(&stubProductService{err: domain.ErrProductNotFound})

	c, _ := newProductContext(t, http.MethodGet, "/api/products/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductHandler_Create_Created(t *testing.T) {
	stub := &stubProductService{product: sampleProduct()}
	h := NewProductHandler(stub)

	body := `{"name":"lamp","description":"desk lamp","cost":{"wholesale_price":7.5,"retail_price":19.99},"availability":3,"image_ids":["i-1"]}`
	c, rec := newProductContext(t, http.MethodPost, "/api/products", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if stub.createdInput.Name != "lamp" || stub.createdInput.Cost.RetailPrice != 19.99 {
		t.Fatalf("service saw input %+v", stub.createdInput)
	}
}

func TestProductHandler_Create_Invalid(t *testing.T) {
	cases := map[string]string{
		"short name":     `{"name":"ab","cost":{"retail_price":1},"image_ids":["i-1"]}`,
		"long name":      `{"name":"seventeen chars!!","cost":{"retail_price":1},"image_ids":["i-1"]}`,
		"no retail":      `{"name":"lamp","cost":{"wholesale_price":1},"image_ids":["i-1"]}`,
		"no images":      `{"name":"lamp","cost":{"retail_price":1},"image_ids":[]}`,
		"negative stock": `{"name":"lamp","cost":{"retail_price":1},"availability":-1,"image_ids":["i-1"]}`,
	}

	for name, body := range cases {
		stub := &stubProductService{product: sampleProduct()}
		h := NewProductHandler(stub)

		c, _ := newProductContext(t, http.MethodPost, "/api/products", body)
		err := h.Create(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 HTTPError, got %v", name, err)
		}
		if stub.createdInput.Name != "" {
			t.Fatalf("%s: service called for invalid payload", name)
		}
	}
}

func TestProductHandler_ListByCategory_UserProjection(t *testing.T) {
	h := NewProductHandler(&stubProductService{product: sampleProduct()})

	c, rec := newProductContext(t, http.MethodGet, "/api/categories/c-1/products", "")
	c.SetParamNames("id")
	c.SetParamValues("c-1")

	if err := h.ListByCategory(c); err != nil {
		t.Fatalf("list by category: %v", err)
	}

	var body []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(body) != 1 {
		t.Fatalf("expected 1 product, got %d", len(body))
	}
	if _, ok := body[0]["cost"]; ok {
		t.Fatalf("user projection leaks cost: %v", body[0])
	}
}

func TestProductHandler_ListByCategory_UnknownCategory(t *testing.T) {
	h := NewProductHandler(&stubProductService{err: domain.ErrCategoryNotFound})

	c, _ := newProductContext(t, http.MethodGet, "/api/categories/missing/products", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.ListByCategory(c); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestProductHandler_UpdateCategories(t *testing.T) {
	stub := &stubProductService{product: sampleProduct()}
	h := NewProductHandler(stub)

	c, rec := newProductContext(t, http.MethodPut, "/api/products/p-1/categories", `{"ids":["c-1","c-2"]}`)
	c.SetParamNames("id")
	c.SetParamValues("p-1")

	if err := h.UpdateCategories(c); err != nil {
		t.Fatalf("update categories: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(stub.categoryIDs) != 2 {
		t.Fatalf("service saw ids %v", stub.categoryIDs)
	}
}

func TestProductHandler_UpdateIDs_MissingIDs(t *testing.T) {
	// A payload without the ids field fails validation before the service;
	// an explicit empty list is a legal replacement and passes through.
	stub := &stubProductService{product: sampleProduct()}
	h := NewProductHandler(stub)

	c, _ := newProductContext(t, http.MethodPut, "/api/products/p-1/categories", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("p-1")
	err := h.UpdateCategories(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
	if stub.categoryIDs != nil {
		t.Fatalf("service called for missing ids")
	}

	c, _ = newProductContext(t, http.MethodPut, "/api/products/p-1/images", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("p-1")
	err = h.UpdateImages(c)
	he, ok = err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
	if stub.imageIDs != nil {
		t.Fatalf("service called for missing ids")
	}

	c, rec := newProductContext(t, http.MethodPut, "/api/products/p-1/categories", `{"ids":[]}`)
	c.SetParamNames("id")
	c.SetParamValues("p-1")
	if err := h.UpdateCategories(c); err != nil {
		t.Fatalf("empty ids rejected: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
