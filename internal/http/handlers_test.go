package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/rogerio-castellano/storefront/internal/http"
	handler "github.com/rogerio-castellano/storefront/internal/http/handlers"
	"github.com/rogerio-castellano/storefront/internal/repo"
)

func newTestRouter() (http.Handler, *repo.InMemoryProductRepository, *repo.InMemoryCartRepository) {
	products := repo.NewInMemoryProductRepository()
	items := repo.NewInMemoryCartRepository()
	h := handler.New(products, items, nil)
	return api.NewRouter(h, nil), products, items
}

func doJSON(r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(t *testing.T, r http.Handler, req handler.ProductRequest) handler.ProductResponse {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/products", req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	return resp
}

func validProduct(name string, price string, inventory int) handler.ProductRequest {
	return handler.ProductRequest{
		Name:      name,
		Price:     price,
		Image:     "https://images.example.com/" + strings.ReplaceAll(strings.ToLower(name), " ", "-") + ".jpg",
		Inventory: inventory,
	}
}

func TestCreateProductHandler_Valid(t *testing.T) {
	r, _, _ := newTestRouter()

	req := validProduct("Premium Watch", "199.99", 10)
	req.Category = "accessories"
	req.Description = "A fine mechanical watch"
	resp := createProduct(t, r, req)

	if resp.Id != 1 {
		t.Errorf("expected id 1, got %d", resp.Id)
	}
	if resp.Name != "Premium Watch" {
		t.Errorf("expected name 'Premium Watch', got %q", resp.Name)
	}
	if resp.Price != "199.99" {
		t.Errorf("expected price %q, got %q", "199.99", resp.Price)
	}
	if resp.Inventory != 10 {
		t.Errorf("expected inventory 10, got %d", resp.Inventory)
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	r, _, _ := newTestRouter()

	tests := []struct {
		name           string
		payload        handler.ProductRequest
		expectedFields []string
	}{
		{
			name:           "name too short",
			payload:        validProductWith(func(p *handler.ProductRequest) { p.Name = "ab" }),
			expectedFields: []string{"name"},
		},
		{
			name:           "name with forbidden characters",
			payload:        validProductWith(func(p *handler.ProductRequest) { p.Name = "Watch!!!" }),
			expectedFields: []string{"name"},
		},
		{
			name:           "price not a decimal",
			payload:        validProductWith(func(p *handler.ProductRequest) { p.Price = "cheap" }),
			expectedFields: []string{"price"},
		},
		{
			name:           "price with three decimal places",
			payload:        validProductWith(func(p *handler.ProductRequest) { p.Price = "19.999" }),
			expectedFields: []string{"price"},
		},
		{
			name:           "price above ceiling",
			payload:        validProductWith(func(p *handler.ProductRequest) { p.Price = "1000000.00" }),
			expectedFields: []string{"price"},
		},
		{
			name:           "insecure image URL",
			payload:        validProductWith(func(p *handler.ProductRequest) { p.Image = "http://images.example.com/watch.jpg" }),
			expectedFields: []string{"image"},
		},
		{
			name:           "negative inventory",
			payload:        validProductWith(func(p *handler.ProductRequest) { p.Inventory = -1 }),
			expectedFields: []string{"inventory"},
		},
		{
			name:           "short description and category",
			payload:        validProductWith(func(p *handler.ProductRequest) { p.Description = "meh"; p.Category = "x" }),
			expectedFields: []string{"description", "category"},
		},
		{
			name:           "everything missing",
			payload:        handler.ProductRequest{},
			expectedFields: []string{"name", "price", "image"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/products", tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 Bad Request, got %d: %s", w.Code, w.Body.String())
			}

			var resp []handler.FieldValidationError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			for _, field := range tt.expectedFields {
				found := false
				for _, e := range resp {
					if e.Field == field {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected an error for field %q, got %v", field, resp)
				}
			}
		})
	}
}

func validProductWith(mutate func(*handler.ProductRequest)) handler.ProductRequest {
	p := validProduct("Premium Watch", "199.99", 10)
	mutate(&p)
	return p
}

func TestCreateProductHandler_MalformedJSON(t *testing.T) {
	r, _, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(`{name: nope}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestListProductsHandler_FilterSortPaginate(t *testing.T) {
	r, _, _ := newTestRouter()

	prices := []string{"10.00", "15.00", "20.00", "25.00", "30.00"}
	for i, p := range prices {
		createProduct(t, r, validProduct(fmt.Sprintf("Product %02d", i+1), p, 5))
	}

	w := doJSON(r, http.MethodGet, "/api/products?page=2&limit=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp handler.ProductsSearchResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Pagination.Total != 5 || resp.Pagination.TotalPages != 3 {
		t.Errorf("expected total 5 across 3 pages, got %+v", resp.Pagination)
	}
	if len(resp.Data) != 2 || resp.Data[0].Name != "Product 03" {
		t.Errorf("expected page 2 to start at Product 03, got %+v", resp.Data)
	}

	w = doJSON(r, http.MethodGet, "/api/products?page=10&limit=2", nil)
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Data) != 0 {
		t.Errorf("expected empty page past the end, got %d products", len(resp.Data))
	}

	w = doJSON(r, http.MethodGet, "/api/products?minPrice=15&maxPrice=25", nil)
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Pagination.Total != 3 {
		t.Errorf("expected 3 products between 15 and 25, got %d", resp.Pagination.Total)
	}

	w = doJSON(r, http.MethodGet, "/api/products?sortBy=price&sortOrder=desc&limit=1", nil)
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Data) != 1 || resp.Data[0].Price != "30.00" {
		t.Errorf("expected the most expensive product first, got %+v", resp.Data)
	}

	w = doJSON(r, http.MethodGet, "/api/products?q=product%2002", nil)
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Pagination.Total != 1 || resp.Data[0].Name != "Product 02" {
		t.Errorf("expected the free-text match, got %+v", resp.Data)
	}
}

func TestListProductsHandler_InvalidParams(t *testing.T) {
	r, _, _ := newTestRouter()

	tests := []struct {
		name string
		path string
	}{
		{"zero limit", "/api/products?limit=0"},
		{"limit above cap", "/api/products?limit=101"},
		{"non-numeric page", "/api/products?page=two"},
		{"non-numeric price bound", "/api/products?minPrice=cheap"},
		{"unknown sort key", "/api/products?sortBy=color"},
		{"unknown sort order", "/api/products?sortBy=price&sortOrder=sideways"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodGet, tt.path, nil)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400 Bad Request, got %d", w.Code)
			}
		})
	}
}

func TestGetProductByIDHandler(t *testing.T) {
	r, _, _ := newTestRouter()
	created := createProduct(t, r, validProduct("Premium Watch", "199.99", 10))

	w := doJSON(r, http.MethodGet, fmt.Sprintf("/api/products/%d", created.Id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp handler.ProductResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Name != "Premium Watch" {
		t.Errorf("expected 'Premium Watch', got %q", resp.Name)
	}

	if w := doJSON(r, http.MethodGet, "/api/products/999", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/api/products/abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestUpdateInventoryHandler(t *testing.T) {
	r, _, _ := newTestRouter()
	created := createProduct(t, r, validProduct("Premium Watch", "199.99", 10))

	inv := 3
	w := doJSON(r, http.MethodPatch, fmt.Sprintf("/api/products/%d/inventory", created.Id), handler.InventoryUpdateRequest{Inventory: &inv})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var resp handler.ProductResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Inventory != 3 {
		t.Errorf("expected inventory 3, got %d", resp.Inventory)
	}

	negative := -1
	w = doJSON(r, http.MethodPatch, fmt.Sprintf("/api/products/%d/inventory", created.Id), handler.InventoryUpdateRequest{Inventory: &negative})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative inventory, got %d", w.Code)
	}

	w = doJSON(r, http.MethodPatch, "/api/products/999/inventory", handler.InventoryUpdateRequest{Inventory: &inv})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown product, got %d", w.Code)
	}
}

func TestCartFlow(t *testing.T) {
	r, _, _ := newTestRouter()
	created := createProduct(t, r, validProduct("Premium Watch", "10.00", 5))

	// Reserve 3 of 5.
	w := doJSON(r, http.MethodPost, "/api/cart", handler.CartItemRequest{ProductID: created.Id, Quantity: 3})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var item handler.CartItemResponse
	json.NewDecoder(w.Body).Decode(&item)
	if item.Quantity != 3 || item.Product.Inventory != 2 {
		t.Fatalf("expected quantity 3 and inventory 2, got %+v", item)
	}

	// Adding the same product again accumulates into the same line item.
	w = doJSON(r, http.MethodPost, "/api/cart", handler.CartItemRequest{ProductID: created.Id, Quantity: 2})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var merged handler.CartItemResponse
	json.NewDecoder(w.Body).Decode(&merged)
	if merged.Id != item.Id || merged.Quantity != 5 || merged.Product.Inventory != 0 {
		t.Fatalf("expected merged line with quantity 5 and inventory 0, got %+v", merged)
	}

	// The well is dry.
	w = doJSON(r, http.MethodPost, "/api/cart", handler.CartItemRequest{ProductID: created.Id, Quantity: 1})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on exhausted inventory, got %d", w.Code)
	}

	// The cart lists one enriched line.
	w = doJSON(r, http.MethodGet, "/api/cart", nil)
	var listed []handler.CartItemResponse
	json.NewDecoder(w.Body).Decode(&listed)
	if len(listed) != 1 || listed[0].Product.Name != "Premium Watch" {
		t.Fatalf("expected one enriched item, got %+v", listed)
	}

	// Shrinking the line releases stock.
	w = doJSON(r, http.MethodPatch, fmt.Sprintf("/api/cart/%d", item.Id), handler.QuantityUpdateRequest{Quantity: 1})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var shrunk handler.CartItemResponse
	json.NewDecoder(w.Body).Decode(&shrunk)
	if shrunk.Quantity != 1 || shrunk.Product.Inventory != 4 {
		t.Fatalf("expected quantity 1 and inventory 4, got %+v", shrunk)
	}

	// Removing the line restores the full reservation.
	if w := doJSON(r, http.MethodDelete, fmt.Sprintf("/api/cart/%d", item.Id), nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/products/%d", created.Id), nil)
	var product handler.ProductResponse
	json.NewDecoder(w.Body).Decode(&product)
	if product.Inventory != 5 {
		t.Errorf("expected inventory restored to 5, got %d", product.Inventory)
	}
	w = doJSON(r, http.MethodGet, "/api/cart", nil)
	listed = nil
	json.NewDecoder(w.Body).Decode(&listed)
	if len(listed) != 0 {
		t.Errorf("expected empty cart, got %+v", listed)
	}
}

func TestAddToCartHandler_Errors(t *testing.T) {
	r, _, _ := newTestRouter()
	created := createProduct(t, r, validProduct("Premium Watch", "199.99", 5))

	if w := doJSON(r, http.MethodPost, "/api/cart", handler.CartItemRequest{ProductID: 999, Quantity: 1}); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown product, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/api/cart", handler.CartItemRequest{ProductID: created.Id, Quantity: 0}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for zero quantity, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/api/cart", handler.CartItemRequest{ProductID: created.Id, Quantity: 101}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for quantity above cap, got %d", w.Code)
	}
}

func TestUpdateCartItemHandler_Errors(t *testing.T) {
	r, _, _ := newTestRouter()

	if w := doJSON(r, http.MethodPatch, "/api/cart/999", handler.QuantityUpdateRequest{Quantity: 1}); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown cart item, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodPatch, "/api/cart/abc", handler.QuantityUpdateRequest{Quantity: 1}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed id, got %d", w.Code)
	}
}

func TestRemoveCartItemHandler_AbsentIsNoop(t *testing.T) {
	r, _, _ := newTestRouter()

	if w := doJSON(r, http.MethodDelete, "/api/cart/999", nil); w.Code != http.StatusNoContent {
		t.Errorf("expected 204 for absent cart item, got %d", w.Code)
	}
}

func TestDeleteProductHandler_CascadesCart(t *testing.T) {
	r, _, _ := newTestRouter()
	created := createProduct(t, r, validProduct("Premium Watch", "199.99", 5))

	if w := doJSON(r, http.MethodPost, "/api/cart", handler.CartItemRequest{ProductID: created.Id, Quantity: 2}); w.Code != http.StatusOK {
		t.Fatalf("add to cart failed: %d", w.Code)
	}

	if w := doJSON(r, http.MethodDelete, fmt.Sprintf("/api/products/%d", created.Id), nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}

	w := doJSON(r, http.MethodGet, "/api/cart", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK after cascade, got %d", w.Code)
	}
	var listed []handler.CartItemResponse
	json.NewDecoder(w.Body).Decode(&listed)
	if len(listed) != 0 {
		t.Errorf("expected empty cart after product deletion, got %+v", listed)
	}

	if w := doJSON(r, http.MethodDelete, fmt.Sprintf("/api/products/%d", created.Id), nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on double delete, got %d", w.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	r, _, _ := newTestRouter()

	w := doJSON(r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 OK, got %d", w.Code)
	}
}
