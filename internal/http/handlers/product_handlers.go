package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/storefront/internal/catalog"
	models "github.com/rogerio-castellano/storefront/internal/models"
	repo "github.com/rogerio-castellano/storefront/internal/repo"
)

// ListProductsHandler godoc
// @Summary List, filter and paginate products
// @Tags products
// @Produce json
// @Param q query string false "Substring match on name or description"
// @Param category query string false "Exact category match"
// @Param minPrice query string false "Minimum price (inclusive)"
// @Param maxPrice query string false "Maximum price (inclusive)"
// @Param page query int false "Page number, starting at 1"
// @Param limit query int false "Page size (1-100, default 20)"
// @Param sortBy query string false "Sort key: name, price or inventory"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {array} FieldValidationError
// @Failure 500 {string} string "Internal error"
// @Router /api/products [get]
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := catalog.Params{
		Query:     q.Get("q"),
		Category:  q.Get("category"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
	if params.Query == "" {
		params.Query = q.Get("query")
	}

	// Zero means "unset" to the engine, so an explicit 0 has to be caught here.
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, "page must be a positive integer", http.StatusBadRequest)
			return
		}
		params.Page = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		params.Limit = n
	}
	if v := q.Get("minPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			http.Error(w, "minPrice must be a decimal number", http.StatusBadRequest)
			return
		}
		params.MinPrice = &d
	}
	if v := q.Get("maxPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			http.Error(w, "maxPrice must be a decimal number", http.StatusBadRequest)
			return
		}
		params.MaxPrice = &d
	}

	result, err := h.catalog.ListProducts(params)
	if err != nil {
		var verr *catalog.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, []FieldValidationError{{Field: verr.Field, Description: verr.Message}})
			return
		}
		log.Printf("listing products: %v", err)
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	resp := ProductsSearchResult{
		Data: make([]ProductResponse, len(result.Data)),
		Pagination: Pagination{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	}
	for i, p := range result.Data {
		resp.Data[i] = toProductResponse(p)
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /api/products/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := h.products.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		log.Printf("fetching product %d: %v", id, err)
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {array} FieldValidationError
// @Failure 500 {string} string "Internal error"
// @Router /api/products [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateStruct(req); len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		// price_string already vetted the format
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	product := models.Product{
		Name:        req.Name,
		Price:       price,
		Image:       req.Image,
		Description: req.Description,
		Inventory:   req.Inventory,
		Category:    req.Category,
	}
	created, err := h.products.Create(product)
	if err != nil {
		log.Printf("creating product: %v", err)
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	h.invalidateCatalog()
	writeJSON(w, http.StatusCreated, toProductResponse(created))
}

// UpdateInventoryHandler godoc
// @Summary Set a product's inventory
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param inventory body InventoryUpdateRequest true "New inventory value"
// @Success 200 {object} ProductResponse
// @Failure 400 {array} FieldValidationError
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /api/products/{id}/inventory [patch]
func (h *Handler) UpdateInventoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	var req InventoryUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if validationErrors := validateStruct(req); len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	updated, err := h.products.SetInventory(id, *req.Inventory)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		log.Printf("setting inventory for product %d: %v", id, err)
		http.Error(w, "could not update inventory", http.StatusInternalServerError)
		return
	}

	h.invalidateCatalog()
	writeJSON(w, http.StatusOK, toProductResponse(updated))
}

// DeleteProductHandler godoc
// @Summary Delete a product and its cart items
// @Tags products
// @Param id path int true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /api/products/{id} [delete]
func (h *Handler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	if err := h.ledger.DeleteProduct(id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		log.Printf("deleting product %d: %v", id, err)
		http.Error(w, "could not delete product", http.StatusInternalServerError)
		return
	}

	h.invalidateCatalog()
	w.WriteHeader(http.StatusNoContent)
}
