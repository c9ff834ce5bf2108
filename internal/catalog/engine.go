// Package catalog implements the storefront's product query engine: a
// filtered, sorted, paginated read over the product set.
package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/storefront/internal/cache"
	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/repo"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params describes one catalog query. Filters are combined with logical AND;
// the zero value of a field means "no constraint". Page and Limit fall back
// to their defaults when zero.
type Params struct {
	Query     string
	Category  string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// ValidationError reports a query parameter that failed its range or type
// constraint. These never reach the storage layer.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Result is one page of the catalog plus the pagination bookkeeping computed
// from the pre-pagination match count.
type Result struct {
	Data       []models.Product `json:"data"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

// Engine executes catalog queries against a product repository, with an
// optional read-through cache in front.
type Engine struct {
	products repo.ProductRepository
	cache    *cache.Cache
}

// NewEngine creates a catalog engine. cache may be nil.
func NewEngine(products repo.ProductRepository, c *cache.Cache) *Engine {
	return &Engine{products: products, cache: c}
}

func (p Params) normalized() Params {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.SortBy != "" && p.SortOrder == "" {
		p.SortOrder = "asc"
	}
	return p
}

func (p Params) validate() error {
	if p.Page < 1 {
		return &ValidationError{Field: "page", Message: "must be at least 1"}
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		return &ValidationError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", MaxLimit)}
	}
	switch p.SortBy {
	case "", "name", "price", "inventory":
	default:
		return &ValidationError{Field: "sortBy", Message: "must be one of name, price, inventory"}
	}
	switch p.SortOrder {
	case "", "asc", "desc":
	default:
		return &ValidationError{Field: "sortOrder", Message: "must be asc or desc"}
	}
	if p.MinPrice != nil && p.MinPrice.IsNegative() {
		return &ValidationError{Field: "minPrice", Message: "must not be negative"}
	}
	if p.MaxPrice != nil && p.MaxPrice.IsNegative() {
		return &ValidationError{Field: "maxPrice", Message: "must not be negative"}
	}
	if p.MinPrice != nil && p.MaxPrice != nil && p.MinPrice.Cmp(*p.MaxPrice) > 0 {
		return &ValidationError{Field: "minPrice", Message: "must not exceed maxPrice"}
	}
	return nil
}

// queryKey is the canonical cache key for the params. Decimal bounds are
// rendered through String so 10, 10.0 and 10.00 share an entry.
func (p Params) queryKey() string {
	min, max := "", ""
	if p.MinPrice != nil {
		min = p.MinPrice.String()
	}
	if p.MaxPrice != nil {
		max = p.MaxPrice.String()
	}
	return fmt.Sprintf("q=%s&category=%s&min=%s&max=%s&page=%d&limit=%d&sort=%s.%s",
		p.Query, p.Category, min, max, p.Page, p.Limit, p.SortBy, p.SortOrder)
}

// ListProducts runs the query and returns the matching page plus totals.
// The total and totalPages are counted before pagination, so a page past
// the end yields an empty data slice with the real totals, not an error.
func (e *Engine) ListProducts(params Params) (Result, error) {
	params = params.normalized()
	if err := params.validate(); err != nil {
		return Result{}, err
	}

	key := params.queryKey()
	if e.cache != nil {
		if payload, ok := e.cache.Lookup(key); ok {
			var cached Result
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached, nil
			}
		}
	}

	offset := (params.Page - 1) * params.Limit
	limit := params.Limit
	data, total, err := e.products.Filter(repo.ProductFilter{
		Query:     params.Query,
		Category:  params.Category,
		MinPrice:  params.MinPrice,
		MaxPrice:  params.MaxPrice,
		SortBy:    params.SortBy,
		SortOrder: params.SortOrder,
		Offset:    &offset,
		Limit:     &limit,
	})
	if err != nil {
		return Result{}, fmt.Errorf("filtering products: %w", err)
	}
	if data == nil {
		data = []models.Product{}
	}

	result := Result{
		Data:       data,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: (total + params.Limit - 1) / params.Limit,
	}

	if e.cache != nil {
		if payload, err := json.Marshal(result); err == nil {
			e.cache.Store(key, payload)
		}
	}
	return result, nil
}
