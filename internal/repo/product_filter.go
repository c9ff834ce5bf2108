package repo

import "github.com/shopspring/decimal"

// ProductFilter describes a filtered, sorted, paginated read over the catalog.
// All fields are optional; nil/empty means "no constraint".
type ProductFilter struct {
	Query     string // substring match on name or description, case-insensitive
	Category  string // exact match
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	SortBy    string // "name", "price" or "inventory"
	SortOrder string // "asc" or "desc"
	Offset    *int
	Limit     *int
}
