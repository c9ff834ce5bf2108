package models

import "github.com/shopspring/decimal"

// Product represents a catalog entry in the storefront.
// Price is a fixed-scale decimal (two fractional digits); monetary
// comparisons must go through decimal arithmetic, never float64.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description,omitempty"`
	Inventory   int             `json:"inventory"`
	Category    string          `json:"category,omitempty"`
}
