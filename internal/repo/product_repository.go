package repo

import "github.com/rogerio-castellano/storefront/internal/models"

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	// SetInventory overwrites the product's inventory with an absolute value.
	SetInventory(id int, inventory int) (models.Product, error)
	// AdjustInventory applies delta to the product's inventory as a single
	// conditional update: the read, the bounds check and the write are one
	// atomic step. Returns ErrInsufficientInventory when the result would be
	// negative.
	AdjustInventory(id int, delta int) (models.Product, error)
	Delete(id int) error
	// Filter returns the matching page of products plus the total match
	// count before pagination.
	Filter(f ProductFilter) ([]models.Product, int, error)
}
