package repo

import "github.com/rogerio-castellano/storefront/internal/models"

// CartRepository defines the interface for cart line item data operations.
type CartRepository interface {
	GetAll() ([]models.CartItem, error)
	GetByID(id int) (models.CartItem, error)
	// GetByProductID returns the cart item holding the given product, or
	// ErrCartItemNotFound. The cart keeps at most one line per product.
	GetByProductID(productID int) (models.CartItem, error)
	Create(item models.CartItem) (models.CartItem, error)
	UpdateQuantity(id int, quantity int) (models.CartItem, error)
	Delete(id int) error
	// DeleteByProductID removes every cart item referencing the product.
	DeleteByProductID(productID int) error
}
