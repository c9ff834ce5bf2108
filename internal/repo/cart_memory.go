package repo

import (
	"sync"

	"github.com/rogerio-castellano/storefront/internal/models"
)

// InMemoryCartRepository is an in-memory implementation of CartRepository.
type InMemoryCartRepository struct {
	mu     sync.Mutex
	items  []models.CartItem
	nextID int
}

// NewInMemoryCartRepository creates a new instance of InMemoryCartRepository.
func NewInMemoryCartRepository() *InMemoryCartRepository {
	return &InMemoryCartRepository{
		items:  []models.CartItem{},
		nextID: 1,
	}
}

// GetAll retrieves all cart items in insertion order.
func (r *InMemoryCartRepository) GetAll() ([]models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.CartItem, len(r.items))
	copy(out, r.items)
	return out, nil
}

// GetByID retrieves a cart item by its ID.
func (r *InMemoryCartRepository) GetByID(id int) (models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.CartItem{}, ErrCartItemNotFound
}

// GetByProductID retrieves the cart item referencing the given product.
func (r *InMemoryCartRepository) GetByProductID(productID int) (models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.ProductID == productID {
			return item, nil
		}
	}
	return models.CartItem{}, ErrCartItemNotFound
}

// Create adds a new cart item to the repository.
func (r *InMemoryCartRepository) Create(item models.CartItem) (models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.items = append(r.items, item)
	return item, nil
}

// UpdateQuantity overwrites the quantity of an existing cart item.
func (r *InMemoryCartRepository) UpdateQuantity(id int, quantity int) (models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, item := range r.items {
		if item.ID == id {
			item.Quantity = quantity
			r.items[i] = item
			return item, nil
		}
	}
	return models.CartItem{}, ErrCartItemNotFound
}

// Delete removes a cart item from the repository by its ID.
func (r *InMemoryCartRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrCartItemNotFound
}

// DeleteByProductID removes every cart item referencing the product.
func (r *InMemoryCartRepository) DeleteByProductID(productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	for _, item := range r.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	r.items = kept
	return nil
}

func (r *InMemoryCartRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = []models.CartItem{}
}
