package repo

import (
	"sort"
	"strings"
	"sync"

	"github.com/rogerio-castellano/storefront/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
// Products keep insertion order, which is the stable tie-break order for
// sorted reads.
type InMemoryProductRepository struct {
	mu       sync.Mutex
	products []models.Product
	nextID   int
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		nextID:   1,
	}
}

func matchesFilter(p models.Product, f ProductFilter) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price.Cmp(*f.MinPrice) < 0 {
		return false
	}
	if f.MaxPrice != nil && p.Price.Cmp(*f.MaxPrice) > 0 {
		return false
	}
	return true
}

func sortProducts(products []models.Product, sortBy, sortOrder string) {
	if sortBy == "" {
		return
	}
	desc := sortOrder == "desc"
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if desc {
			a, b = b, a
		}
		switch sortBy {
		case "price":
			return a.Price.Cmp(b.Price) < 0
		case "inventory":
			return a.Inventory < b.Inventory
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (r *InMemoryProductRepository) Filter(f ProductFilter) ([]models.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	filtered := []models.Product{}
	for _, p := range r.products {
		if matchesFilter(p, f) {
			filtered = append(filtered, p)
		}
	}

	sortProducts(filtered, f.SortBy, f.SortOrder)

	total := len(filtered)
	start := 0
	if f.Offset != nil {
		start = clamp(*f.Offset, 0, total)
	}
	end := total
	if f.Limit != nil && *f.Limit > 0 {
		end = clamp(start+*f.Limit, start, total)
	}

	return filtered[start:end], total, nil
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	r.products = append(r.products, product)
	return product, nil
}

// GetAll retrieves all products from the repository.
func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getByID(id)
}

func (r *InMemoryProductRepository) getByID(id int) (models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Update modifies an existing product in the repository.
func (r *InMemoryProductRepository) Update(product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == product.ID {
			r.products[i] = product
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// SetInventory overwrites the product's inventory with an absolute value.
func (r *InMemoryProductRepository) SetInventory(id int, inventory int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			p.Inventory = inventory
			r.products[i] = p
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// AdjustInventory applies delta to the product's inventory while holding the
// repository lock, so concurrent reservations against the same product cannot
// both pass the bounds check on a stale read.
func (r *InMemoryProductRepository) AdjustInventory(id int, delta int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			if p.Inventory+delta < 0 {
				return models.Product{}, ErrInsufficientInventory
			}
			p.Inventory += delta
			r.products[i] = p
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = []models.Product{}
}
