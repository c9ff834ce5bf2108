// Package cart implements the cart/inventory ledger: it owns the set of
// cart line items and keeps each product's inventory consistent with the
// quantities those line items hold. Adding to the cart reserves stock,
// removing releases it.
package cart

import (
	"errors"
	"fmt"
	"log"

	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/repo"
)

// ErrDataIntegrity is returned when a cart item references a product that no
// longer exists. Product deletion cascades over cart items, so hitting this
// means that invariant was violated somewhere.
var ErrDataIntegrity = errors.New("cart item references a missing product")

// Ledger coordinates cart mutations with inventory bookkeeping. Every
// inventory change goes through the repository's conditional AdjustInventory,
// so a reservation that would oversell fails instead of racing.
type Ledger struct {
	items    repo.CartRepository
	products repo.ProductRepository
}

func NewLedger(items repo.CartRepository, products repo.ProductRepository) *Ledger {
	return &Ledger{items: items, products: products}
}

// AddToCart reserves quantity units of the product and returns the resulting
// line item enriched with the product as of reservation time. If the cart
// already holds a line for this product, quantities accumulate into it
// rather than overwrite, re-validated against current inventory.
func (l *Ledger) AddToCart(productID, quantity int) (models.EnrichedCartItem, error) {
	if _, err := l.products.GetByID(productID); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			return models.EnrichedCartItem{}, err
		}
		return models.EnrichedCartItem{}, fmt.Errorf("looking up product %d: %w", productID, err)
	}

	existing, err := l.items.GetByProductID(productID)
	if err == nil {
		return l.UpdateQuantity(existing.ID, existing.Quantity+quantity)
	}
	if !errors.Is(err, repo.ErrCartItemNotFound) {
		return models.EnrichedCartItem{}, fmt.Errorf("looking up cart item for product %d: %w", productID, err)
	}

	product, err := l.products.AdjustInventory(productID, -quantity)
	if err != nil {
		if errors.Is(err, repo.ErrInsufficientInventory) || errors.Is(err, repo.ErrProductNotFound) {
			return models.EnrichedCartItem{}, err
		}
		return models.EnrichedCartItem{}, fmt.Errorf("reserving %d units of product %d: %w", quantity, productID, err)
	}

	item, err := l.items.Create(models.CartItem{ProductID: productID, Quantity: quantity})
	if err != nil {
		l.release(productID, quantity)
		return models.EnrichedCartItem{}, fmt.Errorf("creating cart item: %w", err)
	}

	return models.EnrichedCartItem{CartItem: item, Product: product}, nil
}

// UpdateQuantity sets the line item's quantity, consuming inventory when it
// grows and releasing it when it shrinks. An update that would drive the
// product's inventory negative fails with ErrInsufficientInventory and
// leaves both the cart and the inventory unchanged.
func (l *Ledger) UpdateQuantity(id, quantity int) (models.EnrichedCartItem, error) {
	item, err := l.items.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrCartItemNotFound) {
			return models.EnrichedCartItem{}, err
		}
		return models.EnrichedCartItem{}, fmt.Errorf("looking up cart item %d: %w", id, err)
	}

	// Positive delta releases stock, negative consumes it.
	delta := item.Quantity - quantity
	product, err := l.products.AdjustInventory(item.ProductID, delta)
	if err != nil {
		if errors.Is(err, repo.ErrInsufficientInventory) || errors.Is(err, repo.ErrProductNotFound) {
			return models.EnrichedCartItem{}, err
		}
		return models.EnrichedCartItem{}, fmt.Errorf("adjusting inventory for product %d: %w", item.ProductID, err)
	}

	updated, err := l.items.UpdateQuantity(id, quantity)
	if err != nil {
		l.release(item.ProductID, -delta)
		return models.EnrichedCartItem{}, fmt.Errorf("updating cart item %d: %w", id, err)
	}

	return models.EnrichedCartItem{CartItem: updated, Product: product}, nil
}

// RemoveFromCart releases the line item's reservation back to the product's
// inventory and deletes the line item. Removing an absent line item is a
// no-op, not an error.
func (l *Ledger) RemoveFromCart(id int) error {
	item, err := l.items.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrCartItemNotFound) {
			return nil
		}
		return fmt.Errorf("looking up cart item %d: %w", id, err)
	}

	if _, err := l.products.AdjustInventory(item.ProductID, item.Quantity); err != nil {
		// A missing product means it was deleted; there is no inventory left
		// to restore, but the line item still has to go.
		if !errors.Is(err, repo.ErrProductNotFound) {
			return fmt.Errorf("restoring inventory for product %d: %w", item.ProductID, err)
		}
	}

	if err := l.items.Delete(id); err != nil && !errors.Is(err, repo.ErrCartItemNotFound) {
		return fmt.Errorf("deleting cart item %d: %w", id, err)
	}
	return nil
}

// ListCart returns every line item enriched with its current product
// snapshot. A line item whose product cannot be found fails the whole read
// with ErrDataIntegrity.
func (l *Ledger) ListCart() ([]models.EnrichedCartItem, error) {
	items, err := l.items.GetAll()
	if err != nil {
		return nil, fmt.Errorf("listing cart items: %w", err)
	}

	enriched := make([]models.EnrichedCartItem, 0, len(items))
	for _, item := range items {
		product, err := l.products.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, repo.ErrProductNotFound) {
				log.Printf("INTEGRITY: cart item %d references missing product %d", item.ID, item.ProductID)
				return nil, fmt.Errorf("cart item %d: %w", item.ID, ErrDataIntegrity)
			}
			return nil, fmt.Errorf("looking up product %d: %w", item.ProductID, err)
		}
		enriched = append(enriched, models.EnrichedCartItem{CartItem: item, Product: product})
	}
	return enriched, nil
}

// DeleteProduct removes the product and cascades deletion of every cart item
// referencing it. Reserved inventory is not restored; the product, and with
// it the concept of its inventory, ceases to exist.
func (l *Ledger) DeleteProduct(productID int) error {
	if err := l.items.DeleteByProductID(productID); err != nil {
		return fmt.Errorf("cascading cart items for product %d: %w", productID, err)
	}
	if err := l.products.Delete(productID); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			return err
		}
		return fmt.Errorf("deleting product %d: %w", productID, err)
	}
	return nil
}

// release undoes a reservation after a failed cart write. Best effort: the
// failure that got us here is the one worth reporting.
func (l *Ledger) release(productID, quantity int) {
	if _, err := l.products.AdjustInventory(productID, quantity); err != nil {
		log.Printf("INTEGRITY: could not release %d units of product %d: %v", quantity, productID, err)
	}
}
