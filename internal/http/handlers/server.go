package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/storefront/internal/cache"
	"github.com/rogerio-castellano/storefront/internal/cart"
	"github.com/rogerio-castellano/storefront/internal/catalog"
	repo "github.com/rogerio-castellano/storefront/internal/repo"
)

// Handler owns the HTTP surface of the storefront. It is constructed with
// its storage and holds the two core components built on top of it: the
// catalog query engine and the cart/inventory ledger.
type Handler struct {
	products repo.ProductRepository
	catalog  *catalog.Engine
	ledger   *cart.Ledger
	cache    *cache.Cache
}

// New wires a Handler. catalogCache may be nil to run without Redis.
func New(products repo.ProductRepository, items repo.CartRepository, catalogCache *cache.Cache) *Handler {
	return &Handler{
		products: products,
		catalog:  catalog.NewEngine(products, catalogCache),
		ledger:   cart.NewLedger(items, products),
		cache:    catalogCache,
	}
}

// invalidateCatalog drops cached catalog pages after any mutation that can
// change what a listing shows. Cart mutations count: they move inventory.
func (h *Handler) invalidateCatalog() {
	if h.cache != nil {
		h.cache.Invalidate()
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
