package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	repo "github.com/rogerio-castellano/storefront/internal/repo"
)

// GetCartHandler godoc
// @Summary List cart items enriched with their products
// @Tags cart
// @Produce json
// @Success 200 {array} CartItemResponse
// @Failure 500 {string} string "Internal error"
// @Router /api/cart [get]
func (h *Handler) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.ledger.ListCart()
	if err != nil {
		log.Printf("listing cart: %v", err)
		http.Error(w, "could not fetch cart", http.StatusInternalServerError)
		return
	}

	resp := make([]CartItemResponse, len(items))
	for i, item := range items {
		resp[i] = toCartItemResponse(item)
	}
	writeJSON(w, http.StatusOK, resp)
}

// AddToCartHandler godoc
// @Summary Add a product to the cart, reserving its stock
// @Tags cart
// @Accept json
// @Produce json
// @Param item body CartItemRequest true "Product and quantity"
// @Success 200 {object} CartItemResponse
// @Failure 400 {array} FieldValidationError
// @Failure 404 {string} string "Product not found"
// @Failure 500 {string} string "Internal error"
// @Router /api/cart [post]
func (h *Handler) AddToCartHandler(w http.ResponseWriter, r *http.Request) {
	var req CartItemRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if validationErrors := validateStruct(req); len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	item, err := h.ledger.AddToCart(req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrInsufficientInventory):
			http.Error(w, "insufficient inventory", http.StatusBadRequest)
		default:
			log.Printf("adding product %d to cart: %v", req.ProductID, err)
			http.Error(w, "could not add to cart", http.StatusInternalServerError)
		}
		return
	}

	h.invalidateCatalog()
	writeJSON(w, http.StatusOK, toCartItemResponse(item))
}

// UpdateCartItemHandler godoc
// @Summary Change a cart item's quantity
// @Tags cart
// @Accept json
// @Produce json
// @Param id path int true "Cart item ID"
// @Param quantity body QuantityUpdateRequest true "New quantity"
// @Success 200 {object} CartItemResponse
// @Failure 400 {array} FieldValidationError
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /api/cart/{id} [patch]
func (h *Handler) UpdateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid cart item ID", http.StatusBadRequest)
		return
	}

	var req QuantityUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if validationErrors := validateStruct(req); len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	item, err := h.ledger.UpdateQuantity(id, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrCartItemNotFound):
			http.Error(w, "cart item not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrInsufficientInventory):
			http.Error(w, "insufficient inventory", http.StatusBadRequest)
		default:
			log.Printf("updating cart item %d: %v", id, err)
			http.Error(w, "could not update cart item", http.StatusInternalServerError)
		}
		return
	}

	h.invalidateCatalog()
	writeJSON(w, http.StatusOK, toCartItemResponse(item))
}

// RemoveCartItemHandler godoc
// @Summary Remove a cart item, releasing its reservation
// @Tags cart
// @Param id path int true "Cart item ID"
// @Success 204 "Removed"
// @Failure 400 {string} string "Invalid ID"
// @Failure 500 {string} string "Internal error"
// @Router /api/cart/{id} [delete]
func (h *Handler) RemoveCartItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid cart item ID", http.StatusBadRequest)
		return
	}

	if err := h.ledger.RemoveFromCart(id); err != nil {
		log.Printf("removing cart item %d: %v", id, err)
		http.Error(w, "could not remove cart item", http.StatusInternalServerError)
		return
	}

	h.invalidateCatalog()
	w.WriteHeader(http.StatusNoContent)
}
