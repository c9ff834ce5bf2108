package models

// CartItem represents one line in the shopping cart. The quantity held
// by a cart item counts as reserved stock, already subtracted from the
// product's inventory.
type CartItem struct {
	ID        int `json:"id"`
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// EnrichedCartItem is a cart item joined with its product snapshot at
// read time. It is computed on every read and never persisted.
type EnrichedCartItem struct {
	CartItem
	Product Product `json:"product"`
}
