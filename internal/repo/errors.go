package repo

import "errors"

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")

// ErrCartItemNotFound is returned when a cart item is not found in the repository.
var ErrCartItemNotFound = errors.New("cart item not found")

// ErrInsufficientInventory is returned when an inventory adjustment would
// leave a product with negative stock. The stored value is left untouched.
var ErrInsufficientInventory = errors.New("insufficient inventory")
