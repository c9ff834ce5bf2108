package handlers

import "github.com/rogerio-castellano/storefront/internal/models"

type ProductRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=100,product_name"`
	Price       string `json:"price" validate:"required,price_string"`
	Image       string `json:"image" validate:"required,min=5,max=500,url,startswith=https://"`
	Description string `json:"description" validate:"omitempty,min=10,max=1000"`
	Inventory   int    `json:"inventory" validate:"gte=0"`
	Category    string `json:"category" validate:"omitempty,min=2,max=50"`
}

type CartItemRequest struct {
	ProductID int `json:"productId" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"required,min=1,max=100"`
}

type QuantityUpdateRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1,max=100"`
}

type InventoryUpdateRequest struct {
	Inventory *int `json:"inventory" validate:"required,gte=0"`
}

// ProductResponse renders the price as a fixed two-decimal string, never a
// binary float.
type ProductResponse struct {
	Id          int    `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Description string `json:"description,omitempty"`
	Inventory   int    `json:"inventory"`
	Category    string `json:"category,omitempty"`
}

type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type ProductsSearchResult struct {
	Data       []ProductResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

type CartItemResponse struct {
	Id        int             `json:"id"`
	ProductId int             `json:"productId"`
	Quantity  int             `json:"quantity"`
	Product   ProductResponse `json:"product"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Id:          p.ID,
		Name:        p.Name,
		Price:       p.Price.StringFixed(2),
		Image:       p.Image,
		Description: p.Description,
		Inventory:   p.Inventory,
		Category:    p.Category,
	}
}

func toCartItemResponse(item models.EnrichedCartItem) CartItemResponse {
	return CartItemResponse{
		Id:        item.ID,
		ProductId: item.ProductID,
		Quantity:  item.Quantity,
		Product:   toProductResponse(item.Product),
	}
}
