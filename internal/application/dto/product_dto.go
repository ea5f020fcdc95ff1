package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductResponse producto expuesto por la API.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Cost      decimal.Decimal `json:"cost"`
	Category  string          `json:"category,omitempty"`
	Weight    string          `json:"weight,omitempty"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Cost     decimal.Decimal `json:"cost"`
	Category string          `json:"category"`
	Weight   string          `json:"weight"`
	ImageURL string          `json:"imageUrl"`
}

// UpdateProductRequest edición parcial de producto. Punteros nil = sin cambio.
type UpdateProductRequest struct {
	Name     *string          `json:"name"`
	SKU      *string          `json:"sku"`
	Cost     *decimal.Decimal `json:"cost"`
	Category *string          `json:"category"`
	Weight   *string          `json:"weight"`
	ImageURL *string          `json:"imageUrl"`
}
