package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la tienda.
type Product struct {
	ID        string
	Name      string
	SKU       string // código único
	Cost      decimal.Decimal
	Category  string
	Weight    string // presentación ("1kg", "500g"); texto libre
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
