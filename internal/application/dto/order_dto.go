package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemPayload línea de pedido tal como llega/sale por la API.
// En la entrada el subtotal se ignora y se recalcula qty × price.
type OrderItemPayload struct {
	ID        string          `json:"id,omitempty"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku,omitempty"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	Qty       int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse pedido expuesto por la API.
type OrderResponse struct {
	ID            string             `json:"id"`
	ClientID      string             `json:"clientId"`
	ClientName    string             `json:"clientName"`
	ClientLocal   string             `json:"clientLocal,omitempty"`
	SellerID      string             `json:"sellerId,omitempty"`
	CourierID     string             `json:"deliveredBy,omitempty"`
	Status        string             `json:"status"`
	Total         decimal.Decimal    `json:"total"`
	DeliveryDate  *time.Time         `json:"deliveryDate"`
	DeliveredAt   *time.Time         `json:"deliveredAt"`
	PaymentMethod string             `json:"paymentMethod,omitempty"`
	Invoice       bool               `json:"invoice"`
	InvoiceSent   bool               `json:"invoiceSent"`
	Paid          bool               `json:"paid"`
	Items         []OrderItemPayload `json:"items"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// CreateOrderRequest alta de pedido. Status vacío arranca en pending; un alta
// directa en delivered sella DeliveredAt y dispara la proyección de venta.
type CreateOrderRequest struct {
	ClientID      string             `json:"clientId"`
	ClientName    string             `json:"clientName"`
	ClientLocal   string             `json:"clientLocal"`
	SellerID      string             `json:"sellerId"`
	CourierID     string             `json:"deliveredBy"`
	Status        string             `json:"status"`
	DeliveryDate  *time.Time         `json:"deliveryDate"`
	PaymentMethod string             `json:"paymentMethod"`
	Invoice       bool               `json:"invoice"`
	Paid          bool               `json:"paid"`
	Items         []OrderItemPayload `json:"items"`
}

// PatchOrderRequest mutación parcial de pedido. Punteros nil = sin cambio.
// Status, Invoice, InvoiceSent y Paid pasan por las reglas del ciclo de vida;
// el resto son campos de paso directo.
type PatchOrderRequest struct {
	Status        *string    `json:"status"`
	Paid          *bool      `json:"paid"`
	Invoice       *bool      `json:"invoice"`
	InvoiceSent   *bool      `json:"invoiceSent"`
	CourierID     *string    `json:"deliveredBy"`
	DeliveryDate  *time.Time `json:"deliveryDate"`
	PaymentMethod *string    `json:"paymentMethod"`
}

// OrderListQuery filtros del listado de pedidos.
type OrderListQuery struct {
	Status string `query:"status"`
	Q      string `query:"q"`
	From   string `query:"from"` // YYYY-MM-DD sobre deliveryDate
	To     string `query:"to"`
}
