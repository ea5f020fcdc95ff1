package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido. El ciclo de vida (internal/domain/orderflow) rechaza
// cualquier valor fuera de este enum.
const (
	OrderStatusPending   = "pending"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Métodos de pago aceptados.
const (
	PaymentCash     = "cash"
	PaymentTransfer = "transfer"
)

// Order representa un pedido de un cliente.
//
// Invariantes que mantiene orderflow:
//   - InvoiceSent solo puede ser true si Invoice es true.
//   - DeliveredAt es no-nulo si y solo si el pedido está (o estuvo) entregado;
//     una reversión a pending lo limpia y una nueva entrega vuelve a sellarlo.
type Order struct {
	ID            string
	ClientID      string
	ClientName    string // desnormalizado para listados y la vista de ventas
	ClientLocal   string
	SellerID      string
	CourierID     string // quién entregó (delivered_by en la tabla)
	Status        string // ver constantes OrderStatus*
	Total         decimal.Decimal
	DeliveryDate  *time.Time // fecha pactada de entrega
	DeliveredAt   *time.Time // sello real de entrega; nil si nunca se entregó
	PaymentMethod string     // cash, transfer
	Invoice       bool       // el pedido requiere factura
	InvoiceSent   bool       // la factura ya fue emitida
	Paid          bool
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem es una línea del pedido. Subtotal se recalcula siempre como
// Qty × Price; nunca se confía en el valor recibido.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Name      string
	SKU       string
	ImageURL  string
	Qty       int
	Price     decimal.Decimal
	Subtotal  decimal.Decimal
}

// ValidOrderStatus informa si s pertenece al enum de estados.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
