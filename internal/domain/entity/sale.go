package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord es la proyección comercial de un pedido entregado.
// Se deriva siempre desde Order (ventas = pedidos con status delivered);
// no existe almacenamiento propio, así que nunca queda desfasada.
type SaleRecord struct {
	OrderID       string
	ClientID      string
	ClientName    string
	ClientLocal   string
	SellerID      string
	CourierID     string
	Total         decimal.Decimal
	DeliveryDate  *time.Time
	DeliveredAt   *time.Time
	PaymentMethod string
	Invoice       bool
	InvoiceSent   bool
	Paid          bool
	Items         []OrderItem
	CreatedAt     time.Time
}
