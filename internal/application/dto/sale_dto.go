package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleResponse venta expuesta por la API: la proyección comercial de un
// pedido entregado.
type SaleResponse struct {
	OrderID       string             `json:"id"`
	ClientID      string             `json:"clientId"`
	ClientName    string             `json:"clientName"`
	ClientLocal   string             `json:"clientLocal,omitempty"`
	SellerID      string             `json:"sellerId,omitempty"`
	CourierID     string             `json:"deliveredBy,omitempty"`
	Total         decimal.Decimal    `json:"total"`
	DeliveryDate  *time.Time         `json:"deliveryDate"`
	DeliveredAt   *time.Time         `json:"deliveredAt"`
	PaymentMethod string             `json:"paymentMethod,omitempty"`
	Invoice       bool               `json:"invoice"`
	InvoiceSent   bool               `json:"invoiceSent"`
	Paid          bool               `json:"paid"`
	Items         []OrderItemPayload `json:"items"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// SalesListQuery filtros de la vista de ventas.
type SalesListQuery struct {
	Q         string `query:"q"`
	From      string `query:"from"` // YYYY-MM-DD sobre deliveredAt
	To        string `query:"to"`   // inclusivo: se consulta hasta el día siguiente
	SellerID  string `query:"partnerId"`
	CourierID string `query:"courierId"`
}
