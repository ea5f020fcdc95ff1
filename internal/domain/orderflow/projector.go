package orderflow

import "github.com/jhoicas/tienda-backoffice/internal/domain/entity"

// ProjectSale proyecta un pedido al registro de ventas, copiando sus campos
// comerciales tal como están en este instante. Las ventas se leen como vista
// filtrada sobre los pedidos entregados, así que la proyección se usa tanto
// para mapear esos listados como para reportar la venta cuando un pedido
// entra al estado delivered.
func ProjectSale(o entity.Order) entity.SaleRecord {
	items := make([]entity.OrderItem, len(o.Items))
	copy(items, o.Items)
	return entity.SaleRecord{
		OrderID:       o.ID,
		ClientID:      o.ClientID,
		ClientName:    o.ClientName,
		ClientLocal:   o.ClientLocal,
		SellerID:      o.SellerID,
		CourierID:     o.CourierID,
		Total:         o.Total,
		DeliveryDate:  o.DeliveryDate,
		DeliveredAt:   o.DeliveredAt,
		PaymentMethod: o.PaymentMethod,
		Invoice:       o.Invoice,
		InvoiceSent:   o.InvoiceSent,
		Paid:          o.Paid,
		Items:         items,
		CreatedAt:     o.CreatedAt,
	}
}
