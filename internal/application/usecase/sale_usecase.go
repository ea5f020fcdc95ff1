package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/orderflow"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

// SaleUseCase expone la contabilidad de ventas. No hay tabla de ventas: el
// listado es una consulta viva sobre pedidos entregados y cada fila se mapea
// con la misma proyección que se dispara al entregar, así que la vista nunca
// queda desfasada respecto de ediciones posteriores del pedido.
type SaleUseCase struct {
	orders repository.OrderRepository
}

// NewSaleUseCase construye el caso de uso de ventas.
func NewSaleUseCase(orders repository.OrderRepository) *SaleUseCase {
	return &SaleUseCase{orders: orders}
}

// List lista las ventas con búsqueda, rango de fechas de entrega y filtros
// por vendedor y repartidor. El límite superior del rango es inclusivo: se
// consulta hasta el día siguiente exclusive.
func (uc *SaleUseCase) List(ctx context.Context, q dto.SalesListQuery) ([]*dto.SaleResponse, error) {
	var to *time.Time
	if parsed := parseDay(q.To); parsed != nil {
		next := parsed.AddDate(0, 0, 1)
		to = &next
	}
	orders, err := uc.orders.ListDelivered(ctx, repository.SalesFilter{
		Query:     q.Q,
		From:      parseDay(q.From),
		To:        to,
		SellerID:  q.SellerID,
		CourierID: q.CourierID,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toSaleResponse(orderflow.ProjectSale(*o)))
	}
	return out, nil
}

// TogglePaid invierte el flag de pago de la venta (el pedido subyacente).
func (uc *SaleUseCase) TogglePaid(ctx context.Context, orderID string) (*dto.SaleResponse, error) {
	return uc.toggle(ctx, orderID, orderflow.TogglePaid)
}

// ToggleInvoiceSent invierte el flag de factura emitida respetando el
// invariante: un pedido sin factura requerida nunca queda con factura enviada.
func (uc *SaleUseCase) ToggleInvoiceSent(ctx context.Context, orderID string) (*dto.SaleResponse, error) {
	return uc.toggle(ctx, orderID, orderflow.ToggleInvoiceSent)
}

func (uc *SaleUseCase) toggle(ctx context.Context, orderID string, fn func(entity.Order) (entity.Order, orderflow.Patch)) (*dto.SaleResponse, error) {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	_, patch := fn(*order)
	updated, err := uc.orders.UpdatePartial(ctx, orderID, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(orderflow.ProjectSale(*updated)), nil
}

func toSaleResponse(s entity.SaleRecord) *dto.SaleResponse {
	items := make([]dto.OrderItemPayload, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.OrderItemPayload{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			SKU:       it.SKU,
			ImageURL:  it.ImageURL,
			Qty:       it.Qty,
			Price:     it.Price,
			Subtotal:  it.Subtotal,
		})
	}
	return &dto.SaleResponse{
		OrderID:       s.OrderID,
		ClientID:      s.ClientID,
		ClientName:    s.ClientName,
		ClientLocal:   s.ClientLocal,
		SellerID:      s.SellerID,
		CourierID:     s.CourierID,
		Total:         s.Total,
		DeliveryDate:  s.DeliveryDate,
		DeliveredAt:   s.DeliveredAt,
		PaymentMethod: s.PaymentMethod,
		Invoice:       s.Invoice,
		InvoiceSent:   s.InvoiceSent,
		Paid:          s.Paid,
		Items:         items,
		CreatedAt:     s.CreatedAt,
	}
}
