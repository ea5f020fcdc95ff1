package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/orderflow"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
	"github.com/jhoicas/tienda-backoffice/pkg/logger"
)

// SaleRecorder recibe la proyección de venta cuando un pedido entra al estado
// delivered. Su fallo se registra y nunca bloquea la mutación del pedido: el
// pedido es la fuente autoritativa, el registro de la venta es best-effort.
type SaleRecorder interface {
	Record(ctx context.Context, sale entity.SaleRecord) error
}

// OrderUseCase orquesta el ciclo de vida de pedidos: creación con líneas
// saneadas, mutaciones parciales gobernadas por orderflow y disparo de la
// proyección de venta al entrar a delivered.
type OrderUseCase struct {
	repo     repository.OrderRepository
	recorder SaleRecorder
	log      *logger.Logger
	now      func() time.Time
}

// NewOrderUseCase construye el caso de uso de pedidos.
func NewOrderUseCase(repo repository.OrderRepository, recorder SaleRecorder, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{repo: repo, recorder: recorder, log: log, now: time.Now}
}

// Create registra un pedido. Las cantidades y subtotales de las líneas se
// recalculan siempre; el total sale de la suma de subtotales. Un alta directa
// en delivered sella DeliveredAt y dispara la proyección de venta.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.ClientID == "" && in.ClientName == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.OrderStatusPending
	}
	if !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	now := uc.now()
	orderID := uuid.New().String()
	items := make([]entity.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ProductID: it.ProductID,
			Name:      it.Name,
			SKU:       it.SKU,
			ImageURL:  it.ImageURL,
			Qty:       it.Qty,
			Price:     it.Price,
		})
	}
	items = orderflow.NormalizeItems(items)

	order := &entity.Order{
		ID:            orderID,
		ClientID:      in.ClientID,
		ClientName:    in.ClientName,
		ClientLocal:   in.ClientLocal,
		SellerID:      in.SellerID,
		CourierID:     in.CourierID,
		Status:        status,
		Total:         orderflow.ComputeTotal(items),
		DeliveryDate:  in.DeliveryDate,
		PaymentMethod: in.PaymentMethod,
		Invoice:       in.Invoice,
		Paid:          in.Paid,
		Items:         items,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if status == entity.OrderStatusDelivered {
		stamp := now
		order.DeliveredAt = &stamp
	}

	if err := uc.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	if order.Status == entity.OrderStatusDelivered {
		uc.recordSale(ctx, *order)
	}
	return toOrderResponse(order), nil
}

// GetByID obtiene un pedido por ID.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// List lista pedidos con filtros de estado, búsqueda y rango de fecha pactada.
func (uc *OrderUseCase) List(ctx context.Context, q dto.OrderListQuery) ([]*dto.OrderResponse, error) {
	if q.Status != "" && !entity.ValidOrderStatus(q.Status) {
		return nil, domain.ErrInvalidStatus
	}
	orders, err := uc.repo.List(ctx, repository.OrderFilter{
		Status: q.Status,
		Query:  q.Q,
		From:   parseDay(q.From),
		To:     parseDay(q.To),
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// Patch aplica una mutación parcial. Status pasa por el grafo de transiciones
// (incluido el sellado/limpieza de DeliveredAt), los flags por las reglas de
// factura/pago, y el resto de campos son de paso directo. Todo se persiste en
// un único UPDATE parcial; si el pedido entra a delivered se dispara la
// proyección de venta después de confirmar la escritura.
func (uc *OrderUseCase) Patch(ctx context.Context, id string, in dto.PatchOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	current := *order
	wasDelivered := current.Status == entity.OrderStatusDelivered
	patch := orderflow.Patch{
		CourierID:     in.CourierID,
		DeliveryDate:  in.DeliveryDate,
		PaymentMethod: in.PaymentMethod,
	}

	if in.Status != nil {
		next, p, err := orderflow.ApplyStatusTransition(current, *in.Status, uc.now())
		if err != nil {
			return nil, err
		}
		current = next
		patch = patch.Merge(p)
	}
	if in.Invoice != nil {
		next, p := orderflow.SetInvoice(current, *in.Invoice)
		current = next
		patch = patch.Merge(p)
	}
	if in.InvoiceSent != nil {
		next, p := orderflow.SetInvoiceSent(current, *in.InvoiceSent)
		current = next
		patch = patch.Merge(p)
	}
	if in.Paid != nil {
		next, p := orderflow.SetPaid(current, *in.Paid)
		current = next
		patch = patch.Merge(p)
	}

	updated, err := uc.repo.UpdatePartial(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	if !wasDelivered && updated.Status == entity.OrderStatusDelivered {
		uc.recordSale(ctx, *updated)
	}
	return toOrderResponse(updated), nil
}

// Delete elimina un pedido por ID.
func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// recordSale proyecta y reporta la venta. Best-effort: ante fallo solo se
// deja constancia en el log, el pedido ya quedó persistido como entregado y
// esa escritura manda.
func (uc *OrderUseCase) recordSale(ctx context.Context, order entity.Order) {
	sale := orderflow.ProjectSale(order)
	if uc.recorder == nil {
		return
	}
	if err := uc.recorder.Record(ctx, sale); err != nil {
		uc.log.Warn().Err(err).
			Str("order_id", sale.OrderID).
			Msg("no se pudo registrar la venta; el pedido queda entregado igual")
	}
}

func parseDay(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemPayload, 0, len(o.Items))
	for _, it := range o.Items {
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
	return &dto.OrderResponse{
		ID:            o.ID,
		ClientID:      o.ClientID,
		ClientName:    o.ClientName,
		ClientLocal:   o.ClientLocal,
		SellerID:      o.SellerID,
		CourierID:     o.CourierID,
		Status:        o.Status,
		Total:         o.Total,
		DeliveryDate:  o.DeliveryDate,
		DeliveredAt:   o.DeliveredAt,
		PaymentMethod: o.PaymentMethod,
		Invoice:       o.Invoice,
		InvoiceSent:   o.InvoiceSent,
		Paid:          o.Paid,
		Items:         items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// LogSaleRecorder implementación por defecto de SaleRecorder: deja la venta
// en el log estructurado. Suficiente mientras ventas sea una vista filtrada
// sobre pedidos y no una tabla propia.
type LogSaleRecorder struct {
	log *logger.Logger
}

// NewLogSaleRecorder construye el registrador de ventas sobre el logger.
func NewLogSaleRecorder(log *logger.Logger) *LogSaleRecorder {
	return &LogSaleRecorder{log: log}
}

// Record reporta la venta proyectada.
func (r *LogSaleRecorder) Record(_ context.Context, sale entity.SaleRecord) error {
	evt := r.log.Info().
		Str("order_id", sale.OrderID).
		Str("client", sale.ClientName).
		Str("seller_id", sale.SellerID).
		Str("total", sale.Total.String()).
		Bool("paid", sale.Paid).
		Bool("invoice", sale.Invoice)
	if sale.DeliveredAt != nil {
		evt = evt.Time("delivered_at", *sale.DeliveredAt)
	}
	evt.Msg("pedido entregado, venta registrada")
	return nil
}
