package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/orderflow"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, client_id, client_name, client_local, seller_id, delivered_by,
	status, total, delivery_date, delivered_at, payment_method,
	invoice, invoice_sent, paid, created_at, updated_at`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// Las mutaciones de estado/flags llegan como orderflow.Patch y se aplican en
// un único UPDATE parcial: entre requests concurrentes gana la última
// escritura por campo.
type OrderRepo struct {
	pool *pgxpool.Pool
}

// NewOrderRepository construye el adaptador de persistencia para pedidos.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// Create persiste el pedido y sus líneas en una transacción.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO orders (id, client_id, client_name, client_local, seller_id, delivered_by,
			status, total, delivery_date, delivered_at, payment_method,
			invoice, invoice_sent, paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = tx.Exec(ctx, query,
		order.ID, nullIfEmpty(order.ClientID), order.ClientName, nullIfEmpty(order.ClientLocal),
		nullIfEmpty(order.SellerID), nullIfEmpty(order.CourierID),
		order.Status, order.Total, order.DeliveryDate, order.DeliveredAt,
		nullIfEmpty(order.PaymentMethod), order.Invoice, order.InvoiceSent, order.Paid,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range order.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, name, sku, image_url, qty, price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			it.ID, order.ID, nullIfEmpty(it.ProductID), it.Name, nullIfEmpty(it.SKU),
			nullIfEmpty(it.ImageURL), it.Qty, it.Price, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// GetByID obtiene un pedido con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	if err := r.attachItems(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// List lista pedidos (más recientes primero) con filtros de estado, búsqueda
// por cliente y rango sobre la fecha pactada de entrega.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(client_name ILIKE $%d OR client_local ILIKE $%d)", n, n))
	}
	if f.From != nil {
		args = append(args, *f.From)
		where = append(where, fmt.Sprintf("delivery_date >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where = append(where, fmt.Sprintf("delivery_date <= $%d", len(args)))
	}
	query := `SELECT ` + orderColumns + ` FROM orders` + buildWhere(where) + ` ORDER BY created_at DESC`
	return r.queryOrders(ctx, query, args...)
}

// ListDelivered es la vista de ventas: pedidos con status delivered, más
// recientes primero según la entrega real. No existe tabla de ventas aparte.
func (r *OrderRepo) ListDelivered(ctx context.Context, f repository.SalesFilter) ([]*entity.Order, error) {
	args := []any{entity.OrderStatusDelivered}
	where := []string{"status = $1"}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(client_name ILIKE $%d OR client_local ILIKE $%d)", n, n))
	}
	if f.From != nil {
		args = append(args, *f.From)
		where = append(where, fmt.Sprintf("delivered_at >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where = append(where, fmt.Sprintf("delivered_at < $%d", len(args)))
	}
	if f.SellerID != "" {
		args = append(args, f.SellerID)
		where = append(where, fmt.Sprintf("seller_id = $%d", len(args)))
	}
	if f.CourierID != "" {
		args = append(args, f.CourierID)
		where = append(where, fmt.Sprintf("delivered_by = $%d", len(args)))
	}
	query := `SELECT ` + orderColumns + ` FROM orders` + buildWhere(where) +
		` ORDER BY delivered_at DESC NULLS LAST, delivery_date DESC NULLS LAST`
	return r.queryOrders(ctx, query, args...)
}

// UpdatePartial aplica el patch como un único UPDATE y devuelve la fila
// resultante con sus líneas. Un patch vacío solo relee el pedido.
func (r *OrderRepo) UpdatePartial(ctx context.Context, id string, patch orderflow.Patch) (*entity.Order, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}

	sets := []string{"updated_at = now()"}
	args := []any{id}
	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Status != nil {
		addSet("status", *patch.Status)
	}
	if patch.DeliveredAt != nil {
		addSet("delivered_at", *patch.DeliveredAt)
	} else if patch.ClearDeliveredAt {
		sets = append(sets, "delivered_at = NULL")
	}
	if patch.Paid != nil {
		addSet("paid", *patch.Paid)
	}
	if patch.Invoice != nil {
		addSet("invoice", *patch.Invoice)
	}
	if patch.InvoiceSent != nil {
		addSet("invoice_sent", *patch.InvoiceSent)
	}
	if patch.CourierID != nil {
		addSet("delivered_by", nullIfEmpty(*patch.CourierID))
	}
	if patch.DeliveryDate != nil {
		addSet("delivery_date", *patch.DeliveryDate)
	}
	if patch.PaymentMethod != nil {
		addSet("payment_method", nullIfEmpty(*patch.PaymentMethod))
	}

	query := `UPDATE orders SET ` + joinSets(sets) + ` WHERE id = $1 RETURNING ` + orderColumns
	o, err := scanOrder(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update order: %w", err)
	}
	if err := r.attachItems(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// Delete elimina un pedido; las líneas caen por ON DELETE CASCADE.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func (r *OrderRepo) queryOrders(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// attachItems carga las líneas de todos los pedidos en una sola consulta.
func (r *OrderRepo) attachItems(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, 0, len(orders))
	byID := make(map[string]*entity.Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, product_id, name, sku, image_url, qty, price, subtotal
		FROM order_items WHERE order_id = ANY($1) ORDER BY name ASC`, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it                    entity.OrderItem
			productID, sku, image *string
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &productID, &it.Name, &sku, &image, &it.Qty, &it.Price, &it.Subtotal); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		it.ProductID = orEmpty(productID)
		it.SKU = orEmpty(sku)
		it.ImageURL = orEmpty(image)
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o                                                   entity.Order
		clientID, clientLocal, sellerID, courierID, payment *string
	)
	if err := row.Scan(
		&o.ID, &clientID, &o.ClientName, &clientLocal, &sellerID, &courierID,
		&o.Status, &o.Total, &o.DeliveryDate, &o.DeliveredAt, &payment,
		&o.Invoice, &o.InvoiceSent, &o.Paid, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	o.ClientID = orEmpty(clientID)
	o.ClientLocal = orEmpty(clientLocal)
	o.SellerID = orEmpty(sellerID)
	o.CourierID = orEmpty(courierID)
	o.PaymentMethod = orEmpty(payment)
	return &o, nil
}
