package repository

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/orderflow"
)

// OrderFilter filtros del listado general de pedidos.
type OrderFilter struct {
	Status string     // vacío = todos
	Query  string     // búsqueda parcial por nombre/local del cliente
	From   *time.Time // rango sobre delivery_date
	To     *time.Time
}

// SalesFilter filtros de la vista de ventas (pedidos entregados).
type SalesFilter struct {
	Query     string
	From      *time.Time // rango sobre delivered_at
	To        *time.Time // exclusivo al día siguiente de To
	SellerID  string
	CourierID string
}

// OrderRepository define el puerto de persistencia para Order (DIP).
//
// UpdatePartial aplica el patch como un único UPDATE parcial y devuelve la
// fila resultante: entre requests concurrentes gana la última escritura por
// campo, no por fila (contrato aceptado para esta escala).
//
// ListDelivered es la vista de ventas: una consulta viva sobre pedidos con
// status delivered, sin tabla duplicada que mantener sincronizada.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, f OrderFilter) ([]*entity.Order, error)
	ListDelivered(ctx context.Context, f SalesFilter) ([]*entity.Order, error)
	UpdatePartial(ctx context.Context, id string, patch orderflow.Patch) (*entity.Order, error)
	Delete(ctx context.Context, id string) error
}
