package repository

import (
	"context"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// ClientFilter filtros del listado de clientes.
type ClientFilter struct {
	OwnerID string // solo la cartera de este vendedor; vacío = todos
	Query   string // búsqueda parcial por nombre, local, email, dirección o ciudad
}

// ClientRepository define el puerto de persistencia para Client (DIP).
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	List(ctx context.Context, f ClientFilter) ([]*entity.Client, error)
	Delete(ctx context.Context, id string) error
}
