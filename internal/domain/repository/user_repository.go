package repository

import (
	"context"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las implementaciones devuelven usuarios ya normalizados (permissions con la
// forma completa del catálogo), nunca la fila cruda.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, role string) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}
