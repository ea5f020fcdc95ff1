package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/permission"
)

// fakeUserRepo repositorio de usuarios en memoria, indexado por ID y email.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, role string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if role == "" || u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func TestUserCreate_DefaultsYNormalizacion(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo)

	out, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Email:    "ana@tienda.cl",
		Password: "secreta-123",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleVendedor, out.Role, "rol por defecto")
	assert.Equal(t, "ana@tienda.cl", out.Name, "sin nombre se usa el email")
	assert.Equal(t, out.ID, out.SellerID, "SellerID por defecto es el propio ID")
	assert.Equal(t, permission.TemplateForRole(entity.RoleVendedor), out.Permissions)

	stored, _ := repo.GetByID(context.Background(), out.ID)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreta-123", stored.PasswordHash, "el password nunca se guarda plano")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta-123")))
}

func TestUserCreate_PermissionsCrudasSeNormalizan(t *testing.T) {
	uc := NewUserUseCase(newFakeUserRepo())

	out, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Email:       "ana@tienda.cl",
		Password:    "secreta-123",
		Role:        entity.RoleVendedor,
		Permissions: json.RawMessage(`{"orders":{"markDelivered":true},"modulo-viejo":{"x":true}}`),
	})
	require.NoError(t, err)

	assert.True(t, out.Permissions["orders"]["markDelivered"], "la hoja guardada pisa la plantilla")
	assert.True(t, out.Permissions["orders"]["create"], "las demás hojas vienen de la plantilla")
	_, ok := out.Permissions["modulo-viejo"]
	assert.False(t, ok, "claves fuera del catálogo se descartan")
}

func TestUserCreate_EmailDuplicado(t *testing.T) {
	uc := NewUserUseCase(newFakeUserRepo())
	_, err := uc.Create(context.Background(), dto.CreateUserRequest{Email: "ana@tienda.cl", Password: "secreta-123"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), dto.CreateUserRequest{Email: "ana@tienda.cl", Password: "otra-clave-99"})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserCreate_RolAdminDerivaFlag(t *testing.T) {
	uc := NewUserUseCase(newFakeUserRepo())
	out, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Email:    "jefa@tienda.cl",
		Password: "secreta-123",
		Role:     "Admin", // con mayúscula, como llega de formularios viejos
	})
	require.NoError(t, err)
	assert.True(t, out.IsAdmin, "rol admin implica el flag aunque no venga explícito")
}

func TestUserUpdate_CambioDeRolRenormaliza(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo)

	created, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Email:    "ana@tienda.cl",
		Password: "secreta-123",
		Role:     entity.RoleVendedor,
	})
	require.NoError(t, err)

	// cambio de rol solo: el grant guardado está completo, así que sus hojas
	// explícitas siguen mandando sobre la plantilla nueva
	role := entity.RoleRepartidor
	out, err := uc.Update(context.Background(), created.ID, dto.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleRepartidor, out.Role)
	assert.False(t, out.Permissions["orders"]["markDelivered"], "el vendedor tenía la hoja en false y se conserva")

	// cambio de rol con grant parcial: los huecos se rellenan con la plantilla
	// del rol nuevo
	out, err = uc.Update(context.Background(), created.ID, dto.UpdateUserRequest{
		Permissions: json.RawMessage(`{"users":{"view":true}}`),
	})
	require.NoError(t, err)
	assert.True(t, out.Permissions["users"]["view"])
	assert.True(t, out.Permissions["orders"]["markDelivered"], "hueco rellenado con la plantilla de repartidor")
}

func TestUserGetByID_NoEncontrado(t *testing.T) {
	uc := NewUserUseCase(newFakeUserRepo())
	_, err := uc.GetByID(context.Background(), "no-existe")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
