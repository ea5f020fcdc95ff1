package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	pkgjwt "github.com/jhoicas/tienda-backoffice/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

// fakeUserRepo solo implementa lo que el login necesita; el resto no se usa.
type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func (r *fakeUserRepo) Create(context.Context, *entity.User) error   { return nil }
func (r *fakeUserRepo) Update(context.Context, *entity.User) error   { return nil }
func (r *fakeUserRepo) Delete(context.Context, string) error         { return nil }
func (r *fakeUserRepo) GetByID(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) List(context.Context, string) ([]*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func seededRepo(t *testing.T, status string) *fakeUserRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreta-123"), bcrypt.MinCost)
	require.NoError(t, err)
	return &fakeUserRepo{byEmail: map[string]*entity.User{
		"ana@tienda.cl": {
			ID:           "user-1",
			Name:         "Ana",
			Email:        "ana@tienda.cl",
			PasswordHash: string(hash),
			Role:         entity.RoleVendedor,
			Status:       status,
		},
	}}
}

func testUC(repo *fakeUserRepo) *AuthUseCase {
	return NewAuthUseCase(repo, JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"})
}

func TestLogin_OK(t *testing.T) {
	uc := testUC(seededRepo(t, entity.UserStatusActive))

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@tienda.cl", Password: "secreta-123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, role, isAdmin, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, entity.RoleVendedor, role)
	assert.False(t, isAdmin)

	// el usuario de la respuesta viaja normalizado
	assert.Equal(t, "user-1", out.User.SellerID)
	assert.True(t, out.User.Permissions["orders"]["create"])
	assert.False(t, out.User.Permissions["users"]["delete"])
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := testUC(seededRepo(t, entity.UserStatusActive))
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@tienda.cl", Password: "equivocada"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailDesconocido_MismoError(t *testing.T) {
	uc := testUC(seededRepo(t, entity.UserStatusActive))
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@tienda.cl", Password: "secreta-123"})
	require.ErrorIs(t, err, domain.ErrUnauthorized, "no se filtra qué emails existen")
}

func TestLogin_CuentaInactiva(t *testing.T) {
	uc := testUC(seededRepo(t, entity.UserStatusInactive))
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@tienda.cl", Password: "secreta-123"})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_AdminGeneraTokenConFlag(t *testing.T) {
	repo := seededRepo(t, entity.UserStatusActive)
	repo.byEmail["ana@tienda.cl"].Role = "admin"
	uc := testUC(repo)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@tienda.cl", Password: "secreta-123"})
	require.NoError(t, err)

	_, _, isAdmin, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.True(t, isAdmin, "el flag admin se deriva del rol al normalizar")
	assert.True(t, out.User.Permissions["users"]["delete"], "admin recibe el grant completo")
}
