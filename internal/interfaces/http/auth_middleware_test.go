package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	apphttp "github.com/jhoicas/tienda-backoffice/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/tienda-backoffice/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "tienda-backoffice-test"
	testExpMin    = 60
)

// fakeLoader resuelve usuarios por ID, como hace el repositorio real.
type fakeLoader struct {
	users map[string]*entity.User
}

func (f *fakeLoader) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return u.Normalize(), nil
}

func loaderWith(users ...*entity.User) *fakeLoader {
	m := make(map[string]*entity.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeLoader{users: m}
}

func vendedorUser(id string) *entity.User {
	return &entity.User{
		ID:     id,
		Name:   "Ana",
		Email:  "ana@tienda.cl",
		Role:   entity.RoleVendedor,
		Status: entity.UserStatusActive,
	}
}

// buildTestApp construye una aplicación Fiber mínima con AuthMiddleware +
// RequirePermission y un handler dummy que devuelve 200 si pasa los middlewares.
func buildTestApp(loader *fakeLoader, capability string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, loader),
		apphttp.RequirePermission(capability),
		func(c *fiber.Ctx) error {
			user := apphttp.CurrentUser(c)
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": user.Role,
			})
		},
	)
	return app
}

// tokenFor genera un JWT para el usuario indicado.
func tokenFor(t *testing.T, userID, role string, isAdmin bool) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, isAdmin, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: El usuario tiene la capacidad → HTTP 200.
func TestRequirePermission_VendedorCreaPedidos(t *testing.T) {
	loader := loaderWith(vendedorUser("user-1"))
	app := buildTestApp(loader, "orders.create")

	resp := doRequest(t, app, tokenFor(t, "user-1", entity.RoleVendedor, false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"vendedor debe poder crear pedidos según su plantilla")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, entity.RoleVendedor, body["role"])
}

// Caso 2: La capacidad está denegada → HTTP 403 Forbidden.
func TestRequirePermission_VendedorBloqueadoEnUsuarios(t *testing.T) {
	loader := loaderWith(vendedorUser("user-1"))
	app := buildTestApp(loader, "users.delete")

	resp := doRequest(t, app, tokenFor(t, "user-1", entity.RoleVendedor, false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
	assert.Contains(t, string(body), "acción no permitida")
}

// Caso 3: Admin pasa por cualquier capacidad.
func TestRequirePermission_AdminPasaSiempre(t *testing.T) {
	admin := vendedorUser("admin-1")
	admin.Role = entity.RoleAdmin
	loader := loaderWith(admin)
	app := buildTestApp(loader, "users.delete")

	resp := doRequest(t, app, tokenFor(t, "admin-1", entity.RoleAdmin, true))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 4: El permiso efectivo sale de la DB, no del token. Un token que dice
// admin no alcanza si la fila dice vendedor.
func TestRequirePermission_ElGrantDeLaDBManda(t *testing.T) {
	loader := loaderWith(vendedorUser("user-1"))
	app := buildTestApp(loader, "users.delete")

	resp := doRequest(t, app, tokenFor(t, "user-1", entity.RoleAdmin, true))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"los claims del token no otorgan permisos; el usuario cargado decide")
}

// Caso 5: Capacidad fuera del catálogo deniega aunque el rol sea amplio.
func TestRequirePermission_CapacidadDesconocidaDeniega(t *testing.T) {
	supervisor := vendedorUser("user-1")
	supervisor.Role = entity.RoleSupervisor
	loader := loaderWith(supervisor)
	app := buildTestApp(loader, "orders.aprobar")

	resp := doRequest(t, app, tokenFor(t, "user-1", entity.RoleSupervisor, false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeaderRetorna401(t *testing.T) {
	app := buildTestApp(loaderWith(), "orders.view")
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalidoRetorna401(t *testing.T) {
	app := buildTestApp(loaderWith(), "orders.view")
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_UsuarioEliminadoRetorna401(t *testing.T) {
	// token válido pero el usuario ya no está en la DB
	app := buildTestApp(loaderWith(), "orders.view")
	resp := doRequest(t, app, tokenFor(t, "fantasma", entity.RoleVendedor, false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNKNOWN_USER")
}

func TestAuthMiddleware_CuentaInactivaRetorna403(t *testing.T) {
	inactive := vendedorUser("user-1")
	inactive.Status = entity.UserStatusInactive
	app := buildTestApp(loaderWith(inactive), "orders.view")

	resp := doRequest(t, app, tokenFor(t, "user-1", entity.RoleVendedor, false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuthMiddleware_CargaUsuarioNormalizado(t *testing.T) {
	loader := loaderWith(vendedorUser("user-1"))
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, loader), func(c *fiber.Ctx) error {
		user := apphttp.CurrentUser(c)
		return c.JSON(fiber.Map{
			"id":       user.ID,
			"sellerId": user.SellerID,
			"can":      user.Can("orders.create", ""),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, "user-1", entity.RoleVendedor, false))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "user-1", body["id"])
	assert.Equal(t, "user-1", body["sellerId"], "SellerID por defecto es el propio ID")
	assert.Equal(t, true, body["can"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAnyPermission
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAnyPermission_BastaUnaCapacidad(t *testing.T) {
	repartidor := vendedorUser("user-1")
	repartidor.Role = entity.RoleRepartidor
	loader := loaderWith(repartidor)

	app := fiber.New()
	app.Patch("/orders/:id",
		apphttp.AuthMiddleware(testJWTSecret, loader),
		apphttp.RequireAnyPermission("orders.edit", "orders.markDelivered"),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	req := httptest.NewRequest(http.MethodPatch, "/orders/ord-1", nil)
	req.Header.Set("Authorization", tokenFor(t, "user-1", entity.RoleRepartidor, false))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"repartidor tiene orders.markDelivered y eso alcanza")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg: integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, "user-1", entity.RoleSupervisor, false, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, isAdmin, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, "user-1", userID)
	assert.Equal(t, entity.RoleSupervisor, role)
	assert.False(t, isAdmin)
}

func TestJWT_TokenExpiradoRetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, "user-1", "admin", true, testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrectoRetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, "user-1", "admin", true, testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
