package permission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tienda-backoffice/internal/domain/permission"
)

func TestAllowed_AdminPasaSiempre(t *testing.T) {
	// incluso con grant vacío y rutas absurdas
	assert.True(t, permission.Allowed(nil, true, "orders", "edit"))
	assert.True(t, permission.Allowed(permission.EmptyGrant(), true, "lo-que-sea", "nada"))
	assert.True(t, permission.Allowed(nil, true, "", ""))
}

func TestAllowed_FormaRutaYFormaTokens(t *testing.T) {
	g := permission.Normalize(nil, "vendedor")
	assert.True(t, permission.Allowed(g, false, "orders", "edit"))
	assert.True(t, permission.Allowed(g, false, "orders.edit", ""))
	assert.False(t, permission.Allowed(g, false, "users", "delete"))
	assert.False(t, permission.Allowed(g, false, "users.delete", ""))
}

func TestAllowed_FallaCerrado(t *testing.T) {
	g := permission.FullGrant()
	assert.False(t, permission.Allowed(g, false, "", ""), "ruta vacía deniega")
	assert.False(t, permission.Allowed(g, false, "orders", ""), "acción vacía deniega")
	assert.False(t, permission.Allowed(g, false, "", "edit"), "módulo vacío deniega")
	assert.False(t, permission.Allowed(g, false, "reportes", "view"), "módulo desconocido deniega")
	assert.False(t, permission.Allowed(g, false, "orders", "aprobar"), "acción desconocida deniega")
	assert.False(t, permission.Allowed(nil, false, "orders", "view"), "grant nil deniega")
}

func TestAnyAllowed(t *testing.T) {
	g := permission.Normalize(nil, "repartidor")
	assert.True(t, permission.AnyAllowed(g, false, []string{"orders.edit", "orders.markDelivered"}))
	assert.True(t, permission.AnyAllowed(g, false, []string{"users.delete", "orders.view"}))
	assert.False(t, permission.AnyAllowed(g, false, []string{"users.delete", "sales.togglePaid"}))
	assert.False(t, permission.AnyAllowed(g, false, nil), "lista vacía deniega")
	assert.True(t, permission.AnyAllowed(nil, true, nil), "salvo para admin")
}
