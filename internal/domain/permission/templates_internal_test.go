package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTemplates debe rechazar overrides que referencien capacidades fuera del
// catálogo: es un error de programación y tiene que reventar al arrancar, no
// durante un request.
func TestBuildTemplates_RechazaCapacidadDesconocida(t *testing.T) {
	_, err := buildTemplates(map[string]map[string]map[string]bool{
		"auditor": {ModuleOrders: {"aprobar": true}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orders.aprobar")

	_, err = buildTemplates(map[string]map[string]map[string]bool{
		"auditor": {"reportes": {ActionView: true}},
	})
	require.Error(t, err)
}

func TestBuildTemplates_IncluyeAdminCompleto(t *testing.T) {
	templates, err := buildTemplates(nil)
	require.NoError(t, err)
	assert.Equal(t, FullGrant(), templates["admin"])
}

// Los overrides declarados en el paquete tienen que construir sin error;
// este test congela esa garantía ante futuros cambios del catálogo.
func TestRoleOverrides_ValidosContraElCatalogo(t *testing.T) {
	_, err := buildTemplates(roleOverrides)
	require.NoError(t, err)
}
