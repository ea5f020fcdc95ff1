package permission_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-backoffice/internal/domain/permission"
)

// assertGrantShape verifica la propiedad central del normalizador: el grant
// resultante tiene exactamente las claves del catálogo, todas booleanas.
func assertGrantShape(t *testing.T, g permission.Grant) {
	t.Helper()
	require.Len(t, g, len(permission.Catalog), "el grant debe tener un módulo por entrada del catálogo")
	for _, mod := range permission.Catalog {
		actions, ok := g[mod.Name]
		require.True(t, ok, "falta el módulo %q", mod.Name)
		require.Len(t, actions, len(mod.Actions), "módulo %q con acciones de más o de menos", mod.Name)
		for _, a := range mod.Actions {
			_, ok := actions[a.Name]
			assert.True(t, ok, "falta la acción %s.%s", mod.Name, a.Name)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Plantillas por rol
// ──────────────────────────────────────────────────────────────────────────────

func TestTemplateForRole_AdminTodoEnTrue(t *testing.T) {
	tpl := permission.TemplateForRole("admin")
	assertGrantShape(t, tpl)
	for mod, actions := range tpl {
		for a, v := range actions {
			assert.True(t, v, "admin debe tener %s.%s en true", mod, a)
		}
	}
}

func TestTemplateForRole_RolDesconocidoTodoEnFalse(t *testing.T) {
	for _, role := range []string{"cliente-final", "", "  ", "superuser"} {
		tpl := permission.TemplateForRole(role)
		assertGrantShape(t, tpl)
		for mod, actions := range tpl {
			for a, v := range actions {
				assert.False(t, v, "rol %q debe tener %s.%s en false", role, mod, a)
			}
		}
	}
}

func TestTemplateForRole_IgnoraMayusculasYEspacios(t *testing.T) {
	assert.Equal(t, permission.TemplateForRole("vendedor"), permission.TemplateForRole("  Vendedor "))
	assert.Equal(t, permission.FullGrant(), permission.TemplateForRole("ADMIN"))
}

func TestTemplateForRole_Vendedor(t *testing.T) {
	tpl := permission.TemplateForRole("vendedor")
	assert.True(t, tpl["orders"]["create"])
	assert.True(t, tpl["sales"]["togglePaid"])
	assert.False(t, tpl["orders"]["markDelivered"], "el vendedor no marca entregas")
	assert.False(t, tpl["users"]["view"])
	assert.False(t, tpl["products"]["delete"])
}

func TestTemplateForRole_Repartidor(t *testing.T) {
	tpl := permission.TemplateForRole("repartidor")
	assert.True(t, tpl["orders"]["markDelivered"])
	assert.True(t, tpl["sales"]["view"])
	assert.False(t, tpl["sales"]["togglePaid"])
	assert.False(t, tpl["users"]["create"])
}

func TestTemplateForRole_DevuelveCopia(t *testing.T) {
	a := permission.TemplateForRole("supervisor")
	a["orders"]["delete"] = true
	b := permission.TemplateForRole("supervisor")
	assert.False(t, b["orders"]["delete"], "mutar la copia no debe tocar la plantilla")
}

// ──────────────────────────────────────────────────────────────────────────────
// Normalize: merge por hoja y proyección sobre el catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalize_NilUsaPlantillaDelRol(t *testing.T) {
	g := permission.Normalize(nil, "vendedor")
	assert.Equal(t, permission.TemplateForRole("vendedor"), g)
}

func TestNormalize_HojaGuardadaPisaLaPlantilla(t *testing.T) {
	raw := permission.Grant{
		"users":  {"delete": false},
		"orders": {"edit": true},
	}
	g := permission.Normalize(raw, "vendedor")
	assertGrantShape(t, g)
	assert.True(t, g["orders"]["edit"])
	assert.False(t, g["users"]["delete"])
	// las hojas no mencionadas conservan la plantilla
	assert.True(t, g["clients"]["view"])
	assert.True(t, g["sales"]["togglePaid"])
}

func TestNormalize_MergePorHojaNoReemplazaElModulo(t *testing.T) {
	// solo se menciona orders.view; el resto del módulo orders debe venir de
	// la plantilla, no quedar vacío
	raw := map[string]any{"orders": map[string]any{"view": false}}
	g := permission.Normalize(raw, "vendedor")
	assert.False(t, g["orders"]["view"])
	assert.True(t, g["orders"]["create"], "las hojas no mencionadas mantienen la plantilla")
}

func TestNormalize_DescartaClavesFueraDelCatalogo(t *testing.T) {
	raw := map[string]any{
		"reportes": map[string]any{"view": true},
		"orders":   map[string]any{"aprobar": true, "view": true},
	}
	g := permission.Normalize(raw, "")
	assertGrantShape(t, g)
	_, ok := g["reportes"]
	assert.False(t, ok, "módulos fuera del catálogo se descartan")
	_, ok = g["orders"]["aprobar"]
	assert.False(t, ok, "acciones fuera del catálogo se descartan")
	assert.True(t, g["orders"]["view"])
}

func TestNormalize_JSONCrudoDeLaColumna(t *testing.T) {
	raw := []byte(`{"orders":{"edit":true,"delete":"1"},"sales":{"view":0}}`)
	g := permission.Normalize(raw, "repartidor")
	assertGrantShape(t, g)
	assert.True(t, g["orders"]["edit"])
	assert.True(t, g["orders"]["delete"], `"1" cuenta como afirmativo`)
	assert.False(t, g["sales"]["view"], "0 deniega")
}

func TestNormalize_EntradaBasuraEquivaleAVacio(t *testing.T) {
	cases := map[string]any{
		"json roto":            []byte(`{"orders":`),
		"array":                []byte(`[1,2,3]`),
		"escalar":              []byte(`42`),
		"string no-json":       "ni siquiera es json",
		"raw message invalido": json.RawMessage(`{"truncado`),
		"tipo inesperado":      3.14,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			g := permission.Normalize(raw, "supervisor")
			assert.Equal(t, permission.TemplateForRole("supervisor"), g)
		})
	}
}

func TestNormalize_HojasNoBooleanasDenieganSalvoAfirmativas(t *testing.T) {
	raw := map[string]any{
		"orders": map[string]any{
			"view":   "true",
			"create": "yes",       // no es afirmativo inequívoco
			"edit":   float64(1),  // número JSON
			"delete": []any{true}, // tipo absurdo
		},
	}
	g := permission.Normalize(raw, "")
	assert.True(t, g["orders"]["view"])
	assert.False(t, g["orders"]["create"])
	assert.True(t, g["orders"]["edit"])
	assert.False(t, g["orders"]["delete"])
}

func TestNormalize_ModuloConHojaNoObjetoSeIgnora(t *testing.T) {
	raw := map[string]any{"orders": true, "clients": map[string]any{"view": true}}
	g := permission.Normalize(raw, "")
	assertGrantShape(t, g)
	assert.False(t, g["orders"]["view"], "un módulo que no es objeto se ignora completo")
	assert.True(t, g["clients"]["view"])
}
