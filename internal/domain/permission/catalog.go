// Package permission implementa el modelo de capacidades del back office:
// catálogo fijo de módulos/acciones, plantillas por rol, normalización de
// grants almacenados y el gate de autorización. Todo chequeo de acceso pasa
// por aquí; ante entrada ambigua o malformada la respuesta es siempre denegar.
package permission

// Grant es el permiso completo de un usuario: módulo → acción → permitido.
// Un Grant normalizado contiene exactamente las claves del catálogo, todas
// con valor booleano explícito.
type Grant map[string]map[string]bool

// Módulos del catálogo.
const (
	ModuleClients  = "clients"
	ModuleOrders   = "orders"
	ModuleProducts = "products"
	ModuleSales    = "sales"
	ModuleUsers    = "users"
)

// Acciones del catálogo.
const (
	ActionView          = "view"
	ActionCreate        = "create"
	ActionEdit          = "edit"
	ActionDelete        = "delete"
	ActionMarkDelivered = "markDelivered"
	ActionTogglePaid    = "togglePaid"
	ActionToggleInvoice = "toggleInvoice"
)

// ActionDef es una acción del catálogo con su etiqueta para la UI.
type ActionDef struct {
	Name  string
	Label string
}

// ModuleDef es un módulo del catálogo con sus acciones soportadas, en orden.
type ModuleDef struct {
	Name    string
	Label   string
	Actions []ActionDef
}

// Catalog es la única fuente de verdad sobre qué debe contener un Grant.
// Inmutable en runtime; el orden se respeta en listados de la UI.
var Catalog = []ModuleDef{
	{
		Name:  ModuleClients,
		Label: "Clientes",
		Actions: []ActionDef{
			{ActionView, "Ver"},
			{ActionCreate, "Crear"},
			{ActionEdit, "Editar"},
			{ActionDelete, "Eliminar"},
		},
	},
	{
		Name:  ModuleOrders,
		Label: "Pedidos",
		Actions: []ActionDef{
			{ActionView, "Ver"},
			{ActionCreate, "Crear"},
			{ActionEdit, "Editar"},
			{ActionDelete, "Eliminar"},
			{ActionMarkDelivered, "Marcar entregado"},
		},
	},
	{
		Name:  ModuleProducts,
		Label: "Productos",
		Actions: []ActionDef{
			{ActionView, "Ver"},
			{ActionCreate, "Crear"},
			{ActionEdit, "Editar"},
			{ActionDelete, "Eliminar"},
		},
	},
	{
		Name:  ModuleSales,
		Label: "Ventas",
		Actions: []ActionDef{
			{ActionView, "Ver"},
			{ActionTogglePaid, "Marcar pagado"},
			{ActionToggleInvoice, "Marcar facturado"},
		},
	},
	{
		Name:  ModuleUsers,
		Label: "Usuarios",
		Actions: []ActionDef{
			{ActionView, "Ver"},
			{ActionCreate, "Crear"},
			{ActionEdit, "Editar"},
			{ActionDelete, "Eliminar"},
		},
	},
}

// EmptyGrant devuelve un Grant con todas las acciones del catálogo en false.
func EmptyGrant() Grant {
	g := make(Grant, len(Catalog))
	for _, mod := range Catalog {
		actions := make(map[string]bool, len(mod.Actions))
		for _, a := range mod.Actions {
			actions[a.Name] = false
		}
		g[mod.Name] = actions
	}
	return g
}

// FullGrant devuelve un Grant con todas las acciones del catálogo en true.
func FullGrant() Grant {
	g := EmptyGrant()
	for _, actions := range g {
		for a := range actions {
			actions[a] = true
		}
	}
	return g
}

// Clone devuelve una copia profunda del Grant.
func (g Grant) Clone() Grant {
	out := make(Grant, len(g))
	for mod, actions := range g {
		cp := make(map[string]bool, len(actions))
		for a, v := range actions {
			cp[a] = v
		}
		out[mod] = cp
	}
	return out
}

// hasCapability informa si el par módulo/acción existe en el catálogo.
func hasCapability(module, action string) bool {
	for _, mod := range Catalog {
		if mod.Name != module {
			continue
		}
		for _, a := range mod.Actions {
			if a.Name == action {
				return true
			}
		}
		return false
	}
	return false
}
