package permission

import (
	"fmt"
	"sort"
	"strings"
)

// roleOverrides declara, por rol, las acciones que se activan sobre un grant
// vacío. El rol admin se construye aparte con FullGrant. Cualquier clave fuera
// del catálogo hace fallar la construcción del registro (error de programación,
// se detecta al arrancar y no en tiempo de request).
var roleOverrides = map[string]map[string]map[string]bool{
	"repartidor": {
		ModuleClients:  {ActionView: true, ActionCreate: true, ActionEdit: true},
		ModuleOrders:   {ActionView: true, ActionCreate: true, ActionEdit: true, ActionMarkDelivered: true},
		ModuleProducts: {ActionView: true},
		ModuleSales:    {ActionView: true},
	},
	"vendedor": {
		ModuleClients:  {ActionView: true, ActionCreate: true, ActionEdit: true},
		ModuleOrders:   {ActionView: true, ActionCreate: true, ActionEdit: true},
		ModuleProducts: {ActionView: true},
		ModuleSales:    {ActionView: true, ActionTogglePaid: true},
	},
	"supervisor": {
		ModuleClients:  {ActionView: true, ActionEdit: true},
		ModuleOrders:   {ActionView: true, ActionEdit: true, ActionMarkDelivered: true},
		ModuleProducts: {ActionView: true, ActionEdit: true},
		ModuleSales:    {ActionView: true, ActionTogglePaid: true, ActionToggleInvoice: true},
		ModuleUsers:    {ActionView: true},
	},
	// el rol "client" no usa permisos de back office
}

// roleTemplates se construye una sola vez al cargar el paquete.
var roleTemplates = mustBuildTemplates()

func mustBuildTemplates() map[string]Grant {
	templates, err := buildTemplates(roleOverrides)
	if err != nil {
		panic(err)
	}
	return templates
}

// buildTemplates valida los overrides contra el catálogo y arma la plantilla
// de cada rol partiendo de un grant vacío.
func buildTemplates(overrides map[string]map[string]map[string]bool) (map[string]Grant, error) {
	templates := map[string]Grant{
		"admin": FullGrant(),
	}
	for role, mods := range overrides {
		tpl := EmptyGrant()
		for mod, actions := range mods {
			for act, v := range actions {
				if !hasCapability(mod, act) {
					return nil, fmt.Errorf("permission: rol %q referencia capacidad desconocida %s.%s", role, mod, act)
				}
				tpl[mod][act] = v
			}
		}
		templates[role] = tpl
	}
	return templates, nil
}

// TemplateForRole devuelve una copia de la plantilla del rol. Un rol
// desconocido o vacío devuelve un grant todo-false; nunca una forma parcial.
func TemplateForRole(role string) Grant {
	r := strings.ToLower(strings.TrimSpace(role))
	if tpl, ok := roleTemplates[r]; ok {
		return tpl.Clone()
	}
	return EmptyGrant()
}

// Roles devuelve los roles con plantilla registrada, en orden alfabético.
func Roles() []string {
	out := make([]string, 0, len(roleTemplates))
	for r := range roleTemplates {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
