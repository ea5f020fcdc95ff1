package permission

import "strings"

// Allowed responde la consulta de una capacidad contra un grant.
//
// Acepta el módulo y la acción como tokens separados, o una ruta "module.action"
// en moduleOrPath dejando action vacío. Un admin pasa siempre, sin mirar el
// grant. Todo lo demás falla cerrado: módulo o acción vacíos, ruta malformada
// o clave ausente del grant devuelven false.
func Allowed(g Grant, isAdmin bool, moduleOrPath, action string) bool {
	if isAdmin {
		return true
	}
	mod, act := splitCapability(moduleOrPath, action)
	if mod == "" || act == "" {
		return false
	}
	actions, ok := g[mod]
	if !ok {
		return false
	}
	return actions[act]
}

// AnyAllowed devuelve true si alguna de las rutas "module.action" está
// permitida. Lista vacía deniega (salvo admin).
func AnyAllowed(g Grant, isAdmin bool, paths []string) bool {
	if isAdmin {
		return true
	}
	for _, p := range paths {
		if Allowed(g, false, p, "") {
			return true
		}
	}
	return false
}

func splitCapability(moduleOrPath, action string) (string, string) {
	mod, act := moduleOrPath, action
	if act == "" && strings.Contains(moduleOrPath, ".") {
		parts := strings.SplitN(moduleOrPath, ".", 2)
		mod, act = parts[0], parts[1]
	}
	return strings.TrimSpace(mod), strings.TrimSpace(act)
}
