package permission

import "encoding/json"

// Normalize reconcilia un grant crudo (posiblemente parcial, con claves viejas
// o directamente basura) con la plantilla del rol y la forma del catálogo.
//
// Algoritmo: se parte de TemplateForRole(role); cada hoja presente en raw pisa
// la hoja de la plantilla (merge por módulo, nunca reemplazo del objeto
// completo); el resultado se proyecta sobre el catálogo, así que claves fuera
// del esquema se descartan y las ausentes quedan en false.
//
// Nunca falla: entrada no parseable equivale a un objeto vacío.
func Normalize(raw any, role string) Grant {
	out := TemplateForRole(role)
	merged := asModuleMap(raw)
	for _, mod := range Catalog {
		src, ok := merged[mod.Name]
		if !ok {
			continue
		}
		for _, a := range mod.Actions {
			if leaf, present := src[a.Name]; present {
				out[mod.Name][a.Name] = asBool(leaf)
			}
		}
	}
	return out
}

// asModuleMap lleva la entrada cruda a módulo → acción → valor. Acepta el tipo
// Grant ya tipado, mapas genéricos de JSON decodificado, y bytes/strings JSON
// sin decodificar (el JSONB de la columna permissions llega así).
func asModuleMap(raw any) map[string]map[string]any {
	switch v := raw.(type) {
	case nil:
		return nil
	case Grant:
		return grantToAny(v)
	case map[string]map[string]bool:
		return grantToAny(v)
	case map[string]any:
		out := make(map[string]map[string]any, len(v))
		for mod, inner := range v {
			m, ok := inner.(map[string]any)
			if !ok {
				continue // hoja no-objeto a nivel de módulo: se ignora
			}
			out[mod] = m
		}
		return out
	case json.RawMessage:
		return unmarshalModuleMap([]byte(v))
	case []byte:
		return unmarshalModuleMap(v)
	case string:
		return unmarshalModuleMap([]byte(v))
	default:
		return nil
	}
}

func grantToAny(g map[string]map[string]bool) map[string]map[string]any {
	out := make(map[string]map[string]any, len(g))
	for mod, actions := range g {
		m := make(map[string]any, len(actions))
		for a, v := range actions {
			m[a] = v
		}
		out[mod] = m
	}
	return out
}

func unmarshalModuleMap(b []byte) map[string]map[string]any {
	if len(b) == 0 {
		return nil
	}
	var decoded any
	if err := json.Unmarshal(b, &decoded); err != nil {
		return nil
	}
	return asModuleMap(decoded)
}

// asBool coerciona la hoja a booleano. Solo valores afirmativos inequívocos
// cuentan como true; cualquier otra cosa deniega.
func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		return t == "true" || t == "1"
	default:
		return false
	}
}
