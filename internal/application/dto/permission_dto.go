package dto

import "github.com/jhoicas/tienda-backoffice/internal/domain/permission"

// CatalogAction acción del catálogo con su etiqueta para la UI.
type CatalogAction struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// CatalogModule módulo del catálogo con sus acciones en orden.
type CatalogModule struct {
	Name    string          `json:"name"`
	Label   string          `json:"label"`
	Actions []CatalogAction `json:"actions"`
}

// PermissionCatalogResponse catálogo completo más las plantillas por rol,
// para que la pantalla de usuarios pinte la grilla de permisos.
type PermissionCatalogResponse struct {
	Modules   []CatalogModule             `json:"modules"`
	Roles     []string                    `json:"roles"`
	Templates map[string]permission.Grant `json:"templates"`
}
