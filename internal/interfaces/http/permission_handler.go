package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/domain/permission"
)

// PermissionHandler expone el catálogo de capacidades y las plantillas por
// rol. Solo lectura: el catálogo es fijo en runtime.
type PermissionHandler struct{}

// NewPermissionHandler construye el handler.
func NewPermissionHandler() *PermissionHandler {
	return &PermissionHandler{}
}

// Catalog godoc
// @Summary      Catálogo de permisos
// @Description  Módulos, acciones y plantillas por rol para la grilla de permisos.
// @Tags         permissions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PermissionCatalogResponse
// @Router       /api/permissions/catalog [get]
func (h *PermissionHandler) Catalog(c *fiber.Ctx) error {
	modules := make([]dto.CatalogModule, 0, len(permission.Catalog))
	for _, mod := range permission.Catalog {
		actions := make([]dto.CatalogAction, 0, len(mod.Actions))
		for _, a := range mod.Actions {
			actions = append(actions, dto.CatalogAction{Name: a.Name, Label: a.Label})
		}
		modules = append(modules, dto.CatalogModule{Name: mod.Name, Label: mod.Label, Actions: actions})
	}
	roles := permission.Roles()
	templates := make(map[string]permission.Grant, len(roles))
	for _, r := range roles {
		templates[r] = permission.TemplateForRole(r)
	}
	return c.JSON(dto.PermissionCatalogResponse{
		Modules:   modules,
		Roles:     roles,
		Templates: templates,
	})
}
