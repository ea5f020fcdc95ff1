package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/tienda-backoffice/internal/domain/permission"
)

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleVendedor   = "vendedor"
	RoleRepartidor = "repartidor"
	RoleSupervisor = "supervisor"
)

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del back office (admin, vendedor, repartidor o supervisor).
// Permissions siempre debe estar normalizado contra el catálogo antes de cualquier
// chequeo de autorización; el normalizador lo garantiza al leer de la DB o del login.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // ver constantes Role*
	IsAdmin      bool   // true si role == admin o si el flag viene explícito en la fila
	Permissions  permission.Grant
	PartnerTag   string // etiqueta de socio ("Cecil", "Padre", etc.); vacío si no aplica
	SellerID     string // referencia de vendedor; por defecto el propio ID
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Normalize devuelve una copia del usuario con forma garantizada: rol
// recortado, IsAdmin derivado (flag explícito o rol admin, sin distinguir
// mayúsculas), Permissions proyectado sobre el catálogo completo y SellerID
// con el propio ID como valor por defecto. Nunca falla; un usuario nil sigue
// siendo nil.
func (u *User) Normalize() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.Role = strings.TrimSpace(u.Role)
	out.IsAdmin = u.IsAdmin || strings.EqualFold(out.Role, RoleAdmin)
	out.Permissions = permission.Normalize(u.Permissions, out.Role)
	if out.SellerID == "" {
		out.SellerID = out.ID
	}
	return &out
}

// Admin informa si el usuario tiene el override de administrador.
func (u *User) Admin() bool {
	return u != nil && u.IsAdmin
}

// Can responde si el usuario puede ejecutar la capacidad. Acepta
// Can("orders", "edit") o la forma con ruta Can("orders.edit", "").
// Usuario ausente deniega.
func (u *User) Can(moduleOrPath, action string) bool {
	if u == nil {
		return false
	}
	return permission.Allowed(u.Permissions, u.IsAdmin, moduleOrPath, action)
}

// CanAny responde si alguna de las rutas "module.action" está permitida.
func (u *User) CanAny(paths ...string) bool {
	if u == nil {
		return false
	}
	return permission.AnyAllowed(u.Permissions, u.IsAdmin, paths)
}
