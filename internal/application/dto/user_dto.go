package dto

import (
	"encoding/json"
	"time"

	"github.com/jhoicas/tienda-backoffice/internal/domain/permission"
)

// UserResponse usuario expuesto por la API. Permissions viaja siempre
// normalizado (forma completa del catálogo, valores booleanos).
type UserResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Role        string           `json:"role"`
	IsAdmin     bool             `json:"isAdmin"`
	PartnerTag  string           `json:"partnerTag,omitempty"`
	SellerID    string           `json:"sellerId"`
	Permissions permission.Grant `json:"permissions"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// CreateUserRequest alta de usuario. Permissions acepta cualquier JSON; el
// normalizador lo repara contra la plantilla del rol.
type CreateUserRequest struct {
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	Role        string          `json:"role"`
	IsAdmin     bool            `json:"isAdmin"`
	PartnerTag  string          `json:"partnerTag"`
	Permissions json.RawMessage `json:"permissions"`
}

// UpdateUserRequest edición parcial de usuario. Punteros nil = sin cambio.
type UpdateUserRequest struct {
	Name        *string         `json:"name"`
	Email       *string         `json:"email"`
	Password    *string         `json:"password"`
	Role        *string         `json:"role"`
	IsAdmin     *bool           `json:"isAdmin"`
	PartnerTag  *string         `json:"partnerTag"`
	Permissions json.RawMessage `json:"permissions"`
}
