package dto

import "time"

// ClientResponse cliente expuesto por la API.
type ClientResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	LocalName   string    `json:"localName,omitempty"`
	Address     string    `json:"address,omitempty"`
	Zone        string    `json:"zone,omitempty"`
	City        string    `json:"city,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	RUT         string    `json:"rut,omitempty"`
	RazonSocial string    `json:"razonSocial,omitempty"`
	OwnerID     string    `json:"ownerId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateClientRequest alta de cliente.
type CreateClientRequest struct {
	Name        string `json:"name"`
	LocalName   string `json:"localName"`
	Address     string `json:"address"`
	Zone        string `json:"zone"`
	City        string `json:"city"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	RUT         string `json:"rut"`
	RazonSocial string `json:"razonSocial"`
	OwnerID     string `json:"ownerId"`
}

// UpdateClientRequest edición parcial de cliente. Punteros nil = sin cambio.
type UpdateClientRequest struct {
	Name        *string `json:"name"`
	LocalName   *string `json:"localName"`
	Address     *string `json:"address"`
	Zone        *string `json:"zone"`
	City        *string `json:"city"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	RUT         *string `json:"rut"`
	RazonSocial *string `json:"razonSocial"`
	OwnerID     *string `json:"ownerId"`
}
