package entity

import "time"

// Client representa un cliente de la tienda (el local que recibe los pedidos).
type Client struct {
	ID          string
	Name        string
	LocalName   string // nombre del local/negocio
	Address     string
	Zone        string
	City        string
	Phone       string
	Email       string
	RUT         string // identificación tributaria del cliente
	RazonSocial string
	OwnerID     string // vendedor dueño de la cartera; vacío = sin asignar
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
