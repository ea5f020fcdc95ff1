package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

// ClientUseCase aplica reglas de negocio para clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso con el puerto de persistencia.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create registra un cliente nuevo.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	client := &entity.Client{
		ID:          uuid.New().String(),
		Name:        in.Name,
		LocalName:   in.LocalName,
		Address:     in.Address,
		Zone:        in.Zone,
		City:        in.City,
		Phone:       in.Phone,
		Email:       in.Email,
		RUT:         in.RUT,
		RazonSocial: in.RazonSocial,
		OwnerID:     in.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// List lista clientes con filtro por vendedor dueño y búsqueda parcial.
func (uc *ClientUseCase) List(ctx context.Context, ownerID, query string) ([]*dto.ClientResponse, error) {
	clients, err := uc.repo.List(ctx, repository.ClientFilter{OwnerID: ownerID, Query: query})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// Update aplica una edición parcial de cliente.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		client.Name = *in.Name
	}
	if in.LocalName != nil {
		client.LocalName = *in.LocalName
	}
	if in.Address != nil {
		client.Address = *in.Address
	}
	if in.Zone != nil {
		client.Zone = *in.Zone
	}
	if in.City != nil {
		client.City = *in.City
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.RUT != nil {
		client.RUT = *in.RUT
	}
	if in.RazonSocial != nil {
		client.RazonSocial = *in.RazonSocial
	}
	if in.OwnerID != nil {
		client.OwnerID = *in.OwnerID
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete elimina un cliente por ID.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:          c.ID,
		Name:        c.Name,
		LocalName:   c.LocalName,
		Address:     c.Address,
		Zone:        c.Zone,
		City:        c.City,
		Phone:       c.Phone,
		Email:       c.Email,
		RUT:         c.RUT,
		RazonSocial: c.RazonSocial,
		OwnerID:     c.OwnerID,
		CreatedAt:   c.CreatedAt,
	}
}
