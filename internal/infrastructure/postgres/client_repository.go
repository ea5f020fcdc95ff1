package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, name, local_name, dir1, zona, ciudad, telefono, email, rut, razon_social, owner_id, created_at, updated_at`

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL.
// Los nombres de columna conservan el esquema histórico de la tienda
// (dir1, zona, ciudad...).
type ClientRepo struct {
	pool *pgxpool.Pool
}

// NewClientRepository construye el adaptador de persistencia para clientes.
func NewClientRepository(pool *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{pool: pool}
}

// Create persiste un cliente nuevo.
func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, local_name, dir1, zona, ciudad, telefono, email, rut, razon_social, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.pool.Exec(ctx, query,
		client.ID, client.Name, nullIfEmpty(client.LocalName), nullIfEmpty(client.Address),
		nullIfEmpty(client.Zone), nullIfEmpty(client.City), nullIfEmpty(client.Phone),
		nullIfEmpty(client.Email), nullIfEmpty(client.RUT), nullIfEmpty(client.RazonSocial),
		nullIfEmpty(client.OwnerID), client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	c, err := scanClient(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by id: %w", err)
	}
	return c, nil
}

// Update actualiza un cliente.
func (r *ClientRepo) Update(ctx context.Context, client *entity.Client) error {
	query := `
		UPDATE clients
		SET name = $2, local_name = $3, dir1 = $4, zona = $5, ciudad = $6, telefono = $7,
		    email = $8, rut = $9, razon_social = $10, owner_id = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		client.ID, client.Name, nullIfEmpty(client.LocalName), nullIfEmpty(client.Address),
		nullIfEmpty(client.Zone), nullIfEmpty(client.City), nullIfEmpty(client.Phone),
		nullIfEmpty(client.Email), nullIfEmpty(client.RUT), nullIfEmpty(client.RazonSocial),
		nullIfEmpty(client.OwnerID), client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// List lista clientes, filtrados por vendedor dueño y/o búsqueda parcial
// (sin distinguir mayúsculas) sobre nombre, local, email, dirección y ciudad.
func (r *ClientRepo) List(ctx context.Context, f repository.ClientFilter) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients`
	var (
		where []string
		args  []any
	)
	if f.OwnerID != "" {
		args = append(args, f.OwnerID)
		where = append(where, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(name ILIKE $%d OR local_name ILIKE $%d OR email ILIKE $%d OR dir1 ILIKE $%d OR ciudad ILIKE $%d)",
			n, n, n, n, n))
	}
	query += buildWhere(where) + ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Delete elimina un cliente por ID.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var (
		c                                                            entity.Client
		local, dir1, zona, ciudad, telefono, email, rut, razon, owner *string
	)
	if err := row.Scan(
		&c.ID, &c.Name, &local, &dir1, &zona, &ciudad, &telefono, &email, &rut, &razon, &owner,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	c.LocalName = orEmpty(local)
	c.Address = orEmpty(dir1)
	c.Zone = orEmpty(zona)
	c.City = orEmpty(ciudad)
	c.Phone = orEmpty(telefono)
	c.Email = orEmpty(email)
	c.RUT = orEmpty(rut)
	c.RazonSocial = orEmpty(razon)
	c.OwnerID = orEmpty(owner)
	return &c, nil
}
