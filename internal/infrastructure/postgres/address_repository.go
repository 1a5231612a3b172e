package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

var _ repository.AddressRepository = (*AddressRepo)(nil)

// AddressRepo direcciones de envío sobre PostgreSQL.
type AddressRepo struct {
	q Querier
}

func NewAddressRepository(q Querier) *AddressRepo {
	return &AddressRepo{q: q}
}

const addressColumns = `id, customer_id, first_name, last_name, phone, address_line1, address_line2,
	city, state, postal_code, country, is_default, created_at, updated_at`

func scanAddress(row pgx.Row) (*entity.ShippingAddress, error) {
	var a entity.ShippingAddress
	err := row.Scan(&a.ID, &a.CustomerID, &a.FirstName, &a.LastName, &a.Phone, &a.AddressLine1, &a.AddressLine2,
		&a.City, &a.State, &a.PostalCode, &a.Country, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AddressRepo) Create(ctx context.Context, a *entity.ShippingAddress) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO shipping_addresses (`+addressColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		a.ID, a.CustomerID, a.FirstName, a.LastName, a.Phone, a.AddressLine1, a.AddressLine2,
		a.City, a.State, a.PostalCode, a.Country, a.IsDefault, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create address: %w", err)
	}
	return nil
}

// GetForCustomer (nil, nil) si no existe o es de otro cliente.
func (r *AddressRepo) GetForCustomer(ctx context.Context, id, customerID string) (*entity.ShippingAddress, error) {
	a, err := scanAddress(r.q.QueryRow(ctx, `
		SELECT `+addressColumns+` FROM shipping_addresses
		WHERE id = $1 AND customer_id = $2`, id, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get address: %w", err)
	}
	return a, nil
}

func (r *AddressRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.ShippingAddress, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+addressColumns+` FROM shipping_addresses
		WHERE customer_id = $1
		ORDER BY is_default DESC, created_at DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()
	var list []*entity.ShippingAddress
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *AddressRepo) Update(ctx context.Context, a *entity.ShippingAddress) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE shipping_addresses SET first_name = $3, last_name = $4, phone = $5, address_line1 = $6,
			address_line2 = $7, city = $8, state = $9, postal_code = $10, country = $11, is_default = $12,
			updated_at = $13
		WHERE id = $1 AND customer_id = $2`,
		a.ID, a.CustomerID, a.FirstName, a.LastName, a.Phone, a.AddressLine1, a.AddressLine2,
		a.City, a.State, a.PostalCode, a.Country, a.IsDefault, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AddressRepo) Delete(ctx context.Context, id, customerID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM shipping_addresses WHERE id = $1 AND customer_id = $2`, id, customerID)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDefault desmarca primero la predeterminada anterior; el índice único parcial
// uq_shipping_addresses_default se verifica fila a fila y no admite el cambio en una sola sentencia.
func (r *AddressRepo) SetDefault(ctx context.Context, id, customerID string, at time.Time) error {
	if _, err := r.q.Exec(ctx, `
		UPDATE shipping_addresses SET is_default = FALSE, updated_at = $3
		WHERE customer_id = $1 AND is_default AND id <> $2`, customerID, id, at); err != nil {
		return fmt.Errorf("unset default address: %w", err)
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE shipping_addresses SET is_default = TRUE, updated_at = $3
		WHERE id = $2 AND customer_id = $1`, customerID, id, at)
	if err != nil {
		return fmt.Errorf("set default address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
