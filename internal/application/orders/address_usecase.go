package orders

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

const defaultCountry = "USA"

// AddressUseCase libreta de direcciones de envío del cliente autenticado.
type AddressUseCase struct {
	txRunner TxRunner
	repo     repository.AddressRepository
	log      zerolog.Logger
	now      func() time.Time
}

func NewAddressUseCase(txRunner TxRunner, repo repository.AddressRepository, log zerolog.Logger, now func() time.Time) *AddressUseCase {
	if now == nil {
		now = time.Now
	}
	return &AddressUseCase{txRunner: txRunner, repo: repo, log: log, now: now}
}

func applyAddress(a *entity.ShippingAddress, in dto.ShippingAddressRequest) {
	a.FirstName = strings.TrimSpace(in.FirstName)
	a.LastName = strings.TrimSpace(in.LastName)
	a.Phone = strings.TrimSpace(in.Phone)
	a.AddressLine1 = strings.TrimSpace(in.AddressLine1)
	a.AddressLine2 = strings.TrimSpace(in.AddressLine2)
	a.City = strings.TrimSpace(in.City)
	a.State = strings.TrimSpace(in.State)
	a.PostalCode = strings.TrimSpace(in.PostalCode)
	a.Country = strings.TrimSpace(in.Country)
	if a.Country == "" {
		a.Country = defaultCountry
	}
}

func validateAddress(a *entity.ShippingAddress) error {
	switch {
	case a.FirstName == "":
		return domain.Invalid("first_name", "requerido")
	case a.LastName == "":
		return domain.Invalid("last_name", "requerido")
	case a.Phone == "":
		return domain.Invalid("phone", "requerido")
	case a.AddressLine1 == "":
		return domain.Invalid("address_line1", "requerido")
	case a.City == "":
		return domain.Invalid("city", "requerido")
	case a.State == "":
		return domain.Invalid("state", "requerido")
	case a.PostalCode == "":
		return domain.Invalid("postal_code", "requerido")
	}
	return nil
}

// Create guarda la dirección. Si llega como predeterminada, desmarca las demás en la misma tx.
func (uc *AddressUseCase) Create(ctx context.Context, customerID string, in dto.ShippingAddressRequest) (*dto.ShippingAddressResponse, error) {
	if customerID == "" {
		return nil, domain.ErrUnauthorized
	}
	now := uc.now()
	a := &entity.ShippingAddress{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	applyAddress(a, in)
	if err := validateAddress(a); err != nil {
		return nil, err
	}
	err := uc.txRunner.RunOrders(ctx, func(_ repository.CakeRepository, _ repository.OrderRepository, addressRepo repository.AddressRepository) error {
		if err := addressRepo.Create(ctx, a); err != nil {
			return err
		}
		if !in.IsDefault {
			return nil
		}
		if err := addressRepo.SetDefault(ctx, a.ID, customerID, now); err != nil {
			return err
		}
		a.IsDefault = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromShippingAddress(a)
	return &out, nil
}

// List direcciones del cliente, la predeterminada primero.
func (uc *AddressUseCase) List(ctx context.Context, customerID string) ([]dto.ShippingAddressResponse, error) {
	list, err := uc.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ShippingAddressResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.FromShippingAddress(a))
	}
	return out, nil
}

// Get una dirección del cliente; la de otro cliente es ErrNotFound.
func (uc *AddressUseCase) Get(ctx context.Context, customerID, id string) (*dto.ShippingAddressResponse, error) {
	a, err := uc.repo.GetForCustomer(ctx, id, customerID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromShippingAddress(a)
	return &out, nil
}

// Update reemplaza los campos de la dirección.
func (uc *AddressUseCase) Update(ctx context.Context, customerID, id string, in dto.ShippingAddressRequest) (*dto.ShippingAddressResponse, error) {
	var updated *entity.ShippingAddress
	err := uc.txRunner.RunOrders(ctx, func(_ repository.CakeRepository, _ repository.OrderRepository, addressRepo repository.AddressRepository) error {
		a, err := addressRepo.GetForCustomer(ctx, id, customerID)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		applyAddress(a, in)
		if err := validateAddress(a); err != nil {
			return err
		}
		now := uc.now()
		a.UpdatedAt = now
		if err := addressRepo.Update(ctx, a); err != nil {
			return err
		}
		if in.IsDefault {
			if err := addressRepo.SetDefault(ctx, a.ID, customerID, now); err != nil {
				return err
			}
			a.IsDefault = true
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromShippingAddress(updated)
	return &out, nil
}

// SetDefault marca la dirección como predeterminada del cliente.
func (uc *AddressUseCase) SetDefault(ctx context.Context, customerID, id string) (*dto.ShippingAddressResponse, error) {
	var updated *entity.ShippingAddress
	err := uc.txRunner.RunOrders(ctx, func(_ repository.CakeRepository, _ repository.OrderRepository, addressRepo repository.AddressRepository) error {
		a, err := addressRepo.GetForCustomer(ctx, id, customerID)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		now := uc.now()
		if err := addressRepo.SetDefault(ctx, a.ID, customerID, now); err != nil {
			return err
		}
		a.IsDefault = true
		a.UpdatedAt = now
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("customer_id", customerID).Str("address_id", id).Msg("dirección predeterminada actualizada")
	out := dto.FromShippingAddress(updated)
	return &out, nil
}

// Delete borra la dirección. Los pedidos que la referenciaban conservan delivery_address.
func (uc *AddressUseCase) Delete(ctx context.Context, customerID, id string) error {
	a, err := uc.repo.GetForCustomer(ctx, id, customerID)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id, customerID)
}
