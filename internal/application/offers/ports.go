package offers

import (
	"context"

	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción sobre ofertas.
type TxRunner interface {
	RunOffers(ctx context.Context, fn func(offerRepo repository.OfferRepository) error) error
}
