// Package offers contiene los casos de uso de ofertas y la vista previa de descuentos.
package offers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/pricing"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

const topUsedOffers = 5

// OfferUseCase crea, lista, evalúa y aplica ofertas. Aplicarlas a pedidos no es parte de create_order.
type OfferUseCase struct {
	txRunner TxRunner
	repo     repository.OfferRepository
	now      func() time.Time
}

// NewOfferUseCase construye el caso de uso. now puede ser nil (usa time.Now).
func NewOfferUseCase(txRunner TxRunner, repo repository.OfferRepository, now func() time.Time) *OfferUseCase {
	if now == nil {
		now = time.Now
	}
	return &OfferUseCase{txRunner: txRunner, repo: repo, now: now}
}

// Create valida la configuración de descuento y guarda la oferta (draft si no se indica estado).
func (uc *OfferUseCase) Create(ctx context.Context, userID string, in dto.CreateOfferRequest) (*dto.OfferResponse, error) {
	now := uc.now()
	o := &entity.Offer{
		ID:                 uuid.New().String(),
		Title:              strings.TrimSpace(in.Title),
		Description:        in.Description,
		OfferType:          in.OfferType,
		Status:             in.Status,
		DiscountPercentage: in.DiscountPercentage,
		DiscountAmount:     in.DiscountAmount,
		MinimumOrderAmount: in.MinimumOrderAmount,
		StartDate:          in.StartDate,
		EndDate:            in.EndDate,
		MaxUses:            in.MaxUses,
		CreatedBy:          userID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if o.Status == "" {
		o.Status = entity.OfferStatusDraft
	}
	if err := pricing.ValidateOffer(o); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return uc.toResponse(o, now), nil
}

// Get obtiene una oferta.
func (uc *OfferUseCase) Get(ctx context.Context, id string) (*dto.OfferResponse, error) {
	o, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(o, uc.now()), nil
}

// List lista ofertas; status vacío no filtra.
func (uc *OfferUseCase) List(ctx context.Context, status string) ([]dto.OfferResponse, error) {
	if status != "" && !entity.ValidOfferStatus(status) {
		return nil, domain.Invalid("status", "estado de oferta desconocido")
	}
	list, err := uc.repo.List(ctx, status)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(list), nil
}

// Active ofertas vigentes ahora.
func (uc *OfferUseCase) Active(ctx context.Context) ([]dto.OfferResponse, error) {
	now := uc.now()
	list, err := uc.repo.ListActive(ctx, now)
	if err != nil {
		return nil, err
	}
	// ListActive no conoce max_uses agotados; se filtran aquí.
	active := list[:0]
	for _, o := range list {
		if pricing.IsActive(o, now) {
			active = append(active, o)
		}
	}
	return uc.toResponses(active), nil
}

// UpdateStatus cambia el estado de la oferta.
func (uc *OfferUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.OfferResponse, error) {
	if !entity.ValidOfferStatus(status) {
		return nil, domain.Invalid("status", "estado de oferta desconocido")
	}
	o, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if err := uc.repo.UpdateStatus(ctx, id, status, now); err != nil {
		return nil, err
	}
	o.Status, o.UpdatedAt = status, now
	return uc.toResponse(o, now), nil
}

// PreviewDiscount calcula el descuento que la oferta daría a orderAmount sin aplicarlo.
func (uc *OfferUseCase) PreviewDiscount(ctx context.Context, id string, in dto.PreviewDiscountRequest) (*dto.PreviewDiscountResponse, error) {
	if in.OrderAmount.IsNegative() {
		return nil, domain.Invalid("order_amount", "no puede ser negativo")
	}
	o, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	return &dto.PreviewDiscountResponse{
		OfferID:     o.ID,
		IsActive:    pricing.IsActive(o, now),
		OrderAmount: in.OrderAmount,
		Discount:    pricing.CalculateDiscount(o, in.OrderAmount, now),
	}, nil
}

// Apply consume un uso de la oferta para un pedido de orderAmount. Lee la oferta con
// la fila bloqueada, así dos aplicaciones simultáneas no superan max_uses.
// Una oferta no vigente, un pedido bajo el mínimo o un descuento nulo no consumen uso.
func (uc *OfferUseCase) Apply(ctx context.Context, id string, in dto.ApplyOfferRequest) (*dto.ApplyOfferResponse, error) {
	if in.OrderAmount.IsNegative() {
		return nil, domain.Invalid("order_amount", "no puede ser negativo")
	}
	var out *dto.ApplyOfferResponse
	err := uc.txRunner.RunOffers(ctx, func(offerRepo repository.OfferRepository) error {
		o, err := offerRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		now := uc.now()
		if !pricing.IsActive(o, now) {
			return domain.Invalid("offer", "la oferta no está vigente o agotó sus usos")
		}
		if in.OrderAmount.LessThan(o.MinimumOrderAmount) {
			return domain.Invalid("order_amount", fmt.Sprintf("el pedido no alcanza el mínimo de %s", o.MinimumOrderAmount.StringFixed(2)))
		}
		discount := pricing.CalculateDiscount(o, in.OrderAmount, now)
		if !discount.IsPositive() {
			return domain.Invalid("offer", "la oferta no descuenta nada sobre este pedido")
		}
		if err := offerRepo.IncrementUses(ctx, o.ID, now); err != nil {
			return err
		}
		out = &dto.ApplyOfferResponse{
			OfferID:     o.ID,
			OrderAmount: in.OrderAmount,
			Discount:    discount,
			FinalAmount: in.OrderAmount.Sub(discount),
			CurrentUses: o.CurrentUses + 1,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Stats conteos por estado y las cinco ofertas más usadas.
func (uc *OfferUseCase) Stats(ctx context.Context) (*dto.OfferStatsResponse, error) {
	counts, err := uc.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	top, err := uc.repo.MostUsed(ctx, topUsedOffers)
	if err != nil {
		return nil, err
	}
	out := &dto.OfferStatsResponse{
		ActiveOffers:  counts[entity.OfferStatusActive],
		ExpiredOffers: counts[entity.OfferStatusExpired],
		DraftOffers:   counts[entity.OfferStatusDraft],
		PausedOffers:  counts[entity.OfferStatusPaused],
		MostUsed:      make([]dto.OfferUsageDTO, 0, len(top)),
	}
	for _, n := range counts {
		out.TotalOffers += n
	}
	for _, o := range top {
		out.MostUsed = append(out.MostUsed, dto.OfferUsageDTO{
			ID: o.ID, Title: o.Title, OfferType: o.OfferType, CurrentUses: o.CurrentUses,
		})
	}
	return out, nil
}

func (uc *OfferUseCase) load(ctx context.Context, id string) (*entity.Offer, error) {
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (uc *OfferUseCase) toResponses(list []*entity.Offer) []dto.OfferResponse {
	now := uc.now()
	out := make([]dto.OfferResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *uc.toResponse(o, now))
	}
	return out
}

func (uc *OfferUseCase) toResponse(o *entity.Offer, now time.Time) *dto.OfferResponse {
	return &dto.OfferResponse{
		ID:                 o.ID,
		Title:              o.Title,
		Description:        o.Description,
		OfferType:          o.OfferType,
		Status:             o.Status,
		DiscountPercentage: o.DiscountPercentage,
		DiscountAmount:     o.DiscountAmount,
		MinimumOrderAmount: o.MinimumOrderAmount,
		StartDate:          o.StartDate,
		EndDate:            o.EndDate,
		MaxUses:            o.MaxUses,
		CurrentUses:        o.CurrentUses,
		IsActive:           pricing.IsActive(o, now),
		CreatedAt:          o.CreatedAt,
	}
}
