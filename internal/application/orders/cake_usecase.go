package orders

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

// CakeUseCase catálogo de tortas.
type CakeUseCase struct {
	repo repository.CakeRepository
}

// NewCakeUseCase construye el caso de uso.
func NewCakeUseCase(repo repository.CakeRepository) *CakeUseCase {
	return &CakeUseCase{repo: repo}
}

// Create agrega una torta al catálogo; disponible por defecto.
func (uc *CakeUseCase) Create(ctx context.Context, in dto.CreateCakeRequest) (*dto.CakeResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	if in.Price.IsNegative() {
		return nil, domain.Invalid("price", "no puede ser negativo")
	}
	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}
	cake := &entity.Cake{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		IsAvailable: available,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, cake); err != nil {
		return nil, err
	}
	out := dto.FromCake(cake)
	return &out, nil
}

// List lista el catálogo; availableOnly oculta las tortas no disponibles.
func (uc *CakeUseCase) List(ctx context.Context, availableOnly bool) ([]dto.CakeResponse, error) {
	list, err := uc.repo.List(ctx, availableOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CakeResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.FromCake(c))
	}
	return out, nil
}
