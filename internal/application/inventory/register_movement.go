package inventory

import (
	"context"

	"github.com/sweetbite/bakery-api/internal/application/dto"
)

// ApplyFromRequest adapta el request HTTP al caso de uso ApplyMovement(ctx, MovementInput).
// El actor es el usuario autenticado; la fecha la pone el reloj del caso de uso.
func (uc *ApplyMovementUseCase) ApplyFromRequest(ctx context.Context, userID string, in dto.ApplyMovementRequest) (*dto.ApplyMovementResponse, error) {
	res, err := uc.ApplyMovement(ctx, MovementInput{
		IngredientID: in.IngredientID,
		Type:         in.Type,
		Quantity:     in.Quantity,
		UnitCost:     in.UnitCost,
		Reference:    in.Reference,
		Notes:        in.Notes,
		ActorID:      userID,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ApplyMovementResponse{
		Movement:   dto.FromMovement(res.Movement),
		Ingredient: dto.FromIngredient(res.Ingredient),
		Clamped:    res.Clamped,
	}, nil
}
