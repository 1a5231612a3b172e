package inventory

import (
	"context"
	"sort"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/domain/inventory"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de compras sugeridas a partir de los ingredientes en stock bajo.
type ReplenishmentUseCase struct {
	ingredientRepo repository.IngredientRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(ingredientRepo repository.IngredientRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{ingredientRepo: ingredientRepo}
}

// ReorderSuggestions devuelve, por cada ingrediente con stock ≤ mínimo, la cantidad para
// volver al doble del mínimo y su costo estimado. Ordena por costo estimado descendente.
func (uc *ReplenishmentUseCase) ReorderSuggestions(ctx context.Context) ([]dto.ReorderSuggestionDTO, error) {
	low, err := uc.ingredientRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReorderSuggestionDTO, 0, len(low))
	for _, ing := range low {
		qty := inventory.ReorderQuantity(ing.CurrentStock, ing.MinimumStock)
		suggestions = append(suggestions, dto.ReorderSuggestionDTO{
			IngredientID:  ing.ID,
			Name:          ing.Name,
			Unit:          ing.Unit,
			SupplierName:  ing.SupplierName,
			CurrentStock:  ing.CurrentStock,
			MinimumStock:  ing.MinimumStock,
			SuggestedQty:  qty,
			UnitCost:      ing.UnitCost,
			EstimatedCost: qty.Mul(ing.UnitCost).Round(2),
		})
	}

	// Mayor costo primero; a igual costo, agrupados por proveedor y luego por nombre.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.EstimatedCost.Equal(b.EstimatedCost) {
			return a.EstimatedCost.GreaterThan(b.EstimatedCost)
		}
		if a.SupplierName != b.SupplierName {
			return a.SupplierName < b.SupplierName
		}
		return a.Name < b.Name
	})
	return suggestions, nil
}
