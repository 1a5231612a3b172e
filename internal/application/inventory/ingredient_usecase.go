package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/inventory"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

const (
	defaultExpiryHorizon = 30
	maxExpiryHorizon     = 365
)

// IngredientUseCase altas, consultas y vistas de solo lectura de ingredientes y proveedores.
// El stock solo cambia vía ApplyMovementUseCase.
type IngredientUseCase struct {
	txRunner    TxRunner
	ledger      *ApplyMovementUseCase
	ingredients repository.IngredientRepository
	suppliers   repository.SupplierRepository
	movements   repository.StockMovementRepository
	now         func() time.Time
}

// NewIngredientUseCase construye el caso de uso.
func NewIngredientUseCase(
	txRunner TxRunner,
	ledger *ApplyMovementUseCase,
	ingredients repository.IngredientRepository,
	suppliers repository.SupplierRepository,
	movements repository.StockMovementRepository,
	now func() time.Time,
) *IngredientUseCase {
	if now == nil {
		now = time.Now
	}
	return &IngredientUseCase{
		txRunner:    txRunner,
		ledger:      ledger,
		ingredients: ingredients,
		suppliers:   suppliers,
		movements:   movements,
		now:         now,
	}
}

// ── Proveedores ───────────────────────────────────────────────────────────────

// CreateSupplier registra un proveedor activo.
func (uc *IngredientUseCase) CreateSupplier(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	s := &entity.Supplier{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(in.Name),
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		Website:       in.Website,
		Notes:         in.Notes,
		IsActive:      true,
		CreatedAt:     uc.now(),
	}
	if err := uc.suppliers.Create(ctx, s); err != nil {
		return nil, err
	}
	out := dto.FromSupplier(s)
	return &out, nil
}

// ListSuppliers lista proveedores; activeOnly filtra los inactivos.
func (uc *IngredientUseCase) ListSuppliers(ctx context.Context, activeOnly bool) ([]dto.SupplierResponse, error) {
	list, err := uc.suppliers.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.FromSupplier(s))
	}
	return out, nil
}

// ── Ingredientes ──────────────────────────────────────────────────────────────

func validateIngredientFields(unit string, minimum, unitCost decimal.Decimal) error {
	if !entity.ValidUnit(unit) {
		return domain.Invalid("unit", "unidad desconocida")
	}
	if minimum.IsNegative() {
		return domain.Invalid("minimum_stock", "no puede ser negativo")
	}
	if unitCost.IsNegative() {
		return domain.Invalid("unit_cost", "no puede ser negativo")
	}
	if err := inventory.CheckScale("minimum_stock", minimum, inventory.QuantityScale); err != nil {
		return err
	}
	return inventory.CheckScale("unit_cost", unitCost, inventory.MoneyScale)
}

func (uc *IngredientUseCase) checkSupplier(ctx context.Context, supplierID *string) error {
	if supplierID == nil || *supplierID == "" {
		return nil
	}
	s, err := uc.suppliers.GetByID(ctx, *supplierID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return nil
}

// CreateIngredient crea el ingrediente con stock 0 y, si viene stock inicial, lo registra
// como un movimiento de ajuste en la misma transacción.
func (uc *IngredientUseCase) CreateIngredient(ctx context.Context, userID string, in dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	if err := validateIngredientFields(in.Unit, in.MinimumStock, in.UnitCost); err != nil {
		return nil, err
	}
	if in.CurrentStock.IsNegative() {
		return nil, domain.Invalid("current_stock", "no puede ser negativo")
	}
	if err := inventory.CheckScale("current_stock", in.CurrentStock, inventory.QuantityScale); err != nil {
		return nil, err
	}
	expiry, err := dto.ParseDate(in.ExpiryDate)
	if err != nil {
		return nil, domain.Invalid("expiry_date", "formato esperado YYYY-MM-DD")
	}
	if err := uc.checkSupplier(ctx, in.SupplierID); err != nil {
		return nil, err
	}

	now := uc.now()
	ing := &entity.Ingredient{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Unit:         in.Unit,
		CurrentStock: decimal.Zero,
		MinimumStock: in.MinimumStock,
		UnitCost:     in.UnitCost,
		SupplierID:   in.SupplierID,
		Location:     in.Location,
		ExpiryDate:   expiry,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(
		ingredientRepo repository.IngredientRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		if err := ingredientRepo.Create(ctx, ing); err != nil {
			return err
		}
		if !in.CurrentStock.IsPositive() {
			return nil
		}
		res, err := uc.ledger.ApplyInTx(ctx, ingredientRepo, movementRepo, MovementInput{
			IngredientID: ing.ID,
			Type:         entity.MovementAdjustment,
			Quantity:     in.CurrentStock,
			Reference:    "Initial stock",
			Notes:        "Stock inicial al crear el ingrediente",
			ActorID:      userID,
			At:           now,
		})
		if err != nil {
			return err
		}
		ing = res.Ingredient
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromIngredient(ing)
	return &out, nil
}

// GetIngredient obtiene un ingrediente por ID.
func (uc *IngredientUseCase) GetIngredient(ctx context.Context, id string) (*dto.IngredientResponse, error) {
	ing, err := uc.ingredients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromIngredient(ing)
	return &out, nil
}

// UpdateIngredient actualiza los datos descriptivos. No permite modificar el stock.
func (uc *IngredientUseCase) UpdateIngredient(ctx context.Context, id string, in dto.UpdateIngredientRequest) (*dto.IngredientResponse, error) {
	ing, err := uc.ingredients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	if err := validateIngredientFields(in.Unit, in.MinimumStock, in.UnitCost); err != nil {
		return nil, err
	}
	expiry, err := dto.ParseDate(in.ExpiryDate)
	if err != nil {
		return nil, domain.Invalid("expiry_date", "formato esperado YYYY-MM-DD")
	}
	if err := uc.checkSupplier(ctx, in.SupplierID); err != nil {
		return nil, err
	}

	ing.Name = strings.TrimSpace(in.Name)
	ing.Description = in.Description
	ing.Unit = in.Unit
	ing.MinimumStock = in.MinimumStock
	ing.UnitCost = in.UnitCost
	ing.SupplierID = in.SupplierID
	ing.Location = in.Location
	ing.ExpiryDate = expiry
	if in.IsActive != nil {
		ing.IsActive = *in.IsActive
	}
	ing.UpdatedAt = uc.now()
	if err := uc.ingredients.Update(ctx, ing); err != nil {
		return nil, err
	}
	out := dto.FromIngredient(ing)
	return &out, nil
}

// ListIngredients lista ingredientes con filtros y paginación.
func (uc *IngredientUseCase) ListIngredients(ctx context.Context, in dto.IngredientListRequest) (*dto.IngredientListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.ingredients.List(ctx, repository.IngredientFilter{
		SupplierID: in.SupplierID,
		Unit:       in.Unit,
		Search:     strings.TrimSpace(in.Search),
		LowStock:   in.LowStock,
		Active:     in.Active,
	}, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.IngredientResponse, 0, len(list))
	for _, ing := range list {
		items = append(items, dto.FromIngredient(ing))
	}
	return &dto.IngredientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// LowStock ingredientes con stock actual ≤ mínimo.
func (uc *IngredientUseCase) LowStock(ctx context.Context) ([]dto.IngredientResponse, error) {
	list, err := uc.ingredients.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IngredientResponse, 0, len(list))
	for _, ing := range list {
		out = append(out, dto.FromIngredient(ing))
	}
	return out, nil
}

// ExpiringSoon ingredientes que vencen entre hoy y hoy + days (inclusive). days 0 usa 30.
func (uc *IngredientUseCase) ExpiringSoon(ctx context.Context, days int) ([]dto.IngredientResponse, error) {
	if days == 0 {
		days = defaultExpiryHorizon
	}
	if days < 1 || days > maxExpiryHorizon {
		return nil, domain.Invalid("days", "debe estar entre 1 y 365")
	}
	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	list, err := uc.ingredients.ListExpiring(ctx, today, today.AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}
	out := make([]dto.IngredientResponse, 0, len(list))
	for _, ing := range list {
		out = append(out, dto.FromIngredient(ing))
	}
	return out, nil
}

// ── Movimientos ───────────────────────────────────────────────────────────────

// ListMovements lista el libro, más recientes primero. end_date es inclusivo.
func (uc *IngredientUseCase) ListMovements(ctx context.Context, in dto.MovementListRequest) (*dto.MovementListResponse, error) {
	in.DefaultPage()
	f := repository.MovementFilter{IngredientID: in.IngredientID, Type: in.Type}
	from, err := dto.ParseDate(in.StartDate)
	if err != nil {
		return nil, domain.Invalid("start_date", "formato esperado YYYY-MM-DD")
	}
	to, err := dto.ParseDate(in.EndDate)
	if err != nil {
		return nil, domain.Invalid("end_date", "formato esperado YYYY-MM-DD")
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, domain.Invalid("end_date", "anterior a start_date")
	}
	f.From = from
	if to != nil {
		next := to.AddDate(0, 0, 1)
		f.To = &next
	}
	list, total, err := uc.movements.List(ctx, f, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.FromMovement(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}
