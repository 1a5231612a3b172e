package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/application/inventory"
)

// InventoryHandler proveedores, ingredientes y movimientos de stock.
type InventoryHandler struct {
	ingredients   *inventory.IngredientUseCase
	ledger        *inventory.ApplyMovementUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	ingredients *inventory.IngredientUseCase,
	ledger *inventory.ApplyMovementUseCase,
	replenishment *inventory.ReplenishmentUseCase,
) *InventoryHandler {
	return &InventoryHandler{ingredients: ingredients, ledger: ledger, replenishment: replenishment}
}

// ── Proveedores ───────────────────────────────────────────────────────────────

// CreateSupplier godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/suppliers [post]
func (h *InventoryHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.ingredients.CreateSupplier(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "solo activos"
// @Success      200  {array}  dto.SupplierResponse
// @Router       /api/suppliers [get]
func (h *InventoryHandler) ListSuppliers(c *fiber.Ctx) error {
	out, err := h.ingredients.ListSuppliers(c.UserContext(), c.QueryBool("active", false))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ── Ingredientes ──────────────────────────────────────────────────────────────

// CreateIngredient godoc
// @Summary      Crear ingrediente
// @Description  Si current_stock > 0 registra además un movimiento adjustment con el stock inicial.
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIngredientRequest  true  "Datos del ingrediente"
// @Success      201   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingredients [post]
func (h *InventoryHandler) CreateIngredient(c *fiber.Ctx) error {
	var in dto.CreateIngredientRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.ingredients.CreateIngredient(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetIngredient godoc
// @Summary      Obtener ingrediente
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Ingredient ID"
// @Success      200  {object}  dto.IngredientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [get]
func (h *InventoryHandler) GetIngredient(c *fiber.Ctx) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}
	out, err := h.ingredients.GetIngredient(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// UpdateIngredient godoc
// @Summary      Actualizar ingrediente
// @Description  No modifica current_stock; el stock solo cambia con movimientos.
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Ingredient ID"
// @Param        body  body  dto.UpdateIngredientRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [put]
func (h *InventoryHandler) UpdateIngredient(c *fiber.Ctx) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}
	var in dto.UpdateIngredientRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.ingredients.UpdateIngredient(c.UserContext(), id, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListIngredients godoc
// @Summary      Listar ingredientes
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Param        supplier   query  string  false  "Supplier ID"
// @Param        unit       query  string  false  "Unidad"
// @Param        search     query  string  false  "Nombre o descripción"
// @Param        low_stock  query  bool    false  "Solo stock bajo"
// @Param        is_active  query  bool    false  "Activos / inactivos"
// @Param        limit      query  int     false  "Límite (default 20)"
// @Param        offset     query  int     false  "Offset"
// @Success      200  {object}  dto.IngredientListResponse
// @Router       /api/ingredients [get]
func (h *InventoryHandler) ListIngredients(c *fiber.Ctx) error {
	var in dto.IngredientListRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.ingredients.ListIngredients(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Ingredientes con stock bajo
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.IngredientResponse
// @Router       /api/ingredients/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.ingredients.LowStock(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ExpiringSoon godoc
// @Summary      Ingredientes próximos a vencer
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Horizonte en días (default 30)"
// @Success      200  {array}  dto.IngredientResponse
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Router       /api/ingredients/expiring-soon [get]
func (h *InventoryHandler) ExpiringSoon(c *fiber.Ctx) error {
	out, err := h.ingredients.ExpiringSoon(c.UserContext(), c.QueryInt("days", 0))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ReorderSuggestions godoc
// @Summary      Sugerencias de reposición
// @Description  Ingredientes activos por debajo del mínimo con la cantidad sugerida a pedir.
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReorderSuggestionDTO
// @Router       /api/ingredients/reorder-suggestions [get]
func (h *InventoryHandler) ReorderSuggestions(c *fiber.Ctx) error {
	out, err := h.replenishment.ReorderSuggestions(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ── Movimientos ───────────────────────────────────────────────────────────────

// ApplyMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  in suma, out y waste restan (el stock nunca queda negativo), adjustment fija el valor.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "ingredient_id, movement_type, quantity"
// @Success      201   {object}  dto.ApplyMovementResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.ledger.ApplyFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        ingredient     query  string  false  "Ingredient ID"
// @Param        movement_type  query  string  false  "in|out|adjustment|waste"
// @Param        start_date     query  string  false  "YYYY-MM-DD"
// @Param        end_date       query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        limit          query  int     false  "Límite (default 20)"
// @Param        offset         query  int     false  "Offset"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.ingredients.ListMovements(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
