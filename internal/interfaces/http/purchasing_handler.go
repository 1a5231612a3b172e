package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/application/purchasing"
	"github.com/sweetbite/bakery-api/internal/application/recipes"
)

// PurchasingHandler órdenes de compra y recetas.
type PurchasingHandler struct {
	po      *purchasing.PurchaseOrderUseCase
	recipes *recipes.RecipeUseCase
}

// NewPurchasingHandler construye el handler.
func NewPurchasingHandler(po *purchasing.PurchaseOrderUseCase, recipes *recipes.RecipeUseCase) *PurchasingHandler {
	return &PurchasingHandler{po: po, recipes: recipes}
}

// CreatePurchaseOrder godoc
// @Summary      Crear orden de compra
// @Description  Queda en borrador con número PO{YYYYMMDD}{NNNN}.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "Proveedor y líneas"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchasingHandler) CreatePurchaseOrder(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.po.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPurchaseOrders godoc
// @Summary      Listar órdenes de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        supplier   query  string  false  "Supplier ID"
// @Param        status     query  string  false  "draft|sent|confirmed|received|cancelled"
// @Param        date_from  query  string  false  "YYYY-MM-DD"
// @Param        date_to    query  string  false  "YYYY-MM-DD"
// @Param        limit      query  int     false  "Límite (default 20)"
// @Param        offset     query  int     false  "Offset"
// @Success      200  {object}  dto.PurchaseOrderListResponse
// @Router       /api/purchase-orders [get]
func (h *PurchasingHandler) ListPurchaseOrders(c *fiber.Ctx) error {
	var in dto.PurchaseOrderListRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.po.List(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// PendingPurchaseOrders godoc
// @Summary      Órdenes de compra pendientes de recibir
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PurchaseOrderListResponse
// @Router       /api/purchase-orders/pending [get]
func (h *PurchasingHandler) PendingPurchaseOrders(c *fiber.Ctx) error {
	out, err := h.po.Pending(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// GetPurchaseOrder godoc
// @Summary      Obtener orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Purchase order ID"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchasingHandler) GetPurchaseOrder(c *fiber.Ctx) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}
	out, err := h.po.Get(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ReceiveItems godoc
// @Summary      Recibir mercadería
// @Description  Suma lo recibido al stock con movimientos de entrada; todo o nada.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Purchase order ID"
// @Param        body  body  dto.ReceiveItemsRequest  true  "received_items"
// @Success      200   {object}  dto.ReceiveItemsResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchasingHandler) ReceiveItems(c *fiber.Ctx) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}
	var in dto.ReceiveItemsRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.po.ReceiveFromRequest(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// UpdatePurchaseOrderStatus godoc
// @Summary      Cambiar estado de la orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Purchase order ID"
// @Param        body  body  dto.UpdatePurchaseOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/status [patch]
func (h *PurchasingHandler) UpdatePurchaseOrderStatus(c *fiber.Ctx) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}
	var in dto.UpdatePurchaseOrderStatusRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.po.UpdateStatus(c.UserContext(), id, in.Status)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ── Recetas ───────────────────────────────────────────────────────────────────

// CreateRecipe godoc
// @Summary      Crear receta
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecipeRequest  true  "Receta e ingredientes"
// @Success      201   {object}  dto.RecipeResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/recipes [post]
func (h *PurchasingHandler) CreateRecipe(c *fiber.Ctx) error {
	var in dto.CreateRecipeRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.recipes.Create(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRecipes godoc
// @Summary      Listar recetas
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "solo activas"
// @Success      200  {array}  dto.RecipeResponse
// @Router       /api/recipes [get]
func (h *PurchasingHandler) ListRecipes(c *fiber.Ctx) error {
	out, err := h.recipes.List(c.UserContext(), c.QueryBool("active", false))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// GetRecipe godoc
// @Summary      Obtener receta
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Recipe ID"
// @Success      200  {object}  dto.RecipeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [get]
func (h *PurchasingHandler) GetRecipe(c *fiber.Ctx) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}
	out, err := h.recipes.Get(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// CheckAvailability godoc
// @Summary      Verificar stock para una receta
// @Description  Compara lo requerido para las porciones pedidas con el stock actual; no modifica stock.
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Recipe ID"
// @Param        body  body  dto.CheckAvailabilityRequest  false  "servings (default 1)"
// @Success      200   {object}  dto.AvailabilityResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/recipes/{id}/check-availability [post]
func (h *PurchasingHandler) CheckAvailability(c *fiber.Ctx) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}
	var in dto.CheckAvailabilityRequest
	if len(c.Body()) > 0 {
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
	}
	out, err := h.recipes.CheckAvailability(c.UserContext(), id, in.Servings)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
