package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/application/orders"
)

// AddressHandler direcciones de envío del usuario autenticado.
type AddressHandler struct {
	uc *orders.AddressUseCase
}

func NewAddressHandler(uc *orders.AddressUseCase) *AddressHandler {
	return &AddressHandler{uc: uc}
}

// Create godoc
// @Summary      Guardar dirección de envío
// @Tags         addresses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ShippingAddressRequest  true  "Dirección"
// @Success      201   {object}  dto.ShippingAddressResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/addresses [post]
func (h *AddressHandler) Create(c *fiber.Ctx) error {
	var in dto.ShippingAddressRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar mis direcciones
// @Tags         addresses
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ShippingAddressResponse
// @Router       /api/addresses [get]
func (h *AddressHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener dirección
// @Tags         addresses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Address ID"
// @Success      200  {object}  dto.ShippingAddressResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/addresses/{id} [get]
func (h *AddressHandler) Get(c *fiber.Ctx) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar dirección
// @Tags         addresses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Address ID"
// @Param        body  body  dto.ShippingAddressRequest  true  "Dirección"
// @Success      200   {object}  dto.ShippingAddressResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/addresses/{id} [put]
func (h *AddressHandler) Update(c *fiber.Ctx) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}
	var in dto.ShippingAddressRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// SetDefault godoc
// @Summary      Marcar dirección como predeterminada
// @Tags         addresses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Address ID"
// @Success      200  {object}  dto.ShippingAddressResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/addresses/{id}/set-default [post]
func (h *AddressHandler) SetDefault(c *fiber.Ctx) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}
	out, err := h.uc.SetDefault(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar dirección
// @Tags         addresses
// @Security     Bearer
// @Param        id   path  string  true  "Address ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/addresses/{id} [delete]
func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), id); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
