package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/application/offers"
)

// OfferHandler ofertas y descuentos.
type OfferHandler struct {
	uc *offers.OfferUseCase
}

// NewOfferHandler construye el handler.
func NewOfferHandler(uc *offers.OfferUseCase) *OfferHandler {
	return &OfferHandler{uc: uc}
}

// Create godoc
// @Summary      Crear oferta
// @Tags         offers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOfferRequest  true  "Datos de la oferta"
// @Success      201   {object}  dto.OfferResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/offers [post]
func (h *OfferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOfferRequest
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
// @Summary      Listar ofertas
// @Tags         offers
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "draft|active|expired|paused"
// @Success      200  {array}  dto.OfferResponse
// @Router       /api/offers [get]
func (h *OfferHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("status"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Active godoc
// @Summary      Ofertas vigentes
// @Tags         offers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OfferResponse
// @Router       /api/offers/active [get]
func (h *OfferHandler) Active(c *fiber.Ctx) error {
	out, err := h.uc.Active(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la oferta
// @Tags         offers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Offer ID"
// @Param        body  body  dto.UpdateOfferStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OfferResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/offers/{id}/status [patch]
func (h *OfferHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}
	var in dto.UpdateOfferStatusRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), id, in.Status)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// PreviewDiscount godoc
// @Summary      Calcular descuento de una oferta
// @Description  Solo informa el descuento; no se aplica a ningún pedido.
// @Tags         offers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Offer ID"
// @Param        body  body  dto.PreviewDiscountRequest  true  "order_amount"
// @Success      200   {object}  dto.PreviewDiscountResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/offers/{id}/preview [post]
func (h *OfferHandler) PreviewDiscount(c *fiber.Ctx) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}
	var in dto.PreviewDiscountRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.PreviewDiscount(c.UserContext(), id, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Apply godoc
// @Summary      Aplicar oferta
// @Description  Consume un uso de la oferta si está vigente y el pedido alcanza el mínimo.
// @Tags         offers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Offer ID"
// @Param        body  body  dto.ApplyOfferRequest  true  "order_amount"
// @Success      200   {object}  dto.ApplyOfferResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/offers/{id}/apply [post]
func (h *OfferHandler) Apply(c *fiber.Ctx) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}
	var in dto.ApplyOfferRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Apply(c.UserContext(), id, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas de ofertas
// @Tags         offers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OfferStatsResponse
// @Router       /api/offers/stats [get]
func (h *OfferHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
