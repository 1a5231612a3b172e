package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/application/orders"
)

// OrderHandler catálogo de tortas, pedidos y comprobantes.
type OrderHandler struct {
	cakes   *orders.CakeUseCase
	create  *orders.CreateOrderUseCase
	orders  *orders.OrderUseCase
	receipt *orders.ReceiptUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(
	cakes *orders.CakeUseCase,
	create *orders.CreateOrderUseCase,
	orderUC *orders.OrderUseCase,
	receipt *orders.ReceiptUseCase,
) *OrderHandler {
	return &OrderHandler{cakes: cakes, create: create, orders: orderUC, receipt: receipt}
}

// CreateCake godoc
// @Summary      Crear torta del catálogo
// @Tags         cakes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCakeRequest  true  "Datos de la torta"
// @Success      201   {object}  dto.CakeResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/cakes [post]
func (h *OrderHandler) CreateCake(c *fiber.Ctx) error {
	var in dto.CreateCakeRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.cakes.Create(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCakes godoc
// @Summary      Listar tortas
// @Tags         cakes
// @Security     Bearer
// @Produce      json
// @Param        available  query  bool  false  "solo disponibles"
// @Success      200  {array}  dto.CakeResponse
// @Router       /api/cakes [get]
func (h *OrderHandler) ListCakes(c *fiber.Ctx) error {
	out, err := h.cakes.List(c.UserContext(), c.QueryBool("available", false))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// CreateOrder godoc
// @Summary      Crear pedido
// @Description  Calcula subtotal, impuesto (8%), envío y total en el servidor; los montos del cliente se ignoran.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Ítems y datos de entrega"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.create.CreateOrder(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListOrders godoc
// @Summary      Listar pedidos
// @Description  El alcance depende del rol: clientes ven los suyos, repartidores los asignados.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status          query  string  false  "Estado"
// @Param        payment_status  query  string  false  "Estado de pago"
// @Param        order_type      query  string  false  "online|walk_in"
// @Param        limit           query  int     false  "Límite (default 20)"
// @Param        offset          query  int     false  "Offset"
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	var in dto.OrderListRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.orders.List(c.UserContext(), viewer(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// GetOrder godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Order ID"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}
	out, err := h.orders.Get(c.UserContext(), viewer(c), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order ID"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado y notas"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [post]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}
	var in dto.UpdateOrderStatusRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.orders.UpdateStatus(c.UserContext(), viewer(c), id, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// AssignDelivery godoc
// @Summary      Asignar repartidor
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order ID"
// @Param        body  body  dto.AssignDeliveryRequest  true  "delivery_person_id"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/assign-delivery [post]
func (h *OrderHandler) AssignDelivery(c *fiber.Ctx) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}
	var in dto.AssignDeliveryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.orders.AssignDelivery(c.UserContext(), viewer(c), id, in.DeliveryPersonID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// AssignStaff godoc
// @Summary      Asignar personal
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order ID"
// @Param        body  body  dto.AssignStaffRequest  true  "staff_id"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/assign-staff [post]
func (h *OrderHandler) AssignStaff(c *fiber.Ctx) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}
	var in dto.AssignStaffRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.orders.AssignStaff(c.UserContext(), viewer(c), id, in.StaffID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// UpdatePayment godoc
// @Summary      Registrar estado de pago
// @Description  pending → paid|failed, failed → paid|pending, paid → refunded. Deja entrada en el historial.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order ID"
// @Param        body  body  dto.UpdatePaymentRequest  true  "Nuevo estado de pago"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/payment [post]
func (h *OrderHandler) UpdatePayment(c *fiber.Ctx) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}
	var in dto.UpdatePaymentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.orders.UpdatePayment(c.UserContext(), viewer(c), id, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// DownloadReceipt godoc
// @Summary      Descargar comprobante del pedido
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "Order ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt [get]
func (h *OrderHandler) DownloadReceipt(c *fiber.Ctx) error {
	id, ok, err := pathUUID(c, "id")
	if !ok {
		return err
	}
	data, filename, err := h.receipt.DownloadReceipt(c.UserContext(), viewer(c), id)
	if err != nil {
		return handleError(c, err)
	}
	return sendFile(c, "application/pdf", filename, data)
}
