package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

// OrderUseCase consulta y seguimiento de pedidos: estados, asignaciones y listados por rol.
type OrderUseCase struct {
	txRunner  TxRunner
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	log       zerolog.Logger
	now       func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	log zerolog.Logger,
	now func() time.Time,
) *OrderUseCase {
	if now == nil {
		now = time.Now
	}
	return &OrderUseCase{
		txRunner:  txRunner,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		log:       log,
		now:       now,
	}
}

// ScopeFilter fija en f el alcance que corresponde al rol del viewer.
//
//	admin    → todos
//	staff    → asignados a él o sin asignar
//	delivery → asignados a él para entrega
//	otros    → los propios (inventory_manager incluido: solo ve lo que pidió como cliente)
func ScopeFilter(v Viewer, f repository.OrderFilter) repository.OrderFilter {
	switch v.Role {
	case entity.RoleAdmin:
	case entity.RoleStaff:
		f.StaffID = v.UserID
	case entity.RoleDelivery:
		f.DeliveryPersonID = v.UserID
	default:
		f.CustomerID = v.UserID
	}
	return f
}

// CanView indica si el viewer puede ver el pedido, con las mismas reglas que ScopeFilter.
func CanView(v Viewer, o *entity.Order) bool {
	switch v.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleStaff:
		return o.AssignedStaffID == nil || *o.AssignedStaffID == v.UserID
	case entity.RoleDelivery:
		return o.DeliveryPersonID != nil && *o.DeliveryPersonID == v.UserID
	default:
		return o.CustomerID == v.UserID
	}
}

// Get devuelve el pedido con líneas e historial si el viewer tiene alcance sobre él.
func (uc *OrderUseCase) Get(ctx context.Context, v Viewer, id string) (*dto.OrderResponse, error) {
	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if !CanView(v, o) {
		return nil, domain.ErrForbidden
	}
	out := dto.FromOrder(o)
	return &out, nil
}

// List lista pedidos filtrados y acotados al rol del viewer, más recientes primero.
func (uc *OrderUseCase) List(ctx context.Context, v Viewer, in dto.OrderListRequest) (*dto.OrderListResponse, error) {
	in.DefaultPage()
	f := ScopeFilter(v, repository.OrderFilter{
		Status:        in.Status,
		PaymentStatus: in.PaymentStatus,
		OrderType:     in.OrderType,
	})
	list, total, err := uc.orderRepo.List(ctx, f, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, dto.FromOrder(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// UpdateStatus cambia el estado del pedido y deja registro en el historial.
// Marca confirmed_at al confirmar y delivered_at al entregar.
// Un pedido entregado o cancelado ya no cambia de estado (ErrConflict).
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, v Viewer, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if !entity.ValidOrderStatus(in.Status) {
		return nil, domain.Invalid("status", "estado de pedido desconocido")
	}
	var order *entity.Order
	err := uc.txRunner.RunOrders(ctx, func(_ repository.CakeRepository, orderRepo repository.OrderRepository, _ repository.AddressRepository) error {
		o, err := orderRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if !CanView(v, o) {
			return domain.ErrForbidden
		}
		if o.IsFinal() {
			return fmt.Errorf("%w: el pedido está %s", domain.ErrConflict, o.OrderStatus)
		}

		now := uc.now()
		previous := o.OrderStatus
		o.OrderStatus = in.Status
		o.UpdatedAt = now
		switch in.Status {
		case entity.OrderConfirmed:
			o.ConfirmedAt = &now
		case entity.OrderDelivered:
			o.DeliveredAt = &now
		}
		if err := orderRepo.UpdateStatus(ctx, o); err != nil {
			return err
		}
		notes := in.Notes
		if notes == "" {
			notes = fmt.Sprintf("Status changed from %s to %s", previous, in.Status)
		}
		h := entity.OrderStatusHistory{
			ID:        uuid.New().String(),
			OrderID:   o.ID,
			Status:    in.Status,
			Notes:     notes,
			UpdatedBy: v.UserID,
			CreatedAt: now,
		}
		if err := orderRepo.AddHistory(ctx, &h); err != nil {
			return err
		}
		o.History = append(o.History, h)
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("order_number", order.OrderNumber).
		Str("status", order.OrderStatus).
		Str("actor", v.UserID).
		Msg("estado de pedido actualizado")
	out := dto.FromOrder(order)
	return &out, nil
}

// AssignDelivery asigna un repartidor (usuario con rol delivery).
func (uc *OrderUseCase) AssignDelivery(ctx context.Context, v Viewer, id, deliveryPersonID string) (*dto.OrderResponse, error) {
	return uc.assign(ctx, v, id, deliveryPersonID, "delivery_person_id",
		func(role string) bool { return role == entity.RoleDelivery },
		func(o *entity.Order, userID string) { o.DeliveryPersonID = &userID },
		"Assigned to delivery person %s")
}

// AssignStaff asigna un responsable de preparación (rol admin o staff).
func (uc *OrderUseCase) AssignStaff(ctx context.Context, v Viewer, id, staffID string) (*dto.OrderResponse, error) {
	return uc.assign(ctx, v, id, staffID, "staff_id",
		func(role string) bool { return role == entity.RoleAdmin || role == entity.RoleStaff },
		func(o *entity.Order, userID string) { o.AssignedStaffID = &userID },
		"Assigned to staff member %s")
}

func (uc *OrderUseCase) assign(
	ctx context.Context,
	v Viewer,
	id, userID, field string,
	roleOK func(string) bool,
	apply func(*entity.Order, string),
	note string,
) (*dto.OrderResponse, error) {
	if userID == "" {
		return nil, domain.Invalid(field, "requerido")
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, userID)
	}
	if !roleOK(user.Role) || !user.IsActive {
		return nil, domain.Invalid(field, "el usuario no tiene un rol válido para esta asignación")
	}

	var order *entity.Order
	err = uc.txRunner.RunOrders(ctx, func(_ repository.CakeRepository, orderRepo repository.OrderRepository, _ repository.AddressRepository) error {
		o, err := orderRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if !CanView(v, o) {
			return domain.ErrForbidden
		}
		now := uc.now()
		apply(o, user.ID)
		o.UpdatedAt = now
		if err := orderRepo.UpdateAssignment(ctx, o); err != nil {
			return err
		}
		h := entity.OrderStatusHistory{
			ID:        uuid.New().String(),
			OrderID:   o.ID,
			Status:    o.OrderStatus,
			Notes:     fmt.Sprintf(note, user.Username),
			UpdatedBy: v.UserID,
			CreatedAt: now,
		}
		if err := orderRepo.AddHistory(ctx, &h); err != nil {
			return err
		}
		o.History = append(o.History, h)
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromOrder(order)
	return &out, nil
}

// paymentTransitions estados de pago alcanzables desde cada estado.
var paymentTransitions = map[string][]string{
	entity.PaymentPending: {entity.PaymentPaid, entity.PaymentFailed},
	entity.PaymentFailed:  {entity.PaymentPaid, entity.PaymentPending},
	entity.PaymentPaid:    {entity.PaymentRefunded},
}

func canMovePayment(from, to string) bool {
	for _, s := range paymentTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// UpdatePayment registra el resultado del cobro. No procesa el pago contra ninguna
// pasarela: solo mueve payment_status y deja la entrada en el historial.
// Un pedido cancelado no puede quedar pagado.
func (uc *OrderUseCase) UpdatePayment(ctx context.Context, v Viewer, id string, in dto.UpdatePaymentRequest) (*dto.OrderResponse, error) {
	if !entity.ValidPaymentStatus(in.PaymentStatus) {
		return nil, domain.Invalid("payment_status", "estado de pago desconocido")
	}
	if in.PaymentMethod != "" && !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.Invalid("payment_method", "método de pago desconocido")
	}
	var order *entity.Order
	err := uc.txRunner.RunOrders(ctx, func(_ repository.CakeRepository, orderRepo repository.OrderRepository, _ repository.AddressRepository) error {
		o, err := orderRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if !CanView(v, o) {
			return domain.ErrForbidden
		}
		if !canMovePayment(o.PaymentStatus, in.PaymentStatus) {
			return fmt.Errorf("%w: pago %s no admite pasar a %s", domain.ErrConflict, o.PaymentStatus, in.PaymentStatus)
		}
		if in.PaymentStatus == entity.PaymentPaid && o.OrderStatus == entity.OrderCancelled {
			return fmt.Errorf("%w: el pedido está cancelado", domain.ErrConflict)
		}

		now := uc.now()
		previous := o.PaymentStatus
		o.PaymentStatus = in.PaymentStatus
		if in.PaymentMethod != "" {
			o.PaymentMethod = in.PaymentMethod
		}
		o.UpdatedAt = now
		if err := orderRepo.UpdatePayment(ctx, o); err != nil {
			return err
		}
		notes := in.Notes
		if notes == "" {
			notes = fmt.Sprintf("Payment status changed from %s to %s", previous, in.PaymentStatus)
		}
		h := entity.OrderStatusHistory{
			ID:        uuid.New().String(),
			OrderID:   o.ID,
			Status:    o.OrderStatus,
			Notes:     notes,
			UpdatedBy: v.UserID,
			CreatedAt: now,
		}
		if err := orderRepo.AddHistory(ctx, &h); err != nil {
			return err
		}
		o.History = append(o.History, h)
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("order_number", order.OrderNumber).
		Str("payment_status", order.PaymentStatus).
		Str("actor", v.UserID).
		Msg("estado de pago actualizado")
	out := dto.FromOrder(order)
	return &out, nil
}
