package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/numbering"
	"github.com/sweetbite/bakery-api/internal/domain/pricing"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

// CreateOrderUseCase crea pedidos: cabecera, líneas e historial en una sola transacción.
type CreateOrderUseCase struct {
	txRunner TxRunner
	seq      repository.SequenceGenerator
	log      zerolog.Logger
	now      func() time.Time
}

// NewCreateOrderUseCase construye el caso de uso. now puede ser nil (usa time.Now).
func NewCreateOrderUseCase(txRunner TxRunner, seq repository.SequenceGenerator, log zerolog.Logger, now func() time.Time) *CreateOrderUseCase {
	if now == nil {
		now = time.Now
	}
	return &CreateOrderUseCase{txRunner: txRunner, seq: seq, log: log, now: now}
}

func validateCreate(in dto.CreateOrderRequest) error {
	if !entity.ValidOrderType(in.OrderType) {
		return domain.Invalid("order_type", "debe ser online o walk_in")
	}
	if in.PaymentMethod != "" && !entity.ValidPaymentMethod(in.PaymentMethod) {
		return domain.Invalid("payment_method", "método de pago desconocido")
	}
	if len(in.Items) == 0 {
		return domain.Invalid("items", "el pedido debe tener al menos una línea")
	}
	for i, item := range in.Items {
		if item.CakeID == "" {
			return domain.Invalid(fmt.Sprintf("items[%d].cake_id", i), "requerido")
		}
		if item.Quantity < 1 {
			return domain.Invalid(fmt.Sprintf("items[%d].quantity", i), "debe ser al menos 1")
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			return domain.Invalid(fmt.Sprintf("items[%d].unit_price", i), "no puede ser negativo")
		}
		if item.TotalPrice != nil && item.TotalPrice.IsNegative() {
			return domain.Invalid(fmt.Sprintf("items[%d].total_price", i), "no puede ser negativo")
		}
	}
	return nil
}

// CreateOrder resuelve cada torta dentro de la transacción, calcula totales y persiste
// pedido, líneas y la primera entrada del historial (pending). Una torta inexistente
// devuelve ErrNotFound y no queda nada escrito.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, customerID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if customerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	deliveryDate, err := dto.ParseDate(in.DeliveryDate)
	if err != nil {
		return nil, domain.Invalid("delivery_date", "formato esperado YYYY-MM-DD")
	}
	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = entity.PaymentCash
	}

	now := uc.now()
	// El contador corre fuera de la tx: un rollback deja un hueco en la numeración, nunca un duplicado.
	n, err := uc.seq.Next(ctx, numbering.PrefixOrder, now)
	if err != nil {
		return nil, fmt.Errorf("order number: %w", err)
	}

	order := &entity.Order{
		ID:                   uuid.New().String(),
		OrderNumber:          numbering.Format(numbering.PrefixOrder, now, n),
		CustomerID:           customerID,
		OrderType:            in.OrderType,
		OrderStatus:          entity.OrderPending,
		PaymentStatus:        entity.PaymentPending,
		PaymentMethod:        paymentMethod,
		DeliveryAddress:      in.DeliveryAddress,
		DeliveryInstructions: in.DeliveryInstructions,
		DeliveryDate:         deliveryDate,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err = uc.txRunner.RunOrders(ctx, func(
		cakeRepo repository.CakeRepository,
		orderRepo repository.OrderRepository,
		addressRepo repository.AddressRepository,
	) error {
		// 0) Dirección guardada: solo si es del cliente; una ajena se descarta
		if in.ShippingAddressID != nil && *in.ShippingAddressID != "" {
			addr, err := addressRepo.GetForCustomer(ctx, *in.ShippingAddressID, customerID)
			if err != nil {
				return fmt.Errorf("get address: %w", err)
			}
			if addr == nil {
				uc.log.Warn().
					Str("order_number", order.OrderNumber).
					Str("customer_id", customerID).
					Str("shipping_address_id", *in.ShippingAddressID).
					Msg("dirección de envío ajena o inexistente; se ignora")
			} else {
				order.ShippingAddressID = &addr.ID
				if order.DeliveryAddress == "" {
					order.DeliveryAddress = addr.Formatted()
				}
			}
		}

		// 1) Resolver tortas y precios
		lines := make([]pricing.Line, 0, len(in.Items))
		items := make([]entity.OrderItem, 0, len(in.Items))
		for _, req := range in.Items {
			cake, err := cakeRepo.GetByID(ctx, req.CakeID)
			if err != nil {
				return fmt.Errorf("get cake: %w", err)
			}
			if cake == nil {
				return fmt.Errorf("%w: torta %s", domain.ErrNotFound, req.CakeID)
			}
			line := pricing.LineTotal(req.Quantity, cake.Price, req.UnitPrice, req.TotalPrice)
			if line.Overridden {
				uc.log.Warn().
					Str("order_number", order.OrderNumber).
					Str("cake_id", cake.ID).
					Int("quantity", req.Quantity).
					Str("catalog_price", cake.Price.String()).
					Str("unit_price", line.UnitPrice.String()).
					Str("catalog_total", cake.Price.Mul(decimal.NewFromInt(int64(req.Quantity))).String()).
					Str("total_price", line.TotalPrice.String()).
					Msg("precio de línea distinto al del catálogo")
			}
			lines = append(lines, line)
			items = append(items, entity.OrderItem{
				ID:                 uuid.New().String(),
				OrderID:            order.ID,
				CakeID:             cake.ID,
				Quantity:           req.Quantity,
				UnitPrice:          line.UnitPrice,
				TotalPrice:         line.TotalPrice,
				CustomizationNotes: req.CustomizationNotes,
				CakeName:           cake.Name,
			})
		}

		// 2) Totales: foto inmutable al momento de crear
		totals := pricing.OrderTotals(order.OrderType, lines)
		order.Subtotal = totals.Subtotal
		order.Tax = totals.Tax
		order.DeliveryFee = totals.DeliveryFee
		order.TotalAmount = totals.Total

		// 3) Cabecera, líneas, historial
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		for i := range items {
			if err := orderRepo.CreateItem(ctx, &items[i]); err != nil {
				return err
			}
		}
		history := entity.OrderStatusHistory{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			Status:    entity.OrderPending,
			Notes:     "Order created",
			UpdatedBy: customerID,
			CreatedAt: now,
		}
		if err := orderRepo.AddHistory(ctx, &history); err != nil {
			return err
		}
		order.Items = items
		order.History = []entity.OrderStatusHistory{history}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_number", order.OrderNumber).
		Str("customer_id", customerID).
		Str("order_type", order.OrderType).
		Str("total", order.TotalAmount.String()).
		Msg("pedido creado")

	out := dto.FromOrder(order)
	return &out, nil
}
