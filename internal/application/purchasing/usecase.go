// Package purchasing contiene los casos de uso de órdenes de compra a proveedores.
package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/application/inventory"
	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	stock "github.com/sweetbite/bakery-api/internal/domain/inventory"
	"github.com/sweetbite/bakery-api/internal/domain/numbering"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

// Transiciones manuales de estado; received solo se alcanza recibiendo mercancía.
var allowedTransitions = map[string][]string{
	entity.POStatusDraft:     {entity.POStatusSent, entity.POStatusCancelled},
	entity.POStatusSent:      {entity.POStatusConfirmed, entity.POStatusCancelled},
	entity.POStatusConfirmed: {entity.POStatusCancelled},
}

// PurchaseOrderUseCase crea, recibe y consulta órdenes de compra.
type PurchaseOrderUseCase struct {
	txRunner       TxRunner
	ledger         Ledger
	poRepo         repository.PurchaseOrderRepository
	supplierRepo   repository.SupplierRepository
	ingredientRepo repository.IngredientRepository
	seq            repository.SequenceGenerator
	log            zerolog.Logger
	now            func() time.Time
}

// NewPurchaseOrderUseCase construye el caso de uso. now puede ser nil (usa time.Now).
func NewPurchaseOrderUseCase(
	txRunner TxRunner,
	ledger Ledger,
	poRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	ingredientRepo repository.IngredientRepository,
	seq repository.SequenceGenerator,
	log zerolog.Logger,
	now func() time.Time,
) *PurchaseOrderUseCase {
	if now == nil {
		now = time.Now
	}
	return &PurchaseOrderUseCase{
		txRunner:       txRunner,
		ledger:         ledger,
		poRepo:         poRepo,
		supplierRepo:   supplierRepo,
		ingredientRepo: ingredientRepo,
		seq:            seq,
		log:            log,
		now:            now,
	}
}

// Create registra la orden en borrador con sus líneas. total_cost = cantidad × costo; sin impuesto.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.Invalid("items", "la orden debe tener al menos una línea")
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, in.SupplierID)
	}

	now := uc.now()
	orderDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d, err := dto.ParseDate(in.OrderDate); err != nil {
		return nil, domain.Invalid("order_date", "formato esperado YYYY-MM-DD")
	} else if d != nil {
		orderDate = *d
	}
	expected, err := dto.ParseDate(in.ExpectedDelivery)
	if err != nil {
		return nil, domain.Invalid("expected_delivery", "formato esperado YYYY-MM-DD")
	}

	po := &entity.PurchaseOrder{
		ID:               uuid.New().String(),
		SupplierID:       supplier.ID,
		SupplierName:     supplier.Name,
		Status:           entity.POStatusDraft,
		OrderDate:        orderDate,
		ExpectedDelivery: expected,
		Tax:              decimal.Zero,
		Notes:            in.Notes,
		CreatedBy:        userID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// Validar ingredientes y montos (fuera de la tx, solo lectura)
	subtotal := decimal.Zero
	for i, req := range in.Items {
		if !req.Quantity.IsPositive() {
			return nil, domain.Invalid(fmt.Sprintf("items[%d].quantity", i), "debe ser mayor que cero")
		}
		if req.UnitCost.IsNegative() {
			return nil, domain.Invalid(fmt.Sprintf("items[%d].unit_cost", i), "no puede ser negativo")
		}
		if err := stock.CheckScale(fmt.Sprintf("items[%d].quantity", i), req.Quantity, stock.QuantityScale); err != nil {
			return nil, err
		}
		if err := stock.CheckScale(fmt.Sprintf("items[%d].unit_cost", i), req.UnitCost, stock.MoneyScale); err != nil {
			return nil, err
		}
		ing, err := uc.ingredientRepo.GetByID(ctx, req.IngredientID)
		if err != nil {
			return nil, err
		}
		if ing == nil {
			return nil, fmt.Errorf("%w: ingrediente %s", domain.ErrNotFound, req.IngredientID)
		}
		total := stock.MovementValue(req.Quantity, req.UnitCost)
		subtotal = subtotal.Add(total)
		po.Items = append(po.Items, entity.PurchaseOrderItem{
			ID:               uuid.New().String(),
			PurchaseOrderID:  po.ID,
			IngredientID:     ing.ID,
			Quantity:         req.Quantity,
			UnitCost:         req.UnitCost,
			TotalCost:        total,
			ReceivedQuantity: decimal.Zero,
			Notes:            req.Notes,
			IngredientName:   ing.Name,
		})
	}
	po.Subtotal = subtotal
	po.TotalAmount = subtotal.Add(po.Tax)

	n, err := uc.seq.Next(ctx, numbering.PrefixPurchaseOrder, now)
	if err != nil {
		return nil, fmt.Errorf("po number: %w", err)
	}
	po.PONumber = numbering.Format(numbering.PrefixPurchaseOrder, now, n)

	err = uc.txRunner.RunPurchasing(ctx, func(
		poRepo repository.PurchaseOrderRepository,
		_ repository.IngredientRepository,
		_ repository.StockMovementRepository,
	) error {
		if err := poRepo.Create(ctx, po); err != nil {
			return err
		}
		for i := range po.Items {
			if err := poRepo.CreateItem(ctx, &po.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromPurchaseOrder(po)
	return &out, nil
}

// ReceiveResult orden actualizada y movimientos de entrada generados.
type ReceiveResult struct {
	PurchaseOrder *entity.PurchaseOrder
	Movements     []*entity.StockMovement
	FullyReceived bool
}

// ReceiveItems registra cantidades recibidas y las ingresa al libro como movimientos in,
// todo en una transacción con la orden bloqueada. Una línea que no pertenece a la orden
// aborta la recepción completa. Si todas las líneas quedan cubiertas la orden pasa a received.
func (uc *PurchaseOrderUseCase) ReceiveItems(ctx context.Context, actorID, poID string, in dto.ReceiveItemsRequest) (*ReceiveResult, error) {
	if len(in.ReceivedItems) == 0 {
		return nil, domain.Invalid("received_items", "requerido")
	}
	seen := make(map[string]bool, len(in.ReceivedItems))
	for i, r := range in.ReceivedItems {
		if r.ReceivedQuantity.IsNegative() {
			return nil, domain.Invalid(fmt.Sprintf("received_items[%d].received_quantity", i), "no puede ser negativo")
		}
		if err := stock.CheckScale(fmt.Sprintf("received_items[%d].received_quantity", i), r.ReceivedQuantity, stock.QuantityScale); err != nil {
			return nil, err
		}
		if seen[r.ItemID] {
			return nil, domain.Invalid(fmt.Sprintf("received_items[%d].item_id", i), "línea repetida")
		}
		seen[r.ItemID] = true
	}

	at := uc.now()
	res := &ReceiveResult{}
	err := uc.txRunner.RunPurchasing(ctx, func(
		poRepo repository.PurchaseOrderRepository,
		ingredientRepo repository.IngredientRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		po, err := poRepo.GetForUpdate(ctx, poID)
		if err != nil {
			return fmt.Errorf("lock purchase order: %w", err)
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status == entity.POStatusReceived || po.Status == entity.POStatusCancelled {
			return fmt.Errorf("%w: la orden está %s", domain.ErrConflict, po.Status)
		}

		index := make(map[string]int, len(po.Items))
		for i, it := range po.Items {
			index[it.ID] = i
		}
		for _, r := range in.ReceivedItems {
			i, ok := index[r.ItemID]
			if !ok {
				return fmt.Errorf("%w: la línea %s no pertenece a la orden %s", domain.ErrNotFound, r.ItemID, po.PONumber)
			}
			item := &po.Items[i]
			if err := poRepo.UpdateItemReceived(ctx, item.ID, r.ReceivedQuantity); err != nil {
				return err
			}
			item.ReceivedQuantity = r.ReceivedQuantity
			if !r.ReceivedQuantity.IsPositive() {
				continue
			}
			cost := item.UnitCost
			mres, err := uc.ledger.ApplyInTx(ctx, ingredientRepo, movementRepo, inventory.MovementInput{
				IngredientID: item.IngredientID,
				Type:         entity.MovementIn,
				Quantity:     r.ReceivedQuantity,
				UnitCost:     &cost,
				Reference:    "PO #" + po.PONumber,
				Notes:        "Received from purchase order",
				ActorID:      actorID,
				At:           at,
			})
			if err != nil {
				return err
			}
			res.Movements = append(res.Movements, mres.Movement)
		}

		if po.FullyReceived() {
			day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
			po.Status = entity.POStatusReceived
			po.DeliveryDate = &day
			po.UpdatedAt = at
			if err := poRepo.UpdateStatus(ctx, po); err != nil {
				return err
			}
			res.FullyReceived = true
		}
		res.PurchaseOrder = po
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("po_number", res.PurchaseOrder.PONumber).
		Int("movements", len(res.Movements)).
		Bool("fully_received", res.FullyReceived).
		Str("actor", actorID).
		Msg("recepción de orden de compra")
	return res, nil
}

// ReceiveFromRequest adapta ReceiveItems a la respuesta HTTP.
func (uc *PurchaseOrderUseCase) ReceiveFromRequest(ctx context.Context, actorID, poID string, in dto.ReceiveItemsRequest) (*dto.ReceiveItemsResponse, error) {
	res, err := uc.ReceiveItems(ctx, actorID, poID, in)
	if err != nil {
		return nil, err
	}
	movs := make([]dto.MovementResponse, 0, len(res.Movements))
	for _, m := range res.Movements {
		movs = append(movs, dto.FromMovement(m))
	}
	return &dto.ReceiveItemsResponse{
		PurchaseOrder: dto.FromPurchaseOrder(res.PurchaseOrder),
		Movements:     movs,
		FullyReceived: res.FullyReceived,
	}, nil
}

// UpdateStatus aplica una transición manual (draft → sent → confirmed, o cancelación).
func (uc *PurchaseOrderUseCase) UpdateStatus(ctx context.Context, poID, status string) (*dto.PurchaseOrderResponse, error) {
	if !entity.ValidPOStatus(status) || status == entity.POStatusReceived {
		return nil, domain.Invalid("status", "estado no admitido")
	}
	var out *entity.PurchaseOrder
	err := uc.txRunner.RunPurchasing(ctx, func(
		poRepo repository.PurchaseOrderRepository,
		_ repository.IngredientRepository,
		_ repository.StockMovementRepository,
	) error {
		po, err := poRepo.GetForUpdate(ctx, poID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if !transitionAllowed(po.Status, status) {
			return fmt.Errorf("%w: no se puede pasar de %s a %s", domain.ErrConflict, po.Status, status)
		}
		po.Status = status
		po.UpdatedAt = uc.now()
		if err := poRepo.UpdateStatus(ctx, po); err != nil {
			return err
		}
		out = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.FromPurchaseOrder(out)
	return &resp, nil
}

func transitionAllowed(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Get obtiene una orden con sus líneas.
func (uc *PurchaseOrderUseCase) Get(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromPurchaseOrder(po)
	return &out, nil
}

// List lista órdenes por proveedor, estado y rango de fecha de orden (inclusivo).
func (uc *PurchaseOrderUseCase) List(ctx context.Context, in dto.PurchaseOrderListRequest) (*dto.PurchaseOrderListResponse, error) {
	in.DefaultPage()
	f := repository.PurchaseOrderFilter{SupplierID: in.SupplierID}
	if in.Status != "" {
		f.Statuses = []string{in.Status}
	}
	from, err := dto.ParseDate(in.DateFrom)
	if err != nil {
		return nil, domain.Invalid("date_from", "formato esperado YYYY-MM-DD")
	}
	to, err := dto.ParseDate(in.DateTo)
	if err != nil {
		return nil, domain.Invalid("date_to", "formato esperado YYYY-MM-DD")
	}
	f.DateFrom, f.DateTo = from, to
	return uc.list(ctx, f, in.Limit, in.Offset)
}

// Pending órdenes en draft, sent o confirmed.
func (uc *PurchaseOrderUseCase) Pending(ctx context.Context) (*dto.PurchaseOrderListResponse, error) {
	return uc.list(ctx, repository.PurchaseOrderFilter{Statuses: entity.PendingPOStatuses}, 100, 0)
}

func (uc *PurchaseOrderUseCase) list(ctx context.Context, f repository.PurchaseOrderFilter, limit, offset int) (*dto.PurchaseOrderListResponse, error) {
	list, total, err := uc.poRepo.List(ctx, f, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		items = append(items, dto.FromPurchaseOrder(po))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}
