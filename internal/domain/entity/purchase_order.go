package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la orden de compra.
const (
	POStatusDraft     = "draft"
	POStatusSent      = "sent"
	POStatusConfirmed = "confirmed"
	POStatusReceived  = "received"
	POStatusCancelled = "cancelled"
)

// ValidPOStatus indica si s es un estado de orden de compra conocido.
func ValidPOStatus(s string) bool {
	switch s {
	case POStatusDraft, POStatusSent, POStatusConfirmed, POStatusReceived, POStatusCancelled:
		return true
	}
	return false
}

// PendingPOStatuses estados que cuentan como pendientes de recibir.
var PendingPOStatuses = []string{POStatusDraft, POStatusSent, POStatusConfirmed}

// PurchaseOrder orden de compra a un proveedor; al recibirse alimenta el libro de existencias.
type PurchaseOrder struct {
	ID               string
	PONumber         string
	SupplierID       string
	Status           string
	OrderDate        time.Time
	ExpectedDelivery *time.Time
	DeliveryDate     *time.Time
	Subtotal         decimal.Decimal
	Tax              decimal.Decimal
	TotalAmount      decimal.Decimal
	Notes            string
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	SupplierName string // solo lectura
	Items        []PurchaseOrderItem
}

// FullyReceived es true cuando todas las líneas recibieron al menos lo pedido.
func (po *PurchaseOrder) FullyReceived() bool {
	if len(po.Items) == 0 {
		return false
	}
	for _, it := range po.Items {
		if it.ReceivedQuantity.LessThan(it.Quantity) {
			return false
		}
	}
	return true
}

// PurchaseOrderItem línea de la orden de compra.
type PurchaseOrderItem struct {
	ID               string
	PurchaseOrderID  string
	IngredientID     string
	Quantity         decimal.Decimal
	UnitCost         decimal.Decimal
	TotalCost        decimal.Decimal
	ReceivedQuantity decimal.Decimal
	Notes            string

	IngredientName string // solo lectura
}
