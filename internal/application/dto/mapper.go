package dto

import (
	"time"

	"github.com/sweetbite/bakery-api/internal/domain/entity"
)

// DateLayout formato de fechas sin hora en requests y respuestas.
const DateLayout = "2006-01-02"

// FormatDate devuelve "" para nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseDate interpreta YYYY-MM-DD; "" devuelve nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func FromSupplier(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		Website:       s.Website,
		Notes:         s.Notes,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
	}
}

func FromIngredient(i *entity.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:           i.ID,
		Name:         i.Name,
		Description:  i.Description,
		Unit:         i.Unit,
		CurrentStock: i.CurrentStock,
		MinimumStock: i.MinimumStock,
		UnitCost:     i.UnitCost,
		TotalValue:   i.TotalValue(),
		IsLowStock:   i.IsLowStock(),
		SupplierID:   i.SupplierID,
		SupplierName: i.SupplierName,
		Location:     i.Location,
		ExpiryDate:   FormatDate(i.ExpiryDate),
		IsActive:     i.IsActive,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

func FromMovement(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:             m.ID,
		IngredientID:   m.IngredientID,
		IngredientName: m.IngredientName,
		Unit:           m.IngredientUnit,
		Type:           m.Type,
		Quantity:       m.Quantity,
		PreviousStock:  m.PreviousStock,
		NewStock:       m.NewStock,
		UnitCost:       m.UnitCost,
		TotalValue:     m.TotalValue,
		Reference:      m.Reference,
		Notes:          m.Notes,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
}

func FromCake(c *entity.Cake) CakeResponse {
	return CakeResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Price,
		IsAvailable: c.IsAvailable,
		CreatedAt:   c.CreatedAt,
	}
}

func FromOrder(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:                 it.ID,
			CakeID:             it.CakeID,
			CakeName:           it.CakeName,
			Quantity:           it.Quantity,
			UnitPrice:          it.UnitPrice,
			TotalPrice:         it.TotalPrice,
			CustomizationNotes: it.CustomizationNotes,
		})
	}
	var history []OrderStatusHistoryResponse
	for _, h := range o.History {
		history = append(history, OrderStatusHistoryResponse{
			Status:    h.Status,
			Notes:     h.Notes,
			UpdatedBy: h.UpdatedBy,
			CreatedAt: h.CreatedAt,
		})
	}
	return OrderResponse{
		ID:                   o.ID,
		OrderNumber:          o.OrderNumber,
		CustomerID:           o.CustomerID,
		OrderType:            o.OrderType,
		OrderStatus:          o.OrderStatus,
		PaymentStatus:        o.PaymentStatus,
		PaymentMethod:        o.PaymentMethod,
		ShippingAddressID:    o.ShippingAddressID,
		DeliveryAddress:      o.DeliveryAddress,
		DeliveryInstructions: o.DeliveryInstructions,
		DeliveryPersonID:     o.DeliveryPersonID,
		AssignedStaffID:      o.AssignedStaffID,
		DeliveryDate:         FormatDate(o.DeliveryDate),
		Subtotal:             o.Subtotal,
		Tax:                  o.Tax,
		DeliveryFee:          o.DeliveryFee,
		TotalAmount:          o.TotalAmount,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
		ConfirmedAt:          o.ConfirmedAt,
		DeliveredAt:          o.DeliveredAt,
		Items:                items,
		StatusHistory:        history,
	}
}

func FromPurchaseOrder(po *entity.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, PurchaseOrderItemResponse{
			ID:               it.ID,
			IngredientID:     it.IngredientID,
			IngredientName:   it.IngredientName,
			Quantity:         it.Quantity,
			UnitCost:         it.UnitCost,
			TotalCost:        it.TotalCost,
			ReceivedQuantity: it.ReceivedQuantity,
			Notes:            it.Notes,
		})
	}
	orderDate := po.OrderDate
	return PurchaseOrderResponse{
		ID:               po.ID,
		PONumber:         po.PONumber,
		SupplierID:       po.SupplierID,
		SupplierName:     po.SupplierName,
		Status:           po.Status,
		OrderDate:        FormatDate(&orderDate),
		ExpectedDelivery: FormatDate(po.ExpectedDelivery),
		DeliveryDate:     FormatDate(po.DeliveryDate),
		Subtotal:         po.Subtotal,
		Tax:              po.Tax,
		TotalAmount:      po.TotalAmount,
		Notes:            po.Notes,
		CreatedBy:        po.CreatedBy,
		CreatedAt:        po.CreatedAt,
		Items:            items,
	}
}

func FromRecipe(r *entity.Recipe) RecipeResponse {
	lines := make([]RecipeLineResponse, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		lines = append(lines, RecipeLineResponse{
			IngredientID:   ri.IngredientID,
			IngredientName: ri.IngredientName,
			Quantity:       ri.Quantity,
			Unit:           ri.Unit,
			Notes:          ri.Notes,
		})
	}
	return RecipeResponse{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Servings:     r.Servings,
		Instructions: r.Instructions,
		IsActive:     r.IsActive,
		Ingredients:  lines,
	}
}

func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.Phone,
		Address:     u.Address,
		Role:        u.Role,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

func FromShippingAddress(a *entity.ShippingAddress) ShippingAddressResponse {
	return ShippingAddressResponse{
		ID:           a.ID,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
		IsDefault:    a.IsDefault,
		FullAddress:  a.Formatted(),
		CreatedAt:    a.CreatedAt,
	}
}
