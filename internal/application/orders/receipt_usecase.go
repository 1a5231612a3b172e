package orders

import (
	"context"
	"fmt"

	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de un pedido.
type ReceiptUseCase struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(orderRepo repository.OrderRepository, userRepo repository.UserRepository, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{orderRepo: orderRepo, userRepo: userRepo, generator: generator}
}

// DownloadReceipt carga el pedido con sus líneas, verifica el alcance del viewer y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el pedido no existe.
//   - domain.ErrForbidden        si el pedido está fuera del alcance del viewer.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, v Viewer, orderID string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar pedido ──────────────────────────────────────────────────────
	o, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener pedido: %w", err)
	}
	if o == nil {
		return nil, "", domain.ErrNotFound
	}
	if !CanView(v, o) {
		return nil, "", domain.ErrForbidden
	}

	// ── 2. Cliente (opcional en el comprobante) ───────────────────────────────
	customer, err := uc.userRepo.GetByID(ctx, o.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener cliente: %w", err)
	}

	// ── 3. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, o, customer)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("pedido_%s.pdf", o.OrderNumber), nil
}
