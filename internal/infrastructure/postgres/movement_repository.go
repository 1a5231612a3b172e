package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos sobre PostgreSQL. Solo inserta y lee.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	const query = `
		INSERT INTO stock_movements (id, ingredient_id, movement_type, quantity, previous_stock, new_stock,
			unit_cost, total_value, reference, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.IngredientID, m.Type, m.Quantity, m.PreviousStock, m.NewStock,
		m.UnitCost, m.TotalValue, m.Reference, m.Notes, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// List movimientos más recientes primero, con nombre y unidad del ingrediente.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	var w whereBuilder
	if f.IngredientID != "" {
		w.add("m.ingredient_id = $%d", f.IngredientID)
	}
	if f.Type != "" {
		w.add("m.movement_type = $%d", f.Type)
	}
	if f.From != nil {
		w.add("m.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("m.created_at < $%d", *f.To)
	}
	where := w.sql()

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements m`+where, w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock movements: %w", err)
	}

	query := `
		SELECT m.id, m.ingredient_id, m.movement_type, m.quantity, m.previous_stock, m.new_stock,
			m.unit_cost, m.total_value, m.reference, m.notes, m.created_by, m.created_at,
			i.name, i.unit
		FROM stock_movements m
		JOIN ingredients i ON i.id = m.ingredient_id` + where + `
		ORDER BY m.created_at DESC, m.id DESC` + w.page(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(&m.ID, &m.IngredientID, &m.Type, &m.Quantity, &m.PreviousStock, &m.NewStock,
		&m.UnitCost, &m.TotalValue, &m.Reference, &m.Notes, &m.CreatedBy, &m.CreatedAt,
		&m.IngredientName, &m.IngredientUnit)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
