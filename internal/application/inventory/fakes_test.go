package inventory_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memIngredients struct {
	mu    sync.Mutex
	items map[string]entity.Ingredient

	lastExpiringFrom, lastExpiringTo time.Time
}

func newMemIngredients(list ...entity.Ingredient) *memIngredients {
	m := &memIngredients{items: map[string]entity.Ingredient{}}
	for _, ing := range list {
		m.items[ing.ID] = ing
	}
	return m
}

func (m *memIngredients) get(id string) *entity.Ingredient {
	m.mu.Lock()
	defer m.mu.Unlock()
	ing, ok := m.items[id]
	if !ok {
		return nil
	}
	return &ing
}

func (m *memIngredients) Create(_ context.Context, ing *entity.Ingredient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[ing.ID] = *ing
	return nil
}

func (m *memIngredients) GetByID(_ context.Context, id string) (*entity.Ingredient, error) {
	return m.get(id), nil
}

func (m *memIngredients) GetForUpdate(_ context.Context, id string) (*entity.Ingredient, error) {
	return m.get(id), nil
}

func (m *memIngredients) Update(_ context.Context, ing *entity.Ingredient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := m.items[ing.ID]
	cp := *ing
	cp.CurrentStock = stored.CurrentStock
	m.items[ing.ID] = cp
	return nil
}

func (m *memIngredients) UpdateStock(_ context.Context, id string, stock decimal.Decimal, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ing := m.items[id]
	ing.CurrentStock = stock
	ing.UpdatedAt = at
	m.items[id] = ing
	return nil
}

func (m *memIngredients) all() []*entity.Ingredient {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Ingredient, 0, len(m.items))
	for _, ing := range m.items {
		cp := ing
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *memIngredients) List(_ context.Context, f repository.IngredientFilter, limit, offset int) ([]*entity.Ingredient, int, error) {
	var out []*entity.Ingredient
	for _, ing := range m.all() {
		if f.Unit != "" && ing.Unit != f.Unit {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(ing.Name), strings.ToLower(f.Search)) {
			continue
		}
		if f.LowStock != nil && ing.IsLowStock() != *f.LowStock {
			continue
		}
		if f.Active != nil && ing.IsActive != *f.Active {
			continue
		}
		out = append(out, ing)
	}
	total := len(out)
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (m *memIngredients) ListLowStock(_ context.Context) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	for _, ing := range m.all() {
		if ing.IsActive && ing.IsLowStock() {
			out = append(out, ing)
		}
	}
	return out, nil
}

func (m *memIngredients) ListExpiring(_ context.Context, from, to time.Time) ([]*entity.Ingredient, error) {
	m.lastExpiringFrom, m.lastExpiringTo = from, to
	var out []*entity.Ingredient
	for _, ing := range m.all() {
		if ing.ExpiryDate == nil {
			continue
		}
		if !ing.ExpiryDate.Before(from) && !ing.ExpiryDate.After(to) {
			out = append(out, ing)
		}
	}
	return out, nil
}

type memSuppliers struct {
	items map[string]*entity.Supplier
}

func (m *memSuppliers) Create(_ context.Context, s *entity.Supplier) error {
	if m.items == nil {
		m.items = map[string]*entity.Supplier{}
	}
	m.items[s.ID] = s
	return nil
}

func (m *memSuppliers) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	return m.items[id], nil
}

func (m *memSuppliers) List(_ context.Context, activeOnly bool) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range m.items {
		if activeOnly && !s.IsActive {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type memMovements struct {
	mu   sync.Mutex
	list []entity.StockMovement

	lastFilter repository.MovementFilter
}

func (m *memMovements) Create(_ context.Context, mov *entity.StockMovement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.list = append(m.list, *mov)
	return nil
}

func (m *memMovements) List(_ context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = f
	var out []*entity.StockMovement
	for i := len(m.list) - 1; i >= 0; i-- {
		mov := m.list[i]
		if f.IngredientID != "" && mov.IngredientID != f.IngredientID {
			continue
		}
		if f.Type != "" && mov.Type != f.Type {
			continue
		}
		out = append(out, &mov)
	}
	return out, len(out), nil
}

func (m *memMovements) forIngredient(id string) []entity.StockMovement {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.StockMovement
	for _, mov := range m.list {
		if mov.IngredientID == id {
			out = append(out, mov)
		}
	}
	return out
}

// memTx ejecuta fn sobre los repos en memoria y restaura su estado si fn falla.
// serial ocupa el lugar del SELECT ... FOR UPDATE: una transacción a la vez.
type memTx struct {
	ingredients *memIngredients
	movements   *memMovements

	serial sync.Mutex
}

func (tx *memTx) Run(ctx context.Context, fn func(
	ingredientRepo repository.IngredientRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx.serial.Lock()
	defer tx.serial.Unlock()

	tx.ingredients.mu.Lock()
	snapshot := make(map[string]entity.Ingredient, len(tx.ingredients.items))
	for k, v := range tx.ingredients.items {
		snapshot[k] = v
	}
	tx.ingredients.mu.Unlock()
	tx.movements.mu.Lock()
	movCount := len(tx.movements.list)
	tx.movements.mu.Unlock()

	if err := fn(tx.ingredients, tx.movements); err != nil {
		tx.ingredients.mu.Lock()
		tx.ingredients.items = snapshot
		tx.ingredients.mu.Unlock()
		tx.movements.mu.Lock()
		tx.movements.list = tx.movements.list[:movCount]
		tx.movements.mu.Unlock()
		return err
	}
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }
