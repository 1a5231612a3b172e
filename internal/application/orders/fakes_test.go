package orders_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
)

type memCakes struct {
	items map[string]*entity.Cake
}

func (m *memCakes) Create(_ context.Context, c *entity.Cake) error {
	if m.items == nil {
		m.items = map[string]*entity.Cake{}
	}
	m.items[c.ID] = c
	return nil
}

func (m *memCakes) GetByID(_ context.Context, id string) (*entity.Cake, error) {
	return m.items[id], nil
}

func (m *memCakes) List(_ context.Context, availableOnly bool) ([]*entity.Cake, error) {
	var out []*entity.Cake
	for _, c := range m.items {
		if availableOnly && !c.IsAvailable {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type memOrders struct {
	mu      sync.Mutex
	orders  map[string]entity.Order
	items   []entity.OrderItem
	history []entity.OrderStatusHistory

	lastFilter repository.OrderFilter
}

func newMemOrders() *memOrders { return &memOrders{orders: map[string]entity.Order{}} }

func (m *memOrders) Create(_ context.Context, o *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *o
	cp.Items, cp.History = nil, nil
	m.orders[o.ID] = cp
	return nil
}

func (m *memOrders) CreateItem(_ context.Context, it *entity.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, *it)
	return nil
}

func (m *memOrders) AddHistory(_ context.Context, h *entity.OrderStatusHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, *h)
	return nil
}

func (m *memOrders) load(id string) *entity.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil
	}
	for _, it := range m.items {
		if it.OrderID == id {
			o.Items = append(o.Items, it)
		}
	}
	for _, h := range m.history {
		if h.OrderID == id {
			o.History = append(o.History, h)
		}
	}
	return &o
}

func (m *memOrders) GetByID(_ context.Context, id string) (*entity.Order, error) {
	return m.load(id), nil
}

func (m *memOrders) GetForUpdate(_ context.Context, id string) (*entity.Order, error) {
	return m.load(id), nil
}

func (m *memOrders) UpdateStatus(_ context.Context, o *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := m.orders[o.ID]
	stored.OrderStatus = o.OrderStatus
	stored.ConfirmedAt = o.ConfirmedAt
	stored.DeliveredAt = o.DeliveredAt
	stored.UpdatedAt = o.UpdatedAt
	m.orders[o.ID] = stored
	return nil
}

func (m *memOrders) UpdateAssignment(_ context.Context, o *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := m.orders[o.ID]
	stored.DeliveryPersonID = o.DeliveryPersonID
	stored.AssignedStaffID = o.AssignedStaffID
	stored.UpdatedAt = o.UpdatedAt
	m.orders[o.ID] = stored
	return nil
}

func (m *memOrders) UpdatePayment(_ context.Context, o *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := m.orders[o.ID]
	stored.PaymentStatus = o.PaymentStatus
	stored.PaymentMethod = o.PaymentMethod
	stored.UpdatedAt = o.UpdatedAt
	m.orders[o.ID] = stored
	return nil
}

func (m *memOrders) List(_ context.Context, f repository.OrderFilter, limit, offset int) ([]*entity.Order, int, error) {
	m.lastFilter = f
	var out []*entity.Order
	for id := range m.orders {
		o := m.load(id)
		if f.CustomerID != "" && o.CustomerID != f.CustomerID {
			continue
		}
		if f.Status != "" && o.OrderStatus != f.Status {
			continue
		}
		out = append(out, o)
	}
	return out, len(out), nil
}

type memUsers struct {
	items map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.items[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.items[id], nil
}

func (m *memUsers) ExistsUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, u := range m.items {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) List(_ context.Context, role string, limit, offset int) ([]*entity.User, int, error) {
	var out []*entity.User
	for _, u := range m.items {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out, len(out), nil
}

type memAddresses struct {
	mu    sync.Mutex
	items map[string]entity.ShippingAddress
}

func newMemAddresses() *memAddresses {
	return &memAddresses{items: map[string]entity.ShippingAddress{}}
}

func (m *memAddresses) Create(_ context.Context, a *entity.ShippingAddress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[a.ID] = *a
	return nil
}

func (m *memAddresses) GetForCustomer(_ context.Context, id, customerID string) (*entity.ShippingAddress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok || a.CustomerID != customerID {
		return nil, nil
	}
	return &a, nil
}

func (m *memAddresses) ListByCustomer(_ context.Context, customerID string) ([]*entity.ShippingAddress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.ShippingAddress
	for _, a := range m.items {
		if a.CustomerID == customerID {
			cp := a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memAddresses) Update(_ context.Context, a *entity.ShippingAddress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if stored, ok := m.items[a.ID]; !ok || stored.CustomerID != a.CustomerID {
		return domain.ErrNotFound
	}
	m.items[a.ID] = *a
	return nil
}

func (m *memAddresses) Delete(_ context.Context, id, customerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if stored, ok := m.items[id]; !ok || stored.CustomerID != customerID {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memAddresses) SetDefault(_ context.Context, id, customerID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if stored, ok := m.items[id]; !ok || stored.CustomerID != customerID {
		return domain.ErrNotFound
	}
	for k, a := range m.items {
		if a.CustomerID != customerID {
			continue
		}
		a.IsDefault = k == id
		a.UpdatedAt = at
		m.items[k] = a
	}
	return nil
}

func (m *memAddresses) defaults(customerID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, a := range m.items {
		if a.CustomerID == customerID && a.IsDefault {
			n++
		}
	}
	return n
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.items[u.ID] = u
	return nil
}

func (m *memUsers) EmailTaken(_ context.Context, email, exceptID string) (bool, error) {
	for _, u := range m.items {
		if u.ID != exceptID && u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// memSeq contador diario en memoria.
type memSeq struct {
	mu     sync.Mutex
	values map[string]int64
}

func (s *memSeq) Next(_ context.Context, prefix string, day time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = map[string]int64{}
	}
	key := prefix + day.Format("20060102")
	s.values[key]++
	return s.values[key], nil
}

// memTx restaura pedidos, líneas e historial si fn falla.
type memTx struct {
	cakes     *memCakes
	orders    *memOrders
	addresses *memAddresses
}

func (tx *memTx) RunOrders(ctx context.Context, fn func(
	cakeRepo repository.CakeRepository,
	orderRepo repository.OrderRepository,
	addressRepo repository.AddressRepository,
) error) error {
	tx.orders.mu.Lock()
	orders := make(map[string]entity.Order, len(tx.orders.orders))
	for k, v := range tx.orders.orders {
		orders[k] = v
	}
	nItems, nHistory := len(tx.orders.items), len(tx.orders.history)
	tx.orders.mu.Unlock()

	if err := fn(tx.cakes, tx.orders, tx.addresses); err != nil {
		tx.orders.mu.Lock()
		tx.orders.orders = orders
		tx.orders.items = tx.orders.items[:nItems]
		tx.orders.history = tx.orders.history[:nHistory]
		tx.orders.mu.Unlock()
		return err
	}
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

var fixedNow = time.Date(2026, 10, 18, 11, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }
