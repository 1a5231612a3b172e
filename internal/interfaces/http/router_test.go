package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetbite/bakery-api/internal/application/dto"
	"github.com/sweetbite/bakery-api/internal/application/offers"
	"github.com/sweetbite/bakery-api/internal/domain"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
	apphttp "github.com/sweetbite/bakery-api/internal/interfaces/http"
)

// memOffers repositorio de ofertas en memoria.
type memOffers struct {
	byID map[string]*entity.Offer
}

func newMemOffers() *memOffers { return &memOffers{byID: map[string]*entity.Offer{}} }

func (m *memOffers) Create(_ context.Context, o *entity.Offer) error {
	cp := *o
	m.byID[o.ID] = &cp
	return nil
}

func (m *memOffers) GetByID(_ context.Context, id string) (*entity.Offer, error) {
	o, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memOffers) List(_ context.Context, status string) ([]*entity.Offer, error) {
	var out []*entity.Offer
	for _, o := range m.byID {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memOffers) UpdateStatus(_ context.Context, id, status string, at time.Time) error {
	o, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status, o.UpdatedAt = status, at
	return nil
}

func (m *memOffers) ListActive(_ context.Context, now time.Time) ([]*entity.Offer, error) {
	var out []*entity.Offer
	for _, o := range m.byID {
		if o.Status == entity.OfferStatusActive && !now.Before(o.StartDate) && !now.After(o.EndDate) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memOffers) GetForUpdate(ctx context.Context, id string) (*entity.Offer, error) {
	return m.GetByID(ctx, id)
}

func (m *memOffers) IncrementUses(_ context.Context, id string, at time.Time) error {
	o, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.CurrentUses++
	o.UpdatedAt = at
	return nil
}

func (m *memOffers) CountByStatus(_ context.Context) (map[string]int, error) {
	out := map[string]int{}
	for _, o := range m.byID {
		out[o.Status]++
	}
	return out, nil
}

func (m *memOffers) MostUsed(_ context.Context, limit int) ([]*entity.Offer, error) {
	var out []*entity.Offer
	for _, o := range m.byID {
		if o.CurrentUses > 0 && len(out) < limit {
			out = append(out, o)
		}
	}
	return out, nil
}

type memOfferTx struct {
	mu   sync.Mutex
	repo *memOffers
}

func (tx *memOfferTx) RunOffers(_ context.Context, fn func(repository.OfferRepository) error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return fn(tx.repo)
}

// newRouterApp arma el router completo. Los casos de uso no usados quedan en nil:
// las peticiones que prueban roles o validación nunca llegan a ellos.
func newRouterApp(deps apphttp.RouterDeps) *fiber.App {
	deps.JWTSecret = testJWTSecret
	deps.JWTIssuer = testIssuer
	deps.ServiceName = "sweetbite-test"
	app := fiber.New()
	apphttp.Router(app, deps)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, role string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRouter_Health(t *testing.T) {
	app := newRouterApp(apphttp.RouterDeps{})
	resp := call(t, app, http.MethodGet, "/health", "", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_RolesPorRuta(t *testing.T) {
	app := newRouterApp(apphttp.RouterDeps{})
	tests := []struct {
		method, path, role string
		status             int
	}{
		{http.MethodGet, "/api/cakes", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/suppliers", "staff", http.StatusForbidden},
		{http.MethodGet, "/api/ingredients/low-stock", "customer", http.StatusForbidden},
		{http.MethodPost, "/api/inventory/movements", "delivery", http.StatusForbidden},
		{http.MethodGet, "/api/inventory/reports/consumption/export", "staff", http.StatusForbidden},
		{http.MethodPost, "/api/purchase-orders/abc/receive", "staff", http.StatusForbidden},
		{http.MethodPost, "/api/recipes/abc/check-availability", "customer", http.StatusForbidden},
		{http.MethodPost, "/api/cakes", "inventory_manager", http.StatusForbidden},
		{http.MethodGet, "/api/orders/dashboard", "customer", http.StatusForbidden},
		{http.MethodPost, "/api/orders/abc/status", "customer", http.StatusForbidden},
		{http.MethodPost, "/api/orders/abc/assign-delivery", "delivery", http.StatusForbidden},
		{http.MethodGet, "/api/reports/sales", "inventory_manager", http.StatusForbidden},
		{http.MethodPost, "/api/offers", "staff", http.StatusForbidden},
		{http.MethodPatch, "/api/offers/abc/status", "inventory_manager", http.StatusForbidden},
		{http.MethodGet, "/api/users", "inventory_manager", http.StatusForbidden},
		{http.MethodDelete, "/api/users/abc", "staff", http.StatusForbidden},
		{http.MethodPut, "/api/users/abc", "customer", http.StatusForbidden},
		{http.MethodGet, "/api/offers/stats", "staff", http.StatusForbidden},
		{http.MethodPost, "/api/orders/abc/payment", "delivery", http.StatusForbidden},
		{http.MethodGet, "/api/reports/loyalty", "customer", http.StatusForbidden},
		{http.MethodGet, "/api/reports/seasonal/yearly", "delivery", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path+" "+tt.role, func(t *testing.T) {
			resp := call(t, app, tt.method, tt.path, tt.role, nil)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func decodeValidation(t *testing.T, resp *http.Response) dto.ValidationErrorResponse {
	t.Helper()
	var out dto.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRouter_ValidacionDelBody(t *testing.T) {
	app := newRouterApp(apphttp.RouterDeps{})

	t.Run("movimiento", func(t *testing.T) {
		resp := call(t, app, http.MethodPost, "/api/inventory/movements", "inventory_manager",
			map[string]any{"movement_type": "spill", "quantity": "2"})
		defer resp.Body.Close()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeValidation(t, resp)
		assert.Equal(t, "VALIDATION", body.Code)
		assert.Equal(t, "required", body.Fields["ingredient_id"])
		assert.Equal(t, "oneof", body.Fields["movement_type"])
	})

	t.Run("items del pedido", func(t *testing.T) {
		resp := call(t, app, http.MethodPost, "/api/orders", "customer", map[string]any{
			"order_type": "online",
			"items":      []map[string]any{{"cake_id": "no-es-uuid", "quantity": 1}},
		})
		defer resp.Body.Close()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeValidation(t, resp)
		assert.Equal(t, "uuid", body.Fields["items[0].cake_id"])
	})

	t.Run("pedido sin items", func(t *testing.T) {
		resp := call(t, app, http.MethodPost, "/api/orders", "customer", map[string]any{"order_type": "walk_in"})
		defer resp.Body.Close()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "required", decodeValidation(t, resp).Fields["items"])
	})

	t.Run("json mal formado", func(t *testing.T) {
		resp := call(t, app, http.MethodPost, "/api/orders", "customer", `{"order_type":`)
		defer resp.Body.Close()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body dto.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "INVALID_BODY", body.Code)
	})

	t.Run("limit fuera de rango", func(t *testing.T) {
		resp := call(t, app, http.MethodGet, "/api/ingredients?limit=500", "admin", nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "max", decodeValidation(t, resp).Fields["limit"])
	})
}

func TestRouter_Ofertas(t *testing.T) {
	repo := newMemOffers()
	app := newRouterApp(apphttp.RouterDeps{Offers: offers.NewOfferUseCase(&memOfferTx{repo: repo}, repo, nil)})
	now := time.Now().UTC()

	resp := call(t, app, http.MethodPost, "/api/offers", "admin", map[string]any{
		"title":               "Semana dulce",
		"offer_type":          "percentage",
		"status":              "active",
		"discount_percentage": "10",
		"start_date":          now.Add(-24 * time.Hour).Format(time.RFC3339),
		"end_date":            now.Add(24 * time.Hour).Format(time.RFC3339),
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.OfferResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.True(t, created.IsActive)

	t.Run("preview para clientes", func(t *testing.T) {
		resp := call(t, app, http.MethodPost, "/api/offers/"+created.ID+"/preview", "customer",
			map[string]any{"order_amount": "100.00"})
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out dto.PreviewDiscountResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.True(t, out.IsActive)
		assert.True(t, out.Discount.Equal(decimal.NewFromInt(10)), "got %s", out.Discount)
	})

	t.Run("activas", func(t *testing.T) {
		resp := call(t, app, http.MethodGet, "/api/offers/active", "delivery", nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out []dto.OfferResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.Len(t, out, 1)
		assert.Equal(t, created.ID, out[0].ID)
	})

	t.Run("aplicar", func(t *testing.T) {
		resp := call(t, app, http.MethodPost, "/api/offers/"+created.ID+"/apply", "customer",
			map[string]any{"order_amount": "40.00"})
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out dto.ApplyOfferResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.True(t, out.FinalAmount.Equal(decimal.NewFromInt(36)), "got %s", out.FinalAmount)
		assert.Equal(t, 1, out.CurrentUses)
	})

	t.Run("estadísticas solo admin", func(t *testing.T) {
		resp := call(t, app, http.MethodGet, "/api/offers/stats", "customer", nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp = call(t, app, http.MethodGet, "/api/offers/stats", "admin", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out dto.OfferStatsResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, 1, out.ActiveOffers)
		require.Len(t, out.MostUsed, 1)
		assert.Equal(t, created.ID, out.MostUsed[0].ID)
	})

	t.Run("pausar", func(t *testing.T) {
		resp := call(t, app, http.MethodPatch, "/api/offers/"+created.ID+"/status", "admin",
			map[string]any{"status": "paused"})
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out dto.OfferResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "paused", out.Status)
		assert.False(t, out.IsActive)
	})

	t.Run("aplicar oferta pausada", func(t *testing.T) {
		resp := call(t, app, http.MethodPost, "/api/offers/"+created.ID+"/apply", "customer",
			map[string]any{"order_amount": "40.00"})
		defer resp.Body.Close()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeValidation(t, resp).Fields, "offer")
	})

	t.Run("oferta inexistente", func(t *testing.T) {
		resp := call(t, app, http.MethodPost, "/api/offers/00000000-0000-0000-0000-00000000dead/preview", "customer",
			map[string]any{"order_amount": "50"})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("porcentual sin porcentaje", func(t *testing.T) {
		resp := call(t, app, http.MethodPost, "/api/offers", "admin", map[string]any{
			"title":      "Sin porcentaje",
			"offer_type": "percentage",
			"start_date": now.Format(time.RFC3339),
			"end_date":   now.Add(time.Hour).Format(time.RFC3339),
		})
		defer resp.Body.Close()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeValidation(t, resp).Fields, "discount_percentage")
	})
}

func TestRouter_IdentificadorMalFormado(t *testing.T) {
	repo := newMemOffers()
	app := newRouterApp(apphttp.RouterDeps{Offers: offers.NewOfferUseCase(&memOfferTx{repo: repo}, repo, nil)})

	cases := []struct {
		method, path, role string
		body               any
	}{
		{http.MethodGet, "/api/orders/not-a-uuid", "customer", nil},
		{http.MethodPost, "/api/orders/123/status", "admin", map[string]any{"status": "confirmed"}},
		{http.MethodPost, "/api/offers/abc/preview", "customer", map[string]any{"order_amount": "10"}},
		{http.MethodPost, "/api/offers/abc/apply", "customer", map[string]any{"order_amount": "10"}},
		{http.MethodGet, "/api/ingredients/zzz", "inventory_manager", nil},
		{http.MethodGet, "/api/purchase-orders/x1", "admin", nil},
		{http.MethodGet, "/api/recipes/not-an-id", "admin", nil},
		{http.MethodGet, "/api/addresses/nope", "customer", nil},
		{http.MethodGet, "/api/users/12", "admin", nil},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp := call(t, app, tc.method, tc.path, tc.role, tc.body)
			defer resp.Body.Close()

			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "uuid", decodeValidation(t, resp).Fields["id"])
		})
	}
}
