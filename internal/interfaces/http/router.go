package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sweetbite/bakery-api/internal/application/analytics"
	"github.com/sweetbite/bakery-api/internal/application/inventory"
	"github.com/sweetbite/bakery-api/internal/application/offers"
	"github.com/sweetbite/bakery-api/internal/application/orders"
	"github.com/sweetbite/bakery-api/internal/application/purchasing"
	"github.com/sweetbite/bakery-api/internal/application/recipes"
	"github.com/sweetbite/bakery-api/internal/application/users"
	"github.com/sweetbite/bakery-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName string

	Ingredients   *inventory.IngredientUseCase
	Ledger        *inventory.ApplyMovementUseCase
	Replenishment *inventory.ReplenishmentUseCase

	PurchaseOrders *purchasing.PurchaseOrderUseCase
	Recipes        *recipes.RecipeUseCase

	Cakes       *orders.CakeUseCase
	CreateOrder *orders.CreateOrderUseCase
	Orders      *orders.OrderUseCase
	Receipts    *orders.ReceiptUseCase
	Addresses   *orders.AddressUseCase

	Dashboard        *analytics.DashboardUseCase
	InventoryReports *analytics.InventoryReportUseCase
	SalesReports     *analytics.SalesReportUseCase
	Exports          *analytics.ExportUseCase

	Offers *offers.OfferUseCase
	Users  *users.UserUseCase

	JWTSecret string
	JWTIssuer string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	// Todo /api requiere Bearer Token de un usuario activo.
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	if deps.Users != nil {
		api.Use(RequireActiveUser(deps.Users))
	}

	admin := RequireRole(entity.RoleAdmin)
	stock := RequireRole(entity.RoleAdmin, entity.RoleInventoryManager)
	shop := RequireRole(entity.RoleAdmin, entity.RoleStaff)
	fulfilment := RequireRole(entity.RoleAdmin, entity.RoleStaff, entity.RoleDelivery)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.Ingredients, deps.Ledger, deps.Replenishment)
	suppliers := api.Group("/suppliers", stock)
	suppliers.Post("/", inventoryHandler.CreateSupplier)
	suppliers.Get("/", inventoryHandler.ListSuppliers)

	ingredients := api.Group("/ingredients", stock)
	ingredients.Post("/", inventoryHandler.CreateIngredient)
	ingredients.Get("/", inventoryHandler.ListIngredients)
	ingredients.Get("/low-stock", inventoryHandler.LowStock)
	ingredients.Get("/expiring-soon", inventoryHandler.ExpiringSoon)
	ingredients.Get("/reorder-suggestions", inventoryHandler.ReorderSuggestions)
	ingredients.Get("/:id", inventoryHandler.GetIngredient)
	ingredients.Put("/:id", inventoryHandler.UpdateIngredient)

	analyticsHandler := NewAnalyticsHandler(deps.Dashboard, deps.InventoryReports, deps.SalesReports, deps.Exports)
	inv := api.Group("/inventory", stock)
	inv.Post("/movements", inventoryHandler.ApplyMovement)
	inv.Get("/movements", inventoryHandler.ListMovements)
	inv.Get("/dashboard", analyticsHandler.InventoryDashboard)
	inv.Get("/reports/consumption", analyticsHandler.ConsumptionAnalysis)
	inv.Get("/reports/consumption/export", analyticsHandler.ExportConsumption)
	inv.Get("/reports/movements", analyticsHandler.MovementReport)
	inv.Get("/reports/movements/export", analyticsHandler.ExportMovements)
	inv.Get("/reports/cost-analysis", analyticsHandler.CostAnalysis)

	// Compras y recetas
	purchasingHandler := NewPurchasingHandler(deps.PurchaseOrders, deps.Recipes)
	pos := api.Group("/purchase-orders", stock)
	pos.Post("/", purchasingHandler.CreatePurchaseOrder)
	pos.Get("/", purchasingHandler.ListPurchaseOrders)
	pos.Get("/pending", purchasingHandler.PendingPurchaseOrders)
	pos.Get("/:id", purchasingHandler.GetPurchaseOrder)
	pos.Post("/:id/receive", purchasingHandler.ReceiveItems)
	pos.Patch("/:id/status", purchasingHandler.UpdatePurchaseOrderStatus)

	recipeGroup := api.Group("/recipes", stock)
	recipeGroup.Post("/", purchasingHandler.CreateRecipe)
	recipeGroup.Get("/", purchasingHandler.ListRecipes)
	recipeGroup.Get("/:id", purchasingHandler.GetRecipe)
	recipeGroup.Post("/:id/check-availability", purchasingHandler.CheckAvailability)

	// Tienda
	orderHandler := NewOrderHandler(deps.Cakes, deps.CreateOrder, deps.Orders, deps.Receipts)
	cakes := api.Group("/cakes")
	cakes.Post("/", shop, orderHandler.CreateCake)
	cakes.Get("/", orderHandler.ListCakes)

	orderGroup := api.Group("/orders")
	orderGroup.Post("/", orderHandler.CreateOrder)
	orderGroup.Get("/", orderHandler.ListOrders)
	orderGroup.Get("/dashboard", shop, analyticsHandler.OrdersDashboard)
	orderGroup.Get("/:id", orderHandler.GetOrder)
	orderGroup.Post("/:id/status", fulfilment, orderHandler.UpdateStatus)
	orderGroup.Post("/:id/assign-delivery", shop, orderHandler.AssignDelivery)
	orderGroup.Post("/:id/assign-staff", shop, orderHandler.AssignStaff)
	orderGroup.Post("/:id/payment", shop, orderHandler.UpdatePayment)
	orderGroup.Get("/:id/receipt", orderHandler.DownloadReceipt)

	addressHandler := NewAddressHandler(deps.Addresses)
	addresses := api.Group("/addresses")
	addresses.Post("/", addressHandler.Create)
	addresses.Get("/", addressHandler.List)
	addresses.Get("/:id", addressHandler.Get)
	addresses.Put("/:id", addressHandler.Update)
	addresses.Delete("/:id", addressHandler.Delete)
	addresses.Post("/:id/set-default", addressHandler.SetDefault)

	reports := api.Group("/reports", shop)
	reports.Get("/sales", analyticsHandler.SalesReport)
	reports.Get("/top-cakes", analyticsHandler.TopSellingCakes)
	reports.Get("/loyalty", analyticsHandler.LoyaltyInsights)
	reports.Get("/seasonal", analyticsHandler.SeasonalAnalysis)
	reports.Get("/seasonal/yearly", analyticsHandler.YearlySeasonalSummary)

	// Ofertas y usuarios
	offerHandler := NewOfferHandler(deps.Offers)
	offerGroup := api.Group("/offers")
	offerGroup.Get("/active", offerHandler.Active)
	offerGroup.Get("/stats", admin, offerHandler.Stats)
	offerGroup.Post("/:id/preview", offerHandler.PreviewDiscount)
	offerGroup.Post("/:id/apply", offerHandler.Apply)
	offerGroup.Post("/", admin, offerHandler.Create)
	offerGroup.Get("/", admin, offerHandler.List)
	offerGroup.Patch("/:id/status", admin, offerHandler.UpdateStatus)

	userHandler := NewUserHandler(deps.Users)
	userGroup := api.Group("/users")
	// /me antes de /:id; el perfil propio no requiere rol admin.
	userGroup.Get("/me", userHandler.Profile)
	userGroup.Put("/me", userHandler.UpdateProfile)
	userGroup.Post("/", admin, userHandler.Create)
	userGroup.Get("/", admin, userHandler.List)
	userGroup.Get("/:id", admin, userHandler.Get)
	userGroup.Put("/:id", admin, userHandler.Update)
	userGroup.Delete("/:id", admin, userHandler.Deactivate)
}
