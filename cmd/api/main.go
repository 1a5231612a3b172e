package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/sweetbite/bakery-api/internal/application/analytics"
	"github.com/sweetbite/bakery-api/internal/application/inventory"
	"github.com/sweetbite/bakery-api/internal/application/offers"
	"github.com/sweetbite/bakery-api/internal/application/orders"
	"github.com/sweetbite/bakery-api/internal/application/purchasing"
	"github.com/sweetbite/bakery-api/internal/application/recipes"
	"github.com/sweetbite/bakery-api/internal/application/users"
	"github.com/sweetbite/bakery-api/internal/domain/repository"
	"github.com/sweetbite/bakery-api/internal/infrastructure/excel"
	infrapdf "github.com/sweetbite/bakery-api/internal/infrastructure/pdf"
	"github.com/sweetbite/bakery-api/internal/infrastructure/postgres"
	infraredis "github.com/sweetbite/bakery-api/internal/infrastructure/redis"
	httpRouter "github.com/sweetbite/bakery-api/internal/interfaces/http"
	"github.com/sweetbite/bakery-api/pkg/config"
	"github.com/sweetbite/bakery-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("sequence_backend", cfg.Sequence.Backend).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: todas las rutas /api responderán 401")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	ingredientRepo := postgres.NewIngredientRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	cakeRepo := postgres.NewCakeRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	offerRepo := postgres.NewOfferRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	pgSequence := postgres.NewSequenceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Números de pedido y de orden de compra: contador en PostgreSQL o INCR en Redis.
	var seq repository.SequenceGenerator = pgSequence
	if cfg.Sequence.Backend == config.SequenceRedis {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		seq = infraredis.NewSequenceGenerator(rdb, pgSequence, log.Component("sequence"))
	}

	ledgerUC := inventory.NewApplyMovementUseCase(txRunner, log.Component("ledger"), nil)
	ingredientUC := inventory.NewIngredientUseCase(txRunner, ledgerUC, ingredientRepo, supplierRepo, movementRepo, nil)
	replenishmentUC := inventory.NewReplenishmentUseCase(ingredientRepo)

	poUC := purchasing.NewPurchaseOrderUseCase(
		txRunner, ledgerUC, poRepo, supplierRepo, ingredientRepo, seq, log.Component("purchasing"), nil,
	)
	recipeUC := recipes.NewRecipeUseCase(txRunner, recipeRepo, ingredientRepo, nil)

	cakeUC := orders.NewCakeUseCase(cakeRepo)
	createOrderUC := orders.NewCreateOrderUseCase(txRunner, seq, log.Component("orders"), nil)
	orderUC := orders.NewOrderUseCase(txRunner, orderRepo, userRepo, log.Component("orders"), nil)
	addressUC := orders.NewAddressUseCase(txRunner, postgres.NewAddressRepository(pool), log.Component("orders"), nil)
	receiptUC := orders.NewReceiptUseCase(orderRepo, userRepo, infrapdf.NewReceiptGenerator())

	inventoryReports := analytics.NewInventoryReportUseCase(analyticsRepo, ingredientRepo, nil)
	dashboardUC := analytics.NewDashboardUseCase(analyticsRepo, movementRepo, orderRepo, nil)
	salesReports := analytics.NewSalesReportUseCase(analyticsRepo, nil)
	exportUC := analytics.NewExportUseCase(inventoryReports, excel.NewReportExporter())

	offerUC := offers.NewOfferUseCase(txRunner, offerRepo, nil)
	userUC := users.NewUserUseCase(userRepo, nil)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en http://localhost:<port>/docs cuando existe el swagger.json generado.
	if _, err := os.Stat(cfg.HTTP.SwaggerPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerPath,
			Path:     "docs",
			Title:    "SweetBite API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName:      cfg.App.Name,
		Ingredients:      ingredientUC,
		Ledger:           ledgerUC,
		Replenishment:    replenishmentUC,
		PurchaseOrders:   poUC,
		Recipes:          recipeUC,
		Cakes:            cakeUC,
		CreateOrder:      createOrderUC,
		Orders:           orderUC,
		Addresses:        addressUC,
		Receipts:         receiptUC,
		Dashboard:        dashboardUC,
		InventoryReports: inventoryReports,
		SalesReports:     salesReports,
		Exports:          exportUC,
		Offers:           offerUC,
		Users:            userUC,
		JWTSecret:        cfg.JWT.Secret,
		JWTIssuer:        cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
