package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/PuntoVenta-api/internal/application/auth"
	"github.com/jhoicas/PuntoVenta-api/internal/application/cashregister"
	"github.com/jhoicas/PuntoVenta-api/internal/application/catalog"
	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/application/usecase"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/cache"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/PuntoVenta-api/internal/interfaces/http"
	"github.com/jhoicas/PuntoVenta-api/pkg/config"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché de recetas: Redis si está configurado, noop si no.
	var recipeCache catalog.RecipeCache = cache.NewNoop()
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		recipeCache = redisCache
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de recetas en Redis activada")
	}

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	linkRepo := postgres.NewComponentLinkRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	sessionRepo := postgres.NewCashSessionRepository(pool)
	cashTxRepo := postgres.NewCashTransactionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	resolver := catalog.NewComponentResolver(linkRepo, recipeCache)
	catalogUC := catalog.NewUseCase(productRepo, linkRepo, resolver)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	inventoryUC := inventory.NewUseCase(txRunner, productRepo, warehouseRepo, stockRepo)
	createSaleUC := sales.NewCreateSaleUseCase(txRunner, userRepo, productRepo, saleRepo, resolver)
	cancelSaleUC := sales.NewCancelSaleUseCase(txRunner)
	cashUC := cashregister.NewUseCase(txRunner, sessionRepo, cashTxRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CatalogUC:   catalogUC,
		WarehouseUC: warehouseUC,
		InventoryUC: inventoryUC,
		CreateSale:  createSaleUC,
		CancelSale:  cancelSaleUC,
		CashUC:      cashUC,
		JWTSecret:   cfg.JWT.Secret,
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
