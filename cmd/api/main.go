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

	"github.com/jhoicas/molino-inventario/internal/application/adjustment"
	"github.com/jhoicas/molino-inventario/internal/application/ledger"
	"github.com/jhoicas/molino-inventario/internal/application/movement"
	"github.com/jhoicas/molino-inventario/internal/application/reservation"
	"github.com/jhoicas/molino-inventario/internal/application/warehouse"
	"github.com/jhoicas/molino-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/molino-inventario/internal/infrastructure/rediscache"
	httpRouter "github.com/jhoicas/molino-inventario/internal/interfaces/http"
	"github.com/jhoicas/molino-inventario/pkg/config"
	"github.com/jhoicas/molino-inventario/pkg/logger"
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

	// Cache de reportes (opcional): sin REDIS_ADDR las consultas van
	// directo a la base.
	var reportCache ledger.QueryCache
	if cfg.Redis.Addr != "" {
		redisCache, err := rediscache.New(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		reportCache = redisCache
		log.Info().Str("addr", cfg.Redis.Addr).Msg("cache de reportes habilitado")
	}

	ledgerRepo := postgres.NewLedgerRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	adjustmentRepo := postgres.NewStockAdjustmentRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	sequenceRepo := postgres.NewSequenceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerStore := ledger.NewStore(ledgerRepo, reportCache, log)
	movementUC := movement.NewRecordMovementUseCase(txRunner, warehouseRepo, movementRepo, log)
	adjustmentUC := adjustment.NewAdjustmentUseCase(txRunner, adjustmentRepo, log)
	reservationUC := reservation.NewReservationUseCase(txRunner, cfg.Inventory.DefaultWarehouseID, log)
	warehouseUC := warehouse.NewWarehouseUseCase(warehouseRepo, sequenceRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Molino Inventario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerStore:   ledgerStore,
		MovementUC:    movementUC,
		AdjustmentUC:  adjustmentUC,
		ReservationUC: reservationUC,
		WarehouseUC:   warehouseUC,
		JWTSecret:     cfg.JWT.Secret,
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
