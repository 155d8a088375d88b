package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/wareline/warehouse-api/internal/application/auth"
	"github.com/wareline/warehouse-api/internal/application/billing"
	"github.com/wareline/warehouse-api/internal/application/usecase"
	"github.com/wareline/warehouse-api/internal/infrastructure/postgres"
	httpRouter "github.com/wareline/warehouse-api/internal/interfaces/http"
	"github.com/wareline/warehouse-api/pkg/config"
	"github.com/wareline/warehouse-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	pricingRepo := postgres.NewStoragePricingRepository(pool)

	locks := billing.NewCustomerLocks()
	generateUC := billing.NewGenerateInvoicesUseCase(userRepo, shipmentRepo, invoiceRepo, inventoryRepo, locks)
	storageUC := billing.NewStorageFeeUseCase(userRepo, inventoryRepo, pricingRepo, invoiceRepo, locks)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	customerUC := usecase.NewCustomerUseCase(userRepo, pricingRepo)
	shipmentUC := usecase.NewShipmentUseCase(shipmentRepo, userRepo)
	inventoryUC := usecase.NewInventoryUseCase(inventoryRepo, userRepo)
	invoiceUC := usecase.NewInvoiceUseCase(invoiceRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CustomerUC:    customerUC,
		ShipmentUC:    shipmentUC,
		InventoryUC:   inventoryUC,
		InvoiceUC:     invoiceUC,
		InvoiceRunner: generateUC,
		StorageRunner: storageUC,
		JWTSecret:     cfg.JWT.Secret,
		BillingToken:  cfg.Billing.TriggerToken,
		WebhookSecret: cfg.Shopify.WebhookSecret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
