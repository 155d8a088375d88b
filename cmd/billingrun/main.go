// Command billingrun executes one billing pass and exits. It is meant to be
// run from cron: the default pass generates shipment invoices, -storage
// generates the monthly storage fees instead.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/wareline/warehouse-api/internal/application/billing"
	"github.com/wareline/warehouse-api/internal/application/dto"
	"github.com/wareline/warehouse-api/internal/infrastructure/postgres"
	"github.com/wareline/warehouse-api/pkg/config"
	"github.com/wareline/warehouse-api/pkg/logger"
)

func main() {
	storage := flag.Bool("storage", false, "run the monthly storage fee pass instead of shipment invoicing")
	month := flag.String("month", "", "target month for -storage (YYYY-MM, default current month)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

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

	var summary *dto.BillingRunSummary
	if *storage {
		uc := billing.NewStorageFeeUseCase(userRepo, inventoryRepo, pricingRepo, invoiceRepo, locks)
		summary, err = uc.Run(ctx, *month, "")
	} else {
		uc := billing.NewGenerateInvoicesUseCase(userRepo, shipmentRepo, invoiceRepo, inventoryRepo, locks)
		summary, err = uc.Run(ctx, "")
	}
	if err != nil {
		log.Error().Err(err).Msg("billing run failed")
		pool.Close()
		os.Exit(1)
	}

	log.Info().
		Int("customers", summary.Customers).
		Int("created", summary.Created).
		Int("skipped", summary.Skipped).
		Int("errors", summary.Errors).
		Msg("billing run finished")
	for _, outcome := range summary.Outcomes {
		ev := log.Info()
		if outcome.Status == dto.OutcomeError {
			ev = log.Warn()
		}
		ev.Str("customer", outcome.CustomerID).
			Str("status", outcome.Status).
			Str("invoice", outcome.InvoiceNumber).
			Str("error", outcome.Error).
			Msg("customer outcome")
	}
}
