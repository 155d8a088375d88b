package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wareline/warehouse-api/internal/application/auth"
	"github.com/wareline/warehouse-api/internal/application/usecase"
	"github.com/wareline/warehouse-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CustomerUC    *usecase.CustomerUseCase
	ShipmentUC    *usecase.ShipmentUseCase
	InventoryUC   *usecase.InventoryUseCase
	InvoiceUC     *usecase.InvoiceUseCase
	InvoiceRunner InvoiceRunner
	StorageRunner StorageRunner

	JWTSecret     string
	BillingToken  string
	WebhookSecret string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Webhooks (signature-verified, no JWT)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.WebhookSecret)
	api.Post("/webhooks/shopify/inventory", inventoryHandler.ShopifyWebhook)

	// Billing triggers (token-verified, no JWT; used by the scheduler)
	billingHandler := NewBillingHandler(deps.InvoiceRunner, deps.StorageRunner, deps.BillingToken)
	api.Post("/billing/invoices/run", billingHandler.RunInvoices)
	api.Post("/billing/storage/run", billingHandler.RunStorage)

	// Client portal (any authenticated account)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	protected.Get("/shipments", shipmentHandler.ListMine)
	protected.Get("/inventory", inventoryHandler.ListMine)
	protected.Get("/invoices", invoiceHandler.ListMine)
	protected.Get("/invoices/:id", invoiceHandler.GetByID)

	// Admin surface
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	admin.Get("/customers", customerHandler.List)
	admin.Get("/customers/:id", customerHandler.GetByID)
	admin.Post("/customers/:id/approve", customerHandler.Approve)
	admin.Delete("/customers/:id", customerHandler.Delete)
	admin.Put("/customers/:id/storage-plan", customerHandler.SetStoragePlan)
	admin.Get("/customers/:id/shipments", shipmentHandler.ListByCustomer)
	admin.Get("/customers/:id/inventory", inventoryHandler.ListByCustomer)
	admin.Get("/customers/:id/invoices", invoiceHandler.ListByCustomer)
	admin.Post("/shipments", shipmentHandler.Create)
	admin.Post("/invoices/:id/mark-paid", invoiceHandler.MarkPaid)
}
