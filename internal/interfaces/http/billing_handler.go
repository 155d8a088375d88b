package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wareline/warehouse-api/internal/application/dto"
	"github.com/wareline/warehouse-api/internal/domain"
)

// InvoiceRunner runs shipment invoice generation for every approved client.
type InvoiceRunner interface {
	Run(ctx context.Context, actor string) (*dto.BillingRunSummary, error)
}

// StorageRunner runs storage fee generation for a target month.
type StorageRunner interface {
	Run(ctx context.Context, month, actor string) (*dto.BillingRunSummary, error)
}

// BillingHandler exposes the batch billing triggers. The endpoints are meant
// for the scheduler and for admins; both present the shared trigger token.
// With no token configured the triggers refuse to run.
type BillingHandler struct {
	invoices InvoiceRunner
	storage  StorageRunner
	token    string
}

// NewBillingHandler builds the billing trigger handler.
func NewBillingHandler(invoices InvoiceRunner, storage StorageRunner, token string) *BillingHandler {
	return &BillingHandler{invoices: invoices, storage: storage, token: token}
}

// RunInvoices triggers one shipment billing run and returns the summary.
func (h *BillingHandler) RunInvoices(c *fiber.Ctx) error {
	if !h.authorized(c) {
		return nil
	}
	summary, err := h.invoices.Run(c.Context(), c.Query("actor"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "RUN_FAILED", Message: err.Error()})
	}
	return c.JSON(summary)
}

// RunStorage triggers one storage fee run; ?month=YYYY-MM targets a month.
func (h *BillingHandler) RunStorage(c *fiber.Ctx) error {
	if !h.authorized(c) {
		return nil
	}
	summary, err := h.storage.Run(c.Context(), c.Query("month"), c.Query("actor"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "RUN_FAILED", Message: err.Error()})
	}
	return c.JSON(summary)
}

// authorized writes the rejection response itself and reports whether the
// request may proceed.
func (h *BillingHandler) authorized(c *fiber.Ctx) bool {
	if h.token == "" {
		_ = c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "TRIGGER_DISABLED", Message: "billing trigger token not configured"})
		return false
	}
	if c.Get("X-Billing-Token") != h.token {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid billing token"})
		return false
	}
	return true
}
