package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wareline/warehouse-api/internal/application/dto"
	"github.com/wareline/warehouse-api/internal/application/usecase"
	"github.com/wareline/warehouse-api/internal/domain"
)

// InventoryHandler stock listing and the external inventory sync webhook.
type InventoryHandler struct {
	uc            *usecase.InventoryUseCase
	webhookSecret string
}

// NewInventoryHandler builds the inventory handler.
func NewInventoryHandler(uc *usecase.InventoryUseCase, webhookSecret string) *InventoryHandler {
	return &InventoryHandler{uc: uc, webhookSecret: webhookSecret}
}

// ListByCustomer lists a customer's stock positions (admin).
func (h *InventoryHandler) ListByCustomer(c *fiber.Ctx) error {
	out, err := h.uc.ListByCustomer(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListMine lists the authenticated client's stock positions.
func (h *InventoryHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListByCustomer(GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ShopifyWebhook applies an inventory level update pushed by Shopify. The
// body signature must match X-Shopify-Hmac-Sha256; with no secret configured
// the endpoint refuses every delivery.
func (h *InventoryHandler) ShopifyWebhook(c *fiber.Ctx) error {
	if h.webhookSecret == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "WEBHOOK_DISABLED", Message: "webhook secret not configured"})
	}
	if !verifyShopifyHMAC(c.Body(), c.Get("X-Shopify-Hmac-Sha256"), h.webhookSecret) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "HMAC verification failed"})
	}

	var in dto.ShopifyInventoryWebhook
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid payload"})
	}
	out, err := h.uc.SyncExternal(in)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "customer not found"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer_id and inventory_item_id are required"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

func verifyShopifyHMAC(body []byte, signature, secret string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
