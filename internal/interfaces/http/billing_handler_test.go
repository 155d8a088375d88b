package http_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wareline/warehouse-api/internal/application/dto"
	apphttp "github.com/wareline/warehouse-api/internal/interfaces/http"
)

type stubRunner struct {
	summary *dto.BillingRunSummary
	called  bool
	month   string
	actor   string
}

func (s *stubRunner) Run(ctx context.Context, actor string) (*dto.BillingRunSummary, error) {
	s.called = true
	s.actor = actor
	return s.summary, nil
}

type stubStorageRunner struct {
	stubRunner
}

func (s *stubStorageRunner) Run(ctx context.Context, month, actor string) (*dto.BillingRunSummary, error) {
	s.called = true
	s.month = month
	s.actor = actor
	return s.summary, nil
}

func buildBillingApp(token string) (*fiber.App, *stubRunner, *stubStorageRunner) {
	invoices := &stubRunner{summary: &dto.BillingRunSummary{Customers: 2, Created: 1, Skipped: 1}}
	storage := &stubStorageRunner{}
	storage.summary = &dto.BillingRunSummary{Customers: 1, Created: 1}

	app := fiber.New()
	h := apphttp.NewBillingHandler(invoices, storage, token)
	app.Post("/api/billing/invoices/run", h.RunInvoices)
	app.Post("/api/billing/storage/run", h.RunStorage)
	return app, invoices, storage
}

func TestBillingTrigger_ValidTokenRuns(t *testing.T) {
	app, invoices, _ := buildBillingApp("s3cret")

	req := httptest.NewRequest(http.MethodPost, "/api/billing/invoices/run?actor=admin-7", nil)
	req.Header.Set("X-Billing-Token", "s3cret")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, invoices.called)
	assert.Equal(t, "admin-7", invoices.actor)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"created":1`)
}

func TestBillingTrigger_WrongTokenRejected(t *testing.T) {
	app, invoices, _ := buildBillingApp("s3cret")

	req := httptest.NewRequest(http.MethodPost, "/api/billing/invoices/run", nil)
	req.Header.Set("X-Billing-Token", "wrong")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, invoices.called, "runner must not fire on a bad token")
}

func TestBillingTrigger_MissingTokenConfigRefuses(t *testing.T) {
	// No configured token means the triggers are disabled, not open.
	app, invoices, _ := buildBillingApp("")

	req := httptest.NewRequest(http.MethodPost, "/api/billing/invoices/run", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.False(t, invoices.called)
}

func TestBillingTrigger_StoragePassesMonth(t *testing.T) {
	app, _, storage := buildBillingApp("s3cret")

	req := httptest.NewRequest(http.MethodPost, "/api/billing/storage/run?month=2026-03", nil)
	req.Header.Set("X-Billing-Token", "s3cret")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, storage.called)
	assert.Equal(t, "2026-03", storage.month)
}

// ──────────────────────────────────────────────────────────────────────────────
// Shopify webhook signature check
// ──────────────────────────────────────────────────────────────────────────────

func shopifySignature(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func buildWebhookApp(secret string) *fiber.App {
	app := fiber.New()
	// Nil use case: requests must be rejected before it is touched.
	h := apphttp.NewInventoryHandler(nil, secret)
	app.Post("/api/webhooks/shopify/inventory", h.ShopifyWebhook)
	return app
}

func TestShopifyWebhook_BadSignatureRejected(t *testing.T) {
	app := buildWebhookApp("whsec")
	body := `{"customer_id":"c1","inventory_item_id":"42","available":3}`

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/shopify/inventory", strings.NewReader(body))
	req.Header.Set("X-Shopify-Hmac-Sha256", shopifySignature("other-secret", body))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestShopifyWebhook_MissingSignatureRejected(t *testing.T) {
	app := buildWebhookApp("whsec")

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/shopify/inventory", strings.NewReader(`{}`))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestShopifyWebhook_NoSecretConfiguredRefuses(t *testing.T) {
	app := buildWebhookApp("")

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/shopify/inventory", strings.NewReader(`{}`))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
