package billing_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wareline/warehouse-api/internal/domain/billing"
	"github.com/wareline/warehouse-api/internal/domain/entity"
)

func raw(s string) json.RawMessage { return json.RawMessage(s) }

// ──────────────────────────────────────────────────────────────────────────────
// ShipmentLines must resolve both document shapes transparently: the explicit
// items list and the legacy implicit single item at the top level.
// ──────────────────────────────────────────────────────────────────────────────

func TestShipmentLines_ExplicitList(t *testing.T) {
	doc := entity.ShipmentDoc{
		Items: []entity.ShipmentDocItem{
			{ProductName: "Widget", Quantity: raw(`2`), UnitPrice: raw(`5`), PackSize: raw(`1`)},
			{ProductName: "Gadget", Quantity: raw(`"3"`), UnitPrice: raw(`1.50`)},
		},
	}

	lines := billing.ShipmentLines(doc)
	require.Len(t, lines, 2)

	assert.Equal(t, "Widget", lines[0].Product)
	assert.True(t, decimal.NewFromInt(2).Equal(lines[0].Quantity))
	assert.True(t, decimal.NewFromInt(5).Equal(lines[0].UnitPrice))
	assert.True(t, decimal.NewFromInt(10).Equal(lines[0].Amount()), "amount = quantity × unit price")

	assert.Equal(t, "Gadget", lines[1].Product)
	assert.True(t, decimal.NewFromInt(3).Equal(lines[1].Quantity), "numeric strings coerce")
	assert.True(t, decimal.NewFromFloat(4.5).Equal(lines[1].Amount()))
}

func TestShipmentLines_LegacyImplicitItem(t *testing.T) {
	doc := entity.ShipmentDoc{
		ProductName: "Pallet Jack",
		Quantity:    raw(`1`),
		UnitPrice:   raw(`120`),
	}

	lines := billing.ShipmentLines(doc)
	require.Len(t, lines, 1, "legacy shape resolves to exactly one line")
	assert.Equal(t, "Pallet Jack", lines[0].Product)
	assert.True(t, decimal.NewFromInt(120).Equal(lines[0].Amount()))
}

func TestShipmentLines_ExplicitListWinsOverImplicitFields(t *testing.T) {
	// Some migrated records carry both shapes; the list is authoritative.
	doc := entity.ShipmentDoc{
		ProductName: "Stale",
		Quantity:    raw(`99`),
		Items: []entity.ShipmentDocItem{
			{ProductName: "Fresh", Quantity: raw(`1`), UnitPrice: raw(`2`)},
		},
	}

	lines := billing.ShipmentLines(doc)
	require.Len(t, lines, 1)
	assert.Equal(t, "Fresh", lines[0].Product)
}

func TestShipmentLines_NoResolvableItems(t *testing.T) {
	lines := billing.ShipmentLines(entity.ShipmentDoc{Destination: "somewhere"})
	assert.Empty(t, lines, "a shipment with no items yields an empty list, not an error")
}

func TestShipmentLines_MissingQuantityDefaultsToZero(t *testing.T) {
	doc := entity.ShipmentDoc{
		Items: []entity.ShipmentDocItem{{ProductName: "Widget", UnitPrice: raw(`5`)}},
	}

	lines := billing.ShipmentLines(doc)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Quantity.IsZero())
	assert.True(t, lines[0].Amount().IsZero())
}

func TestShipmentLines_MalformedValuesDegrade(t *testing.T) {
	doc := entity.ShipmentDoc{
		Items: []entity.ShipmentDocItem{
			{ProductName: "Widget", Quantity: raw(`"two"`), UnitPrice: raw(`{"oops":1}`)},
		},
	}

	lines := billing.ShipmentLines(doc)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Quantity.IsZero())
	assert.True(t, lines[0].UnitPrice.IsZero())
}
