package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wareline/warehouse-api/internal/domain/billing"
	"github.com/wareline/warehouse-api/internal/domain/entity"
)

func invoiceWithShipmentRefs(ids ...string) *entity.Invoice {
	inv := &entity.Invoice{}
	for _, id := range ids {
		inv.Lines = append(inv.Lines, &entity.InvoiceLine{ShipmentID: id})
	}
	return inv
}

func TestLedger_ScansAllInvoiceLines(t *testing.T) {
	ledger := billing.NewLedger([]*entity.Invoice{
		invoiceWithShipmentRefs("s1", "s2"),
		invoiceWithShipmentRefs("s3"),
	})

	assert.Equal(t, 3, ledger.Size())
	assert.True(t, ledger.Billed("s1"))
	assert.True(t, ledger.Billed("s3"))
	assert.False(t, ledger.Billed("s4"))
}

func TestLedger_IgnoresLinesWithoutShipmentRef(t *testing.T) {
	// Storage/service lines and corrupt legacy rows carry no shipment ref;
	// they must never produce a false-positive skip.
	inv := &entity.Invoice{Lines: []*entity.InvoiceLine{
		{ShipmentID: ""},
		nil,
		{ShipmentID: "s9"},
	}}

	ledger := billing.NewLedger([]*entity.Invoice{inv, nil})
	assert.Equal(t, 1, ledger.Size())
	assert.True(t, ledger.Billed("s9"))
}

func TestLedger_PartitionPreservesOrder(t *testing.T) {
	ledger := billing.NewLedger([]*entity.Invoice{invoiceWithShipmentRefs("b")})

	ships := []*entity.Shipment{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	billable, billed := ledger.Partition(ships)

	require.Len(t, billable, 2)
	require.Len(t, billed, 1)
	assert.Equal(t, "a", billable[0].ID)
	assert.Equal(t, "c", billable[1].ID)
	assert.Equal(t, "b", billed[0].ID)
}

func TestLedger_EmptyHistoryBillsEverything(t *testing.T) {
	ledger := billing.NewLedger(nil)
	billable, billed := ledger.Partition([]*entity.Shipment{{ID: "a"}})
	assert.Len(t, billable, 1)
	assert.Empty(t, billed)
}
