package billing

import "github.com/wareline/warehouse-api/internal/domain/entity"

// Ledger is the set of shipment identifiers already reflected in some
// invoice, derived by scanning the customer's full invoice history. It is
// rebuilt fresh on every generation run: the scan costs O(invoices × lines)
// but stays correct for shipments recorded late with earlier dates.
type Ledger struct {
	billed map[string]struct{}
}

// NewLedger scans every line of every invoice for an embedded shipment
// reference. Lines without a reference (storage lines, service lines,
// corrupt legacy rows) are skipped and never cause a false-positive.
func NewLedger(invoices []*entity.Invoice) *Ledger {
	l := &Ledger{billed: make(map[string]struct{})}
	for _, inv := range invoices {
		if inv == nil {
			continue
		}
		for _, line := range inv.Lines {
			if line == nil || line.ShipmentID == "" {
				continue
			}
			l.billed[line.ShipmentID] = struct{}{}
		}
	}
	return l
}

// Billed reports whether the shipment identifier already appears on an invoice.
func (l *Ledger) Billed(shipmentID string) bool {
	_, ok := l.billed[shipmentID]
	return ok
}

// Size returns the number of distinct billed shipment identifiers.
func (l *Ledger) Size() int { return len(l.billed) }

// Partition splits shipments into those still billable and those already
// invoiced. Order is preserved.
func (l *Ledger) Partition(shipments []*entity.Shipment) (billable, alreadyBilled []*entity.Shipment) {
	for _, s := range shipments {
		if s == nil {
			continue
		}
		if l.Billed(s.ID) {
			alreadyBilled = append(alreadyBilled, s)
		} else {
			billable = append(billable, s)
		}
	}
	return billable, alreadyBilled
}
