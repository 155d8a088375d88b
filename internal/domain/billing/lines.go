package billing

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/wareline/warehouse-api/internal/domain/entity"
	"github.com/wareline/warehouse-api/internal/domain/timeval"
)

// Line is the uniform billable row extracted from a shipment document,
// whichever legacy shape the document uses.
type Line struct {
	Product   string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	PackSize  decimal.Decimal
}

// Amount is the billable value of the line.
func (l Line) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// ShipmentLines flattens a shipment document into an ordered list of lines.
// The explicit items list (current shape) takes precedence; otherwise the
// legacy implicit single item at the top level is used. A shipment with no
// resolvable items yields an empty list, not an error; missing quantities
// default to zero.
func ShipmentLines(doc entity.ShipmentDoc) []Line {
	if len(doc.Items) > 0 {
		lines := make([]Line, 0, len(doc.Items))
		for _, it := range doc.Items {
			lines = append(lines, Line{
				Product:   strings.TrimSpace(it.ProductName),
				Quantity:  timeval.Amount(it.Quantity),
				UnitPrice: timeval.Amount(it.UnitPrice),
				PackSize:  timeval.Amount(it.PackSize),
			})
		}
		return lines
	}

	if strings.TrimSpace(doc.ProductName) == "" && len(doc.Quantity) == 0 {
		return nil
	}
	return []Line{{
		Product:   strings.TrimSpace(doc.ProductName),
		Quantity:  timeval.Amount(doc.Quantity),
		UnitPrice: timeval.Amount(doc.UnitPrice),
		PackSize:  timeval.Amount(doc.PackSize),
	}}
}
