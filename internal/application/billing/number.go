package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// invoiceNumber synthesizes a date-prefixed invoice number. Uniqueness is
// best-effort here; the unique index on invoices.number is the real guard.
func invoiceNumber(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%06d", prefix, now.Format("20060102"), now.Unix()%1000000)
}

// orderRef builds a short human-readable order reference.
func orderRef(now time.Time) string {
	short := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.Format("200601"), short)
}
