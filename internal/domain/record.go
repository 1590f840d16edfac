// backend-go/internal/domain/record.go
package domain

import "time"

// MappingStatus marks whether a record's product identity resolved against
// the mapping table.
type MappingStatus string

const (
	MappingStatusMapped   MappingStatus = "mapped"
	MappingStatusUnmapped MappingStatus = "unmapped"
)

// SalesRecord is the canonical sales fact every aggregation runs on.
// It is immutable once produced by the normalizer.
type SalesRecord struct {
	Date            time.Time     `json:"date"`
	Channel         Channel       `json:"channel"`
	OrderNumber     string        `json:"order_number"`
	OriginalProduct string        `json:"original_product"`
	OriginalOption  string        `json:"original_option"`
	MappedProduct   string        `json:"mapped_product,omitempty"`
	MappedOption    string        `json:"mapped_option,omitempty"`
	Quantity        int           `json:"quantity"`
	UnitPrice       float64       `json:"unit_price"`
	Cost            float64       `json:"cost"`
	OrderStatus     string        `json:"order_status"`
	CustomerKey     string        `json:"customer_key,omitempty"`
	CustomerName    string        `json:"customer_name,omitempty"`
	CustomerContact string        `json:"customer_contact,omitempty"`
	MappingStatus   MappingStatus `json:"mapping_status"`
}

// ProductKey is the identity records group under on the product view:
// the canonical identity when mapped, the verbatim source identity when not.
func (r *SalesRecord) ProductKey() (product, option string) {
	if r.MappingStatus == MappingStatusMapped {
		return r.MappedProduct, r.MappedOption
	}
	return r.OriginalProduct, r.OriginalOption
}

// Sales is the record's resolved revenue. Negative quantities from
// malformed rows clamp to zero rather than producing a negative sale.
func (r *SalesRecord) Sales() float64 {
	if r.Quantity <= 0 {
		return 0
	}
	return r.UnitPrice * float64(r.Quantity)
}

// TotalCost mirrors Sales for the cost side.
func (r *SalesRecord) TotalCost() float64 {
	if r.Quantity <= 0 {
		return 0
	}
	return r.Cost * float64(r.Quantity)
}

// PeriodWindow is an inclusive date range: start at 00:00:00.000 and end at
// 23:59:59.999 of local calendar days.
type PeriodWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window.
func (w PeriodWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
