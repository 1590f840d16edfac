// backend-go/internal/aggregate/engine.go
package aggregate

import (
	"sort"

	"github.com/sellora/salesboard/backend-go/internal/domain"
	"github.com/sellora/salesboard/backend-go/internal/mapping"
)

// The engine is a set of pure functions over an immutable []SalesRecord
// snapshot. Every function is total: empty input yields zeroed structures,
// never an error. Cancelled rows are excluded per channel policy
// (domain.PolicyFor) in every revenue and order figure.

// FilterWindow returns the records whose date falls inside the window.
// Callers running several rollups over one window should filter once and
// reuse the slice; every pass is linear in record count.
func FilterWindow(records []domain.SalesRecord, w domain.PeriodWindow) []domain.SalesRecord {
	out := make([]domain.SalesRecord, 0, len(records))
	for _, r := range records {
		if w.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out
}

// Totals computes the period headline: gross sales, order-line count and
// unique buyers. The count is per line row; see TimeSeries for the
// order-number-deduplicated counterpart.
func Totals(records []domain.SalesRecord) domain.Totals {
	t := domain.Totals{ByChannel: make(map[domain.Channel]float64)}
	customers := make(map[string]struct{})

	for i := range records {
		r := &records[i]
		if r.Excluded() {
			continue
		}
		sales := r.Sales()
		t.GrossSales += sales
		t.ByChannel[r.Channel] += sales
		t.OrderLineCount++
		if r.CustomerKey != "" {
			customers[r.CustomerKey] = struct{}{}
		}
	}

	t.UniqueCustomerCount = len(customers)
	return t
}

type productKey struct {
	product string
	option  string
}

// ByProduct rolls records up by canonical product identity (verbatim
// identity for unmapped rows) with margin and commission. Commission is
// resolved per record so a product sold on several channels pays each
// channel's own rate. Sorted by sales descending; ties keep first-seen
// order, so repeated runs over the same input are bit-identical.
func ByProduct(records []domain.SalesRecord, tables *mapping.Tables) []domain.ProductRollup {
	index := make(map[productKey]int)
	rollups := make([]domain.ProductRollup, 0)

	for i := range records {
		r := &records[i]
		if r.Excluded() {
			continue
		}

		product, option := r.ProductKey()
		k := productKey{product: product, option: option}
		pos, ok := index[k]
		if !ok {
			pos = len(rollups)
			index[k] = pos
			rollups = append(rollups, domain.ProductRollup{
				Product:  product,
				Option:   option,
				Unmapped: r.MappingStatus == domain.MappingStatusUnmapped,
			})
		}

		sales := r.Sales()
		rate := tables.CommissionRate(product, option, r.Channel)

		roll := &rollups[pos]
		if r.Quantity > 0 {
			roll.Quantity += r.Quantity
		}
		roll.Sales += sales
		roll.Cost += r.TotalCost()
		roll.Commission += sales * rate / 100
	}

	for i := range rollups {
		rollups[i].Profit = rollups[i].Sales - rollups[i].Cost
		rollups[i].OperatingProfit = rollups[i].Profit - rollups[i].Commission
	}

	sort.SliceStable(rollups, func(i, j int) bool {
		return rollups[i].Sales > rollups[j].Sales
	})

	return rollups
}

// ByChannel breaks the period's revenue down per channel with each
// channel's share of the total. A zero total defines every share as 0.
func ByChannel(records []domain.SalesRecord) []domain.ChannelRollup {
	sums := make(map[domain.Channel]float64)
	var total float64

	for i := range records {
		r := &records[i]
		if r.Excluded() {
			continue
		}
		sales := r.Sales()
		sums[r.Channel] += sales
		total += sales
	}

	// Fixed channel order first, then sorted by sales, keeps ties stable.
	rollups := make([]domain.ChannelRollup, 0, len(sums))
	for _, ch := range domain.Channels {
		sales, ok := sums[ch]
		if !ok {
			continue
		}
		share := 0.0
		if total > 0 {
			share = sales / total * 100
		}
		rollups = append(rollups, domain.ChannelRollup{Channel: ch, Sales: sales, Share: share})
	}

	sort.SliceStable(rollups, func(i, j int) bool {
		return rollups[i].Sales > rollups[j].Sales
	})

	return rollups
}
