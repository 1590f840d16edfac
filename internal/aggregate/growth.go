// backend-go/internal/aggregate/growth.go
package aggregate

import "github.com/sellora/salesboard/backend-go/internal/domain"

// Compare derives growth deltas between two periods' totals.
func Compare(current, previous domain.Totals) domain.Growth {
	return domain.Growth{
		SalesGrowthPct:    growthPct(current.GrossSales, previous.GrossSales),
		OrderGrowthPct:    growthPct(float64(current.OrderLineCount), float64(previous.OrderLineCount)),
		CustomerGrowthPct: growthPct(float64(current.UniqueCustomerCount), float64(previous.UniqueCustomerCount)),
	}
}

// growthPct caps growth from a zero baseline at +100 instead of dividing
// by zero. Lossy on purpose: the dashboard wants a finite "new activity"
// signal, not infinity.
func growthPct(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}
