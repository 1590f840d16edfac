package aggregate

import (
	"testing"

	"github.com/sellora/salesboard/backend-go/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestCohortsClassifyByDistinctOrders(t *testing.T) {
	kim := func(order string, day int) domain.SalesRecord {
		return withCustomer(rec(domain.ChannelSmartstore, order, day, "Alpha", 1, 1000), "Kim", "010-1111")
	}

	records := []domain.SalesRecord{
		kim("K1", 10),
		kim("K2", 12),
		kim("K3", 15),
		withCustomer(rec(domain.ChannelSmartstore, "P1", 10, "Alpha", 1, 2000), "Park", "010-2222"),
	}

	cohorts := RepurchaseCohorts(records)

	require.Equal(t, 1, cohorts.ThreeToFour.Count)
	require.Equal(t, 1, cohorts.FirstTime.Count)
	require.Equal(t, 0, cohorts.Repeat.Count)
	require.Equal(t, 0, cohorts.FiveOrMore.Count)

	kimDetail := cohorts.ThreeToFour.Customers[0]
	require.Equal(t, "Kim", kimDetail.Name)
	require.Len(t, kimDetail.Orders, 3)
	require.Equal(t, 3000.0, kimDetail.TotalAmount)
	// Orders arrive date-sorted.
	require.True(t, kimDetail.Orders[0].Date.Before(kimDetail.Orders[1].Date))

	// One of two classified customers returned.
	require.Equal(t, 50.0, cohorts.RepurchaseRate)
}

func TestCohortsCollapseLineRowsIntoOrders(t *testing.T) {
	records := []domain.SalesRecord{
		withCustomer(rec(domain.ChannelSmartstore, "K1", 10, "Alpha", 1, 1000), "Kim", "010-1111"),
		withCustomer(rec(domain.ChannelSmartstore, "K1", 10, "Beta", 2, 500), "Kim", "010-1111"),
	}

	cohorts := RepurchaseCohorts(records)

	// Two line rows, one order: first-time buyer.
	require.Equal(t, 1, cohorts.FirstTime.Count)
	detail := cohorts.FirstTime.Customers[0]
	require.Len(t, detail.Orders, 1)
	require.Equal(t, 2000.0, detail.Orders[0].Amount)
	require.Equal(t, 0.0, cohorts.RepurchaseRate)
}

func TestCohortsExcludeAnonymousOrders(t *testing.T) {
	records := []domain.SalesRecord{
		rec(domain.ChannelSmartstore, "N1", 10, "Alpha", 1, 1000),
		cancelled(withCustomer(rec(domain.ChannelSmartstore, "C1", 10, "Alpha", 1, 1000), "Kim", "010-1111")),
	}

	cohorts := RepurchaseCohorts(records)

	require.Equal(t, 0, cohorts.FirstTime.Count)
	require.Equal(t, 0.0, cohorts.RepurchaseRate)
}

func TestCohortsFiveOrMore(t *testing.T) {
	var records []domain.SalesRecord
	for i := 0; i < 5; i++ {
		records = append(records, withCustomer(
			rec(domain.ChannelSmartstore, string(rune('A'+i))+"-ord", 10+i, "Alpha", 1, 1000),
			"Lee", "010-5555",
		))
	}

	cohorts := RepurchaseCohorts(records)
	require.Equal(t, 1, cohorts.FiveOrMore.Count)
	require.Equal(t, 100.0, cohorts.RepurchaseRate)
}

func TestCohortsEmptyInput(t *testing.T) {
	cohorts := RepurchaseCohorts(nil)
	require.Equal(t, 0, cohorts.FirstTime.Count)
	require.Equal(t, 0.0, cohorts.RepurchaseRate)
}
