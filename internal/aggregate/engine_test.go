package aggregate

import (
	"testing"
	"time"

	"github.com/sellora/salesboard/backend-go/internal/domain"
	"github.com/sellora/salesboard/backend-go/internal/mapping"
	"github.com/stretchr/testify/require"
)

func rec(ch domain.Channel, order string, day int, product string, qty int, price float64) domain.SalesRecord {
	return domain.SalesRecord{
		Date:            time.Date(2025, 6, day, 12, 0, 0, 0, time.Local),
		Channel:         ch,
		OrderNumber:     order,
		OriginalProduct: product,
		MappedProduct:   product,
		Quantity:        qty,
		UnitPrice:       price,
		OrderStatus:     "배송완료",
		MappingStatus:   domain.MappingStatusMapped,
	}
}

func withCustomer(r domain.SalesRecord, name, contact string) domain.SalesRecord {
	r.CustomerName = name
	r.CustomerContact = contact
	r.CustomerKey = name + "-" + contact
	return r
}

func cancelled(r domain.SalesRecord) domain.SalesRecord {
	r.OrderStatus = "취소"
	return r
}

func TestTotalsEmptyInput(t *testing.T) {
	totals := Totals(nil)

	require.Equal(t, 0.0, totals.GrossSales)
	require.Equal(t, 0, totals.OrderLineCount)
	require.Equal(t, 0, totals.UniqueCustomerCount)
	require.NotNil(t, totals.ByChannel)
	require.Empty(t, totals.ByChannel)
}

func TestTotalsExcludesCancelledLines(t *testing.T) {
	// Two line rows of order A1 plus one cancelled order A2. Line rows
	// count individually at this level; A2 contributes nothing.
	records := []domain.SalesRecord{
		rec(domain.ChannelSmartstore, "A1", 10, "Vitamin C 1000", 2, 1000),
		rec(domain.ChannelSmartstore, "A1", 10, "Vitamin C 1000", 1, 1000),
		cancelled(rec(domain.ChannelSmartstore, "A2", 10, "Vitamin C 1000", 5, 1000)),
	}

	totals := Totals(records)

	require.Equal(t, 3000.0, totals.GrossSales)
	require.Equal(t, 2, totals.OrderLineCount)
	require.Equal(t, 3000.0, totals.ByChannel[domain.ChannelSmartstore])
}

func TestTotalsCountAllPolicyChannel(t *testing.T) {
	// Ohouse counts every row regardless of status.
	records := []domain.SalesRecord{
		cancelled(rec(domain.ChannelOhouse, "OH-1", 10, "Omega 3", 1, 2000)),
		cancelled(rec(domain.ChannelYtshopping, "YT-1", 10, "Omega 3", 1, 2000)),
	}

	totals := Totals(records)

	require.Equal(t, 2000.0, totals.GrossSales)
	require.Equal(t, 1, totals.OrderLineCount)
}

func TestTotalsUniqueCustomers(t *testing.T) {
	records := []domain.SalesRecord{
		withCustomer(rec(domain.ChannelSmartstore, "A1", 10, "Vitamin C 1000", 1, 1000), "김민지", "010-1111"),
		withCustomer(rec(domain.ChannelSmartstore, "A2", 11, "Vitamin C 1000", 1, 1000), "김민지", "010-1111"),
		withCustomer(rec(domain.ChannelOhouse, "OH-1", 11, "Vitamin C 1000", 1, 1000), "박서준", "010-2222"),
		rec(domain.ChannelSmartstore, "A3", 12, "Vitamin C 1000", 1, 1000),
	}

	totals := Totals(records)
	require.Equal(t, 2, totals.UniqueCustomerCount)
}

func TestTotalsClampsNegativeQuantity(t *testing.T) {
	bad := rec(domain.ChannelSmartstore, "A1", 10, "Vitamin C 1000", -3, 1000)
	totals := Totals([]domain.SalesRecord{bad})

	require.Equal(t, 0.0, totals.GrossSales)
	require.Equal(t, 1, totals.OrderLineCount)
}

func TestByProductRollup(t *testing.T) {
	tables := mapping.BuildTables(nil,
		[][]string{{"Vitamin C 1000", "10", "0", "0"}},
		nil,
	)

	records := []domain.SalesRecord{
		func() domain.SalesRecord {
			r := rec(domain.ChannelSmartstore, "A1", 10, "Vitamin C 1000", 2, 1000)
			r.Cost = 400
			return r
		}(),
		func() domain.SalesRecord {
			r := rec(domain.ChannelOhouse, "OH-1", 11, "Vitamin C 1000", 1, 1000)
			r.Cost = 400
			return r
		}(),
	}

	rollups := ByProduct(records, tables)
	require.Len(t, rollups, 1)

	roll := rollups[0]
	require.Equal(t, "Vitamin C 1000", roll.Product)
	require.Equal(t, 3, roll.Quantity)
	require.Equal(t, 3000.0, roll.Sales)
	require.Equal(t, 1200.0, roll.Cost)
	require.Equal(t, 1800.0, roll.Profit)
	// 10% smartstore commission on 2000; ohouse rate is 0.
	require.Equal(t, 200.0, roll.Commission)
	require.Equal(t, 1600.0, roll.OperatingProfit)
}

func TestByProductGroupsUnmappedByOriginalIdentity(t *testing.T) {
	unmapped := domain.SalesRecord{
		Date:            time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local),
		Channel:         domain.ChannelSmartstore,
		OrderNumber:     "U1",
		OriginalProduct: "정체불명템",
		Quantity:        1,
		UnitPrice:       5000,
		MappingStatus:   domain.MappingStatusUnmapped,
	}

	rollups := ByProduct([]domain.SalesRecord{unmapped}, nil)
	require.Len(t, rollups, 1)
	require.Equal(t, "정체불명템", rollups[0].Product)
	require.True(t, rollups[0].Unmapped)
}

func TestByProductIsIdempotent(t *testing.T) {
	records := []domain.SalesRecord{
		rec(domain.ChannelSmartstore, "A1", 10, "Alpha", 1, 1000),
		rec(domain.ChannelSmartstore, "A2", 10, "Beta", 1, 1000),
		rec(domain.ChannelSmartstore, "A3", 10, "Gamma", 2, 1000),
	}

	first := ByProduct(records, nil)
	second := ByProduct(records, nil)
	require.Equal(t, first, second)

	// Equal-sales ties keep first-encountered insertion order.
	require.Equal(t, "Gamma", first[0].Product)
	require.Equal(t, "Alpha", first[1].Product)
	require.Equal(t, "Beta", first[2].Product)
}

func TestByChannelShares(t *testing.T) {
	records := []domain.SalesRecord{
		rec(domain.ChannelSmartstore, "A1", 10, "Alpha", 3, 1000),
		rec(domain.ChannelOhouse, "OH-1", 10, "Alpha", 1, 1000),
	}

	rollups := ByChannel(records)
	require.Len(t, rollups, 2)
	require.Equal(t, domain.ChannelSmartstore, rollups[0].Channel)
	require.Equal(t, 75.0, rollups[0].Share)
	require.Equal(t, 25.0, rollups[1].Share)
}

func TestByChannelZeroTotalHasZeroShares(t *testing.T) {
	records := []domain.SalesRecord{
		rec(domain.ChannelSmartstore, "A1", 10, "Alpha", 0, 1000),
	}

	rollups := ByChannel(records)
	require.Len(t, rollups, 1)
	require.Equal(t, 0.0, rollups[0].Sales)
	require.Equal(t, 0.0, rollups[0].Share)
}

func TestFilterWindow(t *testing.T) {
	w := domain.PeriodWindow{
		Start: time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local),
		End:   time.Date(2025, 6, 11, 23, 59, 59, int(999*time.Millisecond), time.Local),
	}

	records := []domain.SalesRecord{
		rec(domain.ChannelSmartstore, "A1", 9, "Alpha", 1, 1000),
		rec(domain.ChannelSmartstore, "A2", 10, "Alpha", 1, 1000),
		rec(domain.ChannelSmartstore, "A3", 11, "Alpha", 1, 1000),
		rec(domain.ChannelSmartstore, "A4", 12, "Alpha", 1, 1000),
	}

	filtered := FilterWindow(records, w)
	require.Len(t, filtered, 2)
	require.Equal(t, "A2", filtered[0].OrderNumber)
	require.Equal(t, "A3", filtered[1].OrderNumber)
}
