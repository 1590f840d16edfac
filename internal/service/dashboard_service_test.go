package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sellora/salesboard/backend-go/internal/config"
	"github.com/sellora/salesboard/backend-go/internal/domain"
	"github.com/sellora/salesboard/backend-go/internal/mapping"
	"github.com/sellora/salesboard/backend-go/internal/period"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu         sync.Mutex
	tables     *mapping.Tables
	rows       map[domain.Channel][][]string
	fetchCalls int
}

func (f *fakeSource) FetchChannelRows(_ context.Context, ch domain.Channel) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	return f.rows[ch], nil
}

func (f *fakeSource) FetchTables(context.Context) (*mapping.Tables, error) {
	return f.tables, nil
}

// Legacy smartstore export shape: 10 columns.
func smartstoreRow(order, date, product, qty, gross, status, name, contact string) []string {
	return []string{order, date, product, "", qty, gross, status, name, contact, ""}
}

func newTestService(source *fakeSource) *DashboardService {
	calc := period.NewCalculator(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		func() time.Time { return time.Date(2025, 6, 18, 12, 0, 0, 0, time.Local) },
	)
	dashboard := config.DashboardConfig{
		RevenueSplitAds:     30,
		RevenueSplitOrganic: 70,
	}
	return NewDashboardService(source, mapping.NewStore(nil), calc, nil, dashboard)
}

func testSource() *fakeSource {
	return &fakeSource{
		tables: mapping.BuildTables(
			[][]string{{"비타민C 1000", "", "Vitamin C 1000", "", "1000", "400"}},
			[][]string{{"Vitamin C 1000", "10", "0", "0"}},
			nil,
		),
		rows: map[domain.Channel][][]string{
			domain.ChannelSmartstore: {
				smartstoreRow("A1", "2025-06-10", "비타민C 1000", "2", "2000", "배송완료", "Kim", "010-1111"),
				smartstoreRow("A1", "2025-06-10", "비타민C 1000", "1", "1000", "배송완료", "Kim", "010-1111"),
				smartstoreRow("A2", "2025-06-11", "비타민C 1000", "5", "5000", "취소", "Lee", "010-2222"),
				smartstoreRow("A3", "2025-05-20", "비타민C 1000", "1", "1000", "배송완료", "Kim", "010-1111"),
			},
			domain.ChannelOhouse: {
				{"2025-06-12", "OH-1", "비타민C 1000", "", "1", "1000", "Park", "010-3333", "정산완료"},
			},
			domain.ChannelYtshopping: {},
		},
	}
}

func TestRefreshBuildsWorkingSet(t *testing.T) {
	source := testSource()
	svc := newTestService(source)

	report, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.BatchReport{Total: 5, Dropped: 0, Unmapped: 0}, report)
	require.False(t, svc.LastRefresh().IsZero())

	// One fetch per channel.
	require.Equal(t, 3, source.fetchCalls)
}

func TestSummaryThisMonth(t *testing.T) {
	svc := newTestService(testSource())

	q, err := ParsePeriodQuery("this-month", "", "", false)
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background(), q)
	require.NoError(t, err)

	// A1 lines (2+1) plus OH-1, priced from the mapping; the cancelled
	// A2 and the May order stay out.
	require.Equal(t, 4000.0, summary.Totals.GrossSales)
	require.Equal(t, 3, summary.Totals.OrderLineCount)
	require.Equal(t, 2, summary.Totals.UniqueCustomerCount)
	require.Nil(t, summary.Growth)
	require.Equal(t, 5, summary.DataQuality.Total)
}

func TestSummaryWithComparison(t *testing.T) {
	svc := newTestService(testSource())

	q, err := ParsePeriodQuery("this-month", "", "", true)
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background(), q)
	require.NoError(t, err)
	require.NotNil(t, summary.Growth)

	// May had 1000 in sales; June has 4000.
	require.Equal(t, 300.0, summary.Growth.SalesGrowthPct)
}

func TestSummaryAllPeriodHasNoGrowth(t *testing.T) {
	svc := newTestService(testSource())

	q, err := ParsePeriodQuery("all", "", "", true)
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background(), q)
	require.NoError(t, err)
	// No baseline exists for "all": growth is absent, not zero.
	require.Nil(t, summary.Growth)
}

func TestChannelsIncludeSmartstoreSplit(t *testing.T) {
	svc := newTestService(testSource())

	q, err := ParsePeriodQuery("this-month", "", "", false)
	require.NoError(t, err)

	breakdown, err := svc.Channels(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, breakdown.Channels, 2)

	require.Len(t, breakdown.SmartstoreSplit, 2)
	require.Equal(t, "ads", breakdown.SmartstoreSplit[0].Name)
	require.Equal(t, 900.0, breakdown.SmartstoreSplit[0].Sales)
	require.Equal(t, 2100.0, breakdown.SmartstoreSplit[1].Sales)
}

func TestProductsUseCommissionTable(t *testing.T) {
	svc := newTestService(testSource())

	q, err := ParsePeriodQuery("this-month", "", "", false)
	require.NoError(t, err)

	products, err := svc.Products(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, products, 1)

	roll := products[0]
	require.Equal(t, "Vitamin C 1000", roll.Product)
	require.Equal(t, 4000.0, roll.Sales)
	// 10% smartstore commission on 3000; ohouse rate is 0.
	require.Equal(t, 300.0, roll.Commission)
}

func TestSeriesCustomWindow(t *testing.T) {
	svc := newTestService(testSource())

	q, err := ParsePeriodQuery("custom", "2025-06-10", "2025-06-12", false)
	require.NoError(t, err)

	buckets, err := svc.Series(context.Background(), q, domain.GranularityDay)
	require.NoError(t, err)
	require.Len(t, buckets, 3)

	// A1's two lines dedup into one order on 06-10.
	require.Equal(t, 1, buckets[0].Orders)
	require.Equal(t, 0, buckets[1].Orders)
	require.Equal(t, 1, buckets[2].Orders)
}

func TestCohortsThroughService(t *testing.T) {
	svc := newTestService(testSource())

	q, err := ParsePeriodQuery("all", "", "", false)
	require.NoError(t, err)

	cohorts, err := svc.Cohorts(context.Background(), q)
	require.NoError(t, err)

	// Kim: orders A1 and A3 (A2 is cancelled and belongs to Lee).
	require.Equal(t, 1, cohorts.Repeat.Count)
	// Park: single ohouse order.
	require.Equal(t, 1, cohorts.FirstTime.Count)
	require.Equal(t, 50.0, cohorts.RepurchaseRate)
}

func TestParsePeriodQueryValidation(t *testing.T) {
	_, err := ParsePeriodQuery("next-century", "", "", false)
	require.ErrorIs(t, err, domain.ErrInvalidPeriod)

	_, err = ParsePeriodQuery("custom", "2025-13-40", "", false)
	require.ErrorIs(t, err, domain.ErrInvalidPeriod)

	q, err := ParsePeriodQuery("", "", "", false)
	require.NoError(t, err)
	require.Equal(t, period.TokenThisMonth, q.Token)
}
