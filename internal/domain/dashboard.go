// backend-go/internal/domain/dashboard.go
package domain

import "time"

// Totals is the headline view of a period: gross revenue, line-level order
// count and unique buyers. Order count is per line row on purpose; the time
// series view dedups by order number instead (different consumers want
// different granularities, so the two stay separately named).
type Totals struct {
	GrossSales          float64             `json:"gross_sales"`
	OrderLineCount      int                 `json:"order_line_count"`
	UniqueCustomerCount int                 `json:"unique_customer_count"`
	ByChannel           map[Channel]float64 `json:"by_channel"`
}

// ProductRollup aggregates one canonical (or unmapped original) product and
// option across channels.
type ProductRollup struct {
	Product         string  `json:"product"`
	Option          string  `json:"option,omitempty"`
	Quantity        int     `json:"quantity"`
	Sales           float64 `json:"sales"`
	Cost            float64 `json:"cost"`
	Profit          float64 `json:"profit"`
	Commission      float64 `json:"commission"`
	OperatingProfit float64 `json:"operating_profit"`
	Unmapped        bool    `json:"unmapped,omitempty"`
}

// ChannelRollup is one channel's slice of the period's revenue.
type ChannelRollup struct {
	Channel Channel `json:"channel"`
	Sales   float64 `json:"sales"`
	Share   float64 `json:"share"`
}

// SubChannelSplit is a display-only breakdown of a channel's revenue into
// fixed-percentage sub-channels (e.g. ads vs organic for smartstore).
type SubChannelSplit struct {
	Name  string  `json:"name"`
	Pct   float64 `json:"pct"`
	Sales float64 `json:"sales"`
}

// Granularity selects the time-series bucket width.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Bucket is one dense time-series slice. Orders is deduplicated by
// (bucket, order number, channel) so multi-line orders count once.
type Bucket struct {
	Start     time.Time           `json:"start"`
	Label     string              `json:"label"`
	Sales     float64             `json:"sales"`
	ByChannel map[Channel]float64 `json:"by_channel"`
	Orders    int                 `json:"orders"`
}

// CustomerOrder is one distinct order inside a cohort customer's history.
type CustomerOrder struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// CohortCustomer is a classified customer with their order history.
type CohortCustomer struct {
	Name        string          `json:"name"`
	Contact     string          `json:"contact"`
	Orders      []CustomerOrder `json:"orders"`
	TotalAmount float64         `json:"total_amount"`
}

// Cohort is one repurchase bucket.
type Cohort struct {
	Count     int              `json:"count"`
	Customers []CohortCustomer `json:"customers"`
}

// RepurchaseCohorts classifies customers by distinct completed orders:
// 1, 2, 3-4 and 5+.
type RepurchaseCohorts struct {
	FirstTime      Cohort  `json:"first_time"`
	Repeat         Cohort  `json:"repeat"`
	ThreeToFour    Cohort  `json:"three_to_four"`
	FiveOrMore     Cohort  `json:"five_or_more"`
	RepurchaseRate float64 `json:"repurchase_rate"`
}

// ChannelBreakdown is the channel view payload: per-channel rollups plus
// the display-only sub-channel split for smartstore.
type ChannelBreakdown struct {
	Channels        []ChannelRollup   `json:"channels"`
	SmartstoreSplit []SubChannelSplit `json:"smartstore_split,omitempty"`
}

// Growth is the delta between a current and a comparable previous period.
type Growth struct {
	SalesGrowthPct    float64 `json:"sales_growth_pct"`
	OrderGrowthPct    float64 `json:"order_growth_pct"`
	CustomerGrowthPct float64 `json:"customer_growth_pct"`
}

// BatchReport carries normalization data-quality counters so the UI can
// surface partial data instead of failing the render.
type BatchReport struct {
	Total    int `json:"total"`
	Dropped  int `json:"dropped"`
	Unmapped int `json:"unmapped"`
}

// Add merges another report into this one.
func (b *BatchReport) Add(other BatchReport) {
	b.Total += other.Total
	b.Dropped += other.Dropped
	b.Unmapped += other.Unmapped
}

// DashboardSummary is the composite payload behind the summary endpoint.
type DashboardSummary struct {
	Window      PeriodWindow    `json:"window"`
	Totals      Totals          `json:"totals"`
	Growth      *Growth         `json:"growth,omitempty"`
	ByChannel   []ChannelRollup `json:"by_channel"`
	DataQuality BatchReport     `json:"data_quality"`
}
