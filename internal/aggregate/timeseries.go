// backend-go/internal/aggregate/timeseries.go
package aggregate

import (
	"time"

	"github.com/sellora/salesboard/backend-go/internal/domain"
)

// TimeSeries buckets the window into a dense day/week/month series for
// charting. Zero-activity buckets are still emitted so chart axes stay
// contiguous. Within a bucket, line rows sharing (bucket, order number,
// channel) collapse into one before summing, so a multi-line order is
// counted and priced once per bucket.
func TimeSeries(records []domain.SalesRecord, g domain.Granularity, w domain.PeriodWindow) []domain.Bucket {
	starts := bucketStarts(g, w)
	if len(starts) == 0 {
		return []domain.Bucket{}
	}

	buckets := make([]domain.Bucket, len(starts))
	index := make(map[string]int, len(starts))
	for i, start := range starts {
		label := bucketLabel(g, start)
		buckets[i] = domain.Bucket{
			Start:     start,
			Label:     label,
			ByChannel: make(map[domain.Channel]float64),
		}
		index[label] = i
	}

	type dedupKey struct {
		label   string
		order   string
		channel domain.Channel
	}
	seen := make(map[dedupKey]struct{})

	for i := range records {
		r := &records[i]
		if r.Excluded() {
			continue
		}
		label := bucketLabel(g, bucketStart(g, r.Date))
		pos, ok := index[label]
		if !ok {
			continue
		}

		k := dedupKey{label: label, order: r.OrderNumber, channel: r.Channel}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		sales := r.Sales()
		buckets[pos].Sales += sales
		buckets[pos].ByChannel[r.Channel] += sales
		buckets[pos].Orders++
	}

	return buckets
}

// bucketStart rebases a date onto its bucket's first day.
func bucketStart(g domain.Granularity, t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch g {
	case domain.GranularityWeek:
		wd := int(day.Weekday())
		if wd == 0 {
			wd = 7
		}
		return day.AddDate(0, 0, -(wd - 1))
	case domain.GranularityMonth:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	default:
		return day
	}
}

func bucketLabel(g domain.Granularity, start time.Time) string {
	if g == domain.GranularityMonth {
		return start.Format("2006-01")
	}
	return start.Format("2006-01-02")
}

// bucketStarts enumerates every bucket covering the window, in order.
func bucketStarts(g domain.Granularity, w domain.PeriodWindow) []time.Time {
	if w.End.Before(w.Start) {
		return nil
	}

	var starts []time.Time
	for cur := bucketStart(g, w.Start); !cur.After(w.End); {
		starts = append(starts, cur)
		switch g {
		case domain.GranularityWeek:
			cur = cur.AddDate(0, 0, 7)
		case domain.GranularityMonth:
			cur = cur.AddDate(0, 1, 0)
		default:
			cur = cur.AddDate(0, 0, 1)
		}
	}
	return starts
}
