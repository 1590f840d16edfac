// backend-go/internal/normalize/normalizer.go
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sellora/salesboard/backend-go/internal/domain"
	"github.com/sellora/salesboard/backend-go/internal/mapping"
)

// dateFormats are tried in order; the first match wins. Rows matching none
// are dropped so later stages never see a date-less record.
var dateFormats = []string{
	"2006-01-02",
	"2006.01.02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006.01.02 15:04:05",
	time.RFC3339,
}

// Normalizer converts raw positional channel rows into canonical
// SalesRecords against a fixed mapping snapshot.
type Normalizer struct {
	tables *mapping.Tables
}

func New(tables *mapping.Tables) *Normalizer {
	return &Normalizer{tables: tables}
}

// Normalize converts one raw row. It returns ErrMalformedRow when the row
// matches no layout for the channel and ErrMissingDate when the date cell
// does not parse; both mean "drop this row", never "abort the batch".
func (n *Normalizer) Normalize(row []string, ch domain.Channel) (*domain.SalesRecord, error) {
	layout, ok := layoutFor(ch, len(row))
	if !ok {
		return nil, fmt.Errorf("%w: channel %s has no layout for width %d", domain.ErrMalformedRow, ch, len(row))
	}

	date, err := parseDate(field(row, layout.date))
	if err != nil {
		return nil, fmt.Errorf("%w: channel %s order %q", domain.ErrMissingDate, ch, field(row, layout.orderNumber))
	}

	product := field(row, layout.product)
	option := field(row, layout.option)
	quantity := parseQuantity(field(row, layout.quantity))

	rec := domain.SalesRecord{
		Date:            date,
		Channel:         ch,
		OrderNumber:     field(row, layout.orderNumber),
		OriginalProduct: product,
		OriginalOption:  option,
		Quantity:        quantity,
		OrderStatus:     field(row, layout.status),
		CustomerName:    field(row, layout.customerName),
		CustomerContact: field(row, layout.customerContact),
	}

	if rec.CustomerName != "" || rec.CustomerContact != "" {
		rec.CustomerKey = rec.CustomerName + "-" + rec.CustomerContact
	}

	if m, found := n.tables.Resolve(product, option, ch); found {
		rec.MappedProduct = m.Product
		rec.MappedOption = m.Option
		rec.UnitPrice = m.Price
		rec.Cost = m.Cost
		rec.MappingStatus = domain.MappingStatusMapped
	} else {
		// Best-effort price from the export's own gross figure. Cost is
		// unknowable without canonical identity.
		rec.MappingStatus = domain.MappingStatusUnmapped
		if quantity > 0 {
			rec.UnitPrice = parseAmount(field(row, layout.grossSales)) / float64(quantity)
		}
	}

	return &rec, nil
}

// NormalizeBatch converts a raw export, isolating per-row failures. One bad
// row never aborts the rest; the report carries dropped/unmapped counts so
// the UI can surface data quality.
func (n *Normalizer) NormalizeBatch(rows [][]string, ch domain.Channel) ([]domain.SalesRecord, domain.BatchReport) {
	records := make([]domain.SalesRecord, 0, len(rows))
	report := domain.BatchReport{Total: len(rows)}

	for i, row := range rows {
		rec, err := n.Normalize(row, ch)
		if err != nil {
			report.Dropped++
			log.Warn().Err(err).Str("channel", string(ch)).Int("row", i).Msg("dropping raw sales row")
			continue
		}
		if rec.MappingStatus == domain.MappingStatusUnmapped {
			report.Unmapped++
		}
		records = append(records, *rec)
	}

	return records, report
}

func field(row []string, idx int) string {
	if idx >= 0 && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// parseQuantity never fails: non-numeric parses to 0 and float strings like
// "2.0" are accepted.
func parseQuantity(s string) int {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return int(f)
}

func parseAmount(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, format := range dateFormats {
		if t, err := time.ParseInLocation(format, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", s)
}
