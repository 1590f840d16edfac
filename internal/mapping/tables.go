// backend-go/internal/mapping/tables.go
package mapping

import (
	"strconv"
	"strings"

	"github.com/sellora/salesboard/backend-go/internal/domain"
)

// MappingResult is the canonical identity and authoritative price/cost for
// an original (product, option) pair.
type MappingResult struct {
	Product string  `json:"product"`
	Option  string  `json:"option"`
	Price   float64 `json:"price"`
	Cost    float64 `json:"cost"`
}

// CommissionRates holds one percentage (0-100) per channel.
type CommissionRates map[domain.Channel]float64

type key struct {
	product string
	option  string
}

// Tables is an immutable snapshot of the mapping and commission tables.
// Build a new one and publish it through Store; never mutate a snapshot
// that readers may hold.
type Tables struct {
	mappings    map[key]MappingResult
	commissions map[string]CommissionRates
	overrides   map[key]CommissionRates
}

// Resolve looks up the canonical tuple for an original (product, option).
// A missing option is treated as the empty string, so (P, "") and an absent
// option resolve identically. The channel is accepted for channel-scoped
// overrides later; the base lookup is global.
func (t *Tables) Resolve(product, option string, _ domain.Channel) (MappingResult, bool) {
	if t == nil || product == "" {
		return MappingResult{}, false
	}
	res, ok := t.mappings[key{product: product, option: option}]
	return res, ok
}

// CommissionRate returns the channel's commission percentage for a canonical
// (product, option). The per-option override table wins over the per-product
// base table; absence means 0%, never an error.
func (t *Tables) CommissionRate(product, option string, ch domain.Channel) float64 {
	if t == nil {
		return 0
	}
	if rates, ok := t.overrides[key{product: product, option: option}]; ok {
		return rates[ch]
	}
	return t.commissions[product][ch]
}

// MappingCount reports how many mapping entries the snapshot holds.
func (t *Tables) MappingCount() int {
	if t == nil {
		return 0
	}
	return len(t.mappings)
}

// BuildTables assembles a snapshot from raw sheet tuples.
// Mapping rows: [originalProduct, originalOption, canonicalProduct,
// canonicalOption, price, cost]. Commission rows: [productKey,
// smartstoreRate, ohouseRate, ytshoppingRate]. Override rows add a leading
// option column after the product. Short or unparsable rows are skipped.
func BuildTables(mappingRows, commissionRows, overrideRows [][]string) *Tables {
	t := &Tables{
		mappings:    make(map[key]MappingResult, len(mappingRows)),
		commissions: make(map[string]CommissionRates, len(commissionRows)),
		overrides:   make(map[key]CommissionRates, len(overrideRows)),
	}

	for _, row := range mappingRows {
		if len(row) < 4 {
			continue
		}
		original := strings.TrimSpace(cell(row, 0))
		if original == "" {
			continue
		}
		t.mappings[key{product: original, option: strings.TrimSpace(cell(row, 1))}] = MappingResult{
			Product: strings.TrimSpace(cell(row, 2)),
			Option:  strings.TrimSpace(cell(row, 3)),
			Price:   parseFloat(cell(row, 4)),
			Cost:    parseFloat(cell(row, 5)),
		}
	}

	for _, row := range commissionRows {
		product := strings.TrimSpace(cell(row, 0))
		if product == "" {
			continue
		}
		t.commissions[product] = CommissionRates{
			domain.ChannelSmartstore: parseFloat(cell(row, 1)),
			domain.ChannelOhouse:     parseFloat(cell(row, 2)),
			domain.ChannelYtshopping: parseFloat(cell(row, 3)),
		}
	}

	for _, row := range overrideRows {
		product := strings.TrimSpace(cell(row, 0))
		if product == "" {
			continue
		}
		t.overrides[key{product: product, option: strings.TrimSpace(cell(row, 1))}] = CommissionRates{
			domain.ChannelSmartstore: parseFloat(cell(row, 2)),
			domain.ChannelOhouse:     parseFloat(cell(row, 3)),
			domain.ChannelYtshopping: parseFloat(cell(row, 4)),
		}
	}

	return t
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func parseFloat(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
