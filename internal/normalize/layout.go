// backend-go/internal/normalize/layout.go
package normalize

import "github.com/sellora/salesboard/backend-go/internal/domain"

// columnLayout maps logical fields to positional columns for one channel
// export variant. Adding a channel (or a new export format) means adding a
// table entry here, not new control flow. An index of -1 means the export
// does not carry that field.
type columnLayout struct {
	// minLen is the narrowest row this layout applies to. When a channel
	// has several variants the widest matching layout wins, so variant
	// selection is a deterministic function of row shape.
	minLen int

	product         int
	option          int
	quantity        int
	orderNumber     int
	date            int
	customerName    int
	customerContact int
	status          int
	grossSales      int
}

var channelLayouts = map[domain.Channel][]columnLayout{
	// Smartstore ships two export formats: the current wide settlement
	// export and the legacy order export. Both remain in circulation.
	domain.ChannelSmartstore: {
		{
			minLen:          16,
			orderNumber:     0,
			status:          1,
			product:         6,
			option:          7,
			quantity:        8,
			grossSales:      10,
			customerName:    12,
			customerContact: 13,
			date:            14,
		},
		{
			minLen:          10,
			orderNumber:     0,
			date:            1,
			product:         2,
			option:          3,
			quantity:        4,
			grossSales:      5,
			status:          6,
			customerName:    7,
			customerContact: 8,
		},
	},
	domain.ChannelOhouse: {
		{
			minLen:          9,
			date:            0,
			orderNumber:     1,
			product:         2,
			option:          3,
			quantity:        4,
			grossSales:      5,
			customerName:    6,
			customerContact: 7,
			status:          8,
		},
	},
	domain.ChannelYtshopping: {
		{
			minLen:          8,
			orderNumber:     0,
			product:         1,
			option:          2,
			quantity:        3,
			grossSales:      4,
			date:            5,
			customerName:    6,
			customerContact: 7,
			// Trailing status column is absent from older exports; the
			// bounds-checked getter yields "" for those rows.
			status: 8,
		},
	},
}

// layoutFor selects the widest layout the row satisfies. Returns false when
// the row is narrower than every known variant for the channel.
func layoutFor(ch domain.Channel, rowLen int) (columnLayout, bool) {
	best := columnLayout{minLen: -1}
	for _, l := range channelLayouts[ch] {
		if rowLen >= l.minLen && l.minLen > best.minLen {
			best = l
		}
	}
	return best, best.minLen >= 0
}
