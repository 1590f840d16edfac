package aggregate

import (
	"testing"

	"github.com/sellora/salesboard/backend-go/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestCompareGrowthLaws(t *testing.T) {
	cases := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"both zero", 0, 0, 0},
		{"zero baseline caps at 100", 100, 0, 100},
		{"half up", 150, 100, 50},
		{"decline", 50, 100, -50},
		{"to zero", 0, 100, -100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := Compare(
				domain.Totals{GrossSales: tc.current},
				domain.Totals{GrossSales: tc.previous},
			)
			require.Equal(t, tc.want, g.SalesGrowthPct)
		})
	}
}

func TestCompareCoversAllMetrics(t *testing.T) {
	g := Compare(
		domain.Totals{GrossSales: 200, OrderLineCount: 30, UniqueCustomerCount: 12},
		domain.Totals{GrossSales: 100, OrderLineCount: 20, UniqueCustomerCount: 10},
	)

	require.Equal(t, 100.0, g.SalesGrowthPct)
	require.Equal(t, 50.0, g.OrderGrowthPct)
	require.Equal(t, 20.0, g.CustomerGrowthPct)
}
