package main

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/folio/internal/performance"
)

func TestGainMarkdown(t *testing.T) {
	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 7, 8, 0, 0, 0, 0, time.UTC)

	t.Run("valued", func(t *testing.T) {
		g := &performance.Gain{
			Start:          start,
			End:            end,
			ValuationStart: &performance.Valuation{Holdings: decimal.NewNullDecimal(decimal.NewFromInt(1000)), Total: decimal.NewNullDecimal(decimal.NewFromInt(1000))},
			ValuationEnd:   &performance.Valuation{Holdings: decimal.NewNullDecimal(decimal.NewFromInt(1100)), Total: decimal.NewNullDecimal(decimal.NewFromInt(1100))},
			Amount:         decimal.NewNullDecimal(decimal.NewFromInt(100)),
			Percent:        decimal.NewNullDecimal(decimal.NewFromFloat(0.1)),
		}

		md := gainMarkdown(g, "INR")

		assert.Contains(t, md, "# Gain 2024-07-01 to 2024-07-08")
		assert.NotContains(t, md, "n/a")
		assert.NotContains(t, md, "No close")
	})

	t.Run("unvalued", func(t *testing.T) {
		g := &performance.Gain{
			Start:          start,
			End:            end,
			ValuationStart: &performance.Valuation{},
			ValuationEnd:   &performance.Valuation{},
			Unvalued:       []performance.Unvalued{{Instrument: "INFY", Date: start}},
		}

		md := gainMarkdown(g, "INR")

		assert.Contains(t, md, "**Gain:** n/a")
		assert.Contains(t, md, "- INFY on 2024-07-01")
	})
}

func TestParseDay(t *testing.T) {
	d, ok := parseDay("2024-02-29")
	assert.True(t, ok)
	assert.Equal(t, "2024-02-29", d.Format(time.DateOnly))

	_, ok = parseDay("")
	assert.True(t, ok)

	_, ok = parseDay("29/02/2024")
	assert.False(t, ok)
}
