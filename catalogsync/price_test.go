package catalogsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"£19.99", 19.99, true},
		{"19.99", 19.99, true},
		{"¬£24.50", 24.50, true},
		{"1,234.56", 1234.56, true},
		{"19,99", 19.99, true},
		{"0", 0, true},
		{"", 0, false},
		{"https://example.com/p/19.99", 0, false},
		{"-5.00", 0, false},
		{"250000", 0, false},
		{"call for price", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParsePrice(tc.raw)
		assert.Equal(t, tc.ok, ok, "raw=%q", tc.raw)
		if tc.ok {
			assert.InDelta(t, tc.want, got, 0.001, "raw=%q", tc.raw)
		}
	}
}

func TestDetectPricePrefersKnownColumns(t *testing.T) {
	row := make([]string, 13)
	row[10] = "£5.00"
	row[11] = "£9.99"
	row[12] = "£1.00"

	price, ok := DetectPrice(row)
	assert.True(t, ok)
	assert.InDelta(t, 9.99, price, 0.001)
}

func TestDetectPriceFallsBackToPoundScan(t *testing.T) {
	row := []string{"Rose Candle", "", "", "RRP ¬£12.50"}

	price, ok := DetectPrice(row)
	assert.True(t, ok)
	assert.InDelta(t, 12.50, price, 0.001)
}

func TestDetectPriceRejectsRowWithoutPrice(t *testing.T) {
	row := []string{"Rose Candle", "a lovely candle", "https://example.com/19.99"}

	_, ok := DetectPrice(row)
	assert.False(t, ok)
}
