package importer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCents_RoundsHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"12.345", 1235},
		{"-12.345", -1235},
		{"0.005", 1},
		{"100", 10000},
		{"19.994", 1999},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, toCents(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestParseLoose(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"100.00", "100", true},
		{" 42.5 CHF", "42.5", true},
		{"500.00-", "500", true},
		{"-3", "-3", true},
		{"", "0", false},
		{"CHF 10", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parseLoose(tt.in)
			assert.Equal(t, tt.wantOK, got.ok)
			assert.Equal(t, tt.want, got.v.String())
		})
	}
}

func TestParseGerman(t *testing.T) {
	assert.Equal(t, "1234.56", parseGerman("1.234,56").v.String())
	assert.Equal(t, "-3.5", parseGerman("-3,50").v.String())
	assert.Equal(t, "12.5", parseGerman("12.50").v.String())
}

func TestFirstNonZero(t *testing.T) {
	v, ok := firstNonZero(parseLoose(""), parseLoose("0"), parseLoose("7"))
	require.True(t, ok)
	assert.Equal(t, "7", v.String())

	v, ok = firstNonZero(parseLoose("0"), parseLoose(""))
	assert.True(t, ok)
	assert.True(t, v.IsZero())

	_, ok = firstNonZero(parseLoose(""), parseLoose("n/a"))
	assert.False(t, ok)
}

func TestNormalizeDate(t *testing.T) {
	got, err := normalizeDate(layoutShortYear, "31.12.23")
	require.NoError(t, err)
	assert.Equal(t, "2023-12-31", got)

	got, err = normalizeDate(layoutLongYear, "01.02.2024")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", got)

	_, err = normalizeDate(layoutLongYear, "2024-02-01")
	assert.Error(t, err)
}

func TestDropLines(t *testing.T) {
	text := "a\nb\nc\nd\nfooter\n\n"
	assert.Equal(t, "c\nd", dropLines(text, 2, 1))
	assert.Equal(t, "c\nd\nfooter\n\n", dropLines(text, 2, 0))
	assert.Equal(t, "", dropLines("a\nb", 5, 0))
}
