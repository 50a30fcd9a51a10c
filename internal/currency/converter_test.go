package currency

import (
	"errors"
	"testing"

	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_RoundTripsThroughRate(t *testing.T) {
	c := NewConverter()

	for _, info := range c.Supported() {
		for _, amount := range []float64{0, 1, 199.99, 1100, 2999.5} {
			got, err := c.Convert(amount, info.Code)
			require.NoError(t, err)
			assert.InDelta(t, amount, got/info.Rate, 1e-9, info.Code)
		}
	}
}

func TestConvert_Unsupported(t *testing.T) {
	c := NewConverter()

	_, err := c.Convert(10, "XYZ")

	assert.True(t, errors.Is(err, domain.ErrUnsupportedCurrency))
}

func TestLookup_NormalizesCode(t *testing.T) {
	c := NewConverter()

	info, err := c.Lookup(" eur ")

	require.NoError(t, err)
	assert.Equal(t, "EUR", info.Code)
	assert.Equal(t, "€", info.Symbol)
}

func TestFormat(t *testing.T) {
	c := NewConverter()

	tests := []struct {
		amount float64
		code   string
		want   string
	}{
		{1100, "USD", "$1,100.00"},
		{92.456, "EUR", "€92.46"},
		{0.5, "GBP", "£0.50"},
		{1705000, "NGN", "₦1,705,000.00"},
	}

	for _, tc := range tests {
		got, err := c.Format(tc.amount, tc.code)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestDisplay(t *testing.T) {
	c := NewConverter()

	got, err := c.Display(100, "JPY")
	require.NoError(t, err)
	assert.Equal(t, "¥14,950.00", got)

	_, err = c.Display(100, "")
	assert.ErrorIs(t, err, domain.ErrUnsupportedCurrency)
}

func TestSupported_Sorted(t *testing.T) {
	codes := []string{}
	for _, info := range NewConverter().Supported() {
		codes = append(codes, info.Code)
	}

	assert.Equal(t, []string{"EUR", "GBP", "JPY", "NGN", "USD"}, codes)
}
