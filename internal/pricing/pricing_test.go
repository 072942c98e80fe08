package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestUnitPriceAfterDiscount(t *testing.T) {
	cases := []struct {
		price, pct, want string
	}{
		{"100", "0", "100"},
		{"100", "10", "90"},
		{"19.99", "15", "16.99"},
		{"3.33", "33.33", "2.22"},
		{"50", "100", "0"},
	}
	for _, tc := range cases {
		got := UnitPriceAfterDiscount(dec(t, tc.price), dec(t, tc.pct))
		assert.True(t, dec(t, tc.want).Equal(got), "price %s pct %s: got %s", tc.price, tc.pct, got)
	}
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, "50.97", Fixed(LineTotal(3, dec(t, "16.99"))))
	assert.Equal(t, "0.00", Fixed(LineTotal(0, dec(t, "16.99"))))
}

func TestSum(t *testing.T) {
	assert.Equal(t, "0.00", Fixed(Sum()))
	assert.Equal(t, "60.50", Fixed(Sum(dec(t, "10.25"), dec(t, "50.25"))))
}

func TestParse(t *testing.T) {
	d, err := Parse(" 12.50 ")
	require.NoError(t, err)
	assert.Equal(t, "12.50", Fixed(d))

	_, err = Parse("twelve")
	require.Error(t, err)
}

func TestFormatterGroupsThousands(t *testing.T) {
	f := NewFormatter("$")
	assert.Equal(t, "$1,234.50", f.Format(dec(t, "1234.5")))
}
