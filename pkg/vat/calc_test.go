package vat

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(qty, price, rate string) Line {
	return Line{
		Quantity:  decimal.RequireFromString(qty),
		UnitPrice: decimal.RequireFromString(price),
		Rate:      decimal.RequireFromString(rate),
	}
}

func TestCalculateStandardRate(t *testing.T) {
	totals, err := Calculate([]Line{line("10", "500", "15")})
	require.NoError(t, err)

	assert.Equal(t, "5000.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "750.00", totals.VATAmount.StringFixed(2))
	assert.Equal(t, "5750.00", totals.TotalAmount.StringFixed(2))
}

func TestCalculateMixedRates(t *testing.T) {
	totals, err := Calculate([]Line{
		line("1", "100", "15"),
		line("2", "50", "5"),
		line("3", "10", "0"),
	})
	require.NoError(t, err)

	assert.Equal(t, "230.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "20.00", totals.VATAmount.StringFixed(2))
	assert.Equal(t, "250.00", totals.TotalAmount.StringFixed(2))
}

func TestCalculateNoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 style inputs must come out exact
	totals, err := Calculate([]Line{
		line("3", "0.1", "15"),
		line("1", "0.2", "15"),
	})
	require.NoError(t, err)

	assert.Equal(t, "0.50", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "0.08", totals.VATAmount.StringFixed(2))
	assert.Equal(t, "0.58", totals.TotalAmount.StringFixed(2))
}

func TestCalculateAggregateRounding(t *testing.T) {
	// Each line's VAT is 0.075375; rounding per line (0.08 * 3) would give
	// 0.24, the aggregate rounds 0.226125 to 0.23
	lines := []Line{
		line("1", "0.5025", "15"),
		line("1", "0.5025", "15"),
		line("1", "0.5025", "15"),
	}
	totals, err := Calculate(lines)
	require.NoError(t, err)

	assert.Equal(t, "1.51", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "0.23", totals.VATAmount.StringFixed(2))
}

func TestTotalEqualsSubtotalPlusVAT(t *testing.T) {
	totals, err := Calculate([]Line{
		line("7", "3.33", "15"),
		line("11", "19.99", "5"),
		line("2", "0.01", "0"),
	})
	require.NoError(t, err)

	assert.True(t, totals.TotalAmount.Equal(totals.Subtotal.Add(totals.VATAmount)))
}

func TestCalculateRejectsDisallowedRate(t *testing.T) {
	_, err := Calculate([]Line{line("1", "100", "20")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRate)
	assert.Contains(t, err.Error(), "line 1")
}

func TestCalculateRejectsNonPositiveQuantity(t *testing.T) {
	_, err := Calculate([]Line{line("0", "100", "15")})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = Calculate([]Line{line("-1", "100", "15")})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCalculateRejectsNonPositivePrice(t *testing.T) {
	_, err := Calculate([]Line{line("1", "0", "15")})
	assert.ErrorIs(t, err, ErrInvalidUnitPrice)

	_, err = Calculate([]Line{line("1", "-5", "15")})
	assert.ErrorIs(t, err, ErrInvalidUnitPrice)
}

func TestRateAllowed(t *testing.T) {
	assert.True(t, RateAllowed(decimal.Zero))
	assert.True(t, RateAllowed(decimal.NewFromInt(5)))
	assert.True(t, RateAllowed(decimal.NewFromInt(15)))
	assert.False(t, RateAllowed(decimal.NewFromInt(10)))
	assert.False(t, RateAllowed(decimal.NewFromFloat(15.5)))
}

func TestCheckAccumulatesPerItemMessages(t *testing.T) {
	errs := Check([]Line{
		line("0", "100", "15"),
		line("1", "50", "15"),
		line("2", "-1", "7"),
	})

	require.Len(t, errs, 3)
	assert.Contains(t, errs[0], "Item 1")
	assert.Contains(t, errs[1], "Item 3")
	assert.Contains(t, errs[2], "Item 3")
}

func TestCheckValidLinesReturnNil(t *testing.T) {
	assert.Nil(t, Check([]Line{line("1", "100", "15")}))
}

func TestSumMatchesCalculateForValidInput(t *testing.T) {
	lines := []Line{
		line("4", "123.45", "15"),
		line("1.5", "9.99", "5"),
	}

	calculated, err := Calculate(lines)
	require.NoError(t, err)

	summed := Sum(lines)
	assert.True(t, calculated.Subtotal.Equal(summed.Subtotal))
	assert.True(t, calculated.VATAmount.Equal(summed.VATAmount))
	assert.True(t, calculated.TotalAmount.Equal(summed.TotalAmount))
}
