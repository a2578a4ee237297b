package vat

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Saudi VAT rates allowed by ZATCA: standard 15%, reduced 5%, zero-rated 0%.
var allowedRates = []decimal.Decimal{
	decimal.Zero,
	decimal.NewFromInt(5),
	decimal.NewFromInt(15),
}

// Validation errors returned by Calculate
var (
	ErrInvalidRate      = errors.New("vat rate must be 0%, 5%, or 15%")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrInvalidUnitPrice = errors.New("unit price must be greater than zero")
)

// Line is a single invoice line as seen by the calculator.
// Callers convert their own line-item shapes to this type once, at the edge.
type Line struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Rate      decimal.Decimal
}

// Subtotal returns quantity * unit price, unrounded.
func (l Line) Subtotal() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// VAT returns the line's VAT amount, unrounded.
func (l Line) VAT() decimal.Decimal {
	return l.Subtotal().Mul(l.Rate).Div(decimal.NewFromInt(100))
}

// Totals holds the invoice-level totals, each rounded to 2 decimal places.
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	VATAmount   decimal.Decimal `json:"vat_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// RateAllowed reports whether the given VAT rate is one ZATCA accepts.
func RateAllowed(rate decimal.Decimal) bool {
	for _, r := range allowedRates {
		if rate.Equal(r) {
			return true
		}
	}
	return false
}

// Calculate computes invoice totals from the given lines.
//
// Rounding is applied once, at the invoice level: per-line subtotals and VAT
// amounts are summed exactly and only the aggregates are rounded (half-up,
// 2dp). The total is the sum of the two rounded aggregates, so
// Total == Subtotal + VATAmount holds exactly. Summing pre-rounded line
// values would drift by a cent against this; the two strategies must never
// be mixed.
func Calculate(lines []Line) (Totals, error) {
	for i, l := range lines {
		if !RateAllowed(l.Rate) {
			return Totals{}, fmt.Errorf("line %d: %w", i+1, ErrInvalidRate)
		}
		if !l.Quantity.IsPositive() {
			return Totals{}, fmt.Errorf("line %d: %w", i+1, ErrInvalidQuantity)
		}
		if !l.UnitPrice.IsPositive() {
			return Totals{}, fmt.Errorf("line %d: %w", i+1, ErrInvalidUnitPrice)
		}
	}
	return sum(lines), nil
}

// Check validates lines leniently, accumulating one message per fault instead
// of failing on the first. Used by the live preview path.
func Check(lines []Line) []string {
	var errs []string
	for i, l := range lines {
		if l.Quantity.IsNegative() || l.Quantity.IsZero() {
			errs = append(errs, fmt.Sprintf("Item %d: quantity must be greater than zero", i+1))
		}
		if l.UnitPrice.IsNegative() || l.UnitPrice.IsZero() {
			errs = append(errs, fmt.Sprintf("Item %d: unit price must be greater than zero", i+1))
		}
		if !RateAllowed(l.Rate) {
			errs = append(errs, fmt.Sprintf("Item %d: VAT rate must be 0%%, 5%%, or 15%%", i+1))
		}
	}
	return errs
}

// Sum computes totals without validating the lines. The preview path uses it
// so that a partially invalid request still gets indicative numbers; for
// valid input it is bit-identical to Calculate.
func Sum(lines []Line) Totals {
	return sum(lines)
}

func sum(lines []Line) Totals {
	subtotal := decimal.Zero
	vatAmount := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Subtotal())
		vatAmount = vatAmount.Add(l.VAT())
	}

	subtotal = subtotal.Round(2)
	vatAmount = vatAmount.Round(2)

	return Totals{
		Subtotal:    subtotal,
		VATAmount:   vatAmount,
		TotalAmount: subtotal.Add(vatAmount),
	}
}
