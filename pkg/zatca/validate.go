package zatca

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// Saudi VAT registration numbers are exactly 15 digits starting with 3.
var vatNumberPattern = regexp.MustCompile(`^3\d{14}$`)

// ValidVATNumber reports whether s is a well-formed Saudi VAT registration number.
func ValidVATNumber(s string) bool {
	return vatNumberPattern.MatchString(s)
}

// ValidInvoiceNumber reports whether s is a usable invoice number (1-50 chars).
func ValidInvoiceNumber(s string) bool {
	return s != "" && len(s) <= 50
}

// ValidAmount reports whether d is a positive monetary amount with at most
// two decimal places.
func ValidAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.Exponent() >= -2
}
