// Package zatca implements the ZATCA Phase-1 e-invoicing QR payload
// (TLV-encoded, base64) and the authority's format validation rules.
package zatca

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// TLV tags in the order mandated by the ZATCA Phase-1 specification.
// The order is fixed by the standard and must not change.
const (
	TagSellerName  byte = 1
	TagVATNumber   byte = 2
	TagTimestamp   byte = 3
	TagTotalAmount byte = 4
	TagVATAmount   byte = 5
)

// MaxFieldLen is the largest value a single TLV field can carry. The format
// has a one-byte length and no extension mechanism.
const MaxFieldLen = 255

// ErrFieldTooLong is returned when a field's UTF-8 encoding exceeds MaxFieldLen bytes.
var ErrFieldTooLong = errors.New("tlv field exceeds 255 bytes")

// Field is one decoded tag/value pair.
type Field struct {
	Tag   byte
	Value string
}

// EncodeTLV builds the ZATCA QR payload: five TLV records concatenated in tag
// order 1..5 and base64-encoded. Amounts are rendered as fixed 2-decimal
// strings ("5750.00"), never as binary numbers — tax-authority scanners parse
// this byte layout literally.
func EncodeTLV(sellerName, vatNumber, timestamp string, totalAmount, vatAmount decimal.Decimal) (string, error) {
	values := []struct {
		tag   byte
		value string
	}{
		{TagSellerName, sellerName},
		{TagVATNumber, vatNumber},
		{TagTimestamp, timestamp},
		{TagTotalAmount, totalAmount.StringFixed(2)},
		{TagVATAmount, vatAmount.StringFixed(2)},
	}

	var buf []byte
	for _, v := range values {
		b := []byte(v.value)
		if len(b) > MaxFieldLen {
			return "", fmt.Errorf("tag %d: %w", v.tag, ErrFieldTooLong)
		}
		buf = append(buf, v.tag, byte(len(b)))
		buf = append(buf, b...)
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}

// DecodeTLV parses a base64 TLV payload back into its ordered fields.
// It rejects truncated records and trailing bytes.
func DecodeTLV(payload string) ([]Field, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}

	var fields []Field
	for i := 0; i < len(raw); {
		if len(raw)-i < 2 {
			return nil, errors.New("truncated tlv record")
		}
		tag := raw[i]
		length := int(raw[i+1])
		i += 2
		if len(raw)-i < length {
			return nil, fmt.Errorf("tag %d: value shorter than declared length", tag)
		}
		fields = append(fields, Field{Tag: tag, Value: string(raw[i : i+length])})
		i += length
	}

	return fields, nil
}
