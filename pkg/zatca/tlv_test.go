package zatca

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTLVRoundTrip(t *testing.T) {
	payload, err := EncodeTLV(
		"شركة التقنية",
		"310122393500003",
		"2026-08-29T10:30:00Z",
		decimal.RequireFromString("5750"),
		decimal.RequireFromString("750"),
	)
	require.NoError(t, err)

	fields, err := DecodeTLV(payload)
	require.NoError(t, err)
	require.Len(t, fields, 5)

	assert.Equal(t, TagSellerName, fields[0].Tag)
	assert.Equal(t, "شركة التقنية", fields[0].Value)
	assert.Equal(t, TagVATNumber, fields[1].Tag)
	assert.Equal(t, "310122393500003", fields[1].Value)
	assert.Equal(t, TagTimestamp, fields[2].Tag)
	assert.Equal(t, "2026-08-29T10:30:00Z", fields[2].Value)
	assert.Equal(t, TagTotalAmount, fields[3].Tag)
	assert.Equal(t, "5750.00", fields[3].Value)
	assert.Equal(t, TagVATAmount, fields[4].Tag)
	assert.Equal(t, "750.00", fields[4].Value)
}

func TestEncodeTLVAmountsAlwaysTwoDecimals(t *testing.T) {
	payload, err := EncodeTLV("Seller", "310122393500003", "2026-01-01T00:00:00Z",
		decimal.RequireFromString("100.5"), decimal.RequireFromString("15"))
	require.NoError(t, err)

	fields, err := DecodeTLV(payload)
	require.NoError(t, err)
	assert.Equal(t, "100.50", fields[3].Value)
	assert.Equal(t, "15.00", fields[4].Value)
}

func TestEncodeTLVLengthIsUTF8Bytes(t *testing.T) {
	// Arabic seller name: byte length differs from rune count
	name := "مؤسسة"
	payload, err := EncodeTLV(name, "310122393500003", "2026-01-01T00:00:00Z",
		decimal.NewFromInt(100), decimal.NewFromInt(15))
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)

	assert.Equal(t, byte(1), raw[0])
	assert.Equal(t, byte(len([]byte(name))), raw[1])
}

func TestEncodeTLVRejectsOverlongField(t *testing.T) {
	longName := strings.Repeat("x", 256)
	_, err := EncodeTLV(longName, "310122393500003", "2026-01-01T00:00:00Z",
		decimal.NewFromInt(100), decimal.NewFromInt(15))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFieldTooLong)
	assert.Contains(t, err.Error(), "tag 1")
}

func TestEncodeTLVMaxLengthFieldAccepted(t *testing.T) {
	name := strings.Repeat("x", 255)
	payload, err := EncodeTLV(name, "310122393500003", "2026-01-01T00:00:00Z",
		decimal.NewFromInt(100), decimal.NewFromInt(15))
	require.NoError(t, err)

	fields, err := DecodeTLV(payload)
	require.NoError(t, err)
	assert.Equal(t, name, fields[0].Value)
}

func TestDecodeTLVRejectsBadBase64(t *testing.T) {
	_, err := DecodeTLV("not-base64!!!")
	assert.Error(t, err)
}

func TestDecodeTLVRejectsTruncatedRecord(t *testing.T) {
	// Declares a 10-byte value but supplies 2
	raw := []byte{1, 10, 'a', 'b'}
	_, err := DecodeTLV(base64.StdEncoding.EncodeToString(raw))
	assert.Error(t, err)
}

func TestValidVATNumber(t *testing.T) {
	assert.True(t, ValidVATNumber("310122393500003"))
	assert.False(t, ValidVATNumber("410122393500003")) // wrong leading digit
	assert.False(t, ValidVATNumber("31012239350000"))  // 14 digits
	assert.False(t, ValidVATNumber("3101223935000031"))
	assert.False(t, ValidVATNumber("31012239350000a"))
	assert.False(t, ValidVATNumber(""))
}

func TestValidInvoiceNumber(t *testing.T) {
	assert.True(t, ValidInvoiceNumber("INV-001"))
	assert.False(t, ValidInvoiceNumber(""))
	assert.False(t, ValidInvoiceNumber(strings.Repeat("A", 51)))
	assert.True(t, ValidInvoiceNumber(strings.Repeat("A", 50)))
}

func TestValidAmount(t *testing.T) {
	assert.True(t, ValidAmount(decimal.RequireFromString("10.55")))
	assert.True(t, ValidAmount(decimal.RequireFromString("10")))
	assert.False(t, ValidAmount(decimal.RequireFromString("10.555")))
	assert.False(t, ValidAmount(decimal.Zero))
	assert.False(t, ValidAmount(decimal.RequireFromString("-1")))
}

func TestQRImageProducesPNG(t *testing.T) {
	payload, err := EncodeTLV("Seller", "310122393500003", "2026-01-01T00:00:00Z",
		decimal.NewFromInt(100), decimal.NewFromInt(15))
	require.NoError(t, err)

	png, err := QRImage(payload, DefaultQRSize)
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
