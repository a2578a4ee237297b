package zatca

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultQRSize is the pixel size of the rendered QR image.
const DefaultQRSize = 256

// QRImage renders a TLV payload into a PNG QR code. Recovery level is Low per
// the Phase-1 profile; the payload string is the only input, so the same
// payload always produces the same image.
func QRImage(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(payload, qrcode.Low, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render qr code: %w", err)
	}
	return png, nil
}
