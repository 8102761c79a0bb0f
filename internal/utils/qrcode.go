package utils

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// GenerateQRCodePNG renders the given content as a PNG image, used for the
// printable donation posters that link to an event's public tally page.
func GenerateQRCodePNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("QR content cannot be empty")
	}
	if size <= 0 {
		size = 256
	}

	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	return png, nil
}
