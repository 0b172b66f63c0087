package render

import (
	"image"
	"strings"

	"github.com/skip2/go-qrcode"
)

const defaultQRCodeSizePx = 256

// WheelImagePath is where the HTTP server exports the current wheel as PNG.
const WheelImagePath = "/api/v1/wheel.png"

// GenerateQRCodeImage returns a QR code image for the given payload.
// If payload is empty, it returns (nil, nil).
func GenerateQRCodeImage(payload string, sizePx int) (image.Image, error) {
	if payload == "" {
		return nil, nil
	}
	if sizePx <= 0 {
		sizePx = defaultQRCodeSizePx
	}

	qrCode, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	return qrCode.Image(sizePx), nil
}

// WheelLink returns the URL of the wheel export below baseURL.
func WheelLink(baseURL string) string {
	if baseURL == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + WheelImagePath
}
