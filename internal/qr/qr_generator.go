package qr

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 300
	minSize     = 100
	maxSize     = 1000
)

// Generator renders campaign QR codes. Every code encodes the public
// tracking URL, never the target URL, so scans always pass through the
// recorder before the redirect.
type Generator struct {
	baseURL string
}

func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: baseURL}
}

func (g *Generator) TrackingURL(campaignCode string) string {
	return fmt.Sprintf("%s/scan/%s", g.baseURL, campaignCode)
}

// GeneratePNG renders the tracking URL as a PNG of the given pixel size.
// Out-of-range sizes are clamped rather than rejected.
func (g *Generator) GeneratePNG(campaignCode string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	if size < minSize {
		size = minSize
	}
	if size > maxSize {
		size = maxSize
	}

	png, err := qrcode.Encode(g.TrackingURL(campaignCode), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR for %s: %w", campaignCode, err)
	}
	return png, nil
}
