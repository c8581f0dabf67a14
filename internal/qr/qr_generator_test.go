package qr_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/qr"
)

const testCode = "Ab3dEf6hIj9kLm"

func TestTrackingURL(t *testing.T) {
	generator := qr.NewGenerator("https://track.example.com")
	assert.Equal(t, "https://track.example.com/scan/"+testCode, generator.TrackingURL(testCode))
}

func TestGeneratePNG(t *testing.T) {
	generator := qr.NewGenerator("https://track.example.com")

	data, err := generator.GeneratePNG(testCode, 300)
	assert.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestGeneratePNGClampsSize(t *testing.T) {
	generator := qr.NewGenerator("https://track.example.com")

	data, err := generator.GeneratePNG(testCode, 5)
	assert.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())

	data, err = generator.GeneratePNG(testCode, 99999)
	assert.NoError(t, err)
	img, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 1000, img.Bounds().Dx())

	data, err = generator.GeneratePNG(testCode, 0)
	assert.NoError(t, err)
	img, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, qr.DefaultSize, img.Bounds().Dx())
}
