package garment

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestThresholdPureWhite(t *testing.T) {
	img := uniformImage(40, 30, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	mask := Threshold(Grayscale(img), DefaultCutoff)
	assert.Equal(t, 0, CountForeground(mask))
	assert.True(t, Empty(mask))
}

func TestThresholdPureBlack(t *testing.T) {
	img := uniformImage(40, 30, color.NRGBA{A: 255})
	mask := Threshold(Grayscale(img), DefaultCutoff)
	assert.Equal(t, 40*30, CountForeground(mask))
}

func TestThresholdMidGray(t *testing.T) {
	img := uniformImage(10, 10, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	mask := Threshold(Grayscale(img), DefaultCutoff)
	assert.Equal(t, 100, CountForeground(mask), "luminance 128 is below the 230 cutoff")
}

func TestThresholdIsStrict(t *testing.T) {
	// A pixel exactly at the cutoff is background; only strictly darker
	// pixels are garment.
	gray := image.NewGray(image.Rect(0, 0, 3, 1))
	gray.Pix[0] = 229
	gray.Pix[1] = 230
	gray.Pix[2] = 231
	mask := Threshold(gray, 230)
	assert.Equal(t, []uint8{Foreground, Background, Background}, mask.Pix)
}

func TestGrayscaleDimensions(t *testing.T) {
	img := uniformImage(17, 9, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	gray := Grayscale(img)
	require.Equal(t, img.Bounds(), gray.Bounds())
}

func TestBackdropCutoffWhiteBackdrop(t *testing.T) {
	// A frame dominated by near-white backdrop should land close to the
	// classic cutoff.
	img := uniformImage(60, 60, color.NRGBA{R: 250, G: 250, B: 250, A: 255})
	for y := 20; y < 40; y++ {
		for x := 20; x < 40; x++ {
			img.Set(x, y, color.NRGBA{R: 30, G: 30, B: 30, A: 255})
		}
	}
	cutoff := BackdropCutoff(img, 20)
	assert.GreaterOrEqual(t, cutoff, uint8(200))
	assert.LessOrEqual(t, cutoff, uint8(250))
}

func TestBackdropCutoffClamped(t *testing.T) {
	img := uniformImage(20, 20, color.NRGBA{R: 40, G: 40, B: 40, A: 255})
	assert.Equal(t, uint8(200), BackdropCutoff(img, 20), "dark dominant color must not drag the cutoff below the floor")
}

func TestSegmentKeepsDimensions(t *testing.T) {
	img := uniformImage(33, 21, color.NRGBA{R: 90, G: 90, B: 90, A: 255})
	mask := Segment(img, DefaultCutoff, 5)
	require.Equal(t, img.Bounds().Dx(), mask.Bounds().Dx())
	require.Equal(t, img.Bounds().Dy(), mask.Bounds().Dy())
	assert.Equal(t, 33*21, CountForeground(mask))
}
