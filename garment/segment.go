package garment

import (
	"image"

	"github.com/cenkalti/dominantcolor"
)

// DefaultCutoff is the near-white luminance cutoff on an 8-bit scale.
// Pixels strictly darker than the cutoff count as garment; lowering it
// admits more pixels as foreground.
const DefaultCutoff uint8 = 230

// Cutoff bounds for the backdrop-derived estimate. Studio backdrops sit
// near white, so anything outside this range means the estimate went wrong.
const (
	minCutoff uint8 = 200
	maxCutoff uint8 = 250
)

// Threshold classifies every pixel of a luminance image against the cutoff.
// This is an inverted binary threshold: dark pixels become foreground,
// bright pixels become background.
func Threshold(gray *image.Gray, cutoff uint8) *image.Gray {
	mask := image.NewGray(gray.Bounds())
	for i, v := range gray.Pix {
		if v < cutoff {
			mask.Pix[i] = Foreground
		} else {
			mask.Pix[i] = Background
		}
	}
	return mask
}

// BackdropCutoff estimates a threshold from the image itself: the dominant
// color of a studio garment shot is the backdrop, so its luminance minus a
// margin separates garment from backdrop. The result is clamped so a garment
// that happens to dominate the frame cannot drag the cutoff down to black.
func BackdropCutoff(img image.Image, margin uint8) uint8 {
	c := dominantcolor.Find(img)
	lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
	cutoff := lum - int(margin)
	if cutoff < int(minCutoff) {
		return minCutoff
	}
	if cutoff > int(maxCutoff) {
		return maxCutoff
	}
	return uint8(cutoff)
}

// Segment derives the cleaned foreground mask for a garment image:
// luminance conversion, inverted thresholding at cutoff, then morphological
// cleanup with a kernelSize square structuring element.
func Segment(img image.Image, cutoff uint8, kernelSize int) *image.Gray {
	mask := Threshold(Grayscale(img), cutoff)
	return Clean(mask, kernelSize)
}
