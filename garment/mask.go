package garment

import "image"

// Mask pixel values. Masks are single-channel images holding only these two
// values; every transform in this package preserves that.
const (
	Background uint8 = 0
	Foreground uint8 = 255
)

// CountForeground returns the number of foreground pixels in the mask.
func CountForeground(mask *image.Gray) int {
	count := 0
	for _, v := range mask.Pix {
		if v == Foreground {
			count++
		}
	}
	return count
}

// Coverage returns the foreground fraction of the mask in [0, 1].
func Coverage(mask *image.Gray) float64 {
	b := mask.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}
	return float64(CountForeground(mask)) / float64(total)
}

// Empty reports whether the mask has no foreground pixels at all.
func Empty(mask *image.Gray) bool {
	for _, v := range mask.Pix {
		if v == Foreground {
			return false
		}
	}
	return true
}
