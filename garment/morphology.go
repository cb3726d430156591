package garment

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/mat"
)

// maskToDense converts a binary mask to a float64 matrix for the
// morphological operators.
func maskToDense(mask *image.Gray) *mat.Dense {
	b := mask.Bounds()
	h, w := b.Dy(), b.Dx()
	d := mat.NewDense(h, w, nil)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d.Set(y, x, float64(mask.GrayAt(b.Min.X+x, b.Min.Y+y).Y))
		}
	}
	return d
}

// denseToMask converts a morphology result back to a binary mask.
func denseToMask(d *mat.Dense) *image.Gray {
	h, w := d.Dims()
	mask := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if d.At(y, x) > 127 {
				mask.Pix[y*mask.Stride+x] = Foreground
			}
		}
	}
	return mask
}

// DilateSquare dilates the matrix with a k x k square structuring element:
// every cell becomes the maximum of its clamped k x k neighborhood.
func DilateSquare(m *mat.Dense, k int) (*mat.Dense, error) {
	return morphSquare(m, k, false)
}

// ErodeSquare erodes the matrix with a k x k square structuring element:
// every cell becomes the minimum of its clamped k x k neighborhood.
func ErodeSquare(m *mat.Dense, k int) (*mat.Dense, error) {
	return morphSquare(m, k, true)
}

func morphSquare(m *mat.Dense, k int, erode bool) (*mat.Dense, error) {
	if k < 1 || k%2 == 0 {
		return nil, fmt.Errorf("structuring element size must be a positive odd number, got %d", k)
	}
	h, w := m.Dims()
	out := mat.NewDense(h, w, nil)
	radius := k / 2
	for y := 0; y < h; y++ {
		y0, y1 := max(y-radius, 0), min(y+radius, h-1)
		for x := 0; x < w; x++ {
			x0, x1 := max(x-radius, 0), min(x+radius, w-1)
			v := m.At(y0, x0)
			for ny := y0; ny <= y1; ny++ {
				for nx := x0; nx <= x1; nx++ {
					nv := m.At(ny, nx)
					if erode == (nv < v) {
						v = nv
					}
				}
			}
			out.Set(y, x, v)
		}
	}
	return out, nil
}

// Clean removes small defects from a binary mask: closing (dilate then
// erode) fills interior holes such as light fabric patterns, then opening
// (erode then dilate) drops isolated speckles from noise or shadows.
// Larger kernels clean more aggressively but eat fine detail like straps.
// Idempotent once the mask has stabilized.
func Clean(mask *image.Gray, kernelSize int) *image.Gray {
	if kernelSize <= 1 {
		out := image.NewGray(mask.Bounds())
		copy(out.Pix, mask.Pix)
		return out
	}
	if kernelSize%2 == 0 {
		kernelSize++
	}
	d := maskToDense(mask)

	// Closing.
	d = mustMorph(DilateSquare(d, kernelSize))
	d = mustMorph(ErodeSquare(d, kernelSize))
	// Opening.
	d = mustMorph(ErodeSquare(d, kernelSize))
	d = mustMorph(DilateSquare(d, kernelSize))

	return denseToMask(d)
}

// Clean normalizes the kernel size before use, so the operators cannot fail.
func mustMorph(d *mat.Dense, err error) *mat.Dense {
	if err != nil {
		panic(err)
	}
	return d
}
