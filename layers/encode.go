package layers

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/chaos-io/garment2layers/garment"
)

// Encode builds the artifact image for an accepted mask: RGB uniformly
// white, alpha equal to the mask. The compositor keys purely off the alpha
// channel, the white RGB makes the artifact previewable on its own.
func Encode(mask *image.Gray) *image.NRGBA {
	b := mask.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	white := image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	draw.Draw(out, out.Bounds(), white, image.Point{}, draw.Src)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Pix[y*out.Stride+x*4+3] = mask.GrayAt(b.Min.X+x, b.Min.Y+y).Y
		}
	}
	return out
}

// Write persists the artifact as a lossless PNG so the alpha channel round
// trips exactly. The destination directory must already exist; a failure
// here is an environment problem, not a per-template one.
func Write(path string, mask *image.Gray) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create mask artifact: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := png.Encode(f, Encode(mask)); err != nil {
		return fmt.Errorf("failed to encode mask artifact: %w", err)
	}
	return nil
}

// Decode reads an artifact's alpha channel back into a binary mask, the
// inverse of Write. The pipeline itself only writes.
func Decode(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	mask := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if a>>8 >= 128 {
				mask.Pix[y*mask.Stride+x] = garment.Foreground
			}
		}
	}
	return mask, nil
}
