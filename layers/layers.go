// Package layers splits a garment foreground mask into semantic layer masks
// and serializes accepted layers as white-on-transparent PNG artifacts for
// the recoloring compositor.
package layers

import (
	"fmt"
	"image"
)

// Name identifies a semantic garment layer. The names double as the artifact
// filename suffix, so they are part of the on-disk contract.
type Name string

const (
	// TopLayer is the outer garment silhouette (jacket, hoodie, polo).
	TopLayer Name = "topLayer"
	// BaseLayer is the inner garment peeking out around the outer one,
	// typically a collar or cuffs.
	BaseLayer Name = "baseLayer"
	// Bottom is the lower garment (trousers, skirt).
	Bottom Name = "bottom"
	// Shoes is recognized by downstream consumers but never produced by
	// the decomposer; it stays in the enumeration so artifact listings and
	// filenames treat it uniformly.
	Shoes Name = "shoes"
)

// Names lists every canonical layer name in display order.
func Names() []Name {
	return []Name{TopLayer, BaseLayer, Bottom, Shoes}
}

// Band is a horizontal slice of an image expressed as fractions of its
// height. From is inclusive, To exclusive.
type Band struct {
	From float64
	To   float64
}

// Rows resolves the band to concrete row bounds for an image of height h.
func (b Band) Rows(h int) (int, int) {
	return int(float64(h) * b.From), int(float64(h) * b.To)
}

// Bands holds the fractional-height priors for the produced layers. They
// encode garment photography composition, not detected garment boundaries:
// the outer garment occupies the upper body, the lower garment the lower
// body, and a visible collar sits in a narrow upper band.
type Bands struct {
	Top    Band
	Collar Band
	Lower  Band
}

// DefaultBands returns the classic split: top [0, 0.45), collar
// [0.05, 0.35), bottom [0.45, 1). Top and Lower tile the image exactly;
// Collar deliberately overlaps Top so a collar pixel can be foreground in
// both layers.
func DefaultBands() Bands {
	return Bands{
		Top:    Band{From: 0, To: 0.45},
		Collar: Band{From: 0.05, To: 0.35},
		Lower:  Band{From: 0.45, To: 1},
	}
}

// Decompose splits a cleaned foreground mask into the per-layer masks.
// Every produced mask has the dimensions of the input; rows outside the
// layer's band are background. Shoes has no band and is never produced.
func Decompose(mask *image.Gray, bands Bands) map[Name]*image.Gray {
	return map[Name]*image.Gray{
		TopLayer:  bandMask(mask, bands.Top),
		BaseLayer: bandMask(mask, bands.Collar),
		Bottom:    bandMask(mask, bands.Lower),
	}
}

// bandMask copies the mask rows inside the band and leaves the rest
// background.
func bandMask(mask *image.Gray, band Band) *image.Gray {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	from, to := band.Rows(h)
	for y := from; y < to; y++ {
		for x := 0; x < w; x++ {
			out.Pix[y*out.Stride+x] = mask.GrayAt(b.Min.X+x, b.Min.Y+y).Y
		}
	}
	return out
}

// ArtifactName returns the conventional artifact filename for a template's
// layer, e.g. "startup-hoodie-topLayer.png".
func ArtifactName(templateID string, name Name) string {
	return fmt.Sprintf("%s-%s.png", templateID, name)
}
