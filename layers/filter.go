package layers

import (
	"image"

	"github.com/chaos-io/garment2layers/garment"
)

// DefaultBaseLayerMinDensity is the foreground fraction below which a
// baseLayer mask is considered noise rather than a visible inner garment.
const DefaultBaseLayerMinDensity = 0.01

// Significant decides whether a decomposed layer mask should be emitted.
// A geometrically empty mask is never emitted. The baseLayer additionally
// needs at least minBaseDensity of the total pixel count as foreground:
// below that there is no visibly distinct inner garment, and a near-empty
// mask would mislead the compositor into offering a recolorable layer.
// Rejection is a normal outcome, not an error.
func Significant(name Name, mask *image.Gray, minBaseDensity float64) bool {
	if garment.Empty(mask) {
		return false
	}
	if name == BaseLayer {
		return garment.Coverage(mask) >= minBaseDensity
	}
	return true
}
