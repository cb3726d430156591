package layers

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chaos-io/garment2layers/garment"
)

func TestSignificantRejectsEmptyForEveryLayer(t *testing.T) {
	empty := image.NewGray(image.Rect(0, 0, 50, 50))
	for _, name := range Names() {
		assert.False(t, Significant(name, empty, DefaultBaseLayerMinDensity), "layer %s", name)
	}
}

func TestSignificantBaseLayerDensity(t *testing.T) {
	// 100x100 mask: the 1% rule needs at least 100 foreground pixels.
	sparse := image.NewGray(image.Rect(0, 0, 100, 100))
	for i := 0; i < 99; i++ {
		sparse.Pix[i] = garment.Foreground
	}
	assert.False(t, Significant(BaseLayer, sparse, DefaultBaseLayerMinDensity))

	sparse.Pix[99] = garment.Foreground
	assert.True(t, Significant(BaseLayer, sparse, DefaultBaseLayerMinDensity))
}

func TestSignificantDensityRuleOnlyAppliesToBaseLayer(t *testing.T) {
	sparse := image.NewGray(image.Rect(0, 0, 100, 100))
	sparse.Pix[0] = garment.Foreground
	assert.True(t, Significant(TopLayer, sparse, DefaultBaseLayerMinDensity))
	assert.True(t, Significant(Bottom, sparse, DefaultBaseLayerMinDensity))
	assert.False(t, Significant(BaseLayer, sparse, DefaultBaseLayerMinDensity))
}
