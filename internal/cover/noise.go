package cover

import (
	perlin "github.com/aquilax/go-perlin"

	"github.com/elektrokombinacija/swipedeck/internal/easing"
)

// Noise is a smooth 1D field sampled in [0,1].
type Noise struct {
	p *perlin.Perlin
}

// NewNoise creates a field from seed. Two fields with the same seed agree.
func NewNoise(seed int64) *Noise {
	return &Noise{p: perlin.NewPerlin(2, 2, 3, seed)}
}

// At samples the field at x.
func (n *Noise) At(x float64) float64 {
	return easing.Clamp01((n.p.Noise1D(x) + 1) / 2)
}
