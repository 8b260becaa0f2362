package geom

import (
	"fmt"
)

// Box is a simulation box. The tilt factors of a triclinic box are carried
// along so that snapshots round trip, but separations are computed using the
// orthogonal lengths only.
type Box struct {
	L          Vec
	XY, XZ, YZ float32
}

// NewBox returns an orthogonal box with the given side lengths.
func NewBox(lx, ly, lz float32) *Box {
	return &Box{L: Vec{lx, ly, lz}}
}

// Check returns an error if the box has a non-positive length along one of
// the axes that p wraps.
func (b *Box) Check(p *Periodicity) error {
	for k := 0; k < 3; k++ {
		if p.Axis(k) && !(b.L[k] > 0) {
			return fmt.Errorf(
				"Box length along axis %d must be positive for a periodic "+
					"axis, but is %g.", k, b.L[k],
			)
		}
	}
	return nil
}

// SepAt writes the minimum image separation v1 - v2 into out and returns
// out. Each wrapped axis has the nearest whole box translation removed.
func (b *Box) SepAt(v1, v2 *Vec, p *Periodicity, out *Vec) *Vec {
	for k := 0; k < 3; k++ {
		d := v1[k] - v2[k]
		if p[k] != 0 {
			d -= p[k] * b.L[k] * rint(d/b.L[k])
		}
		out[k] = d
	}
	return out
}

// Dist2 returns the squared minimum image distance between v1 and v2.
func (b *Box) Dist2(v1, v2 *Vec, p *Periodicity) float32 {
	var sum float32
	for k := 0; k < 3; k++ {
		d := v1[k] - v2[k]
		if p[k] != 0 {
			d -= p[k] * b.L[k] * rint(d/b.L[k])
		}
		sum += d * d
	}
	return sum
}
