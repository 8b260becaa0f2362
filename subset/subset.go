/*
package subset chooses which particles of a snapshot are clustered together:
all particles of a type, or only those in one leaflet of a vesicle.
*/
package subset

import (
	"fmt"

	"github.com/phil-mansfield/gocluster/geom"
	"github.com/phil-mansfield/gocluster/io"
)

// Layer identifies a group of particles of one type.
type Layer int

const (
	All Layer = iota
	Up
	Down
)

func (l Layer) String() string {
	switch l {
	case All:
		return "all"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return fmt.Sprintf("Layer(%d)", int(l))
}

// ParseLayers converts a config Layer value into the layers it requests.
func ParseLayers(s string) ([]Layer, error) {
	switch s {
	case "All":
		return []Layer{All}, nil
	case "Up":
		return []Layer{Up}, nil
	case "Down":
		return []Layer{Down}, nil
	case "UpDown":
		return []Layer{Up, Down}, nil
	}
	return nil, fmt.Errorf("Unrecognized layer '%s'.", s)
}

// Selection is a set of particles which will be clustered together.
type Selection struct {
	Type  string
	Layer Layer
	// Positions and Indices are parallel. Indices are the particles'
	// positions in the snapshot.
	Positions []geom.Vec
	Indices   []int
}

// Len returns the number of selected particles.
func (sel *Selection) Len() int { return len(sel.Positions) }

func (sel *Selection) add(snap *io.Snapshot, i int) {
	sel.Positions = append(sel.Positions, snap.Positions[i])
	sel.Indices = append(sel.Indices, i)
}

// ByType returns one Selection per requested type, in the order given,
// holding every particle of that type.
func ByType(snap *io.Snapshot, types []string) []*Selection {
	sels := make([]*Selection, len(types))
	pos := make(map[string]int, len(types))
	for i, t := range types {
		sels[i] = &Selection{Type: t, Layer: All}
		pos[t] = i
	}

	for i, t := range snap.Types {
		if k, ok := pos[t]; ok {
			sels[k].add(snap, i)
		}
	}
	return sels
}

// Leaflets splits the particles of the requested types into the two leaflets
// of a vesicle centered on the origin. Only particles which are the head of
// a bond are selected: a bond whose first type is requested has its first
// particle as the head, otherwise a bond whose second type is requested has
// its second particle as the head. A head belongs to the Up (outer) leaflet
// if the bond vector from tail to head points away from the origin and to
// the Down (inner) leaflet otherwise.
//
// A particle with several qualifying bonds is selected once, using its first
// bond. The result holds the up selections followed by the down selections,
// each in the order of types, for every layer in layers.
func Leaflets(snap *io.Snapshot, types []string, layers []Layer) ([]*Selection, error) {
	want := map[Layer]bool{}
	for _, l := range layers {
		if l != Up && l != Down {
			return nil, fmt.Errorf("Leaflets cannot select layer '%s'.", l)
		}
		want[l] = true
	}

	pos := make(map[string]int, len(types))
	for i, t := range types {
		pos[t] = i
	}

	up := make([]*Selection, len(types))
	down := make([]*Selection, len(types))
	for i, t := range types {
		up[i] = &Selection{Type: t, Layer: Up}
		down[i] = &Selection{Type: t, Layer: Down}
	}

	seen := map[int]bool{}
	for _, b := range snap.Bonds {
		head, tail, t := b.I, b.J, b.TypeI
		if _, ok := pos[b.TypeI]; !ok {
			if _, ok := pos[b.TypeJ]; !ok {
				continue
			}
			head, tail, t = b.J, b.I, b.TypeJ
		}

		if head < 0 || head >= snap.Len() || tail < 0 || tail >= snap.Len() {
			return nil, fmt.Errorf(
				"Bond %d-%d refers to particles outside of the snapshot.",
				b.I, b.J,
			)
		}
		if seen[head] {
			continue
		}
		seen[head] = true

		if outward(&snap.Positions[head], &snap.Positions[tail]) {
			if want[Up] {
				up[pos[t]].add(snap, head)
			}
		} else if want[Down] {
			down[pos[t]].add(snap, head)
		}
	}

	sels := []*Selection{}
	if want[Up] {
		sels = append(sels, up...)
	}
	if want[Down] {
		sels = append(sels, down...)
	}
	return sels, nil
}

// outward returns true if (head - tail) . head is positive.
func outward(head, tail *geom.Vec) bool {
	var dot float32
	for k := 0; k < 3; k++ {
		dot += (head[k] - tail[k]) * head[k]
	}
	return dot > 0
}

// Select dispatches to ByType or Leaflets depending on the requested layers.
func Select(snap *io.Snapshot, types []string, layers []Layer) ([]*Selection, error) {
	for _, l := range layers {
		if l == All {
			if len(layers) != 1 {
				return nil, fmt.Errorf("Layer 'All' cannot be combined with other layers.")
			}
			return ByType(snap, types), nil
		}
	}
	return Leaflets(snap, types, layers)
}

// Molecules groups the particles of sel into rigid molecules of size
// consecutive particles. The external index of each molecule is the snapshot
// index of its first particle.
func Molecules(sel *Selection, size int) ([]geom.Vec, []int, error) {
	if size < 1 || sel.Len()%size != 0 {
		return nil, nil, fmt.Errorf(
			"%d particles of type %s cannot be split into molecules of %d.",
			sel.Len(), sel.Type, size,
		)
	}

	ids := make([]int, sel.Len()/size)
	for i := range ids {
		ids[i] = sel.Indices[i*size]
	}
	return sel.Positions, ids, nil
}
