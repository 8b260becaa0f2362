/*
package geom contains the geometric primitives used to measure separations
between particles inside a periodic simulation box.
*/
package geom

import (
	"fmt"
	"math"
	"strings"
)

// Vec is a three dimensional vector.
type Vec [3]float32

// Periodicity holds one wrap multiplier per axis: 1 if the box is periodic
// along that axis and 0 if it is open.
type Periodicity [3]float32

var (
	// FullyPeriodic wraps along every axis.
	FullyPeriodic = Periodicity{1, 1, 1}
	// NonPeriodic never wraps.
	NonPeriodic = Periodicity{0, 0, 0}
)

// NewPeriodicity returns the Periodicity corresponding to the given axis flags.
func NewPeriodicity(x, y, z bool) Periodicity {
	p := Periodicity{}
	for k, on := range [3]bool{x, y, z} {
		if on {
			p[k] = 1
		}
	}
	return p
}

// ParsePeriodicity reads a string of axis names, such as "XYZ" or "xy", and
// returns the matching Periodicity. "" and "None" turn wrapping off.
func ParsePeriodicity(s string) (Periodicity, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == "NONE" {
		return NonPeriodic, nil
	}

	p := Periodicity{}
	for _, c := range s {
		switch c {
		case 'X':
			p[0] = 1
		case 'Y':
			p[1] = 1
		case 'Z':
			p[2] = 1
		default:
			return p, fmt.Errorf(
				"Periodicity '%s' may only contain the axes X, Y, and Z.", s,
			)
		}
	}
	return p, nil
}

// Axis returns true if the box wraps along axis k.
func (p *Periodicity) Axis(k int) bool { return p[k] != 0 }

// String returns the axis names of the wrapped axes, or "None".
func (p Periodicity) String() string {
	s := ""
	for k, name := range []string{"X", "Y", "Z"} {
		if p[k] != 0 {
			s += name
		}
	}
	if s == "" {
		return "None"
	}
	return s
}

// rint rounds to the nearest integer with ties going to the even neighbor,
// which is what C's rint does in the default rounding mode.
func rint(x float32) float32 {
	return float32(math.RoundToEven(float64(x)))
}
