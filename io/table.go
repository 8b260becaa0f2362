package io

import (
	"fmt"
	"strconv"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/gocluster/geom"
)

// Column layout of plain text snapshots.
const (
	xCol, yCol, zCol, typeCol = 0, 1, 2, 3
)

// ReadTable reads a whitespace separated text snapshot with the columns
// x, y, z, and an integer type code. Text tables carry no box or bond
// information, so the box is supplied by the caller.
func ReadTable(fname string, box geom.Box) (*Snapshot, error) {
	cols, err := table.ReadTable(fname, []int{xCol, yCol, zCol, typeCol}, nil)
	if err != nil {
		return nil, err
	}

	xs, ys, zs, ts := cols[0], cols[1], cols[2], cols[3]
	if len(xs) != len(ys) || len(xs) != len(zs) || len(xs) != len(ts) {
		return nil, fmt.Errorf("Columns of %s have different lengths.", fname)
	}

	snap := &Snapshot{
		Positions:  make([]geom.Vec, len(xs)),
		Velocities: make([]geom.Vec, len(xs)),
		Types:      make([]string, len(xs)),
		Box:        box,
	}
	for i := range xs {
		snap.Positions[i] = geom.Vec{float32(xs[i]), float32(ys[i]), float32(zs[i])}
		snap.Types[i] = strconv.Itoa(int(ts[i]))
	}

	return snap, nil
}
