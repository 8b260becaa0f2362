package io

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/phil-mansfield/gocluster/geom"
)

// Bond is a bond between particles I and J. TypeI and TypeJ are the two
// halves of the bond type name, e.g. "A" and "B" for "A-B".
type Bond struct {
	I, J         int
	TypeI, TypeJ string
}

// Snapshot is the particle data extracted from a simulation snapshot.
type Snapshot struct {
	Positions  []geom.Vec
	Velocities []geom.Vec
	Types      []string
	Bonds      []Bond
	Box        geom.Box
}

// Len returns the number of particles in the snapshot.
func (snap *Snapshot) Len() int { return len(snap.Positions) }

type hoomdFile struct {
	Configurations []hoomdConfiguration `xml:"configuration"`
}

type hoomdConfiguration struct {
	Box      *hoomdBox   `xml:"box"`
	Position *hoomdBlock `xml:"position"`
	Velocity *hoomdBlock `xml:"velocity"`
	Type     *hoomdBlock `xml:"type"`
	Bond     *hoomdBlock `xml:"bond"`
}

type hoomdBox struct {
	Lx float32 `xml:"lx,attr"`
	Ly float32 `xml:"ly,attr"`
	Lz float32 `xml:"lz,attr"`
	XY float32 `xml:"xy,attr"`
	XZ float32 `xml:"xz,attr"`
	YZ float32 `xml:"yz,attr"`
}

type hoomdBlock struct {
	Text string `xml:",chardata"`
}

// ReadHOOMD reads a HOOMD-blue XML snapshot. The <position> and <type>
// blocks are required. A missing <velocity> block gives zero velocities and
// a missing <bond> block gives no bonds.
func ReadHOOMD(fname string) (*Snapshot, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hf := &hoomdFile{}
	if err := xml.NewDecoder(f).Decode(hf); err != nil {
		return nil, fmt.Errorf("Could not parse file %s: %w", fname, err)
	}
	return hf.snapshot(fname)
}

func (hf *hoomdFile) snapshot(fname string) (*Snapshot, error) {
	con := &hoomdConfiguration{}
	for i := range hf.Configurations {
		merge(con, &hf.Configurations[i])
	}

	if con.Position == nil || con.Type == nil {
		return nil, fmt.Errorf(
			"Missing required <position> or <type> blocks in %s", fname,
		)
	}

	snap := &Snapshot{}
	if con.Box != nil {
		snap.Box = geom.Box{
			L:  geom.Vec{con.Box.Lx, con.Box.Ly, con.Box.Lz},
			XY: con.Box.XY, XZ: con.Box.XZ, YZ: con.Box.YZ,
		}
	}

	snap.Positions = parseVecs(con.Position.Text)
	n := len(snap.Positions)

	snap.Types = parseLines(con.Type.Text)
	if len(snap.Types) != n {
		return nil, fmt.Errorf(
			"%s has %d positions but %d types", fname, n, len(snap.Types),
		)
	}

	if con.Velocity != nil {
		snap.Velocities = parseVecs(con.Velocity.Text)
		if len(snap.Velocities) != n {
			return nil, fmt.Errorf(
				"%s has %d positions but %d velocities",
				fname, n, len(snap.Velocities),
			)
		}
	} else {
		snap.Velocities = make([]geom.Vec, n)
	}

	if con.Bond != nil {
		snap.Bonds = parseBonds(con.Bond.Text)
		for _, b := range snap.Bonds {
			if b.I < 0 || b.I >= n || b.J < 0 || b.J >= n {
				return nil, fmt.Errorf(
					"%s has a bond %d-%d outside of its %d particles",
					fname, b.I, b.J, n,
				)
			}
		}
	}

	return snap, nil
}

// merge copies the blocks set in src over those in dst, so that later
// <configuration> elements take precedence.
func merge(dst, src *hoomdConfiguration) {
	if src.Box != nil {
		dst.Box = src.Box
	}
	if src.Position != nil {
		dst.Position = src.Position
	}
	if src.Velocity != nil {
		dst.Velocity = src.Velocity
	}
	if src.Type != nil {
		dst.Type = src.Type
	}
	if src.Bond != nil {
		dst.Bond = src.Bond
	}
}

// parseVecs reads one vector per line. Lines which do not start with three
// numbers are skipped.
func parseVecs(text string) []geom.Vec {
	vs := []geom.Vec{}
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}

		v, ok := geom.Vec{}, true
		for k := 0; k < 3 && ok; k++ {
			x, err := strconv.ParseFloat(fields[k], 32)
			v[k], ok = float32(x), err == nil
		}
		if ok {
			vs = append(vs, v)
		}
	}
	return vs
}

func parseLines(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// parseBonds reads lines of the form "TI-TJ i j". Lines whose bond type
// does not contain a '-' are skipped.
func parseBonds(text string) []Bond {
	bonds := []Bond{}
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(strings.Replace(line, "-", " ", 1))
		if len(fields) < 4 {
			continue
		}

		i, err1 := strconv.Atoi(fields[2])
		j, err2 := strconv.Atoi(fields[3])
		if err1 != nil || err2 != nil {
			continue
		}
		bonds = append(bonds, Bond{I: i, J: j, TypeI: fields[0], TypeJ: fields[1]})
	}
	return bonds
}
