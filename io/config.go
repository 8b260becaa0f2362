package io

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/gocluster/geom"
)

const (
	ExampleClusterFile = `[Cluster]

#######################
# Required Parameters #
#######################

# Snapshot files to analyze. Repeat the line for every snapshot. Files ending
# in .xml are read as HOOMD-blue XML, anything else as a text table with the
# columns x y z type.
Input = path/to/snapshot.0000.xml
Input = path/to/snapshot.0001.xml

# Particle types to cluster. Every type is clustered separately. Repeat the
# line for every type.
Types = A

# Two entities are in contact if they are closer than Cutoff. Cutoff must be
# smaller than half of every periodic box length.
Cutoff = 1.0

#######################
# Optional Parameters #
#######################

# Directory which reports and index files will be written to. Default is the
# current directory.
# Output = path/to/output/dir

# Which particles of each type to use. All uses every particle. Up and Down
# use the particles of one membrane leaflet, found from the orientation of
# the bonds that the selected type takes part in. UpDown runs both leaflets.
# Default is All.
# Layer = All

# The maximum number of contacts a single particle or molecule may have.
# Dense systems need a larger value. Default is 32.
# Capacity = 32

# Axes along which the box is periodic, e.g. XY for a membrane whose normal
# is along z. Only used when clustering single particles; molecules always
# use full periodicity. Default is XYZ.
# Periodic = XYZ

# If MoleculeSize is larger than 1, consecutive selected particles are grouped
# into rigid molecules of that many particles, and two molecules are in
# contact if any of their particles are.
# MoleculeSize = 1

# First stops comparing the particles of two molecules after the first
# contact, All compares every pair. Both give the same clusters. Default is
# First for molecules and All for particles.
# ContactTest = First

# Upper limit on label propagation passes. Default is 1000.
# MaxIterations = 1000

# Number of goroutines used for the contact search. Default is the number of
# cores.
# Workers = 8

# Box lengths for text table snapshots, which do not store them.
# BoxX = 10
# BoxY = 10
# BoxZ = 10

# If SkipFailures is true, a snapshot which cannot be clustered is logged and
# skipped. Otherwise the whole run stops. Default is true.
# SkipFailures = true

# Exit immediately on a contact overflow or an unwritable report, printing
# the legacy error messages. Only useful for comparing against old
# runs.
# AbortOnOverflow = false

# Output files which are useful for profiling and debugging. Generally, there
# isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out`

	ExampleAnalyzeFile = `[Analyze]

# Directory which .hist, .largest_cluster, and plot files will be written
# to. Default is the current directory.
# Output = path/to/output/dir

# Also write a YAML version of every summary table.
# YAML = false

# Write a pyplot histogram of cluster sizes for every report. Plots are
# rendered with matplotlib once all reports have been analyzed.
# Plot = false

# Scale of the histogram's y axis. One of [ Linear | Log ].
# PlotScale = Log`
)

type ClusterConfig struct {
	// Required
	Input  []string
	Types  []string
	Cutoff float64

	// Optional
	Output           string
	Layer            string
	Capacity         int
	Periodic         string
	MoleculeSize     int
	ContactTest      string
	MaxIterations    int
	Workers          int
	BoxX, BoxY, BoxZ float64
	SkipFailures     bool
	AbortOnOverflow  bool

	ProfileFile, LogFile string
}

type ClusterWrapper struct {
	Cluster ClusterConfig
}

func DefaultClusterWrapper() *ClusterWrapper {
	con := ClusterConfig{
		Output:        ".",
		Layer:         "All",
		Capacity:      32,
		Periodic:      "XYZ",
		MoleculeSize:  1,
		MaxIterations: 1000,
		SkipFailures:  true,
	}
	return &ClusterWrapper{con}
}

func (con *ClusterConfig) ValidInput() bool {
	return len(con.Input) > 0
}

func (con *ClusterConfig) ValidTypes() bool {
	return len(con.Types) > 0
}

func (con *ClusterConfig) ValidCutoff() bool {
	return con.Cutoff > 0
}

func (con *ClusterConfig) ValidLayer() bool {
	switch con.Layer {
	case "All", "Up", "Down", "UpDown":
		return true
	}
	return false
}

func (con *ClusterConfig) ValidCapacity() bool {
	return con.Capacity > 0
}

func (con *ClusterConfig) ValidMoleculeSize() bool {
	return con.MoleculeSize > 0
}

func (con *ClusterConfig) ValidContactTest() bool {
	switch con.ContactTest {
	case "", "First", "All":
		return true
	}
	return false
}

func (con *ClusterConfig) ValidMaxIterations() bool {
	return con.MaxIterations > 0
}

func (con *ClusterConfig) ValidBox() bool {
	return con.BoxX >= 0 && con.BoxY >= 0 && con.BoxZ >= 0
}

// Periodicity returns the parsed Periodic value.
func (con *ClusterConfig) Periodicity() (geom.Periodicity, error) {
	return geom.ParsePeriodicity(con.Periodic)
}

// TableBox returns the box used for text table snapshots.
func (con *ClusterConfig) TableBox() geom.Box {
	return *geom.NewBox(float32(con.BoxX), float32(con.BoxY), float32(con.BoxZ))
}

// Check returns an error describing the first invalid value of con.
func (con *ClusterConfig) Check() error {
	if !con.ValidInput() {
		return fmt.Errorf("Invalid/non-existent 'Input' value.")
	} else if !con.ValidTypes() {
		return fmt.Errorf("Invalid/non-existent 'Types' value.")
	} else if !con.ValidCutoff() {
		return fmt.Errorf("Invalid/non-existent 'Cutoff' value.")
	} else if !con.ValidLayer() {
		return fmt.Errorf(
			"'Layer' must be one of [ All | Up | Down | UpDown ], but is '%s'.",
			con.Layer,
		)
	} else if !con.ValidCapacity() {
		return fmt.Errorf("Invalid 'Capacity' value, %d.", con.Capacity)
	} else if !con.ValidMoleculeSize() {
		return fmt.Errorf("Invalid 'MoleculeSize' value, %d.", con.MoleculeSize)
	} else if !con.ValidContactTest() {
		return fmt.Errorf(
			"'ContactTest' must be one of [ First | All ], but is '%s'.",
			con.ContactTest,
		)
	} else if !con.ValidMaxIterations() {
		return fmt.Errorf(
			"Invalid 'MaxIterations' value, %d.", con.MaxIterations,
		)
	} else if !con.ValidBox() {
		return fmt.Errorf("Box lengths may not be negative.")
	}

	if _, err := con.Periodicity(); err != nil {
		return err
	}
	return nil
}

// IsHOOMD returns true if the snapshot at fname should be read as HOOMD-blue
// XML.
func IsHOOMD(fname string) bool {
	return strings.ToLower(filepath.Ext(fname)) == ".xml"
}

// ReadClusterConfig reads and checks a [Cluster] config file.
func ReadClusterConfig(fname string) (*ClusterConfig, error) {
	wrap := DefaultClusterWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.Cluster.Check(); err != nil {
		return nil, err
	}
	return &wrap.Cluster, nil
}

type AnalyzeConfig struct {
	Output    string
	YAML      bool
	Plot      bool
	PlotScale string
}

type AnalyzeWrapper struct {
	Analyze AnalyzeConfig
}

func DefaultAnalyzeWrapper() *AnalyzeWrapper {
	con := AnalyzeConfig{Output: ".", PlotScale: "Log"}
	return &AnalyzeWrapper{con}
}

func (con *AnalyzeConfig) ValidPlotScale() bool {
	return con.PlotScale == "Linear" || con.PlotScale == "Log"
}

// ReadAnalyzeConfig reads and checks an [Analyze] config file.
func ReadAnalyzeConfig(fname string) (*AnalyzeConfig, error) {
	wrap := DefaultAnalyzeWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if !wrap.Analyze.ValidPlotScale() {
		return nil, fmt.Errorf(
			"'PlotScale' must be one of [ Linear | Log ], but is '%s'.",
			wrap.Analyze.PlotScale,
		)
	}
	return &wrap.Analyze, nil
}
