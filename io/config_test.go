package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/gocluster/geom"
)

func TestReadClusterConfig(t *testing.T) {
	text := `[Cluster]
Input = a.xml
Input = b.xml
Types = A
Types = B
Cutoff = 1.5
Layer = UpDown
Periodic = XY
`
	con, err := ReadClusterConfig(writeTemp(t, "cluster.config", text))
	require.NoError(t, err)

	assert.Equal(t, []string{"a.xml", "b.xml"}, con.Input)
	assert.Equal(t, []string{"A", "B"}, con.Types)
	assert.Equal(t, 1.5, con.Cutoff)
	assert.Equal(t, "UpDown", con.Layer)
	assert.Equal(t, 32, con.Capacity)
	assert.Equal(t, 1000, con.MaxIterations)
	assert.True(t, con.SkipFailures)

	p, err := con.Periodicity()
	require.NoError(t, err)
	assert.Equal(t, geom.NewPeriodicity(true, true, false), p)
}

func TestClusterConfigCheck(t *testing.T) {
	valid := func() *ClusterConfig {
		con := DefaultClusterWrapper().Cluster
		con.Input = []string{"a.xml"}
		con.Types = []string{"A"}
		con.Cutoff = 1
		return &con
	}

	require.NoError(t, valid().Check())

	table := []func(*ClusterConfig){
		func(con *ClusterConfig) { con.Input = nil },
		func(con *ClusterConfig) { con.Types = nil },
		func(con *ClusterConfig) { con.Cutoff = 0 },
		func(con *ClusterConfig) { con.Layer = "Middle" },
		func(con *ClusterConfig) { con.Capacity = 0 },
		func(con *ClusterConfig) { con.MoleculeSize = 0 },
		func(con *ClusterConfig) { con.ContactTest = "Some" },
		func(con *ClusterConfig) { con.MaxIterations = -1 },
		func(con *ClusterConfig) { con.BoxX = -1 },
		func(con *ClusterConfig) { con.Periodic = "Q" },
	}

	for i, modify := range table {
		con := valid()
		modify(con)
		assert.Error(t, con.Check(), "case %d", i)
	}
}

func TestExampleClusterFile(t *testing.T) {
	wrap := DefaultClusterWrapper()
	fname := writeTemp(t, "example.config", ExampleClusterFile)
	con, err := ReadClusterConfig(fname)
	require.NoError(t, err)
	assert.Equal(t, wrap.Cluster.Capacity, con.Capacity)
	assert.Len(t, con.Input, 2)
}

func TestReadAnalyzeConfig(t *testing.T) {
	con, err := ReadAnalyzeConfig(writeTemp(t, "a.config", ExampleAnalyzeFile))
	require.NoError(t, err)
	assert.Equal(t, "Log", con.PlotScale)
	assert.False(t, con.Plot)

	_, err = ReadAnalyzeConfig(writeTemp(t, "b.config", "[Analyze]\nPlotScale = Cubic\n"))
	assert.Error(t, err)
}

func TestIsHOOMD(t *testing.T) {
	assert.True(t, IsHOOMD("a/b/snap.XML"))
	assert.False(t, IsHOOMD("snap.txt"))
}
