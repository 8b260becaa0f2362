package gocluster

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/phil-mansfield/gocluster/cluster"
	"github.com/phil-mansfield/gocluster/geom"
	"github.com/phil-mansfield/gocluster/io"
)

func TestParticlesReport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "snap_type_A_neighboring.txt")
	xs := []geom.Vec{{1, 1, 1}, {8, 8, 8}, {1.5, 1, 1}, {2, 1, 1}}
	ids := []int{100, 101, 102, 103}
	opt := &Options{
		Cutoff: 0.6, Box: *geom.NewBox(10, 10, 10),
		Periodicity: geom.FullyPeriodic, Logger: zap.NewNop(),
	}

	res, err := Particles(context.Background(), xs, ids, out, opt)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Links)
	assert.True(t, res.Converged)
	assert.Equal(t, [][]int{{100, 102, 103}, {101}}, res.Clusters)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Numbers of Links 2\n"+
		"Number of clusters 2\n"+
		"Number of iterations for convergence 1\n\n"+
		"Cluster : 1\nMolecules (3):\n100\n102\n103\n"+
		"Cluster : 2\nMolecules (1):\n101\n", string(b))
}

func TestParticlesPeriodicity(t *testing.T) {
	xs := []geom.Vec{{0.05, 5, 5}, {9.95, 5, 5}}
	ids := []int{0, 1}
	opt := &Options{Cutoff: 0.2, Box: *geom.NewBox(10, 10, 10)}

	opt.Periodicity = geom.FullyPeriodic
	res, err := Particles(context.Background(), xs, ids, "", opt)
	require.NoError(t, err)
	assert.Len(t, res.Clusters, 1)

	opt.Periodicity = geom.NonPeriodic
	res, err = Particles(context.Background(), xs, ids, "", opt)
	require.NoError(t, err)
	assert.Len(t, res.Clusters, 2)
}

func TestMolecules(t *testing.T) {
	// Three trimers along x. The last one touches the first through the
	// periodic boundary.
	xs := []geom.Vec{
		{0.2, 5, 5}, {0.7, 5, 5}, {1.2, 5, 5},
		{4, 5, 5}, {4.5, 5, 5}, {5, 5, 5},
		{8.6, 5, 5}, {9.1, 5, 5}, {9.6, 5, 5},
	}
	ids := []int{3, 6, 9}
	opt := &Options{Cutoff: 0.7, Box: *geom.NewBox(10, 10, 10)}

	res, err := Molecules(context.Background(), xs, 3, ids, "", opt)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Links)
	assert.Equal(t, [][]int{{3, 9}, {6}}, res.Clusters)

	exhaustive := true
	opt.Exhaustive = &exhaustive
	res, err = Molecules(context.Background(), xs, 3, ids, "", opt)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{3, 9}, {6}}, res.Clusters)
}

func TestMismatchedIDs(t *testing.T) {
	opt := &Options{Cutoff: 1, Box: *geom.NewBox(10, 10, 10)}
	xs := []geom.Vec{{1, 1, 1}, {2, 2, 2}}

	_, err := Particles(context.Background(), xs, []int{0}, "", opt)
	assert.ErrorIs(t, err, cluster.ErrInput)

	_, err = Molecules(context.Background(), xs, 2, []int{0, 1}, "", opt)
	assert.ErrorIs(t, err, cluster.ErrInput)
}

func overflowInput() ([]geom.Vec, []int) {
	xs := []geom.Vec{{5, 5, 5}, {5.5, 5, 5}, {4.5, 5, 5}, {5, 5.5, 5}}
	return xs, []int{0, 1, 2, 3}
}

func TestCapacityFailure(t *testing.T) {
	xs, ids := overflowInput()
	out := filepath.Join(t.TempDir(), "report.txt")
	opt := &Options{Cutoff: 0.6, Box: *geom.NewBox(10, 10, 10), Capacity: 2}

	res, err := Particles(context.Background(), xs, ids, out, opt)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, cluster.ErrCapacity)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestReportFailure(t *testing.T) {
	xs, ids := overflowInput()
	out := filepath.Join(t.TempDir(), "missing", "report.txt")
	opt := &Options{Cutoff: 0.6, Box: *geom.NewBox(10, 10, 10)}

	_, err := Particles(context.Background(), xs, ids, out, opt)
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrReport)
}

func TestAbortOnOverflow(t *testing.T) {
	codes := []int{}
	exit = func(code int) { codes = append(codes, code) }
	defer func() { exit = os.Exit }()

	xs, ids := overflowInput()
	opt := &Options{
		Cutoff: 0.6, Box: *geom.NewBox(10, 10, 10),
		Capacity: 2, AbortOnOverflow: true,
	}
	_, err := Particles(context.Background(), xs, ids, "", opt)
	require.True(t, errors.Is(err, cluster.ErrCapacity))

	opt.Capacity = 0
	out := filepath.Join(t.TempDir(), "missing", "report.txt")
	_, err = Particles(context.Background(), xs, ids, out, opt)
	require.True(t, errors.Is(err, io.ErrReport))

	assert.Equal(t, []int{1, 2}, codes)
}

func TestNilOptions(t *testing.T) {
	xs := []geom.Vec{{1, 1, 1}, {2, 2, 2}}

	res, err := Particles(context.Background(), xs, []int{0, 1}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0}, {1}}, res.Clusters)

	_, err = Molecules(context.Background(), xs, 1, []int{0, 1}, "", nil)
	assert.ErrorIs(t, err, cluster.ErrInput)
}
