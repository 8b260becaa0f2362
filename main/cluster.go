package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phil-mansfield/gocluster"
	"github.com/phil-mansfield/gocluster/io"
	"github.com/phil-mansfield/gocluster/subset"
)

func init() {
	rootCmd.AddCommand(clusterCmd)
}

var clusterCmd = &cobra.Command{
	Use:   "cluster <config>",
	Short: "Cluster every snapshot listed in a [Cluster] config file",
	Long: `Cluster every snapshot listed in a [Cluster] config file.

One report is written per snapshot, particle type and layer. The reports of
each layer and type are listed in an index file in the output directory,
which is the input of 'gocluster analyze'.`,
	Args: cobra.ExactArgs(1),
	RunE: runCluster,
}

func runCluster(cmd *cobra.Command, args []string) error {
	con, err := io.ReadClusterConfig(args[0])
	if err != nil {
		return withCode(ExitConfigError, err)
	}
	layers, err := subset.ParseLayers(con.Layer)
	if err != nil {
		return withCode(ExitConfigError, err)
	}
	p, err := con.Periodicity()
	if err != nil {
		return withCode(ExitConfigError, err)
	}

	fg, err := openFiles(con.ProfileFile, con.LogFile)
	if err != nil {
		return withCode(ExitError, err)
	}
	defer fg.Close()
	log := fg.log

	opt := &gocluster.Options{
		Cutoff:          float32(con.Cutoff),
		Periodicity:     p,
		Capacity:        con.Capacity,
		MaxIterations:   con.MaxIterations,
		Workers:         con.Workers,
		AbortOnOverflow: con.AbortOnOverflow,
		Logger:          log,
	}
	switch con.ContactTest {
	case "First":
		exhaustive := false
		opt.Exhaustive = &exhaustive
	case "All":
		exhaustive := true
		opt.Exhaustive = &exhaustive
	}

	idx := newIndexSet(con.Output)
	defer idx.Close()

	for _, in := range con.Input {
		if _, err := os.Stat(in); err != nil {
			log.Warn("skipping missing snapshot", zap.String("snapshot", in))
			continue
		}

		err := clusterSnapshot(cmd.Context(), in, con, layers, opt, idx, log)
		if err == nil {
			continue
		}
		if con.SkipFailures && !errors.Is(err, errIndex) {
			log.Warn("skipping snapshot", zap.String("snapshot", in), zap.Error(err))
			continue
		}
		return withCode(ExitDataError, err)
	}

	return withCode(ExitError, idx.Close())
}

// clusterSnapshot clusters every selection of one snapshot and records the
// reports in idx. With SkipFailures, a selection which cannot be clustered
// is logged and the remaining selections are still clustered.
func clusterSnapshot(
	ctx context.Context, in string, con *io.ClusterConfig,
	layers []subset.Layer, opt *gocluster.Options, idx *indexSet,
	log *zap.Logger,
) error {
	var (
		snap *io.Snapshot
		err  error
	)
	if io.IsHOOMD(in) {
		snap, err = io.ReadHOOMD(in)
	} else {
		snap, err = io.ReadTable(in, con.TableBox())
	}
	if err != nil {
		return err
	}

	sels, err := subset.Select(snap, con.Types, layers)
	if err != nil {
		return err
	}

	opt.Box = snap.Box
	for _, sel := range sels {
		out := filepath.Join(con.Output, reportName(in, sel))

		if err := clusterSelection(ctx, sel, con.MoleculeSize, out, opt); err != nil {
			if !con.SkipFailures {
				return err
			}
			log.Warn("skipping selection",
				zap.String("snapshot", in),
				zap.String("type", sel.Type),
				zap.Stringer("layer", sel.Layer),
				zap.Error(err),
			)
			continue
		}

		err := idx.Append(sel.Layer.String(), sel.Type, io.IndexEntry{
			Report: out, Snapshot: in, Type: sel.Type, Layer: sel.Layer.String(),
		})
		if err != nil {
			return fmt.Errorf("%w: %w", errIndex, err)
		}
	}
	return nil
}

// clusterSelection clusters the particles of sel, grouped into molecules if
// size is larger than 1, and writes the report to out.
func clusterSelection(
	ctx context.Context, sel *subset.Selection, size int, out string,
	opt *gocluster.Options,
) error {
	if size <= 1 {
		_, err := gocluster.Particles(ctx, sel.Positions, sel.Indices, out, opt)
		return err
	}

	xs, ids, err := subset.Molecules(sel, size)
	if err != nil {
		return err
	}
	_, err = gocluster.Molecules(ctx, xs, size, ids, out, opt)
	return err
}

// reportName returns the file name of the report for one selection of the
// snapshot in.
func reportName(in string, sel *subset.Selection) string {
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	if sel.Layer == subset.All {
		return fmt.Sprintf("%s_type_%s_neighboring.txt", base, sel.Type)
	}
	return fmt.Sprintf("%s_%s_type_%s_neighboring.txt", base, sel.Layer, sel.Type)
}

var errIndex = errors.New("index file failure")

// indexSet lazily creates one index file per layer and type.
type indexSet struct {
	dir     string
	writers map[string]*io.IndexWriter
}

func newIndexSet(dir string) *indexSet {
	return &indexSet{dir: dir, writers: map[string]*io.IndexWriter{}}
}

func (is *indexSet) Append(layer, ptype string, e io.IndexEntry) error {
	name := filepath.Join(is.dir, io.IndexName(layer, ptype))
	w, ok := is.writers[name]
	if !ok {
		var err error
		if w, err = io.CreateIndex(name); err != nil {
			return err
		}
		is.writers[name] = w
	}
	return w.Append(e)
}

// Close closes every index file and returns the first error.
func (is *indexSet) Close() error {
	var first error
	for name, w := range is.writers {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
		delete(is.writers, name)
	}
	return first
}
