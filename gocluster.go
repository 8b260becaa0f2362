/*
package gocluster finds clusters of contacting particles or rigid molecules
in a periodic simulation box and writes cluster reports.

Particles and Molecules are the two entry points. Both build a contact graph
in parallel, resolve its connected components by label propagation, and
write the resulting report.
*/
package gocluster

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/phil-mansfield/gocluster/cluster"
	"github.com/phil-mansfield/gocluster/geom"
	"github.com/phil-mansfield/gocluster/io"
)

// Options configures a clustering call.
type Options struct {
	// Cutoff is the contact distance.
	Cutoff float32
	// Box is the simulation box used for periodic wrapping.
	Box geom.Box
	// Periodicity selects the wrapped axes for Particles. Molecules always
	// wraps along every axis.
	Periodicity geom.Periodicity
	// Capacity is the maximum number of contacts per entity. Non-positive
	// values use cluster.DefaultCapacity.
	Capacity int
	// MaxIterations bounds label propagation. Non-positive values use
	// cluster.DefaultMaxIterations.
	MaxIterations int
	// Workers is the number of goroutines used for the contact search.
	Workers int
	// Exhaustive overrides the default contact test: Molecules stops at the
	// first contacting particle pair and Particles compares every pair.
	Exhaustive *bool
	// AbortOnOverflow terminates the process on a contact overflow or an
	// unwritable report instead of returning an error.
	AbortOnOverflow bool
	// Logger receives progress messages. nil discards them.
	Logger *zap.Logger
}

// Result describes the clusters found by one call.
type Result struct {
	Links      int
	Iterations int
	Converged  bool
	// Clusters holds the external indices of each cluster's members.
	Clusters [][]int
}

// Report converts the result into the report written to disk.
func (r *Result) Report() *io.Report {
	return &io.Report{
		Links: r.Links, Iterations: r.Iterations, Clusters: r.Clusters,
	}
}

// exit is swapped out by tests of AbortOnOverflow.
var exit = os.Exit

// Particles clusters single particles. xs[i] is the position of particle i
// and ids[i] is the index reported for it. The report is written to out
// unless out is empty. A nil opt is treated as zero Options.
func Particles(
	ctx context.Context, xs []geom.Vec, ids []int, out string, opt *Options,
) (*Result, error) {
	if opt == nil {
		opt = &Options{}
	}
	return run(ctx, xs, 1, ids, out, opt, opt.Periodicity, opt.exhaustive(true))
}

// Molecules clusters rigid molecules of size particles each. The positions
// of molecule i are xs[i*size : (i+1)*size] and ids[i] is the index
// reported for it. Two molecules are in contact if any of their particles
// are. The report is written to out unless out is empty. A nil opt is
// treated as zero Options.
func Molecules(
	ctx context.Context, xs []geom.Vec, size int, ids []int, out string,
	opt *Options,
) (*Result, error) {
	if opt == nil {
		opt = &Options{}
	}
	return run(ctx, xs, size, ids, out, opt, geom.FullyPeriodic, opt.exhaustive(false))
}

func (opt *Options) exhaustive(def bool) bool {
	if opt.Exhaustive == nil {
		return def
	}
	return *opt.Exhaustive
}

func (opt *Options) logger() *zap.Logger {
	if opt.Logger == nil {
		return zap.NewNop()
	}
	return opt.Logger
}

func run(
	ctx context.Context, xs []geom.Vec, size int, ids []int, out string,
	opt *Options, p geom.Periodicity, exhaustive bool,
) (*Result, error) {
	log := opt.logger()

	if size < 1 || len(xs)%size != 0 || len(xs)/size != len(ids) {
		return nil, fmt.Errorf(
			"%w: %d positions in entities of %d particles do not match %d ids",
			cluster.ErrInput, len(xs), size, len(ids),
		)
	}

	g, err := cluster.Build(ctx, xs, size, opt.Cutoff, &opt.Box, p,
		&cluster.BuildConfig{
			Capacity: opt.Capacity, Workers: opt.Workers, Exhaustive: exhaustive,
		})
	if err != nil {
		if opt.AbortOnOverflow && errors.Is(err, cluster.ErrCapacity) {
			fmt.Fprintln(os.Stderr, "Too many contacts!")
			exit(1)
		}
		return nil, err
	}

	lab := cluster.Resolve(g, opt.MaxIterations)
	if !lab.Converged {
		log.Debug("label propagation stopped at the iteration cap",
			zap.Int("iterations", lab.Iterations), zap.String("output", out))
	}

	res := &Result{
		Links: g.Links(), Iterations: lab.Iterations, Converged: lab.Converged,
	}
	for _, c := range lab.Clusters() {
		members := make([]int, len(c.Members))
		for i, m := range c.Members {
			members[i] = ids[m]
		}
		res.Clusters = append(res.Clusters, members)
	}

	if out != "" {
		if err := io.WriteReport(out, res.Report()); err != nil {
			if opt.AbortOnOverflow {
				fmt.Fprintf(os.Stderr, "ERROR: enable to create file %s\n", out)
				exit(2)
			}
			return nil, err
		}
	}

	log.Info("clustered",
		zap.String("output", out),
		zap.Int("entities", len(ids)),
		zap.Int("links", res.Links),
		zap.Int("clusters", len(res.Clusters)),
		zap.Int("iterations", res.Iterations),
	)
	return res, nil
}
