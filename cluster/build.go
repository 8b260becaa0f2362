package cluster

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/phil-mansfield/gocluster/geom"
)

// DefaultCapacity is the default maximum number of contacts per entity.
const DefaultCapacity = 32

// BuildConfig controls how Build searches for contacts.
type BuildConfig struct {
	// Capacity is the maximum number of contacts of a single entity.
	// Non-positive values use DefaultCapacity.
	Capacity int
	// Workers is the number of goroutines used for the pair search.
	// Non-positive values use runtime.NumCPU().
	Workers int
	// Exhaustive makes the search evaluate every sub-particle pair of two
	// entities even after a contact between them has been found. The graph
	// is the same either way.
	Exhaustive bool
}

func (cfg *BuildConfig) capacity() int {
	if cfg == nil || cfg.Capacity <= 0 {
		return DefaultCapacity
	}
	return cfg.Capacity
}

func (cfg *BuildConfig) workers(n int) int {
	w := runtime.NumCPU()
	if cfg != nil && cfg.Workers > 0 {
		w = cfg.Workers
	}
	if w > n {
		w = n
	}
	if w < 1 {
		w = 1
	}
	return w
}

// pairTest decides whether two entities are in contact.
type pairTest struct {
	box        *geom.Box
	p          geom.Periodicity
	cut2       float32
	exhaustive bool
}

func (t *pairTest) contact(a, b []geom.Vec) bool {
	found := false
	for i := range a {
		for j := range b {
			if t.box.Dist2(&a[i], &b[j], &t.p) < t.cut2 {
				if !t.exhaustive {
					return true
				}
				found = true
			}
		}
	}
	return found
}

// Build finds every pair of entities closer than cutoff and returns the
// resulting contact graph. pts holds size consecutive positions per entity,
// so there are len(pts)/size entities. Separations use the minimum image
// convention along the axes wrapped by p, which is only meaningful if cutoff
// is below half of the corresponding box lengths.
//
// Rows are handed out to workers one at a time since the work per row
// shrinks as the row index grows. If any row overflows the contact capacity,
// Build stops the remaining workers and returns a *CapacityError.
func Build(
	ctx context.Context, pts []geom.Vec, size int, cutoff float32,
	box *geom.Box, p geom.Periodicity, cfg *BuildConfig,
) (*Graph, error) {
	if size < 1 {
		return nil, fmt.Errorf(
			"%w: entities must contain at least one particle, got %d",
			ErrInput, size,
		)
	} else if len(pts)%size != 0 {
		return nil, fmt.Errorf(
			"%w: %d positions do not split into entities of %d particles",
			ErrInput, len(pts), size,
		)
	} else if !(cutoff >= 0) {
		return nil, fmt.Errorf("%w: invalid cutoff %g", ErrInput, cutoff)
	} else if box == nil {
		return nil, fmt.Errorf("%w: missing box", ErrInput)
	} else if err := box.Check(&p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInput, err)
	}

	n := len(pts) / size
	g, err := NewGraph(n, cfg.capacity())
	if err != nil {
		return nil, err
	}

	test := &pairTest{
		box: box, p: p, cut2: cutoff * cutoff,
		exhaustive: cfg != nil && cfg.Exhaustive,
	}

	var next atomic.Int64
	eg, ctx := errgroup.WithContext(ctx)
	for w := cfg.workers(n); w > 0; w-- {
		eg.Go(func() error {
			for {
				if err := ctx.Err(); err != nil {
					return err
				}

				m := int(next.Add(1) - 1)
				if m >= n {
					return nil
				}

				pm := pts[m*size : (m+1)*size]
				for k := m + 1; k < n; k++ {
					if !test.contact(pm, pts[k*size:(k+1)*size]) {
						continue
					}
					if err := g.Link(m, k); err != nil {
						return err
					}
				}
			}
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return g, nil
}
