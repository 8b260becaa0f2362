package cluster

import (
	"fmt"
	"sync"
)

// Graph is a symmetric contact graph over the dense indices 0..N-1. No node
// may have more than Capacity() contacts.
//
// Graph is safe for concurrent calls to Link. The read methods must not be
// used while links are still being added.
type Graph struct {
	rows     [][]int
	capacity int
	links    int

	mu sync.Mutex
}

// NewGraph returns an empty graph with n nodes whose rows hold at most
// capacity contacts each.
func NewGraph(n, capacity int) (*Graph, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative node count %d", ErrInput, n)
	} else if capacity <= 0 {
		return nil, fmt.Errorf(
			"%w: contact capacity must be positive, got %d", ErrInput, capacity,
		)
	}
	return &Graph{rows: make([][]int, n), capacity: capacity}, nil
}

// Link records a contact between m and n on both rows. The capacity check
// and the insertion form one critical section, so two goroutines can never
// both claim the last slot of a row.
func (g *Graph) Link(m, n int) error {
	if m < 0 || m >= len(g.rows) || n < 0 || n >= len(g.rows) || m == n {
		return fmt.Errorf(
			"%w: cannot link %d and %d in a graph of %d nodes",
			ErrInput, m, n, len(g.rows),
		)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.rows[m]) >= g.capacity {
		return &CapacityError{Node: m, Capacity: g.capacity}
	} else if len(g.rows[n]) >= g.capacity {
		return &CapacityError{Node: n, Capacity: g.capacity}
	}

	g.rows[m] = append(g.rows[m], n)
	g.rows[n] = append(g.rows[n], m)
	g.links++

	return nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.rows) }

// Capacity returns the maximum number of contacts per node.
func (g *Graph) Capacity() int { return g.capacity }

// Links returns the number of recorded contacts.
func (g *Graph) Links() int { return g.links }

// Contacts returns the number of contacts of node i.
func (g *Graph) Contacts(i int) int { return len(g.rows[i]) }

// Neighbors returns the contacts of node i in insertion order. The returned
// slice is owned by the graph and must not be modified.
func (g *Graph) Neighbors(i int) []int { return g.rows[i] }
