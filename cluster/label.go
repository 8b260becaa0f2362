package cluster

// DefaultMaxIterations bounds the number of label propagation passes.
const DefaultMaxIterations = 1000

const unlabeled = -1

// Labeling is the result of label propagation over a Graph.
type Labeling struct {
	// Labels maps each node to its cluster label. Nodes which are connected
	// in the graph share a label once propagation has converged. Label
	// values are otherwise arbitrary.
	Labels []int
	// Iterations is the number of propagation passes performed.
	Iterations int
	// Converged is false if the iteration cap was reached first.
	Converged bool
}

// Cluster is a set of nodes which share a label.
type Cluster struct {
	// ID is the 1-based position of the cluster in encounter order.
	ID int
	// Members lists the member nodes in increasing order.
	Members []int
}

// Resolve assigns a label to every node of g by label propagation. At most
// maxIter passes are run; non-positive values use DefaultMaxIterations.
// Hitting the cap is not an error: the labels at that point are returned with
// Converged set to false.
func Resolve(g *Graph, maxIter int) *Labeling {
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	labels := make([]int, g.Len())
	for i := range labels {
		labels[i] = unlabeled
	}

	next := 0
	for i, row := range g.rows {
		low := minLabel(labels, row)
		if low == unlabeled {
			labels[i] = next
			next++
			continue
		}
		labels[i] = low
		broadcast(labels, row, low)
	}

	l := &Labeling{Labels: labels, Iterations: 1}
	for l.Iterations < maxIter {
		propagate(g, labels)
		if consistent(g, labels) {
			l.Converged = true
			break
		}
		l.Iterations++
	}

	if !l.Converged {
		l.Converged = consistent(g, labels)
	}

	return l
}

// minLabel returns the smallest label found among the given nodes, ignoring
// unlabeled ones.
func minLabel(labels, nodes []int) int {
	low := unlabeled
	for _, j := range nodes {
		if lab := labels[j]; lab != unlabeled && (low == unlabeled || lab < low) {
			low = lab
		}
	}
	return low
}

func broadcast(labels, nodes []int, lab int) {
	for _, j := range nodes {
		labels[j] = lab
	}
}

// propagate performs one pass: each node with contacts takes the smallest
// label among its neighbors and pushes it back onto all of them.
func propagate(g *Graph, labels []int) {
	for i, row := range g.rows {
		if len(row) == 0 {
			continue
		}
		if low := minLabel(labels, row); low != unlabeled {
			labels[i] = low
			broadcast(labels, row, low)
		}
	}
}

// consistent returns false as soon as it finds a node whose label differs
// from one of its neighbors.
func consistent(g *Graph, labels []int) bool {
	for i, row := range g.rows {
		for _, j := range row {
			if labels[i] != labels[j] {
				return false
			}
		}
	}
	return true
}

// Count returns the number of distinct labels.
func (l *Labeling) Count() int {
	seen := make(map[int]struct{}, len(l.Labels))
	for _, lab := range l.Labels {
		seen[lab] = struct{}{}
	}
	return len(seen)
}

// Clusters groups nodes by label. Clusters are ordered by the first node
// carrying each label, so the first cluster always contains node 0.
func (l *Labeling) Clusters() []Cluster {
	pos := make(map[int]int)
	out := []Cluster{}

	for i, lab := range l.Labels {
		k, ok := pos[lab]
		if !ok {
			k = len(out)
			pos[lab] = k
			out = append(out, Cluster{ID: k + 1})
		}
		out[k].Members = append(out[k].Members, i)
	}

	return out
}
