/*
package stats summarizes cluster reports: it builds cluster size histograms,
finds the extreme and average cluster sizes, and extracts the largest cluster.
*/
package stats

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/phil-mansfield/gocluster/io"
)

// Bin is one histogram entry: the number of clusters with a given size.
type Bin struct {
	Size  int `yaml:"size"`
	Count int `yaml:"count"`
}

// Summary describes the cluster sizes of a single report.
type Summary struct {
	Clusters    int     `yaml:"clusters"`
	MinSize     int     `yaml:"min_size"`
	MaxSize     int     `yaml:"max_size"`
	AverageSize float64 `yaml:"average_size"`
	StdDevSize  float64 `yaml:"stddev_size"`
	// Histogram is sorted by increasing size.
	Histogram []Bin `yaml:"histogram"`
	// Largest holds the member ids of the first cluster of size MaxSize.
	Largest []int `yaml:"-"`
}

// Analyze summarizes the given clusters. An empty input gives a zero
// Summary.
func Analyze(clusters [][]int) *Summary {
	s := &Summary{Clusters: len(clusters)}
	if len(clusters) == 0 {
		return s
	}

	sizes := make([]float64, len(clusters))
	counts := map[int]int{}
	maxIdx := 0
	s.MinSize, s.MaxSize = len(clusters[0]), len(clusters[0])
	for i, c := range clusters {
		n := len(c)
		sizes[i] = float64(n)
		counts[n]++

		if n < s.MinSize {
			s.MinSize = n
		}
		if n > s.MaxSize {
			s.MaxSize = n
			maxIdx = i
		}
	}

	s.AverageSize, s.StdDevSize = stat.PopMeanStdDev(sizes, nil)

	s.Histogram = make([]Bin, 0, len(counts))
	for size, count := range counts {
		s.Histogram = append(s.Histogram, Bin{size, count})
	}
	sort.Slice(s.Histogram, func(i, j int) bool {
		return s.Histogram[i].Size < s.Histogram[j].Size
	})

	s.Largest = clusters[maxIdx]
	return s
}

// WriteHistogram writes the histogram as "size count" lines.
func (s *Summary) WriteHistogram(fname string) error {
	return writeLines(fname, func(w *bufio.Writer) {
		fmt.Fprintln(w, "Cluster size histogram (size count)")
		for _, b := range s.Histogram {
			fmt.Fprintf(w, "%d %d\n", b.Size, b.Count)
		}
	})
}

// WriteLargest writes the ids of the members of the largest cluster.
func (s *Summary) WriteLargest(fname string) error {
	return writeLines(fname, func(w *bufio.Writer) {
		fmt.Fprintf(w, "Largest cluster size: %d\n", s.MaxSize)
		fmt.Fprintln(w, "Particle IDs in the largest cluster:")
		for _, id := range s.Largest {
			fmt.Fprintf(w, "%d\n", id)
		}
	})
}

func writeLines(fname string, write func(w *bufio.Writer)) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	write(w)
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// AnalyzeReport reads the report in fname, summarizes it, and writes the
// histogram and largest cluster files. Nothing is written if the report
// contains no clusters.
func AnalyzeReport(fname, histFile, largestFile string) (*Summary, error) {
	rep, err := io.ReadReport(fname)
	if err != nil {
		return nil, err
	}

	s := Analyze(rep.Clusters)
	if s.Clusters == 0 {
		return s, nil
	}

	if err := s.WriteHistogram(histFile); err != nil {
		return nil, err
	}
	if err := s.WriteLargest(largestFile); err != nil {
		return nil, err
	}
	return s, nil
}

// FormatAverage formats an average size with six significant digits.
func FormatAverage(x float64) string {
	return strconv.FormatFloat(x, 'g', 6, 64)
}
