package io

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrReport matches any *ReportError.
var ErrReport = errors.New("io: cluster report failure")

// ReportError is returned when a cluster report cannot be written.
type ReportError struct {
	Path string
	Err  error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("io: cannot write cluster report %s: %v", e.Path, e.Err)
}

func (e *ReportError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrReport) identify report failures.
func (e *ReportError) Is(target error) bool { return target == ErrReport }

// Report is the content of a cluster report file.
type Report struct {
	Links      int
	Iterations int
	// Clusters holds the external indices of the members of each cluster.
	Clusters [][]int
}

const moleculesMarker = "Molecules ("

// WriteTo writes the report in the text format read by the cluster analysis
// tools. Changing this format breaks them.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	cw := &countWriter{w: bw}

	fmt.Fprintf(cw, "Numbers of Links %d\n", r.Links)
	fmt.Fprintf(cw, "Number of clusters %d\n", len(r.Clusters))
	fmt.Fprintf(cw, "Number of iterations for convergence %d\n\n", r.Iterations)
	for i, c := range r.Clusters {
		fmt.Fprintf(cw, "Cluster : %d\n", i+1)
		fmt.Fprintf(cw, "%s%d):\n", moleculesMarker, len(c))
		for _, id := range c {
			fmt.Fprintf(cw, "%d\n", id)
		}
	}

	if cw.err != nil {
		return cw.n, cw.err
	}
	return cw.n, bw.Flush()
}

type countWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countWriter) Write(p []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	cw.err = err
	return n, err
}

// WriteReport creates or truncates fname and writes r to it. Any failure is
// returned as a *ReportError.
func WriteReport(fname string, r *Report) error {
	f, err := os.Create(fname)
	if err != nil {
		return &ReportError{Path: fname, Err: err}
	}

	if _, err := r.WriteTo(f); err != nil {
		f.Close()
		return &ReportError{Path: fname, Err: err}
	}
	if err := f.Close(); err != nil {
		return &ReportError{Path: fname, Err: err}
	}
	return nil
}

// ParseReport reads a cluster report. Clusters are found by scanning for
// "Molecules (<count>):" lines and reading the following <count> lines as
// member ids. Malformed counts are skipped, unparsable ids are dropped, and
// a truncated final cluster keeps the ids read before the end of input.
func ParseReport(r io.Reader) (*Report, error) {
	rep := &Report{Clusters: [][]int{}}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<24)

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "Numbers of Links "):
			rep.Links, _ = leadingInt(line[len("Numbers of Links "):])
			continue
		case strings.HasPrefix(line, "Number of iterations for convergence "):
			rep.Iterations, _ = leadingInt(
				line[len("Number of iterations for convergence "):],
			)
			continue
		}

		pos := strings.Index(line, moleculesMarker)
		if pos < 0 {
			continue
		}
		rest := line[pos+len(moleculesMarker):]
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			continue
		}
		count, ok := leadingInt(rest[:end])
		if !ok {
			continue
		}

		ids := make([]int, 0, max(count, 0))
		for i := 0; i < count; i++ {
			if !scanner.Scan() {
				break
			}
			if id, ok := leadingInt(scanner.Text()); ok {
				ids = append(ids, id)
			}
		}
		rep.Clusters = append(rep.Clusters, ids)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rep, nil
}

// ReadReport reads the cluster report stored in fname.
func ReadReport(fname string) (*Report, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rep, err := ParseReport(f)
	if err != nil {
		return nil, fmt.Errorf("io: reading %s: %w", fname, err)
	}
	return rep, nil
}

// leadingInt parses the integer at the start of s, skipping leading spaces
// and ignoring anything after the digits.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
