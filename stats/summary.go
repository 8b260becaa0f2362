package stats

import (
	"bufio"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Row is one line of a summary table.
type Row struct {
	Index   int    `yaml:"index"`
	Report  string `yaml:"report"`
	Summary `yaml:",inline"`
}

// SummaryTable collects the summaries of every report listed in an index
// file.
type SummaryTable struct {
	Rows []Row
}

// Add appends a summary to the table. index is the position of the report
// in its index file, so skipped reports leave gaps.
func (st *SummaryTable) Add(index int, report string, s *Summary) {
	st.Rows = append(st.Rows, Row{Index: index, Report: report, Summary: *s})
}

// Write writes the table as whitespace separated columns, preceded by a
// commented header.
func (st *SummaryTable) Write(fname string) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)

	fmt.Fprintln(w, "# index NClusters minSize maxSize averageSize cls_filename")
	for _, r := range st.Rows {
		fmt.Fprintf(w, "%d %d %d %d %s %s\n", r.Index, r.Clusters,
			r.MinSize, r.MaxSize, FormatAverage(r.AverageSize), r.Report)
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteYAML writes the table, including histograms, as YAML.
func (st *SummaryTable) WriteYAML(fname string) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]Row{"reports": st.Rows}); err != nil {
		f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
