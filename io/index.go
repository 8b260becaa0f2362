package io

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// IndexEntry describes one cluster report produced by a clustering run.
type IndexEntry struct {
	Report, Snapshot, Type, Layer string
}

// IndexName returns the name of the index file listing the reports of the
// given layer and particle type.
func IndexName(layer, ptype string) string {
	if layer == "all" {
		return fmt.Sprintf("clusterfiles_all_particles_type_%s.txt", ptype)
	}
	return fmt.Sprintf("clusterfiles_%s_layer_particles_type_%s.txt", layer, ptype)
}

// IndexWriter appends entries to an index file.
type IndexWriter struct {
	f *os.File
	w *bufio.Writer
}

// CreateIndex creates or truncates an index file.
func CreateIndex(fname string) (*IndexWriter, error) {
	f, err := os.Create(fname)
	if err != nil {
		return nil, err
	}
	return &IndexWriter{f: f, w: bufio.NewWriter(f)}, nil
}

// Append adds an entry to the index.
func (iw *IndexWriter) Append(e IndexEntry) error {
	_, err := fmt.Fprintf(
		iw.w, "%s\t%s\t%s\t%s\n", e.Report, e.Snapshot, e.Type, e.Layer,
	)
	return err
}

// Close flushes and closes the index file.
func (iw *IndexWriter) Close() error {
	if err := iw.w.Flush(); err != nil {
		iw.f.Close()
		return err
	}
	return iw.f.Close()
}

// ReadIndex reads an index file. The file is treated as a stream of
// whitespace separated words taken four at a time; a trailing incomplete
// entry is dropped.
func ReadIndex(fname string) ([]IndexEntry, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words := []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		words = append(words, strings.Fields(scanner.Text())...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	entries := make([]IndexEntry, 0, len(words)/4)
	for i := 0; i+4 <= len(words); i += 4 {
		entries = append(entries, IndexEntry{
			Report: words[i], Snapshot: words[i+1],
			Type: words[i+2], Layer: words[i+3],
		})
	}
	return entries, nil
}
