// Package main provides the gocluster CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(exitCode(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "gocluster",
	Short: "Find clusters of contacting particles in simulation snapshots",
	Long: `gocluster finds clusters of contacting particles or rigid molecules in
periodic simulation snapshots.

  gocluster cluster  reads a [Cluster] config file and writes one cluster
                     report per snapshot, particle type and layer, plus index
                     files listing the reports.
  gocluster analyze  reads index files and writes size histograms, largest
                     clusters and summary tables.

Run 'gocluster example-config Cluster' for a documented config file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version
}

// exitError attaches an exit code to an error returned by a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitError
}

// FileGroup holds the optional log and profile outputs of a run.
type FileGroup struct {
	prof *os.File
	log  *zap.Logger
}

// openFiles starts CPU profiling if profFile is set and builds the logger,
// which writes to logFile if it is set and to stderr otherwise.
func openFiles(profFile, logFile string) (*FileGroup, error) {
	fg := &FileGroup{}

	cfg := zap.NewProductionConfig()
	if logFile != "" {
		cfg.OutputPaths = []string{logFile}
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	fg.log = log

	if profFile != "" {
		f, err := os.Create(profFile)
		if err != nil {
			return nil, err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return nil, err
		}
		fg.prof = f
	}

	return fg, nil
}

// Close stops profiling and flushes the logger.
func (fg *FileGroup) Close() error {
	fg.log.Sync()
	if fg.prof != nil {
		pprof.StopCPUProfile()
		return fg.prof.Close()
	}
	return nil
}
