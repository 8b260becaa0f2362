package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phil-mansfield/gocluster/io"
	"github.com/phil-mansfield/gocluster/stats"
)

var analyzeConfig string

func init() {
	analyzeCmd.Flags().StringVar(&analyzeConfig, "config", "", "[Analyze] config file")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <index>...",
	Short: "Summarize the cluster reports listed in index files",
	Long: `Summarize the cluster reports listed in index files.

For every report, the cluster size histogram and the members of the largest
cluster are written to <report>.hist and <report>.largest_cluster. For every
index file, a summary table with one row per report is written next to it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	con := &io.DefaultAnalyzeWrapper().Analyze
	if analyzeConfig != "" {
		var err error
		if con, err = io.ReadAnalyzeConfig(analyzeConfig); err != nil {
			return withCode(ExitConfigError, err)
		}
	}

	fg, err := openFiles("", "")
	if err != nil {
		return withCode(ExitError, err)
	}
	defer fg.Close()

	for _, index := range args {
		if err := analyzeIndex(index, con, fg.log); err != nil {
			return withCode(ExitDataError, err)
		}
	}

	if con.Plot {
		stats.RenderPlots()
	}
	return nil
}

// analyzeIndex analyzes every report listed in one index file and writes
// the index's summary table.
func analyzeIndex(index string, con *io.AnalyzeConfig, log *zap.Logger) error {
	entries, err := io.ReadIndex(index)
	if err != nil {
		return err
	}

	table := &stats.SummaryTable{}
	for i, e := range entries {
		base := filepath.Join(con.Output, trimExt(filepath.Base(e.Report)))
		s, err := stats.AnalyzeReport(e.Report, base+".hist", base+".largest_cluster")
		if err != nil {
			log.Warn("skipping report", zap.String("report", e.Report), zap.Error(err))
			continue
		}
		table.Add(i, trimExt(e.Report), s)

		if con.Plot && s.Clusters > 0 {
			title := fmt.Sprintf("%s, type %s, %s", filepath.Base(e.Snapshot), e.Type, e.Layer)
			stats.PlotHistogram(base+".png", title, s, con.PlotScale)
		}
	}

	summary := trimExt(index) + ".summary"
	if err := table.Write(summary); err != nil {
		return err
	}
	if con.YAML {
		if err := table.WriteYAML(summary + ".yaml"); err != nil {
			return err
		}
	}

	log.Info("analyzed index",
		zap.String("index", index),
		zap.Int("reports", len(entries)),
		zap.String("summary", summary),
	)
	return nil
}

func trimExt(fname string) string {
	return strings.TrimSuffix(fname, filepath.Ext(fname))
}
