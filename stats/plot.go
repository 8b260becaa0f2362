package stats

import (
	"fmt"

	plt "github.com/phil-mansfield/pyplot"
)

// PlotHistogram queues a pyplot figure of the cluster size histogram which
// will be saved to fname. scale is the y axis scale, "Linear" or "Log".
// Figures are only rendered once RenderPlots is called.
func PlotHistogram(fname, title string, s *Summary, scale string) {
	sizes := make([]float64, len(s.Histogram))
	counts := make([]float64, len(s.Histogram))
	for i, b := range s.Histogram {
		sizes[i], counts[i] = float64(b.Size), float64(b.Count)
	}

	plt.Figure(plt.FigSize(8, 6))
	plt.Plot(sizes, counts, "ok")
	plt.Plot(sizes, counts, "k", plt.LW(1))
	plt.Title(fmt.Sprintf(
		"%s: %d clusters, average size %s",
		title, s.Clusters, FormatAverage(s.AverageSize),
	))
	plt.XLabel("Cluster size", plt.FontSize(16))
	plt.YLabel("Count", plt.FontSize(16))
	if scale == "Log" {
		plt.YScale("log")
	}
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(fname)
}

// RenderPlots runs the queued pyplot commands.
func RenderPlots() {
	plt.Execute()
}
