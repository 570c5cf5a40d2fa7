package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/gazekit/internal/model"
)

// RenderReplay prints the full report for a replayed trace: a summary
// table, raw-vs-smoothed plots per axis, and a deviation sparkline.
func RenderReplay(w io.Writer, metrics ReplayMetrics, raw []model.Sample, smoothed []model.Vec3, window, totalWidth int) error {
	if err := renderReplaySummary(w, metrics); err != nil {
		return err
	}

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	axes := []struct {
		name string
		axis func(model.Vec3) float64
	}{
		{"X", func(v model.Vec3) float64 { return v.X }},
		{"Y", func(v model.Vec3) float64 { return v.Y }},
		{"Z", func(v model.Vec3) float64 { return v.Z }},
	}
	for _, a := range axes {
		rawSeries := make([]float64, len(raw))
		for i, s := range raw {
			rawSeries[i] = a.axis(s.Position)
		}
		smoothedSeries := make([]float64, len(smoothed))
		for i, p := range smoothed {
			smoothedSeries[i] = a.axis(p)
		}
		err := PlotSeries(w, fmt.Sprintf("Axis %s", a.name), []Series{
			{Name: "raw", Values: MovingAverage(rawSeries, window)},
			{Name: "smoothed", Values: MovingAverage(smoothedSeries, window)},
		}, width, 0)
		if err != nil {
			return err
		}
	}

	if len(raw) == len(smoothed) && len(raw) > 0 {
		deviation := make([]float64, len(raw))
		for i := range raw {
			deviation[i] = raw[i].Position.Dist(smoothed[i])
		}
		sparkWidth := width
		if sparkWidth <= 0 {
			sparkWidth = autoPlotWidth()
		}
		if _, err := fmt.Fprintf(w, "Raw-to-smoothed deviation: %s\n\n", Sparkline(resample(deviation, sparkWidth))); err != nil {
			return err
		}
	}
	return nil
}

func renderReplaySummary(w io.Writer, m ReplayMetrics) error {
	if _, err := fmt.Fprintln(w, "Replay Summary"); err != nil {
		return err
	}
	reduction := 0.0
	if m.RMSRaw > 0 {
		reduction = (1 - m.RMSSmoothed/m.RMSRaw) * 100
	}
	rows := [][]string{
		{"Samples", fmt.Sprintf("%d", m.Samples)},
		{"Duration", fmt.Sprintf("%.2fs", m.DurationSec)},
		{"RMS jitter (raw)", fmt.Sprintf("%.5f", m.RMSRaw)},
		{"RMS jitter (smoothed)", fmt.Sprintf("%.5f", m.RMSSmoothed)},
		{"Jitter reduction", fmt.Sprintf("%.1f%%", reduction)},
		{"Path length (raw)", fmt.Sprintf("%.4f", m.PathRaw)},
		{"Path length (smoothed)", fmt.Sprintf("%.4f", m.PathSmoothed)},
		{"Stable updates", fmt.Sprintf("%.1f%%", m.StabilityRatio*100)},
	}
	for _, line := range formatTable([]string{"Metric", "Value"}, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderHistory prints a table of past replay sessions.
func RenderHistory(w io.Writer, replays []model.ReplaySummary) error {
	if len(replays) == 0 {
		_, err := fmt.Fprintln(w, "No replays recorded.")
		return err
	}
	headers := []string{"Ended", "Trace", "Samples", "RMS raw", "RMS smoothed", "Stable"}
	rows := make([][]string, 0, len(replays))
	for _, r := range replays {
		rows = append(rows, []string{
			r.EndedAt.Format("2006-01-02 15:04"),
			r.TracePath,
			fmt.Sprintf("%d", r.Samples),
			fmt.Sprintf("%.5f", r.RMSRaw),
			fmt.Sprintf("%.5f", r.RMSSmoothed),
			fmt.Sprintf("%.1f%%", r.StabilityRatio*100),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}
