package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

// Series represents a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisSeparator       = " | "
	axisLabelWidth      = 4
	scaleNote           = "Scaled per series; see min/max below."
	terminalWidthBackup = 80
)

// seriesMarkers distinguishes overlapping series in a plain-text plot.
var seriesMarkers = []byte{'*', '+', 'x', 'o', '#'}

// PlotSeries renders a multi-line text plot for the provided series.
// Each series is scaled independently to the plot height; rows read
// top-down from each series' maximum to its minimum.
func PlotSeries(w io.Writer, title string, series []Series, width, height int) error {
	series = filterSeries(series)
	if len(series) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = autoPlotWidth()
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	type scaledSeries struct {
		name     string
		values   []float64
		min, max float64
	}
	scaled := make([]scaledSeries, 0, len(series))
	for _, s := range series {
		values := resample(s.Values, width)
		minVal, maxVal := minMax(values)
		if math.Abs(maxVal-minVal) < 1e-9 {
			minVal--
			maxVal++
		}
		scaled = append(scaled, scaledSeries{name: s.Name, values: values, min: minVal, max: maxVal})
	}

	grid := make([][]byte, height)
	for y := range grid {
		grid[y] = []byte(strings.Repeat(" ", width))
	}
	for si, s := range scaled {
		marker := seriesMarkers[si%len(seriesMarkers)]
		for x, v := range s.values {
			pos := (v - s.min) / (s.max - s.min)
			y := height - 1 - int(math.Round(pos*float64(height-1)))
			if y < 0 {
				y = 0
			}
			if y >= height {
				y = height - 1
			}
			grid[y][x] = marker
		}
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, scaleNote); err != nil {
		return err
	}
	for si, s := range scaled {
		marker := seriesMarkers[si%len(seriesMarkers)]
		if _, err := fmt.Fprintf(w, "%c %s: min=%.4f max=%.4f\n", marker, s.name, s.min, s.max); err != nil {
			return err
		}
	}
	for y := 0; y < height; y++ {
		label := ""
		switch y {
		case 0:
			label = "max"
		case height - 1:
			label = "min"
		}
		if _, err := fmt.Fprintf(w, "%*s%s%s\n", axisLabelWidth, label, axisSeparator, string(grid[y])); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	plotWidth := totalWidth - axisLabelWidth - len(axisSeparator)
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

func autoPlotWidth() int {
	return PlotWidthFor(terminalWidth())
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func filterSeries(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		out = append(out, s)
	}
	return out
}

func minMax(values []float64) (float64, float64) {
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

// resample stretches or shrinks values to the target width by nearest
// index; averaging is left to MovingAverage before plotting.
func resample(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	if len(values) == width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for x := 0; x < width; x++ {
		idx := x * (len(values) - 1) / maxIntOne(width-1)
		out[x] = values[idx]
	}
	return out
}

func maxIntOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
