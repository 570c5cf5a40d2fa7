package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotSeriesRendersGrid(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Axis X", []Series{
		{Name: "raw", Values: []float64{0, 1, 2, 3, 2, 1, 0}},
		{Name: "smoothed", Values: []float64{0, 0.5, 1.5, 2.5, 2.2, 1.2, 0.3}},
	}, 20, 5)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Axis X", "raw", "smoothed", "max", "min", scaleNote} {
		if !strings.Contains(out, want) {
			t.Fatalf("plot output missing %q:\n%s", want, out)
		}
	}
	lines := strings.Split(out, "\n")
	gridLines := 0
	for _, line := range lines {
		if strings.Contains(line, axisSeparator) {
			gridLines++
		}
	}
	if gridLines != 5 {
		t.Fatalf("expected 5 grid rows, got %d:\n%s", gridLines, out)
	}
}

func TestPlotSeriesSkipsEmptySeries(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "Empty", []Series{{Name: "none"}}, 20, 5); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty series, got %q", buf.String())
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 80-axisLabelWidth-len(axisSeparator) {
		t.Fatalf("unexpected width: %d", got)
	}
	if got := PlotWidthFor(5); got != minPlotWidth {
		t.Fatalf("expected minimum width, got %d", got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected minimum width for zero, got %d", got)
	}
}

func TestResample(t *testing.T) {
	values := []float64{0, 1, 2, 3}
	up := resample(values, 8)
	if len(up) != 8 || up[0] != 0 || up[7] != 3 {
		t.Fatalf("unexpected upsample: %v", up)
	}
	down := resample(values, 2)
	if len(down) != 2 || down[0] != 0 || down[1] != 3 {
		t.Fatalf("unexpected downsample: %v", down)
	}
}
