package stats

import (
	"math"
	"testing"

	"github.com/verte-zerg/gazekit/internal/model"
)

func TestJitterRMS(t *testing.T) {
	positions := []model.Vec3{{X: 0}, {X: 1}, {X: 1}, {X: 3}}
	// Displacements are 1, 0, 2; RMS = sqrt(5/3).
	want := math.Sqrt(5.0 / 3.0)
	if got := JitterRMS(positions); math.Abs(got-want) > 1e-12 {
		t.Fatalf("JitterRMS = %v, want %v", got, want)
	}
	if got := JitterRMS([]model.Vec3{{X: 1}}); got != 0 {
		t.Fatalf("single sample should yield 0, got %v", got)
	}
}

func TestPathLength(t *testing.T) {
	positions := []model.Vec3{{X: 0}, {X: 1}, {X: 1, Y: 1}}
	if got := PathLength(positions); math.Abs(got-2) > 1e-12 {
		t.Fatalf("PathLength = %v, want 2", got)
	}
}

func TestComputeReplay(t *testing.T) {
	raw := []model.Sample{
		{Position: model.Vec3{X: 0}, Timestamp: 0},
		{Position: model.Vec3{X: 1}, Timestamp: 0.5},
		{Position: model.Vec3{X: 0}, Timestamp: 1.0},
	}
	smoothed := []model.Vec3{{X: 0}, {X: 0.4}, {X: 0.4}}
	stable := []bool{false, false, true}

	m := ComputeReplay(raw, smoothed, stable)
	if m.Samples != 3 {
		t.Fatalf("expected 3 samples, got %d", m.Samples)
	}
	if math.Abs(m.DurationSec-1.0) > 1e-12 {
		t.Fatalf("duration = %v, want 1.0", m.DurationSec)
	}
	if m.RMSSmoothed >= m.RMSRaw {
		t.Fatalf("expected smoothing to reduce jitter: raw=%v smoothed=%v", m.RMSRaw, m.RMSSmoothed)
	}
	if math.Abs(m.StabilityRatio-1.0/3.0) > 1e-12 {
		t.Fatalf("stability ratio = %v, want 1/3", m.StabilityRatio)
	}
}

func TestComputeReplayEmpty(t *testing.T) {
	m := ComputeReplay(nil, nil, nil)
	if m.Samples != 0 || m.RMSRaw != 0 || m.StabilityRatio != 0 {
		t.Fatalf("expected zero metrics, got %+v", m)
	}
}

func TestMovingAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	got := MovingAverage(values, 2)
	want := []float64{1, 1.5, 2.5, 3.5}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("MovingAverage = %v, want %v", got, want)
		}
	}
	flat := MovingAverage(values, 1)
	for i := range values {
		if flat[i] != values[i] {
			t.Fatalf("window 1 should copy values, got %v", flat)
		}
	}
}

func TestSparkline(t *testing.T) {
	out := Sparkline([]float64{0, 1, 2, 3})
	if len(out) != 4 {
		t.Fatalf("expected 4 chars, got %q", out)
	}
	if out[0] != sparkChars[0] || out[3] != sparkChars[len(sparkChars)-1] {
		t.Fatalf("expected full range endpoints, got %q", out)
	}
	flat := Sparkline([]float64{5, 5, 5})
	if len(flat) != 3 || flat[0] != flat[2] {
		t.Fatalf("expected flat sparkline, got %q", flat)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline for no values")
	}
}
