// Package stats contains replay metrics and reporting.
package stats

import (
	"math"

	"github.com/verte-zerg/gazekit/internal/model"
)

const sparkChars = " .:-=+*#%@"

// ReplayMetrics summarizes one trace replayed through the smoother.
type ReplayMetrics struct {
	Samples        int
	DurationSec    float64
	RMSRaw         float64
	RMSSmoothed    float64
	PathRaw        float64
	PathSmoothed   float64
	StabilityRatio float64
}

// ComputeReplay derives metrics from a raw trace and the smoothed output
// positions with per-update stability flags.
func ComputeReplay(raw []model.Sample, smoothed []model.Vec3, stable []bool) ReplayMetrics {
	m := ReplayMetrics{Samples: len(raw)}
	if len(raw) == 0 {
		return m
	}
	m.DurationSec = raw[len(raw)-1].Timestamp - raw[0].Timestamp

	rawPositions := make([]model.Vec3, len(raw))
	for i, s := range raw {
		rawPositions[i] = s.Position
	}
	m.RMSRaw = JitterRMS(rawPositions)
	m.RMSSmoothed = JitterRMS(smoothed)
	m.PathRaw = PathLength(rawPositions)
	m.PathSmoothed = PathLength(smoothed)

	stableCount := 0
	for _, ok := range stable {
		if ok {
			stableCount++
		}
	}
	if len(stable) > 0 {
		m.StabilityRatio = float64(stableCount) / float64(len(stable))
	}
	return m
}

// JitterRMS measures high-frequency noise as the root mean square of
// frame-to-frame displacement.
func JitterRMS(positions []model.Vec3) float64 {
	if len(positions) < 2 {
		return 0
	}
	sum := 0.0
	for i := 1; i < len(positions); i++ {
		d := positions[i].Dist(positions[i-1])
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(positions)-1))
}

// PathLength sums frame-to-frame displacement.
func PathLength(positions []model.Vec3) float64 {
	total := 0.0
	for i := 1; i < len(positions); i++ {
		total += positions[i].Dist(positions[i-1])
	}
	return total
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
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
	if math.Abs(maxVal-minVal) < 1e-9 {
		out := make([]byte, len(values))
		for i := range out {
			out[i] = sparkChars[len(sparkChars)/2]
		}
		return string(out)
	}
	out := make([]byte, len(values))
	for i, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		out[i] = sparkChars[idx]
	}
	return string(out)
}
