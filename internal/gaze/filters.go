package gaze

import (
	"math"
	"sort"

	"github.com/verte-zerg/gazekit/internal/model"
)

// reduceJitter returns the componentwise median of the most recent
// history samples, or the input unchanged with insufficient history.
func reduceJitter(history []model.Sample, position model.Vec3) model.Vec3 {
	recent := lastSamples(history, jitterWindow)
	if len(recent) < jitterWindow {
		return position
	}
	return model.Vec3{
		X: medianOf(recent, func(v model.Vec3) float64 { return v.X }),
		Y: medianOf(recent, func(v model.Vec3) float64 { return v.Y }),
		Z: medianOf(recent, func(v model.Vec3) float64 { return v.Z }),
	}
}

// rejectOutlier substitutes the recent mean for a sample that deviates
// more than outlierSigma standard deviations on any axis. Requires a
// full outlier window of history; otherwise the input passes through.
func rejectOutlier(history []model.Sample, position model.Vec3) model.Vec3 {
	recent := lastSamples(history, outlierWindow)
	if len(recent) < outlierWindow {
		return position
	}
	mean := meanPosition(recent)
	stddev := stddevPosition(recent, mean)
	dev := position.Sub(mean)
	if math.Abs(dev.X) > outlierSigma*stddev.X ||
		math.Abs(dev.Y) > outlierSigma*stddev.Y ||
		math.Abs(dev.Z) > outlierSigma*stddev.Z {
		return mean
	}
	return position
}

func medianOf(samples []model.Sample, axis func(model.Vec3) float64) float64 {
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = axis(s.Position)
	}
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 0 {
		return (values[mid-1] + values[mid]) / 2
	}
	return values[mid]
}

func stddevPosition(samples []model.Sample, mean model.Vec3) model.Vec3 {
	var sq model.Vec3
	for _, s := range samples {
		d := s.Position.Sub(mean)
		sq.X += d.X * d.X
		sq.Y += d.Y * d.Y
		sq.Z += d.Z * d.Z
	}
	n := float64(len(samples))
	return model.Vec3{
		X: math.Sqrt(sq.X / n),
		Y: math.Sqrt(sq.Y / n),
		Z: math.Sqrt(sq.Z / n),
	}
}
