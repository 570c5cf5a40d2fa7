package gaze

import (
	"github.com/verte-zerg/gazekit/internal/model"
)

// Smoother converts noisy, high-frequency position samples into a stable
// smoothed position with prediction, jitter, and outlier handling. One
// instance owns one tracking session's state. Not safe for concurrent
// use; callers serialize access per instance.
type Smoother struct {
	tuning Tuning
	state  State
}

// Snapshot exposes the estimator internals for debugging and status UIs.
type Snapshot struct {
	Position            model.Vec3
	Velocity            model.Vec3
	Smoothed            model.Vec3
	PositionUncertainty float64
	VelocityUncertainty float64
	Gain                float64
	HistoryLen          int
	Stable              bool
	MeasurementNoise    float64
}

// NewSmoother builds a Smoother, validating the tuning eagerly.
func NewSmoother(tuning Tuning) (*Smoother, error) {
	if err := tuning.validate(); err != nil {
		return nil, err
	}
	return &Smoother{tuning: tuning, state: NewState(tuning)}, nil
}

// Update feeds one sample through the filter and returns the new
// smoothed position.
func (s *Smoother) Update(sample model.Sample) model.Vec3 {
	next, smoothed := Step(s.state, sample, s.tuning)
	s.state = next
	return smoothed
}

// Predict extrapolates the estimated position by offsetSeconds using the
// current velocity estimate. Pure query; no state changes.
func (s *Smoother) Predict(offsetSeconds float64) model.Vec3 {
	return s.state.Position.Add(s.state.Velocity.Scale(offsetSeconds))
}

// IsStable reports whether recent samples vary less than the stability
// threshold.
func (s *Smoother) IsStable() bool {
	return s.state.Stable
}

// Velocity returns the current velocity estimate.
func (s *Smoother) Velocity() model.Vec3 {
	return s.state.Velocity
}

// ReduceJitter applies a short-window median filter to a raw position.
// Optional pre-filter; Update never calls it internally.
func (s *Smoother) ReduceJitter(position model.Vec3) model.Vec3 {
	return reduceJitter(s.state.History, position)
}

// RejectOutlier replaces a statistically anomalous position with the
// recent mean. Optional pre-filter; Update never calls it internally.
func (s *Smoother) RejectOutlier(position model.Vec3) model.Vec3 {
	return rejectOutlier(s.state.History, position)
}

// Calibrate derives the measurement noise from a batch of reference
// samples: the population variance of the batch scaled down, floored so
// raw samples are never fully trusted. Applies to subsequent updates.
func (s *Smoother) Calibrate(samples []model.Vec3) {
	if len(samples) == 0 {
		return
	}
	var mean model.Vec3
	for _, p := range samples {
		mean = mean.Add(p)
	}
	mean = mean.Scale(1 / float64(len(samples)))
	variance := 0.0
	for _, p := range samples {
		d := p.Sub(mean)
		variance += d.X*d.X + d.Y*d.Y + d.Z*d.Z
	}
	variance /= float64(len(samples))

	noise := variance * 0.1
	if noise < minMeasurementNoise {
		noise = minMeasurementNoise
	}
	s.tuning.MeasurementNoise = noise
}

// Reset clears history and returns all estimates to their initial
// values.
func (s *Smoother) Reset() {
	s.state = NewState(s.tuning)
}

// Snapshot returns a copy of the estimator internals.
func (s *Smoother) Snapshot() Snapshot {
	return Snapshot{
		Position:            s.state.Position,
		Velocity:            s.state.Velocity,
		Smoothed:            s.state.Smoothed,
		PositionUncertainty: s.state.PositionUncertainty,
		VelocityUncertainty: s.state.VelocityUncertainty,
		Gain:                s.state.Gain,
		HistoryLen:          len(s.state.History),
		Stable:              s.state.Stable,
		MeasurementNoise:    s.tuning.MeasurementNoise,
	}
}
