package gaze

import "github.com/verte-zerg/gazekit/internal/model"

// State is the full estimator state. It is a plain value: Step consumes
// one and returns the next, so there are no hidden globals and every
// transition is replayable in isolation.
type State struct {
	Position            model.Vec3
	Velocity            model.Vec3
	Smoothed            model.Vec3
	PositionUncertainty float64
	VelocityUncertainty float64
	Gain                float64
	Stable              bool
	History             []model.Sample
}

// NewState returns the initial estimator state for a tuning.
func NewState(t Tuning) State {
	return State{
		Position:            t.InitialPosition,
		Smoothed:            t.InitialPosition,
		PositionUncertainty: initialUncertainty,
		VelocityUncertainty: initialUncertainty,
	}
}

// Step advances the estimator by one sample and returns the next state
// together with the new smoothed position. The input state is not
// modified; history is copied before appending.
func Step(s State, sample model.Sample, t Tuning) (State, model.Vec3) {
	history := make([]model.Sample, 0, len(s.History)+1)
	history = append(history, s.History...)
	history = append(history, sample)
	if len(history) > t.HistoryCapacity {
		history = history[len(history)-t.HistoryCapacity:]
	}

	// Fixed-horizon linear extrapolation; see Tuning.PredictionFactor.
	predicted := s.Position.Add(s.Velocity.Scale(t.PredictionFactor))

	pu := s.PositionUncertainty + t.ProcessNoise
	vu := s.VelocityUncertainty + t.ProcessNoise

	gain := pu / (pu + t.MeasurementNoise)
	innovation := sample.Position.Sub(predicted)
	position := predicted.Add(innovation.Scale(gain))
	pu *= 1 - gain

	alpha := t.SmoothingFactor
	smoothed := s.Smoothed.Scale(1 - alpha).Add(position.Scale(alpha))

	next := State{
		Position:            position,
		Velocity:            velocityFromHistory(history, s.Velocity),
		Smoothed:            smoothed,
		PositionUncertainty: pu,
		VelocityUncertainty: vu,
		Gain:                gain,
		History:             history,
	}
	next.Stable = stableFromHistory(history, t.StabilityThreshold)
	return next, smoothed
}

// velocityFromHistory averages pairwise finite differences over the most
// recent samples. With fewer than two samples, or no positive-dt pair,
// the previous velocity is kept.
func velocityFromHistory(history []model.Sample, previous model.Vec3) model.Vec3 {
	recent := lastSamples(history, velocityWindow)
	if len(recent) < 2 {
		return previous
	}
	var sum model.Vec3
	pairs := 0
	for i := 1; i < len(recent); i++ {
		dt := recent[i].Timestamp - recent[i-1].Timestamp
		if dt <= 0 {
			continue
		}
		sum = sum.Add(recent[i].Position.Sub(recent[i-1].Position).Scale(1 / dt))
		pairs++
	}
	if pairs == 0 {
		return previous
	}
	return sum.Scale(1 / float64(pairs))
}

// stableFromHistory reports whether the variance of the recent samples is
// below the threshold. Fewer than three samples is never stable.
func stableFromHistory(history []model.Sample, threshold float64) bool {
	recent := lastSamples(history, stabilityWindow)
	if len(recent) < stabilityMinLen {
		return false
	}
	mean := meanPosition(recent)
	variance := 0.0
	for _, s := range recent {
		d := s.Position.Sub(mean)
		variance += d.X*d.X + d.Y*d.Y + d.Z*d.Z
	}
	variance /= float64(len(recent))
	return variance < threshold
}

func lastSamples(history []model.Sample, n int) []model.Sample {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

func meanPosition(samples []model.Sample) model.Vec3 {
	var sum model.Vec3
	for _, s := range samples {
		sum = sum.Add(s.Position)
	}
	return sum.Scale(1 / float64(len(samples)))
}
