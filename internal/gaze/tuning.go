// Package gaze smooths noisy tracking samples into stable, predicted
// positions using a recursive scalar-gain estimator.
package gaze

import (
	"fmt"

	"github.com/verte-zerg/gazekit/internal/model"
)

const (
	defaultPredictionFactor   = 0.3
	defaultProcessNoise       = 0.1
	defaultMeasurementNoise   = 0.5
	defaultSmoothingFactor    = 0.15
	defaultStabilityThreshold = 0.01
	defaultHistoryCapacity    = 10

	// initialUncertainty is the starting covariance proxy for both the
	// position and velocity estimates.
	initialUncertainty = 1.0

	// minMeasurementNoise is the calibration floor; Calibrate never
	// trusts samples more than this.
	minMeasurementNoise = 0.1

	velocityWindow  = 3
	stabilityWindow = 5
	stabilityMinLen = 3
	jitterWindow    = 3
	outlierWindow   = 5
	outlierSigma    = 2.0
)

// Tuning holds the filter constants. PredictionFactor is a fixed
// extrapolation horizon; it is not scaled by sample dt.
type Tuning struct {
	PredictionFactor   float64
	ProcessNoise       float64
	MeasurementNoise   float64
	SmoothingFactor    float64
	StabilityThreshold float64
	HistoryCapacity    int
	InitialPosition    model.Vec3
}

// DefaultTuning returns the stock filter constants.
func DefaultTuning() Tuning {
	return Tuning{
		PredictionFactor:   defaultPredictionFactor,
		ProcessNoise:       defaultProcessNoise,
		MeasurementNoise:   defaultMeasurementNoise,
		SmoothingFactor:    defaultSmoothingFactor,
		StabilityThreshold: defaultStabilityThreshold,
		HistoryCapacity:    defaultHistoryCapacity,
	}
}

func (t Tuning) validate() error {
	if t.HistoryCapacity <= 0 {
		return fmt.Errorf("history capacity must be > 0, got %d", t.HistoryCapacity)
	}
	if t.ProcessNoise <= 0 {
		return fmt.Errorf("process noise must be > 0, got %v", t.ProcessNoise)
	}
	if t.MeasurementNoise <= 0 {
		return fmt.Errorf("measurement noise must be > 0, got %v", t.MeasurementNoise)
	}
	if t.SmoothingFactor <= 0 || t.SmoothingFactor > 1 {
		return fmt.Errorf("smoothing factor must be in (0, 1], got %v", t.SmoothingFactor)
	}
	if t.StabilityThreshold <= 0 {
		return fmt.Errorf("stability threshold must be > 0, got %v", t.StabilityThreshold)
	}
	if t.PredictionFactor < 0 {
		return fmt.Errorf("prediction factor must be >= 0, got %v", t.PredictionFactor)
	}
	return nil
}
