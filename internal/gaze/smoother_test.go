package gaze

import (
	"math"
	"testing"

	"github.com/verte-zerg/gazekit/internal/model"
)

func newTestSmoother(t *testing.T) *Smoother {
	t.Helper()
	s, err := NewSmoother(DefaultTuning())
	if err != nil {
		t.Fatalf("NewSmoother failed: %v", err)
	}
	return s
}

func TestUpdateConvergesOnConstantInput(t *testing.T) {
	s := newTestSmoother(t)
	target := model.Vec3{X: 1, Y: 2, Z: 3}
	var smoothed model.Vec3
	for i := 0; i < 50; i++ {
		smoothed = s.Update(model.Sample{Position: target, Timestamp: float64(i) * 0.016})
	}
	if !s.IsStable() {
		t.Fatalf("expected stability after repeated constant input")
	}
	if smoothed.Dist(target) > 0.02 {
		t.Fatalf("smoothed position did not converge: %+v", smoothed)
	}
	if v := s.Velocity(); v.Length() > 1e-9 {
		t.Fatalf("expected zero velocity for constant input, got %+v", v)
	}
}

func TestPredictZeroOffsetEqualsEstimate(t *testing.T) {
	s := newTestSmoother(t)
	s.Update(model.Sample{Position: model.Vec3{X: 0.5, Y: 0.1, Z: 2}, Timestamp: 0})
	s.Update(model.Sample{Position: model.Vec3{X: 0.6, Y: 0.1, Z: 2}, Timestamp: 0.016})
	if got := s.Predict(0); got.Dist(s.Snapshot().Position) > 1e-12 {
		t.Fatalf("Predict(0) diverges from estimated position: %+v", got)
	}
}

func TestPredictExtrapolatesWithVelocity(t *testing.T) {
	s := newTestSmoother(t)
	for i := 0; i < 10; i++ {
		s.Update(model.Sample{
			Position:  model.Vec3{X: float64(i)},
			Timestamp: float64(i),
		})
	}
	snap := s.Snapshot()
	got := s.Predict(2)
	want := snap.Position.Add(snap.Velocity.Scale(2))
	if got.Dist(want) > 1e-12 {
		t.Fatalf("Predict(2) = %+v, want %+v", got, want)
	}
	if snap.Velocity.X < 0.5 {
		t.Fatalf("expected positive x velocity for a moving target, got %+v", snap.Velocity)
	}
}

func TestVelocityUnchangedWithoutValidPairs(t *testing.T) {
	s := newTestSmoother(t)
	s.Update(model.Sample{Position: model.Vec3{X: 1}, Timestamp: 5})
	if v := s.Velocity(); v.Length() != 0 {
		t.Fatalf("single sample should leave velocity unchanged, got %+v", v)
	}
	// Identical timestamps produce no positive-dt pair.
	s.Update(model.Sample{Position: model.Vec3{X: 2}, Timestamp: 5})
	if v := s.Velocity(); v.Length() != 0 {
		t.Fatalf("zero-dt pair should leave velocity unchanged, got %+v", v)
	}
}

func TestIsStableNeedsEnoughSamples(t *testing.T) {
	s := newTestSmoother(t)
	p := model.Vec3{X: 1}
	s.Update(model.Sample{Position: p, Timestamp: 0})
	s.Update(model.Sample{Position: p, Timestamp: 0.1})
	if s.IsStable() {
		t.Fatalf("two samples must not report stable")
	}
	s.Update(model.Sample{Position: p, Timestamp: 0.2})
	if !s.IsStable() {
		t.Fatalf("three identical samples should report stable")
	}
}

func TestIsStableRejectsNoisyWindow(t *testing.T) {
	s := newTestSmoother(t)
	for i := 0; i < 6; i++ {
		x := 0.0
		if i%2 == 0 {
			x = 1.0
		}
		s.Update(model.Sample{Position: model.Vec3{X: x}, Timestamp: float64(i)})
	}
	if s.IsStable() {
		t.Fatalf("alternating samples must not report stable")
	}
}

func TestCalibrateDerivesMeasurementNoise(t *testing.T) {
	s := newTestSmoother(t)
	s.Calibrate([]model.Vec3{{X: 0}, {X: 10}})
	// Mean x is 5, population variance 25, scaled by 0.1.
	if got := s.Snapshot().MeasurementNoise; math.Abs(got-2.5) > 1e-9 {
		t.Fatalf("expected measurement noise 2.5, got %v", got)
	}
	s.Calibrate([]model.Vec3{{X: 1}, {X: 1}, {X: 1}})
	if got := s.Snapshot().MeasurementNoise; got != minMeasurementNoise {
		t.Fatalf("expected noise floor %v, got %v", minMeasurementNoise, got)
	}
	s.Calibrate(nil)
	if got := s.Snapshot().MeasurementNoise; got != minMeasurementNoise {
		t.Fatalf("empty batch must not change noise, got %v", got)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	s := newTestSmoother(t)
	for i := 0; i < 8; i++ {
		s.Update(model.Sample{Position: model.Vec3{X: float64(i)}, Timestamp: float64(i)})
	}
	s.Reset()
	snap := s.Snapshot()
	if snap.HistoryLen != 0 {
		t.Fatalf("expected empty history, got %d", snap.HistoryLen)
	}
	if snap.Position.Length() != 0 || snap.Velocity.Length() != 0 || snap.Smoothed.Length() != 0 {
		t.Fatalf("expected zeroed estimates, got %+v", snap)
	}
	if snap.PositionUncertainty != initialUncertainty || snap.VelocityUncertainty != initialUncertainty {
		t.Fatalf("expected initial uncertainties, got %+v", snap)
	}
	if s.IsStable() {
		t.Fatalf("reset state must not be stable")
	}
	if got := s.Predict(1); got.Length() != 0 {
		t.Fatalf("expected zero prediction after reset, got %+v", got)
	}
}

func TestHistoryCapacityIsBounded(t *testing.T) {
	tuning := DefaultTuning()
	tuning.HistoryCapacity = 4
	s, err := NewSmoother(tuning)
	if err != nil {
		t.Fatalf("NewSmoother failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		s.Update(model.Sample{Position: model.Vec3{X: float64(i)}, Timestamp: float64(i)})
	}
	if got := s.Snapshot().HistoryLen; got != 4 {
		t.Fatalf("expected history capped at 4, got %d", got)
	}
}

func TestNewSmootherValidatesTuning(t *testing.T) {
	bad := DefaultTuning()
	bad.HistoryCapacity = 0
	if _, err := NewSmoother(bad); err == nil {
		t.Fatalf("expected error for zero history capacity")
	}
	bad = DefaultTuning()
	bad.SmoothingFactor = 1.5
	if _, err := NewSmoother(bad); err == nil {
		t.Fatalf("expected error for smoothing factor > 1")
	}
	bad = DefaultTuning()
	bad.MeasurementNoise = 0
	if _, err := NewSmoother(bad); err == nil {
		t.Fatalf("expected error for zero measurement noise")
	}
}
