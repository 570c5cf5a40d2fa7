package trace

import (
	"math"
	"math/rand"
	"time"

	"github.com/verte-zerg/gazekit/internal/model"
)

// GenConfig controls synthetic trace generation: a slow sweep across a
// virtual panel with gaussian jitter and occasional spike outliers, the
// same noise profile a head-mounted tracker produces.
type GenConfig struct {
	Samples     int
	IntervalSec float64
	Radius      float64
	Jitter      float64
	SpikeChance float64
	SpikeScale  float64
}

// DefaultGenConfig returns a 90 Hz, ten-second noisy sweep.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Samples:     900,
		IntervalSec: 1.0 / 90.0,
		Radius:      0.3,
		Jitter:      0.01,
		SpikeChance: 0.02,
		SpikeScale:  0.5,
	}
}

// Generator produces randomized gaze traces.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator. A positive seed gives a reproducible trace;
// otherwise the generator is seeded from the current time.
func New(seed int64) *Generator {
	if seed <= 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate synthesizes a noisy gaze trace.
func (g *Generator) Generate(cfg GenConfig) []model.Sample {
	samples := make([]model.Sample, 0, cfg.Samples)
	for i := 0; i < cfg.Samples; i++ {
		t := float64(i) * cfg.IntervalSec
		base := model.Vec3{
			X: math.Sin(0.5*t) * cfg.Radius,
			Y: math.Cos(0.3*t) * cfg.Radius * 0.5,
			Z: -1 + 0.05*math.Sin(0.2*t),
		}
		pos := base.Add(model.Vec3{
			X: g.rnd.NormFloat64() * cfg.Jitter,
			Y: g.rnd.NormFloat64() * cfg.Jitter,
			Z: g.rnd.NormFloat64() * cfg.Jitter,
		})
		if cfg.SpikeChance > 0 && g.rnd.Float64() < cfg.SpikeChance {
			pos = pos.Add(model.Vec3{
				X: (g.rnd.Float64()*2 - 1) * cfg.SpikeScale,
				Y: (g.rnd.Float64()*2 - 1) * cfg.SpikeScale,
				Z: (g.rnd.Float64()*2 - 1) * cfg.SpikeScale,
			})
		}
		samples = append(samples, model.Sample{Position: pos, Timestamp: t})
	}
	return samples
}
