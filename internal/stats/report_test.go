package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/gazekit/internal/model"
)

func TestRenderReplayIncludesSummaryAndPlots(t *testing.T) {
	raw := []model.Sample{
		{Position: model.Vec3{X: 0, Z: -1}, Timestamp: 0},
		{Position: model.Vec3{X: 0.1, Z: -1}, Timestamp: 0.1},
		{Position: model.Vec3{X: 0.05, Z: -1}, Timestamp: 0.2},
	}
	smoothed := []model.Vec3{{Z: -1}, {X: 0.02, Z: -1}, {X: 0.03, Z: -1}}
	metrics := ComputeReplay(raw, smoothed, []bool{false, true, true})

	var buf bytes.Buffer
	if err := RenderReplay(&buf, metrics, raw, smoothed, 1, 60); err != nil {
		t.Fatalf("RenderReplay failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Replay Summary", "Axis X", "Axis Y", "Axis Z", "deviation", "Stable updates"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHistory(t *testing.T) {
	var buf bytes.Buffer
	replays := []model.ReplaySummary{
		{
			EndedAt:        time.Unix(1000, 0).UTC(),
			TracePath:      "sweep.jsonl",
			Samples:        900,
			RMSRaw:         0.012,
			RMSSmoothed:    0.003,
			StabilityRatio: 0.75,
		},
	}
	if err := RenderHistory(&buf, replays); err != nil {
		t.Fatalf("RenderHistory failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"sweep.jsonl", "900", "75.0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("history missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistory(&buf, nil); err != nil {
		t.Fatalf("RenderHistory failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No replays recorded.") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
