package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/gazekit/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "gazekit.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertCorrectionIsIdempotent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	at := time.Unix(100, 0).UTC()

	if err := st.InsertCorrection(ctx, "helo", "hello", at); err != nil {
		t.Fatalf("insert correction: %v", err)
	}
	if err := st.InsertCorrection(ctx, "helo", "hello", at.Add(time.Hour)); err != nil {
		t.Fatalf("insert duplicate: %v", err)
	}
	if err := st.InsertCorrection(ctx, "helo", "help", at.Add(time.Minute)); err != nil {
		t.Fatalf("insert second replacement: %v", err)
	}

	corrections, err := st.ListCorrections(ctx)
	if err != nil {
		t.Fatalf("list corrections: %v", err)
	}
	if len(corrections) != 2 {
		t.Fatalf("expected 2 corrections, got %d", len(corrections))
	}
	if corrections[0].Replacement != "hello" || corrections[1].Replacement != "help" {
		t.Fatalf("unexpected order: %+v", corrections)
	}
	if !corrections[0].LearnedAt.Equal(at) {
		t.Fatalf("unexpected learned_at: %v", corrections[0].LearnedAt)
	}
}

func TestReplaysAreWindowed(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		start := time.Unix(int64(i)*60, 0).UTC()
		summary := model.ReplaySummary{
			StartedAt:      start,
			EndedAt:        start.Add(30 * time.Second),
			TracePath:      "trace.jsonl",
			Samples:        100 + i,
			RMSRaw:         0.5,
			RMSSmoothed:    0.1,
			StabilityRatio: 0.8,
			DurationMs:     30000,
		}
		if _, err := st.InsertReplay(ctx, summary); err != nil {
			t.Fatalf("insert replay: %v", err)
		}
	}

	all, err := st.ListReplays(ctx, 0)
	if err != nil {
		t.Fatalf("list replays: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 replays, got %d", len(all))
	}

	last, err := st.ListReplays(ctx, 2)
	if err != nil {
		t.Fatalf("list replays windowed: %v", err)
	}
	if len(last) != 2 {
		t.Fatalf("expected 2 replays, got %d", len(last))
	}
	if last[0].Samples != 102 || last[1].Samples != 103 {
		t.Fatalf("expected the two most recent replays oldest first, got %+v", last)
	}
}
