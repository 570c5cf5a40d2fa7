// Package trace reads, writes, and synthesizes gaze sample traces.
//
// A trace is JSON Lines, one sample per line:
//
//	{"t": 0.016, "x": 0.12, "y": -0.03, "z": -1.0}
//
// Timestamps are seconds from the start of the recording.
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/gazekit/internal/model"
)

type record struct {
	T float64 `json:"t"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Read loads a trace file.
func Read(path string) ([]model.Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only trace.
			_ = cerr
		}
	}()
	samples, err := ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// ReadFrom decodes samples from a JSONL stream. Blank lines are skipped;
// a malformed line is an error naming its line number.
func ReadFrom(r io.Reader) ([]model.Sample, error) {
	var samples []model.Sample
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var rec record
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		samples = append(samples, model.Sample{
			Position:  model.Vec3{X: rec.X, Y: rec.Y, Z: rec.Z},
			Timestamp: rec.T,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("trace is empty")
	}
	return samples, nil
}

// Write stores a trace atomically: a temp file in the target directory
// is renamed over the destination.
func Write(path string, samples []model.Sample) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create trace dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "trace-*.jsonl")
	if err != nil {
		return fmt.Errorf("failed to create temp trace: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if err := WriteTo(writer, samples); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush trace: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close trace: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write trace: %w", err)
	}
	return nil
}

// WriteTo encodes samples as JSONL.
func WriteTo(w io.Writer, samples []model.Sample) error {
	enc := json.NewEncoder(w)
	for _, s := range samples {
		rec := record{T: s.Timestamp, X: s.Position.X, Y: s.Position.Y, Z: s.Position.Z}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to encode trace: %w", err)
		}
	}
	return nil
}
