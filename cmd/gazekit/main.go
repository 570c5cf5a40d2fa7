// Package main provides the CLI entrypoint for gazekit.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/gazekit/internal/autocorrect"
	"github.com/verte-zerg/gazekit/internal/config"
	"github.com/verte-zerg/gazekit/internal/gaze"
	"github.com/verte-zerg/gazekit/internal/model"
	"github.com/verte-zerg/gazekit/internal/stats"
	"github.com/verte-zerg/gazekit/internal/store"
	"github.com/verte-zerg/gazekit/internal/trace"
	"github.com/verte-zerg/gazekit/internal/tui"
	"github.com/verte-zerg/gazekit/internal/wordlist"
)

const (
	defaultLang           = "en"
	defaultCacheCapacity  = 100
	defaultMaxSuggestions = 3
	defaultMaxDistance    = 2
	defaultLearnedCap     = 1000

	defaultCurveWindow  = 5
	defaultHistoryLast  = 20
	defaultGenSamples   = 900
	defaultGenRate      = 90.0
	defaultGenJitter    = 0.01
	defaultGenSpikePct  = 0.02
	defaultGenSpikeSize = 0.5
)

var (
	engineLang           string
	engineCacheCapacity  int
	engineMaxSuggestions int
	engineMaxDistance    int
	engineLearnedCap     int

	filterPredictionFactor   float64
	filterProcessNoise       float64
	filterMeasurementNoise   float64
	filterSmoothingFactor    float64
	filterStabilityThreshold float64
	filterHistoryCapacity    int

	replayWindow    int
	replayCalibrate int
	replayJitter    bool
	replayOutlier   bool
	replaySkipStore bool
	historyLast     int

	genOut         string
	genSamples     int
	genRate        float64
	genJitter      float64
	genSpikeChance float64
	genSpikeScale  float64
	genSeed        int64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gazekit",
		Short:         "Gaze-typing core: autocorrect engine and gaze smoother",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDemoCmd,
	}

	addEngineFlags(rootCmd)
	rootCmd.AddCommand(newSuggestCmd())
	rootCmd.AddCommand(newLearnCmd())
	rootCmd.AddCommand(newDictCmd())
	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newTraceCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&engineLang, "lang", defaultLang, "word list language code")
	cmd.Flags().IntVar(&engineCacheCapacity, "cache-capacity", defaultCacheCapacity, "suggestion cache bound")
	cmd.Flags().IntVar(&engineMaxSuggestions, "max-suggestions", defaultMaxSuggestions, "suggestions per word")
	cmd.Flags().IntVar(&engineMaxDistance, "max-distance", defaultMaxDistance, "maximum edit distance for fuzzy matches")
	cmd.Flags().IntVar(&engineLearnedCap, "learned-cap", defaultLearnedCap, "maximum learned dictionary keys")
}

func addFilterFlags(cmd *cobra.Command) {
	tuning := gaze.DefaultTuning()
	cmd.Flags().Float64Var(&filterPredictionFactor, "prediction-factor", tuning.PredictionFactor, "fixed extrapolation horizon")
	cmd.Flags().Float64Var(&filterProcessNoise, "process-noise", tuning.ProcessNoise, "filter responsiveness")
	cmd.Flags().Float64Var(&filterMeasurementNoise, "measurement-noise", tuning.MeasurementNoise, "trust in raw samples (lower is more)")
	cmd.Flags().Float64Var(&filterSmoothingFactor, "smoothing-factor", tuning.SmoothingFactor, "extra exponential damping (0-1]")
	cmd.Flags().Float64Var(&filterStabilityThreshold, "stability-threshold", tuning.StabilityThreshold, "variance bound for the stable flag")
	cmd.Flags().IntVar(&filterHistoryCapacity, "history-capacity", tuning.HistoryCapacity, "sample window size")
}

func loadEngineConfig(cmd *cobra.Command) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &engineLang, fileCfg.Engine.Lang)
	applyIntConfig(cmd, "cache-capacity", &engineCacheCapacity, fileCfg.Engine.CacheCapacity)
	applyIntConfig(cmd, "max-suggestions", &engineMaxSuggestions, fileCfg.Engine.MaxSuggestions)
	applyIntConfig(cmd, "max-distance", &engineMaxDistance, fileCfg.Engine.MaxDistance)
	applyIntConfig(cmd, "learned-cap", &engineLearnedCap, fileCfg.Engine.LearnedCap)
	return nil
}

func loadFilterConfig(cmd *cobra.Command) (gaze.Tuning, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return gaze.Tuning{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyFloatConfig(cmd, "prediction-factor", &filterPredictionFactor, fileCfg.Filter.PredictionFactor)
	applyFloatConfig(cmd, "process-noise", &filterProcessNoise, fileCfg.Filter.ProcessNoise)
	applyFloatConfig(cmd, "measurement-noise", &filterMeasurementNoise, fileCfg.Filter.MeasurementNoise)
	applyFloatConfig(cmd, "smoothing-factor", &filterSmoothingFactor, fileCfg.Filter.SmoothingFactor)
	applyFloatConfig(cmd, "stability-threshold", &filterStabilityThreshold, fileCfg.Filter.StabilityThreshold)
	applyIntConfig(cmd, "history-capacity", &filterHistoryCapacity, fileCfg.Filter.HistoryCapacity)

	return gaze.Tuning{
		PredictionFactor:   filterPredictionFactor,
		ProcessNoise:       filterProcessNoise,
		MeasurementNoise:   filterMeasurementNoise,
		SmoothingFactor:    filterSmoothingFactor,
		StabilityThreshold: filterStabilityThreshold,
		HistoryCapacity:    filterHistoryCapacity,
	}, nil
}

// buildEngine assembles the correction engine: word list for the
// configured language plus learned corrections merged from the store.
func buildEngine(ctx context.Context, st *store.Store) (*autocorrect.Engine, error) {
	words, err := loadWordList(engineLang)
	if err != nil {
		return nil, err
	}

	learned := map[string][]string{}
	if st != nil {
		corrections, err := st.ListCorrections(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load learned corrections: %w", err)
		}
		for _, c := range corrections {
			learned[c.Key] = append(learned[c.Key], c.Replacement)
		}
	}

	engine, err := autocorrect.New(autocorrect.Config{
		MaxSuggestions: engineMaxSuggestions,
		MaxDistance:    engineMaxDistance,
		CacheCapacity:  engineCacheCapacity,
		LearnedCap:     engineLearnedCap,
		Words:          words,
		Dictionary:     learned,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}
	return engine, nil
}

func loadWordList(lang string) ([]string, error) {
	path := config.DefaultWordListPath(lang)
	words, err := wordlist.Load(path)
	if err == nil {
		return wordlist.Filter(words, wordlist.FilterForLang(lang)), nil
	}
	if os.IsNotExist(err) && lang == defaultLang {
		return wordlist.Default(), nil
	}
	return nil, fmt.Errorf("failed to load word list for %q (expected at %s): %w", lang, path, err)
}

func openStore() (*store.Store, func(), error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	closeFn := func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}
	return st, closeFn, nil
}

func runDemoCmd(cmd *cobra.Command, _ []string) error {
	if err := loadEngineConfig(cmd); err != nil {
		return err
	}
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	engine, err := buildEngine(cmd.Context(), st)
	if err != nil {
		return err
	}

	program := tea.NewProgram(tui.NewModel(engine, st), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <word>...",
		Short: "Print suggestions for one or more words",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSuggestCmd,
	}
	addEngineFlags(cmd)
	return cmd
}

func runSuggestCmd(cmd *cobra.Command, args []string) error {
	if err := loadEngineConfig(cmd); err != nil {
		return err
	}
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	engine, err := buildEngine(cmd.Context(), st)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, word := range args {
		suggestions := engine.Suggest(word)
		if len(suggestions) == 0 {
			if _, err := fmt.Fprintf(out, "%s: no suggestions\n", word); err != nil {
				return err
			}
			continue
		}
		parts := make([]string, 0, len(suggestions))
		for _, s := range suggestions {
			parts = append(parts, fmt.Sprintf("%s (%.0f%%)", s, engine.Confidence(word, s)*100))
		}
		if _, err := fmt.Fprintf(out, "%s: %s\n", word, strings.Join(parts, ", ")); err != nil {
			return err
		}
	}
	return nil
}

func newLearnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "learn <misspelling> <correction>",
		Short: "Persist a correction for a misspelling",
		Args:  cobra.ExactArgs(2),
		RunE:  runLearnCmd,
	}
}

func runLearnCmd(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(strings.TrimSpace(args[0]))
	replacement := strings.ToLower(strings.TrimSpace(args[1]))
	if key == "" || replacement == "" {
		return fmt.Errorf("misspelling and correction must not be empty")
	}
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := st.InsertCorrection(cmd.Context(), key, replacement, time.Now()); err != nil {
		return fmt.Errorf("failed to store correction: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "learned %s -> %s\n", key, replacement)
	return err
}

func newDictCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dict",
		Short: "List learned corrections",
		Args:  cobra.NoArgs,
		RunE:  runDictCmd,
	}
}

func runDictCmd(cmd *cobra.Command, _ []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	corrections, err := st.ListCorrections(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list corrections: %w", err)
	}
	if len(corrections) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No learned corrections.")
		return err
	}
	for _, c := range corrections {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s)\n",
			c.Key, c.Replacement, c.LearnedAt.Format("2006-01-02")); err != nil {
			return err
		}
	}
	return nil
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <trace.jsonl>",
		Short: "Replay a gaze trace through the smoother and report",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplayCmd,
	}
	addFilterFlags(cmd)
	cmd.Flags().IntVar(&replayWindow, "window", defaultCurveWindow, "moving average window for plots")
	cmd.Flags().IntVar(&replayCalibrate, "calibrate", 0, "derive measurement noise from the first N samples")
	cmd.Flags().BoolVar(&replayJitter, "jitter-filter", false, "apply median jitter reduction before each update")
	cmd.Flags().BoolVar(&replayOutlier, "outlier-filter", false, "apply outlier rejection before each update")
	cmd.Flags().BoolVar(&replaySkipStore, "no-store", false, "do not record the replay in the database")
	return cmd
}

func runReplayCmd(cmd *cobra.Command, args []string) error {
	tuning, err := loadFilterConfig(cmd)
	if err != nil {
		return err
	}
	smoother, err := gaze.NewSmoother(tuning)
	if err != nil {
		return err
	}

	samples, err := trace.Read(args[0])
	if err != nil {
		return fmt.Errorf("failed to read trace: %w", err)
	}

	if replayCalibrate > 0 {
		n := replayCalibrate
		if n > len(samples) {
			n = len(samples)
		}
		batch := make([]model.Vec3, n)
		for i := 0; i < n; i++ {
			batch[i] = samples[i].Position
		}
		smoother.Calibrate(batch)
		logErrf("calibrated measurement noise to %.4f from %d samples\n",
			smoother.Snapshot().MeasurementNoise, n)
	}

	startedAt := time.Now()
	smoothed := make([]model.Vec3, 0, len(samples))
	stable := make([]bool, 0, len(samples))
	for _, s := range samples {
		position := s.Position
		if replayJitter {
			position = smoother.ReduceJitter(position)
		}
		if replayOutlier {
			position = smoother.RejectOutlier(position)
		}
		out := smoother.Update(model.Sample{Position: position, Timestamp: s.Timestamp})
		smoothed = append(smoothed, out)
		stable = append(stable, smoother.IsStable())
	}
	endedAt := time.Now()

	metrics := stats.ComputeReplay(samples, smoothed, stable)
	if err := stats.RenderReplay(cmd.OutOrStdout(), metrics, samples, smoothed, replayWindow, 0); err != nil {
		return err
	}

	if replaySkipStore {
		return nil
	}
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()
	summary := model.ReplaySummary{
		StartedAt:      startedAt,
		EndedAt:        endedAt,
		TracePath:      args[0],
		Samples:        metrics.Samples,
		RMSRaw:         metrics.RMSRaw,
		RMSSmoothed:    metrics.RMSSmoothed,
		StabilityRatio: metrics.StabilityRatio,
		DurationMs:     endedAt.Sub(startedAt).Milliseconds(),
	}
	if _, err := st.InsertReplay(cmd.Context(), summary); err != nil {
		return fmt.Errorf("failed to record replay: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past replay sessions",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "limit to last N replays")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	replays, err := st.ListReplays(cmd.Context(), historyLast)
	if err != nil {
		return fmt.Errorf("failed to list replays: %w", err)
	}
	return stats.RenderHistory(cmd.OutOrStdout(), replays)
}

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Trace utilities",
	}
	cmd.AddCommand(newTraceGenCmd())
	return cmd
}

func newTraceGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a synthetic noisy gaze trace",
		Args:  cobra.NoArgs,
		RunE:  runTraceGenCmd,
	}
	cmd.Flags().StringVar(&genOut, "out", "", "output path (default: XDG trace dir)")
	cmd.Flags().IntVar(&genSamples, "samples", defaultGenSamples, "number of samples")
	cmd.Flags().Float64Var(&genRate, "rate", defaultGenRate, "sample rate in Hz")
	cmd.Flags().Float64Var(&genJitter, "jitter", defaultGenJitter, "gaussian jitter stddev")
	cmd.Flags().Float64Var(&genSpikeChance, "spike-chance", defaultGenSpikePct, "per-sample outlier probability")
	cmd.Flags().Float64Var(&genSpikeScale, "spike-scale", defaultGenSpikeSize, "outlier magnitude")
	cmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed (0 seeds from the clock)")
	return cmd
}

func runTraceGenCmd(cmd *cobra.Command, _ []string) error {
	if genSamples <= 0 {
		return fmt.Errorf("--samples must be greater than 0")
	}
	if genRate <= 0 {
		return fmt.Errorf("--rate must be greater than 0")
	}
	out := genOut
	if out == "" {
		out = filepath.Join(config.DefaultTraceDir(),
			fmt.Sprintf("synthetic-%s.jsonl", time.Now().Format("20060102-150405")))
	}

	cfg := trace.DefaultGenConfig()
	cfg.Samples = genSamples
	cfg.IntervalSec = 1 / genRate
	cfg.Jitter = genJitter
	cfg.SpikeChance = genSpikeChance
	cfg.SpikeScale = genSpikeScale

	samples := trace.New(genSeed).Generate(cfg)
	if err := trace.Write(out, samples); err != nil {
		return fmt.Errorf("failed to write trace: %w", err)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	tuning := gaze.DefaultTuning()
	return fmt.Sprintf(`# gazekit configuration
# Uncomment a value to enable it. CLI flags override config values.

[engine]
# lang = %q                  # Word list language code
# cache-capacity = %d        # Suggestion cache bound
# max-suggestions = %d         # Suggestions per word
# max-distance = %d            # Maximum edit distance for fuzzy matches
# learned-cap = %d          # Maximum learned dictionary keys

[filter]
# prediction-factor = %.2f    # Fixed extrapolation horizon (not dt-scaled)
# process-noise = %.2f        # Filter responsiveness
# measurement-noise = %.2f    # Trust in raw samples (lower is more)
# smoothing-factor = %.2f     # Extra exponential damping (0-1]
# stability-threshold = %.2f  # Variance bound for the stable flag
# history-capacity = %d       # Sample window size
`,
		defaultLang,
		defaultCacheCapacity,
		defaultMaxSuggestions,
		defaultMaxDistance,
		defaultLearnedCap,
		tuning.PredictionFactor,
		tuning.ProcessNoise,
		tuning.MeasurementNoise,
		tuning.SmoothingFactor,
		tuning.StabilityThreshold,
		tuning.HistoryCapacity,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
