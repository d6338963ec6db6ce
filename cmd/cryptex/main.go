// Package main provides the CLI entrypoint for cryptex.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/cryptex/internal/audio"
	"github.com/verte-zerg/cryptex/internal/config"
	"github.com/verte-zerg/cryptex/internal/generator"
	"github.com/verte-zerg/cryptex/internal/gesture"
	"github.com/verte-zerg/cryptex/internal/model"
	"github.com/verte-zerg/cryptex/internal/puzzle"
	"github.com/verte-zerg/cryptex/internal/reveal"
	"github.com/verte-zerg/cryptex/internal/stats"
	"github.com/verte-zerg/cryptex/internal/statsui"
	"github.com/verte-zerg/cryptex/internal/store"
	"github.com/verte-zerg/cryptex/internal/symbols"
	"github.com/verte-zerg/cryptex/internal/tui"
)

const (
	defaultCellWidth  = 8.0
	defaultCellHeight = 16.0
	defaultVolume     = 0.6
	debugEnv          = "CRYPTEX_DEBUG"
)

var (
	playAlphabet      string
	playCode          string
	playAlphabetFile  string
	playStart         string
	playDragThreshold float64
	playTapWindow     int
	playTapDistance   float64
	playCooldown      int
	playCellWidth     float64
	playCellHeight    float64
	playRevealDelay   int
	playMute          bool
	playVolume        float64

	statsSince string
	statsLast  int
	statsPlain bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	th := gesture.DefaultThresholds()
	rootCmd := &cobra.Command{
		Use:           "cryptex",
		Short:         "Terminal cryptex puzzle",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playAlphabet, "alphabet", strings.Join(puzzle.DefaultSymbols, ","), "comma separated dial symbols")
	rootCmd.Flags().StringVar(&playCode, "code", strings.Join(puzzle.DefaultCode, ","), "comma separated secret code, one symbol per dial")
	rootCmd.Flags().StringVar(&playAlphabetFile, "alphabet-file", "", "file with one symbol per line (overrides --alphabet)")
	rootCmd.Flags().StringVar(&playStart, "start", "", "comma separated start positions, one per dial")
	rootCmd.Flags().Float64Var(&playDragThreshold, "drag-threshold", th.DragPx, "pixels of motion per axis that start a drag")
	rootCmd.Flags().IntVar(&playTapWindow, "tap-window", int(th.TapWindowMs), "max tap duration in ms")
	rootCmd.Flags().Float64Var(&playTapDistance, "tap-distance", th.TapDistancePx, "max tap travel in pixels")
	rootCmd.Flags().IntVar(&playCooldown, "cooldown", puzzle.DefaultCooldownMs, "minimum ms between dial advances")
	rootCmd.Flags().Float64Var(&playCellWidth, "cell-width", defaultCellWidth, "pixels per terminal column")
	rootCmd.Flags().Float64Var(&playCellHeight, "cell-height", defaultCellHeight, "pixels per terminal row")
	rootCmd.Flags().IntVar(&playRevealDelay, "reveal-delay", reveal.DefaultDelayMs, "ms between unlock and the reveal")
	rootCmd.Flags().BoolVar(&playMute, "mute", false, "disable sound cues")
	rootCmd.Flags().Float64Var(&playVolume, "volume", defaultVolume, "cue volume (0-1)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	alphabetList := symbols.Split(playAlphabet)
	codeList := symbols.Split(playCode)
	applyListConfig(cmd, "alphabet", &alphabetList, fileCfg.Puzzle.Alphabet)
	applyListConfig(cmd, "code", &codeList, fileCfg.Puzzle.Code)
	applyAlphabetFileConfig(cmd, &playAlphabetFile, fileCfg.Puzzle.AlphabetFile)
	applyFloatConfig(cmd, "drag-threshold", &playDragThreshold, fileCfg.Input.DragThreshold)
	applyIntConfig(cmd, "tap-window", &playTapWindow, fileCfg.Input.TapWindowMs)
	applyFloatConfig(cmd, "tap-distance", &playTapDistance, fileCfg.Input.TapDistance)
	applyIntConfig(cmd, "cooldown", &playCooldown, fileCfg.Input.CooldownMs)
	applyFloatConfig(cmd, "cell-width", &playCellWidth, fileCfg.Input.CellWidth)
	applyFloatConfig(cmd, "cell-height", &playCellHeight, fileCfg.Input.CellHeight)
	applyIntConfig(cmd, "reveal-delay", &playRevealDelay, fileCfg.Reveal.DelayMs)
	applyBoolConfig(cmd, "mute", &playMute, fileCfg.Audio.Mute)
	applyFloatConfig(cmd, "volume", &playVolume, fileCfg.Audio.Volume)

	if playAlphabetFile != "" {
		loaded, err := symbols.Load(playAlphabetFile)
		if err != nil {
			return fmt.Errorf("failed to load alphabet file: %w", err)
		}
		alphabetList = loaded
	}
	start, err := parseStart(playStart)
	if err != nil {
		return err
	}

	cfg := model.Config{
		Alphabet:      alphabetList,
		Code:          codeList,
		AlphabetFile:  playAlphabetFile,
		Start:         start,
		DragThreshold: playDragThreshold,
		TapWindowMs:   playTapWindow,
		TapDistance:   playTapDistance,
		CooldownMs:    playCooldown,
		CellWidth:     playCellWidth,
		CellHeight:    playCellHeight,
		RevealDelayMs: playRevealDelay,
		Mute:          playMute,
		Volume:        playVolume,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	code, dials, err := buildPuzzle(cfg)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	sounds := audio.NewSoundManager(cfg.Volume, cfg.Mute)
	if err := sounds.Initialize(); err != nil {
		logErrf("sound disabled: %v\n", err)
	}
	defer sounds.Cleanup()

	opts := sessionOptions(cfg)
	scene := tui.NewScene(cfg.Alphabet, code.Len(), cfg.CellWidth, cfg.CellHeight, opts.Progress)
	session, err := puzzle.NewSession(code, dials, scene, sounds, opts)
	if err != nil {
		return fmt.Errorf("failed to start puzzle: %w", err)
	}
	log.Printf("session started: %d dials, %d symbols, sound %v", code.Len(), len(cfg.Alphabet), sounds.Enabled())

	m := tui.NewModel(cfg, st, session, scene)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func buildPuzzle(cfg model.Config) (puzzle.Code, *puzzle.Registry, error) {
	alphabet, err := puzzle.NewAlphabet(cfg.Alphabet)
	if err != nil {
		return puzzle.Code{}, nil, fmt.Errorf("failed to build alphabet: %w", err)
	}
	code, err := puzzle.NewCode(alphabet, cfg.Code)
	if err != nil {
		return puzzle.Code{}, nil, fmt.Errorf("failed to build code: %w", err)
	}
	var dials *puzzle.Registry
	if len(cfg.Start) > 0 {
		dials, err = puzzle.NewRegistryAt(alphabet, code, cfg.Start)
	} else {
		dials, err = puzzle.NewRegistry(alphabet, code, generator.New())
	}
	if err != nil {
		return puzzle.Code{}, nil, fmt.Errorf("failed to place dials: %w", err)
	}
	return code, dials, nil
}

func sessionOptions(cfg model.Config) puzzle.Options {
	opts := puzzle.DefaultOptions()
	opts.Thresholds.DragPx = cfg.DragThreshold
	opts.Thresholds.TapWindowMs = int64(cfg.TapWindowMs)
	opts.Thresholds.TapDistancePx = cfg.TapDistance
	opts.CooldownMs = int64(cfg.CooldownMs)
	opts.RevealDelayMs = int64(cfg.RevealDelayMs)
	return opts
}

// setupLogging sends the standard logger to a file while the TUI owns the
// terminal, or discards it when debugging is off.
func setupLogging() (func(), error) {
	if os.Getenv(debugEnv) == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	path := config.DefaultLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := tea.LogToFile(path, "cryptex")
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	return func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close for the debug log.
			_ = cerr
		}
	}, nil
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
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show solve history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N runs")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	cfg := model.StatsConfig{Since: sinceTime, Last: statsLast}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain || !stats.IsTerminal(os.Stdout) {
		return writePlainStats(cmd.Context(), cmd.OutOrStdout(), st, cfg)
	}

	m := statsui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func writePlainStats(ctx context.Context, w io.Writer, st *store.Store, cfg model.StatsConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	report, err := stats.BuildReport(ctx, st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	if err := stats.RenderSummary(w, report.Runs, stats.PlainOptions(w)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderRunTable(w, report.Runs, time.Now()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyListConfig(cmd *cobra.Command, name string, target, value *[]string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
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

// applyAlphabetFileConfig applies the file's alphabet-file unless either
// alphabet flag was given on the command line.
func applyAlphabetFileConfig(cmd *cobra.Command, target, value *string) {
	if cmd.Flags().Changed("alphabet") {
		return
	}
	applyStringConfig(cmd, "alphabet-file", target, value)
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

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func parseStart(raw string) ([]int, error) {
	parts := symbols.Split(raw)
	if len(parts) == 0 {
		return nil, nil
	}
	out := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid --start value %q: %w", part, err)
		}
		out[i] = v
	}
	return out, nil
}

func defaultConfigTemplate() string {
	th := gesture.DefaultThresholds()
	return fmt.Sprintf(`# cryptex configuration
# Uncomment a value to enable it. CLI flags override config values.

[puzzle]
# alphabet = [%s]
# code = [%s]
# alphabet-file = ""          # One symbol per line, overrides alphabet

[input]
# drag-threshold = %.1f       # Pixels per axis before a press becomes a drag
# tap-window-ms = %d          # Max tap duration
# tap-distance = %.1f         # Max tap travel in pixels
# cooldown-ms = %d            # Minimum time between dial advances
# cell-width = %.1f           # Pixels per terminal column
# cell-height = %.1f          # Pixels per terminal row

[reveal]
# delay-ms = %d               # Pause between unlock and the reveal

[audio]
# mute = false
# volume = %.1f
`,
		quoteList(puzzle.DefaultSymbols),
		quoteList(puzzle.DefaultCode),
		th.DragPx,
		th.TapWindowMs,
		th.TapDistancePx,
		puzzle.DefaultCooldownMs,
		defaultCellWidth,
		defaultCellHeight,
		reveal.DefaultDelayMs,
		defaultVolume,
	)
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = strconv.Quote(item)
	}
	return strings.Join(quoted, ", ")
}

func validateConfig(cfg model.Config) error {
	if cfg.DragThreshold < 0 {
		return fmt.Errorf("--drag-threshold must be >= 0")
	}
	if cfg.TapWindowMs <= 0 {
		return fmt.Errorf("--tap-window must be > 0")
	}
	if cfg.TapDistance <= 0 {
		return fmt.Errorf("--tap-distance must be > 0")
	}
	if cfg.CooldownMs <= 0 {
		return fmt.Errorf("--cooldown must be > 0")
	}
	if cfg.CellWidth <= 0 || cfg.CellHeight <= 0 {
		return fmt.Errorf("--cell-width and --cell-height must be > 0")
	}
	if cfg.RevealDelayMs < 0 {
		return fmt.Errorf("--reveal-delay must be >= 0")
	}
	if cfg.Volume < 0 || cfg.Volume > 1 {
		return fmt.Errorf("--volume must be between 0 and 1")
	}
	for _, sym := range cfg.Alphabet {
		if !symbols.Valid(sym) {
			return fmt.Errorf("alphabet symbol %q must be non-empty without whitespace", sym)
		}
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
