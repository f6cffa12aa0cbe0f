// Package main provides the CLI entrypoint for lyritype.
package main

import (
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/lyritype/internal/config"
	"github.com/verte-zerg/lyritype/internal/logging"
	"github.com/verte-zerg/lyritype/internal/model"
	"github.com/verte-zerg/lyritype/internal/tui"
)

const (
	defaultTolerance    = model.DefaultTolerance
	defaultCollectStats = true
	defaultTheme        = tui.DefaultTheme
	defaultTickMs       = 50
	defaultSeekStep     = 5.0
	defaultLeadOut      = 2.0

	defaultWordsPerLine = 6
	defaultDemoLines    = 12
	defaultWPM          = 40.0
	defaultGap          = 1.5

	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

var (
	playTolerance    float64
	playCollectStats bool
	playTheme        string
	playTickMs       int
	playSeekStep     float64
	playLeadOut      float64

	demoWordsPerLine int
	demoLines        int
	demoWPM          float64
	demoGap          float64
	demoWordsFile    string
	demoLang         string
	demoSave         bool

	importTitle string
	checkWatch  bool

	logLevel  string
	logFormat string
	logFile   string

	closeLog = func() error { return nil }
)

func main() {
	rootCmd := newRootCmd()
	err := rootCmd.Execute()
	if cerr := closeLog(); cerr != nil {
		logErrf("failed to close log: %v\n", cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "lyritype",
		Short:             "Type the lyrics while the song plays",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setupLogging,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", defaultLogFormat, "log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", config.DefaultLogPath(), "log file path (- for stderr)")

	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newTracksCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-format", &logFormat, fileCfg.Log.Format)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	closeFn, err := logging.Setup(logging.Config{Level: logLevel, Format: logFormat, FilePath: logFile})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	closeLog = closeFn
	return nil
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&playTolerance, "tolerance", defaultTolerance, "seconds added to both ends of every line window")
	cmd.Flags().BoolVar(&playCollectStats, "collect-stats", defaultCollectStats, "collect accuracy statistics")
	cmd.Flags().StringVar(&playTheme, "theme", defaultTheme, fmt.Sprintf("color theme (%s)", strings.Join(tui.ThemeNames(), ", ")))
	cmd.Flags().IntVar(&playTickMs, "tick-ms", defaultTickMs, "playback position polling interval in milliseconds")
	cmd.Flags().Float64Var(&playSeekStep, "seek-step", defaultSeekStep, "seconds skipped by left/right")
	cmd.Flags().Float64Var(&playLeadOut, "lead-out", defaultLeadOut, "seconds of playback after the last line")
}

func playConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyFloatConfig(cmd, "tolerance", &playTolerance, fileCfg.Play.Tolerance)
	applyBoolConfig(cmd, "collect-stats", &playCollectStats, fileCfg.Play.CollectStats)
	applyStringConfig(cmd, "theme", &playTheme, fileCfg.Play.Theme)
	applyIntConfig(cmd, "tick-ms", &playTickMs, fileCfg.Play.TickMs)
	applyFloatConfig(cmd, "seek-step", &playSeekStep, fileCfg.Play.SeekStep)
	applyFloatConfig(cmd, "lead-out", &playLeadOut, fileCfg.Play.LeadOut)

	cfg := model.Config{
		Tolerance:    playTolerance,
		CollectStats: playCollectStats,
		Theme:        playTheme,
		TickMs:       playTickMs,
		SeekStep:     playSeekStep,
		LeadOut:      playLeadOut,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		// A broken config file must still be editable.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE:              runConfigCmd,
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

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# lyritype configuration
# Uncomment a value to enable it. CLI flags override config values.

[play]
# tolerance = %.1f          # Seconds added to both ends of every line window
# collect-stats = %t     # Collect accuracy statistics
# theme = %q         # Color theme (%s)
# tick-ms = %d             # Playback polling interval in milliseconds
# seek-step = %.1f          # Seconds skipped by left/right
# lead-out = %.1f           # Seconds of playback after the last line

[demo]
# words-per-line = %d       # Words per generated line
# lines = %d               # Number of generated lines
# wpm = %.1f              # Typing speed the line timing is based on
# gap = %.1f                # Silence between lines in seconds

[log]
# level = %q           # debug, info, warn, error
# format = %q          # text or json
# file = %q
`,
		defaultTolerance,
		defaultCollectStats,
		defaultTheme,
		strings.Join(tui.ThemeNames(), ", "),
		defaultTickMs,
		defaultSeekStep,
		defaultLeadOut,
		defaultWordsPerLine,
		defaultDemoLines,
		defaultWPM,
		defaultGap,
		defaultLogLevel,
		defaultLogFormat,
		config.DefaultLogPath(),
	)
}

func validateConfig(cfg model.Config) error {
	if !finite(cfg.Tolerance) || cfg.Tolerance < 0 {
		return fmt.Errorf("--tolerance must be a finite number >= 0")
	}
	if _, ok := tui.ThemeByName(cfg.Theme); !ok {
		return fmt.Errorf("--theme must be one of: %s", strings.Join(tui.ThemeNames(), ", "))
	}
	if cfg.TickMs <= 0 {
		return fmt.Errorf("--tick-ms must be > 0")
	}
	if !finite(cfg.SeekStep) || cfg.SeekStep <= 0 {
		return fmt.Errorf("--seek-step must be > 0")
	}
	if !finite(cfg.LeadOut) || cfg.LeadOut < 0 {
		return fmt.Errorf("--lead-out must be >= 0")
	}
	return nil
}

func validateDemoConfig(cfg model.DemoConfig) error {
	if cfg.WordsPerLine <= 0 {
		return fmt.Errorf("--words-per-line must be > 0")
	}
	if cfg.Lines <= 0 {
		return fmt.Errorf("--lines must be > 0")
	}
	if !finite(cfg.WPM) || cfg.WPM <= 0 {
		return fmt.Errorf("--wpm must be > 0")
	}
	if !finite(cfg.Gap) || cfg.Gap < 0 {
		return fmt.Errorf("--gap must be >= 0")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
