package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/lyritype/internal/config"
	"github.com/verte-zerg/lyritype/internal/generator"
	"github.com/verte-zerg/lyritype/internal/lyrics"
	"github.com/verte-zerg/lyritype/internal/model"
	"github.com/verte-zerg/lyritype/internal/player"
	"github.com/verte-zerg/lyritype/internal/stats"
	"github.com/verte-zerg/lyritype/internal/store"
	"github.com/verte-zerg/lyritype/internal/tui"
	"github.com/verte-zerg/lyritype/internal/wordlist"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play <file|track>",
		Short: "Play a track file or a library track",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlayCmd,
	}
	addPlayFlags(cmd)
	return cmd
}

func runPlayCmd(cmd *cobra.Command, args []string) error {
	cfg, err := playConfig(cmd)
	if err != nil {
		return err
	}
	track, err := resolveTrack(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return playTrack(cmd.OutOrStdout(), track, cfg)
}

// resolveTrack loads ref as a file when one exists at that path and looks
// it up in the library otherwise.
func resolveTrack(ctx context.Context, ref string) (model.Track, error) {
	if _, err := os.Stat(ref); err == nil {
		res, err := lyrics.LoadFile(ref)
		if err != nil {
			return model.Track{}, fmt.Errorf("failed to load %s: %w", ref, err)
		}
		for _, warn := range res.Warnings {
			slog.Warn("skipped cue", "file", ref, "err", warn)
		}
		return res.Track, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return model.Track{}, fmt.Errorf("failed to stat %s: %w", ref, err)
	}

	st, err := store.Open(config.DefaultLibraryPath())
	if err != nil {
		return model.Track{}, fmt.Errorf("failed to open library: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close library: %v\n", cerr)
		}
	}()
	track, err := st.GetTrack(ctx, ref)
	if err != nil {
		return model.Track{}, fmt.Errorf("failed to load track %q: %w", ref, err)
	}
	return track, nil
}

func playTrack(out io.Writer, track model.Track, cfg model.Config) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("play needs an interactive terminal")
	}
	clock := player.NewClock(track.Duration() + cfg.LeadOut)
	slog.Info("session started",
		"title", track.Title,
		"lines", len(track.Lines),
		"duration", clock.Duration(),
		"collect_stats", cfg.CollectStats)

	m := tui.NewModel(track, cfg, clock)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if !cfg.CollectStats {
		return nil
	}
	sum := m.Result()
	if err := stats.RenderSummary(out, sum, len(track.Lines)); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if err := stats.RenderLineTable(out, sum.Lines, track.Lines); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Generate a timed practice track and play it",
		Args:  cobra.NoArgs,
		RunE:  runDemoCmd,
	}
	addPlayFlags(cmd)
	cmd.Flags().IntVar(&demoWordsPerLine, "words-per-line", defaultWordsPerLine, "words per generated line")
	cmd.Flags().IntVar(&demoLines, "lines", defaultDemoLines, "number of generated lines")
	cmd.Flags().Float64Var(&demoWPM, "wpm", defaultWPM, "typing speed the line timing is based on")
	cmd.Flags().Float64Var(&demoGap, "gap", defaultGap, "silence between lines in seconds")
	cmd.Flags().StringVar(&demoWordsFile, "words-file", "", "word list, one word per line")
	cmd.Flags().StringVar(&demoLang, "lang", "en", "language of the word list, used to filter words")
	cmd.Flags().BoolVar(&demoSave, "save", false, "store the generated track in the library")
	return cmd
}

func runDemoCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := playConfig(cmd)
	if err != nil {
		return err
	}
	demoCfg, err := demoConfig(cmd)
	if err != nil {
		return err
	}
	words, err := loadDemoWords(demoWordsFile, demoLang)
	if err != nil {
		return err
	}
	track, err := generator.New().Track(words, demoCfg)
	if err != nil {
		return fmt.Errorf("failed to generate track: %w", err)
	}
	if demoSave {
		if err := saveTrack(cmd.Context(), cmd.OutOrStdout(), track); err != nil {
			return err
		}
	}
	return playTrack(cmd.OutOrStdout(), track, cfg)
}

func demoConfig(cmd *cobra.Command) (model.DemoConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.DemoConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "words-per-line", &demoWordsPerLine, fileCfg.Demo.WordsPerLine)
	applyIntConfig(cmd, "lines", &demoLines, fileCfg.Demo.Lines)
	applyFloatConfig(cmd, "wpm", &demoWPM, fileCfg.Demo.WPM)
	applyFloatConfig(cmd, "gap", &demoGap, fileCfg.Demo.Gap)
	cfg := model.DemoConfig{
		WordsPerLine: demoWordsPerLine,
		Lines:        demoLines,
		WPM:          demoWPM,
		Gap:          demoGap,
	}
	if err := validateDemoConfig(cfg); err != nil {
		return model.DemoConfig{}, err
	}
	return cfg, nil
}

// loadDemoWords reads the explicit word list, then the default one in the
// config directory, and falls back to the built-in list.
func loadDemoWords(path, lang string) ([]string, error) {
	explicit := path != ""
	if !explicit {
		path = config.DefaultWordListPath()
	}
	words, err := wordlist.LoadWords(path)
	if err != nil {
		if explicit {
			return nil, fmt.Errorf("failed to load word list: %w", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			logErrf("ignoring word list %s: %v\n", path, err)
		}
		return wordlist.Builtin, nil
	}
	filtered := wordlist.Filter(words, wordlist.FilterForLang(lang))
	if len(filtered) == 0 {
		return nil, fmt.Errorf("word list %s has no usable %s words", path, lang)
	}
	return filtered, nil
}
