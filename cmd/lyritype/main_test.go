package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/lyritype/internal/config"
	"github.com/verte-zerg/lyritype/internal/lyrics"
	"github.com/verte-zerg/lyritype/internal/model"
	"github.com/verte-zerg/lyritype/internal/wordlist"
)

func validTestConfig() model.Config {
	return model.Config{
		Tolerance:    defaultTolerance,
		CollectStats: true,
		Theme:        defaultTheme,
		TickMs:       defaultTickMs,
		SeekStep:     defaultSeekStep,
		LeadOut:      defaultLeadOut,
	}
}

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(validTestConfig()); err != nil {
		t.Fatalf("expected defaults to be valid: %v", err)
	}
	bad := []func(*model.Config){
		func(c *model.Config) { c.Tolerance = -1 },
		func(c *model.Config) { c.Theme = "neon" },
		func(c *model.Config) { c.TickMs = 0 },
		func(c *model.Config) { c.SeekStep = 0 },
		func(c *model.Config) { c.LeadOut = -0.5 },
		func(c *model.Config) { c.Tolerance = math.NaN() },
		func(c *model.Config) { c.Tolerance = math.Inf(1) },
		func(c *model.Config) { c.SeekStep = math.NaN() },
		func(c *model.Config) { c.LeadOut = math.Inf(1) },
	}
	for i, mutate := range bad {
		cfg := validTestConfig()
		mutate(&cfg)
		if err := validateConfig(cfg); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestValidateDemoConfig(t *testing.T) {
	good := model.DemoConfig{WordsPerLine: 1, Lines: 1, WPM: 1}
	if err := validateDemoConfig(good); err != nil {
		t.Fatalf("expected valid demo config: %v", err)
	}
	if err := validateDemoConfig(model.DemoConfig{WordsPerLine: 1, Lines: 1, WPM: 1, Gap: -1}); err == nil {
		t.Fatalf("expected negative gap to be rejected")
	}
	if err := validateDemoConfig(model.DemoConfig{WordsPerLine: 1, Lines: 1, WPM: math.NaN()}); err == nil {
		t.Fatalf("expected NaN wpm to be rejected")
	}
}

func TestDefaultConfigTemplateUncommentedDecodes(t *testing.T) {
	var b strings.Builder
	for _, line := range strings.Split(defaultConfigTemplate(), "\n") {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			line = strings.TrimPrefix(line, "# ")
			if idx := strings.Index(line, "  #"); idx >= 0 {
				line = line[:idx]
			}
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("template does not decode: %v\n%s", err, b.String())
	}
	if cfg.Play.Tolerance == nil || *cfg.Play.Tolerance != defaultTolerance {
		t.Fatalf("unexpected tolerance %v", cfg.Play.Tolerance)
	}
	if cfg.Demo.WPM == nil || *cfg.Demo.WPM != defaultWPM {
		t.Fatalf("unexpected wpm %v", cfg.Demo.WPM)
	}
	var raw map[string]any
	if _, err := toml.Decode(b.String(), &raw); err != nil {
		t.Fatalf("decode raw: %v", err)
	}
	if _, ok := raw["log"]; !ok {
		t.Fatalf("expected [log] section")
	}
}

func TestLoadDemoWordsFallsBackToBuiltin(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	words, err := loadDemoWords("", "en")
	if err != nil {
		t.Fatalf("load demo words: %v", err)
	}
	if len(words) != len(wordlist.Builtin) {
		t.Fatalf("expected builtin words, got %d", len(words))
	}
	if _, err := loadDemoWords(filepath.Join(t.TempDir(), "missing.txt"), "en"); err == nil {
		t.Fatalf("expected error for explicit missing word list")
	}
}

func TestLoadDemoWordsFiltersByLang(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("love\nrésumé\nnight\n"), 0o644); err != nil {
		t.Fatalf("write words: %v", err)
	}
	words, err := loadDemoWords(path, "en")
	if err != nil {
		t.Fatalf("load demo words: %v", err)
	}
	if len(words) != 2 || words[0] != "love" || words[1] != "night" {
		t.Fatalf("unexpected words %v", words)
	}
}

func TestReportCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.srt")
	srt := "1\n00:00:01,000 --> 00:00:02,500\nHello there\n\n2\n00:00:03,000 --> 00:00:04,000\nGeneral Kenobi\n"
	if err := os.WriteFile(path, []byte(srt), 0o644); err != nil {
		t.Fatalf("write track: %v", err)
	}
	var buf bytes.Buffer
	if err := reportCheck(&buf, path, func() (lyrics.LoadResult, error) { return lyrics.LoadFile(path) }); err != nil {
		t.Fatalf("check: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Title: song", "Lines: 2", "Duration: 4.00s", "Meaningful chars: 23"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"play", "demo", "import", "tracks", "remove", "check", "config"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Fatalf("missing %s command", name)
		}
	}
}
