package tui

import (
	"testing"

	"github.com/verte-zerg/lyritype/internal/model"
	"github.com/verte-zerg/lyritype/internal/player"
)

func TestThemeLookup(t *testing.T) {
	names := ThemeNames()
	if len(names) != 2 || names[0] != "classic" || names[1] != "mono" {
		t.Fatalf("unexpected themes %v", names)
	}
	if _, ok := ThemeByName("neon"); ok {
		t.Fatalf("expected unknown theme to be rejected")
	}
	if th, ok := ThemeByName(DefaultTheme); !ok || th.Name != DefaultTheme {
		t.Fatalf("expected default theme to exist")
	}
}

func TestUnknownThemeFallsBackToDefault(t *testing.T) {
	cfg := model.Config{Theme: "neon", Tolerance: model.DefaultTolerance}
	m := NewModel(model.Track{}, cfg, player.NewClock(1))
	if m.theme.Name != DefaultTheme {
		t.Fatalf("expected %s theme, got %s", DefaultTheme, m.theme.Name)
	}
}
