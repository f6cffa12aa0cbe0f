// Package tui provides the Bubble Tea karaoke typing interface.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/lyritype/internal/engine"
	"github.com/verte-zerg/lyritype/internal/matcher"
	"github.com/verte-zerg/lyritype/internal/model"
	"github.com/verte-zerg/lyritype/internal/player"
)

const defaultTickMs = 50

type tickMsg time.Time

// Model implements the Bubble Tea karaoke UI. It is also the session's
// Display: the session pushes lyric context and highlights into it and
// View draws whatever was pushed last.
type Model struct {
	config model.Config
	title  string
	ctrl   *engine.Controller
	theme  Theme
	keys   keyMap

	help     help.Model
	progress progress.Model
	table    table.Model

	width  int
	height int

	prev     string
	active   string
	next     string
	segments []matcher.Segment
	hasLine  bool

	summary *model.Summary
}

// NewModel builds a model for track played through transport.
func NewModel(track model.Track, cfg model.Config, transport engine.Transport) *Model {
	theme, ok := ThemeByName(cfg.Theme)
	if !ok {
		theme, _ = ThemeByName(DefaultTheme)
	}
	m := &Model{
		config:   cfg,
		title:    track.Title,
		theme:    theme,
		keys:     defaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithSolidFill("#b0c4de"), progress.WithoutPercentage()),
	}
	session := engine.NewSession(track.Lines, engine.Options{
		Tolerance:    cfg.Tolerance,
		CollectStats: cfg.CollectStats,
	}, m)
	m.ctrl = engine.NewController(session, transport)
	return m
}

// Controller exposes the playback controller.
func (m *Model) Controller() *engine.Controller {
	return m.ctrl
}

// Result closes the session, finalizing the line still on screen, and
// returns its summary.
func (m *Model) Result() model.Summary {
	return m.ctrl.Session().OnMediaEnd()
}

// RenderLyricContext implements engine.Display.
func (m *Model) RenderLyricContext(prev, active, next string) {
	m.prev = prev
	m.active = active
	m.next = next
	m.hasLine = true
}

// RenderTypedHighlight implements engine.Display.
func (m *Model) RenderTypedHighlight(segments []matcher.Segment) {
	m.segments = segments
}

// ClearDisplay implements engine.Display.
func (m *Model) ClearDisplay() {
	m.prev, m.active, m.next = "", "", ""
	m.segments = nil
	m.hasLine = false
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	ms := m.config.TickMs
	if ms <= 0 {
		ms = defaultTickMs
	}
	return tea.Tick(time.Duration(ms)*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = m.contentWidth()
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		m.handleTick()
		return m, m.tick()
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleTick() {
	res := m.ctrl.Tick()
	if res.Ended {
		sum := res.Summary
		m.summary = &sum
		m.table = m.buildTable(sum)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}
	if msg.Paste {
		slog.Debug("paste rejected", "runes", len(msg.Runes))
		return nil
	}
	session := m.ctrl.Session()
	switch {
	case key.Matches(msg, m.keys.Restart):
		m.ctrl.Restart()
		m.summary = nil
		return nil
	case key.Matches(msg, m.keys.Toggle):
		m.ctrl.TogglePlay()
		return nil
	case key.Matches(msg, m.keys.Back):
		m.ctrl.SeekBy(-m.seekStep())
		return nil
	case key.Matches(msg, m.keys.Forward):
		m.ctrl.SeekBy(m.seekStep())
		return nil
	}
	if m.summary != nil {
		if key.Matches(msg, m.keys.RowUp) || key.Matches(msg, m.keys.RowDown) {
			m.table, _ = m.table.Update(msg)
		}
		return nil
	}
	if !session.TypingEnabled() {
		if key.Matches(msg, m.keys.Start) {
			m.ctrl.TogglePlay()
		}
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Erase):
		session.Backspace()
		return nil
	case key.Matches(msg, m.keys.Resume):
		// A line starting within the tolerance of 0 is active before playback starts.
		if m.ctrl.Transport().Paused() {
			m.ctrl.TogglePlay()
		}
		return nil
	}
	switch msg.Type {
	case tea.KeySpace:
		session.Insert([]rune{' '}, false)
	case tea.KeyRunes:
		session.Insert(msg.Runes, false)
	}
	return nil
}

func (m *Model) seekStep() float64 {
	if m.config.SeekStep > 0 {
		return m.config.SeekStep
	}
	return 5
}

func (m *Model) contentWidth() int {
	w := int(float64(m.width) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.summary != nil {
		return m.renderSummary()
	}
	content := m.renderLyrics()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + m.renderFooter()
	}
	width := m.contentWidth()
	content = lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(content)
	footer := m.renderFooter()
	if m.height < 4 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 2
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLines := lipgloss.Place(m.width, 2, lipgloss.Center, lipgloss.Bottom, footer)
	return body + "\n" + footerLines
}

func (m *Model) renderLyrics() string {
	if !m.hasLine {
		return m.theme.Idle.Render("♪")
	}
	width := 0
	if m.width > 0 {
		width = m.contentWidth()
	}
	parts := make([]string, 0, 3)
	if m.prev != "" {
		parts = append(parts, m.theme.Context.Render(m.prev))
	}
	parts = append(parts, wrapStyledRunes(buildStyledRunes(m.segments, m.theme), width))
	if m.next != "" {
		parts = append(parts, m.theme.Context.Render(m.next))
	}
	return strings.Join(parts, "\n\n")
}

func (m *Model) renderFooter() string {
	transport := m.ctrl.Transport()
	pos := transport.Position()
	duration := transport.Duration()
	segments := []string{fmt.Sprintf("%s / %s", player.FormatTime(pos), player.FormatTime(duration))}
	if transport.Paused() {
		segments = append(segments, "paused")
	}
	if m.config.CollectStats {
		st := m.ctrl.Session().Stats()
		segments = append(segments, fmt.Sprintf("Accuracy %.1f%%", engine.AccuracyPercent(st.Correct, st.TotalMeaningful)))
	}
	status := m.theme.Footer.Render(strings.Join(segments, "  "))
	percent := 0.0
	if duration > 0 {
		percent = pos / duration
	}
	return m.progress.ViewAs(percent) + "\n" + status
}
