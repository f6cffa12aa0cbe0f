package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/lyritype/internal/model"
	"github.com/verte-zerg/lyritype/internal/stats"
)

const maxTableHeight = 12

func (m *Model) buildTable(sum model.Summary) table.Model {
	rows := stats.LineRows(sum.Lines, m.ctrl.Session().Lines())
	columns := make([]table.Column, len(stats.LineHeaders))
	for i, header := range stats.LineHeaders {
		width := runewidth.StringWidth(header)
		for _, row := range rows {
			if w := runewidth.StringWidth(row[i]); w > width {
				width = w
			}
		}
		columns[i] = table.Column{Title: header, Width: width}
	}
	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}
	height := len(rows) + 1
	if height > maxTableHeight {
		height = maxTableHeight
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(m.theme.Title.GetForeground()).Bold(true)
	styles.Selected = styles.Selected.Foreground(m.theme.Matched.GetForeground()).Bold(true)
	t.SetStyles(styles)
	return t
}

func (m *Model) renderSummary() string {
	sum := *m.summary
	var b strings.Builder
	title := "Summary"
	if m.title != "" {
		title = "Summary: " + m.title
	}
	b.WriteString(m.theme.Title.Render(title))
	b.WriteString("\n\n")
	if m.config.CollectStats {
		b.WriteString(fmt.Sprintf("Accuracy %.1f%%  Correct %d / %d  Missed %d\n\n",
			sum.AccuracyPercent, sum.Correct, sum.TotalMeaningful, sum.Missed))
		if len(sum.Lines) > 0 {
			b.WriteString(m.table.View())
		} else {
			b.WriteString(m.theme.Footer.Render("No lines were typed."))
		}
	} else {
		b.WriteString(m.theme.Footer.Render("Statistics collection is off."))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	content := b.String()
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
