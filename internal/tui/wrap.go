package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/lyritype/internal/matcher"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes styles the active line. Matched characters use the
// matched style; the word holding the next unmatched meaningful character is
// underlined.
func buildStyledRunes(segments []matcher.Segment, theme Theme) []styledRune {
	chars := make([]rune, len(segments))
	for i, seg := range segments {
		chars[i] = seg.Char
	}
	words := findWords(chars)
	currentWord := wordForCursor(words, nextPending(segments))

	out := make([]styledRune, 0, len(segments))
	for i, seg := range segments {
		style := theme.Faint
		switch {
		case seg.Class == matcher.Matched:
			style = theme.Matched
		case currentWord != nil && i >= currentWord.start && i < currentWord.end:
			style = theme.Current
		}
		out = append(out, styledRune{
			s:       style.Render(string(seg.Char)),
			width:   runewidth.RuneWidth(seg.Char),
			isSpace: seg.Char == ' ',
		})
	}
	return out
}

// nextPending returns the index of the first unmatched meaningful character
// after the last match, or -1 when everything is matched.
func nextPending(segments []matcher.Segment) int {
	start := 0
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i].Class == matcher.Matched {
			start = i + 1
			break
		}
	}
	for i := start; i < len(segments); i++ {
		if matcher.IsMeaningful(segments[i].Char) {
			return i
		}
	}
	return -1
}

type wordRange struct {
	start int
	end   int
}

func findWords(chars []rune) []wordRange {
	words := []wordRange{}
	start := -1
	for i, r := range chars {
		if r == ' ' {
			if start != -1 {
				words = append(words, wordRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(chars)})
	}
	return words
}

func wordForCursor(words []wordRange, cursorIndex int) *wordRange {
	if cursorIndex < 0 {
		return nil
	}
	for i, w := range words {
		if cursorIndex >= w.start && cursorIndex < w.end {
			return &words[i]
		}
	}
	return nil
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
