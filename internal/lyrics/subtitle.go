package lyrics

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/lyritype/internal/model"
)

const cueArrow = "-->"

// ParseSubtitles reads SRT or WebVTT cues. Multi-line cue text is joined with
// a single space. Cues that cannot be parsed are skipped and returned as
// warnings together with the successfully parsed lines.
func ParseSubtitles(r io.Reader, format Format) ([]model.TimedLine, []error, error) {
	raw, err := readLines(r)
	if err != nil {
		return nil, nil, err
	}
	isVTT := format == FormatVTT
	if len(raw) > 0 && strings.HasPrefix(strings.TrimSpace(raw[0]), "WEBVTT") {
		isVTT = true
	}

	var (
		lines    []model.TimedLine
		warnings []error
	)
	i := 0
	if isVTT {
		for i < len(raw) && !strings.Contains(raw[i], cueArrow) {
			i++
		}
	}
	for i < len(raw) {
		if strings.TrimSpace(raw[i]) == "" || !strings.Contains(raw[i], cueArrow) {
			// Blank lines, SRT counters, VTT cue identifiers and NOTE bodies.
			i++
			continue
		}
		timingLine := i + 1
		start, end, terr := parseTiming(raw[i])
		i++
		var text []string
		for i < len(raw) && strings.TrimSpace(raw[i]) != "" {
			text = append(text, strings.TrimSpace(raw[i]))
			i++
		}
		if terr != nil {
			warnings = append(warnings, fmt.Errorf("line %d: %w", timingLine, terr))
			continue
		}
		joined := cleanCueText(strings.Join(text, " "))
		if joined == "" {
			continue
		}
		lines = append(lines, model.TimedLine{Text: joined, Start: start, End: end})
	}
	return lines, warnings, nil
}

func readLines(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if first {
			line = strings.TrimPrefix(line, "\uFEFF")
			first = false
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subtitles: %w", err)
	}
	return out, nil
}

func parseTiming(line string) (float64, float64, error) {
	startStr, rest, ok := strings.Cut(line, cueArrow)
	if !ok {
		return 0, 0, fmt.Errorf("missing %q in timing line", cueArrow)
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return 0, 0, fmt.Errorf("missing end timestamp")
	}
	start, err := ParseTimestamp(startStr)
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseTimestamp(fields[0])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// ParseTimestamp converts "HH:MM:SS,mmm", "HH:MM:SS.mmm" or "MM:SS.mmm" to seconds.
func ParseTimestamp(s string) (float64, error) {
	s = strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}
	hours := 0
	if len(parts) == 3 {
		h, err := strconv.Atoi(parts[0])
		if err != nil || h < 0 {
			return 0, fmt.Errorf("invalid hours in timestamp %q", s)
		}
		hours = h
	}
	minutes, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("invalid minutes in timestamp %q", s)
	}
	secPart := parts[len(parts)-1]
	if secPart == "" || strings.Trim(secPart, "0123456789.") != "" {
		return 0, fmt.Errorf("invalid seconds in timestamp %q", s)
	}
	seconds, err := strconv.ParseFloat(secPart, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in timestamp %q", s)
	}
	return float64(hours*3600+minutes*60) + seconds, nil
}

// cleanCueText strips inline markup such as <i> or YouTube's <00:00:01.000><c>
// word timing tags and decodes HTML entities.
func cleanCueText(s string) string {
	var b, tag strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<' && !inTag:
			inTag = true
			tag.Reset()
		case r == '>' && inTag:
			inTag = false
		case inTag:
			tag.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	if inTag {
		// Unterminated "<" is literal text ("I <3 you").
		b.WriteRune('<')
		b.WriteString(tag.String())
	}
	return strings.Join(strings.Fields(html.UnescapeString(b.String())), " ")
}
