package lyrics

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/lyritype/internal/model"
)

// Format identifies a track file encoding.
type Format string

// Supported track formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
)

var (
	// ErrNoLines is returned when a track contains no usable lines.
	ErrNoLines = errors.New("track has no lyric lines")
	// ErrUnknownFormat is returned when the format cannot be determined.
	ErrUnknownFormat = errors.New("unknown track format")
)

// LoadResult is a parsed track plus non-fatal parse warnings.
type LoadResult struct {
	Track    model.Track
	Format   Format
	Warnings []error
}

// LoadFile reads and validates a track file. The format is taken from the
// extension and sniffed from the content when the extension is unknown.
func LoadFile(path string) (LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("failed to read track: %w", err)
	}
	format, err := DetectFormat(path, data)
	if err != nil {
		return LoadResult{}, err
	}
	res, err := Parse(bytes.NewReader(data), format)
	if err != nil {
		return LoadResult{}, err
	}
	if res.Track.Title == "" {
		base := filepath.Base(path)
		res.Track.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	res.Track.Source = path
	return res, nil
}

// DetectFormat picks a Format from the file extension, falling back to the content.
func DetectFormat(path string, data []byte) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".srt":
		return FormatSRT, nil
	case ".vtt":
		return FormatVTT, nil
	}
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	switch {
	case bytes.HasPrefix(trimmed, []byte("WEBVTT")):
		return FormatVTT, nil
	case bytes.HasPrefix(trimmed, []byte("[")), bytes.HasPrefix(trimmed, []byte("{")):
		return FormatJSON, nil
	case bytes.Contains(trimmed, []byte(cueArrow)):
		return FormatSRT, nil
	case bytes.HasPrefix(trimmed, []byte("lines:")), bytes.HasPrefix(trimmed, []byte("title:")), bytes.HasPrefix(trimmed, []byte("- text:")):
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Parse decodes a track in the given format and validates it.
func Parse(r io.Reader, format Format) (LoadResult, error) {
	res := LoadResult{Format: format}
	switch format {
	case FormatSRT, FormatVTT:
		lines, warnings, err := ParseSubtitles(r, format)
		if err != nil {
			return LoadResult{}, err
		}
		SortByStart(lines)
		res.Track.Lines = lines
		res.Warnings = warnings
	case FormatJSON, FormatYAML:
		data, err := io.ReadAll(r)
		if err != nil {
			return LoadResult{}, fmt.Errorf("failed to read track: %w", err)
		}
		track, err := decodeStructured(data, format)
		if err != nil {
			return LoadResult{}, err
		}
		res.Track = track
	default:
		return LoadResult{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err := Validate(res.Track.Lines); err != nil {
		return LoadResult{}, err
	}
	return res, nil
}

// decodeStructured accepts either a bare list of lines or a track object.
func decodeStructured(data []byte, format Format) (model.Track, error) {
	var track model.Track
	if format == FormatJSON {
		trimmed := bytes.TrimSpace(data)
		if bytes.HasPrefix(trimmed, []byte("[")) {
			if err := json.Unmarshal(trimmed, &track.Lines); err != nil {
				return model.Track{}, fmt.Errorf("failed to decode json track: %w", err)
			}
			return track, nil
		}
		if err := json.Unmarshal(trimmed, &track); err != nil {
			return model.Track{}, fmt.Errorf("failed to decode json track: %w", err)
		}
		return track, nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return model.Track{}, fmt.Errorf("failed to decode yaml track: %w", err)
	}
	if len(node.Content) == 0 {
		return model.Track{}, ErrNoLines
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		if err := root.Decode(&track.Lines); err != nil {
			return model.Track{}, fmt.Errorf("failed to decode yaml track: %w", err)
		}
		return track, nil
	}
	if err := root.Decode(&track); err != nil {
		return model.Track{}, fmt.Errorf("failed to decode yaml track: %w", err)
	}
	return track, nil
}

// Validate checks the input data contract: at least one line, non-empty
// text, non-negative start, end not before start, starts non-decreasing.
func Validate(lines []model.TimedLine) error {
	if len(lines) == 0 {
		return ErrNoLines
	}
	var errs []error
	for i, l := range lines {
		n := i + 1
		if strings.TrimSpace(l.Text) == "" {
			errs = append(errs, fmt.Errorf("line %d: empty text", n))
		}
		if !finite(l.Start) || !finite(l.End) {
			errs = append(errs, fmt.Errorf("line %d: non-finite time (start %v, end %v)", n, l.Start, l.End))
			continue
		}
		if l.Start < 0 {
			errs = append(errs, fmt.Errorf("line %d: negative start %.2f", n, l.Start))
		}
		if l.End < l.Start {
			errs = append(errs, fmt.Errorf("line %d: end %.2f before start %.2f", n, l.End, l.Start))
		}
		if i > 0 && finite(lines[i-1].Start) && l.Start < lines[i-1].Start {
			errs = append(errs, fmt.Errorf("line %d: start %.2f before previous start %.2f", n, l.Start, lines[i-1].Start))
		}
	}
	return errors.Join(errs...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
