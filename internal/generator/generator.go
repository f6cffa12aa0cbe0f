// Package generator synthesizes timed practice tracks from a word list.
package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/lyritype/internal/model"
)

const (
	// leadIn is the silence before the first line, in seconds.
	leadIn = 2.0
	// charsPerWord converts words per minute to characters per second.
	charsPerWord = 5.0
)

// Generator produces randomized practice lines.
type Generator struct {
	rnd      *rand.Rand
	capsPct  float64
	punctPct float64
	punctSet []rune
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{
		rnd:      rand.New(rand.NewSource(seed)),
		capsPct:  1,
		punctPct: 0.5,
		punctSet: []rune(",.!?"),
	}
}

// Line builds one lyric-like line: a capitalized first word and, sometimes,
// trailing punctuation.
func (g *Generator) Line(words []string, count int) string {
	picked := make([]string, 0, count)
	for i := 0; i < count; i++ {
		picked = append(picked, words[g.rnd.Intn(len(words))])
	}
	if len(picked) == 0 {
		return ""
	}
	picked[0] = applyCaps(g.rnd, picked[0], g.capsPct)
	last := len(picked) - 1
	picked[last] = applyPunct(g.rnd, picked[last], g.punctPct, g.punctSet)
	return strings.Join(picked, " ")
}

// Track builds a practice track. Each line stays active for as long as it
// takes to type it at cfg.WPM, followed by cfg.Gap seconds of silence.
func (g *Generator) Track(words []string, cfg model.DemoConfig) (model.Track, error) {
	if len(words) == 0 {
		return model.Track{}, fmt.Errorf("word list is empty")
	}
	if cfg.Lines <= 0 || cfg.WordsPerLine <= 0 {
		return model.Track{}, fmt.Errorf("lines and words per line must be > 0")
	}
	if cfg.WPM <= 0 {
		return model.Track{}, fmt.Errorf("wpm must be > 0")
	}
	charsPerSecond := cfg.WPM * charsPerWord / 60
	track := model.Track{
		Title:  fmt.Sprintf("Practice (%d lines @ %.0f wpm)", cfg.Lines, cfg.WPM),
		Source: "generated",
		Lines:  make([]model.TimedLine, 0, cfg.Lines),
	}
	start := leadIn
	for i := 0; i < cfg.Lines; i++ {
		text := g.Line(words, cfg.WordsPerLine)
		length := float64(len([]rune(text))) / charsPerSecond
		track.Lines = append(track.Lines, model.TimedLine{Text: text, Start: start, End: start + length})
		start += length + cfg.Gap
	}
	return track, nil
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}
