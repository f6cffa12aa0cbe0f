package lyrics

import (
	"sort"

	"github.com/verte-zerg/lyritype/internal/matcher"
	"github.com/verte-zerg/lyritype/internal/model"
)

// SortByStart orders lines by start time, keeping the file order of equal starts.
func SortByStart(lines []model.TimedLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Start < lines[j].Start
	})
}

// TotalMeaningful sums the meaningful characters over all lines.
func TotalMeaningful(lines []model.TimedLine) int {
	total := 0
	for _, l := range lines {
		total += matcher.CountMeaningful(l.Text)
	}
	return total
}

// Context returns the texts around line i. Missing neighbours are empty.
func Context(lines []model.TimedLine, i int) (prev, active, next string) {
	if i < 0 || i >= len(lines) {
		return "", "", ""
	}
	if i > 0 {
		prev = lines[i-1].Text
	}
	if i < len(lines)-1 {
		next = lines[i+1].Text
	}
	return prev, lines[i].Text, next
}
