// Package wordlist loads word lists for practice tracks.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Builtin is used when no word list file is available.
var Builtin = []string{
	"love", "night", "heart", "fire", "dream", "baby", "light", "dance", "world", "time",
	"never", "forever", "tonight", "little", "home", "road", "sky", "rain", "sun", "star",
	"hold", "feel", "know", "want", "need", "run", "fly", "fall", "stay", "sing",
	"shadow", "river", "ocean", "summer", "winter", "golden", "wild", "young", "free", "alone",
}

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}
