package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilterEnglishASCII(t *testing.T) {
	filter := FilterForLang("en")
	if !filter("hello") {
		t.Fatalf("expected hello to pass english filter")
	}
	for _, word := range []string{"résumé", "naïve", "don’t", "co-op"} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestFilterOtherLangKeepsLetters(t *testing.T) {
	kept := Filter([]string{"été", "l'eau", "nuit", "42"}, FilterForLang("fr"))
	if len(kept) != 2 || kept[0] != "été" || kept[1] != "nuit" {
		t.Fatalf("unexpected filtered words %v", kept)
	}
}

func TestBuiltinPassesEnglishFilter(t *testing.T) {
	if got := Filter(Builtin, FilterForLang("en")); len(got) != len(Builtin) {
		t.Fatalf("builtin words must all be plain lowercase ascii")
	}
}

func TestLoadWordsSkipsCommentsAndBlanks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("# header\nlove\n\n  night  \n"), 0o644); err != nil {
		t.Fatalf("write words: %v", err)
	}
	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("load words: %v", err)
	}
	if len(words) != 2 || words[1] != "night" {
		t.Fatalf("unexpected words %v", words)
	}

	empty := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(empty, []byte("# nothing\n"), 0o644); err != nil {
		t.Fatalf("write words: %v", err)
	}
	if _, err := LoadWords(empty); err == nil {
		t.Fatalf("expected error for empty list")
	}
}
