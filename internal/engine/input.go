package engine

import "unicode/utf8"

// InputKind classifies an edit arriving from the input source.
type InputKind int

// Input kinds.
const (
	InsertText InputKind = iota
	Paste
	DeleteBackward
)

// AcceptInput applies the input boundary rules: paste is always rejected and
// insertion is rejected once the input is as long as the target.
func AcceptInput(kind InputKind, typed, target string) bool {
	switch kind {
	case Paste:
		return false
	case InsertText:
		return utf8.RuneCountInString(typed) < utf8.RuneCountInString(target)
	default:
		return true
	}
}

// Insert appends runes one by one while the boundary rules allow it and
// forwards the resulting input. It reports whether anything changed.
func (s *Session) Insert(runes []rune, paste bool) bool {
	if !s.TypingEnabled() {
		return false
	}
	kind := InsertText
	if paste {
		kind = Paste
	}
	typed := []rune(s.typed)
	target := s.Target()
	changed := false
	for _, r := range runes {
		if !AcceptInput(kind, string(typed), target) {
			break
		}
		typed = append(typed, r)
		changed = true
	}
	if !changed {
		return false
	}
	return s.OnKeystroke(string(typed))
}

// Backspace removes the last typed rune.
func (s *Session) Backspace() bool {
	if !s.TypingEnabled() || s.typed == "" {
		return false
	}
	typed := []rune(s.typed)
	return s.OnKeystroke(string(typed[:len(typed)-1]))
}
