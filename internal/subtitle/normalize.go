package subtitle

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Dash classes include the raw UTF-8 bytes of en/em dashes read through a
// latin1 decoder ("â€“", "â€”"), which show up in mis-labelled files.
var (
	tagPattern          = regexp.MustCompile(`<[^>]+>`)
	parenPattern        = regexp.MustCompile(`\([^)]*\)`)
	bracketPattern      = regexp.MustCompile(`\[[^\]]*\]`)
	bracePattern        = regexp.MustCompile(`\{[^}]*\}`)
	whitespacePattern   = regexp.MustCompile(`\s+`)
	leadingDashPattern  = regexp.MustCompile(`^(?:[-–—â€“”]+\s*)+`)
	trailingDashPattern = regexp.MustCompile(`(?:\s*[-–—â€“”]+)+$`)
)

// Normalize cleans raw cue text: markup tags, one level of bracketed content
// per delimiter class, whitespace runs, and leading/trailing dashes. Tags are
// stripped before brackets since tags may wrap bracketed text. Total and
// idempotent.
func Normalize(raw string) string {
	text := tagPattern.ReplaceAllString(raw, "")

	text = parenPattern.ReplaceAllString(text, "")
	text = bracketPattern.ReplaceAllString(text, "")
	text = bracePattern.ReplaceAllString(text, "")

	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))

	text = leadingDashPattern.ReplaceAllString(text, "")
	text = trailingDashPattern.ReplaceAllString(text, "")

	return strings.TrimSpace(text)
}

// ContainsMusicMarker reports whether the text carries a musical-note glyph,
// either proper or in its latin1-as-utf8 mojibake form.
func ContainsMusicMarker(text string) bool {
	return strings.Contains(text, "♪") || strings.Contains(text, "â™ª")
}

// IsSingleGlyphAfterTagStrip strips markup tags only (not brackets) and
// reports whether exactly one character remains.
func IsSingleGlyphAfterTagStrip(text string) bool {
	stripped := strings.TrimSpace(tagPattern.ReplaceAllString(text, ""))
	return utf8.RuneCountInString(stripped) == 1
}

// MergeConsecutiveDuplicates collapses runs of cues whose normalized text is
// identical, extending the run's end time to the last duplicate's end.
// Output cues are renumbered sequentially from 1; adjacent outputs never
// share normalized text.
func MergeConsecutiveDuplicates(cues []Cue) []Cue {
	if len(cues) == 0 {
		return nil
	}

	merged := make([]Cue, 0, len(cues))
	current := cues[0]
	currentText := Normalize(current.Text)

	for _, cue := range cues[1:] {
		text := Normalize(cue.Text)
		if text == currentText {
			current.End = cue.End
			continue
		}
		merged = append(merged, current)
		current = cue
		currentText = text
	}
	merged = append(merged, current)

	for i := range merged {
		merged[i].Index = i + 1
	}
	return merged
}
