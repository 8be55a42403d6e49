package subtitle

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ErrUndecodable is returned when no supported byte encoding could interpret
// the input. It distinguishes "empty because undecodable" from "empty because
// truly empty"; the returned track is still usable.
var ErrUndecodable = errors.New("subtitle: no supported encoding could decode input")

// SRT time line: 00:02:16,612 --> 00:02:19,376
var timeLinePattern = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2}),(\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2}),(\d{3})\s*$`)

var blankLinePattern = regexp.MustCompile(`\n\s*\n`)

// Fallback encodings tried in order when the input is not valid UTF-8.
// Single-byte decoders replace undecodable bytes rather than erroring.
var fallbackEncodings = []encoding.Encoding{
	charmap.ISO8859_1, // latin1
	charmap.Windows1252,
}

// Parse turns raw file bytes into a Track. Malformed blocks are skipped, not
// fatal; content-filtered blocks (music markers, single glyphs) are dropped
// before normalization. The only reported error is ErrUndecodable, and even
// then an empty track is returned.
func Parse(data []byte, path string) (*Track, error) {
	track := &Track{Format: "SRT", Path: path}

	if len(data) == 0 {
		return track, nil
	}

	content, err := decodeBytes(data)
	if err != nil {
		return track, err
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	blocks := blankLinePattern.Split(strings.TrimSpace(content), -1)

	for _, block := range blocks {
		cue, ok := parseBlock(block, &track.Stats)
		if !ok {
			continue
		}
		cue.Index = len(track.Cues) + 1 // provisional, renumbered on emission
		track.Cues = append(track.Cues, cue)
	}

	track.Language = detectLanguage(track.Cues)
	return track, nil
}

// parseBlock parses one blank-line-delimited block: an optional all-digit
// index line (discarded — ordinals are recomputed downstream), a required
// time line, and one or more text lines.
func parseBlock(block string, stats *ParseStats) (Cue, bool) {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	pos := 0
	if pos < len(lines) && isAllDigits(lines[pos]) {
		pos++
	}

	if pos >= len(lines) {
		stats.SkippedBlocks++
		return Cue{}, false
	}

	start, end, ok := parseTimeLine(lines[pos])
	if !ok {
		stats.SkippedBlocks++
		return Cue{}, false
	}
	pos++

	if pos >= len(lines) {
		stats.SkippedBlocks++
		return Cue{}, false
	}

	// Filtering decisions look at the pre-normalization text: normalization
	// would collapse the information they depend on.
	raw := strings.Join(lines[pos:], "\n")
	if ContainsMusicMarker(raw) {
		stats.MusicBlocks++
		return Cue{}, false
	}
	if IsSingleGlyphAfterTagStrip(raw) {
		stats.SingleGlyphs++
		return Cue{}, false
	}

	return Cue{Start: start, End: end, Text: Normalize(raw)}, true
}

func parseTimeLine(line string) (start, end time.Duration, ok bool) {
	matches := timeLinePattern.FindStringSubmatch(line)
	if len(matches) != 9 {
		return 0, 0, false
	}

	start, ok = componentsToDuration(matches[1], matches[2], matches[3], matches[4])
	if !ok {
		return 0, 0, false
	}
	end, ok = componentsToDuration(matches[5], matches[6], matches[7], matches[8])
	if !ok {
		return 0, 0, false
	}
	return start, end, true
}

func componentsToDuration(hours, minutes, seconds, milliseconds string) (time.Duration, bool) {
	h, err := strconv.Atoi(hours)
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, false
	}
	s, err := strconv.Atoi(seconds)
	if err != nil {
		return 0, false
	}
	ms, err := strconv.Atoi(milliseconds)
	if err != nil {
		return 0, false
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, true
}

// decodeBytes attempts UTF-8 first, then the single-byte fallbacks in order.
func decodeBytes(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	for _, enc := range fallbackEncodings {
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		return string(decoded), nil
	}

	return "", ErrUndecodable
}

func isAllDigits(line string) bool {
	if line == "" {
		return false
	}
	for _, r := range line {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// detectLanguage picks the majority language across cue texts.
func detectLanguage(cues []Cue) string {
	if len(cues) == 0 {
		return ""
	}

	langMap := make(map[string]int)
	for _, cue := range cues {
		lang := whatlanggo.DetectLang(cue.Text).Iso6391()
		if lang == "" {
			continue
		}
		langMap[lang]++
	}

	var topLang string
	var topCount int
	for lang, count := range langMap {
		if count > topCount {
			topLang = lang
			topCount = count
		}
	}
	return topLang
}
