package subtitle

import "time"

// Cue represents a single timed text unit from a subtitle track.
type Cue struct {
	Index int           // display-only sequence number, recomputed on emission
	Start time.Duration // span start
	End   time.Duration // span end
	Text  string        // normalized text
}

// TimeString returns the cue's span in SRT display format.
func (c Cue) TimeString() string {
	return FormatTimestamp(c.Start) + " --> " + FormatTimestamp(c.End)
}

// ParseStats counts blocks the parser dropped. Structural skips and content
// filters are diagnostics, not errors.
type ParseStats struct {
	SkippedBlocks int // blocks without a valid time line
	MusicBlocks   int // blocks containing a music marker
	SingleGlyphs  int // blocks with a single character after tag stripping
}

// Track is an ordered sequence of cues, kept in file order. Cue numbering is
// author-controlled and may be non-monotonic in malformed files; downstream
// matching treats the track as ordered-as-given.
type Track struct {
	Cues     []Cue
	Language string // ISO 639-1 code detected from cue text, "" if unknown
	Format   string // e.g. SRT
	Path     string
	Stats    ParseStats
}

// MatchedPair pairs a primary cue with its best secondary counterpart.
// Secondary is nil when no candidate cleared the overlap tolerance.
type MatchedPair struct {
	Primary   Cue
	Secondary *Cue
}
