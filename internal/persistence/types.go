package persistence

import "time"

// PairRow is one storable alignment row: both languages' text, both spans as
// display strings, the originating files and a global sequence number. The
// secondary side may be empty when no counterpart cleared the matcher
// threshold.
type PairRow struct {
	SeqID         int64
	PrimaryText   string
	SecondaryText string
	PrimaryTime   string // HH:MM:SS,mmm --> HH:MM:SS,mmm
	SecondaryTime string // empty when the pair has no secondary side
	PrimaryFile   string
	SecondaryFile string
	Rating        int
	CreatedAt     time.Time
}
