package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"
)

// WriteTrack serializes a track in the SRT dialect: numeric index line 1..N,
// time line, text line(s), blank-line separator with no trailing blank line
// after the last block. Cues whose text is empty are skipped — a blank text
// line would be dropped as a malformed block on re-read — and ordinals are
// recomputed over the emitted blocks.
func WriteTrack(w io.Writer, track *Track) error {
	if track == nil {
		return fmt.Errorf("subtitle: nil track")
	}

	writer := bufio.NewWriter(w)
	emitted := 0
	for _, cue := range track.Cues {
		if cue.Text == "" {
			continue
		}
		if emitted > 0 {
			fmt.Fprintln(writer)
		}
		emitted++
		fmt.Fprintf(writer, "%d\n", emitted)
		fmt.Fprintf(writer, "%s --> %s\n", FormatTimestamp(cue.Start), FormatTimestamp(cue.End))
		fmt.Fprintf(writer, "%s\n", cue.Text)
	}
	return writer.Flush()
}

// WriteFile writes a track to the given path in the SRT dialect.
func WriteFile(path string, track *Track) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	return WriteTrack(file, track)
}

// FormatTimestamp renders a duration as HH:MM:SS,mmm via zero-padded integer
// division. Negative durations clamp to zero.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	milliseconds := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, milliseconds)
}
