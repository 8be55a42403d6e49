package service

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/subreverse/subreverse/internal/persistence"
	"github.com/subreverse/subreverse/internal/subtitle"
)

// AlignResult carries one pair's alignment output: both cleaned tracks and
// the best-effort temporal join between them.
type AlignResult struct {
	Primary   *subtitle.Track
	Secondary *subtitle.Track
	Pairs     []subtitle.MatchedPair
}

// AlignPair runs the ingestion pipeline on two raw subtitle files: parse,
// merge consecutive duplicates, match by temporal overlap. Pure — the caller
// owns all I/O.
func AlignPair(primaryData, secondaryData []byte, primaryPath, secondaryPath string, tolerance time.Duration) (*AlignResult, error) {
	primary, err := subtitle.Parse(primaryData, primaryPath)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", primaryPath, err)
	}
	secondary, err := subtitle.Parse(secondaryData, secondaryPath)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", secondaryPath, err)
	}

	primary.Cues = subtitle.MergeConsecutiveDuplicates(primary.Cues)
	secondary.Cues = subtitle.MergeConsecutiveDuplicates(secondary.Cues)

	return &AlignResult{
		Primary:   primary,
		Secondary: secondary,
		Pairs:     subtitle.MatchTracks(primary, secondary, tolerance),
	}, nil
}

// SynchronizePair runs the strict reconciliation pipeline: parse, merge
// consecutive duplicates, then rewrite both tracks to congruent segmentation.
// The returned count is the number of containment violations still present
// after the iteration cap; zero means the synchronizer converged.
func SynchronizePair(primaryData, secondaryData []byte, primaryPath, secondaryPath string) (*subtitle.Track, *subtitle.Track, int, error) {
	primary, err := subtitle.Parse(primaryData, primaryPath)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("parse %s: %w", primaryPath, err)
	}
	secondary, err := subtitle.Parse(secondaryData, secondaryPath)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("parse %s: %w", secondaryPath, err)
	}

	primary.Cues = subtitle.MergeConsecutiveDuplicates(primary.Cues)
	secondary.Cues = subtitle.MergeConsecutiveDuplicates(secondary.Cues)

	outPrimary, outSecondary, violations := subtitle.Synchronize(primary, secondary)
	return outPrimary, outSecondary, violations, nil
}

// buildPairRows maps an alignment result into storable rows, numbering them
// from startSeq. Spans become display strings; a missing secondary side
// leaves its columns empty.
func buildPairRows(result *AlignResult, startSeq int64) []persistence.PairRow {
	primaryFile := filepath.Base(result.Primary.Path)
	secondaryFile := filepath.Base(result.Secondary.Path)

	rows := make([]persistence.PairRow, 0, len(result.Pairs))
	for i, pair := range result.Pairs {
		row := persistence.PairRow{
			SeqID:         startSeq + int64(i),
			PrimaryText:   pair.Primary.Text,
			PrimaryTime:   pair.Primary.TimeString(),
			PrimaryFile:   primaryFile,
			SecondaryFile: secondaryFile,
		}
		if pair.Secondary != nil {
			row.SecondaryText = pair.Secondary.Text
			row.SecondaryTime = pair.Secondary.TimeString()
		}
		rows = append(rows, row)
	}
	return rows
}
