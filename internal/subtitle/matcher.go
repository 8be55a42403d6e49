package subtitle

import "time"

// MatchTracks produces a best-effort correspondence between two tracks using
// temporal overlap with tolerance. Exactly one entry is emitted per primary
// cue; secondary cues with no acceptable primary counterpart do not appear in
// the output. Both tracks are scanned once: the secondary cursor only moves
// forward across primary cues.
//
// On equal scores the first-seen (earliest-starting) candidate wins; the
// tie-break is arbitrary but deterministic.
func MatchTracks(primary, secondary *Track, tolerance time.Duration) []MatchedPair {
	pairs := make([]MatchedPair, 0, len(primary.Cues))
	candidates := secondary.Cues
	cursor := 0

	for _, p := range primary.Cues {
		// Advance past candidates whose tolerance-expanded end precedes the
		// primary's tolerance-expanded start.
		for cursor < len(candidates) && candidates[cursor].End+tolerance < p.Start-tolerance {
			cursor++
		}

		var best *Cue
		bestScore := -1.0
		for j := cursor; j < len(candidates) && candidates[j].Start-tolerance <= p.End+tolerance; j++ {
			c := candidates[j]
			if !spansClose(p, c, tolerance) {
				continue
			}
			if score := overlapScore(p, c, tolerance); score > bestScore {
				bestScore = score
				picked := c
				best = &picked
			}
		}

		pairs = append(pairs, MatchedPair{Primary: p, Secondary: best})
	}

	return pairs
}

// spansClose reports whether two spans, each expanded by the tolerance on
// both ends, are not disjoint.
func spansClose(a, b Cue, tolerance time.Duration) bool {
	return !(a.End+tolerance < b.Start-tolerance || b.End+tolerance < a.Start-tolerance)
}

// overlapScore computes overlap-over-union of the tolerance-expanded spans.
func overlapScore(a, b Cue, tolerance time.Duration) float64 {
	aStart, aEnd := a.Start-tolerance, a.End+tolerance
	bStart, bEnd := b.Start-tolerance, b.End+tolerance

	overlap := min(aEnd, bEnd) - max(aStart, bStart)
	if overlap < 0 {
		overlap = 0
	}
	union := max(aEnd, bEnd) - min(aStart, bStart)
	if union <= 0 {
		return 0
	}
	return float64(overlap) / float64(union)
}
