package subtitle

// maxSyncRounds bounds the merge iteration. A safety valve, not a proven
// termination bound: callers must check the returned violation count rather
// than assume convergence.
const maxSyncRounds = 10

// Synchronize rewrites two tracks into a mutually consistent pair where no
// run of cues on one side is subsumed by a single cue on the other. Each
// round merges, on both sides, every run of two or more consecutive cues
// fully contained in one opposite-side cue; rounds repeat until a fixed point
// or the round cap. Returns the rewritten tracks, renumbered from 1, and the
// number of containment violations still present.
func Synchronize(a, b *Track) (*Track, *Track, int) {
	aCues := append([]Cue(nil), a.Cues...)
	bCues := append([]Cue(nil), b.Cues...)

	for round := 0; round < maxSyncRounds; round++ {
		var bChanged, aChanged bool
		bCues, bChanged = absorbContainedRuns(bCues, aCues)
		aCues, aChanged = absorbContainedRuns(aCues, bCues)
		if !bChanged && !aChanged {
			break
		}
	}

	for i := range aCues {
		aCues[i].Index = i + 1
	}
	for i := range bCues {
		bCues[i].Index = i + 1
	}

	violations := countContainedRuns(aCues, bCues) + countContainedRuns(bCues, aCues)

	outA := &Track{Cues: aCues, Language: a.Language, Format: a.Format, Path: a.Path, Stats: a.Stats}
	outB := &Track{Cues: bCues, Language: b.Language, Format: b.Format, Path: b.Path, Stats: b.Stats}
	return outA, outB, violations
}

// absorbContainedRuns walks cues in order; whenever two or more consecutive
// cues are fully contained in the same cue of other, they are replaced by one
// synthetic cue carrying the containing cue's span and the space-joined text.
// A single contained cue with no contained sibling passes through unchanged.
func absorbContainedRuns(cues, other []Cue) ([]Cue, bool) {
	out := make([]Cue, 0, len(cues))
	changed := false

	i := 0
	for i < len(cues) {
		host, ok := findContaining(other, cues[i])
		if !ok {
			out = append(out, cues[i])
			i++
			continue
		}

		text := cues[i].Text
		j := i + 1
		for j < len(cues) && spanContains(host, cues[j]) {
			text += " " + cues[j].Text
			j++
		}

		if j > i+1 {
			changed = true
			out = append(out, Cue{Start: host.Start, End: host.End, Text: text})
		} else {
			out = append(out, cues[i])
		}
		i = j
	}

	return out, changed
}

// findContaining linearly scans other for a cue whose span fully contains
// cue's span. Tracks are small per file, so linear is fine.
func findContaining(other []Cue, cue Cue) (Cue, bool) {
	for _, candidate := range other {
		if spanContains(candidate, cue) {
			return candidate, true
		}
	}
	return Cue{}, false
}

// spanContains reports whether outer's span fully contains inner's span.
func spanContains(outer, inner Cue) bool {
	return outer.Start <= inner.Start && inner.End <= outer.End
}

// countContainedRuns counts adjacent cue pairs in cues that are both
// contained in the same cue of other — the violations Synchronize exists to
// remove.
func countContainedRuns(cues, other []Cue) int {
	violations := 0
	for i := 0; i+1 < len(cues); i++ {
		for _, host := range other {
			if spanContains(host, cues[i]) && spanContains(host, cues[i+1]) {
				violations++
				break
			}
		}
	}
	return violations
}
