package subtitle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynchronizeMergesContainedRun(t *testing.T) {
	a := track(Cue{Start: 0, End: 5 * time.Second, Text: "One long line"})
	b := track(
		Cue{Start: 0, End: 2 * time.Second, Text: "One"},
		Cue{Start: 2 * time.Second, End: 5 * time.Second, Text: "long line"},
	)

	outA, outB, violations := Synchronize(a, b)

	require.Len(t, outB.Cues, 1)
	assert.Equal(t, "One long line", outB.Cues[0].Text)
	assert.Equal(t, time.Duration(0), outB.Cues[0].Start)
	assert.Equal(t, 5*time.Second, outB.Cues[0].End)

	require.Len(t, outA.Cues, 1)
	assert.Equal(t, "One long line", outA.Cues[0].Text)

	assert.Zero(t, violations)
}

func TestSynchronizeBothDirections(t *testing.T) {
	a := track(
		Cue{Start: 0, End: 4 * time.Second, Text: "first sentence"},
		Cue{Start: 5 * time.Second, End: 6 * time.Second, Text: "short"},
		Cue{Start: 6 * time.Second, End: 7 * time.Second, Text: "pieces"},
	)
	b := track(
		Cue{Start: 0, End: 2 * time.Second, Text: "piece one"},
		Cue{Start: 2 * time.Second, End: 4 * time.Second, Text: "piece two"},
		Cue{Start: 5 * time.Second, End: 7 * time.Second, Text: "whole"},
	)

	outA, outB, violations := Synchronize(a, b)

	// B's first two cues collapse into A's container; A's last two collapse
	// into B's container.
	require.Len(t, outB.Cues, 2)
	assert.Equal(t, "piece one piece two", outB.Cues[0].Text)
	require.Len(t, outA.Cues, 2)
	assert.Equal(t, "short pieces", outA.Cues[1].Text)
	assert.Equal(t, 5*time.Second, outA.Cues[1].Start)
	assert.Equal(t, 7*time.Second, outA.Cues[1].End)

	assert.Zero(t, violations)
}

func TestSynchronizeNoContainmentIsIdentity(t *testing.T) {
	a := track(
		Cue{Start: 0, End: 2 * time.Second, Text: "a1"},
		Cue{Start: 3 * time.Second, End: 5 * time.Second, Text: "a2"},
	)
	b := track(
		Cue{Start: time.Second, End: 4 * time.Second, Text: "b1"},
	)

	outA, outB, violations := Synchronize(a, b)

	assert.Equal(t, a.Cues[0].Text, outA.Cues[0].Text)
	assert.Equal(t, a.Cues[0].Start, outA.Cues[0].Start)
	require.Len(t, outA.Cues, 2)
	require.Len(t, outB.Cues, 1)
	assert.Zero(t, violations)
}

func TestSynchronizeFixedPoint(t *testing.T) {
	a := track(
		Cue{Start: 0, End: 10 * time.Second, Text: "container"},
		Cue{Start: 11 * time.Second, End: 12 * time.Second, Text: "tail"},
	)
	b := track(
		Cue{Start: 0, End: 3 * time.Second, Text: "one"},
		Cue{Start: 3 * time.Second, End: 6 * time.Second, Text: "two"},
		Cue{Start: 6 * time.Second, End: 10 * time.Second, Text: "three"},
		Cue{Start: 11 * time.Second, End: 12 * time.Second, Text: "tail too"},
	)

	outA, outB, violations := Synchronize(a, b)
	assert.Zero(t, violations)

	againA, againB, againViolations := Synchronize(outA, outB)
	assert.Zero(t, againViolations)
	assert.Equal(t, outA.Cues, againA.Cues)
	assert.Equal(t, outB.Cues, againB.Cues)
}

func TestSynchronizeRenumbersFromOne(t *testing.T) {
	a := track(
		Cue{Index: 9, Start: 0, End: time.Second, Text: "x"},
		Cue{Index: 4, Start: 2 * time.Second, End: 3 * time.Second, Text: "y"},
	)
	b := track(Cue{Index: 7, Start: 0, End: time.Second, Text: "z"})

	outA, outB, _ := Synchronize(a, b)
	for i, cue := range outA.Cues {
		assert.Equal(t, i+1, cue.Index)
	}
	for i, cue := range outB.Cues {
		assert.Equal(t, i+1, cue.Index)
	}
}

func TestSynchronizeEmptyTracks(t *testing.T) {
	outA, outB, violations := Synchronize(track(), track())
	assert.Empty(t, outA.Cues)
	assert.Empty(t, outB.Cues)
	assert.Zero(t, violations)
}
