package repeats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_TripleRepeat(t *testing.T) {
	d := NewDetector(5, "**")

	repeats := d.Detect([]string{"we", "need", "to", "to", "to", "finish"})
	require.Len(t, repeats, 1)

	r := repeats[0]
	assert.Equal(t, "to", r.Word)
	assert.Equal(t, 3, r.RepeatCount)
	assert.Equal(t, 2, r.Position)
	assert.Equal(t, "we need **to** **to** **to** finish", r.Context)
	assert.Equal(t, 2, ExtraOccurrences(repeats))
}

func TestDetect_DoubleRepeat(t *testing.T) {
	d := NewDetector(5, "**")

	repeats := d.Detect([]string{"she", "was", "happy", "happy", "today"})
	require.Len(t, repeats, 1)
	assert.Equal(t, "happy", repeats[0].Word)
	assert.Equal(t, 2, repeats[0].RepeatCount)
	assert.Equal(t, 1, ExtraOccurrences(repeats))
}

func TestDetect_FillerMarkersNeverStartRuns(t *testing.T) {
	d := NewDetector(5, "**")

	// "you you", "know know", "i i" are hedging, not meaningful repeats
	assert.Empty(t, d.Detect([]string{"you", "you", "know", "know"}))
	assert.Empty(t, d.Detect([]string{"i", "i", "am", "fine"}))
	assert.Empty(t, d.Detect([]string{"well", "well", "then"}))
}

func TestDetect_MultipleRuns(t *testing.T) {
	d := NewDetector(5, "**")

	repeats := d.Detect([]string{"the", "the", "dog", "ran", "ran", "away"})
	require.Len(t, repeats, 2)
	assert.Equal(t, "the", repeats[0].Word)
	assert.Equal(t, 0, repeats[0].Position)
	assert.Equal(t, "ran", repeats[1].Word)
	assert.Equal(t, 3, repeats[1].Position)
	assert.Equal(t, 2, ExtraOccurrences(repeats))
}

// The token after a detected run is not re-examined as a new run start.
func TestDetect_AdvancesPastRun(t *testing.T) {
	d := NewDetector(5, "**")

	repeats := d.Detect([]string{"go", "go", "go", "go"})
	require.Len(t, repeats, 1)
	assert.Equal(t, 4, repeats[0].RepeatCount)
}

func TestDetect_ContextClampedAtBoundaries(t *testing.T) {
	d := NewDetector(5, "**")

	repeats := d.Detect([]string{"no", "no"})
	require.Len(t, repeats, 1)
	assert.Equal(t, "**no** **no**", repeats[0].Context)
}

func TestDetect_ContextWindowRadius(t *testing.T) {
	d := NewDetector(2, ">>")

	words := []string{"a", "b", "c", "d", "stop", "stop", "e", "f", "g", "h"}
	repeats := d.Detect(words)
	require.Len(t, repeats, 1)
	assert.Equal(t, "c d >>stop>> >>stop>> e f", repeats[0].Context)
}

func TestDetect_ShortInput(t *testing.T) {
	d := NewDetector(5, "**")
	assert.Empty(t, d.Detect(nil))
	assert.Empty(t, d.Detect([]string{"single"}))
}

// Sum of (count-1) over all runs equals the extra occurrences reported for
// the turn.
func TestExtraOccurrences_Invariant(t *testing.T) {
	d := NewDetector(5, "**")

	words := []string{"the", "the", "cat", "sat", "sat", "sat", "down", "down"}
	repeats := d.Detect(words)

	total := 0
	for _, r := range repeats {
		total += r.RepeatCount - 1
	}
	assert.Equal(t, total, ExtraOccurrences(repeats))
	assert.Equal(t, 4, total)
}
