package disfluency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcript-processor/pkg/models"
)

func TestDetect_FilledPauses(t *testing.T) {
	instances := Detect("Um, I uh think so, er maybe", models.SpeakerPLWD)
	require.Len(t, instances, 3)

	assert.Equal(t, "Um", instances[0].Token)
	assert.Equal(t, "uh", instances[1].Token)
	assert.Equal(t, "er", instances[2].Token)

	for _, inst := range instances {
		assert.Equal(t, TypeFilledPause, inst.Type)
		assert.Equal(t, models.SpeakerPLWD, inst.Speaker)
	}
}

func TestDetect_CasingPreserved(t *testing.T) {
	instances := Detect("UM yes UMM no Hmm", models.SpeakerCaregiver)
	require.Len(t, instances, 3)
	assert.Equal(t, "UM", instances[0].Token)
	assert.Equal(t, "UMM", instances[1].Token)
	assert.Equal(t, "Hmm", instances[2].Token)
}

func TestDetect_WordBoundaries(t *testing.T) {
	// "umbrella" and "herd" must not trigger on embedded um/er
	instances := Detect("the umbrella by the herd", models.SpeakerCaregiver)
	assert.Empty(t, instances)
}

func TestDetect_NoMatches(t *testing.T) {
	assert.Empty(t, Detect("perfectly fluent speech", models.SpeakerPLWD))
	assert.Empty(t, Detect("", models.SpeakerPLWD))
}

func TestIsFilledPause(t *testing.T) {
	assert.True(t, IsFilledPause("um"))
	assert.True(t, IsFilledPause("UM"))
	assert.True(t, IsFilledPause("Mhm"))
	assert.False(t, IsFilledPause("umbrella"))
	assert.False(t, IsFilledPause("yes"))
}
