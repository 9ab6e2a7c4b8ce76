package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractParticipantID(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"uppercase tag", "VR014_c: hello there", "vr014"},
		{"lowercase tag", "some header\nvr021_p: hi", "vr021"},
		{"x variant", "vrx7_c: good morning", "vrx7"},
		{"mixed case", "Vr103 session one", "vr103"},
		{"first match wins", "vr001_c: hi vr002_p: hi", "vr001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ExtractParticipantID(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestExtractParticipantID_NotFound(t *testing.T) {
	_, err := ExtractParticipantID("a transcript with no identifier at all")
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestExtractParticipantID_EmptyDocument(t *testing.T) {
	for _, text := range []string{"", "   \n\t  "} {
		_, err := ExtractParticipantID(text)
		assert.ErrorIs(t, err, ErrEmptyDocument)
	}
}
