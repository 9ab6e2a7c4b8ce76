package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"transcript-processor/pkg/disfluency"
)

func TestCountWords_ExcludesBracketsAndFillers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"plain", "How are you", 3},
		{"question mark kept on token", "How are you?", 3},
		{"bracketed span removed", "I am fine [laughs]", 3},
		{"filler dropped", "Um I uh think so", 3},
		{"filler case-insensitive", "UM I think", 2},
		{"only brackets", "[long pause]", 0},
		{"empty", "", 0},
		{"nested content removed whole", "well [points at the screen] yes", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountWords(tt.text))
		})
	}
}

// Clean count never exceeds the raw whitespace token count, and equals it
// only when the turn has no brackets and no fillers.
func TestCountWords_ExclusionInvariant(t *testing.T) {
	texts := []string{
		"How are you today",
		"Um I uh think so",
		"I am fine [laughs]",
		"well [pause] um right",
		"",
	}

	for _, text := range texts {
		raw := len(strings.Fields(text))
		clean := CountWords(text)
		assert.LessOrEqual(t, clean, raw, text)

		hasFiller := false
		for _, w := range strings.Fields(text) {
			if disfluency.IsFilledPause(w) {
				hasFiller = true
			}
		}
		if !strings.Contains(text, "[") && !hasFiller {
			assert.Equal(t, raw, clean, text)
		}
	}
}

func TestCountSentences(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"One. Two! Three?", 3},
		{"Trailing off...", 1},
		{"No terminator", 1},
		{"", 0},
		{"   ", 0},
		{"Wait... what? Really?!", 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CountSentences(tt.text), tt.text)
	}
}

func TestCountQuestions_RawMarkCount(t *testing.T) {
	assert.Equal(t, 1, CountQuestions("How are you?"))
	assert.Equal(t, 3, CountQuestions("really?? is that so?"))
	assert.Equal(t, 0, CountQuestions("fine."))
}

func TestNormalizeTokens(t *testing.T) {
	tokens := NormalizeTokens("Well, we NEED to [laughs] (aside) finish it!")
	assert.Equal(t, []string{"well", "we", "need", "to", "finish", "it"}, tokens)
}

func TestNormalizeTokens_EdgePunctuation(t *testing.T) {
	tokens := NormalizeTokens(`"Hello," she said... don't stop`)
	assert.Equal(t, []string{"hello", "she", "said", "don't", "stop"}, tokens)
}

func TestFixEncodingArtifacts(t *testing.T) {
	assert.Equal(t, "it's fine", FixEncodingArtifacts("it/2019s fine"))
	assert.Equal(t, "no change", FixEncodingArtifacts("no change"))
}
