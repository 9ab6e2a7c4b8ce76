package cues

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcript-processor/pkg/models"
)

func TestNormalize_RuleTable(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		raw  string
		want string
	}{
		{"laughs", "laughter"},
		{"Laughing loudly", "laughter"},
		{"chuckles", "laughter"},
		{"giggling", "laughter"},
		{"pause", "pause"},
		{"long pause", "pause"},
		{"inaudible mumbling", "inaudible"},
		{"coughs twice", "coughing"},
		{"sighing deeply", "sighing"},
		{"nods", "nodding"},
		{"shakes head", "shaking_head"},
		{"shaking heads no", "shaking_head"},
		{"humming a tune", "humming"},
		{"sings along", "singing"},
		{"mumbles", "mumbling"},
		{"yawning", "yawning"},
		{"gestures toward door", "gesturing"},
		{"points at tablet", "pointing"},
		{"clapping", "clapping"},
		{"smiles warmly", "smiling"},
		{"dancing", "dancing"},
		{"-", "interruption"},
		{"---", "interruption"},
		{"—", "interruption"},
		{"...", "trailing_off"},
		{"…", "trailing_off"},
	}

	for _, tt := range tests {
		category, ok := n.Normalize(tt.raw)
		require.True(t, ok, tt.raw)
		assert.Equal(t, tt.want, category, tt.raw)
	}
}

func TestNormalize_Exclusions(t *testing.T) {
	n := NewNormalizer()

	excluded := []string{
		"speaking Portuguese",
		"speaking spanish to daughter",
		"translating for participant",
		"researcher enters the room",
		"research coordinator adjusts mic",
		"smiling at camera",
		"looks at video screen",
		"recording paused",
		"vr014_c leaves",
		"says her name",
		"talks about friend",
		"day program leader speaks",
		"if participant agrees",
		"for example when cooking",
		"reads on sign",
		"this annotation rambles on and on well past the fifty character cutoff",
	}

	for _, raw := range excluded {
		category, ok := n.Normalize(raw)
		assert.False(t, ok, raw)
		assert.Empty(t, category, raw)
	}
}

func TestNormalize_PassThrough(t *testing.T) {
	n := NewNormalizer()

	category, ok := n.Normalize("Crying")
	require.True(t, ok)
	assert.Equal(t, "crying", category)

	category, ok = n.Normalize("[whistles]")
	require.True(t, ok)
	assert.Equal(t, "whistles", category)
}

func TestNormalize_EmptyBracketsDropped(t *testing.T) {
	n := NewNormalizer()

	for _, raw := range []string{"", "[]", "  ", "[ ]"} {
		_, ok := n.Normalize(raw)
		assert.False(t, ok, "%q should yield no cue", raw)
	}
}

// Normalizing an already-canonical category is a no-op.
func TestNormalize_Idempotent(t *testing.T) {
	n := NewNormalizer()

	inputs := []string{
		"laughs", "long pause", "shakes head slowly", "coughing",
		"points at tablet", "crying", "---", "...",
	}

	for _, raw := range inputs {
		first, ok := n.Normalize(raw)
		require.True(t, ok, raw)
		second, ok := n.Normalize(first)
		require.True(t, ok, first)
		assert.Equal(t, first, second, raw)
	}
}

func TestExtractCues(t *testing.T) {
	n := NewNormalizer()

	cues := n.ExtractCues("I am fine [laughs] really [long pause] ok [speaking Portuguese]", models.SpeakerPLWD)
	require.Len(t, cues, 2)

	assert.Equal(t, "laughter", cues[0].CanonicalType)
	assert.Equal(t, "laughs", cues[0].SourceText)
	assert.Equal(t, models.SpeakerPLWD, cues[0].Speaker)
	assert.Equal(t, "pause", cues[1].CanonicalType)
}

func TestExtractCues_NoBrackets(t *testing.T) {
	n := NewNormalizer()
	assert.Empty(t, n.ExtractCues("no annotations here", models.SpeakerCaregiver))
}

func TestLoadRulesFile_ExtendsTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `rules:
  - pattern: "^(whisper|whispers|whispering)"
    category: whispering
  - pattern: "^(wave|waves|waving)"
    not_contains: goodbye
    category: waving
exclusions:
  - "test apparatus"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	n := NewNormalizer()
	require.NoError(t, n.LoadRulesFile(path))

	category, ok := n.Normalize("whispers to caregiver")
	require.True(t, ok)
	assert.Equal(t, "whispering", category)

	// not_contains veto falls through to pass-through
	category, ok = n.Normalize("waves goodbye")
	require.True(t, ok)
	assert.Equal(t, "waves goodbye", category)

	_, ok = n.Normalize("adjusts test apparatus")
	assert.False(t, ok)

	// built-in rules still take precedence
	category, ok = n.Normalize("laughs")
	require.True(t, ok)
	assert.Equal(t, "laughter", category)
}

func TestLoadRulesFile_InvalidPattern(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - pattern: \"[\"\n    category: broken\n"), 0644))

	n := NewNormalizer()
	assert.Error(t, n.LoadRulesFile(path))
}
