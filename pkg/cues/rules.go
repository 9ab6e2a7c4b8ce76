package cues

import (
	"regexp"
	"strings"
)

// Rule maps cue text to a canonical category. Rules are evaluated in order
// against the lowercased, trimmed, bracket-stripped cue text; the first
// matching rule wins. NotContains vetoes a pattern match when the given
// substring appears anywhere in the cue (used for "smiling at camera").
type Rule struct {
	Pattern     *regexp.Regexp
	NotContains string
	Category    string
}

// Matches reports whether the rule applies to the cleaned cue text.
func (r Rule) Matches(cue string) bool {
	if !r.Pattern.MatchString(cue) {
		return false
	}
	if r.NotContains != "" && strings.Contains(cue, r.NotContains) {
		return false
	}
	return true
}

// defaultRules is the built-in normalization table. Order matters.
func defaultRules() []Rule {
	return []Rule{
		{Pattern: regexp.MustCompile(`^inaudible`), Category: "inaudible"},
		{Pattern: regexp.MustCompile(`^(long\s+)?pause`), Category: "pause"},
		{Pattern: regexp.MustCompile(`^(laugh|laughter|laughing|laughs|chuckle|chuckles|chuckling|giggle|giggles|giggling)`), Category: "laughter"},
		{Pattern: regexp.MustCompile(`^(cough|coughs|coughing)`), Category: "coughing"},
		{Pattern: regexp.MustCompile(`^(sigh|sighs|sighing)`), Category: "sighing"},
		{Pattern: regexp.MustCompile(`^(nod|nods|nodding)`), Category: "nodding"},
		{Pattern: regexp.MustCompile(`^(shake|shakes|shaking)\s+(head|heads)`), Category: "shaking_head"},
		{Pattern: regexp.MustCompile(`^(hum|hums|humming)`), Category: "humming"},
		{Pattern: regexp.MustCompile(`^(sing|sings|singing)`), Category: "singing"},
		{Pattern: regexp.MustCompile(`^(mumble|mumbles|mumbling)`), Category: "mumbling"},
		{Pattern: regexp.MustCompile(`^(yawn|yawns|yawning)`), Category: "yawning"},
		{Pattern: regexp.MustCompile(`^(gesture|gestures|gesturing)`), Category: "gesturing"},
		{Pattern: regexp.MustCompile(`^(point|points|pointing)`), Category: "pointing"},
		{Pattern: regexp.MustCompile(`^(clap|claps|clapping)`), Category: "clapping"},
		{Pattern: regexp.MustCompile(`^(smile|smiles|smiling)`), NotContains: "camera", Category: "smiling"},
		{Pattern: regexp.MustCompile(`^(dance|dances|dancing)`), Category: "dancing"},
		{Pattern: regexp.MustCompile(`^(-{1,3}|–{1,3}|—{1,3})$`), Category: "interruption"},
		{Pattern: regexp.MustCompile(`^(\.{3,}|…+)$`), Category: "trailing_off"},
	}
}

// defaultExclusions suppress annotations that are transcription apparatus or
// PII-adjacent rather than participant behavior. These are searched, not
// fully matched; any hit discards the cue.
func defaultExclusions() []*regexp.Regexp {
	patterns := []string{
		`speaking.*\{.*\}`,
		`speaking.*(spanish|portuguese|russian|mandarin|english)`,
		`translat(e|ing)`,
		`researcher`,
		`research coordinator`,
		`coordinator`,
		`camera`,
		`video`,
		`screen`,
		`recording`,
		`vr\d+_[cp]`,
		`name$`,
		`friend$`,
		`day program leader`,
		`if participant`,
		`for example`,
		`reads (on|sign)`,
		`.{50,}`,
	}

	exclusions := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		exclusions = append(exclusions, regexp.MustCompile(p))
	}
	return exclusions
}
