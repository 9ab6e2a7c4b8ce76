package disfluency

import (
	"regexp"
	"strings"

	"transcript-processor/pkg/models"
)

// TypeFilledPause is the only disfluency class detected at this layer.
// Repetitions and revisions are handled by the repeat detector instead.
const TypeFilledPause = "filled_pause"

// Filled-pause tokens. The same set is used by the word counter to exclude
// fillers from clean word counts.
var filledPauses = map[string]struct{}{
	"um": {}, "umm": {}, "uh": {}, "uhh": {}, "uhhh": {},
	"er": {}, "err": {}, "erm": {},
	"ah": {}, "ahh": {},
	"hm": {}, "hmm": {}, "mhm": {},
	"mm": {}, "mmm": {},
	"eh": {}, "ehm": {}, "em": {},
}

var filledPausePattern = regexp.MustCompile(
	`(?i)\b(um|umm|uh|uhh|uhhh|er|err|erm|ah|ahh|hm|hmm|mhm|mm|mmm|eh|ehm|em)\b`)

// IsFilledPause reports whether a token, case-insensitively, is a filled
// pause.
func IsFilledPause(token string) bool {
	_, ok := filledPauses[strings.ToLower(token)]
	return ok
}

// Detect returns every filled-pause occurrence in turn text, in order,
// with the original casing preserved.
func Detect(text string, speaker models.Speaker) []models.DisfluencyInstance {
	matches := filledPausePattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	instances := make([]models.DisfluencyInstance, 0, len(matches))
	for _, m := range matches {
		instances = append(instances, models.DisfluencyInstance{
			Type:    TypeFilledPause,
			Token:   m,
			Speaker: speaker,
		})
	}
	return instances
}
