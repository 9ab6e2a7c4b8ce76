package transcript

import (
	"regexp"
	"strings"

	"transcript-processor/pkg/models"
)

// SegmentTurns splits document text into ordered speaker turns using the
// "{id}_c:" and "{id}_p:" markers, matched case-insensitively.
//
// The scan is an explicit two-pointer walk over marker positions: a turn
// starts right after its marker and ends where the next marker begins (or at
// end of text). Text before the first marker is preamble and is discarded.
// A document with no markers yields an empty slice, not an error.
func SegmentTurns(text, participantID string) []models.Turn {
	if text == "" || participantID == "" {
		return nil
	}

	marker := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(participantID) + `_([cp]):`)
	locs := marker.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	turns := make([]models.Turn, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}

		speaker := models.SpeakerCaregiver
		if strings.EqualFold(text[loc[2]:loc[3]], "p") {
			speaker = models.SpeakerPLWD
		}

		turns = append(turns, models.Turn{
			Index:   i,
			Speaker: speaker,
			RawText: strings.TrimSpace(text[loc[1]:end]),
		})
	}
	return turns
}
