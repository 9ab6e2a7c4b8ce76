package transcript

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmptyDocument means the upstream reader produced no text.
	ErrEmptyDocument = errors.New("document text is empty")

	// ErrParticipantNotFound means no participant identifier pattern
	// appears anywhere in the document. Such files are excluded from
	// processing entirely.
	ErrParticipantNotFound = errors.New("no participant identifier in transcript")
)

// Participant ids look like vr014 or vrx7, any casing.
var participantPattern = regexp.MustCompile(`(?i)vr(?:x)?\d+`)

// ExtractParticipantID scans document text for the first participant
// identifier and returns it lowercased.
func ExtractParticipantID(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyDocument
	}
	match := participantPattern.FindString(text)
	if match == "" {
		return "", ErrParticipantNotFound
	}
	return strings.ToLower(match), nil
}
