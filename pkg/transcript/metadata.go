package transcript

import (
	"fmt"
	"regexp"
	"strings"

	"transcript-processor/pkg/models"
)

var weekPattern = regexp.MustCompile(`(EP|ER)(\d+)`)

// ExtractMetadata derives session metadata from the filename and the
// already-identified participant id.
func ExtractMetadata(filename, participantID string) models.FileMetadata {
	return models.FileMetadata{
		PatientID:   strings.ToUpper(participantID),
		SessionType: DeriveSessionType(filename),
		WeekLabel:   DeriveWeekLabel(filename),
		Condition:   DeriveCondition(filename),
		Filename:    filename,
	}
}

// DeriveSessionType resolves the session type from the filename.
// First match wins; EP/ER checks are case-sensitive on purpose, baseline
// is not.
func DeriveSessionType(filename string) models.SessionType {
	switch {
	case strings.Contains(filename, "EP"):
		return models.SessionEP
	case strings.Contains(filename, "ER"):
		return models.SessionER
	case strings.Contains(strings.ToLower(filename), "baseline"):
		return models.SessionBaseline
	case strings.Contains(filename, "Final Interview") || strings.Contains(filename, "final_interview"):
		return models.SessionFinalInterview
	default:
		return models.SessionUnknown
	}
}

// DeriveWeekLabel turns an EP3/ER2 style filename fragment into "Week 3".
func DeriveWeekLabel(filename string) string {
	m := weekPattern.FindStringSubmatch(filename)
	if m == nil {
		return "Unknown"
	}
	return fmt.Sprintf("Week %s", m[2])
}

// DeriveCondition applies the study's filename heuristic: EP sessions ran
// under the VR arm, everything else is treated as Tablet. ER files from VR
// participants are knowingly misclassified by this rule; it is kept as-is
// for compatibility with the historical dataset.
func DeriveCondition(filename string) models.Condition {
	if strings.Contains(filename, "EP") {
		return models.ConditionVR
	}
	return models.ConditionTablet
}
