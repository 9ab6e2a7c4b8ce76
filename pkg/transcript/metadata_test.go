package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"transcript-processor/pkg/models"
)

func TestExtractMetadata_EPSession(t *testing.T) {
	meta := ExtractMetadata("VR021_EP3_session.docx", "vr021")

	assert.Equal(t, "VR021", meta.PatientID)
	assert.Equal(t, models.SessionEP, meta.SessionType)
	assert.Equal(t, "Week 3", meta.WeekLabel)
	assert.Equal(t, models.ConditionVR, meta.Condition)
	assert.Equal(t, "VR021_EP3_session.docx", meta.Filename)
}

func TestExtractMetadata_Baseline(t *testing.T) {
	meta := ExtractMetadata("VR021_baseline.docx", "vr021")

	assert.Equal(t, models.SessionBaseline, meta.SessionType)
	assert.Equal(t, "Unknown", meta.WeekLabel)
	assert.Equal(t, models.ConditionTablet, meta.Condition)
}

func TestDeriveSessionType(t *testing.T) {
	tests := []struct {
		filename string
		want     models.SessionType
	}{
		{"VR014_EP1.docx", models.SessionEP},
		{"VR014_ER2.docx", models.SessionER},
		{"VR014_Baseline.docx", models.SessionBaseline},
		{"VR014 Final Interview.docx", models.SessionFinalInterview},
		{"VR014_final_interview.docx", models.SessionFinalInterview},
		{"VR014_notes.docx", models.SessionUnknown},
		// EP wins over a later baseline mention
		{"EP2_baseline_redo.docx", models.SessionEP},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveSessionType(tt.filename), tt.filename)
	}
}

func TestDeriveWeekLabel(t *testing.T) {
	assert.Equal(t, "Week 4", DeriveWeekLabel("VR001_ER4_chat.docx"))
	assert.Equal(t, "Week 12", DeriveWeekLabel("VR001_EP12.docx"))
	assert.Equal(t, "Unknown", DeriveWeekLabel("VR001_baseline.docx"))
}

// ER files land in the Tablet arm even for VR participants. Known
// imprecision of the filename heuristic, preserved for dataset
// compatibility.
func TestDeriveCondition_ERFilesMapToTablet(t *testing.T) {
	assert.Equal(t, models.ConditionVR, DeriveCondition("VR001_EP3.docx"))
	assert.Equal(t, models.ConditionTablet, DeriveCondition("VR001_ER3.docx"))
	assert.Equal(t, models.ConditionTablet, DeriveCondition("VR001_baseline.docx"))
}
