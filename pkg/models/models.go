package models

import (
	"time"

	"github.com/google/uuid"
)

// Speaker is one of the two dialogue roles in a session transcript.
type Speaker string

const (
	SpeakerCaregiver Speaker = "caregiver"
	SpeakerPLWD      Speaker = "plwd"
)

// SessionType is derived from the transcript filename.
type SessionType string

const (
	SessionEP             SessionType = "EP"
	SessionER             SessionType = "ER"
	SessionBaseline       SessionType = "baseline"
	SessionFinalInterview SessionType = "final_interview"
	SessionUnknown        SessionType = "unknown"
)

// Condition is the study arm inferred from the filename.
type Condition string

const (
	ConditionVR     Condition = "VR"
	ConditionTablet Condition = "Tablet"
)

// TranscriptDocument is the unit of input: newline-joined paragraph text
// plus the original filename. Document reading happens upstream.
type TranscriptDocument struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	RawText     string    `json:"raw_text"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func NewTranscriptDocument(filename, rawText string) *TranscriptDocument {
	return &TranscriptDocument{
		ID:          uuid.New().String(),
		Filename:    filename,
		RawText:     rawText,
		SubmittedAt: time.Now(),
	}
}

// FileMetadata identifies a processed file in downstream reporting.
type FileMetadata struct {
	PatientID   string      `json:"patient_id"`
	SessionType SessionType `json:"session_type"`
	WeekLabel   string      `json:"week_label"`
	Condition   Condition   `json:"condition"`
	Filename    string      `json:"filename"`
}

// Turn is one speaker's contiguous span of dialogue between two speaker tags.
type Turn struct {
	Index   int     `json:"turn_id"`
	Speaker Speaker `json:"speaker"`
	RawText string  `json:"text"`
}

// Cue is a bracketed transcriber annotation mapped to a canonical category.
type Cue struct {
	CanonicalType string  `json:"type"`
	Speaker       Speaker `json:"speaker"`
	SourceText    string  `json:"source_text"`
}

// DisfluencyInstance is a single filled-pause token, original casing kept.
type DisfluencyInstance struct {
	Type    string  `json:"type"`
	Token   string  `json:"text"`
	Speaker Speaker `json:"-"`
}

// RepeatInstance is a run of identical consecutive tokens within one turn.
// RepeatCount is the run length, so RepeatCount-1 extra occurrences are
// attributed to the speaker for rate purposes.
type RepeatInstance struct {
	Word        string `json:"word"`
	RepeatCount int    `json:"count"`
	Position    int    `json:"position"`
	Context     string `json:"context"`
}

// TurnAnalysis is a turn plus everything extracted from it.
type TurnAnalysis struct {
	TurnID        int                  `json:"turn_id"`
	Speaker       Speaker              `json:"speaker"`
	Text          string               `json:"text"`
	NonverbalCues []string             `json:"nonverbal_cues"`
	Disfluencies  []DisfluencyInstance `json:"disfluencies"`
	Repeats       []RepeatInstance     `json:"repeats"`
	IsQuestion    bool                 `json:"is_question"`
	IsResponse    bool                 `json:"is_response"`
	WordCount     int                  `json:"word_count"`
	SentenceCount int                  `json:"sentence_count"`
	QuestionCount int                  `json:"question_count"`
}

// SpeakerStats holds per-speaker totals folded over all turns of a file.
type SpeakerStats struct {
	Turns         int `json:"turns"`
	Words         int `json:"words"`
	Sentences     int `json:"sentences"`
	Questions     int `json:"questions"`
	Responses     int `json:"responses"`
	Disfluencies  int `json:"disfluencies"`
	NonverbalCues int `json:"nonverbal_cues"`
	RepeatExtras  int `json:"repeat_extras"`
}

// WordCount pairs a repeated word with its extra-occurrence total, used for
// the descending-count view of the by_word map.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// RepeatStats aggregates immediate word repeats across a file.
type RepeatStats struct {
	CaregiverTotal int            `json:"caregiver_total"`
	PLWDTotal      int            `json:"plwd_total"`
	ByWord         map[string]int `json:"by_word"`
	TopWords       []WordCount    `json:"top_words,omitempty"`
}

// FileStats is the stats block of the output contract.
type FileStats struct {
	NonverbalCues map[string]int `json:"nonverbal_cues"`
	Disfluencies  map[string]int `json:"disfluencies"`
	Repeats       RepeatStats    `json:"repeats"`
	Questions     int            `json:"questions"`
	Responses     int            `json:"responses"`
}

// DerivedMetrics are the per-file rates and averages the dashboards consume.
// Rates are per 100 words with additive smoothing, rounded to 2 decimals.
type DerivedMetrics struct {
	TotalWords                 int     `json:"total_words"`
	TotalTurns                 int     `json:"total_turns"`
	AvgWordsPerTurn            float64 `json:"avg_words_per_turn"`
	CaregiverWordsPerUtterance float64 `json:"caregiver_words_per_utterance"`
	PLWDWordsPerUtterance      float64 `json:"plwd_words_per_utterance"`
	CaregiverQuestionRate      float64 `json:"caregiver_question_rate"`
	PLWDQuestionRate           float64 `json:"plwd_question_rate"`
	CaregiverDisfluencyRate    float64 `json:"caregiver_disfluency_rate"`
	PLWDDisfluencyRate         float64 `json:"plwd_disfluency_rate"`
}

// FileAnalysisRecord is the per-file unit handed to external collaborators.
// Immutable once built.
type FileAnalysisRecord struct {
	Metadata    FileMetadata   `json:"metadata"`
	Stats       FileStats      `json:"stats"`
	Caregiver   SpeakerStats   `json:"caregiver"`
	PLWD        SpeakerStats   `json:"plwd"`
	Derived     DerivedMetrics `json:"derived"`
	Turns       []TurnAnalysis `json:"turns"`
	Warnings    []string       `json:"warnings,omitempty"`
	ProcessedAt time.Time      `json:"processed_at"`
}

// FileStatus reports how a single file fared within a batch.
type FileStatus string

const (
	FileProcessed FileStatus = "processed"
	FileFailed    FileStatus = "failed"
)

// FileResult is the per-file line of a batch summary.
type FileResult struct {
	Filename string     `json:"filename"`
	Status   FileStatus `json:"status"`
	Reason   string     `json:"reason,omitempty"`
	Warning  string     `json:"warning,omitempty"`
}

// BatchStatus tracks a batch run through the pipeline.
type BatchStatus string

const (
	BatchRunning   BatchStatus = "running"
	BatchCompleted BatchStatus = "completed"
)

// BatchSummary is the fan-in accumulator for one multi-file run.
type BatchSummary struct {
	BatchID     string       `json:"batch_id"`
	Status      BatchStatus  `json:"status"`
	Submitted   int          `json:"submitted"`
	Processed   int          `json:"processed"`
	Failed      int          `json:"failed"`
	Warnings    int          `json:"warnings"`
	Files       []FileResult `json:"files"`
	StartedAt   time.Time    `json:"started_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

func NewBatchSummary(submitted int) *BatchSummary {
	return &BatchSummary{
		BatchID:   uuid.New().String(),
		Status:    BatchRunning,
		Submitted: submitted,
		StartedAt: time.Now(),
	}
}

// PipelineMessage travels between pipeline stages.
type PipelineMessage struct {
	BatchID string
	Doc     *TranscriptDocument
	Record  *FileAnalysisRecord
	Result  FileResult
	Err     error
	Stage   string
}
