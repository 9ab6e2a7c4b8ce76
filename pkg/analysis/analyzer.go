package analysis

import (
	"time"

	"github.com/sirupsen/logrus"

	"transcript-processor/pkg/cues"
	"transcript-processor/pkg/disfluency"
	"transcript-processor/pkg/models"
	"transcript-processor/pkg/repeats"
	"transcript-processor/pkg/transcript"
)

// Serialized turn text is capped; analysis always runs on the full text.
const turnTextLimit = 500

// WarningNoTurns annotates a valid transcript in which no speaker tags were
// found. This is not a failure: the record exists with zero-valued stats.
const WarningNoTurns = "no speaker turns found"

// Analyzer converts one transcript document into a FileAnalysisRecord.
// It is stateless across documents and safe for concurrent use.
type Analyzer struct {
	logger     *logrus.Logger
	normalizer *cues.Normalizer
	repeats    *repeats.Detector
}

func NewAnalyzer(logger *logrus.Logger, normalizer *cues.Normalizer, repeatDetector *repeats.Detector) *Analyzer {
	return &Analyzer{
		logger:     logger,
		normalizer: normalizer,
		repeats:    repeatDetector,
	}
}

// AnalyzeDocument runs the full per-file pipeline: participant
// identification, metadata extraction, turn segmentation, and per-turn
// feature extraction, folded into a single immutable record.
//
// A document with no identifiable participant is excluded: the returned
// error is transcript.ErrParticipantNotFound (or ErrEmptyDocument) and no
// record is produced.
func (a *Analyzer) AnalyzeDocument(doc *models.TranscriptDocument) (*models.FileAnalysisRecord, error) {
	text := transcript.FixEncodingArtifacts(doc.RawText)

	participantID, err := transcript.ExtractParticipantID(text)
	if err != nil {
		a.logger.WithFields(logrus.Fields{
			"filename": doc.Filename,
			"reason":   err.Error(),
		}).Warn("Excluding transcript")
		return nil, err
	}

	metadata := transcript.ExtractMetadata(doc.Filename, participantID)
	turns := transcript.SegmentTurns(text, participantID)

	analyses := make([]models.TurnAnalysis, len(turns))
	for i, turn := range turns {
		analyses[i] = a.analyzeTurn(turn)
	}
	markResponses(analyses)

	record := buildRecord(metadata, analyses)
	if len(turns) == 0 {
		record.Warnings = append(record.Warnings, WarningNoTurns)
	}
	record.ProcessedAt = time.Now()

	a.logger.WithFields(logrus.Fields{
		"filename":    doc.Filename,
		"participant": metadata.PatientID,
		"turns":       len(turns),
	}).Info("Transcript analyzed")

	return record, nil
}

// analyzeTurn runs every extractor over a single turn. Turns are independent
// of each other; only response pairing needs the ordered sequence.
func (a *Analyzer) analyzeTurn(turn models.Turn) models.TurnAnalysis {
	cueList := a.normalizer.ExtractCues(turn.RawText, turn.Speaker)
	cueNames := make([]string, 0, len(cueList))
	for _, c := range cueList {
		cueNames = append(cueNames, c.CanonicalType)
	}

	questionCount := transcript.CountQuestions(turn.RawText)
	tokens := transcript.NormalizeTokens(turn.RawText)

	return models.TurnAnalysis{
		TurnID:        turn.Index,
		Speaker:       turn.Speaker,
		Text:          truncate(turn.RawText, turnTextLimit),
		NonverbalCues: cueNames,
		Disfluencies:  disfluency.Detect(turn.RawText, turn.Speaker),
		Repeats:       a.repeats.Detect(tokens),
		IsQuestion:    questionCount > 0,
		WordCount:     transcript.CountWords(turn.RawText),
		SentenceCount: transcript.CountSentences(turn.RawText),
		QuestionCount: questionCount,
	}
}

// markResponses flags turns that directly follow a question by the other
// speaker.
func markResponses(turns []models.TurnAnalysis) {
	for i := 1; i < len(turns); i++ {
		if turns[i-1].IsQuestion && turns[i].Speaker != turns[i-1].Speaker {
			turns[i].IsResponse = true
		}
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
