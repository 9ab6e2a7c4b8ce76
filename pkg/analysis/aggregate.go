package analysis

import (
	"math"
	"sort"

	"transcript-processor/pkg/models"
)

// RateSmoothing is the additive constant applied wherever a rate divides by
// a word or turn count, so empty transcripts yield zero rates instead of
// dividing by zero. The same constant is used everywhere downstream rates
// are derived from these counts.
const RateSmoothing = 1e-9

// buildRecord folds the ordered turn analyses into per-speaker totals, the
// cue and repeat maps, and the derived metrics. Pure: the same turn list
// always yields the same record.
func buildRecord(metadata models.FileMetadata, turns []models.TurnAnalysis) *models.FileAnalysisRecord {
	var caregiver, plwd models.SpeakerStats
	cueTotals := make(map[string]int)
	disfluencyTotals := make(map[string]int)
	byWord := make(map[string]int)
	repeatStats := models.RepeatStats{ByWord: byWord}
	questions := 0
	responses := 0

	for _, turn := range turns {
		stats := &caregiver
		if turn.Speaker == models.SpeakerPLWD {
			stats = &plwd
		}

		stats.Turns++
		stats.Words += turn.WordCount
		stats.Sentences += turn.SentenceCount
		stats.Questions += turn.QuestionCount
		stats.Disfluencies += len(turn.Disfluencies)
		stats.NonverbalCues += len(turn.NonverbalCues)
		if turn.IsResponse {
			stats.Responses++
			responses++
		}
		if turn.IsQuestion {
			questions++
		}

		for _, cue := range turn.NonverbalCues {
			cueTotals[cue]++
		}
		for _, d := range turn.Disfluencies {
			disfluencyTotals[d.Type]++
		}

		extras := 0
		for _, r := range turn.Repeats {
			byWord[r.Word] += r.RepeatCount - 1
			extras += r.RepeatCount - 1
		}
		stats.RepeatExtras += extras
		if turn.Speaker == models.SpeakerPLWD {
			repeatStats.PLWDTotal += extras
		} else {
			repeatStats.CaregiverTotal += extras
		}
	}

	repeatStats.TopWords = topWords(byWord)

	return &models.FileAnalysisRecord{
		Metadata: metadata,
		Stats: models.FileStats{
			NonverbalCues: cueTotals,
			Disfluencies:  disfluencyTotals,
			Repeats:       repeatStats,
			Questions:     questions,
			Responses:     responses,
		},
		Caregiver: caregiver,
		PLWD:      plwd,
		Derived:   deriveMetrics(caregiver, plwd),
		Turns:     turns,
	}
}

// topWords orders the by_word map by descending extra-occurrence count,
// ties broken alphabetically for deterministic output.
func topWords(byWord map[string]int) []models.WordCount {
	if len(byWord) == 0 {
		return nil
	}
	words := make([]models.WordCount, 0, len(byWord))
	for w, c := range byWord {
		words = append(words, models.WordCount{Word: w, Count: c})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})
	return words
}

func deriveMetrics(caregiver, plwd models.SpeakerStats) models.DerivedMetrics {
	totalWords := caregiver.Words + plwd.Words
	totalTurns := caregiver.Turns + plwd.Turns

	return models.DerivedMetrics{
		TotalWords:                 totalWords,
		TotalTurns:                 totalTurns,
		AvgWordsPerTurn:            round2(float64(totalWords) / (float64(totalTurns) + RateSmoothing)),
		CaregiverWordsPerUtterance: round2(float64(caregiver.Words) / (float64(caregiver.Turns) + RateSmoothing)),
		PLWDWordsPerUtterance:      round2(float64(plwd.Words) / (float64(plwd.Turns) + RateSmoothing)),
		CaregiverQuestionRate:      RatePer100Words(caregiver.Questions, caregiver.Words),
		PLWDQuestionRate:           RatePer100Words(plwd.Questions, plwd.Words),
		CaregiverDisfluencyRate:    RatePer100Words(caregiver.Disfluencies, caregiver.Words),
		PLWDDisfluencyRate:         RatePer100Words(plwd.Disfluencies, plwd.Words),
	}
}

// RatePer100Words is the shared rate helper: count per 100 words with
// additive smoothing, rounded to 2 decimals.
func RatePer100Words(count, words int) float64 {
	return round2(float64(count) / (float64(words) + RateSmoothing) * 100)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
