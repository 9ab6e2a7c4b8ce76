package transcript

import (
	"regexp"
	"strings"

	"transcript-processor/pkg/disfluency"
)

var (
	bracketPattern = regexp.MustCompile(`\[.*?\]`)
	parenPattern   = regexp.MustCompile(`\(.*?\)`)
	sentenceEnd    = regexp.MustCompile(`[.!?]+`)
	edgePunct      = regexp.MustCompile(`^[^\w]+|[^\w]+$`)
)

// FixEncodingArtifacts repairs the "/2019s" apostrophe artifact some
// transcription exports leave behind. Run before any token-level detection
// so fillers like "er" are not fabricated out of broken apostrophes.
func FixEncodingArtifacts(text string) string {
	return strings.ReplaceAll(text, "/2019s", "'")
}

// CleanWords returns the turn's countable word tokens: bracketed annotations
// removed, whitespace-split, filled pauses dropped. What remains is "real"
// spoken content.
func CleanWords(text string) []string {
	stripped := bracketPattern.ReplaceAllString(text, "")
	fields := strings.Fields(stripped)

	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if disfluency.IsFilledPause(w) {
			continue
		}
		words = append(words, w)
	}
	return words
}

// CountWords is the clean word count of a turn.
func CountWords(text string) int {
	return len(CleanWords(text))
}

// CountSentences splits on runs of sentence-ending punctuation and counts
// the non-empty segments.
func CountSentences(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	count := 0
	for _, seg := range sentenceEnd.Split(strings.TrimSpace(text), -1) {
		if strings.TrimSpace(seg) != "" {
			count++
		}
	}
	return count
}

// CountQuestions counts literal question marks. Deliberately not
// sentence-aware: "really?? is that so?" counts three. Kept for output
// compatibility with the historical dataset.
func CountQuestions(text string) int {
	return strings.Count(text, "?")
}

// NormalizeTokens produces the lowercased token sequence the repeat detector
// scans: bracketed and parenthetical asides removed, whitespace collapsed,
// surrounding punctuation stripped per token, empties dropped.
func NormalizeTokens(text string) []string {
	if text == "" {
		return nil
	}
	cleaned := bracketPattern.ReplaceAllString(text, " ")
	cleaned = parenPattern.ReplaceAllString(cleaned, " ")

	fields := strings.Fields(strings.ToLower(cleaned))
	tokens := make([]string, 0, len(fields))
	for _, w := range fields {
		w = edgePunct.ReplaceAllString(w, "")
		if w != "" {
			tokens = append(tokens, w)
		}
	}
	return tokens
}
