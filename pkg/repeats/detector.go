package repeats

import (
	"strings"

	"transcript-processor/pkg/models"
)

// Filler markers skipped as run starters. Broader than the filled-pause set
// on purpose: repeating "you know" or "i mean" is ordinary hedging, not a
// meaningful repeat.
var fillerMarkers = map[string]struct{}{
	"um": {}, "uh": {}, "er": {}, "ah": {},
	"you": {}, "know": {}, "i": {}, "mean": {},
	"sort": {}, "of": {}, "kind": {},
	"well": {}, "so": {}, "basically": {},
}

// Detector finds runs of identical consecutive tokens and renders a
// highlighted context window around each run.
type Detector struct {
	contextRadius int
	marker        string
}

func NewDetector(contextRadius int, marker string) *Detector {
	if contextRadius <= 0 {
		contextRadius = 5
	}
	if marker == "" {
		marker = "**"
	}
	return &Detector{contextRadius: contextRadius, marker: marker}
}

// Detect scans a normalized token sequence left to right. Filler markers
// never start a run. A detected run of length k yields one RepeatInstance
// with RepeatCount k, and scanning resumes after the run, so the token
// following a run is not re-examined as a new run start.
func (d *Detector) Detect(words []string) []models.RepeatInstance {
	if len(words) < 2 {
		return nil
	}

	var repeats []models.RepeatInstance
	i := 0
	for i < len(words)-1 {
		current := words[i]
		if _, skip := fillerMarkers[current]; skip {
			i++
			continue
		}
		if current != words[i+1] {
			i++
			continue
		}

		j := i + 1
		for j < len(words) && words[j] == current {
			j++
		}

		repeats = append(repeats, models.RepeatInstance{
			Word:        current,
			RepeatCount: j - i,
			Position:    i,
			Context:     d.context(words, i, j),
		})
		i = j
	}
	return repeats
}

// context joins tokens from contextRadius before the run to contextRadius
// after it, wrapping every token inside the run with the highlight marker.
func (d *Detector) context(words []string, runStart, runEnd int) string {
	start := runStart - d.contextRadius
	if start < 0 {
		start = 0
	}
	end := runEnd + d.contextRadius
	if end > len(words) {
		end = len(words)
	}

	highlighted := make([]string, 0, end-start)
	for idx := start; idx < end; idx++ {
		if idx >= runStart && idx < runEnd {
			highlighted = append(highlighted, d.marker+words[idx]+d.marker)
		} else {
			highlighted = append(highlighted, words[idx])
		}
	}
	return strings.Join(highlighted, " ")
}

// ExtraOccurrences is the number of repeated occurrences beyond the first
// across all runs; the first token of a run is normal speech.
func ExtraOccurrences(repeats []models.RepeatInstance) int {
	total := 0
	for _, r := range repeats {
		total += r.RepeatCount - 1
	}
	return total
}
