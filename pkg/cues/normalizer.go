package cues

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"transcript-processor/pkg/models"
)

var (
	bracketSpan = regexp.MustCompile(`\[(.+?)\]`)
	bracketEdge = regexp.MustCompile(`^\[|\]$`)
)

// Normalizer maps raw bracketed annotations to canonical cue categories in
// three tiers: ordered normalization rules, then exclusion patterns, then
// pass-through of the cleaned text itself. Pass-through lets the cue catalog
// grow without code changes while the exclusions keep noise out.
type Normalizer struct {
	rules      []Rule
	exclusions []*regexp.Regexp
}

func NewNormalizer() *Normalizer {
	return &Normalizer{
		rules:      defaultRules(),
		exclusions: defaultExclusions(),
	}
}

// rulesFile is the YAML shape of a cue-rule extension file.
type rulesFile struct {
	Rules []struct {
		Pattern     string `yaml:"pattern"`
		NotContains string `yaml:"not_contains"`
		Category    string `yaml:"category"`
	} `yaml:"rules"`
	Exclusions []string `yaml:"exclusions"`
}

// LoadRulesFile appends extension rules and exclusion patterns from a YAML
// file. Extension rules run after the built-in table, still ahead of the
// exclusion and pass-through tiers.
func (n *Normalizer) LoadRulesFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read cue rules file: %w", err)
	}

	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse cue rules file: %w", err)
	}

	for _, r := range file.Rules {
		pattern, err := regexp.Compile(r.Pattern)
		if err != nil {
			return fmt.Errorf("invalid cue rule pattern %q: %w", r.Pattern, err)
		}
		if r.Category == "" {
			return fmt.Errorf("cue rule %q has no category", r.Pattern)
		}
		n.rules = append(n.rules, Rule{
			Pattern:     pattern,
			NotContains: r.NotContains,
			Category:    r.Category,
		})
	}

	for _, p := range file.Exclusions {
		pattern, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("invalid cue exclusion pattern %q: %w", p, err)
		}
		n.exclusions = append(n.exclusions, pattern)
	}
	return nil
}

// Normalize maps one raw cue to its canonical category. The second return
// is false when the cue is excluded or unusable (empty brackets).
func (n *Normalizer) Normalize(raw string) (string, bool) {
	clean := strings.TrimSpace(strings.ToLower(raw))
	clean = bracketEdge.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return "", false
	}

	for _, rule := range n.rules {
		if rule.Matches(clean) {
			return rule.Category, true
		}
	}

	for _, exclusion := range n.exclusions {
		if exclusion.MatchString(clean) {
			return "", false
		}
	}

	return clean, true
}

// ExtractCues finds every bracketed span in turn text and normalizes each,
// discarding excluded ones.
func (n *Normalizer) ExtractCues(text string, speaker models.Speaker) []models.Cue {
	matches := bracketSpan.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	cues := make([]models.Cue, 0, len(matches))
	for _, m := range matches {
		category, ok := n.Normalize(m[1])
		if !ok {
			continue
		}
		cues = append(cues, models.Cue{
			CanonicalType: category,
			Speaker:       speaker,
			SourceText:    m[1],
		})
	}
	return cues
}
