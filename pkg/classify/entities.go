package classify

import (
	"regexp"
	"sort"
	"strings"
)

// Entities is the structured output of text extraction.
type Entities struct {
	Founders     []string    `json:"founders"      yaml:"founders"`
	Technologies []string    `json:"technologies"  yaml:"technologies"`
	Partnerships []string    `json:"partnerships"  yaml:"partnerships"`
	Funding      FundingInfo `json:"funding_info"  yaml:"funding_info"`
}

// FundingInfo captures funding facts mentioned in free text.
type FundingInfo struct {
	Amount    string `json:"amount,omitempty"     yaml:"amount,omitempty"`
	RoundType string `json:"round_type,omitempty" yaml:"round_type,omitempty"`
}

// EntityExtractor pulls founders, technologies, partnerships, and funding
// mentions out of announcement and press text with fixed patterns.
type EntityExtractor struct {
	founderPatterns     []*regexp.Regexp
	partnershipPatterns []*regexp.Regexp
	amountPatterns      []*regexp.Regexp
	techKeywords        []string
	roundTypes          []string
}

// NewEntityExtractor creates an extractor with the standard patterns. The
// founder and partnership patterns target French press phrasing.
func NewEntityExtractor() *EntityExtractor {
	return &EntityExtractor{
		founderPatterns: []*regexp.Regexp{
			regexp.MustCompile(`[Ff]ondée? par ([A-Z][a-z]+ [A-Z][a-z]+)`),
			regexp.MustCompile(`[Cc]réée? par ([A-Z][a-z]+ [A-Z][a-z]+)`),
			regexp.MustCompile(`(?:CEO|founder|co-founder)(?:\s*:)?\s*([A-Z][a-z]+ [A-Z][a-z]+)`),
		},
		partnershipPatterns: []*regexp.Regexp{
			regexp.MustCompile(`partenariat (?:avec )?([A-Z][a-zA-Z\s]+)`),
			regexp.MustCompile(`collaboration (?:avec )?([A-Z][a-zA-Z\s]+)`),
			regexp.MustCompile(`s'associe (?:avec |à )?([A-Z][a-zA-Z\s]+)`),
		},
		amountPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\d+(?:[,.]\d+)?\s*(?:millions?|M)\s*(?:MAD|EUR|USD|\$)`),
		},
		techKeywords: []string{
			"python", "react", "node", "angular", "vue", "django", "flask",
			"tensorflow", "pytorch", "kubernetes", "docker", "aws", "azure",
			"blockchain", "iot", "api", "mobile", "web", "cloud",
		},
		roundTypes: []string{"pre-seed", "seed", "series a", "series b", "amorçage"},
	}
}

// Extract runs every extractor over one text.
func (e *EntityExtractor) Extract(text string) Entities {
	return Entities{
		Founders:     e.Founders(text),
		Technologies: e.Technologies(text),
		Partnerships: e.Partnerships(text),
		Funding:      e.FundingInfo(text),
	}
}

// Founders returns the deduplicated founder names mentioned in text.
func (e *EntityExtractor) Founders(text string) []string {
	seen := make(map[string]struct{})
	var founders []string
	for _, pattern := range e.founderPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			name := match[1]
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			founders = append(founders, name)
		}
	}
	sort.Strings(founders)
	return founders
}

// Technologies returns the known technology keywords present in text.
func (e *EntityExtractor) Technologies(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, tech := range e.techKeywords {
		if strings.Contains(lower, tech) {
			found = append(found, tech)
		}
	}
	return found
}

// Partnerships returns partner names mentioned in text.
func (e *EntityExtractor) Partnerships(text string) []string {
	var partnerships []string
	for _, pattern := range e.partnershipPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			partnerships = append(partnerships, strings.TrimSpace(match[1]))
		}
	}
	return partnerships
}

// FundingInfo returns the first funding amount and round type found in text.
func (e *EntityExtractor) FundingInfo(text string) FundingInfo {
	var info FundingInfo
	for _, pattern := range e.amountPatterns {
		if match := pattern.FindString(text); match != "" {
			info.Amount = match
			break
		}
	}
	lower := strings.ToLower(text)
	for _, round := range e.roundTypes {
		if strings.Contains(lower, round) {
			info.RoundType = round
			break
		}
	}
	return info
}
