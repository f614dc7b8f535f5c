// Package heuristic scores text with keyword signals only. It is the
// degraded mode: the one verification path that works with no provider
// credentials and no outbound calls.
package heuristic

import (
	"strings"

	"github.com/veriscope/veriscope/src/verdict"
)

var clickbaitPatterns = []string{
	"you won't believe",
	"shocking",
	"mind-blowing",
	"doctors hate",
	"this one weird trick",
	"they don't want you to know",
	"wake up",
}

var emotionalPatterns = []string{
	"must see",
	"alarming",
	"terrifying",
	"outrageous",
	"urgent warning",
}

var balanceIndicators = []string{
	"however",
	"on the other hand",
	"according to",
	"in contrast",
	"experts say",
	"a study",
}

var reliableDomains = []string{
	".edu",
	".gov",
	"nature.com",
	"science.org",
	"reuters.com",
	"apnews.com",
}

// Analyzer produces a verdict from keyword signals alone. Stateless and safe
// for concurrent use.
type Analyzer struct{}

func New() *Analyzer { return &Analyzer{} }

// Analyze scores the text and maps the score onto the closed tier set. The
// returned verdict is already bounded: the summary is fixed-form and there
// are no sources to carry.
func (a *Analyzer) Analyze(text string) verdict.Verdict {
	lower := strings.ToLower(text)

	score := 0.5
	var signals []string

	if containsAny(lower, clickbaitPatterns) {
		score -= 0.2
		signals = append(signals, "clickbait phrasing")
	}
	if containsAny(lower, emotionalPatterns) {
		score -= 0.1
		signals = append(signals, "emotionally loaded language")
	}
	if shoutingRatio(text) > 0.3 {
		score -= 0.1
		signals = append(signals, "excessive capitalization")
	}
	if containsAny(lower, balanceIndicators) {
		score += 0.2
		signals = append(signals, "balanced or attributed reporting")
	}
	if containsAny(lower, reliableDomains) {
		score += 0.1
		signals = append(signals, "references to established sources")
	}

	score = verdict.Clamp01(score)

	label := verdict.TierUncertain
	switch {
	case score >= 0.65:
		label = verdict.TierAccurate
	case score <= 0.35:
		label = verdict.TierMisleading
	}

	return verdict.Verdict{
		Label:      label,
		Confidence: confidence(len(signals)),
		Summary:    summarize(label, signals),
		Sources:    nil,
	}
}

// confidence grows modestly with the number of triggered signals; keyword
// scoring never deserves high confidence.
func confidence(signals int) float64 {
	c := 0.35 + 0.05*float64(signals)
	if c > 0.6 {
		c = 0.6
	}
	return c
}

func summarize(label verdict.Tier, signals []string) string {
	var sb strings.Builder
	switch label {
	case verdict.TierAccurate:
		sb.WriteString("Offline keyword screening found no misinformation markers")
	case verdict.TierMisleading:
		sb.WriteString("Offline keyword screening flagged misinformation markers")
	default:
		sb.WriteString("Offline keyword screening was inconclusive")
	}
	if len(signals) > 0 {
		sb.WriteString(": ")
		sb.WriteString(strings.Join(signals, "; "))
	}
	sb.WriteString(". No external verification was performed.")
	return sb.String()
}

func containsAny(text string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// shoutingRatio is the share of letters written in upper case.
func shoutingRatio(text string) float64 {
	var letters, upper int
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			letters++
			upper++
		case r >= 'a' && r <= 'z':
			letters++
		}
	}
	if letters < 20 {
		return 0
	}
	return float64(upper) / float64(letters)
}
