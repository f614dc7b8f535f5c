package verdict

import (
	"encoding/json"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Normalizer converts raw provider output into a well-formed Verdict. It
// never fails: malformed, adversarial or empty input resolves to the
// fallback verdict. One instance per response schema, safe for concurrent
// use.
type Normalizer struct {
	schema Schema
	policy *bluemonday.Policy
}

func NewNormalizer(schema Schema) *Normalizer {
	return &Normalizer{
		schema: schema,
		policy: bluemonday.StrictPolicy(),
	}
}

func (n *Normalizer) Schema() Schema { return n.schema }

// Normalize builds a Verdict from the raw model response. external carries
// the search results gathered before the model call; they are used whenever
// the model supplies no usable sources of its own.
func (n *Normalizer) Normalize(raw string, external []SearchResult) Verdict {
	external = n.boundSources(external)

	obj, ok := parseObject(raw)
	if !ok {
		return Fallback(external)
	}

	label := firstString(obj, n.schema.LabelField, "label", "verdict", "rating")
	summary := n.cleanText(firstString(obj, n.schema.SummaryField, "summary", "rationale", "explanation"), MaxSummary)
	if summary == "" {
		summary = FallbackSummary
	}

	return Verdict{
		Label:      coerceTier(label),
		Confidence: Clamp01(coerceConfidence(obj["confidence"])),
		Summary:    summary,
		Sources:    n.coerceSources(obj["sources"], external),
	}
}

// parseObject attempts a strict parse first, then retries on the first
// balanced {...} substring. Models routinely wrap their JSON in prose or
// markdown fences despite instructions not to.
func parseObject(raw string) (map[string]any, bool) {
	raw = strings.TrimSpace(raw)
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err == nil {
		return obj, true
	}
	inner, ok := firstJSONObject(raw)
	if !ok {
		return nil, false
	}
	if err := json.Unmarshal([]byte(inner), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// firstJSONObject returns the first brace-balanced substring, tracking
// string literals so braces inside quoted values do not skew the depth.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth, inString, escaped := 0, false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

var (
	accurateWords   = []string{"green", "true", "accurate", "verified", "correct", "legitimate", "supported", "low"}
	misleadingWords = []string{"red", "false", "misleading", "fake", "fabricated", "incorrect", "debunked", "high"}
)

// coerceTier maps a provider label into the closed tier set. Matching is
// deliberately lenient (lowercased keyword prefixes, color initials) because
// providers are not contractually bound to an exact vocabulary. Anything
// unrecognized lands on the uncertain tier.
func coerceTier(label string) Tier {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return TierUncertain
	}
	for _, w := range accurateWords {
		if strings.HasPrefix(label, w) {
			return TierAccurate
		}
	}
	for _, w := range misleadingWords {
		if strings.HasPrefix(label, w) {
			return TierMisleading
		}
	}
	switch label[0] {
	case 'g':
		return TierAccurate
	case 'r':
		return TierMisleading
	}
	return TierUncertain
}

// coerceConfidence accepts a JSON number or numeric string; anything else,
// including NaN and infinities, yields the neutral 0.5.
func coerceConfidence(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0.5
		}
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0.5
		}
		return f
	default:
		return 0.5
	}
}

// Clamp01 bounds a confidence value to [0,1].
func Clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// coerceSources prefers the model-supplied list, dropping entries with no
// URL. If nothing usable remains the external search results fill in.
func (n *Normalizer) coerceSources(raw any, external []SearchResult) []SearchResult {
	list, ok := raw.([]any)
	if ok {
		out := make([]SearchResult, 0, len(list))
		for _, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			url := strings.TrimSpace(asString(m["url"]))
			if url == "" {
				continue
			}
			out = append(out, SearchResult{
				Title:   n.cleanText(asString(m["title"]), MaxTitle),
				URL:     capRunes(url, 2048),
				Snippet: n.cleanText(asString(m["snippet"]), MaxSnippet),
			})
			if len(out) == MaxSources {
				break
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return external
}

// boundSources re-bounds search-provider results. Snippet and title lengths
// are never trusted, whatever their origin.
func (n *Normalizer) boundSources(in []SearchResult) []SearchResult {
	if len(in) == 0 {
		return nil
	}
	if len(in) > MaxSources {
		in = in[:MaxSources]
	}
	out := make([]SearchResult, len(in))
	for i, s := range in {
		out[i] = SearchResult{
			Title:   n.cleanText(s.Title, MaxTitle),
			URL:     capRunes(strings.TrimSpace(s.URL), 2048),
			Snippet: n.cleanText(s.Snippet, MaxSnippet),
		}
	}
	return out
}

// cleanText strips markup, resolves entities back to plain text and bounds
// the rune length.
func (n *Normalizer) cleanText(s string, limit int) string {
	s = strings.TrimSpace(html.UnescapeString(n.policy.Sanitize(s)))
	return capRunes(s, limit)
}

func capRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}

func firstString(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(asString(obj[k])); v != "" {
			return v
		}
	}
	return ""
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
