// Package verdict defines the bounded risk-assessment object returned to
// callers and the normalization layer that produces it from untrusted
// language-model output.
package verdict

// Tier is the closed set of risk categories. Every provider-specific label
// vocabulary collapses into one of these three.
type Tier string

const (
	TierAccurate   Tier = "accurate"
	TierUncertain  Tier = "uncertain"
	TierMisleading Tier = "misleading"
)

// Payload bounds. Upstream providers are not trusted to keep anything short,
// so every string that can reach a client is re-bounded on the way out.
const (
	MaxSources = 5
	MaxTitle   = 140
	MaxSnippet = 280
	MaxSummary = 600
)

// FallbackSummary is returned whenever provider output cannot be normalized
// into a usable judgment.
const FallbackSummary = "The claim could not be verified confidently. Treat it with caution and consult established sources."

// SearchResult is one evidence item, either from the search provider or
// echoed back by the model. Order is the provider's relevance order.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// Verdict is the unit returned to the caller. It is constructed fresh per
// request and always structurally valid: label in the closed tier set,
// confidence in [0,1], at most MaxSources bounded sources.
type Verdict struct {
	Label      Tier
	Confidence float64
	Summary    string
	Sources    []SearchResult
}

// Fallback builds the safe-default verdict for output that yielded no usable
// judgment. Sources are the (already bounded) external search results.
func Fallback(external []SearchResult) Verdict {
	return Verdict{
		Label:      TierUncertain,
		Confidence: 0.5,
		Summary:    FallbackSummary,
		Sources:    external,
	}
}
