package verdict

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func externalResults(n int) []SearchResult {
	out := make([]SearchResult, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, SearchResult{
			Title:   "External result",
			URL:     "https://example.org/a",
			Snippet: "context snippet",
		})
	}
	return out
}

func TestNormalizeStrictJSON(t *testing.T) {
	n := NewNormalizer(SchemaLabel)
	ext := externalResults(3)

	v := n.Normalize(`{"label":"GREEN","confidence":0.9,"summary":"ok","sources":[]}`, ext)

	assert.Equal(t, TierAccurate, v.Label)
	assert.Equal(t, 0.9, v.Confidence)
	assert.Equal(t, "ok", v.Summary)
	assert.Len(t, v.Sources, 3, "empty provider sources fall back to external results")
}

func TestNormalizeProseWithoutJSON(t *testing.T) {
	n := NewNormalizer(SchemaLabel)
	ext := externalResults(2)

	v := n.Normalize("I think this is probably true because of several reasons...", ext)

	assert.Equal(t, TierUncertain, v.Label)
	assert.Equal(t, 0.5, v.Confidence)
	assert.Equal(t, FallbackSummary, v.Summary)
	assert.Len(t, v.Sources, 2)
}

func TestNormalizeJSONEmbeddedInProse(t *testing.T) {
	n := NewNormalizer(SchemaLabel)
	raw := "Sure! Here is the verdict you asked for:\n```json\n" +
		`{"label":"red","confidence":0.8,"summary":"contradicted by coverage"}` +
		"\n```\nLet me know if you need more."

	v := n.Normalize(raw, nil)

	assert.Equal(t, TierMisleading, v.Label)
	assert.Equal(t, 0.8, v.Confidence)
	assert.Equal(t, "contradicted by coverage", v.Summary)
}

func TestNormalizeBracesInsideStrings(t *testing.T) {
	n := NewNormalizer(SchemaLabel)
	raw := `noise {"label":"true","confidence":0.7,"summary":"quote: {not json}"} trailer`

	v := n.Normalize(raw, nil)

	assert.Equal(t, TierAccurate, v.Label)
	assert.Equal(t, "quote: {not json}", v.Summary)
}

func TestNormalizeVerdictSchemaDropsSourcelessEntries(t *testing.T) {
	n := NewNormalizer(SchemaVerdict)
	ext := externalResults(1)

	v := n.Normalize(`{"verdict":"RED","rationale":"fake quote","sources":[{"title":"x"}]}`, ext)

	assert.Equal(t, TierMisleading, v.Label)
	assert.Equal(t, "fake quote", v.Summary)
	require.Len(t, v.Sources, 1)
	assert.Equal(t, "https://example.org/a", v.Sources[0].URL, "url-less entries dropped, external fill-in")
}

func TestNormalizeConfidenceClamping(t *testing.T) {
	n := NewNormalizer(SchemaLabel)

	cases := map[string]float64{
		`{"label":"green","confidence":1.7}`:    1.0,
		`{"label":"green","confidence":-0.3}`:   0.0,
		`{"label":"green","confidence":"0.42"}`: 0.42,
		`{"label":"green","confidence":"NaN"}`:  0.5,
		`{"label":"green","confidence":"high"}`: 0.5,
		`{"label":"green"}`:                     0.5,
		`{"label":"green","confidence":null}`:   0.5,
		`{"label":"green","confidence":[0.9]}`:  0.5,
	}
	for raw, want := range cases {
		v := n.Normalize(raw, nil)
		assert.Equal(t, want, v.Confidence, "raw: %s", raw)
	}
}

func TestNormalizeTierCoercion(t *testing.T) {
	cases := map[string]Tier{
		"GREEN":       TierAccurate,
		"g":           TierAccurate,
		"True":        TierAccurate,
		"accurate":    TierAccurate,
		"Verified":    TierAccurate,
		"low risk":    TierAccurate,
		"RED":         TierMisleading,
		"False":       TierMisleading,
		"MISLEADING":  TierMisleading,
		"fake news":   TierMisleading,
		"high risk":   TierMisleading,
		"YELLOW":      TierUncertain,
		"uncertain":   TierUncertain,
		"unverified":  TierUncertain,
		"":            TierUncertain,
		"  ":          TierUncertain,
		"whatever42":  TierUncertain,
		"<b>bold</b>": TierUncertain,
	}
	for label, want := range cases {
		assert.Equal(t, want, coerceTier(label), "label %q", label)
	}
}

func TestNormalizeBoundsOversizedStrings(t *testing.T) {
	n := NewNormalizer(SchemaLabel)
	long := strings.Repeat("x", 5000)
	raw := `{"label":"green","confidence":0.9,"summary":"` + long + `","sources":[{"title":"` + long + `","url":"https://e.org","snippet":"` + long + `"}]}`

	v := n.Normalize(raw, nil)

	assert.LessOrEqual(t, len([]rune(v.Summary)), MaxSummary)
	require.Len(t, v.Sources, 1)
	assert.LessOrEqual(t, len([]rune(v.Sources[0].Title)), MaxTitle)
	assert.LessOrEqual(t, len([]rune(v.Sources[0].Snippet)), MaxSnippet)
}

func TestNormalizeBoundsExternalSources(t *testing.T) {
	n := NewNormalizer(SchemaLabel)
	ext := make([]SearchResult, 6)
	for i := range ext {
		ext[i] = SearchResult{
			Title:   strings.Repeat("t", 500),
			URL:     "https://example.org",
			Snippet: strings.Repeat("s", 500),
		}
		// keep order distinguishable
		ext[i].URL += "/" + strings.Repeat("i", i+1)
	}

	v := n.Normalize("not json at all", ext)

	require.Len(t, v.Sources, MaxSources, "six external entries truncated to five")
	assert.True(t, strings.HasSuffix(v.Sources[0].URL, "/i"), "relative order preserved")
	for _, s := range v.Sources {
		assert.LessOrEqual(t, len([]rune(s.Title)), MaxTitle)
		assert.LessOrEqual(t, len([]rune(s.Snippet)), MaxSnippet)
	}
}

func TestNormalizeSourceCapOnProviderList(t *testing.T) {
	n := NewNormalizer(SchemaLabel)
	items := make([]string, 0, 6)
	for i := 0; i < 6; i++ {
		items = append(items, `{"title":"t","url":"https://e.org/`+strings.Repeat("p", i+1)+`"}`)
	}
	raw := `{"label":"green","sources":[` + strings.Join(items, ",") + `]}`

	v := n.Normalize(raw, nil)

	require.Len(t, v.Sources, MaxSources)
	assert.Equal(t, "https://e.org/p", v.Sources[0].URL)
}

func TestNormalizeStripsMarkup(t *testing.T) {
	n := NewNormalizer(SchemaLabel)
	raw := `{"label":"green","summary":"<script>alert(1)</script>plain <b>text</b>"}`

	v := n.Normalize(raw, nil)

	assert.Equal(t, "plain text", v.Summary)
}

func TestNormalizeNeverPanicsAndStaysClosed(t *testing.T) {
	n := NewNormalizer(SchemaLabel)
	inputs := []string{
		"", "   ", "null", "true", "42", `"a bare string"`, "[1,2,3]",
		"{", "}", `{"label":`, "{}", `{"sources":"nope"}`,
		`{"label":{"nested":true}}`, `{"confidence":{"x":1}}`,
		strings.Repeat("{", 10000), "\x00\xff\xfe", "{{{}}}",
		`{"label":12,"confidence":"","summary":3,"sources":[null,42,"x"]}`,
	}
	for _, raw := range inputs {
		v := n.Normalize(raw, externalResults(1))
		assert.Contains(t, []Tier{TierAccurate, TierUncertain, TierMisleading}, v.Label, "raw %q", raw)
		assert.GreaterOrEqual(t, v.Confidence, 0.0)
		assert.LessOrEqual(t, v.Confidence, 1.0)
		assert.NotEmpty(t, v.Summary)
		assert.LessOrEqual(t, len(v.Sources), MaxSources)
	}
}

func TestNormalizeRoundTripStability(t *testing.T) {
	for _, schema := range []Schema{SchemaLabel, SchemaVerdict} {
		n := NewNormalizer(schema)

		first := n.Normalize(
			`{"`+schema.LabelField+`":"red","confidence":2.5,"`+schema.SummaryField+`":"<i>spin</i> detected & flagged","sources":[{"title":"a","url":"https://e.org","snippet":"b"}]}`,
			nil,
		)

		encoded, err := json.Marshal(schema.Encode(first))
		require.NoError(t, err)

		second := n.Normalize(string(encoded), nil)
		assert.Equal(t, first, second, "schema %s", schema.Name)
	}
}
