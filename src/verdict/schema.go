package verdict

// Schema is the per-variant field-name mapping. The endpoints grew up with
// slightly different response vocabularies (label vs verdict, summary vs
// rationale); rather than duplicating the normalizer per endpoint, each
// handler carries a Schema and shares one implementation.
type Schema struct {
	Name         string
	LabelField   string
	SummaryField string
}

var (
	// SchemaLabel is the {label, confidence, summary, sources} shape used by
	// the text, quick and image endpoints.
	SchemaLabel = Schema{Name: "label", LabelField: "label", SummaryField: "summary"}

	// SchemaVerdict is the {verdict, confidence, rationale, sources} shape
	// used by the claim endpoint.
	SchemaVerdict = Schema{Name: "verdict", LabelField: "verdict", SummaryField: "rationale"}
)

// Encode renders a Verdict with this schema's field names. The result is
// what handlers serialize as the 200 response body.
func (s Schema) Encode(v Verdict) map[string]any {
	sources := v.Sources
	if sources == nil {
		sources = []SearchResult{}
	}
	return map[string]any{
		s.LabelField:   string(v.Label),
		"confidence":   v.Confidence,
		s.SummaryField: v.Summary,
		"sources":      sources,
	}
}
