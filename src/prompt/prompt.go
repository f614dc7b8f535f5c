// Package prompt assembles the judgment requests sent to the language-model
// provider. The wording matters: the normalizer downstream depends on the
// model answering with a single JSON object in the endpoint's vocabulary.
package prompt

import (
	"fmt"
	"strings"

	"github.com/veriscope/veriscope/src/ai/core"
	"github.com/veriscope/veriscope/src/verdict"
)

const noEvidenceNote = "No external evidence is available for this claim. Rely on your own knowledge and be conservative: prefer YELLOW when unsure."

func systemInstruction(schema verdict.Schema) string {
	return fmt.Sprintf(`You are a misinformation analyst. Assess whether the submitted material spreads false or misleading information.

Respond with a single JSON object and nothing else, using exactly this shape:
{"%s": "GREEN" or "YELLOW" or "RED", "confidence": <number between 0 and 1>, "%s": "<one or two sentences explaining the assessment>", "sources": [{"title": "...", "url": "...", "snippet": "..."}]}

GREEN means the material is accurate, RED means it is false or misleading, YELLOW means it cannot be assessed confidently.
Only cite sources that appear in the evidence block of the user message. Never fabricate source URLs. Do not wrap the JSON in markdown fences or add prose around it.`,
		schema.LabelField, schema.SummaryField)
}

// Verification builds the prompt for a text claim with optional search
// evidence.
func Verification(schema verdict.Schema, subject string, results []verdict.SearchResult) core.Prompt {
	var sb strings.Builder
	sb.WriteString("Material to assess:\n")
	sb.WriteString(subject)
	sb.WriteString("\n\n")
	if len(results) == 0 {
		sb.WriteString(noEvidenceNote)
	} else {
		sb.WriteString("Evidence from a web search (relevance order):\n")
		for i, r := range results {
			fmt.Fprintf(&sb, "%d. %s\n   url: %s\n", i+1, r.Title, r.URL)
			if r.Snippet != "" {
				fmt.Fprintf(&sb, "   snippet: %s\n", r.Snippet)
			}
		}
	}
	return core.Prompt{
		System: systemInstruction(schema),
		User:   sb.String(),
	}
}

// Image builds the prompt for an inline image with no search context.
func Image(schema verdict.Schema, imageB64, mime string) core.Prompt {
	return core.Prompt{
		System:    systemInstruction(schema),
		User:      "Assess the attached image: does it depict or spread false or misleading information (manipulated media, fabricated screenshots, misleading captions)?\n\n" + noEvidenceNote,
		ImageB64:  imageB64,
		ImageMIME: mime,
	}
}
