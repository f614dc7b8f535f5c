// Package search provides web-search context for verdict generation.
// Search is best-effort: a verdict can be produced without it, so every
// failure mode collapses to "no results".
package search

import (
	"context"

	"github.com/veriscope/veriscope/src/verdict"
)

// MaxQueryLen bounds queries before submission; providers reject or bill
// for longer ones and relevance does not improve past this point.
const MaxQueryLen = 400

// Searcher returns relevance-ordered results for a query. Implementations
// must fail soft: transport errors, bad status codes and malformed bodies
// all yield an empty slice, never an error.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) []verdict.SearchResult
}

// Disabled is the Searcher used when no search credentials are configured.
type Disabled struct{}

func (Disabled) Search(context.Context, string, int) []verdict.SearchResult { return nil }

func truncateQuery(q string) string {
	r := []rune(q)
	if len(r) <= MaxQueryLen {
		return q
	}
	return string(r[:MaxQueryLen])
}
