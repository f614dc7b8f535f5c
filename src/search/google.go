package search

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/veriscope/veriscope/src/verdict"
	"github.com/veriscope/veriscope/src/webclient"
)

const googleEndpoint = "https://www.googleapis.com/customsearch/v1"

// Google queries the Programmable Search JSON API.
type Google struct {
	apiKey     string
	engineID   string
	httpClient *http.Client
	endpoint   string
}

func NewGoogle(apiKey, engineID string) *Google {
	return &Google{
		apiKey:     apiKey,
		engineID:   engineID,
		httpClient: webclient.NewDefault(10 * time.Second),
		endpoint:   googleEndpoint,
	}
}

type googleResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// Search implements Searcher. Results keep the provider's relevance order
// and are not deduplicated here; bounding happens in the normalizer.
func (g *Google) Search(ctx context.Context, query string, maxResults int) []verdict.SearchResult {
	if maxResults <= 0 {
		maxResults = verdict.MaxSources
	}
	if maxResults > 10 {
		maxResults = 10 // API maximum per page
	}

	q := url.Values{}
	q.Set("key", g.apiKey)
	q.Set("cx", g.engineID)
	q.Set("q", truncateQuery(query))
	q.Set("num", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		log.Printf("search: build request: %v", err)
		return nil
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("search: request failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("search: status %d, proceeding without context", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		log.Printf("search: read body: %v", err)
		return nil
	}

	var parsed googleResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		log.Printf("search: malformed response: %v", err)
		return nil
	}

	out := make([]verdict.SearchResult, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.Link == "" {
			continue
		}
		out = append(out, verdict.SearchResult{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
		})
		if len(out) == maxResults {
			break
		}
	}
	return out
}
