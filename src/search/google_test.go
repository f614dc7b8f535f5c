package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veriscope/veriscope/src/webclient"
)

func newTestGoogle(ts *httptest.Server) *Google {
	return &Google{
		apiKey:     "k",
		engineID:   "cx",
		httpClient: webclient.NewDefault(2 * time.Second),
		endpoint:   ts.URL,
	}
}

func TestGoogleSearchParsesItems(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		assert.Equal(t, "cx", r.URL.Query().Get("cx"))
		assert.Equal(t, "3", r.URL.Query().Get("num"))
		w.Write([]byte(`{"items":[
			{"title":"A","link":"https://a.org","snippet":"sa"},
			{"title":"B","link":"https://b.org","snippet":"sb"},
			{"title":"no link","snippet":"dropped"}
		]}`))
	}))
	defer ts.Close()

	got := newTestGoogle(ts).Search(context.Background(), "some claim", 3)

	require.Len(t, got, 2)
	assert.Equal(t, "https://a.org", got[0].URL)
	assert.Equal(t, "B", got[1].Title)
}

func TestGoogleSearchFailsSoft(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusForbidden)
		}))
		defer ts.Close()
		assert.Empty(t, newTestGoogle(ts).Search(context.Background(), "q", 5))
	})

	t.Run("malformed body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		}))
		defer ts.Close()
		assert.Empty(t, newTestGoogle(ts).Search(context.Background(), "q", 5))
	})

	t.Run("dead endpoint", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		ts.Close()
		assert.Empty(t, newTestGoogle(ts).Search(context.Background(), "q", 5))
	})
}

func TestGoogleSearchTruncatesQuery(t *testing.T) {
	var seen string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Query().Get("q")
		w.Write([]byte(`{"items":[]}`))
	}))
	defer ts.Close()

	newTestGoogle(ts).Search(context.Background(), strings.Repeat("q", 1000), 5)

	assert.Len(t, seen, MaxQueryLen)
}

func TestDisabledSearcher(t *testing.T) {
	assert.Nil(t, Disabled{}.Search(context.Background(), "anything", 5))
}
