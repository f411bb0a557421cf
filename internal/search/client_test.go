package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewHTTPClient("test-key", 2*time.Second)
	require.NoError(t, err)
	return client.WithBaseURL(srv.URL), srv
}

func TestNewHTTPClient_RequiresKey(t *testing.T) {
	_, err := NewHTTPClient("", time.Second)
	assert.Error(t, err)
}

func TestSearch_Success(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://x.com/torontodao", req["query"])
		assert.Equal(t, "keyword", req["type"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{
					"title":      "Toronto DAO (@torontodao)",
					"url":        "https://x.com/torontodao",
					"text":       "Building community",
					"highlights": []string{"crypto community"},
					"image":      "https://pbs.twimg.com/profile_images/1/a.jpg",
				},
			},
		})
	})

	results, err := client.Search(context.Background(), "https://x.com/torontodao", Options{
		NumResults: 10,
		MatchMode:  MatchKeyword,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Toronto DAO (@torontodao)", results[0].Title)
	assert.Equal(t, []string{"crypto community"}, results[0].Highlights)
	assert.Equal(t, "https://pbs.twimg.com/profile_images/1/a.jpg", results[0].ImageURL)
}

func TestSearch_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantKind   ErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, KindAuthFailure},
		{"forbidden", http.StatusForbidden, KindAuthFailure},
		{"rate limited", http.StatusTooManyRequests, KindRateLimited},
		{"server error", http.StatusInternalServerError, KindTransport},
		{"bad request", http.StatusBadRequest, KindTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(`{"error": "upstream detail that must not leak"}`))
			})

			_, err := client.Search(context.Background(), "q", Options{})
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, KindOf(err))
			assert.NotContains(t, err.Error(), "upstream detail")
		})
	}
}

func TestSearch_Timeout(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Search(ctx, "q", Options{})
	require.Error(t, err)
	assert.Equal(t, KindTimeout, KindOf(err))
}

func TestFetchContents(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contents", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"url": "https://x.com/torontodao", "text": "full page text"},
			},
		})
	})

	byURL, err := client.FetchContents(context.Background(), []string{"https://x.com/torontodao"})
	require.NoError(t, err)
	require.Len(t, byURL, 1)
	assert.Equal(t, "full page text", byURL["https://x.com/torontodao"].Text)
}

func TestFetchContents_EmptyInput(t *testing.T) {
	client, err := NewHTTPClient("key", time.Second)
	require.NoError(t, err)

	byURL, err := client.FetchContents(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, byURL)
}
