// Package search obtains raw result records for a handle from an external
// search capability and isolates the rest of the pipeline from its
// instability: ordered query-strategy fallback, relevance gating, and
// non-fatal content enrichment.
package search

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/marcus/persona-map/internal/extract"
	"github.com/marcus/persona-map/internal/fetch"
	"github.com/marcus/persona-map/internal/types"
)

const (
	// defaultResultCount is how many records each strategy requests.
	defaultResultCount = 10

	// minContentLen is the text length under which a record counts as thin.
	minContentLen = 80

	// maxEnrichURLs bounds the follow-up content fetch.
	maxEnrichURLs = 3
)

// Adapter runs the strategy loop against a search Client.
type Adapter struct {
	client      Client
	timeout     time.Duration
	resultCount int
}

// NewAdapter creates a search adapter. timeout bounds each outbound call.
func NewAdapter(client Client, timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Adapter{
		client:      client,
		timeout:     timeout,
		resultCount: defaultResultCount,
	}
}

// Lookup tries each query strategy in order until one yields at least one
// relevant result for the handle, then enriches thin results. Auth and
// rate-limit failures abort the loop; timeouts and transport failures move
// to the next strategy. Exhaustion is KindNoResults.
func (a *Adapter) Lookup(ctx context.Context, handle string) ([]types.SearchResult, error) {
	handle = types.NormalizeHandle(handle)
	if handle == "" {
		return nil, &Error{Kind: KindNoResults, Message: "handle is empty"}
	}

	for _, strategy := range Strategies(handle) {
		results, err := a.searchOnce(ctx, strategy)
		if err != nil {
			kind := KindOf(err)
			if aborts(kind) {
				return nil, err
			}
			log.Printf("[search] strategy %s failed (%s), trying next", strategy.Name, kind)
			continue
		}

		relevant := extract.FilterRelevant(results, handle)
		if len(relevant) == 0 {
			log.Printf("[search] strategy %s returned %d results, none relevant", strategy.Name, len(results))
			continue
		}

		log.Printf("[search] strategy %s won with %d results (%d relevant)",
			strategy.Name, len(results), len(relevant))
		return a.enrich(ctx, results, handle), nil
	}

	return nil, &Error{Kind: KindNoResults, Message: "all query strategies exhausted for handle " + handle}
}

func (a *Adapter) searchOnce(ctx context.Context, strategy Strategy) ([]types.SearchResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	return a.client.Search(callCtx, strategy.Query, Options{
		NumResults:     a.resultCount,
		MatchMode:      strategy.MatchMode,
		IncludeDomains: strategy.IncludeDomains,
	})
}

// enrich issues a follow-up content fetch when the winning results carry no
// substantive text, merging retrieved text back by URL match. Enrichment
// failure is non-fatal; the original results are returned unmodified.
func (a *Adapter) enrich(ctx context.Context, results []types.SearchResult, handle string) []types.SearchResult {
	for _, r := range results {
		if r.HasContent(minContentLen) {
			return results
		}
	}

	urls := candidateURLs(results, handle)
	if len(urls) == 0 {
		return results
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	byURL, err := a.client.FetchContents(callCtx, urls)
	if err != nil || len(byURL) == 0 {
		log.Printf("[search] contents endpoint unavailable, fetching %d pages directly", len(urls))
		byURL = directFetch(ctx, urls)
	}
	if len(byURL) == 0 {
		return results
	}

	merged := make([]types.SearchResult, len(results))
	copy(merged, results)
	for i, r := range merged {
		fetched, ok := byURL[r.URL]
		if !ok {
			continue
		}
		if r.Text == "" {
			merged[i].Text = fetched.Text
		}
		if len(r.Highlights) == 0 {
			merged[i].Highlights = fetched.Highlights
		}
	}
	return merged
}

// candidateURLs picks up to maxEnrichURLs relevant record URLs, preferring
// profile-shaped pages.
func candidateURLs(results []types.SearchResult, handle string) []string {
	var urls []string
	seen := make(map[string]bool)

	appendURL := func(u string) {
		if u != "" && !seen[u] && len(urls) < maxEnrichURLs {
			seen[u] = true
			urls = append(urls, u)
		}
	}

	for _, r := range extract.FilterRelevant(results, handle) {
		appendURL(r.URL)
	}
	for _, r := range results {
		appendURL(r.URL)
	}
	return urls
}

// directFetch retrieves pages over plain HTTP when the search capability's
// contents endpoint fails, extracting main text with the HTML processor.
func directFetch(ctx context.Context, urls []string) map[string]types.SearchResult {
	results := make([]types.SearchResult, len(urls))

	g, fetchCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxEnrichURLs)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			page, err := fetch.URL(fetchCtx, u, nil)
			if err != nil {
				return nil // non-fatal, slot stays empty
			}
			text, err := fetch.ExtractMainText(page.HTML, fetch.ProfilePageSelectors())
			if err != nil || text == "" {
				return nil
			}
			results[i] = types.SearchResult{URL: u, Text: text}
			return nil
		})
	}
	_ = g.Wait()

	byURL := make(map[string]types.SearchResult)
	for _, r := range results {
		if r.URL != "" {
			byURL[r.URL] = r
		}
	}
	return byURL
}
