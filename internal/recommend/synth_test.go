package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/persona-map/internal/config"
	"github.com/marcus/persona-map/internal/llm"
	"github.com/marcus/persona-map/internal/types"
)

type fakeReply struct {
	text string
	err  error
}

// fakeLLM answers scripted replies in order and records every request.
type fakeLLM struct {
	replies  []fakeReply
	requests []llm.Request
}

func (f *fakeLLM) GenerateJSON(_ context.Context, req llm.Request) (string, error) {
	f.requests = append(f.requests, req)
	idx := len(f.requests) - 1
	if idx >= len(f.replies) {
		return "", llm.ErrEmptyResponse
	}
	reply := f.replies[idx]
	return reply.text, reply.err
}

func (f *fakeLLM) Close() error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		CityName:            "Toronto",
		CityCenter:          config.DefaultCityCenter,
		CityBounds:          config.DefaultCityBounds,
		RecommendationCount: 5,
		RequestTimeout:      time.Second,
	}
}

func testPersona() *types.Persona {
	return &types.Persona{
		Name:      "Torontodao",
		Handle:    "torontodao",
		Bio:       "Building Canada's most vibrant crypto community",
		Traits:    []string{"community-minded", "ambitious", "tech-savvy"},
		Interests: []string{"web3", "local food", "meetups"},
	}
}

func candidate(name, address string) map[string]any {
	return map[string]any{
		"name":        name,
		"address":     address,
		"description": "A place worth visiting in Toronto.",
		"category":    "cafe",
		"coordinates": map[string]float64{"lat": 43.65, "lng": -79.38},
		"rating":      4.3,
		"website":     "https://example.com/" + strings.ToLower(name),
		"priceLevel":  2,
	}
}

func candidatesJSON(t *testing.T, candidates ...map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(candidates)
	require.NoError(t, err)
	return string(raw)
}

func fiveCandidates(t *testing.T) string {
	t.Helper()
	list := make([]map[string]any, 0, 5)
	for i := 1; i <= 5; i++ {
		list = append(list, candidate(
			fmt.Sprintf("Place %d", i),
			fmt.Sprintf("%d Queen St W, Toronto, ON", i*100),
		))
	}
	return candidatesJSON(t, list...)
}

func TestRecommend_FullSetFirstRound(t *testing.T) {
	client := &fakeLLM{replies: []fakeReply{{text: fiveCandidates(t)}}}
	synth := NewSynthesizer(client, testConfig())

	set, err := synth.Recommend(context.Background(), testPersona())
	require.NoError(t, err)
	require.Len(t, set.Locations, 5)
	assert.Len(t, client.requests, 1, "a full first round needs no corrective call")

	seen := map[string]bool{}
	for _, loc := range set.Locations {
		assert.NotEmpty(t, loc.ID)
		assert.False(t, seen[loc.ID], "location IDs must be unique")
		seen[loc.ID] = true
	}
}

func TestRecommend_PromptEmbedsPersona(t *testing.T) {
	client := &fakeLLM{replies: []fakeReply{{text: fiveCandidates(t)}}}
	synth := NewSynthesizer(client, testConfig())

	_, err := synth.Recommend(context.Background(), testPersona())
	require.NoError(t, err)

	prompt := client.requests[0].Prompt
	assert.Contains(t, prompt, "Torontodao")
	assert.Contains(t, prompt, "web3")
	assert.Contains(t, prompt, "community-minded")
	assert.Contains(t, prompt, "Toronto")
	assert.Equal(t, llm.TierStandard, client.requests[0].Tier)
}

func TestRecommend_CorrectiveRoundFillsShortfall(t *testing.T) {
	// Round one repeats a name, leaving the set one short.
	first := candidatesJSON(t,
		candidate("Place A", "1 King St W"),
		candidate("Place B", "2 King St W"),
		candidate("Place C", "3 King St W"),
		candidate("Place D", "4 King St W"),
		candidate("Place A", "5 King St W"),
	)
	second := candidatesJSON(t, candidate("Place E", "6 King St W"))
	client := &fakeLLM{replies: []fakeReply{{text: first}, {text: second}}}
	synth := NewSynthesizer(client, testConfig())

	set, err := synth.Recommend(context.Background(), testPersona())
	require.NoError(t, err)
	require.Len(t, set.Locations, 5)
	require.Len(t, client.requests, 2)

	corrective := client.requests[1].Prompt
	assert.Contains(t, corrective, "1", "corrective prompt asks for the shortfall count")
	assert.Contains(t, corrective, "Place A", "accepted names are excluded")
	assert.Contains(t, corrective, "Place D")
	assert.NotContains(t, corrective, "Place E")
}

func TestRecommend_DuplicateAddressRejected(t *testing.T) {
	first := candidatesJSON(t,
		candidate("Place A", "1 King St W"),
		candidate("Place B", "1 king st w "),
		candidate("Place C", "3 King St W"),
		candidate("Place D", "4 King St W"),
		candidate("Place E", "5 King St W"),
	)
	second := candidatesJSON(t, candidate("Place F", "6 King St W"))
	client := &fakeLLM{replies: []fakeReply{{text: first}, {text: second}}}
	synth := NewSynthesizer(client, testConfig())

	set, err := synth.Recommend(context.Background(), testPersona())
	require.NoError(t, err)
	require.Len(t, set.Locations, 5)

	for _, loc := range set.Locations {
		assert.NotEqual(t, "Place B", loc.Name, "same normalized address means same place")
	}
}

func TestRecommend_BackfillOnPartialShortfall(t *testing.T) {
	only := candidatesJSON(t,
		candidate("Place A", "1 King St W"),
		candidate("Place B", "2 King St W"),
	)
	// Every round returns the same two places; corrective rounds add nothing.
	client := &fakeLLM{replies: []fakeReply{{text: only}, {text: only}, {text: only}}}
	synth := NewSynthesizer(client, testConfig())

	set, err := synth.Recommend(context.Background(), testPersona())
	require.NoError(t, err)
	require.Len(t, set.Locations, 5)
	assert.Len(t, client.requests, 3, "both corrective rounds are spent before backfill")

	names := map[string]bool{}
	for _, loc := range set.Locations {
		names[loc.Name] = true
	}
	assert.True(t, names["Place A"])
	assert.True(t, names["Place B"])
	assert.True(t, names[backfillCatalog[0].Name], "shortfall comes from the catalog in order")
}

func TestRecommend_BackfillSkipsAcceptedCollision(t *testing.T) {
	only := candidatesJSON(t, candidate(backfillCatalog[0].Name, "999 Somewhere Ave"))
	client := &fakeLLM{replies: []fakeReply{{text: only}, {text: only}, {text: only}}}
	synth := NewSynthesizer(client, testConfig())

	set, err := synth.Recommend(context.Background(), testPersona())
	require.NoError(t, err)
	require.Len(t, set.Locations, 5)

	count := 0
	for _, loc := range set.Locations {
		if types.NormalizeKey(loc.Name) == types.NormalizeKey(backfillCatalog[0].Name) {
			count++
		}
	}
	assert.Equal(t, 1, count, "catalog entry colliding with an accepted name appears once")
}

func TestRecommend_AllRoundsFail(t *testing.T) {
	upstream := errors.New("model unavailable")
	client := &fakeLLM{replies: []fakeReply{{err: upstream}, {err: upstream}, {err: upstream}}}
	synth := NewSynthesizer(client, testConfig())

	set, err := synth.Recommend(context.Background(), testPersona())
	require.Error(t, err)
	assert.Nil(t, set)
	assert.Equal(t, KindEmptyResponse, KindOf(err))
	assert.Len(t, client.requests, 3)
}

func TestRecommend_AllRoundsMalformed(t *testing.T) {
	client := &fakeLLM{replies: []fakeReply{
		{text: "not json"},
		{text: `{"name": "an object, not an array"}`},
		{text: "[]"},
	}}
	synth := NewSynthesizer(client, testConfig())

	_, err := synth.Recommend(context.Background(), testPersona())
	require.Error(t, err)
	assert.Equal(t, KindEmptyResponse, KindOf(err), "unparsable rounds never count as content")
}

func TestRecommend_ParsableButNothingAccepted(t *testing.T) {
	blank := candidatesJSON(t, candidate("Place A", "   "))
	client := &fakeLLM{replies: []fakeReply{{text: blank}, {text: blank}, {text: blank}}}
	synth := NewSynthesizer(client, testConfig())

	_, err := synth.Recommend(context.Background(), testPersona())
	require.Error(t, err)
	assert.Equal(t, KindNoResults, KindOf(err), "zero accepted locations is never backfilled")
}

func TestRecommend_RepairsAppliedToCandidates(t *testing.T) {
	broken := candidate("Place A", "1 King St W")
	broken["coordinates"] = map[string]float64{"lat": 51.5074, "lng": -0.1278}
	broken["category"] = "spaceport"
	broken["rating"] = 0.0
	broken["website"] = "https://www.google.com/maps/place/somewhere"

	rest := []map[string]any{
		candidate("Place B", "2 King St W"),
		candidate("Place C", "3 King St W"),
		candidate("Place D", "4 King St W"),
		candidate("Place E", "5 King St W"),
	}
	client := &fakeLLM{replies: []fakeReply{
		{text: candidatesJSON(t, append([]map[string]any{broken}, rest...)...)},
	}}
	synth := NewSynthesizer(client, testConfig())

	set, err := synth.Recommend(context.Background(), testPersona())
	require.NoError(t, err)
	require.Len(t, set.Locations, 5)

	repaired := set.Locations[0]
	assert.Equal(t, "Place A", repaired.Name)
	assert.Equal(t, config.DefaultCityCenter, repaired.Coordinates)
	assert.Equal(t, types.CategoryOther, repaired.Category)
	assert.Equal(t, defaultRating, repaired.Rating)
	assert.Empty(t, repaired.Website, "mapping links are stripped")
}

func TestRecommend_FailedRoundThenSuccess(t *testing.T) {
	client := &fakeLLM{replies: []fakeReply{
		{err: context.DeadlineExceeded},
		{text: fiveCandidates(t)},
	}}
	synth := NewSynthesizer(client, testConfig())

	set, err := synth.Recommend(context.Background(), testPersona())
	require.NoError(t, err)
	assert.Len(t, set.Locations, 5)
	require.Len(t, client.requests, 2, "a failed round is retried")

	// With nothing accepted there is nothing to exclude, so the retry
	// repeats the full batch prompt rather than a corrective one.
	retry := client.requests[1].Prompt
	assert.Contains(t, retry, "community-minded")
	assert.NotContains(t, retry, "already-recommended")
}

func TestRecommend_NilPersona(t *testing.T) {
	client := &fakeLLM{}
	synth := NewSynthesizer(client, testConfig())

	_, err := synth.Recommend(context.Background(), nil)
	require.Error(t, err)
	assert.Empty(t, client.requests)
}
