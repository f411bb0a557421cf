package persona

import (
	"context"
	"testing"
	"time"

	"github.com/marcus/persona-map/internal/llm"
	"github.com/marcus/persona-map/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLLM returns scripted responses and records the prompts it saw.
type fakeLLM struct {
	response string
	err      error
	requests []llm.Request
}

func (f *fakeLLM) GenerateJSON(_ context.Context, req llm.Request) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) Close() error { return nil }

func testSignal() *types.ProfileSignal {
	return &types.ProfileSignal{
		Handle:          "torontodao",
		Name:            "Toronto DAO",
		Bio:             "Building Canada's most vibrant crypto community 🍁",
		Tweets:          []string{"gm Toronto!", "community call thursday"},
		ProfileImageURL: "https://pbs.twimg.com/profile_images/1/a.jpg",
	}
}

const validResponse = `{
	"name": "Toronto DAO",
	"handle": "somethingelse",
	"bio": "A community of builders growing Toronto's onchain scene.",
	"traits": ["community-minded", "optimistic", "welcoming"],
	"interests": ["crypto", "civic tech", "meetups"]
}`

func TestSynthesize_Success(t *testing.T) {
	client := &fakeLLM{response: validResponse}
	synth := NewSynthesizer(client, time.Second)

	p, err := synth.Synthesize(context.Background(), testSignal())
	require.NoError(t, err)

	assert.Equal(t, "Toronto DAO", p.Name)
	assert.Equal(t, "torontodao", p.Handle, "handle must be forced to the requested handle")
	assert.Len(t, p.Traits, 3)
	assert.Len(t, p.Interests, 3)
	assert.Equal(t, "https://pbs.twimg.com/profile_images/1/a.jpg", p.ProfileImageURL)
}

func TestSynthesize_PromptEmbedsSignal(t *testing.T) {
	client := &fakeLLM{response: validResponse}
	synth := NewSynthesizer(client, time.Second)

	_, err := synth.Synthesize(context.Background(), testSignal())
	require.NoError(t, err)

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Contains(t, req.Prompt, "torontodao")
	assert.Contains(t, req.Prompt, "vibrant crypto community")
	assert.Contains(t, req.Prompt, "gm Toronto!")
	assert.NotEmpty(t, req.System)
}

func TestSynthesize_PlaceholderNameSubstituted(t *testing.T) {
	client := &fakeLLM{response: `{
		"name": "Unknown",
		"bio": "Bio text.",
		"traits": ["a", "b", "c"],
		"interests": ["x", "y", "z"]
	}`}
	synth := NewSynthesizer(client, time.Second)

	p, err := synth.Synthesize(context.Background(), testSignal())
	require.NoError(t, err)
	assert.Equal(t, "Torontodao", p.Name)
}

func TestSynthesize_EmptyNameSubstituted(t *testing.T) {
	client := &fakeLLM{response: `{
		"name": "   ",
		"bio": "Bio text.",
		"traits": ["a", "b", "c"],
		"interests": ["x", "y", "z"]
	}`}
	synth := NewSynthesizer(client, time.Second)

	p, err := synth.Synthesize(context.Background(), testSignal())
	require.NoError(t, err)
	assert.Equal(t, "Torontodao", p.Name)
}

func TestSynthesize_EmptyTraitsIsInvalidSchema(t *testing.T) {
	// Passes schema validation but fails the non-empty invariant after cleaning.
	client := &fakeLLM{response: `{
		"name": "X",
		"bio": "Bio.",
		"traits": ["  ", "  ", "  "],
		"interests": ["x", "y", "z"]
	}`}
	synth := NewSynthesizer(client, time.Second)

	_, err := synth.Synthesize(context.Background(), testSignal())
	require.Error(t, err)
	assert.Equal(t, KindInvalidSchema, KindOf(err))
}

func TestSynthesize_TooFewTraitsIsInvalidSchema(t *testing.T) {
	// A structurally valid list below the 3-entry floor is rejected by the
	// schema, not repaired.
	client := &fakeLLM{response: `{
		"name": "X",
		"bio": "Bio.",
		"traits": ["curious", "social"],
		"interests": ["x", "y", "z"]
	}`}
	synth := NewSynthesizer(client, time.Second)

	_, err := synth.Synthesize(context.Background(), testSignal())
	require.Error(t, err)
	assert.Equal(t, KindInvalidSchema, KindOf(err))
}

func TestSynthesize_TraitsCappedAtFive(t *testing.T) {
	client := &fakeLLM{response: `{
		"name": "X",
		"bio": "Bio.",
		"traits": ["a", "b", "c", "d", "e", "f", "g"],
		"interests": ["x", "y", "z"]
	}`}
	synth := NewSynthesizer(client, time.Second)

	p, err := synth.Synthesize(context.Background(), testSignal())
	require.NoError(t, err)
	assert.Len(t, p.Traits, 5)
}

func TestSynthesize_MalformedResponseIsInvalidSchema(t *testing.T) {
	client := &fakeLLM{response: `{"wrong_shape": true}`}
	synth := NewSynthesizer(client, time.Second)

	_, err := synth.Synthesize(context.Background(), testSignal())
	require.Error(t, err)
	assert.Equal(t, KindInvalidSchema, KindOf(err))
}

func TestSynthesize_EmptyResponseDistinctFromInvalid(t *testing.T) {
	client := &fakeLLM{err: llm.ErrEmptyResponse}
	synth := NewSynthesizer(client, time.Second)

	_, err := synth.Synthesize(context.Background(), testSignal())
	require.Error(t, err)
	assert.Equal(t, KindEmptyResponse, KindOf(err))
}

func TestSynthesize_Deterministic(t *testing.T) {
	client := &fakeLLM{response: validResponse}
	synth := NewSynthesizer(client, time.Second)

	first, err := synth.Synthesize(context.Background(), testSignal())
	require.NoError(t, err)
	second, err := synth.Synthesize(context.Background(), testSignal())
	require.NoError(t, err)
	assert.Equal(t, first, second, "identical upstream responses must yield identical personas")
}

func TestSynthesize_NilSignal(t *testing.T) {
	synth := NewSynthesizer(&fakeLLM{}, time.Second)
	_, err := synth.Synthesize(context.Background(), nil)
	assert.Error(t, err)
}

func TestSynthesize_SingleAttempt(t *testing.T) {
	client := &fakeLLM{err: llm.ErrEmptyResponse}
	synth := NewSynthesizer(client, time.Second)

	_, _ = synth.Synthesize(context.Background(), testSignal())
	assert.Len(t, client.requests, 1, "adapter must not retry internally")
}
