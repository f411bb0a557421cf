// Package persona converts an extracted ProfileSignal into a Persona via a
// single structured-generation call. This adapter performs no retries;
// retry policy belongs to its caller.
package persona

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/marcus/persona-map/internal/llm"
	"github.com/marcus/persona-map/internal/prompts"
	"github.com/marcus/persona-map/internal/schemas"
	"github.com/marcus/persona-map/internal/types"
)

const (
	// maxBioChars bounds how much extracted bio is embedded in the prompt.
	maxBioChars = 600

	// maxPromptTweets bounds how many posts are embedded in the prompt.
	maxPromptTweets = 15

	// maxListEntries caps traits/interests after generation.
	maxListEntries = 5

	generationTemperature = 0.7
)

// Synthesizer is the persona synthesis adapter.
type Synthesizer struct {
	client  llm.Client
	timeout time.Duration
}

// NewSynthesizer creates a persona synthesizer. timeout bounds the one
// outbound generation call.
func NewSynthesizer(client llm.Client, timeout time.Duration) *Synthesizer {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &Synthesizer{client: client, timeout: timeout}
}

// personaResponse is the accepted generator output shape.
type personaResponse struct {
	Name      string   `json:"name"`
	Handle    string   `json:"handle"`
	Bio       string   `json:"bio"`
	Traits    []string `json:"traits"`
	Interests []string `json:"interests"`
}

// Synthesize issues one structured-generation call and post-processes the
// result. The handle is always forced to the signal's handle, and a
// placeholder or empty name is substituted with the capitalized handle.
func (s *Synthesizer) Synthesize(ctx context.Context, signal *types.ProfileSignal) (*types.Persona, error) {
	if signal == nil || signal.Handle == "" {
		return nil, &Error{Kind: KindInvalidSchema, Message: "profile signal is missing a handle"}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.client.GenerateJSON(callCtx, llm.Request{
		System:      prompts.MustGet("persona.json", "synthesize-persona-system"),
		Prompt:      buildPrompt(signal),
		Tier:        llm.TierStandard,
		Temperature: generationTemperature,
	})
	if err != nil {
		return nil, classifyGenerationError(err)
	}

	if err := schemas.ValidatePersonaResponse(raw); err != nil {
		return nil, &Error{Kind: KindInvalidSchema, Message: "generator response failed schema validation", Cause: err}
	}

	var resp personaResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, &Error{Kind: KindInvalidSchema, Message: "generator response is not valid JSON", Cause: err}
	}

	return postProcess(&resp, signal)
}

// buildPrompt embeds bounded-length signal content into the user prompt.
func buildPrompt(signal *types.ProfileSignal) string {
	tweets := signal.Tweets
	if len(tweets) > maxPromptTweets {
		tweets = tweets[:maxPromptTweets]
	}
	tweetList := "- " + strings.Join(tweets, "\n- ")
	if len(tweets) == 0 {
		tweetList = "(no posts found)"
	}

	template := prompts.MustGet("persona.json", "synthesize-persona")
	return prompts.Format(template, map[string]string{
		"Handle": signal.Handle,
		"Name":   signal.Name,
		"Bio":    truncate(signal.Bio, maxBioChars),
		"Tweets": tweetList,
	})
}

// postProcess applies the mandatory normalization rules.
func postProcess(resp *personaResponse, signal *types.ProfileSignal) (*types.Persona, error) {
	traits := cleanList(resp.Traits)
	interests := cleanList(resp.Interests)
	if len(traits) == 0 || len(interests) == 0 {
		return nil, &Error{Kind: KindInvalidSchema, Message: "generator returned empty traits or interests"}
	}

	name := strings.TrimSpace(resp.Name)
	if name == "" || name == types.PlaceholderName {
		name = types.CapitalizeHandle(signal.Handle)
	}

	bio := strings.TrimSpace(resp.Bio)
	if bio == "" {
		bio = signal.Bio
	}

	return &types.Persona{
		Name:            name,
		Handle:          signal.Handle, // trusted input, never the generator's value
		Bio:             bio,
		Traits:          traits,
		Interests:       interests,
		ProfileImageURL: signal.ProfileImageURL,
	}, nil
}

// cleanList trims entries, drops empties, and caps the list length.
func cleanList(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e != "" {
			out = append(out, e)
		}
		if len(out) == maxListEntries {
			break
		}
	}
	return out
}

func classifyGenerationError(err error) error {
	switch {
	case errors.Is(err, llm.ErrEmptyResponse):
		return &Error{Kind: KindEmptyResponse, Message: "generator returned no content", Cause: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: KindTimeout, Message: "generation call timed out", Cause: err}
	default:
		return &Error{Kind: KindUpstream, Message: "generation call failed", Cause: err}
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
