// Package pipeline composes the search, persona, and recommendation
// adapters into the two operations the application exposes. It sequences,
// validates input, and translates adapter failures into the external
// taxonomy; it performs no retries and holds no state across invocations.
package pipeline

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/marcus/persona-map/internal/config"
	"github.com/marcus/persona-map/internal/extract"
	"github.com/marcus/persona-map/internal/persona"
	"github.com/marcus/persona-map/internal/recommend"
	"github.com/marcus/persona-map/internal/search"
	"github.com/marcus/persona-map/internal/types"
)

// SearchService finds raw web results for a handle.
type SearchService interface {
	Lookup(ctx context.Context, handle string) ([]types.SearchResult, error)
}

// PersonaService turns an extracted profile signal into a persona.
type PersonaService interface {
	Synthesize(ctx context.Context, signal *types.ProfileSignal) (*types.Persona, error)
}

// RecommendService turns a persona into a recommendation set.
type RecommendService interface {
	Recommend(ctx context.Context, p *types.Persona) (*types.RecommendationSet, error)
}

// Orchestrator wires the adapters behind the two public operations.
type Orchestrator struct {
	search    SearchService
	persona   PersonaService
	recommend RecommendService
	tweetCap  int
}

// NewOrchestrator builds an orchestrator over explicitly injected
// adapters. Adapters are constructed once per process by the caller.
func NewOrchestrator(searchSvc SearchService, personaSvc PersonaService, recommendSvc RecommendService, cfg *config.Config) *Orchestrator {
	tweetCap := config.DefaultTweetCap
	if cfg != nil && cfg.TweetCap > 0 {
		tweetCap = cfg.TweetCap
	}
	return &Orchestrator{
		search:    searchSvc,
		persona:   personaSvc,
		recommend: recommendSvc,
		tweetCap:  tweetCap,
	}
}

// CreatePersona runs handle -> search -> extraction -> synthesis.
func (o *Orchestrator) CreatePersona(ctx context.Context, handle string) (*types.Persona, error) {
	normalized := types.NormalizeHandle(handle)
	if normalized == "" {
		return nil, &Error{Kind: KindInputValidation, Message: "handle is required"}
	}

	log.Printf("[pipeline] creating persona for @%s", normalized)

	results, err := o.search.Lookup(ctx, normalized)
	if err != nil {
		return nil, translateSearchError(err)
	}

	signal, err := extract.Signal(results, normalized, o.tweetCap)
	if err != nil {
		return nil, &Error{
			Kind:    KindNoUsableResults,
			Message: "no usable profile information was found for this handle",
			Cause:   err,
		}
	}

	p, err := o.persona.Synthesize(ctx, signal)
	if err != nil {
		return nil, translatePersonaError(err)
	}

	log.Printf("[pipeline] persona ready for @%s (%d traits, %d interests)",
		normalized, len(p.Traits), len(p.Interests))
	return p, nil
}

// CreateRecommendations runs persona -> recommendation synthesis.
func (o *Orchestrator) CreateRecommendations(ctx context.Context, p *types.Persona) (*types.RecommendationSet, error) {
	if err := validatePersonaInput(p); err != nil {
		return nil, err
	}

	log.Printf("[pipeline] creating recommendations for %q", p.Name)

	set, err := o.recommend.Recommend(ctx, p)
	if err != nil {
		return nil, translateRecommendError(err)
	}

	log.Printf("[pipeline] %d recommendations ready for %q", len(set.Locations), p.Name)
	return set, nil
}

func validatePersonaInput(p *types.Persona) error {
	if p == nil {
		return &Error{Kind: KindInputValidation, Message: "persona is required"}
	}
	if strings.TrimSpace(p.Handle) == "" {
		return &Error{Kind: KindInputValidation, Message: "persona handle is required"}
	}
	if len(p.Traits) == 0 || len(p.Interests) == 0 {
		return &Error{Kind: KindInputValidation, Message: "persona must include traits and interests"}
	}
	return nil
}

func translateSearchError(err error) *Error {
	var serr *search.Error
	if !errors.As(err, &serr) {
		return &Error{Kind: KindUpstreamTransport, Message: "search request failed", Cause: err}
	}
	switch serr.Kind {
	case search.KindAuthFailure:
		return &Error{Kind: KindUpstreamAuthFailure, Message: "search service rejected the configured credentials", Cause: err}
	case search.KindRateLimited:
		return &Error{Kind: KindUpstreamRateLimited, Message: "search service rate limit reached, try again shortly", Cause: err}
	case search.KindTimeout:
		return &Error{Kind: KindUpstreamTimeout, Message: "search request timed out", Cause: err}
	case search.KindNoResults:
		return &Error{Kind: KindNoUsableResults, Message: "no search results were found for this handle", Cause: err}
	default:
		return &Error{Kind: KindUpstreamTransport, Message: "search request failed", Cause: err}
	}
}

func translatePersonaError(err error) *Error {
	switch persona.KindOf(err) {
	case persona.KindEmptyResponse:
		return &Error{Kind: KindUpstreamEmptyResponse, Message: "persona generation returned no content", Cause: err}
	case persona.KindInvalidSchema:
		return &Error{Kind: KindUpstreamInvalidSchema, Message: "persona generation returned an unusable response", Cause: err}
	case persona.KindTimeout:
		return &Error{Kind: KindUpstreamTimeout, Message: "persona generation timed out", Cause: err}
	default:
		return &Error{Kind: KindUpstreamTransport, Message: "persona generation failed", Cause: err}
	}
}

func translateRecommendError(err error) *Error {
	switch recommend.KindOf(err) {
	case recommend.KindEmptyResponse:
		return &Error{Kind: KindUpstreamEmptyResponse, Message: "recommendation generation returned no content", Cause: err}
	default:
		return &Error{Kind: KindNoUsableResults, Message: "no recommendations could be assembled for this persona", Cause: err}
	}
}
