// Package recommend converts a Persona into a fixed-size set of unique,
// plausible locations in the target city. It uses the batch generation
// strategy: one call for the full set, then up to two corrective calls for
// any shortfall, then catalog backfill. Zero accepted locations is an
// error, never backfilled.
package recommend

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marcus/persona-map/internal/config"
	"github.com/marcus/persona-map/internal/llm"
	"github.com/marcus/persona-map/internal/prompts"
	"github.com/marcus/persona-map/internal/schemas"
	"github.com/marcus/persona-map/internal/types"
)

const (
	// maxCorrectiveRounds bounds the follow-up calls after the initial batch.
	maxCorrectiveRounds = 2

	generationTemperature = 0.8
)

// Synthesizer is the recommendation synthesis adapter.
type Synthesizer struct {
	client  llm.Client
	cfg     *config.Config
	timeout time.Duration
}

// NewSynthesizer creates a recommendation synthesizer using the configured
// city, target count, and per-call timeout.
func NewSynthesizer(client llm.Client, cfg *config.Config) *Synthesizer {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &Synthesizer{client: client, cfg: cfg, timeout: timeout}
}

// locationCandidate is the accepted generator output shape for one place.
type locationCandidate struct {
	Name        string            `json:"name"`
	Address     string            `json:"address"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Coordinates types.Coordinates `json:"coordinates"`
	Rating      float64           `json:"rating"`
	Website     string            `json:"website"`
	PriceLevel  int               `json:"priceLevel"`
}

// Recommend produces the recommendation set for a persona. A failed or
// malformed round is a failed attempt, not a terminal error; terminal
// errors arise only when no location at all could be accepted.
func (s *Synthesizer) Recommend(ctx context.Context, p *types.Persona) (*types.RecommendationSet, error) {
	if p == nil {
		return nil, &Error{Kind: KindNoResults, Message: "persona is required"}
	}

	acc := newAcceptor(s.cfg.RecommendationCount)
	sawContent := false

	for round := 0; round <= maxCorrectiveRounds && !acc.full(); round++ {
		prompt := s.buildPrompt(p, acc, round)

		raw, err := s.generate(ctx, prompt)
		if err != nil {
			log.Printf("[recommend] round %d generation failed: %v", round, err)
			continue
		}

		candidates, err := parseCandidates(raw)
		if err != nil {
			log.Printf("[recommend] round %d response rejected: %v", round, err)
			continue
		}
		sawContent = true

		for _, candidate := range candidates {
			loc := candidate.toLocation()
			repairLocation(&loc, s.cfg.CityCenter, s.cfg.CityBounds)
			acc.add(loc)
		}
		log.Printf("[recommend] round %d: %d candidates, %d/%d accepted",
			round, len(candidates), len(acc.accepted), acc.target)
	}

	if len(acc.accepted) == 0 {
		if !sawContent {
			return nil, &Error{Kind: KindEmptyResponse, Message: "no generation round produced parsable content"}
		}
		return nil, &Error{Kind: KindNoResults, Message: "no unique locations could be accepted"}
	}

	s.backfill(acc)

	return &types.RecommendationSet{Locations: acc.accepted}, nil
}

// buildPrompt returns the initial batch prompt on round 0 and a corrective
// prompt (shortfall count, accepted names excluded) afterwards. A later
// round with nothing accepted yet reuses the batch prompt, since a
// corrective prompt with an empty exclusion list makes no sense.
func (s *Synthesizer) buildPrompt(p *types.Persona, acc *acceptor, round int) string {
	if round == 0 || len(acc.accepted) == 0 {
		template := prompts.MustGet("recommend.json", "recommend-locations")
		return prompts.Format(template, map[string]string{
			"City":      s.cfg.CityName,
			"Count":     strconv.Itoa(acc.target),
			"Name":      p.Name,
			"Bio":       p.Bio,
			"Traits":    strings.Join(p.Traits, ", "),
			"Interests": strings.Join(p.Interests, ", "),
		})
	}

	template := prompts.MustGet("recommend.json", "recommend-corrective")
	return prompts.Format(template, map[string]string{
		"City":      s.cfg.CityName,
		"Count":     strconv.Itoa(acc.shortfall()),
		"Name":      p.Name,
		"Bio":       p.Bio,
		"Interests": strings.Join(p.Interests, ", "),
		"Exclude":   "- " + strings.Join(acc.excludeNames(), "\n- "),
	})
}

func (s *Synthesizer) generate(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	system := prompts.Format(
		prompts.MustGet("recommend.json", "recommend-locations-system"),
		map[string]string{"City": s.cfg.CityName},
	)

	return s.client.GenerateJSON(callCtx, llm.Request{
		System:      system,
		Prompt:      prompt,
		Tier:        llm.TierStandard,
		Temperature: generationTemperature,
	})
}

// parseCandidates validates the raw response against the locations schema
// before trusting any field.
func parseCandidates(raw string) ([]locationCandidate, error) {
	if err := schemas.ValidateLocationsResponse(raw); err != nil {
		return nil, err
	}
	var candidates []locationCandidate
	if err := json.Unmarshal([]byte(raw), &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

func (c locationCandidate) toLocation() types.Location {
	return types.Location{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(c.Name),
		Address:     strings.TrimSpace(c.Address),
		Description: strings.TrimSpace(c.Description),
		Category:    types.ParseCategory(c.Category),
		Coordinates: c.Coordinates,
		Rating:      c.Rating,
		Website:     c.Website,
		PriceLevel:  c.PriceLevel,
	}
}

// backfill tops up a short set from the fixed catalog, skipping anything
// colliding with an accepted location, until the set is full or the
// catalog is exhausted.
func (s *Synthesizer) backfill(acc *acceptor) {
	if acc.full() {
		return
	}
	before := len(acc.accepted)
	for _, entry := range backfillCatalog {
		if acc.full() {
			break
		}
		acc.add(types.Location{
			ID:          uuid.New().String(),
			Name:        entry.Name,
			Address:     entry.Address,
			Description: entry.Description,
			Category:    entry.Category,
			Coordinates: entry.Coordinates,
			Rating:      entry.Rating,
			Website:     entry.Website,
		})
	}
	if added := len(acc.accepted) - before; added > 0 {
		log.Printf("[recommend] backfilled %d locations from catalog", added)
	}
}

