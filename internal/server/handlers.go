package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/marcus/persona-map/internal/pipeline"
	"github.com/marcus/persona-map/internal/types"
)

type personaRequest struct {
	XHandle string `json:"xHandle"`
}

type personaResponse struct {
	Success bool           `json:"success"`
	Persona *types.Persona `json:"persona,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type locationsRequest struct {
	Persona *types.Persona `json:"persona"`
}

type locationsResponse struct {
	Success   bool             `json:"success"`
	Locations []types.Location `json:"locations,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// handleCreatePersona runs the handle -> persona half of the pipeline.
func (s *Server) handleCreatePersona(w http.ResponseWriter, r *http.Request) {
	var req personaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := s.pipeline.CreatePersona(r.Context(), req.XHandle)
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, personaResponse{Success: true, Persona: p})
}

// handleCreateLocations runs the persona -> recommendations half.
func (s *Server) handleCreateLocations(w http.ResponseWriter, r *http.Request) {
	var req locationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	set, err := s.pipeline.CreateRecommendations(r.Context(), req.Persona)
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, locationsResponse{Success: true, Locations: set.Locations})
}

// pipelineError maps a pipeline failure onto the response contract. Status
// comes from the error kind; the body carries only the user-safe message.
func (s *Server) pipelineError(w http.ResponseWriter, err error) {
	var perr *pipeline.Error
	if errors.As(err, &perr) {
		log.Printf("[server] pipeline failure (%s): %v", perr.Kind, err)
		s.errorResponse(w, perr.HTTPStatus(), perr.Message)
		return
	}
	log.Printf("[server] unexpected failure: %v", err)
	s.errorResponse(w, http.StatusInternalServerError, "internal error")
}
