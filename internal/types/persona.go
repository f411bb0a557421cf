// Package types provides type definitions for structured data used throughout the persona-map system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// PlaceholderName is the sentinel value generators return when they cannot
// determine a real display name. It must never survive into a Persona.
const PlaceholderName = "Unknown"

// ProfileSignal is the intermediate extraction result pulled out of raw
// search results for a handle.
type ProfileSignal struct {
	Handle          string   `json:"handle" validate:"required"`
	Name            string   `json:"name" validate:"required"`
	Bio             string   `json:"bio" validate:"required"`
	Tweets          []string `json:"tweets"`
	ProfileImageURL string   `json:"profile_image_url,omitempty"`
}

// Persona is the synthesized profile record produced from a ProfileSignal.
type Persona struct {
	Name            string   `json:"name" validate:"required"`
	Handle          string   `json:"handle" validate:"required"`
	Bio             string   `json:"bio" validate:"required"`
	Traits          []string `json:"traits" validate:"required,min=3,max=5,dive,required"`
	Interests       []string `json:"interests" validate:"required,min=3,max=5,dive,required"`
	ProfileImageURL string   `json:"profile_image_url,omitempty"`
}

// Validate validates the Persona using the validator.
func (p *Persona) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// NormalizeHandle strips leading @s and surrounding whitespace from a
// handle and lowercases it. Handles are case-insensitive upstream, so the
// lowercase form is canonical everywhere in the pipeline.
func NormalizeHandle(handle string) string {
	handle = strings.TrimSpace(handle)
	for strings.HasPrefix(handle, "@") {
		handle = handle[1:]
	}
	return strings.ToLower(strings.TrimSpace(handle))
}

// CapitalizeHandle uppercases the first rune of a handle for use as a
// fallback display name.
func CapitalizeHandle(handle string) string {
	handle = NormalizeHandle(handle)
	if handle == "" {
		return ""
	}
	return strings.ToUpper(handle[:1]) + handle[1:]
}
