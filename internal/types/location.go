package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Category classifies a recommended location.
type Category string

// Supported location categories.
const (
	CategoryRestaurant    Category = "restaurant"
	CategoryCafe          Category = "cafe"
	CategoryBar           Category = "bar"
	CategoryPark          Category = "park"
	CategoryMuseum        Category = "museum"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryAttraction    Category = "attraction"
	CategorySports        Category = "sports"
	CategoryFitness       Category = "fitness"
	CategoryEducation     Category = "education"
	CategoryArt           Category = "art"
	CategoryMusic         Category = "music"
	CategoryOutdoor       Category = "outdoor"
	CategoryOther         Category = "other"
)

// validCategories is the closed set accepted from generators.
var validCategories = map[Category]bool{
	CategoryRestaurant: true, CategoryCafe: true, CategoryBar: true,
	CategoryPark: true, CategoryMuseum: true, CategoryShopping: true,
	CategoryEntertainment: true, CategoryAttraction: true, CategorySports: true,
	CategoryFitness: true, CategoryEducation: true, CategoryArt: true,
	CategoryMusic: true, CategoryOutdoor: true, CategoryOther: true,
}

// IsValid reports whether c is one of the supported categories.
func (c Category) IsValid() bool {
	return validCategories[c]
}

// ParseCategory normalizes a raw category string, returning CategoryOther
// for anything outside the supported set.
func ParseCategory(raw string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c.IsValid() {
		return c
	}
	return CategoryOther
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is a single recommended place.
type Location struct {
	ID          string      `json:"id" validate:"required"`
	Name        string      `json:"name" validate:"required"`
	Address     string      `json:"address" validate:"required"`
	Description string      `json:"description"`
	Category    Category    `json:"category" validate:"required"`
	Coordinates Coordinates `json:"coordinates"`
	Rating      float64     `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Website     string      `json:"website,omitempty"`
	PriceLevel  int         `json:"priceLevel,omitempty"`
}

// Validate validates the Location using the validator.
func (l *Location) Validate() error {
	validate := validator.New()
	return validate.Struct(l)
}

// NormalizeKey lowercases and trims a name or address for dedup comparison.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// RecommendationSet is the ordered list of accepted locations for one request.
type RecommendationSet struct {
	Locations []Location `json:"locations"`
}
