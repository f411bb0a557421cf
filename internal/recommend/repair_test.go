package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marcus/persona-map/internal/config"
	"github.com/marcus/persona-map/internal/types"
)

func TestRepairLocation(t *testing.T) {
	center := config.DefaultCityCenter
	bounds := config.DefaultCityBounds

	tests := []struct {
		name string
		in   types.Location
		want func(t *testing.T, loc types.Location)
	}{
		{
			name: "valid location untouched",
			in: types.Location{
				Name:        "Good Cafe",
				Category:    types.CategoryCafe,
				Coordinates: types.Coordinates{Lat: 43.65, Lng: -79.38},
				Rating:      4.5,
				Website:     "https://goodcafe.ca",
			},
			want: func(t *testing.T, loc types.Location) {
				assert.Equal(t, types.Coordinates{Lat: 43.65, Lng: -79.38}, loc.Coordinates)
				assert.Equal(t, types.CategoryCafe, loc.Category)
				assert.Equal(t, 4.5, loc.Rating)
				assert.Equal(t, "https://goodcafe.ca", loc.Website)
			},
		},
		{
			name: "coordinates outside bounds snap to center",
			in:   types.Location{Coordinates: types.Coordinates{Lat: 48.85, Lng: 2.35}},
			want: func(t *testing.T, loc types.Location) {
				assert.Equal(t, center, loc.Coordinates)
			},
		},
		{
			name: "zero coordinates snap to center",
			in:   types.Location{},
			want: func(t *testing.T, loc types.Location) {
				assert.Equal(t, center, loc.Coordinates)
			},
		},
		{
			name: "unknown category becomes other",
			in:   types.Location{Category: "spaceport", Coordinates: center},
			want: func(t *testing.T, loc types.Location) {
				assert.Equal(t, types.CategoryOther, loc.Category)
			},
		},
		{
			name: "missing rating gets default",
			in:   types.Location{Coordinates: center, Category: types.CategoryPark},
			want: func(t *testing.T, loc types.Location) {
				assert.Equal(t, defaultRating, loc.Rating)
			},
		},
		{
			name: "rating clamped to range",
			in:   types.Location{Coordinates: center, Category: types.CategoryPark, Rating: 9.7},
			want: func(t *testing.T, loc types.Location) {
				assert.Equal(t, 5.0, loc.Rating)
			},
		},
		{
			name: "rating below range clamped up",
			in:   types.Location{Coordinates: center, Category: types.CategoryPark, Rating: 0.2},
			want: func(t *testing.T, loc types.Location) {
				assert.Equal(t, 1.0, loc.Rating)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := tt.in
			repairLocation(&loc, center, bounds)
			tt.want(t, loc)
		})
	}
}

func TestFilterWebsite(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"valid https", "https://example.com/menu", "https://example.com/menu"},
		{"valid http", "http://example.com", "http://example.com"},
		{"preserved verbatim", "https://Example.com/Path?q=1", "https://Example.com/Path?q=1"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"relative path", "/about", ""},
		{"no scheme", "example.com", ""},
		{"ftp scheme", "ftp://example.com", ""},
		{"bare host without dot", "https://localhost", ""},
		{"google maps link", "https://www.google.com/maps/place/cn-tower", ""},
		{"goo.gl maps link", "https://maps.app.goo.gl/abc123", ""},
		{"not parseable", "https://exa mple.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterWebsite(tt.in))
		})
	}
}

func TestBackfillCatalogIsUsable(t *testing.T) {
	assert.GreaterOrEqual(t, len(backfillCatalog), config.DefaultRecommendationCount,
		"catalog must be able to fill a whole set on its own")

	seen := map[string]bool{}
	for _, entry := range backfillCatalog {
		assert.NotEmpty(t, entry.Name)
		assert.NotEmpty(t, entry.Address)
		assert.True(t, config.DefaultCityBounds.Contains(entry.Coordinates),
			"%s coordinates must sit inside the city bounds", entry.Name)
		assert.True(t, entry.Category.IsValid(), "%s category", entry.Name)
		key := types.NormalizeKey(entry.Name)
		assert.False(t, seen[key], "duplicate catalog entry %s", entry.Name)
		seen[key] = true
	}
}
