package recommend

import (
	"net/url"
	"strings"

	"github.com/marcus/persona-map/internal/config"
	"github.com/marcus/persona-map/internal/types"
)

// defaultRating is the neutral value assigned when the generator omits one.
const defaultRating = 4.0

// mappingHosts and mappingPathSegments identify map-service links, which are
// never surfaced as a place's official website.
var mappingHosts = []string{
	"google.com/maps", "maps.google.", "goo.gl/maps", "maps.app.goo.gl",
	"maps.apple.com", "openstreetmap.org", "waze.com", "bing.com/maps",
}

// repairLocation fills in missing or implausible fields on a candidate so
// every accepted Location is renderable. Coordinates outside the city
// bounding box are replaced with the known-good center point.
func repairLocation(loc *types.Location, center types.Coordinates, bounds config.Bounds) {
	if !bounds.Contains(loc.Coordinates) {
		loc.Coordinates = center
	}
	if !loc.Category.IsValid() {
		loc.Category = types.CategoryOther
	}
	if loc.Rating == 0 {
		loc.Rating = defaultRating
	}
	if loc.Rating < 1.0 {
		loc.Rating = 1.0
	}
	if loc.Rating > 5.0 {
		loc.Rating = 5.0
	}
	loc.Website = FilterWebsite(loc.Website)
}

// FilterWebsite discards a website value unless it parses as an absolute
// HTTP(S) URL with a dotted host and is not a mapping-service link.
// The accepted value is preserved verbatim.
func FilterWebsite(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return ""
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ""
	}
	if parsed.Host == "" || !strings.Contains(parsed.Host, ".") {
		return ""
	}

	lower := strings.ToLower(parsed.Host + parsed.Path)
	for _, mapping := range mappingHosts {
		if strings.Contains(lower, mapping) {
			return ""
		}
	}

	return trimmed
}
