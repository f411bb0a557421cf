// Package config provides configuration loading and validation for the pipeline.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/marcus/persona-map/internal/types"
)

// Defaults for the target city and pipeline tuning.
const (
	DefaultCityName            = "Toronto"
	DefaultRecommendationCount = 5
	DefaultTweetCap            = 20
	DefaultRequestTimeout      = 45 * time.Second
)

// DefaultCityCenter is the known-good fallback point for locations with
// missing or implausible coordinates.
var DefaultCityCenter = types.Coordinates{Lat: 43.6532, Lng: -79.3832}

// Bounds is a plausibility bounding box for generated coordinates.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// Contains reports whether c falls inside the box.
func (b Bounds) Contains(c types.Coordinates) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat &&
		c.Lng >= b.MinLng && c.Lng <= b.MaxLng
}

// DefaultCityBounds covers the Greater Toronto Area.
var DefaultCityBounds = Bounds{MinLat: 43.4, MaxLat: 44.0, MinLng: -80.0, MaxLng: -79.0}

// Config holds resolved configuration for the adapters and server.
// API keys are resolved once here; their absence is a configuration error
// surfaced before any network call.
type Config struct {
	Port         int
	SearchAPIKey string
	GeminiAPIKey string

	CityName   string
	CityCenter types.Coordinates
	CityBounds Bounds

	RecommendationCount int
	TweetCap            int
	RequestTimeout      time.Duration
}

// Load builds a Config from environment variables, applying defaults for
// anything unset. It does not validate; call Validate before use.
func Load() *Config {
	cfg := &Config{
		Port:                8080,
		SearchAPIKey:        os.Getenv("EXA_API_KEY"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		CityName:            DefaultCityName,
		CityCenter:          DefaultCityCenter,
		CityBounds:          DefaultCityBounds,
		RecommendationCount: DefaultRecommendationCount,
		TweetCap:            DefaultTweetCap,
		RequestTimeout:      DefaultRequestTimeout,
	}

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("CITY_NAME"); v != "" {
		cfg.CityName = v
	}
	if v := os.Getenv("RECOMMENDATION_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RecommendationCount = n
		}
	}
	if v := os.Getenv("TWEET_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TweetCap = n
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestTimeout = time.Duration(n) * time.Second
		}
	}

	// Center and bounds are all-or-nothing: a partial override would pair
	// coordinates from two different cities.
	if lat, latOK := floatEnv("CITY_CENTER_LAT"); latOK {
		if lng, lngOK := floatEnv("CITY_CENTER_LNG"); lngOK {
			cfg.CityCenter = types.Coordinates{Lat: lat, Lng: lng}
		}
	}
	if b, ok := boundsFromEnv(); ok {
		cfg.CityBounds = b
	}

	return cfg
}

func floatEnv(key string) (float64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func boundsFromEnv() (Bounds, bool) {
	minLat, ok1 := floatEnv("CITY_MIN_LAT")
	maxLat, ok2 := floatEnv("CITY_MAX_LAT")
	minLng, ok3 := floatEnv("CITY_MIN_LNG")
	maxLng, ok4 := floatEnv("CITY_MAX_LNG")
	if !ok1 || !ok2 || !ok3 || !ok4 || minLat >= maxLat || minLng >= maxLng {
		return Bounds{}, false
	}
	return Bounds{MinLat: minLat, MaxLat: maxLat, MinLng: minLng, MaxLng: maxLng}, true
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.SearchAPIKey == "" {
		return fmt.Errorf("config error: EXA_API_KEY is required")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: GEMINI_API_KEY is required")
	}
	if c.RecommendationCount <= 0 {
		return fmt.Errorf("config error: recommendation count must be positive")
	}
	if c.TweetCap <= 0 {
		return fmt.Errorf("config error: tweet cap must be positive")
	}
	return nil
}
