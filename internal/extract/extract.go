// Package extract pulls profile signal out of noisy free-text search results.
// Everything here is a pure function over its inputs: layered string
// heuristics with synthesized fallbacks, no network, no side effects.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/marcus/persona-map/internal/types"
)

const (
	// minBioLen and maxBioLen bound what counts as a paragraph-like bio line.
	minBioLen = 15
	maxBioLen = 300

	// minTweetLen and maxTweetLen bound what counts as a post-like fragment.
	minTweetLen = 10
	maxTweetLen = 280
)

// boilerplateTokens mark platform chrome and profile-page noise that must
// never be mistaken for a bio or a post.
var boilerplateTokens = []string{
	"followers", "following", "joined",
	"log in", "sign up", "sign in",
	"see new posts", "something went wrong", "try again",
	"enable javascript", "javascript is not available",
	"retweets", "reposts", "quote tweets",
	"terms of service", "privacy policy", "cookie",
}

// genericTitleFragments are site-title fragments rejected during name extraction.
var genericTitleFragments = []string{
	"x", "twitter", "x.com", "twitter.com", "home", "profile",
	"media tweets", "search", "explore",
}

// descriptorHints maps URL/title keywords to an inferred descriptor used
// when no bio can be extracted at all.
var descriptorHints = []struct {
	keyword    string
	descriptor string
}{
	{"github.com", "developer"},
	{"developer", "developer"},
	{"engineer", "developer"},
	{"soundcloud", "musician"},
	{"spotify", "musician"},
	{"musician", "musician"},
	{"music", "musician"},
	{"artist", "artist"},
	{"behance", "artist"},
	{"dribbble", "artist"},
	{"substack", "writer"},
	{"medium.com", "writer"},
	{"writer", "writer"},
	{"author", "writer"},
	{"crypto", "crypto community member"},
	{"web3", "crypto community member"},
	{"dao", "crypto community member"},
}

var (
	imageURLPattern     = regexp.MustCompile(`https?://[^\s"'<>]+\.(?:jpg|jpeg|png|webp)`)
	profilePhotoPattern = regexp.MustCompile(`https?://pbs\.twimg\.com/profile_images/[^\s"'<>]+`)

	// metaDescriptionPatterns cover JSON-embedded and meta-tag descriptions.
	metaDescriptionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)"description"\s*:\s*"([^"]{15,300})"`),
		regexp.MustCompile(`(?i)description["']\s+content=["']([^"']{15,300})["']`),
	}
)

// Signal builds a ProfileSignal from raw search results for a handle.
// It returns an ExtractionError only when the input collection is empty;
// for any structurally valid input every field degrades to a synthesized
// fallback instead of failing.
func Signal(results []types.SearchResult, handle string, tweetCap int) (*types.ProfileSignal, error) {
	handle = types.NormalizeHandle(handle)
	if handle == "" {
		return nil, &ExtractionError{Message: "handle is empty"}
	}
	if len(results) == 0 {
		return nil, &ExtractionError{Message: "no search results to extract from"}
	}
	if tweetCap <= 0 {
		tweetCap = 20
	}

	relevant := FilterRelevant(results, handle)
	// Prefer relevant records for every step; fall back to the full set
	// only when nothing matched the handle at all.
	pool := relevant
	if len(pool) == 0 {
		pool = results
	}

	signal := &types.ProfileSignal{
		Handle:          handle,
		Name:            extractName(pool, handle),
		Bio:             extractBio(pool, handle),
		Tweets:          collectTweets(pool, tweetCap),
		ProfileImageURL: extractImage(pool),
	}

	return signal, nil
}

// IsRelevant reports whether a record plausibly references the handle:
// a profile-path match in the URL, an @mention, or a from: scoped query echo.
func IsRelevant(r types.SearchResult, handle string) bool {
	h := strings.ToLower(handle)
	haystacks := []string{
		strings.ToLower(r.URL),
		strings.ToLower(r.Title),
		strings.ToLower(r.Text),
	}
	for _, s := range haystacks {
		if s == "" {
			continue
		}
		if strings.Contains(s, "@"+h) || strings.Contains(s, "from:"+h) {
			return true
		}
	}
	return isProfilePath(strings.ToLower(r.URL), h)
}

// FilterRelevant returns the subset of results that pass IsRelevant,
// preserving discovery order.
func FilterRelevant(results []types.SearchResult, handle string) []types.SearchResult {
	var relevant []types.SearchResult
	for _, r := range results {
		if IsRelevant(r, handle) {
			relevant = append(relevant, r)
		}
	}
	return relevant
}

// isProfilePath reports whether a URL path ends at or passes through /handle.
func isProfilePath(lowerURL, lowerHandle string) bool {
	if lowerURL == "" {
		return false
	}
	return strings.HasSuffix(lowerURL, "/"+lowerHandle) ||
		strings.Contains(lowerURL, "/"+lowerHandle+"/") ||
		strings.Contains(lowerURL, "/"+lowerHandle+"?")
}

// extractBio tries progressively weaker sources and stops at first success.
func extractBio(pool []types.SearchResult, handle string) string {
	h := strings.ToLower(handle)

	// (a) paragraph-like lines from profile-shaped pages
	for _, r := range pool {
		if !isProfilePath(strings.ToLower(r.URL), h) {
			continue
		}
		if bio := firstBioLine(r.Text); bio != "" {
			return bio
		}
	}

	// (b) highlighted snippets
	for _, r := range pool {
		for _, hl := range r.Highlights {
			if line := cleanBioCandidate(hl); line != "" {
				return line
			}
		}
	}

	// (c) generic text lines
	for _, r := range pool {
		if bio := firstBioLine(r.Text); bio != "" {
			return bio
		}
	}

	// (d) meta-description patterns embedded in raw text
	for _, r := range pool {
		for _, pattern := range metaDescriptionPatterns {
			if m := pattern.FindStringSubmatch(r.Text); m != nil {
				if line := cleanBioCandidate(m[1]); line != "" {
					return line
				}
			}
		}
	}

	// (e) title-derived fragments
	for _, r := range pool {
		if frag := titleFragment(r.Title); frag != "" {
			return frag
		}
	}

	return defaultBio(pool, handle)
}

// firstBioLine returns the first paragraph-like, non-boilerplate line of text.
func firstBioLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if candidate := cleanBioCandidate(line); candidate != "" {
			return candidate
		}
	}
	return ""
}

// cleanBioCandidate trims a line and rejects it if it is too short, too
// long, or platform boilerplate.
func cleanBioCandidate(line string) string {
	line = strings.TrimSpace(line)
	if len(line) < minBioLen || len(line) > maxBioLen {
		return ""
	}
	// Markup lines are handled by the meta-description pattern, not here.
	if strings.HasPrefix(line, "<") {
		return ""
	}
	if isBoilerplate(line) {
		return ""
	}
	return line
}

func isBoilerplate(line string) bool {
	lower := strings.ToLower(line)
	for _, token := range boilerplateTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// titleFragment derives a bio-like fragment from a title: the part after
// a separator, when it is substantive.
func titleFragment(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	for _, sep := range []string{" | ", " - ", ": "} {
		if idx := strings.Index(title, sep); idx >= 0 {
			rest := strings.TrimSpace(title[idx+len(sep):])
			if candidate := cleanBioCandidate(rest); candidate != "" {
				return candidate
			}
		}
	}
	return ""
}

// defaultBio synthesizes a bio naming the handle, with an inferred
// descriptor when URL or title keywords suggest one.
func defaultBio(pool []types.SearchResult, handle string) string {
	name := types.CapitalizeHandle(handle)
	if descriptor := inferDescriptor(pool); descriptor != "" {
		return fmt.Sprintf("%s (@%s) is a %s sharing updates and ideas online.", name, handle, descriptor)
	}
	return fmt.Sprintf("%s (@%s) shares updates and ideas online.", name, handle)
}

func inferDescriptor(pool []types.SearchResult) string {
	for _, hint := range descriptorHints {
		for _, r := range pool {
			corpus := strings.ToLower(r.URL + " " + r.Title)
			if strings.Contains(corpus, hint.keyword) {
				return hint.descriptor
			}
		}
	}
	return ""
}

// extractName scans titles for a leading-name pattern; first match wins.
// The default is the capitalized handle.
func extractName(pool []types.SearchResult, handle string) string {
	for _, r := range pool {
		if name := leadingName(r.Title); name != "" {
			return name
		}
	}
	return types.CapitalizeHandle(handle)
}

// leadingName pulls the text preceding '(', '@', or '|' out of a title,
// rejecting generic site-title fragments.
func leadingName(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}

	cut := len(title)
	for _, sep := range []string{"(", "@", "|"} {
		if idx := strings.Index(title, sep); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	if cut == len(title) {
		return ""
	}

	name := strings.TrimSpace(title[:cut])
	if name == "" || len(name) > 60 {
		return ""
	}
	lower := strings.ToLower(name)
	for _, generic := range genericTitleFragments {
		if lower == generic {
			return ""
		}
	}
	return name
}

// extractImage tries, per record in order: the direct image field,
// platform profile-photo URLs in text, then any embedded image URL.
func extractImage(pool []types.SearchResult) string {
	for _, r := range pool {
		if strings.TrimSpace(r.ImageURL) != "" {
			return strings.TrimSpace(r.ImageURL)
		}
		if m := profilePhotoPattern.FindString(r.Text); m != "" {
			return m
		}
		if m := imageURLPattern.FindString(r.Text); m != "" {
			return m
		}
	}
	return ""
}

// collectTweets gathers distinct post-like fragments from titles,
// highlights, and text lines, in discovery order, capped.
func collectTweets(pool []types.SearchResult, limit int) []string {
	tweets := make([]string, 0, limit)
	seen := make(map[string]bool)

	add := func(fragment string) bool {
		fragment = strings.TrimSpace(fragment)
		if len(fragment) < minTweetLen || len(fragment) > maxTweetLen {
			return false
		}
		if strings.HasPrefix(fragment, "<") || isBoilerplate(fragment) || seen[fragment] {
			return false
		}
		seen[fragment] = true
		tweets = append(tweets, fragment)
		return len(tweets) >= limit
	}

	for _, r := range pool {
		if add(r.Title) {
			return tweets
		}
		for _, hl := range r.Highlights {
			if add(hl) {
				return tweets
			}
		}
		for _, line := range strings.Split(r.Text, "\n") {
			if add(line) {
				return tweets
			}
		}
	}

	return tweets
}
