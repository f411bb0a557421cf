package search

import "fmt"

// profileDomains are the platforms a handle's profile lives on.
var profileDomains = []string{"x.com", "twitter.com"}

// Strategy is one query formulation in the fallback sequence.
type Strategy struct {
	Name           string
	Query          string
	MatchMode      MatchMode
	IncludeDomains []string
}

// Strategies returns the ordered query strategies for a handle. They are
// tried in sequence until one yields at least one relevant result.
func Strategies(handle string) []Strategy {
	return []Strategy{
		{
			Name:           "profile-url",
			Query:          fmt.Sprintf("https://x.com/%s", handle),
			MatchMode:      MatchKeyword,
			IncludeDomains: profileDomains,
		},
		{
			Name:           "natural-language",
			Query:          fmt.Sprintf("Profile page and recent posts of @%s", handle),
			MatchMode:      MatchNeural,
			IncludeDomains: profileDomains,
		},
		{
			Name:           "mention-scoped",
			Query:          fmt.Sprintf("from:%s OR @%s", handle, handle),
			MatchMode:      MatchKeyword,
			IncludeDomains: profileDomains,
		},
		{
			Name:      "unscoped",
			Query:     fmt.Sprintf("\"@%s\" social media profile", handle),
			MatchMode: MatchAuto,
		},
	}
}
