package types

// SearchResult is one raw record returned by the search capability.
// All fields are best-effort; consumers must tolerate any of them being empty.
type SearchResult struct {
	Title      string   `json:"title,omitempty"`
	URL        string   `json:"url,omitempty"`
	Text       string   `json:"text,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
	ImageURL   string   `json:"image,omitempty"`
	Author     string   `json:"author,omitempty"`
}

// HasContent reports whether the record carries substantive text beyond
// its title: either a text body of reasonable length or any highlight.
func (r SearchResult) HasContent(minTextLen int) bool {
	return len(r.Text) >= minTextLen || len(r.Highlights) > 0
}
