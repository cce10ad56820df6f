// Package metadata resolves social-preview metadata (title, description,
// image) for a single web page using an ordered fallback chain over the
// standard social tags.
package metadata

// Result is the social-preview triple extracted from one page.
// Title and Description are never empty; the fallback defaults fill any gap.
// ImageURL is either empty or an absolute URL.
type Result struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// Page is one fetched document plus the URL it ultimately resolved to.
// It is consumed transiently during extraction and not retained.
type Page struct {
	URL        string
	FinalURL   string
	StatusCode int
	Body       []byte
}

// BaseURL returns the URL relative references should resolve against:
// the post-redirect URL when known, the requested URL otherwise.
func (p Page) BaseURL() string {
	if p.FinalURL != "" {
		return p.FinalURL
	}
	return p.URL
}
