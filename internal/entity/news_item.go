package entity

// NewsItem is a single headline. PublishedAt is either an RFC3339 timestamp or
// a relative label such as "2h ago".
type NewsItem struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description"`
	Sentiment   string `json:"sentiment,omitempty"`
}

// ValidNews reports whether a news list has at least one titled item.
func ValidNews(items []NewsItem) bool {
	for _, item := range items {
		if item.Title != "" {
			return true
		}
	}
	return false
}
