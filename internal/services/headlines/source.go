// Package headlines fetches raw article metadata from a headline source.
package headlines

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// RawArticle is an article record as returned by the headline source.
type RawArticle struct {
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	URL         string    `json:"url"`
	Content     string    `json:"content,omitempty"`
	Description string    `json:"description,omitempty"`
	Source      string    `json:"source,omitempty"`
	Category    string    `json:"category,omitempty"`
	PublishedAt time.Time `json:"publishedAt,omitempty"`
}

// Body returns the text to summarize: content, else description, else title.
func (a RawArticle) Body() string {
	for _, candidate := range []string{a.Content, a.Description, a.Title} {
		if text := strings.TrimSpace(candidate); text != "" {
			return text
		}
	}
	return ""
}

// Source returns ranked headlines for a category. An empty category means
// no category filter.
type Source interface {
	TopHeadlines(ctx context.Context, category string) ([]RawArticle, error)
	Name() string
}

// NormalizeCategory trims and lower-cases a category filter.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// NewsAPI cuts content off with a marker such as "… [+2843 chars]".
var truncationMarker = regexp.MustCompile(`\s*(?:…|\.\.\.)?\s*\[\+\d+ chars\]\s*$`)

func cleanContent(content string) string {
	return strings.TrimSpace(truncationMarker.ReplaceAllString(content, ""))
}
