package headlines

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// FileSource serves headlines from a JSON file on disk. The file holds either
// an array of RawArticle records or a saved NewsAPI top-headlines response.
// It is re-read on every call so edits show up without a restart.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// TopHeadlines returns the file's articles. Records that carry a category
// are filtered against it; records without one match every category.
func (s *FileSource) TopHeadlines(ctx context.Context, category string) ([]RawArticle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all, err := s.load()
	if err != nil {
		return nil, err
	}

	category = NormalizeCategory(category)
	if category == "" {
		return all, nil
	}

	filtered := make([]RawArticle, 0, len(all))
	for _, a := range all {
		if a.Category == "" || NormalizeCategory(a.Category) == category {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

func (s *FileSource) Name() string {
	return "file"
}

func (s *FileSource) load() ([]RawArticle, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", s.path, err)
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var articles []RawArticle
		if err := json.Unmarshal(data, &articles); err != nil {
			return nil, fmt.Errorf("failed to decode JSON from %s: %w", s.path, err)
		}
		for i := range articles {
			articles[i].Content = cleanContent(articles[i].Content)
		}
		log.Debug().Str("path", s.path).Int("count", len(articles)).Msg("Loaded fixture articles")
		return articles, nil
	}

	var payload newsAPIResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode JSON from %s: %w", s.path, err)
	}

	articles := payload.rawArticles("")
	log.Debug().Str("path", s.path).Int("count", len(articles)).Msg("Loaded fixture articles")
	return articles, nil
}
