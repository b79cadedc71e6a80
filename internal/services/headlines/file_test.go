package headlines

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "articles.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSource_NewsAPIShape(t *testing.T) {
	src := NewFileSource("testdata/top-headlines.json")

	articles, err := src.TopHeadlines(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, articles, 3)
	assert.Equal(t, "Ottawa unveils transit plan", articles[0].Title)
	assert.Equal(t, "Ottawa city council voted on Tuesday to extend the light rail line east", articles[0].Content)
	assert.Equal(t, "file", src.Name())
}

func TestFileSource_ArrayFiltersByCategory(t *testing.T) {
	path := writeFixture(t, `[
		{"title": "Chip plant opens", "url": "https://example.com/a", "category": "technology"},
		{"title": "Budget tabled", "url": "https://example.com/b", "category": "business"},
		{"title": "Untagged story", "url": "https://example.com/c", "content": "Body [+10 chars]"}
	]`)
	src := NewFileSource(path)

	all, err := src.TopHeadlines(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Body", all[2].Content)

	tech, err := src.TopHeadlines(context.Background(), "Technology")
	require.NoError(t, err)
	require.Len(t, tech, 2)
	assert.Equal(t, "Chip plant opens", tech[0].Title)
	assert.Equal(t, "Untagged story", tech[1].Title)
}

func TestFileSource_Errors(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.json")).TopHeadlines(context.Background(), "")
	assert.Error(t, err)

	_, err = NewFileSource(writeFixture(t, `[{"title": `)).TopHeadlines(context.Background(), "")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewFileSource("testdata/top-headlines.json").TopHeadlines(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)
}
