package presentation

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"math/rand/v2"

	"news-map/internal/services/news"
)

//go:embed templates/map.html
var templateFS embed.FS

// Map centre and zoom used before any marker is selected.
const (
	CenterLatitude  = 45.4215
	CenterLongitude = -75.6972
	DefaultZoom     = 5
)

// PageData is what the map template renders.
type PageData struct {
	Category  string
	Articles  []news.EnrichedArticle
	Markers   []Marker
	Skipped   int
	Error     string
	CenterLat float64
	CenterLng float64
	Zoom      int
}

// MapPage renders the article list and map.
type MapPage struct {
	tmpl *template.Template
	rng  *rand.Rand
}

// NewMapPage parses the embedded template. rng may be nil.
func NewMapPage(rng *rand.Rand) (*MapPage, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/map.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse map template: %w", err)
	}
	return &MapPage{tmpl: tmpl, rng: rng}, nil
}

// Render writes the page for a pipeline result. A nil result renders an
// empty map, with errMsg shown when set.
func (p *MapPage) Render(w io.Writer, category string, result *news.Result, errMsg string) error {
	data := PageData{
		Category:  category,
		Articles:  []news.EnrichedArticle{},
		Markers:   []Marker{},
		Error:     errMsg,
		CenterLat: CenterLatitude,
		CenterLng: CenterLongitude,
		Zoom:      DefaultZoom,
	}
	if result != nil {
		data.Articles = result.Articles
		data.Markers = NewMarkers(result.Articles, p.rng)
		data.Skipped = len(result.Skipped)
	}

	if err := p.tmpl.ExecuteTemplate(w, "map.html", data); err != nil {
		return fmt.Errorf("failed to render map page: %w", err)
	}
	return nil
}
