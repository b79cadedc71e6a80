package main

import (
	"bytes"
	"strings"
	"testing"

	"news-map/internal/services/news"

	"github.com/stretchr/testify/assert"
)

func TestPrintResult(t *testing.T) {
	result := &news.Result{
		Articles: []news.EnrichedArticle{
			{Title: "Transit expansion", Summary: "Ottawa approves a new line.", Location: "Ottawa", Latitude: 45.4215, Longitude: -75.6972},
		},
		Skipped: []news.SkippedArticle{
			{Index: 1, Title: "Wildfires", Stage: news.StageGeocode, Location: "Unknown", Reason: "ZERO_RESULTS"},
		},
		Total: 2,
	}

	var buf bytes.Buffer
	printResult(&buf, result)
	out := buf.String()
	upper := strings.ToUpper(out)

	assert.Contains(t, upper, "ENRICHED 1 OF 2 ARTICLES")
	assert.Contains(t, out, "Transit expansion")
	assert.Contains(t, out, "45.4215")
	assert.Contains(t, upper, "SKIPPED")
	assert.Contains(t, out, "ZERO_RESULTS")
}

func TestPrintResult_NoSkippedTable(t *testing.T) {
	var buf bytes.Buffer
	printResult(&buf, &news.Result{Total: 0})

	upper := strings.ToUpper(buf.String())
	assert.Contains(t, upper, "ENRICHED 0 OF 0 ARTICLES")
	assert.NotContains(t, upper, "REASON")
}
