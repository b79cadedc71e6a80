package main

import (
	"fmt"
	"io"

	"news-map/internal/services/news"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const summaryWidth = 60

// printResult writes the enriched articles and any skipped ones as tables.
func printResult(w io.Writer, result *news.Result) {
	articles := table.NewWriter()
	articles.SetOutputMirror(w)
	articles.SetTitle(fmt.Sprintf("Enriched %d of %d articles", len(result.Articles), result.Total))
	articles.AppendHeader(table.Row{"#", "Title", "Location", "Latitude", "Longitude", "Summary"})
	for i, a := range result.Articles {
		articles.AppendRow(table.Row{i + 1, a.Title, a.Location, a.Latitude, a.Longitude, a.Summary})
	}
	articles.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Title", WidthMax: 40},
		{Name: "Latitude", Align: text.AlignRight},
		{Name: "Longitude", Align: text.AlignRight},
		{Name: "Summary", WidthMax: summaryWidth},
	})
	articles.SetStyle(table.StyleLight)
	articles.Render()

	if len(result.Skipped) == 0 {
		return
	}

	skipped := table.NewWriter()
	skipped.SetOutputMirror(w)
	skipped.SetTitle("Skipped")
	skipped.AppendHeader(table.Row{"Index", "Title", "Stage", "Location", "Reason"})
	for _, s := range result.Skipped {
		skipped.AppendRow(table.Row{s.Index, s.Title, s.Stage, s.Location, s.Reason})
	}
	skipped.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Title", WidthMax: 40},
		{Name: "Reason", WidthMax: summaryWidth},
	})
	skipped.SetStyle(table.StyleLight)
	skipped.Render()
}
