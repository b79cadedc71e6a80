package news

import (
	"context"
	"errors"
	"fmt"
	"time"

	"news-map/internal/metrics"
	"news-map/internal/services/geocode"
	"news-map/internal/services/headlines"
	"news-map/internal/services/llm"
	"news-map/internal/services/location"
	"news-map/internal/services/upstream"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var errEmptyBody = errors.New("article has no content, description or title")

// Options tune the enrichment pipeline.
type Options struct {
	// Workers bounds how many articles are enriched at once. 1 processes
	// articles strictly one after another.
	Workers int
	// CallTimeout bounds each upstream call.
	CallTimeout time.Duration
	// RequestTimeout bounds a whole Enrich call. Articles still pending when
	// it passes are reported as cancelled.
	RequestTimeout time.Duration
}

// NewsService fetches headlines and enriches each one with a summary, a
// place name and coordinates.
type NewsService struct {
	source     headlines.Source
	summarizer llm.Summarizer
	geocoder   geocode.Geocoder
	metrics    *metrics.Metrics
	opts       Options
}

// NewNewsService creates a new NewsService. m may be nil.
func NewNewsService(source headlines.Source, summarizer llm.Summarizer, geocoder geocode.Geocoder, m *metrics.Metrics, opts Options) *NewsService {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &NewsService{
		source:     source,
		summarizer: summarizer,
		geocoder:   geocoder,
		metrics:    m,
		opts:       opts,
	}
}

// Fetch returns only the enriched articles of Enrich.
func (s *NewsService) Fetch(ctx context.Context, category string) ([]EnrichedArticle, error) {
	result, err := s.Enrich(ctx, category)
	if err != nil {
		return nil, err
	}
	return result.Articles, nil
}

// Enrich runs the pipeline for one category. Only a headline fetch failure
// is returned as an error; per-article failures are reported in
// Result.Skipped and never stop the remaining articles.
func (s *NewsService) Enrich(ctx context.Context, category string) (*Result, error) {
	if s.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RequestTimeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := callUpstream(ctx, s, upstream.ServiceHeadlines, func(ctx context.Context) ([]headlines.RawArticle, error) {
		return s.source.TopHeadlines(ctx, category)
	})
	if err != nil {
		s.metrics.PipelineRun("failed")
		return nil, fmt.Errorf("failed to fetch headlines for category %q: %w", category, err)
	}

	// One slot per raw article so results come back in source order
	// regardless of which worker finishes first.
	outcomes := make([]outcome, len(raw))

	var g errgroup.Group
	g.SetLimit(s.opts.Workers)
	for i, article := range raw {
		if ctx.Err() != nil {
			outcomes[i] = skip(i, article, StageCancelled, "", ctx.Err())
			continue
		}
		g.Go(func() error {
			outcomes[i] = s.enrichArticle(ctx, i, article)
			return nil
		})
	}
	_ = g.Wait()

	result := &Result{
		Articles: make([]EnrichedArticle, 0, len(raw)),
		Skipped:  []SkippedArticle{},
		Total:    len(raw),
	}
	for _, o := range outcomes {
		if o.skipped != nil {
			result.Skipped = append(result.Skipped, *o.skipped)
			s.metrics.ArticleSkipped(string(o.skipped.Stage))
			continue
		}
		result.Articles = append(result.Articles, o.article)
		s.metrics.ArticleEnriched()
	}

	runOutcome := "ok"
	if result.Partial() {
		runOutcome = "partial"
	}
	s.metrics.PipelineRun(runOutcome)

	log.Info().
		Str("category", category).
		Int("fetched", result.Total).
		Int("enriched", len(result.Articles)).
		Int("skipped", len(result.Skipped)).
		Dur("duration", time.Since(start)).
		Msg("Enrichment completed")

	return result, nil
}

type outcome struct {
	article EnrichedArticle
	skipped *SkippedArticle
}

func skip(index int, article headlines.RawArticle, stage Stage, place string, err error) outcome {
	log.Warn().
		Err(err).
		Int("index", index).
		Str("title", article.Title).
		Str("stage", string(stage)).
		Str("location", place).
		Msg("Skipping article")

	return outcome{skipped: &SkippedArticle{
		Index:    index,
		Title:    article.Title,
		URL:      article.URL,
		Stage:    stage,
		Location: place,
		Reason:   err.Error(),
	}}
}

// enrichArticle runs summarize, extract and geocode for one article.
func (s *NewsService) enrichArticle(ctx context.Context, index int, article headlines.RawArticle) outcome {
	// A worker slot may only free up after the request deadline.
	if err := ctx.Err(); err != nil {
		return skip(index, article, StageCancelled, "", err)
	}

	text := article.Body()
	if text == "" {
		return skip(index, article, StageInput, "", errEmptyBody)
	}

	summary, err := callUpstream(ctx, s, upstream.ServiceLLM, func(ctx context.Context) (string, error) {
		return s.summarizer.Summarize(ctx, text)
	})
	if err != nil {
		return skip(index, article, stageFor(ctx, StageSummarize), "", err)
	}

	place := location.ExtractCity(summary)

	coords, err := callUpstream(ctx, s, upstream.ServiceGeocoding, func(ctx context.Context) (geocode.Coordinates, error) {
		return s.geocoder.Geocode(ctx, place)
	})
	if err != nil {
		return skip(index, article, stageFor(ctx, StageGeocode), place, err)
	}

	return outcome{article: EnrichedArticle{
		Title:     article.Title,
		Summary:   summary,
		URL:       article.URL,
		Location:  place,
		Latitude:  coords.Latitude,
		Longitude: coords.Longitude,
	}}
}

// stageFor attributes a failure to the request deadline rather than the
// step when the whole request has run out of time.
func stageFor(ctx context.Context, stage Stage) Stage {
	if ctx.Err() != nil {
		return StageCancelled
	}
	return stage
}

// callUpstream applies the per-call timeout and records latency.
func callUpstream[T any](ctx context.Context, s *NewsService, service string, fn func(context.Context) (T, error)) (T, error) {
	if s.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.CallTimeout)
		defer cancel()
	}

	start := time.Now()
	value, err := fn(ctx)
	s.metrics.ObserveUpstream(service, start, err)
	return value, err
}
