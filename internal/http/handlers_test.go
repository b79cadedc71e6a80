package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"news-map/internal/config"
	"news-map/internal/metrics"
	"news-map/internal/presentation"
	"news-map/internal/services/news"
	"news-map/internal/services/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnricher struct {
	result   *news.Result
	err      error
	category string
	calls    int
}

func (f *fakeEnricher) Enrich(ctx context.Context, category string) (*news.Result, error) {
	f.calls++
	f.category = category
	return f.result, f.err
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

func sampleResult() *news.Result {
	return &news.Result{
		Articles: []news.EnrichedArticle{
			{Title: "One", Summary: "Ottawa one.", URL: "https://example.com/1", Location: "Ottawa", Latitude: 45.4215, Longitude: -75.6972},
			{Title: "Three", Summary: "Toronto three.", URL: "https://example.com/3", Location: "Toronto", Latitude: 43.6532, Longitude: -79.3832},
		},
		Skipped: []news.SkippedArticle{{Index: 1, Title: "Two", Stage: news.StageSummarize, Reason: "llm upstream error: no completion choices"}},
		Total:   3,
	}
}

func newTestRouter(t *testing.T, svc Enricher, staticDir string, deps map[string]Pinger) *Router {
	t.Helper()
	return newTestRouterWithConfig(t, config.ServerConfig{AllowedOrigins: []string{"*"}}, svc, staticDir, deps)
}

func newTestRouterWithConfig(t *testing.T, cfg config.ServerConfig, svc Enricher, staticDir string, deps map[string]Pinger) *Router {
	t.Helper()

	page, err := presentation.NewMapPage(nil)
	require.NoError(t, err)

	m := metrics.New()
	router := NewRouter(cfg, m)
	newsHandler := NewNewsHandler(svc, page)
	router.RegisterNewsRoutes(newsHandler)
	router.RegisterHealthRoutes(deps)
	router.RegisterMetricsRoutes(m)
	router.RegisterStaticRoutes(NewStaticHandler(staticDir, MapRedirect()))
	return router
}

func serve(router http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestList_ReturnsArrayInOrder(t *testing.T) {
	svc := &fakeEnricher{result: sampleResult()}
	router := newTestRouter(t, svc, "", nil)

	rec := serve(router, "/api/news?category=technology")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "technology", svc.category)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "1", rec.Header().Get("X-Articles-Skipped"))

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "One", body[0]["Title"])
	assert.Equal(t, "Ottawa", body[0]["Location"])
	assert.Equal(t, 45.4215, body[0]["Latitude"])
	assert.Equal(t, "Three", body[1]["Title"])
	for _, key := range []string{"Title", "Summary", "URL", "Location", "Latitude", "Longitude"} {
		assert.Contains(t, body[0], key)
	}
}

func TestList_EmptyResultIsEmptyArray(t *testing.T) {
	svc := &fakeEnricher{result: &news.Result{Articles: []news.EnrichedArticle{}, Skipped: []news.SkippedArticle{}}}
	router := newTestRouter(t, svc, "", nil)

	rec := serve(router, "/api/news")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", svc.category)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
	assert.Equal(t, "0", rec.Header().Get("X-Articles-Skipped"))
}

func TestList_PipelineFailureIs500(t *testing.T) {
	svc := &fakeEnricher{err: &upstream.UpstreamError{
		Service: upstream.ServiceHeadlines, StatusCode: 401, Status: "apiKeyInvalid", Message: "Your API key is invalid",
	}}
	router := newTestRouter(t, svc, "", nil)

	rec := serve(router, "/api/news?category=sports")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "Your API key is invalid")
}

func TestReport_IncludesSkipped(t *testing.T) {
	router := newTestRouter(t, &fakeEnricher{result: sampleResult()}, "", nil)

	rec := serve(router, "/api/news/report")

	require.Equal(t, http.StatusOK, rec.Code)
	var body news.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Total)
	assert.Len(t, body.Articles, 2)
	require.Len(t, body.Skipped, 1)
	assert.Equal(t, news.StageSummarize, body.Skipped[0].Stage)
}

func TestMap_RendersPage(t *testing.T) {
	svc := &fakeEnricher{result: sampleResult()}
	router := newTestRouter(t, svc, "", nil)

	rec := serve(router, "/map?category=business")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "business", svc.category)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<h2>One</h2>")
}

func TestMap_FailureShowsError(t *testing.T) {
	router := newTestRouter(t, &fakeEnricher{err: errors.New("headlines transport error: timeout")}, "", nil)

	rec := serve(router, "/map")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "headlines transport error: timeout")
}

func TestStatic_ServesFileThenIndexThenRedirect(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>bundle</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "static"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "static", "app.js"), []byte("console.log(1)"), 0o644))

	router := newTestRouter(t, &fakeEnricher{result: sampleResult()}, dir, nil)

	rec := serve(router, "/static/app.js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log(1)", rec.Body.String())

	rec = serve(router, "/some/client/route")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bundle")

	rec = serve(router, "/static/missing.js")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	svc := &fakeEnricher{result: sampleResult()}
	noBundle := newTestRouter(t, svc, filepath.Join(dir, "missing"), nil)
	rec = serve(noBundle, "/")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/map", rec.Header().Get("Location"))

	rec = serve(noBundle, "/world?category=business")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/map?category=business", rec.Header().Get("Location"))
	assert.Zero(t, svc.calls)
}

func TestStatic_AssetRequestsNeverRunPipeline(t *testing.T) {
	svc := &fakeEnricher{result: sampleResult()}
	router := newTestRouter(t, svc, "", nil)

	for _, target := range []string{"/favicon.ico", "/robots.txt", "/apple-touch-icon.png", "/"} {
		rec := serve(router, target)
		assert.NotEqual(t, http.StatusOK, rec.Code, target)
	}
	assert.Equal(t, http.StatusNotFound, serve(router, "/favicon.ico").Code)
	assert.Zero(t, svc.calls)
}

func TestRateLimit_OnlyPipelineRoutes(t *testing.T) {
	dir := t.TempDir()
	assets := []string{"index.html", "main.js", "main.css", "favicon.ico", "manifest.json", "logo192.png"}
	for _, name := range assets {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}

	cfg := config.ServerConfig{AllowedOrigins: []string{"*"}, RateLimitRPS: 2, RateLimitBurst: 5}
	router := newTestRouterWithConfig(t, cfg, &fakeEnricher{result: sampleResult()}, dir, map[string]Pinger{})

	for round := 0; round < 3; round++ {
		for _, name := range assets {
			rec := serve(router, "/"+name)
			assert.NotEqual(t, http.StatusTooManyRequests, rec.Code, name)
		}
		assert.Equal(t, http.StatusOK, serve(router, "/health").Code)
		assert.Equal(t, http.StatusOK, serve(router, "/ready").Code)
		assert.Equal(t, http.StatusOK, serve(router, "/metrics").Code)
	}

	var codes []int
	for i := 0; i < 6; i++ {
		codes = append(codes, serve(router, "/api/news").Code)
	}
	assert.Equal(t, []int{200, 200, 200, 200, 200, 429}, codes)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, "/map").Code)
}

func TestHealthAndReady(t *testing.T) {
	router := newTestRouter(t, &fakeEnricher{}, "", map[string]Pinger{"redis": fakePinger{}})

	rec := serve(router, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = serve(router, "/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis":"ok"`)

	down := newTestRouter(t, &fakeEnricher{}, "", map[string]Pinger{"redis": fakePinger{err: errors.New("connection refused")}})
	rec = serve(down, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, &fakeEnricher{result: sampleResult()}, "", nil)

	serve(router, "/api/news")
	rec := serve(router, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `newsmap_http_requests_total{method="GET",status="200"} 1`)
}
