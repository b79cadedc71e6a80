package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"news-map/internal/cache"
	"news-map/internal/config"
	httphandler "news-map/internal/http"
	"news-map/internal/logging"
	"news-map/internal/metrics"
	"news-map/internal/presentation"
	"news-map/internal/services/geocode"
	"news-map/internal/services/headlines"
	"news-map/internal/services/llm"
	"news-map/internal/services/news"

	"github.com/rs/zerolog/log"
)

func main() {
	var (
		port     = flag.String("port", "", "Port to run the server on (overrides PORT)")
		once     = flag.Bool("once", false, "Run the enrichment pipeline once, print the result and exit")
		category = flag.String("category", "", "Category to enrich with -once")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		// Logging is not configured yet.
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	if *port != "" {
		cfg.Server.Port = *port
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	httpClient := &http.Client{Timeout: cfg.Pipeline.CallTimeout}

	var source headlines.Source
	if cfg.NewsAPI.Fixture != "" {
		source = headlines.NewFileSource(cfg.NewsAPI.Fixture)
	} else {
		source = headlines.NewNewsAPIClient(cfg.NewsAPI.APIKey, headlines.NewsAPIOptions{
			BaseURL:  cfg.NewsAPI.BaseURL,
			Country:  cfg.NewsAPI.Country,
			Language: cfg.NewsAPI.Language,
			PageSize: cfg.NewsAPI.PageSize,
		}, httpClient)
	}

	summarizer, err := llm.New(cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create summarizer")
	}

	var geocoder geocode.Geocoder = geocode.NewGoogleClient(cfg.Geocoding.APIKey, cfg.Geocoding.BaseURL, httpClient)

	readiness := map[string]httphandler.Pinger{}
	if cfg.Redis.Enabled() {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis")
		}
		defer redisCache.Close()

		geocoder = geocode.NewCachedGeocoder(geocoder, redisCache, cfg.Redis.TTL)
		readiness["redis"] = redisCache
	}

	newsService := news.NewNewsService(source, summarizer, geocoder, m, news.Options{
		Workers:        cfg.Pipeline.Workers,
		CallTimeout:    cfg.Pipeline.CallTimeout,
		RequestTimeout: cfg.Pipeline.RequestTimeout,
	})

	log.Info().
		Str("source", source.Name()).
		Str("summarizer", summarizer.Name()).
		Bool("geocode_cache", cfg.Redis.Enabled()).
		Int("workers", cfg.Pipeline.Workers).
		Msg("Services initialized")

	if *once {
		result, err := newsService.Enrich(ctx, *category)
		if err != nil {
			log.Fatal().Err(err).Msg("Enrichment failed")
		}
		printResult(os.Stdout, result)
		return
	}

	page, err := presentation.NewMapPage(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load map page")
	}

	router := httphandler.NewRouter(cfg.Server, m)
	newsHandler := httphandler.NewNewsHandler(newsService, page)
	router.RegisterNewsRoutes(newsHandler)
	router.RegisterHealthRoutes(readiness)
	router.RegisterMetricsRoutes(m)
	router.RegisterStaticRoutes(httphandler.NewStaticHandler(cfg.Server.StaticDir, httphandler.MapRedirect()))

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}

	log.Info().Msg("Server stopped")
}
