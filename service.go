package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"ewintr.nl/tubesum/fetch"
	"ewintr.nl/tubesum/handler"
	"ewintr.nl/tubesum/process"
	"ewintr.nl/tubesum/storage"
	"github.com/joho/godotenv"
	ytdl "github.com/kkdai/youtube/v2"
	"golang.org/x/exp/slog"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

func main() {

	// a missing .env is fine, the environment wins anyway
	envErr := godotenv.Load()

	ctx := context.Background()
	var level slog.Level
	if err := level.UnmarshalText([]byte(getParam("LOG_LEVEL", "info"))); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if envErr != nil {
		logger.Debug("no .env loaded", slog.String("error", envErr.Error()))
	}

	// transcripts
	var cache fetch.TranscriptCache = fetch.NewMemoryCache()
	if redisURL := getParam("REDIS_URL", ""); redisURL != "" {
		cacheTTL, err := time.ParseDuration(getParam("CACHE_TTL", "24h"))
		if err != nil {
			logger.Error("unable to parse cache ttl", slog.String("error", err.Error()))
			os.Exit(1)
		}
		rc, err := fetch.NewRedisCache(ctx, redisURL, cacheTTL, logger)
		if err != nil {
			logger.Warn("redis cache disabled", slog.String("error", err.Error()))
		} else {
			defer rc.Close()
			cache = fetch.NewTieredCache(cache, rc)
			logger.Info("redis cache enabled")
		}
	}
	captions := fetch.NewCaptions(&ytdl.Client{}, getParam("TRANSCRIPT_LANG", "en"))
	fetcher := fetch.NewFetcher(captions, cache, logger)

	// summarizer
	temperature, err := strconv.ParseFloat(getParam("LLM_TEMPERATURE", strconv.FormatFloat(process.DefaultTemperature, 'f', -1, 64)), 32)
	if err != nil {
		logger.Error("invalid temperature", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if temperature == 0 {
		logger.Warn("temperature 0 can not be sent, using default", slog.Float64("temperature", process.DefaultTemperature))
	}
	summarizer := process.NewOpenAISummarizer(process.OpenAIConfig{
		BaseURL:     getParam("LLM_BASE_URL", process.DefaultBaseURL),
		Model:       getParam("LLM_MODEL", process.DefaultModel),
		Temperature: float32(temperature),
	})

	requestTimeout, err := time.ParseDuration(getParam("REQUEST_TIMEOUT", "0s"))
	if err != nil {
		logger.Error("unable to parse request timeout", slog.String("error", err.Error()))
		os.Exit(1)
	}
	opts := []process.Option{process.WithTimeout(requestTimeout)}

	// optional metadata
	if ytKey := getParam("YOUTUBE_API_KEY", ""); ytKey != "" {
		ytClient, err := youtube.NewService(ctx, option.WithAPIKey(ytKey))
		if err != nil {
			logger.Error("unable to create youtube service", slog.String("error", err.Error()))
			os.Exit(1)
		}
		opts = append(opts, process.WithMetadata(fetch.NewYoutube(ytClient)))
	}

	// optional archives
	var summaryRepo storage.SummaryRelRepository = storage.NewMemory()
	if pgHost := getParam("POSTGRES_HOST", ""); pgHost != "" {
		postgres, err := storage.NewPostgres(storage.PostgresInfo{
			Host:     pgHost,
			Port:     getParam("POSTGRES_PORT", "5432"),
			User:     getParam("POSTGRES_USER", "tubesum"),
			Password: getParam("POSTGRES_PASSWORD", "tubesum"),
			Database: getParam("POSTGRES_DB", "tubesum"),
		})
		if err != nil {
			logger.Error("unable to connect to postgres", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer postgres.Close()
		summaryRepo = storage.NewPostgresSummaryRepository(postgres)
	}
	opts = append(opts, process.WithRelStorage(summaryRepo))

	if wvHost := getParam("WEAVIATE_HOST", ""); wvHost != "" {
		wv, err := storage.NewWeaviate(storage.WeaviateInfo{
			Host:         wvHost,
			ApiKey:       getParam("WEAVIATE_APIKEY", ""),
			OpenAIApiKey: getParam("WEAVIATE_OPENAI_APIKEY", ""),
		})
		if err != nil {
			logger.Error("unable to create weaviate client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if getParam("WEAVIATE_RESET_SCHEMA", "false") == "true" {
			if err := wv.ResetSchema(ctx); err != nil {
				logger.Error("unable to reset weaviate schema", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
		opts = append(opts, process.WithVecStorage(wv))
	}

	// optional inbox
	var inbox fetch.FeedReader
	if mflxEndpoint := getParam("MINIFLUX_ENDPOINT", ""); mflxEndpoint != "" {
		inbox = fetch.NewMiniflux(fetch.MinifluxInfo{
			Endpoint: mflxEndpoint,
			ApiKey:   getParam("MINIFLUX_APIKEY", ""),
		})
	}

	pipeline := process.NewPipeline(fetcher, summarizer, logger, opts...)

	port, err := strconv.Atoi(getParam("API_PORT", "8080"))
	if err != nil {
		logger.Error("invalid port", slog.String("error", err.Error()))
		os.Exit(1)
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler.NewServer(pipeline, summaryRepo, inbox, logger),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()
	logger.Info("http server started", slog.Int("port", port))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt)
	<-done

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("service stopped")
}

func getParam(param, def string) string {
	if val, ok := os.LookupEnv(param); ok {
		return val
	}
	return def
}
