package main

import (
	"context"
	"log"
	"log/slog"
	"newspulse/db"
	"newspulse/internal/config"
	"newspulse/internal/handler"
	"newspulse/internal/ingest"
	"newspulse/internal/logging"
	"newspulse/internal/metrics"
	"newspulse/internal/queue"
	"newspulse/internal/repository"
	"newspulse/pkg/classify"
	"newspulse/pkg/news"
	"newspulse/pkg/sentiment"
	"os"

	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	logging.Setup(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	if cfg.NewsAPIKey == "" {
		slog.Warn("NEWS_API_KEY is not set, /fetch-news will answer 503")
	}

	target, err := db.ParseURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error parsing DATABASE_URL: %v", err)
	}

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close(gdb)

	rdb, err := db.ConnectRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis(rdb)

	var publisher queue.Publisher = queue.Nop{}
	if rdb != nil {
		publisher = queue.NewRedisQueue(rdb, queue.IngestedQueueKey)
	}

	newsRepo := repository.NewNewsRepository(gdb)
	analyzer := sentiment.Default()
	ingester := ingest.NewIngester(newsRepo, analyzer, classify.Default(), publisher)

	client := news.NewNewsAPIClient(cfg.NewsAPIKey,
		news.WithBaseURL(cfg.NewsAPIBaseURL),
		news.WithTimeout(cfg.HTTPTimeout),
	)

	newsHandler := handler.NewNewsHandler(metrics.InstrumentFetcher(client), ingester, newsRepo, analyzer)
	debugHandler := handler.NewDebugHandler(cfg.DebugRoot, target)

	r := handler.NewRouter(newsHandler, debugHandler, cfg.CORSOrigins)

	slog.Info("starting server", "addr", cfg.Addr(), "database", target.Dialect, "cors_origins", cfg.CORSOrigins)

	err = r.Run(cfg.Addr())
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
