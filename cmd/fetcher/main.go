package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"newspulse/db"
	"newspulse/internal/config"
	"newspulse/internal/ingest"
	"newspulse/internal/logging"
	"newspulse/internal/queue"
	"newspulse/internal/repository"
	"newspulse/pkg/classify"
	"newspulse/pkg/news"
	"newspulse/pkg/sentiment"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "fetcher",
	Short:         "Fetch, classify and inspect stored news",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		godotenv.Load()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <query>",
	Short: "Fetch articles for a query once and store them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		ctx := cmd.Context()

		gdb, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("error connecting to DB: %w", err)
		}
		defer db.Close(gdb)

		rdb, err := db.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("error connecting to Redis: %w", err)
		}
		defer db.CloseRedis(rdb)

		var publisher queue.Publisher = queue.Nop{}
		var redisQueue *queue.RedisQueue
		if rdb != nil {
			redisQueue = queue.NewRedisQueue(rdb, queue.IngestedQueueKey)
			publisher = redisQueue
		}

		client := news.NewNewsAPIClient(cfg.NewsAPIKey,
			news.WithBaseURL(cfg.NewsAPIBaseURL),
			news.WithTimeout(cfg.HTTPTimeout),
		)

		res, err := client.Fetch(ctx, query)
		if err != nil {
			return fmt.Errorf("error fetching articles from %s: %w", client.Name(), err)
		}

		repo := repository.NewNewsRepository(gdb)
		ingester := ingest.NewIngester(repo, sentiment.Default(), classify.Default(), publisher)

		result, err := ingester.Ingest(ctx, res.Articles)
		if err != nil {
			return err
		}

		slog.Info("fetch complete", "source", client.Name(), "query", query, "total_results", res.TotalResults, "saved", len(result.Saved), "skipped", len(result.Skipped))

		if redisQueue != nil {
			depth, err := redisQueue.Len(ctx)
			if err != nil {
				slog.Error("error reading queue length", "error", err)
			} else {
				slog.Info("ingest queue", "key", queue.IngestedQueueKey, "pending", depth)
			}
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print stored news items",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("error connecting to DB: %w", err)
		}
		defer db.Close(gdb)

		repo := repository.NewNewsRepository(gdb)
		items, err := repo.ListAll(cmd.Context())
		if err != nil {
			return err
		}

		total, err := repo.Count(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, n := range items {
			title := ""
			if n.Title != nil {
				title = *n.Title
			}
			fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%s\n", n.ID, n.PublishedAt.UTC().Format(news.PublishedAtLayout), n.Category, n.Sentiment, title)
		}
		fmt.Fprintf(out, "%d items\n", total)
		return nil
	},
}

var drainTimeout time.Duration

var drainCmd = &cobra.Command{
	Use:   "drain",
	Short: "Consume ingested ids from the Redis queue and print them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rdb, err := db.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("error connecting to Redis: %w", err)
		}
		if rdb == nil {
			return errors.New("REDIS_URL is not set")
		}
		defer db.CloseRedis(rdb)

		q := queue.NewRedisQueue(rdb, queue.IngestedQueueKey)
		out := cmd.OutOrStdout()

		var drained int
		for {
			id, err := q.Pop(ctx, drainTimeout)
			if errors.Is(err, redis.Nil) {
				break
			}
			if err != nil {
				slog.Error("error popping from Redis queue", "error", err)
				break
			}
			fmt.Fprintln(out, id)
			drained++
		}

		slog.Info("drain complete", "key", queue.IngestedQueueKey, "drained", drained)
		return nil
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify <text>",
	Short: "Show the category and sentiment a headline would get",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		scores := sentiment.Default().PolarityScores(text)

		fmt.Fprintf(cmd.OutOrStdout(), "category:  %s\nsentiment: %s\ncompound:  %.4f (pos %.3f neu %.3f neg %.3f)\n",
			classify.Default().Categorize(text),
			sentiment.LabelFor(scores.Compound),
			scores.Compound, scores.Positive, scores.Neutral, scores.Negative,
		)
		return nil
	},
}

func init() {
	drainCmd.Flags().DurationVar(&drainTimeout, "timeout", time.Second, "stop after the queue stays empty this long")
	rootCmd.AddCommand(fetchCmd, listCmd, drainCmd, classifyCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("fetcher: %v", err)
	}
}
