package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"newspulse/internal/metrics"
	"newspulse/internal/model"
	"newspulse/internal/queue"
	"newspulse/pkg/news"
	"newspulse/pkg/sentiment"
	"time"
)

var ErrInvalidPublishedAt = errors.New("publishedAt does not match " + news.PublishedAtLayout)

type Store interface {
	SaveBatch(ctx context.Context, items []model.NewsItem) error
}

type SentimentClassifier interface {
	Classify(text string) sentiment.Label
}

type Categorizer interface {
	Categorize(text string) string
}

type Skipped struct {
	Index  int
	Title  string
	Reason string
}

type Result struct {
	Saved   []model.NewsItem
	Skipped []Skipped
}

type Ingester struct {
	store       Store
	sentiment   SentimentClassifier
	categorizer Categorizer
	publisher   queue.Publisher
}

func NewIngester(store Store, analyzer SentimentClassifier, categorizer Categorizer, publisher queue.Publisher) *Ingester {
	if publisher == nil {
		publisher = queue.Nop{}
	}
	return &Ingester{
		store:       store,
		sentiment:   analyzer,
		categorizer: categorizer,
		publisher:   publisher,
	}
}

// Ingest classifies every article by title and stores the batch in one
// transaction. Articles with an unparseable publishedAt are skipped and
// reported; a store failure discards the whole batch.
func (in *Ingester) Ingest(ctx context.Context, articles []news.Article) (*Result, error) {
	result := &Result{}
	items := make([]model.NewsItem, 0, len(articles))

	for i, a := range articles {
		item, err := in.toItem(a)
		if err != nil {
			slog.Warn("skipping article", "index", i, "title", a.TitleText(), "published_at", a.PublishedAt, "error", err)
			metrics.RecordSkipped("published_at")
			result.Skipped = append(result.Skipped, Skipped{Index: i, Title: a.TitleText(), Reason: err.Error()})
			continue
		}
		items = append(items, item)
	}

	if err := in.store.SaveBatch(ctx, items); err != nil {
		metrics.RecordError("save_batch")
		return nil, fmt.Errorf("saving news batch: %w", err)
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
		metrics.RecordIngested(item.Category, item.Sentiment)
	}
	result.Saved = items

	if err := in.publisher.Publish(ctx, ids); err != nil {
		// The rows are committed; consumers can catch up from the table.
		slog.Error("error publishing ingested ids", "error", err, "count", len(ids))
		metrics.RecordError("publish")
	}

	slog.Info("ingest complete", "saved", len(result.Saved), "skipped", len(result.Skipped))
	return result, nil
}

func (in *Ingester) toItem(a news.Article) (model.NewsItem, error) {
	publishedAt, err := ParsePublishedAt(a.PublishedAt)
	if err != nil {
		return model.NewsItem{}, err
	}

	title := a.TitleText()
	return model.NewsItem{
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		Sentiment:   string(in.sentiment.Classify(title)),
		Category:    in.categorizer.Categorize(title),
		Source:      a.Source.Name,
		URL:         a.URL,
		PublishedAt: publishedAt,
	}, nil
}

// ParsePublishedAt accepts exactly YYYY-MM-DDTHH:MM:SSZ.
func ParsePublishedAt(value string) (time.Time, error) {
	// time.Parse tolerates fractional seconds the layout does not mention.
	if len(value) != len(news.PublishedAtLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPublishedAt, value)
	}
	t, err := time.Parse(news.PublishedAtLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPublishedAt, value)
	}
	return t, nil
}
