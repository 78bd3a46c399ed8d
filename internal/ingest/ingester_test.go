package ingest

import (
	"context"
	"errors"
	"newspulse/db"
	"newspulse/internal/model"
	"newspulse/internal/repository"
	"newspulse/pkg/classify"
	"newspulse/pkg/news"
	"newspulse/pkg/sentiment"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

type fakeStore struct {
	saved  []model.NewsItem
	nextID int64
	err    error
}

func (f *fakeStore) SaveBatch(ctx context.Context, items []model.NewsItem) error {
	if f.err != nil {
		return f.err
	}
	for i := range items {
		f.nextID++
		items[i].ID = f.nextID
	}
	f.saved = append(f.saved, items...)
	return nil
}

type fakePublisher struct {
	ids []int64
	err error
}

func (f *fakePublisher) Publish(ctx context.Context, ids []int64) error {
	f.ids = append(f.ids, ids...)
	return f.err
}

func strPtr(s string) *string { return &s }

func article(title, publishedAt string) news.Article {
	return news.Article{
		Source:      news.Source{Name: strPtr("Reuters")},
		Title:       strPtr(title),
		Description: strPtr("desc of " + title),
		URL:         strPtr("https://example.com/" + title),
		PublishedAt: publishedAt,
	}
}

func TestIngest_ClassifiesByTitle(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{}
	in := NewIngester(store, sentiment.Default(), classify.Default(), pub)

	articles := []news.Article{
		article("Apple posts great quarter, investors love it", "2026-02-26T11:02:00Z"),
		article("Oil spill is a terrible disaster", "2026-02-26T12:00:00Z"),
	}

	res, err := in.Ingest(context.Background(), articles)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(res.Saved))
	assert.Equal(t, 0, len(res.Skipped))

	assert.Equal(t, classify.Company, res.Saved[0].Category)
	assert.Equal(t, string(sentiment.Positive), res.Saved[0].Sentiment)
	assert.Equal(t, classify.Oil, res.Saved[1].Category)
	assert.Equal(t, string(sentiment.Negative), res.Saved[1].Sentiment)

	assert.Equal(t, "Reuters", *res.Saved[0].Source)
	assert.Equal(t, "desc of Oil spill is a terrible disaster", *res.Saved[1].Description)
	assert.Equal(t, true, res.Saved[0].PublishedAt.Equal(time.Date(2026, 2, 26, 11, 2, 0, 0, time.UTC)))

	assert.Equal(t, []int64{1, 2}, pub.ids)
}

func TestIngest_SkipsBadTimestamp(t *testing.T) {
	store := &fakeStore{}
	in := NewIngester(store, sentiment.Default(), classify.Default(), nil)

	articles := []news.Article{
		article("first", "2026-02-26T11:02:00Z"),
		article("second", "2026-02-26 11:02:00"),
		article("third", "2026-02-26T11:02:00.123Z"),
		article("fourth", "2026-02-26T13:00:00Z"),
	}

	res, err := in.Ingest(context.Background(), articles)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(res.Saved))
	assert.Equal(t, "first", *res.Saved[0].Title)
	assert.Equal(t, "fourth", *res.Saved[1].Title)

	assert.Equal(t, 2, len(res.Skipped))
	assert.Equal(t, 1, res.Skipped[0].Index)
	assert.Equal(t, "second", res.Skipped[0].Title)
	assert.Equal(t, 2, res.Skipped[1].Index)
}

func TestIngest_NullTitle(t *testing.T) {
	store := &fakeStore{}
	in := NewIngester(store, sentiment.Default(), classify.Default(), nil)

	a := news.Article{PublishedAt: "2026-02-26T11:02:00Z"}
	res, err := in.Ingest(context.Background(), []news.Article{a})

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(res.Saved))
	assert.Equal(t, true, res.Saved[0].Title == nil)
	assert.Equal(t, classify.Other, res.Saved[0].Category)
	assert.Equal(t, string(sentiment.Neutral), res.Saved[0].Sentiment)
}

func TestIngest_StoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("DB down")}
	pub := &fakePublisher{}
	in := NewIngester(store, sentiment.Default(), classify.Default(), pub)

	res, err := in.Ingest(context.Background(), []news.Article{article("x", "2026-02-26T11:02:00Z")})

	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, res == nil)
	assert.Equal(t, 0, len(pub.ids))
}

func TestIngest_PublishErrorDoesNotFail(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{err: errors.New("redis down")}
	in := NewIngester(store, sentiment.Default(), classify.Default(), pub)

	res, err := in.Ingest(context.Background(), []news.Article{article("x", "2026-02-26T11:02:00Z")})

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(res.Saved))
}

func TestIngest_ThenListAll(t *testing.T) {
	gdb, err := db.Connect("sqlite:///:memory:")
	if err != nil {
		t.Fatalf("connecting to in-memory database: %v", err)
	}
	defer db.Close(gdb)

	repo := repository.NewNewsRepository(gdb)
	analyzer := sentiment.Default()
	categorizer := classify.Default()
	in := NewIngester(repo, analyzer, categorizer, nil)

	titles := []string{"Microsoft wins big government contract", "Farming towns hit by awful floods"}
	_, err = in.Ingest(context.Background(), []news.Article{
		article(titles[0], "2026-02-26T11:02:00Z"),
		article(titles[1], "2026-02-26T12:02:00Z"),
	})
	assert.Equal(t, nil, err)

	stored, err := repo.ListAll(context.Background())
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(stored))

	for i, item := range stored {
		assert.Equal(t, titles[i], *item.Title)
		assert.Equal(t, categorizer.Categorize(titles[i]), item.Category)
		assert.Equal(t, string(analyzer.Classify(titles[i])), item.Sentiment)
	}
}

func TestParsePublishedAt(t *testing.T) {
	got, err := ParsePublishedAt("2026-02-26T07:53:24Z")
	assert.Equal(t, nil, err)
	assert.Equal(t, true, got.Equal(time.Date(2026, 2, 26, 7, 53, 24, 0, time.UTC)))

	invalid := []string{"", "2026-02-26", "2026-02-26T07:53:24+00:00", "2026-02-26T07:53:24.5Z", "26/02/2026 07:53:24Z"}
	for _, v := range invalid {
		_, err := ParsePublishedAt(v)
		assert.Equal(t, true, errors.Is(err, ErrInvalidPublishedAt))
	}
}
