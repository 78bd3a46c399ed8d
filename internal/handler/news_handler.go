package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"newspulse/internal/ingest"
	"newspulse/internal/model"
	"newspulse/pkg/news"
	"newspulse/pkg/sentiment"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const SentimentSample = "The stock market is performing exceptionally well today, with great gains across all sectors!"

type NewsStore interface {
	ListAll(ctx context.Context) ([]model.NewsItem, error)
	Ping(ctx context.Context) error
}

type NewsIngester interface {
	Ingest(ctx context.Context, articles []news.Article) (*ingest.Result, error)
}

type SentimentScorer interface {
	Classify(text string) sentiment.Label
	PolarityScores(text string) sentiment.Scores
}

type NewsHandler struct {
	fetcher    news.Fetcher
	ingester   NewsIngester
	repository NewsStore
	analyzer   SentimentScorer
}

func NewNewsHandler(fetcher news.Fetcher, ingester NewsIngester, repository NewsStore, analyzer SentimentScorer) *NewsHandler {
	return &NewsHandler{
		fetcher:    fetcher,
		ingester:   ingester,
		repository: repository,
		analyzer:   analyzer,
	}
}

// GetHealth always answers 200; the database field is informational.
func (h *NewsHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	database := "connected"
	if err := h.repository.Ping(ctx); err != nil {
		slog.Warn("database ping failed", "error", err)
		database = "disconnected"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "Server is running",
		Timestamp: time.Now().Format(time.RFC3339),
		Database:  database,
	})
}

func (h *NewsHandler) FetchNews(c *gin.Context) {
	query := c.Param("query")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}

	res, err := h.fetcher.Fetch(c.Request.Context(), query)
	if err != nil {
		var upstreamErr *news.UpstreamError
		switch {
		case errors.As(err, &upstreamErr):
			slog.Error("upstream rejected request", "source", h.fetcher.Name(), "status", upstreamErr.StatusCode, "query", query)
			c.JSON(upstreamErr.StatusCode, gin.H{"error": "Error fetching news: " + upstreamErr.Body})
		case errors.Is(err, news.ErrMissingAPIKey):
			slog.Error("news API key missing", "source", h.fetcher.Name())
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "News API key is not configured"})
		default:
			slog.Error("error fetching news", "source", h.fetcher.Name(), "query", query, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Error fetching news"})
		}
		return
	}

	if _, err := h.ingester.Ingest(c.Request.Context(), res.Articles); err != nil {
		slog.Error("error ingesting articles", "query", query, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if len(res.Raw) == 0 {
		c.JSON(http.StatusOK, res)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", res.Raw)
}

func (h *NewsHandler) GetNews(c *gin.Context) {
	items, err := h.repository.ListAll(c.Request.Context())
	if err != nil {
		slog.Error("error listing news", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := make([]NewsItemResponse, 0, len(items))
	for _, n := range items {
		res = append(res, NewsItemResponse{
			ID:          n.ID,
			Title:       n.Title,
			Description: n.Description,
			Content:     n.Content,
			Sentiment:   n.Sentiment,
			Category:    n.Category,
			Source:      n.Source,
			URL:         n.URL,
			PublishedAt: n.PublishedAt.UTC().Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, res)
}

func (h *NewsHandler) TestSentiment(c *gin.Context) {
	c.JSON(http.StatusOK, SentimentResponse{
		Text:      SentimentSample,
		Sentiment: h.analyzer.Classify(SentimentSample),
		Scores:    h.analyzer.PolarityScores(SentimentSample),
	})
}
