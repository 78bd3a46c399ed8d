package handler

import "newspulse/pkg/sentiment"

type NewsItemResponse struct {
	ID          int64   `json:"id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	Sentiment   string  `json:"sentiment"`
	Category    string  `json:"category"`
	Source      *string `json:"source"`
	URL         *string `json:"url"`
	PublishedAt string  `json:"published_at"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
}

type SentimentResponse struct {
	Text      string           `json:"text"`
	Sentiment sentiment.Label  `json:"sentiment"`
	Scores    sentiment.Scores `json:"scores"`
}

type DirEntryResponse struct {
	Name  string `json:"name"`
	IsDir bool   `json:"is_dir"`
	Size  int64  `json:"size"`
}

type DirListingResponse struct {
	Path    string             `json:"path"`
	Entries []DirEntryResponse `json:"entries"`
}

type DatabaseInfoResponse struct {
	Dialect  string `json:"dialect"`
	FilePath string `json:"file_path,omitempty"`
	Exists   bool   `json:"exists"`
	Size     int64  `json:"size"`
}
