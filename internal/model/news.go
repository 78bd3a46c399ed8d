package model

import "time"

const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
	OtherCategory     = "other"
)

// NewsItem is one classified article. Rows are append-only.
type NewsItem struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Title       *string   `gorm:"type:text"`
	Description *string   `gorm:"type:text"`
	Content     *string   `gorm:"type:text"`
	Sentiment   string    `gorm:"type:varchar(16);not null;index"`
	Category    string    `gorm:"type:varchar(32);not null;index"`
	Source      *string   `gorm:"type:varchar(255)"`
	URL         *string   `gorm:"type:text"`
	PublishedAt time.Time `gorm:"not null;index"`
}

func (NewsItem) TableName() string { return "news" }
