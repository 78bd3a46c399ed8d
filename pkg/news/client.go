package news

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey = errors.New("news API key is not configured")
	ErrDecode        = errors.New("malformed upstream response")
)

// PublishedAtLayout is the only timestamp format accepted for publishedAt.
const PublishedAtLayout = "2006-01-02T15:04:05Z"

type Source struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

// Article is one entry of the upstream envelope. Every text field may be
// null upstream, so they are pointers.
type Article struct {
	Source      Source  `json:"source"`
	Author      *string `json:"author"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	URLToImage  *string `json:"urlToImage"`
	PublishedAt string  `json:"publishedAt"`
	Content     *string `json:"content"`
}

// TitleText returns the title or an empty string when upstream sent null.
func (a Article) TitleText() string {
	if a.Title == nil {
		return ""
	}
	return *a.Title
}

type Response struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`

	// Raw is the body exactly as received.
	Raw []byte `json:"-"`
}

// UpstreamError reports a non-200 answer from the news API.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

type Fetcher interface {
	Fetch(ctx context.Context, query string) (*Response, error)
	Name() string
}
