package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://newsapi.org"
	DefaultTimeout = 30 * time.Second
	DefaultMaxBody = 10 << 20
	everythingPath = "/v2/everything"
	language       = "en"
)

type NewsAPIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	maxBody    int64
}

type Option func(*NewsAPIClient)

func WithBaseURL(baseURL string) Option {
	return func(c *NewsAPIClient) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *NewsAPIClient) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *NewsAPIClient) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithMaxBodySize caps how many bytes of an upstream response are read.
func WithMaxBodySize(n int64) Option {
	return func(c *NewsAPIClient) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

func NewNewsAPIClient(apiKey string, opts ...Option) *NewsAPIClient {
	c := &NewsAPIClient{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		maxBody:    DefaultMaxBody,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *NewsAPIClient) Name() string {
	return "NewsAPI"
}

func (c *NewsAPIClient) Fetch(ctx context.Context, query string) (*Response, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("language", language)
	params.Set("apiKey", c.apiKey)
	endpoint := c.baseURL + everythingPath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("newsapi read body: %w", err)
	}
	oversized := int64(len(body)) > c.maxBody
	if oversized {
		body = body[:c.maxBody]
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if oversized {
		return nil, fmt.Errorf("newsapi read body: %w: response exceeds %d bytes", ErrDecode, c.maxBody)
	}

	return decodeResponse(body)
}

func decodeResponse(body []byte) (*Response, error) {
	var raw struct {
		Status       *string    `json:"status"`
		TotalResults *int       `json:"totalResults"`
		Articles     *[]Article `json:"articles"`
	}

	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w: %v", ErrDecode, err)
	}

	var missing []string
	if raw.Status == nil {
		missing = append(missing, "status")
	}
	if raw.TotalResults == nil {
		missing = append(missing, "totalResults")
	}
	if raw.Articles == nil {
		missing = append(missing, "articles")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("newsapi decode: %w: missing %s", ErrDecode, strings.Join(missing, ", "))
	}

	return &Response{
		Status:       *raw.Status,
		TotalResults: *raw.TotalResults,
		Articles:     *raw.Articles,
		Raw:          body,
	}, nil
}
