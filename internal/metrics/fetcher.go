package metrics

import (
	"context"
	"errors"
	"net/http"
	"newspulse/pkg/news"
	"time"
)

type instrumentedFetcher struct {
	next news.Fetcher
}

// InstrumentFetcher records the status and latency of every upstream call.
func InstrumentFetcher(next news.Fetcher) news.Fetcher {
	return &instrumentedFetcher{next: next}
}

func (f *instrumentedFetcher) Name() string {
	return f.next.Name()
}

func (f *instrumentedFetcher) Fetch(ctx context.Context, query string) (*news.Response, error) {
	start := time.Now()
	res, err := f.next.Fetch(ctx, query)

	var upstreamErr *news.UpstreamError
	status := http.StatusOK
	switch {
	case errors.Is(err, news.ErrMissingAPIKey):
		// no request was sent
		return res, err
	case errors.As(err, &upstreamErr):
		status = upstreamErr.StatusCode
	case errors.Is(err, news.ErrDecode):
	case err != nil:
		status = 0
	}

	RecordUpstream(status, time.Since(start).Seconds())
	return res, err
}
