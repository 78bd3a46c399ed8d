package metrics

import (
	"context"
	"errors"
	"newspulse/pkg/news"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type stubFetcher struct {
	res *news.Response
	err error
}

func (s *stubFetcher) Fetch(ctx context.Context, query string) (*news.Response, error) {
	return s.res, s.err
}

func (s *stubFetcher) Name() string { return "stub" }

func TestInstrumentFetcher_RecordsStatus(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		label string
	}{
		{name: "success", err: nil, label: "200"},
		{name: "upstream error", err: &news.UpstreamError{StatusCode: 429, Body: "slow down"}, label: "429"},
		{name: "decode error", err: news.ErrDecode, label: "200"},
		{name: "transport error", err: errors.New("connection refused"), label: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(UpstreamRequests.WithLabelValues(tt.label))

			f := InstrumentFetcher(&stubFetcher{res: &news.Response{Status: "ok"}, err: tt.err})
			_, err := f.Fetch(context.Background(), "q")

			assert.Equal(t, tt.err, err)
			assert.Equal(t, before+1, testutil.ToFloat64(UpstreamRequests.WithLabelValues(tt.label)))
		})
	}
}

func TestInstrumentFetcher_MissingKeyNotCounted(t *testing.T) {
	beforeError := testutil.ToFloat64(UpstreamRequests.WithLabelValues("error"))

	f := InstrumentFetcher(&stubFetcher{err: news.ErrMissingAPIKey})
	_, err := f.Fetch(context.Background(), "q")

	assert.Equal(t, news.ErrMissingAPIKey, err)
	assert.Equal(t, beforeError, testutil.ToFloat64(UpstreamRequests.WithLabelValues("error")))
	assert.Equal(t, "stub", f.Name())
}

func TestRecordIngested(t *testing.T) {
	before := testutil.ToFloat64(ArticlesIngested.WithLabelValues("oil", "negative"))

	RecordIngested("oil", "negative")

	assert.Equal(t, before+1, testutil.ToFloat64(ArticlesIngested.WithLabelValues("oil", "negative")))
}
