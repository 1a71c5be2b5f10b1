package internal

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsObserveRequest(t *testing.T) {
	m := NewMetrics()

	m.ObserveRequest(adapterMetadata, nil, 20*time.Millisecond)
	m.ObserveRequest(adapterMetadata, newError(KindResourceNotFoundOrPrivate, "", nil), time.Millisecond)
	m.ObserveRequest(adapterTitles, errors.New("plain"), time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(adapterMetadata, outcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(adapterMetadata, "resource_not_found_or_private")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(adapterTitles, "unknown")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.latency))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest(adapterTitles, nil, time.Second)
		m.ObserveVariations(4)
	})
}

func TestMetricsRecordAdapterCalls(t *testing.T) {
	m := NewMetrics()

	yt, _ := newYouTubeStub(t, http.StatusOK, videoResponse)
	ai, _ := newChatStub(t, http.StatusOK, chatCompletion(fourVariations))

	_, err := newTestApp(testConfig(yt.URL, ai.URL), m).LoadVideo(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(adapterMetadata, outcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(adapterTitles, outcomeSuccess)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.variations))

	series, err := testutil.GatherAndCount(m.Registry())
	require.NoError(t, err)
	assert.Equal(t, 5, series)
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.ObserveRequest(adapterTitles, newError(KindRateLimited, "", nil), time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `ytapp_adapter_requests_total{adapter="titles",outcome="rate_limited"} 1`)
}
