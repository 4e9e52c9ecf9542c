package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "fpapulse/internal/errors"
	"fpapulse/internal/exporter"
	"fpapulse/internal/metrics"
	"fpapulse/internal/services"
)

type stubMetricsService struct {
	summary  metrics.Summary
	series   []metrics.SeriesPoint
	err      error
	lastReq  services.AggregationRequest
}

func (s *stubMetricsService) Summary(ctx context.Context, req services.AggregationRequest) (metrics.Summary, error) {
	s.lastReq = req
	return s.summary, s.err
}

func (s *stubMetricsService) TimeSeries(ctx context.Context, req services.AggregationRequest) ([]metrics.SeriesPoint, error) {
	s.lastReq = req
	return s.series, s.err
}

func (s *stubMetricsService) Report(ctx context.Context, req services.AggregationRequest) (exporter.Report, error) {
	s.lastReq = req
	return exporter.NewReport(s.summary, s.series), s.err
}

func newMetricsServer(s MetricsServiceInterface) *httptest.Server {
	h := NewMetricsHandler(s, testLogger(), apierrors.NewErrorHandler(testLogger(), false))
	return httptest.NewServer(h.Routes())
}

func testSummary() metrics.Summary {
	return metrics.Summary{
		TotalAmount:       1334.56,
		OrderCount:        3,
		AverageOrderValue: 444.85,
		WindowStart:       "1970-01-01",
		WindowEnd:         "2999-12-31",
		Source:            "Orders!A1:Z50",
	}
}

func TestGetSummary(t *testing.T) {
	stub := &stubMetricsService{summary: testSummary()}
	srv := newMetricsServer(stub)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/summary?tab=Orders&from=2024-03-01&to=2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "success", body["status"])

	summary, ok := body["summary"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 1334.56, summary["totalAmount"])
	assert.Equal(t, float64(3), summary["orderCount"])

	// Query params flow through unchanged
	assert.Equal(t, "Orders", stub.lastReq.Tab)
	assert.Equal(t, "2024-03-01", stub.lastReq.From)
	assert.Equal(t, "2024-03-31", stub.lastReq.To)
}

func TestGetSummaryMissingColumns(t *testing.T) {
	stub := &stubMetricsService{
		err: &metrics.MissingColumnsError{Roles: []metrics.Role{metrics.RolePrice}},
	}
	srv := newMetricsServer(stub)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/summary")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "/errors/metrics/missing-columns", body["type"])
	assert.Equal(t, []interface{}{"price"}, body["missing_columns"])
}

func TestGetTimeSeries(t *testing.T) {
	stub := &stubMetricsService{
		series: []metrics.SeriesPoint{
			{Date: "2024-03-15", Value: 1234.56},
			{Date: "2024-03-16", Value: 100},
		},
	}
	srv := newMetricsServer(stub)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/timeseries")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(2), body["count"])
}

func TestExport(t *testing.T) {
	stub := &stubMetricsService{
		summary: testSummary(),
		series:  []metrics.SeriesPoint{{Date: "2024-03-15", Value: 1234.56}},
	}
	srv := newMetricsServer(stub)
	defer srv.Close()

	t.Run("csv default", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/export")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
		assert.Contains(t, resp.Header.Get("Content-Disposition"), ".csv")

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "Total Amount,1334.56")
	})

	t.Run("xlsx", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/export?format=xlsx")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		// XLSX files are ZIP archives
		assert.True(t, strings.HasPrefix(string(raw), "PK"))
	})

	t.Run("unknown format", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/export?format=pdf")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
