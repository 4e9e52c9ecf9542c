package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "fpapulse/internal/errors"
	"fpapulse/internal/services"
)

type stubAnalysisService struct {
	result  services.AnalysisResult
	err     error
	lastReq services.AnalysisRequest
}

func (s *stubAnalysisService) Analyze(ctx context.Context, req services.AnalysisRequest) (services.AnalysisResult, error) {
	s.lastReq = req
	return s.result, s.err
}

func newAnalysisServer(s AnalysisServiceInterface) *httptest.Server {
	h := NewAnalysisHandler(s, testLogger(), apierrors.NewErrorHandler(testLogger(), false))
	return httptest.NewServer(h.Routes())
}

func TestAnalyzeQuery(t *testing.T) {
	stub := &stubAnalysisService{
		result: services.AnalysisResult{
			Tab:      "Orders",
			Range:    "A1:Z50",
			RowsSent: 5,
			Model:    "gpt-4o-mini",
			Analysis: "Revenue is concentrated on March 15.",
		},
	}
	srv := newAnalysisServer(stub)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/?sheet=Orders&maxRows=100&prompt=concentration")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "success", body["status"])

	result, ok := body["result"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "gpt-4o-mini", result["model"])

	assert.Equal(t, "Orders", stub.lastReq.Tab)
	assert.Equal(t, 100, stub.lastReq.MaxRows)
	assert.Equal(t, "concentration", stub.lastReq.Instructions)
}

func TestAnalyzeBody(t *testing.T) {
	stub := &stubAnalysisService{
		result: services.AnalysisResult{Analysis: "ok"},
	}
	srv := newAnalysisServer(stub)
	defer srv.Close()

	t.Run("valid body", func(t *testing.T) {
		payload := `{"sheet":"Orders","range":"A1:C10","maxRows":50,"prompt":"trends"}`
		resp, err := http.Post(srv.URL+"/", "application/json", strings.NewReader(payload))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		assert.Equal(t, "Orders", stub.lastReq.Tab)
		assert.Equal(t, "A1:C10", stub.lastReq.Range)
	})

	t.Run("malformed json", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/", "application/json", strings.NewReader(`{"sheet":`))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid range rejected", func(t *testing.T) {
		payload := `{"range":"not a range"}`
		resp, err := http.Post(srv.URL+"/", "application/json", strings.NewReader(payload))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAnalyzeDisabled(t *testing.T) {
	srv := newAnalysisServer(&stubAnalysisService{err: apierrors.ErrAnalysisNoKey})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "/errors/analysis/disabled", body["type"])
}
