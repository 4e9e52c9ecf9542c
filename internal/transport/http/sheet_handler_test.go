package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "fpapulse/internal/errors"
	"fpapulse/internal/services"
)

type stubSheetService struct {
	tabs     []string
	data     services.TabData
	all      []services.TabData
	err      error
	lastRows int
	lastCols string
}

func (s *stubSheetService) ListTabs(ctx context.Context) ([]string, error) {
	return s.tabs, s.err
}

func (s *stubSheetService) GetValues(ctx context.Context, tab, a1Range string) (services.TabData, error) {
	if s.err != nil {
		return services.TabData{}, s.err
	}
	return s.data, nil
}

func (s *stubSheetService) GetAllSheets(ctx context.Context, rows int, cols string) ([]services.TabData, error) {
	s.lastRows = rows
	s.lastCols = cols
	return s.all, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSheetServer(s SheetServiceInterface) *httptest.Server {
	h := NewSheetHandler(s, testLogger(), apierrors.NewErrorHandler(testLogger(), false))
	return httptest.NewServer(h.Routes())
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestGetTabs(t *testing.T) {
	srv := newSheetServer(&stubSheetService{tabs: []string{"Orders", "Refunds"}})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/tabs")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(2), body["count"])
}

func TestGetValues(t *testing.T) {
	stub := &stubSheetService{
		data: services.TabData{
			Tab:    "Orders",
			Range:  "A1:Z50",
			Rows:   [][]any{{"Item Price"}, {"100"}},
			Source: "Orders!A1:Z50",
		},
	}
	srv := newSheetServer(stub)
	defer srv.Close()

	t.Run("success", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/values?tab=Orders")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, float64(2), body["count"])
	})

	t.Run("tab is required", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/values")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "/errors/validation", body["type"])
	})
}

func TestGetValuesTabNotFound(t *testing.T) {
	srv := newSheetServer(&stubSheetService{err: apierrors.ErrTabNotFound})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/values?tab=Nope")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "/errors/sheets/tab-not-found", body["type"])
}

func TestGetAllSheets(t *testing.T) {
	stub := &stubSheetService{
		all: []services.TabData{
			{Tab: "Orders", Range: "A1:H10"},
			{Tab: "Refunds", Range: "A1:H10"},
		},
	}
	srv := newSheetServer(stub)
	defer srv.Close()

	t.Run("success", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/all?rows=10&cols=H")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, float64(2), body["count"])
	})

	t.Run("defaults to 50 rows through column Z", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/all")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 50, stub.lastRows)
		assert.Equal(t, "Z", stub.lastCols)
	})

	t.Run("rows out of range", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/all?rows=10000")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("cols too long", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/all?cols=ABCD")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
