package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "fpapulse/internal/errors"
	"fpapulse/internal/exporter"
	mw "fpapulse/internal/middleware"
	"fpapulse/internal/services"
)

// MetricsHandler handles aggregation HTTP requests
type MetricsHandler struct {
	service      MetricsServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	query        *mw.QueryParamValidator
	csvWriter    *exporter.ReportWriter
	xlsxWriter   *exporter.WorkbookWriter
}

// NewMetricsHandler creates a new metrics handler with RFC 7807 error handling
func NewMetricsHandler(service MetricsServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *MetricsHandler {
	return &MetricsHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "metrics_handler")),
		errorHandler: errorHandler,
		query:        mw.NewQueryParamValidator(logger, errorHandler),
		csvWriter:    exporter.NewReportWriter(),
		xlsxWriter:   exporter.NewWorkbookWriter(),
	}
}

// Routes returns the metrics routes
func (h *MetricsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	// Export negotiates its own content type
	r.With(render.SetContentType(render.ContentTypeJSON)).Get("/summary", h.GetSummary)
	r.With(render.SetContentType(render.ContentTypeJSON)).Get("/timeseries", h.GetTimeSeries)
	r.Get("/export", h.Export)

	return r
}

// aggregationRequest reads the shared tab/range/from/to query params.
// Invalid window bounds are not an error: the engine substitutes the
// open defaults.
func aggregationRequest(r *http.Request) services.AggregationRequest {
	q := r.URL.Query()
	return services.AggregationRequest{
		Tab:   q.Get("tab"),
		Range: q.Get("range"),
		From:  q.Get("from"),
		To:    q.Get("to"),
	}
}

// GetSummary handles GET /api/metrics/summary
func (h *MetricsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	req := aggregationRequest(r)

	h.logger.InfoContext(r.Context(), "building summary",
		slog.String("request_id", mw.GetReqID(r.Context())),
		slog.String("tab", req.Tab),
		slog.String("from", req.From),
		slog.String("to", req.To),
	)

	summary, err := h.service.Summary(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":  "success",
		"summary": summary,
	})
}

// GetTimeSeries handles GET /api/metrics/timeseries
func (h *MetricsHandler) GetTimeSeries(w http.ResponseWriter, r *http.Request) {
	req := aggregationRequest(r)

	h.logger.InfoContext(r.Context(), "building time series",
		slog.String("request_id", mw.GetReqID(r.Context())),
		slog.String("tab", req.Tab),
		slog.String("from", req.From),
		slog.String("to", req.To),
	)

	series, err := h.service.TimeSeries(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"series": series,
		"count":  len(series),
	})
}

// Export handles GET /api/metrics/export?format=csv|xlsx
func (h *MetricsHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, ok := h.query.ValidateEnum(w, r, "format", []string{"csv", "xlsx"}, "csv")
	if !ok {
		return
	}
	req := aggregationRequest(r)

	h.logger.InfoContext(r.Context(), "exporting report",
		slog.String("request_id", mw.GetReqID(r.Context())),
		slog.String("format", format),
		slog.String("tab", req.Tab),
	)

	report, err := h.service.Report(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := fmt.Sprintf("metrics_%s.%s", time.Now().Format("2006_01_02"), format)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	switch format {
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = h.xlsxWriter.WriteXLSX(w, report)
	default:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		err = h.csvWriter.WriteCSV(w, report)
	}
	if err != nil {
		// Headers are already sent, all we can do is log
		h.logger.ErrorContext(r.Context(), "failed to stream report",
			slog.String("format", format),
			slog.String("error", err.Error()),
		)
	}
}
