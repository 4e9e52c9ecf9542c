package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "fpapulse/internal/errors"
	mw "fpapulse/internal/middleware"
	"fpapulse/internal/services"
)

// AnalysisHandler handles LLM analysis HTTP requests
type AnalysisHandler struct {
	service      AnalysisServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validation   *mw.ValidationMiddleware
	query        *mw.QueryParamValidator
}

// NewAnalysisHandler creates a new analysis handler with RFC 7807 error handling
func NewAnalysisHandler(service AnalysisServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalysisHandler {
	return &AnalysisHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "analysis_handler")),
		errorHandler: errorHandler,
		validation:   mw.NewValidationMiddleware(logger, errorHandler),
		query:        mw.NewQueryParamValidator(logger, errorHandler),
	}
}

// Routes returns the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.AnalyzeQuery)
	r.With(h.validation.ValidateRequest).Post("/", h.AnalyzeBody)

	return r
}

// AnalyzeQuery handles GET /api/analyze?sheet=&range=&maxRows=&prompt=
func (h *AnalysisHandler) AnalyzeQuery(w http.ResponseWriter, r *http.Request) {
	maxRows, ok := h.query.ValidateInt(w, r, "maxRows", 0, 1000, 0)
	if !ok {
		return
	}

	q := r.URL.Query()
	req := services.AnalysisRequest{
		Tab:          q.Get("sheet"),
		Range:        q.Get("range"),
		MaxRows:      maxRows,
		Instructions: q.Get("prompt"),
	}
	h.analyze(w, r, req)
}

// AnalyzeBody handles POST /api/analyze with a JSON body
func (h *AnalysisHandler) AnalyzeBody(w http.ResponseWriter, r *http.Request) {
	var req services.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusBadRequest,
			"INVALID_JSON",
			"Request body could not be decoded",
		))
		return
	}
	h.analyze(w, r, req)
}

func (h *AnalysisHandler) analyze(w http.ResponseWriter, r *http.Request, req services.AnalysisRequest) {
	if err := h.validation.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "running analysis",
		slog.String("request_id", mw.GetReqID(r.Context())),
		slog.String("tab", req.Tab),
		slog.String("range", req.Range),
		slog.Int("max_rows", req.MaxRows),
		slog.Int("prompt_len", len(req.Instructions)),
	)

	result, err := h.service.Analyze(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"result": result,
	})
}
