package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "fpapulse/internal/errors"
	mw "fpapulse/internal/middleware"
)

// SheetHandler handles raw spreadsheet HTTP requests
type SheetHandler struct {
	service      SheetServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	query        *mw.QueryParamValidator
}

// NewSheetHandler creates a new sheet handler with RFC 7807 error handling
func NewSheetHandler(service SheetServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *SheetHandler {
	return &SheetHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "sheet_handler")),
		errorHandler: errorHandler,
		query:        mw.NewQueryParamValidator(logger, errorHandler),
	}
}

// Routes returns the sheet routes
func (h *SheetHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/tabs", h.GetTabs)
	r.Get("/values", h.GetValues)
	r.Get("/all", h.GetAllSheets)

	return r
}

// GetTabs handles GET /api/sheets/tabs
func (h *SheetHandler) GetTabs(w http.ResponseWriter, r *http.Request) {
	reqID := mw.GetReqID(r.Context())

	h.logger.InfoContext(r.Context(), "listing tabs",
		slog.String("request_id", reqID),
	)

	tabs, err := h.service.ListTabs(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"tabs":   tabs,
		"count":  len(tabs),
	})
}

// GetValues handles GET /api/sheets/values?tab=&range=
func (h *SheetHandler) GetValues(w http.ResponseWriter, r *http.Request) {
	tab := r.URL.Query().Get("tab")
	if tab == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("tab", "Tab name is required"))
		return
	}
	a1Range := r.URL.Query().Get("range")

	h.logger.InfoContext(r.Context(), "fetching values",
		slog.String("request_id", mw.GetReqID(r.Context())),
		slog.String("tab", tab),
		slog.String("range", a1Range),
	)

	data, err := h.service.GetValues(r.Context(), tab, a1Range)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   data,
		"count":  len(data.Rows),
	})
}

// GetAllSheets handles GET /api/sheets/all?rows=&cols=
func (h *SheetHandler) GetAllSheets(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.query.ValidateInt(w, r, "rows", 1, 500, 50)
	if !ok {
		return
	}
	cols := r.URL.Query().Get("cols")
	if cols == "" {
		cols = "Z"
	}
	if len(cols) > 3 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("cols", "cols must be a column letter like H or AZ"))
		return
	}

	h.logger.InfoContext(r.Context(), "fetching all sheets",
		slog.String("request_id", mw.GetReqID(r.Context())),
		slog.Int("rows", rows),
		slog.String("cols", cols),
	)

	all, err := h.service.GetAllSheets(r.Context(), rows, cols)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"sheets": all,
		"count":  len(all),
	})
}
