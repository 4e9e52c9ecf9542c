package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"fpapulse/internal/ai"
	"fpapulse/internal/config"
	"fpapulse/internal/infrastructure"
	"fpapulse/internal/metrics"
)

// Completer is the LLM dependency of the analysis service.
type Completer interface {
	Configured() bool
	Complete(ctx context.Context, system, user string) (string, error)
}

// AnalysisRequest describes one analysis run.
type AnalysisRequest struct {
	Tab          string `json:"sheet" validate:"tabname"`
	Range        string `json:"range" validate:"a1range"`
	MaxRows      int    `json:"maxRows" validate:"gte=0,lte=1000"`
	Instructions string `json:"prompt"`
}

// AnalysisResult carries the model output plus the data slice it saw.
type AnalysisResult struct {
	Tab      string `json:"tab"`
	Range    string `json:"range"`
	RowsSent int    `json:"rowsSent"`
	Model    string `json:"model"`
	Analysis string `json:"analysis"`
}

// AnalysisService projects sheet data to CSV and asks the LLM for an
// FP&A readout.
type AnalysisService struct {
	sheets   *SheetService
	ai       Completer
	cfg      config.OpenAIConfig
	defaults config.SheetsConfig
	logger   *slog.Logger
	metrics  *infrastructure.BusinessMetrics
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(sheetService *SheetService, completer Completer, cfg config.OpenAIConfig, defaults config.SheetsConfig, logger *slog.Logger, bm *infrastructure.BusinessMetrics) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{
		sheets:   sheetService,
		ai:       completer,
		cfg:      cfg,
		defaults: defaults,
		logger:   logger.With(slog.String("component", "analysis_service")),
		metrics:  bm,
	}
}

// Analyze fetches the requested slice, projects it to CSV and sends it
// to the model together with the caller's instructions.
func (as *AnalysisService) Analyze(ctx context.Context, req AnalysisRequest) (AnalysisResult, error) {
	if as.ai == nil || !as.ai.Configured() {
		return AnalysisResult{}, ErrAnalysisDisabled
	}

	tab := req.Tab
	if tab == "" {
		tab = as.defaults.DefaultTab
	}
	maxRows := req.MaxRows
	if maxRows <= 0 {
		maxRows = metrics.DefaultProjectionRows
	}

	data, err := as.sheets.GetValues(ctx, tab, req.Range)
	if err != nil {
		return AnalysisResult{}, err
	}

	csv := metrics.ProjectCSV(data.Rows, maxRows)
	rowsSent := len(data.Rows)
	if rowsSent > maxRows {
		rowsSent = maxRows
	}

	user := ai.BuildAnalysisPrompt(tab, data.Range, rowsSent, req.Instructions, csv)

	start := time.Now()
	answer, err := as.ai.Complete(ctx, ai.SystemPrompt, user)
	as.recordAnalysis(ctx, time.Since(start), err)
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("analysis failed: %w", err)
	}
	if strings.TrimSpace(answer) == "" {
		return AnalysisResult{}, ErrEmptyAnalysis
	}

	return AnalysisResult{
		Tab:      tab,
		Range:    data.Range,
		RowsSent: rowsSent,
		Model:    as.cfg.Model,
		Analysis: answer,
	}, nil
}

func (as *AnalysisService) recordAnalysis(ctx context.Context, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	as.logger.InfoContext(ctx, "analysis call completed",
		slog.String("status", status),
		slog.String("model", as.cfg.Model),
		slog.Duration("duration", d),
	)

	if as.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("status", status),
		attribute.String("model", as.cfg.Model),
	)
	as.metrics.AnalysisCallsTotal.Add(ctx, 1, attrs)
	as.metrics.AnalysisCallDuration.Record(ctx, d.Seconds(), attrs)
}
