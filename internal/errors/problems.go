package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// Domain sentinel errors surfaced by the services layer.
var (
	ErrTabNotFound       = errors.New("tab not found")
	ErrSheetEmpty        = errors.New("sheet is empty")
	ErrSheetsCredentials = errors.New("sheets credentials missing")
	ErrAnalysisNoKey     = errors.New("analysis api key not configured")
)

// ProblemDetails implements RFC 7807 Problem Details for HTTP APIs
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// Additional fields for extensibility
	Extensions map[string]interface{} `json:"-"`
}

// Render implements the render.Renderer interface
func (pd *ProblemDetails) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, pd.Status)
	return nil
}

// MarshalJSON custom marshaler to include extensions
func (pd *ProblemDetails) MarshalJSON() ([]byte, error) {
	data := make(map[string]interface{})

	data["type"] = pd.Type
	data["title"] = pd.Title
	data["status"] = pd.Status

	if pd.Detail != "" {
		data["detail"] = pd.Detail
	}
	if pd.Instance != "" {
		data["instance"] = pd.Instance
	}

	for k, v := range pd.Extensions {
		data[k] = v
	}

	return json.Marshal(data)
}

// NewProblemDetails creates a new RFC 7807 compliant error
func NewProblemDetails(status int, problemType, title, detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:       problemType,
		Title:      title,
		Status:     status,
		Detail:     detail,
		Instance:   instance,
		Extensions: make(map[string]interface{}),
	}
}

// WithExtension adds an extension field to the problem details
func (pd *ProblemDetails) WithExtension(key string, value interface{}) *ProblemDetails {
	pd.Extensions[key] = value
	return pd
}

// NewMissingColumnsProblem reports header roles that could not be resolved.
// The response carries the unresolved roles so a client can fix the sheet.
func NewMissingColumnsProblem(roles []string, traceID string) *ProblemDetails {
	return NewProblemDetails(
		http.StatusUnprocessableEntity,
		"/errors/metrics/missing-columns",
		"Required Columns Missing",
		fmt.Sprintf("The sheet header does not contain the required columns: %v", roles),
		fmt.Sprintf("/api/metrics#%s", traceID),
	).WithExtension("missing_columns", roles).
		WithExtension("trace_id", traceID)
}

// NewTabNotFoundProblem reports a request for a tab the spreadsheet lacks.
func NewTabNotFoundProblem(tab, traceID string) *ProblemDetails {
	return NewProblemDetails(
		http.StatusNotFound,
		"/errors/sheets/tab-not-found",
		"Tab Not Found",
		fmt.Sprintf("The spreadsheet does not contain a tab named %q.", tab),
		fmt.Sprintf("/api/sheets#%s", traceID),
	).WithExtension("tab", tab).
		WithExtension("trace_id", traceID)
}

// NewSheetsUnavailableProblem reports an upstream Sheets API failure.
func NewSheetsUnavailableProblem(err error, traceID string) *ProblemDetails {
	return NewProblemDetails(
		http.StatusBadGateway,
		"/errors/sheets/unavailable",
		"Spreadsheet Backend Unavailable",
		"The Google Sheets API request failed. Check connectivity and service account access.",
		fmt.Sprintf("/api/sheets#%s", traceID),
	).WithExtension("cause", err.Error()).
		WithExtension("trace_id", traceID)
}

// NewAnalysisDisabledProblem reports that the LLM integration is not configured.
func NewAnalysisDisabledProblem(traceID string) *ProblemDetails {
	return NewProblemDetails(
		http.StatusBadRequest,
		"/errors/analysis/disabled",
		"Analysis Disabled",
		"No OpenAI API key is configured, so analysis requests cannot be served.",
		fmt.Sprintf("/api/analyze#%s", traceID),
	).WithExtension("trace_id", traceID)
}

// NewAnalysisFailedProblem reports an upstream LLM failure.
func NewAnalysisFailedProblem(err error, traceID string) *ProblemDetails {
	return NewProblemDetails(
		http.StatusBadGateway,
		"/errors/analysis/failed",
		"Analysis Failed",
		"The analysis backend returned an error.",
		fmt.Sprintf("/api/analyze#%s", traceID),
	).WithExtension("cause", err.Error()).
		WithExtension("trace_id", traceID)
}
