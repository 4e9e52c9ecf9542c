package services

import (
	"errors"

	apierrors "fpapulse/internal/errors"
)

// Service layer errors. The sheet and analysis sentinels are shared
// with the error handler so errors.Is matching survives wrapping.
var (
	// Sheet errors
	ErrTabNotFound       = apierrors.ErrTabNotFound
	ErrSheetEmpty        = apierrors.ErrSheetEmpty
	ErrSheetsCredentials = apierrors.ErrSheetsCredentials

	// Analysis errors
	ErrAnalysisDisabled = apierrors.ErrAnalysisNoKey
	ErrEmptyAnalysis    = errors.New("analysis returned no content")

	// General errors
	ErrInvalidInput       = errors.New("invalid input")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)
