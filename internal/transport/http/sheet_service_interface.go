package http

import (
	"context"

	"fpapulse/internal/services"
)

// SheetServiceInterface defines the interface for raw spreadsheet access
type SheetServiceInterface interface {
	ListTabs(ctx context.Context) ([]string, error)
	GetValues(ctx context.Context, tab, a1Range string) (services.TabData, error)
	GetAllSheets(ctx context.Context, rows int, cols string) ([]services.TabData, error)
}
