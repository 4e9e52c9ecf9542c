package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(ctx context.Context) error { return f.err }

func TestHealthServiceHealthCheck(t *testing.T) {
	hs := NewHealthService("v1.0.0", "", &fakePinger{}, &fakeCompleter{configured: true}, discardLogger())

	status := hs.HealthCheck(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "v1.0.0", status.Version)
}

func TestHealthServiceReadinessCheck(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		configured bool
		wantStatus string
		wantSheets string
		wantAI     string
	}{
		{
			name:       "all ready",
			configured: true,
			wantStatus: "ready",
			wantSheets: "ready",
			wantAI:     "ready",
		},
		{
			name:       "analysis disabled is still ready",
			configured: false,
			wantStatus: "ready",
			wantSheets: "ready",
			wantAI:     "disabled",
		},
		{
			name:       "sheets down",
			pingErr:    errors.New("spreadsheet unreachable"),
			configured: true,
			wantStatus: "not_ready",
			wantSheets: "not_ready",
			wantAI:     "ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs := NewHealthService("v1.0.0", "",
				&fakePinger{err: tt.pingErr},
				&fakeCompleter{configured: tt.configured},
				discardLogger(),
			)

			status := hs.ReadinessCheck(context.Background())
			assert.Equal(t, tt.wantStatus, status.Status)

			sheets, ok := status.Services["sheets"].(ServiceHealth)
			require.True(t, ok)
			assert.Equal(t, tt.wantSheets, sheets.Status)

			ai, ok := status.Services["analysis"].(ServiceHealth)
			require.True(t, ok)
			assert.Equal(t, tt.wantAI, ai.Status)
		})
	}
}

func TestHealthServiceLivenessCheck(t *testing.T) {
	hs := NewHealthService("v1.0.0", "", nil, nil, discardLogger())

	status := hs.LivenessCheck(context.Background())
	assert.Equal(t, "alive", status.Status)
	assert.Contains(t, status.Runtime, "go_version")
	assert.Contains(t, status.Runtime, "goroutines")
}

func TestHealthServiceVersion(t *testing.T) {
	hs := NewHealthService("v1.0.0", "2026-08-29T00:00:00Z", nil, nil, discardLogger())

	info := hs.Version()
	assert.Equal(t, "v1.0.0", info["version"])
	assert.Equal(t, "2026-08-29T00:00:00Z", info["build_time"])
}
