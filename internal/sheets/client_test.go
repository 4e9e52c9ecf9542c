package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteTab(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain name unquoted",
			input:    "OrdersTable",
			expected: "OrdersTable",
		},
		{
			name:     "underscores and digits unquoted",
			input:    "orders_2024",
			expected: "orders_2024",
		},
		{
			name:     "spaces require quoting",
			input:    "Monthly Orders",
			expected: "'Monthly Orders'",
		},
		{
			name:     "symbols require quoting",
			input:    "P&L",
			expected: "'P&L'",
		},
		{
			name:     "embedded single quote doubled",
			input:    "Ana's Sheet",
			expected: "'Ana''s Sheet'",
		},
		{
			name:     "empty title quoted",
			input:    "",
			expected: "''",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, QuoteTab(tt.input))
		})
	}
}
