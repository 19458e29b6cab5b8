package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{name: "Small amount", amount: 45.0, want: "$45.00"},
		{name: "Thousands grouping", amount: 1234.56, want: "$1,234.56"},
		{name: "Millions grouping", amount: 1234567.89, want: "$1,234,567.89"},
		{name: "Zero", amount: 0, want: "$0.00"},
		{name: "Negative", amount: -2500, want: "-$2,500.00"},
		{name: "Rounding to cents", amount: 9.999, want: "$10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.amount))
		})
	}
}

func TestPercentChangeLabel(t *testing.T) {
	assert.Equal(t, "25.0%", PercentChangeLabel(125, 100))
	assert.Equal(t, "-50.0%", PercentChangeLabel(50, 100))
	assert.Equal(t, "0.0%", PercentChangeLabel(100, 100))
	assert.Equal(t, "N/A", PercentChangeLabel(100, 0))
}
