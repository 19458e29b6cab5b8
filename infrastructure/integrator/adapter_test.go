package integrator

import (
	"testing"

	"github.com/daylightco/finops-reporter/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		name   string
		raw    interface{}
		want   float64
		wantOK bool
	}{
		{name: "JSON number", raw: 123.45, want: 123.45, wantOK: true},
		{name: "Negative number", raw: -10.0, want: -10.0, wantOK: true},
		{name: "Numeric string", raw: "99.90", want: 99.90, wantOK: true},
		{name: "Garbage string", raw: "forty-two", want: 0.0, wantOK: false},
		{name: "Null", raw: nil, want: 0.0, wantOK: false},
		{name: "Unexpected type", raw: true, want: 0.0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceAmount(domain.SourceBrex, tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
