package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLastMonday(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "Mid-week goes back to Monday",
			now:  time.Date(2025, 8, 21, 15, 30, 0, 0, time.UTC), // Thursday
			want: time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Monday stays on the same day",
			now:  time.Date(2025, 8, 18, 9, 0, 0, 0, time.UTC),
			want: time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Sunday goes back six days",
			now:  time.Date(2025, 8, 24, 23, 59, 0, 0, time.UTC),
			want: time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LastMonday(tt.now))
		})
	}
}
