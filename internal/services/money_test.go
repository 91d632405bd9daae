package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   int64
	}{
		{"whole amount", 5000, 500000},
		{"price ending in .99", 19.99, 1999},
		{"price ending in .95", 4.95, 495},
		{"accumulated float error", 0.1 + 0.2, 30},
		{"single cent", 0.01, 1},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MinorUnits(tt.amount))
		})
	}
}
