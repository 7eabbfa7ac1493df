package http

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepLookback(t *testing.T) {
	fallback := 7 * 24 * time.Hour

	tests := []struct {
		name    string
		body    string
		want    time.Duration
		wantErr bool
	}{
		{"empty body uses fallback", "", fallback, false},
		{"omitted field uses fallback", `{}`, fallback, false},
		{"override honored", `{"lookback_minutes": 90}`, 90 * time.Minute, false},
		{"zero rejected", `{"lookback_minutes": 0}`, 0, true},
		{"negative rejected", `{"lookback_minutes": -5}`, 0, true},
		{"malformed body rejected", `{"lookback_minutes":`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/sweeps/absences", strings.NewReader(tt.body))
			got, err := sweepLookback(r, fallback)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
