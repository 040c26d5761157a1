package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePhone(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "bare digits", raw: "5551234567", want: "+94 (555) 123-4567"},
		{name: "already masked", raw: "(555) 123-4567", want: "+94 (555) 123-4567"},
		{name: "punctuated", raw: "555-123-4567", want: "+94 (555) 123-4567"},
		{name: "excess digits truncated", raw: "55512345679999", want: "+94 (555) 123-4567"},
		{name: "too short", raw: "555123", wantErr: true},
		{name: "no digits", raw: "call me", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolvePhone(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyGeoEnv(t *testing.T) {
	t.Setenv("GEO_PROVIDER_URL", "http://geo.internal/json")
	t.Setenv("GEO_TIMEOUT", "3s")

	require.NoError(t, applyGeoEnv(submitCmd))
	assert.Equal(t, "http://geo.internal/json", geoURL)
	assert.Equal(t, 3*time.Second, geoTimeout)

	t.Setenv("GEO_TIMEOUT", "bogus")
	require.Error(t, applyGeoEnv(submitCmd))
}

func TestValidGB(t *testing.T) {
	for _, gb := range []string{"1", "2", "5", "10", "20", "other"} {
		assert.True(t, validGB(gb), gb)
	}
	for _, gb := range []string{"", "3", "OTHER", "5 "} {
		assert.False(t, validGB(gb), gb)
	}
}
