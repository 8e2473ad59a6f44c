package app

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Black-And-White-Club/padel-ladder/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		wantJSON bool
		wantInfo bool
	}{
		{
			name:     "production logs json",
			cfg:      config.Config{Observability: config.ObservabilityConfig{Environment: "production", LogLevel: "info"}},
			wantJSON: true,
			wantInfo: true,
		},
		{
			name:     "development logs text",
			cfg:      config.Config{Observability: config.ObservabilityConfig{Environment: "development", LogLevel: "info"}},
			wantInfo: true,
		},
		{
			name: "level filters info",
			cfg:  config.Config{Observability: config.ObservabilityConfig{Environment: "development", LogLevel: "warn"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&tt.cfg, &buf)
			logger.Info("ladder ready")

			out := strings.TrimSpace(buf.String())
			if !tt.wantInfo {
				assert.Empty(t, out)
				return
			}
			assert.Contains(t, out, "ladder ready")
			assert.Contains(t, out, serviceName)
			if tt.wantJSON {
				var line map[string]any
				require.NoError(t, json.Unmarshal([]byte(out), &line))
				assert.Equal(t, serviceName, line["service"])
			}
		})
	}
}
