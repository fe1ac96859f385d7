package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_Level(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		debugSeen bool
		infoSeen  bool
	}{
		{name: "debug shows everything", level: "debug", debugSeen: true, infoSeen: true},
		{name: "warn hides info", level: "WARN", debugSeen: false, infoSeen: false},
		{name: "unknown falls back to info", level: "chatty", debugSeen: false, infoSeen: true},
		{name: "empty falls back to info", level: "", debugSeen: false, infoSeen: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter(&buf, tt.level)

			log.Debug().Msg("debug-line")
			log.Info().Msg("info-line")

			assert.Equal(t, tt.debugSeen, bytes.Contains(buf.Bytes(), []byte("debug-line")))
			assert.Equal(t, tt.infoSeen, bytes.Contains(buf.Bytes(), []byte("info-line")))
		})
	}
}

func TestNewWithWriter_Fields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")
	log.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"service":"advisordesk"`)
	assert.Contains(t, buf.String(), `"time":`)
}
