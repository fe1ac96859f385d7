package events

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogPublisher_Publish(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(zerolog.New(&buf).Level(zerolog.DebugLevel))

	err := p.Publish(context.Background(), "ledger.entry.changed", "e1", map[string]string{"action": "create"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"topic":"ledger.entry.changed"`)
	assert.Contains(t, out, `"key":"e1"`)
	assert.Contains(t, out, `"action":"create"`)
}
