package econstats_test

import (
	"testing"

	"github.com/econstats/econstats"
	"github.com/stretchr/testify/assert"
)

func TestStreamState_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state econstats.StreamState
		want  string
	}{
		{econstats.StreamStateConnecting, "connecting"},
		{econstats.StreamStateStreaming, "streaming"},
		{econstats.StreamStateDone, "done"},
		{econstats.StreamStateFailed, "failed"},
		{econstats.StreamState(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}

func TestStreamState_Terminal(t *testing.T) {
	t.Parallel()

	assert.False(t, econstats.StreamStateConnecting.Terminal())
	assert.False(t, econstats.StreamStateStreaming.Terminal())
	assert.True(t, econstats.StreamStateDone.Terminal())
	assert.True(t, econstats.StreamStateFailed.Terminal())
}
