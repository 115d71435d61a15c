package api

import (
	"context"
	"io"

	"github.com/econstats/econstats"
	"go.uber.org/zap"
)

// NewStreamForTest exposes newStream so decoder tests can feed scripted
// readers without an HTTP server.
func NewStreamForTest(ctx context.Context, body io.ReadCloser, logger *zap.Logger) econstats.Stream {
	return newStream(ctx, body, logger)
}

// ParseEventForTest exposes parseEvent for external tests.
func ParseEventForTest(payload string) (econstats.Event, error) {
	return parseEvent(payload)
}

// FramePayloadForTest exposes framePayload for external tests.
func FramePayloadForTest(frame string) (string, bool) {
	return framePayload(frame)
}
