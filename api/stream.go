package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/econstats/econstats"
	"go.uber.org/zap"
)

const dataPrefix = "data: "

var frameSep = []byte("\n\n")

// stream implements [econstats.Stream] by decoding SSE frames from an
// HTTP response body.
type stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	ctx     context.Context
	logger  *zap.Logger
	closed  bool
	err     error // terminal error, if any
}

// Interface compliance check.
var _ econstats.Stream = (*stream)(nil)

func newStream(ctx context.Context, body io.ReadCloser, logger *zap.Logger) *stream {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)
	scanner.Split(splitFrames)
	return &stream{body: body, scanner: scanner, ctx: ctx, logger: logger}
}

// splitFrames is a [bufio.SplitFunc] that tokenizes server-sent events:
// one token per frame, frames separated by a blank line, the delimiter
// excluded from the token. Because the scanner buffers across reads, the
// frame sequence is identical no matter how the bytes were chunked in
// transit. An unterminated trailing frame at EOF is discarded, not
// surfaced.
func splitFrames(data []byte, atEOF bool) (int, []byte, error) {
	if i := bytes.Index(data, frameSep); i >= 0 {
		return i + len(frameSep), data[:i], nil
	}
	if atEOF {
		// Consume the partial frame without emitting a token so Scan
		// returns false cleanly.
		return len(data), nil, nil
	}
	return 0, nil, nil
}

// Next returns the next semantic event from the stream, or io.EOF once
// the server closes it. Malformed frames are logged and skipped; one bad
// frame never aborts the stream.
func (s *stream) Next() (econstats.Event, error) {
	if s.closed {
		return nil, fmt.Errorf("api: %w", econstats.ErrStreamClosed)
	}
	if s.err != nil {
		return nil, s.err
	}

	for s.scanner.Scan() {
		payload, ok := framePayload(s.scanner.Text())
		if !ok {
			// No data line: an SSE comment or keepalive. Keep reading.
			continue
		}
		evt, err := parseEvent(payload)
		if err != nil {
			s.logger.Warn("skipping malformed frame",
				zap.Error(err), zap.String("payload", truncateForLog(payload)))
			continue
		}
		return evt, nil
	}

	if err := s.scanner.Err(); err != nil {
		if s.ctx.Err() != nil {
			s.err = s.ctx.Err()
		} else {
			s.err = fmt.Errorf("api: read stream: %w", err)
		}
		return nil, s.err
	}

	s.err = io.EOF
	return nil, io.EOF
}

// Close closes the underlying HTTP response body. If the stream has not
// reached a terminal state, further Next calls return ErrStreamClosed;
// otherwise they keep returning the terminal result.
func (s *stream) Close() error {
	if s.err == nil {
		s.closed = true
	}
	return s.body.Close()
}

// framePayload extracts the data payload from one frame. Only lines
// starting with "data: " carry payload. Multiple data lines concatenate
// with a newline per the SSE spec, though the backend sends exactly one
// per frame.
func framePayload(frame string) (string, bool) {
	var buf strings.Builder
	found := false
	for _, line := range strings.Split(frame, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}
		if found {
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.TrimPrefix(line, dataPrefix))
		found = true
	}
	return buf.String(), found
}

// parseEvent decodes one frame payload into a typed event.
func parseEvent(payload string) (econstats.Event, error) {
	var frame apiFrame
	if err := json.Unmarshal([]byte(payload), &frame); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}

	switch frame.Type {
	case frameTypeCharts:
		return econstats.EventCharts{
			Charts:          convertCharts(frame.Data),
			Metrics:         convertMetrics(frame.Metrics),
			TemporalContext: frame.TemporalContext,
		}, nil
	case frameTypeSpecial:
		return econstats.EventSpecial{
			Fragments: convertFragments(frame.FedSEPHTML, frame.RecessionHTML, frame.PolymarketHTML),
		}, nil
	case frameTypeSources:
		return econstats.EventSources{Sources: convertSources(frame.Sources)}, nil
	case frameTypeSummaryChunk:
		return econstats.EventSummaryChunk{Text: frame.Text}, nil
	case frameTypeDone:
		return econstats.EventDone{Suggestions: frame.Suggestions}, nil
	case frameTypeError:
		return econstats.EventError{Message: frame.Message}, nil
	default:
		return nil, fmt.Errorf("unknown frame type %q", frame.Type)
	}
}

// truncateForLog caps frame payloads quoted in warning logs.
func truncateForLog(s string) string {
	const max = 200
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
