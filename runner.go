package econstats

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

// Runner coordinates one query attempt against a Searcher: stream when
// possible, fall back to the non-streaming endpoint when the stream
// cannot be established or breaks mid-read. The fallback is issued at
// most once per attempt and is never retried.
type Runner struct {
	searcher        Searcher
	logger          *zap.Logger
	fallbackTimeout time.Duration
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithFallbackTimeout bounds the non-streaming fallback call. Zero means
// no bound beyond the caller's context.
func WithFallbackTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) { r.fallbackTimeout = d }
}

// NewRunner creates a Runner backed by the given searcher.
func NewRunner(searcher Searcher, opts ...RunnerOption) *Runner {
	r := &Runner{searcher: searcher, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunOption configures a single Run invocation.
type RunOption func(*runConfig)

type runConfig struct {
	handlers Handlers
	onUpdate func(Result)
}

// WithHandlers sets a callback table that receives each streaming event
// during the run, after the event has been applied to the result.
func WithHandlers(h Handlers) RunOption {
	return func(c *runConfig) { c.handlers = h }
}

// WithUpdateFunc sets a callback that receives a result snapshot after
// each applied event and after the fallback outcome.
func WithUpdateFunc(fn func(Result)) RunOption {
	return func(c *runConfig) { c.onUpdate = fn }
}

// Run executes one query attempt and returns the final result snapshot.
//
// The returned error is non-nil for an invalid request, for context
// cancellation, and when both the stream and the fallback fail (wrapping
// ErrSearchFailed). A server-sent error event is not a Run error: that
// outcome is in the snapshot, State Failed with ErrorMessage set.
func (r *Runner) Run(ctx context.Context, req SearchRequest, opts ...RunOption) (Result, error) {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	agg := NewAggregator(req.Query)

	if err := req.Validate(); err != nil {
		return agg.Snapshot(), err
	}

	stream, err := r.searcher.SearchStream(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return agg.Snapshot(), ctx.Err()
		}
		r.logger.Warn("stream establish failed, falling back",
			zap.String("query", req.Query), zap.Error(err))
		return r.fallback(ctx, req, agg, &cfg, err)
	}
	defer stream.Close()

	for {
		evt, err := stream.Next()
		if err == io.EOF {
			// Server closed without a terminal event.
			if ctx.Err() != nil {
				return agg.Snapshot(), ctx.Err()
			}
			r.logger.Warn("stream ended before terminal event, falling back",
				zap.String("query", req.Query))
			return r.fallback(ctx, req, agg, &cfg, io.ErrUnexpectedEOF)
		}
		if err != nil {
			if ctx.Err() != nil {
				return agg.Snapshot(), ctx.Err()
			}
			r.logger.Warn("stream broke mid-read, falling back",
				zap.String("query", req.Query), zap.Error(err))
			return r.fallback(ctx, req, agg, &cfg, err)
		}

		snap := agg.Apply(evt)
		cfg.handlers.Dispatch(evt)
		if cfg.onUpdate != nil {
			cfg.onUpdate(snap)
		}
		if snap.State.Terminal() {
			return snap, nil
		}
	}
}

// fallback issues the single non-streaming attempt for a query whose
// stream could not be established or broke mid-read. A complete response
// supersedes any partially-applied state wholesale.
func (r *Runner) fallback(parent context.Context, req SearchRequest, agg *Aggregator, cfg *runConfig, streamErr error) (Result, error) {
	ctx := parent
	if r.fallbackTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, r.fallbackTimeout)
		defer cancel()
	}

	full, err := r.searcher.Search(ctx, req)
	if err != nil {
		// Caller cancellation during the fallback is not a failure.
		if parent.Err() != nil {
			return agg.Snapshot(), parent.Err()
		}
		snap := agg.Fail("Search is temporarily unavailable. Please try again.")
		if cfg.onUpdate != nil {
			cfg.onUpdate(snap)
		}
		return snap, fmt.Errorf("stream failed (%v), fallback failed (%v): %w", streamErr, err, ErrSearchFailed)
	}

	r.logger.Info("fallback succeeded", zap.String("query", req.Query))
	snap := agg.ReplaceWith(*full)
	if cfg.onUpdate != nil {
		cfg.onUpdate(snap)
	}
	return snap, nil
}
