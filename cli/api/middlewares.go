package api

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/oaiiae/contacts-api/datastores"
	"github.com/oaiiae/contacts-api/handlers"
)

// ctxlog is a [context.Context] key and acts as a virtual package for operations related to it.
type ctxlog struct{}

// loggerMiddleware returns a middleware that sets a [slog.Logger] in
// the [context.Context] and logs the request after it has terminated.
// Requests without an X-Request-Id header are given a random one,
// echoed in the response.
func (key ctxlog) loggerMiddleware(parent *slog.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		requestID := ctx.Header("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.SetHeader("X-Request-Id", requestID)
		logger := parent.With("x-request-id", requestID)

		start := time.Now()
		next(huma.WithValue(ctx, key, logger.WithGroup("op").With("id", ctx.Operation().OperationID)))

		logger.LogAttrs(context.Background(), slog.LevelInfo,
			joinSpace(ctx.Operation().Method, ctx.Operation().Path, ctx.Version().Proto),
			slog.String("from", ctx.RemoteAddr()),
			slog.String("ref", ctx.Header("Referer")),
			slog.String("ua", ctx.Header("User-Agent")),
			slog.Int("status", ctx.Status()),
			slog.Duration("dur", time.Since(start)),
		)
	}
}

// from returns the [slog.Logger] set by loggerMiddleware in ctx, or fallback.
func (key ctxlog) from(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	logger, ok := ctx.Value(key).(*slog.Logger)
	if !ok {
		return fallback
	}
	return logger
}

// recoverMiddleware returns a middleware that recovers and logs the value from panic.
// Also responds with a [http.StatusInternalServerError] envelope.
func (key ctxlog) recoverMiddleware(fallback *slog.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		defer func() {
			v := recover()
			if v != nil {
				key.from(ctx.Context(), fallback).LogAttrs(context.Background(), slog.LevelError,
					"panic occurred", slog.Any("recovered", v))
				handlers.WriteInternalError(ctx)
			}
		}()
		next(ctx)
	}
}

// errorHandler returns a function that logs the errors of the contacts operations.
// Rejected requests log as warnings with the kind of store error,
// anything else logs as an error.
func (key ctxlog) errorHandler(fallback *slog.Logger) func(context.Context, error) {
	return func(ctx context.Context, err error) {
		level := slog.LevelError
		attrs := []slog.Attr{slog.Any("err", err)}

		var envErr *handlers.EnvelopeError
		if errors.As(err, &envErr) {
			attrs = append(attrs, slog.Int("status", envErr.GetStatus()))
		}
		if kind := datastores.ErrorKind(err); kind != "" {
			level = slog.LevelWarn
			attrs = append(attrs, slog.String("kind", kind))
		}

		key.from(ctx, fallback).LogAttrs(context.Background(), level, "error occurred", attrs...)
	}
}

// meterRequests returns a middleware that counts the requests and observes
// their duration, labelled by operation and response status.
func meterRequests(set *metrics.Set) func(huma.Context, func(huma.Context)) {
	type key struct {
		operationID string
		status      int
	}
	type meters struct {
		requests *metrics.Counter
		duration *metrics.PrometheusHistogram
	}

	var mu sync.RWMutex
	known := make(map[key]meters)
	buckets := metrics.ExponentialBuckets(1e-3, 5, 6) //nolint: mnd // arbitrary

	lookup := func(op *huma.Operation, status int) meters {
		k := key{op.OperationID, status}
		mu.RLock()
		m, ok := known[k]
		mu.RUnlock()
		if ok {
			return m
		}

		mu.Lock()
		defer mu.Unlock()
		m, ok = known[k]
		if !ok {
			labels := joinQuote("{method=", op.Method, ",path=", op.Path, ",status=", strconv.Itoa(status), "}")
			m = meters{
				set.NewCounter("http_requests_total" + labels),
				set.NewPrometheusHistogramExt("http_request_duration_seconds"+labels, buckets),
			}
			known[k] = m
		}
		return m
	}

	return func(ctx huma.Context, next func(huma.Context)) {
		op, start := ctx.Operation(), time.Now()
		next(ctx)

		m := lookup(op, ctx.Status())
		m.requests.Inc()
		m.duration.UpdateDuration(start)
	}
}
