package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "storefront/storage"

// Traced wraps next so every operation gets a client span. Operations slower
// than slowThreshold are logged as warnings; zero disables that.
func Traced(next Store, system string, slowThreshold time.Duration, logger *slog.Logger) Store {
	return &tracedStore{
		next:      next,
		system:    system,
		threshold: slowThreshold,
		logger:    logger,
		tracer:    otel.Tracer(tracerName),
	}
}

type tracedStore struct {
	next      Store
	system    string
	threshold time.Duration
	logger    *slog.Logger
	tracer    trace.Tracer
}

func (s *tracedStore) Get(ctx context.Context, key string) (v string, err error) {
	ctx, end := s.trace(ctx, "get", key)
	defer func() { end(err) }()
	return s.next.Get(ctx, key)
}

func (s *tracedStore) Set(ctx context.Context, key, value string) (err error) {
	ctx, end := s.trace(ctx, "set", key)
	defer func() { end(err) }()
	return s.next.Set(ctx, key, value)
}

func (s *tracedStore) Delete(ctx context.Context, key string) (err error) {
	ctx, end := s.trace(ctx, "delete", key)
	defer func() { end(err) }()
	return s.next.Delete(ctx, key)
}

func (s *tracedStore) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

func (s *tracedStore) Close() error {
	return s.next.Close()
}

// trace starts the span of one operation. A missing key is an answer, not a
// failure, and does not mark the span as errored.
func (s *tracedStore) trace(ctx context.Context, op, key string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "storage."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", s.system),
			attribute.String("db.operation", op),
			attribute.String("storage.key", key),
		),
	)

	return ctx, func(err error) {
		if err != nil && !errors.Is(err, ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		if s.threshold <= 0 || s.logger == nil {
			return
		}
		if elapsed := time.Since(start); elapsed >= s.threshold {
			attrs := []any{
				slog.String("operation", op),
				slog.String("key", key),
				slog.String("backend", s.system),
				slog.Duration("duration", elapsed),
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
			}
			s.logger.WarnContext(ctx, "slow storage operation", attrs...)
		}
	}
}
