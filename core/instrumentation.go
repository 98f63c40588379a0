package orchestration

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const scopeName = "github.com/voxmemo/voxmemo-core/core"

var (
	tracer = otel.Tracer(scopeName)
	meter  = otel.Meter(scopeName)
	logger = otelslog.NewLogger(scopeName)
)

var (
	sessionsStarted, _ = meter.Int64Counter("listening_session.started",
		metric.WithDescription("Listening sessions accepted and started"))
	sessionsCompleted, _ = meter.Int64Counter("listening_session.completed",
		metric.WithDescription("Listening sessions completed with a transcript"))
	sessionsCancelled, _ = meter.Int64Counter("listening_session.cancelled",
		metric.WithDescription("Listening sessions cancelled and discarded"))
	sessionsErrored, _ = meter.Int64Counter("listening_session.errored",
		metric.WithDescription("Listening sessions ended by a recognition error"))
)
