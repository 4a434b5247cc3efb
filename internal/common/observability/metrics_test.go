package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"

	"esports-waitlist/internal/common/logger"
)

func TestObservability_NilIsSafe(t *testing.T) {
	var o *Observability
	ctx := context.Background()

	assert.NotPanics(t, func() {
		o.RecordSubmission(ctx, "waitlist", "succeeded")
		o.RecordSubmissionDuration(ctx, "waitlist", time.Second, "succeeded")
		_, span := o.StartSpan(ctx, "intake.submit", attribute.String("form", "waitlist"))
		span.End()
		o.Shutdown()
	})
}

func TestObservability_RecordsWithoutTracing(t *testing.T) {
	o := New("intake-test", logger.NewTestLogger(t))
	defer o.Shutdown()
	ctx := context.Background()

	assert.NotPanics(t, func() {
		o.RecordSubmission(ctx, "partnerships", "rejected")
		o.RecordSubmissionDuration(ctx, "partnerships", 120*time.Millisecond, "rejected")
	})

	spanCtx, span := o.StartSpan(ctx, "intake.submit")
	defer span.End()
	assert.NotNil(t, spanCtx)
	assert.False(t, span.SpanContext().IsValid(), "no provider configured, span should be a no-op")
}
