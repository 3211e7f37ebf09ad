package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/pscheid92/pollpulse/internal/adapter/metrics"
	"github.com/stretchr/testify/assert"
)

func TestExtractQueryName(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{"SELECT id FROM polls", "select"},
		{"\n\tINSERT INTO responses (poll_id) VALUES ($1)", "insert"},
		{"", "unknown"},
		{"   ", "unknown"},
		{"averyveryverylongsinglekeyword", "averyveryverylongsin"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractQueryName(tt.sql), "sql %q", tt.sql)
	}
}

func TestMetricsTracer_RecordsErrors(t *testing.T) {
	m := metrics.NewStorageMetrics(prometheus.NewRegistry())
	tracer := NewMetricsTracer(m)

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "INSERT INTO polls"})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("boom")})

	ctx = tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.InDelta(t, 1, testutil.ToFloat64(m.OperationErrors.WithLabelValues("postgres", "insert")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.OperationErrors.WithLabelValues("postgres", "select")), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(m.OperationDuration))
}

func TestMetricsTracer_EndWithoutStart(t *testing.T) {
	m := metrics.NewStorageMetrics(prometheus.NewRegistry())
	tracer := NewMetricsTracer(m)

	assert.NotPanics(t, func() {
		tracer.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})
	})
	assert.Equal(t, 0, testutil.CollectAndCount(m.OperationDuration))
}

func TestExtractSSLMode(t *testing.T) {
	assert.Equal(t, "require", extractSSLMode("postgres://u:p@h/db?sslmode=require"))
	assert.Equal(t, "prefer (default)", extractSSLMode("postgres://u:p@h/db"))
	assert.Equal(t, "unknown", extractSSLMode("://bad"))
}
