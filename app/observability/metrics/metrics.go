package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	GenerateRequestsTotal   metric.Int64Counter
	GenerateDurationSeconds metric.Float64Histogram
	GeocodeErrorsTotal      metric.Int64Counter
	PoiFetchErrorsTotal     metric.Int64Counter
	DbQueryErrorsTotal      metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments once. Safe to call
// before the meter provider is configured; instruments created from the
// default provider are no-ops.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("travelwiz")
		var err error
		m := &AppMetrics{}

		m.GenerateRequestsTotal, err = meter.Int64Counter(
			"generate_requests_total",
			metric.WithDescription("Total number of itinerary generation requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create generate_requests_total: %v", err)
		}

		m.GenerateDurationSeconds, err = meter.Float64Histogram(
			"generate_duration_seconds",
			metric.WithDescription("Duration of itinerary generation requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create generate_duration_seconds: %v", err)
		}

		m.GeocodeErrorsTotal, err = meter.Int64Counter(
			"geocode_errors_total",
			metric.WithDescription("Total number of failed geocode lookups"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create geocode_errors_total: %v", err)
		}

		m.PoiFetchErrorsTotal, err = meter.Int64Counter(
			"poi_fetch_errors_total",
			metric.WithDescription("Total number of failed POI index fetches"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create poi_fetch_errors_total: %v", err)
		}

		m.DbQueryErrorsTotal, err = meter.Int64Counter(
			"db_query_errors_total",
			metric.WithDescription("Total number of database query errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_errors_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance, initializing it
// on first use so tests need no setup.
func Get() *AppMetrics {
	if appMetrics == nil {
		InitAppMetrics()
	}
	return appMetrics
}

// RecordGeneration records one completed generation request with its outcome.
func RecordGeneration(ctx context.Context, elapsed time.Duration, outcome string) {
	m := Get()
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.GenerateRequestsTotal.Add(ctx, 1, attrs)
	m.GenerateDurationSeconds.Record(ctx, elapsed.Seconds(), attrs)
}
