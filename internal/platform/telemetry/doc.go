// Package telemetry groups operational observability for HyperLocal services.
//
// Tracing setup lives in platform/otel. Prometheus collectors live in
// telemetry/metrics and are exposed by each service at /metrics.
package telemetry
