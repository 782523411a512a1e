// Package metrics provides Prometheus collectors for operational metrics.
//
// # Metric Categories
//
//   - Identity: resolution outcomes and latency seen by the web shell
//   - HTTP: request counts and latency by route pattern and status
//
// Collectors register against an injected prometheus.Registerer so tests can
// use isolated registries. Handler exposes a registry in the Prometheus text
// format.
package metrics
