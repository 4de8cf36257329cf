/*
Package observability exposes Prometheus metrics about toggle loads.

Hosts create a Metrics value against their registry and hand it to the Board
(switchboard.WithMetrics). The HTTP adapter serves the default registry on
/metrics.
*/
package observability
