/*
Package observability provides tools for monitoring the renderer.

Metrics turns render hooks into Prometheus counters and histograms, and Chain
lets several hook sets (metrics, audit logging) observe the same renderer.
*/
package observability
