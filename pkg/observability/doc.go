/*
Package observability provides tools for monitoring the montage engine.

It turns synthesis hooks into Prometheus metrics and structured log records, so a
host can watch which operators its graphs exercise and how often chains converge.
*/
package observability
