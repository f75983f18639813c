/*
Package observability exposes Prometheus metrics for the dialogue engine:
turn counts by action, turn latency, slot extractions, and active sessions.
Drivers attach them to the engine through lifecycle hooks and serve them on
the /metrics route.
*/
package observability
