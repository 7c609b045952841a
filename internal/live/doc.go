// Package live implements watch mode: it monitors the trace file for
// changes, triggers a full re-parse and recomputation per change, keeps
// the most recent result in a thread-safe holder, and exposes it over
// HTTP (/metrics in Prometheus text format, /api/metrics as JSON) and a
// WebSocket stream that pushes every fresh result to connected clients.
//
// This is not incremental computation — every change reruns the whole
// pipeline against the complete file.
package live
