// Package report renders a metrics.Result for human or machine consumers.
//
// Render writes the classic four-line summary with fixed precision
// (throughput to 4 decimals, the averages to 2). RenderDetails adds a
// per-process breakdown table, RenderJSON emits a machine-readable
// summary, and RenderProm encodes the metrics in Prometheus text
// exposition format for scraping in watch mode.
package report
