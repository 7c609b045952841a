// Package metrics derives aggregate scheduling metrics from an ordered
// transition sequence.
//
// Compute performs a single left-to-right scan, building one timeline per
// process id (arrival on NEW→READY, first dispatch on the first transition
// into RUNNING, completion on TERMINATED, and waiting time accumulated for
// each READY interval that ends in a dispatch), then aggregates the
// timelines into throughput and the average waiting, turnaround and
// response times. The timeline map is local to one Compute call; the
// function is pure and deterministic.
//
// Bookkeeping rules are deliberately asymmetric: arrival and first-run are
// set once and never overwritten, completion takes the last observed
// TERMINATED transition. A dispatch consumes the pending READY interval,
// so a second RUNNING transition adds no waiting time unless the process
// re-entered READY in between.
package metrics
