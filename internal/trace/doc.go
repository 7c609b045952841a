// Package trace parses simulator execution tables into ordered transition
// records.
//
// The input is the bordered table the scheduling simulator writes to its
// execution log: `+----+` border rows, a header row whose first column
// starts with "Time", and data rows of the form
//
//	|                 0 |  1 |       NEW |     READY |
//
// Parse skips borders and the header, splits each data row on '|', and
// keeps rows whose time is a non-negative integer and whose state labels
// are members of the closed State set. Everything else is discarded at the
// boundary and never reaches the metrics engine; strict mode turns the
// first malformed row into a parse error instead.
package trace
