package trace

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Transition is one observed state change. Records are immutable once
// parsed and keep exactly the order of the trace file, including ties on
// Time across different processes.
type Transition struct {
	Time int64
	PID  string
	From State
	To   State
}

// Options controls how leniently Parse treats malformed data rows.
type Options struct {
	// Strict aborts the parse on the first malformed row instead of
	// skipping it.
	Strict bool
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string, opts Options) ([]Transition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f, opts)
}

// Parse reads a bordered execution table from r and returns its transition
// records in file order.
//
// Border rows (leading '+') and the header row (first column starting with
// "Time") are skipped. Data rows that cannot be split into at least the
// four expected columns, whose time is not a non-negative integer, or
// whose state labels are unknown are discarded without reaching the
// caller — or fail the whole parse in strict mode.
func Parse(r io.Reader, opts Options) ([]Transition, error) {
	var (
		transitions []Transition
		skipped     int
		lineNo      int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())

		// Borders like +------+.
		if strings.HasPrefix(line, "+") {
			continue
		}
		// Only table rows carry data.
		if !strings.HasPrefix(line, "|") {
			continue
		}

		cols := strings.Split(line, "|")
		for i, c := range cols {
			cols[i] = strings.TrimSpace(c)
		}
		// A full row splits into ["", time, pid, old, new, ""].
		if len(cols) < 5 {
			if err := skipRow(opts, &skipped, lineNo, "too few columns"); err != nil {
				return nil, err
			}
			continue
		}

		// Header row.
		if strings.HasPrefix(cols[1], "Time") {
			continue
		}

		t, terr := strconv.ParseInt(cols[1], 10, 64)
		if terr != nil || t < 0 {
			if err := skipRow(opts, &skipped, lineNo, fmt.Sprintf("invalid time %q", cols[1])); err != nil {
				return nil, err
			}
			continue
		}

		from, ferr := ParseState(cols[3])
		if ferr != nil {
			if err := skipRow(opts, &skipped, lineNo, ferr.Error()); err != nil {
				return nil, err
			}
			continue
		}
		to, nerr := ParseState(cols[4])
		if nerr != nil {
			if err := skipRow(opts, &skipped, lineNo, nerr.Error()); err != nil {
				return nil, err
			}
			continue
		}

		transitions = append(transitions, Transition{
			Time: t,
			PID:  cols[2],
			From: from,
			To:   to,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("trace: read: %w", err)
	}

	if skipped > 0 {
		slog.Debug("trace: parse complete with skipped rows",
			"transitions", len(transitions), "skipped", skipped)
	}
	return transitions, nil
}

// skipRow records one discarded row, or converts it into an error when the
// parse is strict.
func skipRow(opts Options, skipped *int, lineNo int, reason string) error {
	if opts.Strict {
		return fmt.Errorf("trace: line %d: %s", lineNo, reason)
	}
	*skipped++
	slog.Debug("trace: skipping malformed row", "line", lineNo, "reason", reason)
	return nil
}
