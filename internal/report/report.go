package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/schedlens/schedlens/internal/metrics"
)

// Render writes the aggregate metrics in the fixed layout downstream
// tooling greps for: throughput to 4 decimal places, averages to 2, all
// labelled in simulated milliseconds.
func Render(w io.Writer, name string, res *metrics.Result) error {
	_, err := fmt.Fprintf(w,
		"\n===== Metrics for %s =====\n"+
			"Throughput:        %.4f processes/ms\n"+
			"Avg Wait Time:     %.2f ms\n"+
			"Avg Turnaround:    %.2f ms\n"+
			"Avg Response Time: %.2f ms\n",
		name,
		res.Throughput,
		res.AvgWaitTime,
		res.AvgTurnaroundTime,
		res.AvgResponseTime,
	)
	return err
}

// RenderDetails writes the per-process breakdown table. Fields never
// observed in the trace (an unfinished process's finish time, a never
// dispatched process's response time) render as "-".
func RenderDetails(w io.Writer, res *metrics.Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Arrival", "First Run", "Finish", "Wait", "Turnaround", "Response"})
	for _, p := range res.Processes {
		table.Append([]string{
			p.PID,
			strconv.FormatInt(p.ArrivalTime, 10),
			optTick(p.FirstRunTime, p.Started),
			optTick(p.FinishTime, p.Completed),
			strconv.FormatInt(p.WaitingTime, 10),
			optTick(p.TurnaroundTime, p.Completed),
			optTick(p.ResponseTime, p.Started),
		})
	}
	table.Render()
}

func optTick(v int64, ok bool) string {
	if !ok {
		return "-"
	}
	return strconv.FormatInt(v, 10)
}

// Summary is the machine-readable form of a computation, shared by the
// JSON renderer and the live websocket stream.
type Summary struct {
	Trace             string           `json:"trace"`
	Throughput        float64          `json:"throughput"`
	AvgWaitTime       float64          `json:"avg_wait_time"`
	AvgTurnaroundTime float64          `json:"avg_turnaround_time"`
	AvgResponseTime   float64          `json:"avg_response_time"`
	ProcessCount      int              `json:"process_count"`
	CompletedCount    int              `json:"completed_count"`
	TotalFinishTime   int64            `json:"total_finish_time"`
	Processes         []ProcessSummary `json:"processes,omitempty"`
}

// ProcessSummary is one per-process row in Summary. Pointer fields are nil
// when the underlying event was never observed.
type ProcessSummary struct {
	PID            string `json:"pid"`
	ArrivalTime    int64  `json:"arrival_time"`
	FirstRunTime   *int64 `json:"first_run_time,omitempty"`
	FinishTime     *int64 `json:"finish_time,omitempty"`
	WaitingTime    int64  `json:"waiting_time"`
	TurnaroundTime *int64 `json:"turnaround_time,omitempty"`
	ResponseTime   *int64 `json:"response_time,omitempty"`
}

// NewSummary converts a Result into its wire form.
func NewSummary(name string, res *metrics.Result) Summary {
	s := Summary{
		Trace:             name,
		Throughput:        res.Throughput,
		AvgWaitTime:       res.AvgWaitTime,
		AvgTurnaroundTime: res.AvgTurnaroundTime,
		AvgResponseTime:   res.AvgResponseTime,
		ProcessCount:      res.ProcessCount,
		CompletedCount:    res.CompletedCount,
		TotalFinishTime:   res.TotalFinishTime,
	}
	for _, p := range res.Processes {
		ps := ProcessSummary{
			PID:         p.PID,
			ArrivalTime: p.ArrivalTime,
			WaitingTime: p.WaitingTime,
		}
		if p.Started {
			ps.FirstRunTime = ptr(p.FirstRunTime)
			ps.ResponseTime = ptr(p.ResponseTime)
		}
		if p.Completed {
			ps.FinishTime = ptr(p.FinishTime)
			ps.TurnaroundTime = ptr(p.TurnaroundTime)
		}
		s.Processes = append(s.Processes, ps)
	}
	return s
}

func ptr(v int64) *int64 { return &v }

// RenderJSON writes the Summary for res as indented JSON.
func RenderJSON(w io.Writer, name string, res *metrics.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewSummary(name, res)); err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}
	return nil
}
