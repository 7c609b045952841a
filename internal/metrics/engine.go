package metrics

import (
	"errors"

	"github.com/schedlens/schedlens/internal/trace"
)

// ErrNoCompletedProcesses is returned when no process in the trace ever
// reached TERMINATED. Throughput and turnaround are undefined without at
// least one completion, so this is fatal for the whole computation rather
// than an all-zero result.
var ErrNoCompletedProcesses = errors.New("metrics: no process reached TERMINATED")

// ProcessMetrics is the per-process breakdown included in Result.
// FirstRunTime and ResponseTime are only meaningful when Started is true;
// FinishTime and TurnaroundTime only when Completed is true.
type ProcessMetrics struct {
	PID            string
	ArrivalTime    int64
	FirstRunTime   int64
	FinishTime     int64
	WaitingTime    int64
	TurnaroundTime int64
	ResponseTime   int64
	Started        bool
	Completed      bool
}

// Result is the aggregate outcome for one whole trace.
type Result struct {
	// Throughput is completed-process count per unit of simulated time,
	// using the latest observed completion as the horizon.
	Throughput float64

	AvgWaitTime       float64
	AvgTurnaroundTime float64
	AvgResponseTime   float64

	// ProcessCount is the number of processes with an observed arrival.
	// Processes that arrived but never finished still count here.
	ProcessCount int

	// CompletedCount is the number of processes that reached TERMINATED,
	// whether or not an arrival was observed for them.
	CompletedCount int

	// TotalFinishTime is the latest completion time in the trace.
	TotalFinishTime int64

	// Processes holds per-process details in first-arrival order.
	Processes []ProcessMetrics
}

// timeline is the per-process bookkeeping built during the scan.
type timeline struct {
	arrival     int64
	hasArrival  bool
	firstRun    int64
	hasFirstRun bool
	finish      int64
	hasFinish   bool
	waiting     int64

	// readyAt marks the start of the current READY interval. It is armed
	// by a transition into READY and consumed by the next dispatch.
	readyAt    int64
	readyArmed bool
}

// Compute scans transitions once and returns the aggregate metrics.
//
// The input order is trusted as-is: records are not re-sorted, and ties on
// time keep their relative order. Partial lifecycles degrade silently — a
// process with an arrival but no completion contributes nothing to the
// turnaround sum yet still counts in the averaging denominator.
func Compute(transitions []trace.Transition) (*Result, error) {
	timelines := make(map[string]*timeline)
	var arrivalOrder []string

	tl := func(pid string) *timeline {
		t, ok := timelines[pid]
		if !ok {
			t = &timeline{}
			timelines[pid] = t
		}
		return t
	}

	for _, tr := range transitions {
		t := tl(tr.PID)

		// Arrival: NEW→READY. First occurrence wins; the READY marker is
		// (re)armed either way.
		if tr.To == trace.StateReady && tr.From == trace.StateNew {
			if !t.hasArrival {
				t.arrival = tr.Time
				t.hasArrival = true
				arrivalOrder = append(arrivalOrder, tr.PID)
			}
			t.readyAt = tr.Time
			t.readyArmed = true
		}

		// Dispatch: any transition into RUNNING.
		if tr.To == trace.StateRunning {
			if !t.hasFirstRun {
				t.firstRun = tr.Time
				t.hasFirstRun = true
			}
			if t.readyArmed {
				t.waiting += tr.Time - t.readyAt
				t.readyArmed = false
			}
		}

		// Completion: last TERMINATED wins.
		if tr.To == trace.StateTerminated {
			t.finish = tr.Time
			t.hasFinish = true
		}

		// Back into the ready queue after I/O: re-arm the READY marker.
		if tr.To == trace.StateReady && tr.From == trace.StateWaiting {
			t.readyAt = tr.Time
			t.readyArmed = true
		}
	}

	var (
		totalFinish int64
		completed   int
		waitSum     int64
	)
	for _, t := range timelines {
		if t.hasFinish {
			completed++
			if t.finish > totalFinish {
				totalFinish = t.finish
			}
		}
		// Waiting time counts for every process that waited, even when no
		// arrival was recorded for it.
		waitSum += t.waiting
	}

	if completed == 0 {
		return nil, ErrNoCompletedProcesses
	}

	n := len(arrivalOrder)
	denom := n
	if denom == 0 {
		denom = 1
	}

	var turnSum, respSum int64
	procs := make([]ProcessMetrics, 0, n)
	for _, pid := range arrivalOrder {
		t := timelines[pid]
		pm := ProcessMetrics{
			PID:         pid,
			ArrivalTime: t.arrival,
			WaitingTime: t.waiting,
		}
		if t.hasFirstRun {
			pm.Started = true
			pm.FirstRunTime = t.firstRun
			pm.ResponseTime = t.firstRun - t.arrival
			respSum += pm.ResponseTime
		}
		if t.hasFinish {
			pm.Completed = true
			pm.FinishTime = t.finish
			pm.TurnaroundTime = t.finish - t.arrival
			turnSum += pm.TurnaroundTime
		}
		procs = append(procs, pm)
	}

	res := &Result{
		AvgWaitTime:       float64(waitSum) / float64(denom),
		AvgTurnaroundTime: float64(turnSum) / float64(denom),
		AvgResponseTime:   float64(respSum) / float64(denom),
		ProcessCount:      n,
		CompletedCount:    completed,
		TotalFinishTime:   totalFinish,
		Processes:         procs,
	}
	if totalFinish > 0 {
		res.Throughput = float64(denom) / float64(totalFinish)
	}
	return res, nil
}
