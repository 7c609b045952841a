package report

import (
	"fmt"
	"io"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/schedlens/schedlens/internal/metrics"
)

// Metric family names in the Prometheus exposition output.
const (
	promThroughput    = "schedlens_throughput_processes_per_ms"
	promAvgWait       = "schedlens_avg_wait_time_ms"
	promAvgTurnaround = "schedlens_avg_turnaround_time_ms"
	promAvgResponse   = "schedlens_avg_response_time_ms"
	promProcesses     = "schedlens_process_count"
	promCompleted     = "schedlens_completed_count"
)

// PromContentType is the Content-Type for RenderProm output.
var PromContentType = string(expfmt.NewFormat(expfmt.TypeTextPlain))

// RenderProm writes res in Prometheus text exposition format.
func RenderProm(w io.Writer, res *metrics.Result) error {
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range buildFamilies(res) {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("report: encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func buildFamilies(res *metrics.Result) []*dto.MetricFamily {
	return []*dto.MetricFamily{
		gauge(promThroughput, "Completed processes per simulated millisecond.", res.Throughput),
		gauge(promAvgWait, "Average time spent in READY before each dispatch.", res.AvgWaitTime),
		gauge(promAvgTurnaround, "Average finish time minus arrival time.", res.AvgTurnaroundTime),
		gauge(promAvgResponse, "Average first dispatch time minus arrival time.", res.AvgResponseTime),
		gauge(promProcesses, "Processes with an observed arrival.", float64(res.ProcessCount)),
		gauge(promCompleted, "Processes that reached TERMINATED.", float64(res.CompletedCount)),
	}
}

func gauge(name, help string, value float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{
			{Gauge: &dto.Gauge{Value: proto.Float64(value)}},
		},
	}
}
