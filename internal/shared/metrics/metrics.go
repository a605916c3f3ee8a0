package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// counter is a monotonically increasing metric rendered in Prometheus
// text format.
type counter struct {
	name string
	help string
	v    atomic.Uint64
}

func (c *counter) inc() { c.v.Add(1) }

var (
	analysisStarted   = &counter{name: "analysis_started_total", help: "Total analyses started"}
	analysisCompleted = &counter{name: "analysis_completed_total", help: "Total analyses completed"}
	analysisFailed    = &counter{name: "analysis_failed_total", help: "Total analyses failed"}
	analysisFallback  = &counter{name: "analysis_fallback_total", help: "Total analyses scored by the rule engine"}

	jobsReceived  = &counter{name: "analysis_jobs_received_total", help: "Total queue jobs received"}
	jobsCompleted = &counter{name: "analysis_jobs_completed_total", help: "Total queue jobs completed"}
	jobsFailed    = &counter{name: "analysis_jobs_failed_total", help: "Total queue jobs failed"}
	jobsPoisoned  = &counter{name: "analysis_jobs_deleted_unrecoverable_total", help: "Total poison queue jobs deleted"}

	counters = []*counter{
		analysisStarted, analysisCompleted, analysisFailed, analysisFallback,
		jobsReceived, jobsCompleted, jobsFailed, jobsPoisoned,
	}

	analysisDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

func IncAnalysisStarted()   { analysisStarted.inc() }
func IncAnalysisCompleted() { analysisCompleted.inc() }
func IncAnalysisFailed()    { analysisFailed.inc() }

// IncAnalysisFallback counts reports produced by the rule-based scorer
// after a failed model attempt.
func IncAnalysisFallback() { analysisFallback.inc() }

func IncAnalysisJobsReceived()  { jobsReceived.inc() }
func IncAnalysisJobsCompleted() { jobsCompleted.inc() }
func IncAnalysisJobsFailed()    { jobsFailed.inc() }

// IncAnalysisJobsDeletedUnrecoverable counts poison messages deleted
// without processing.
func IncAnalysisJobsDeletedUnrecoverable() { jobsPoisoned.inc() }

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	analysisDuration.observe(value)
}

// Handler serves metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render produces the Prometheus text exposition of all metrics.
func Render() string {
	var buf bytes.Buffer
	for _, c := range counters {
		fmt.Fprintf(&buf, "# HELP %s %s\n", c.name, c.help)
		fmt.Fprintf(&buf, "# TYPE %s counter\n", c.name)
		fmt.Fprintf(&buf, "%s %d\n", c.name, c.v.Load())
	}
	analysisDuration.render(&buf, "analysis_duration_ms", "Analysis duration in milliseconds")
	return buf.String()
}

type histogram struct {
	mu     sync.Mutex
	bounds []float64
	counts []uint64
	sum    float64
	count  uint64
}

func newHistogram(bounds []float64) *histogram {
	return &histogram{bounds: bounds, counts: make([]uint64, len(bounds))}
}

func (h *histogram) observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.bounds {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) render(buf *bytes.Buffer, name, help string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range h.bounds {
		cumulative += h.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=%q} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, h.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(h.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, h.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns the current time in milliseconds.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
