package metrics

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

type counter struct {
	name, help string
	value      atomic.Uint64
}

var (
	pdfRenders        = &counter{name: "pdf_render_total", help: "Total PDF renders attempted"}
	pdfRenderFailures = &counter{name: "pdf_render_failed_total", help: "Total PDF renders failed"}
	archiveFailures   = &counter{name: "export_archive_failed_total", help: "Total export archive writes failed"}

	counters = []*counter{pdfRenders, pdfRenderFailures, archiveFailures}

	pdfRenderDuration = newHistogram("pdf_render_duration_ms", "PDF render duration in milliseconds",
		[]float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500})
)

func IncPDFRender() { pdfRenders.value.Add(1) }

func IncPDFRenderFailed() { pdfRenderFailures.value.Add(1) }

// IncExportArchiveFailed counts archive writes that did not reach the object store.
func IncExportArchiveFailed() { archiveFailures.value.Add(1) }

// ObservePDFRenderDurationMs records a render duration. Negative values count as zero.
func ObservePDFRenderDurationMs(value float64) {
	pdfRenderDuration.Observe(max(value, 0))
}

// SinceMillis returns the elapsed time since start in milliseconds.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render returns every metric in Prometheus text format.
func Render() string {
	var b strings.Builder
	for _, c := range counters {
		writeHeader(&b, c.name, c.help, "counter")
		fmt.Fprintf(&b, "%s %d\n", c.name, c.value.Load())
	}
	pdfRenderDuration.write(&b)
	return b.String()
}

type histogram struct {
	name, help string
	bounds     []float64

	mu     sync.Mutex
	counts []uint64 // per bucket, not cumulative
	sum    float64
	total  uint64
}

func newHistogram(name, help string, bounds []float64) *histogram {
	return &histogram{name: name, help: help, bounds: bounds, counts: make([]uint64, len(bounds))}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.total++
	h.sum += value
	for i, bound := range h.bounds {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) write(w io.Writer) {
	h.mu.Lock()
	counts := append([]uint64(nil), h.counts...)
	sum, total := h.sum, h.total
	h.mu.Unlock()

	writeHeader(w, h.name, h.help, "histogram")
	var cumulative uint64
	for i, bound := range h.bounds {
		cumulative += counts[i]
		fmt.Fprintf(w, "%s_bucket{le=%q} %d\n", h.name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(w, "%s_bucket{le=\"+Inf\"} %d\n", h.name, total)
	fmt.Fprintf(w, "%s_sum %s\n", h.name, formatFloat(sum))
	fmt.Fprintf(w, "%s_count %d\n", h.name, total)
}

func writeHeader(w io.Writer, name, help, kind string) {
	fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
