package analysis

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	jobsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "miv_analysis_jobs_enqueued_total",
		Help: "Number of venture analysis jobs accepted onto the queue.",
	})
	jobsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "miv_analysis_jobs_dropped_total",
		Help: "Number of venture analysis jobs dropped because the queue was full.",
	})
	jobsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "miv_analysis_jobs_failed_total",
		Help: "Number of venture analysis jobs that returned an error.",
	})
)

// Analyzer inspects one venture's metric portfolio. Implementations must be
// safe for sequential reuse; the dispatcher runs one job at a time.
type Analyzer interface {
	AnalyzeVenture(ctx context.Context, ventureID string) error
}

// NopAnalyzer discards every job. Useful when analysis is disabled.
type NopAnalyzer struct{}

func (NopAnalyzer) AnalyzeVenture(context.Context, string) error { return nil }

const jobTimeout = 30 * time.Second

// Dispatcher runs venture analysis off the request path. Enqueue never
// blocks: when the buffer is full the job is dropped and counted, since a
// fresher job will arrive with the next mutation anyway.
type Dispatcher struct {
	analyzer Analyzer
	logger   *slog.Logger
	jobs     chan string

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(analyzer Analyzer, queueSize int, logger *slog.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Dispatcher{
		analyzer: analyzer,
		logger:   logger,
		jobs:     make(chan string, queueSize),
	}
}

// Start launches the worker. Call Stop to drain and shut down.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.run()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for ventureID := range d.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		err := d.analyzer.AnalyzeVenture(ctx, ventureID)
		cancel()
		if err != nil {
			jobsFailed.Inc()
			d.logger.Warn("venture analysis failed",
				"ventureId", ventureID, "error", err)
		}
	}
}

// Enqueue submits a venture for analysis and reports whether the job was
// accepted. It never blocks the caller.
func (d *Dispatcher) Enqueue(ventureID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	select {
	case d.jobs <- ventureID:
		jobsEnqueued.Inc()
		return true
	default:
		jobsDropped.Inc()
		d.logger.Warn("analysis queue full, dropping job", "ventureId", ventureID)
		return false
	}
}

// Stop rejects further jobs, drains the queue, and waits for the worker.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()
	d.wg.Wait()
}
