package nlp

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
	"github.com/rainsafe/rainsafe-backend/internal/observability"
)

// Pool runs description scoring on a fixed set of workers behind a bounded
// queue. Scoring sits on the report submission path, so a job that cannot be
// queued or finished within the deadline degrades to the unknown analysis
// and the report is saved without it.
type Pool struct {
	scorer  Scorer
	jobs    chan job
	timeout time.Duration
	metrics *observability.Metrics
	logger  *slog.Logger

	wg        sync.WaitGroup
	closed    atomic.Bool
	closeOnce sync.Once
}

type job struct {
	description string
	result      chan domain.NLPAnalysis
}

// NewPool starts the worker pool. Callers must Close it on shutdown.
func NewPool(scorer Scorer, workers, queueSize int, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Pool {
	p := &Pool{
		scorer:  scorer,
		jobs:    make(chan job, queueSize),
		timeout: timeout,
		metrics: metrics,
		logger:  logger,
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// Analyze submits the description for scoring and waits for the result. The
// deadline covers both queueing and scoring; on timeout, a full queue, or a
// cancelled context the unknown analysis is returned so submission can
// proceed without the hint.
func (p *Pool) Analyze(ctx context.Context, description string) domain.NLPAnalysis {
	if p.closed.Load() || ctx.Err() != nil {
		p.metrics.NLPJobs.WithLabelValues("rejected").Inc()
		return domain.UnknownAnalysis()
	}

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	j := job{description: description, result: make(chan domain.NLPAnalysis, 1)}
	select {
	case p.jobs <- j:
		p.metrics.NLPQueueDepth.Inc()
	case <-timer.C:
		p.metrics.NLPJobs.WithLabelValues("rejected").Inc()
		p.logger.Warn("nlp queue full, skipping analysis")
		return domain.UnknownAnalysis()
	case <-ctx.Done():
		p.metrics.NLPJobs.WithLabelValues("rejected").Inc()
		return domain.UnknownAnalysis()
	}

	select {
	case analysis := <-j.result:
		if analysis.Severity == SeverityUnknown {
			p.metrics.NLPJobs.WithLabelValues("degraded").Inc()
		} else {
			p.metrics.NLPJobs.WithLabelValues("scored").Inc()
		}
		return analysis
	case <-timer.C:
		p.metrics.NLPJobs.WithLabelValues("timeout").Inc()
		p.logger.Warn("nlp scoring timed out", "timeout", p.timeout)
		return domain.UnknownAnalysis()
	case <-ctx.Done():
		p.metrics.NLPJobs.WithLabelValues("timeout").Inc()
		return domain.UnknownAnalysis()
	}
}

// Close stops accepting jobs and waits for in-flight scoring to finish.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.jobs)
		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for j := range p.jobs {
		p.metrics.NLPQueueDepth.Dec()
		start := time.Now()
		analysis := p.scorer.Score(j.description)
		p.metrics.NLPDuration.Observe(time.Since(start).Seconds())
		j.result <- analysis
	}
}
