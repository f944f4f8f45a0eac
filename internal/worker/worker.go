package worker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"gin-jobqueue/internal/pkg/errs"
	"gin-jobqueue/internal/usecase/queue"

	"golang.org/x/sync/errgroup"
)

type State string

const (
	StateIdle        State = "idle"
	StateFetching    State = "fetching"
	StateDispatching State = "dispatching"
	StateSleeping    State = "sleeping"
	StateStopped     State = "stopped"
)

type Config struct {
	Name         string
	PollInterval time.Duration
	BatchSize    int
	JobTimeout   time.Duration
}

type Stats struct {
	Name        string  `json:"name"`
	State       State   `json:"state"`
	Processed   int64   `json:"processed"`
	Errors      int64   `json:"errors"`
	SuccessRate float64 `json:"successRate"`
}

// Worker claims batches of eligible jobs and processes each one under its
// own timeout. A failed job never stops the loop.
type Worker struct {
	cfg    Config
	svc    queue.Service
	logger *slog.Logger

	processed atomic.Int64
	errors    atomic.Int64
	state     atomic.Value

	// In-flight job contexts derive from baseCtx so a forced stop can cancel them.
	baseCtx    context.Context
	cancelBase context.CancelFunc

	startOnce sync.Once
	stopOnce  sync.Once
	stopCh    chan struct{}
	done      chan struct{}
}

func New(cfg Config, svc queue.Service, logger *slog.Logger) *Worker {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 30 * time.Second
	}

	baseCtx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		cfg:        cfg,
		svc:        svc,
		logger:     logger.With("worker", cfg.Name),
		baseCtx:    baseCtx,
		cancelBase: cancel,
		stopCh:     make(chan struct{}),
		done:       make(chan struct{}),
	}
	w.state.Store(StateIdle)
	return w
}

func (w *Worker) Name() string { return w.cfg.Name }

// Start launches the polling loop after delay. It returns immediately.
func (w *Worker) Start(delay time.Duration) {
	w.startOnce.Do(func() {
		go w.loop(delay)
	})
}

// Stop waits for the in-flight batch. If ctx ends first, in-flight jobs are
// cancelled (their transactions roll back) and Stop still waits for them.
func (w *Worker) Stop(ctx context.Context) {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.startOnce.Do(func() { close(w.done) })

	select {
	case <-w.done:
	case <-ctx.Done():
		w.logger.Warn("worker stop timed out, cancelling in-flight jobs")
		w.cancelBase()
		<-w.done
	}
	w.cancelBase()
	w.setState(StateStopped)
}

// RunOnce claims and processes one batch, returning how many jobs it handled.
func (w *Worker) RunOnce() int {
	w.setState(StateFetching)
	claims, err := w.svc.Claim(w.baseCtx, w.cfg.Name, w.cfg.BatchSize)
	if err != nil {
		w.logger.Error("failed to claim jobs", "error", err.Error())
		return 0
	}
	if len(claims) == 0 {
		return 0
	}

	w.setState(StateDispatching)
	var g errgroup.Group
	for _, c := range claims {
		g.Go(func() error {
			w.process(c)
			return nil
		})
	}
	_ = g.Wait()
	return len(claims)
}

func (w *Worker) process(c queue.Claim) {
	ctx, cancel := context.WithTimeout(w.baseCtx, w.cfg.JobTimeout)
	defer cancel()

	err := w.svc.ProcessOne(ctx, c.Job.ID(), queue.WithLease(c.Token))
	w.processed.Add(1)
	if err == nil {
		return
	}
	w.errors.Add(1)

	attrs := []any{
		"job_id", c.Job.ID(),
		"type", c.Job.Type(),
		"attempts_before", c.Job.Attempts(),
		"error", err.Error(),
	}
	switch {
	case errs.Is(err, errs.ErrExhaustedRetries):
		w.logger.Error("job exhausted retries", attrs...)
	case errs.Is(err, errs.ErrJobTimeout):
		w.logger.Warn("job timed out", append(attrs, "timeout", w.cfg.JobTimeout.String())...)
	default:
		w.logger.Warn("job attempt failed", attrs...)
	}
}

func (w *Worker) loop(delay time.Duration) {
	defer close(w.done)

	if !w.sleep(delay) {
		return
	}
	w.logger.Info("worker started",
		"poll_interval", w.cfg.PollInterval.String(),
		"batch_size", w.cfg.BatchSize,
		"job_timeout", w.cfg.JobTimeout.String())

	for {
		select {
		case <-w.stopCh:
			return
		default:
		}

		w.RunOnce()

		w.setState(StateSleeping)
		if !w.sleep(w.cfg.PollInterval) {
			return
		}
	}
}

// sleep reports false when the worker was asked to stop.
func (w *Worker) sleep(d time.Duration) bool {
	if d <= 0 {
		select {
		case <-w.stopCh:
			return false
		default:
			return true
		}
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-w.stopCh:
		return false
	}
}

func (w *Worker) setState(s State) {
	w.state.Store(s)
}

func (w *Worker) State() State {
	return w.state.Load().(State)
}

func (w *Worker) Stats() Stats {
	processed := w.processed.Load()
	failed := w.errors.Load()
	return Stats{
		Name:        w.cfg.Name,
		State:       w.State(),
		Processed:   processed,
		Errors:      failed,
		SuccessRate: successRate(processed, failed),
	}
}

// successRate is 0 until something has been processed.
func successRate(processed, failed int64) float64 {
	if processed == 0 {
		return 0
	}
	return float64(processed-failed) / float64(processed)
}
