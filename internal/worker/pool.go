package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gin-jobqueue/internal/pkg/config"
	"gin-jobqueue/internal/usecase/queue"
)

const reapBatchSize = 100

// Pool runs WORKER_COUNT named workers plus a lease reaper.
type Pool struct {
	svc     queue.Service
	cfg     config.WorkerConfig
	logger  *slog.Logger
	workers []*Worker

	stopCh  chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

func NewPool(svc queue.Service, cfg config.WorkerConfig, logger *slog.Logger) *Pool {
	p := &Pool{
		svc:    svc,
		cfg:    cfg,
		logger: logger,
		stopCh: make(chan struct{}),
	}
	for i := range cfg.Count {
		p.workers = append(p.workers, New(Config{
			Name:         fmt.Sprintf("worker-%d", i+1),
			PollInterval: cfg.PollInterval,
			BatchSize:    cfg.BatchSize,
			JobTimeout:   cfg.JobTimeout,
		}, svc, logger))
	}
	return p
}

// Start staggers worker start-up across one poll interval. It returns immediately.
func (p *Pool) Start(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil
	}
	p.running = true

	p.logger.Info("worker pool starting",
		"workers", len(p.workers),
		"poll_interval", p.cfg.PollInterval.String(),
		"batch_size", p.cfg.BatchSize)

	var stagger time.Duration
	if n := len(p.workers); n > 0 {
		stagger = p.cfg.PollInterval / time.Duration(n)
	}
	for i, w := range p.workers {
		w.Start(time.Duration(i) * stagger)
	}

	if p.cfg.ReaperInterval > 0 {
		p.wg.Add(1)
		go p.reaperLoop()
	}
	return nil
}

// Stop stops every worker concurrently under ctx, then the reaper.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = false
	p.mu.Unlock()

	p.logger.Info("worker pool stopping")
	close(p.stopCh)

	var wg sync.WaitGroup
	for _, w := range p.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Stop(ctx)
		}()
	}
	wg.Wait()
	p.wg.Wait()

	p.logger.Info("worker pool stopped")
	return nil
}

func (p *Pool) Stats() []Stats {
	out := make([]Stats, 0, len(p.workers))
	for _, w := range p.workers {
		out = append(out, w.Stats())
	}
	return out
}

func (p *Pool) reaperLoop() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.ReaperInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.reap()
		}
	}
}

func (p *Pool) reap() {
	ctx, cancel := context.WithTimeout(context.Background(), p.cfg.ReaperInterval)
	defer cancel()

	n, err := p.svc.ReapExpiredLeases(ctx, reapBatchSize)
	if err != nil {
		p.logger.Error("lease reaper failed", "error", err.Error())
		return
	}
	if n > 0 {
		p.logger.Info("lease reaper returned jobs to retry", "count", n)
	}
}
