// internal/app/system/workers/orphansweep.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// OrphanDeleter removes subscriptions whose member or movie is gone.
// subscriptionstore.Store satisfies it.
type OrphanDeleter interface {
	DeleteOrphans(ctx context.Context) (int64, error)
}

// OrphanSweep is a background worker that periodically deletes dangling
// subscriptions. Cascading deletes keep new orphans from appearing; the
// sweep clears ones left by writes made outside the API.
type OrphanSweep struct {
	subs     OrphanDeleter
	log      *zap.Logger
	interval time.Duration
	timeout  time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewOrphanSweep creates the worker.
//
// Parameters:
//   - subs: the subscriptions store
//   - logger: zap logger for logging
//   - interval: how often to sweep (e.g., 1 hour)
//   - timeout: deadline for one sweep
func NewOrphanSweep(subs OrphanDeleter, logger *zap.Logger, interval, timeout time.Duration) *OrphanSweep {
	return &OrphanSweep{
		subs:     subs,
		log:      logger,
		interval: interval,
		timeout:  timeout,
		stopCh:   make(chan struct{}),
	}
}

// Start runs one sweep immediately, then one per interval.
func (w *OrphanSweep) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("orphan sweep worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish. It is safe
// to call more than once.
func (w *OrphanSweep) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("orphan sweep worker stopped")
	})
}

func (w *OrphanSweep) run() {
	defer w.wg.Done()

	w.sweep()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *OrphanSweep) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	count, err := w.subs.DeleteOrphans(ctx)
	if err != nil {
		w.log.Error("orphan sweep failed", zap.Error(err))
		return
	}
	if count > 0 {
		w.log.Info("removed orphaned subscriptions", zap.Int64("count", count))
	}
}
