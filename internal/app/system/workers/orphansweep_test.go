package workers_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dalemusser/moviehub/internal/app/system/workers"
	"go.uber.org/zap"
)

type countingDeleter struct {
	calls atomic.Int32
	err   error
}

func (d *countingDeleter) DeleteOrphans(ctx context.Context) (int64, error) {
	d.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("sweep context has no deadline")
	}
	return 1, d.err
}

func TestOrphanSweep_RunsImmediatelyAndOnTick(t *testing.T) {
	d := &countingDeleter{}
	w := workers.NewOrphanSweep(d, zap.NewNop(), 10*time.Millisecond, time.Second)
	w.Start()

	deadline := time.Now().Add(2 * time.Second)
	for d.calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	w.Stop()
	w.Stop()

	if n := d.calls.Load(); n < 3 {
		t.Fatalf("calls: got %d, want >= 3", n)
	}
	after := d.calls.Load()
	time.Sleep(30 * time.Millisecond)
	if d.calls.Load() != after {
		t.Error("worker kept running after Stop")
	}
}

func TestOrphanSweep_ErrorDoesNotStopWorker(t *testing.T) {
	d := &countingDeleter{err: errors.New("boom")}
	w := workers.NewOrphanSweep(d, zap.NewNop(), 10*time.Millisecond, time.Second)
	w.Start()
	defer w.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for d.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if n := d.calls.Load(); n < 2 {
		t.Errorf("calls: got %d, want >= 2", n)
	}
}
