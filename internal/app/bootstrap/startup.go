// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"sync"

	subscriptionstore "github.com/dalemusser/moviehub/internal/app/store/subscriptions"
	"github.com/dalemusser/moviehub/internal/app/system/timeouts"
	"github.com/dalemusser/moviehub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Background workers started in Startup and stopped in Shutdown.
var (
	workersMu   sync.Mutex
	orphanSweep *workers.OrphanSweep
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(appCfg.timeoutConfig())
	cur := timeouts.Current()
	logger.Info("database deadlines",
		zap.Duration("ping", cur.Ping),
		zap.Duration("short", cur.Short),
		zap.Duration("medium", cur.Medium),
		zap.Duration("long", cur.Long))

	if appCfg.OrphanSweepInterval > 0 {
		workersMu.Lock()
		orphanSweep = workers.NewOrphanSweep(subscriptionstore.New(deps.MongoDatabase), logger,
			appCfg.OrphanSweepInterval, timeouts.Long())
		orphanSweep.Start()
		workersMu.Unlock()
	}
	return nil
}

// stopWorkers stops whatever Startup started.
func stopWorkers() {
	workersMu.Lock()
	defer workersMu.Unlock()
	if orphanSweep != nil {
		orphanSweep.Stop()
		orphanSweep = nil
	}
}
