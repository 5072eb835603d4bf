// internal/app/bootstrap/routes.go
package bootstrap

import (
	"errors"
	"net/http"
	"time"

	authfeature "github.com/dalemusser/moviehub/internal/app/features/authapi"
	healthfeature "github.com/dalemusser/moviehub/internal/app/features/health"
	membersfeature "github.com/dalemusser/moviehub/internal/app/features/members"
	moviesfeature "github.com/dalemusser/moviehub/internal/app/features/movies"
	subsfeature "github.com/dalemusser/moviehub/internal/app/features/subscriptions"
	metricsstore "github.com/dalemusser/moviehub/internal/app/store/metrics"
	"github.com/dalemusser/moviehub/internal/app/system/auth"
	"github.com/dalemusser/moviehub/internal/app/system/ratelimit"
	"github.com/dalemusser/moviehub/internal/app/system/reqlog"
	"github.com/dalemusser/moviehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// APIPrefix is where the JSON API is mounted.
const APIPrefix = "/api/v1"

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. The router carries panic recovery, client IP
// resolution, request logging, CORS for the browser client and the session
// loader, then mounts the health and metrics endpoints and the API.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	authHandler := authfeature.NewHandler(deps.MongoDatabase, sessionMgr, appCfg.BcryptCost, logger)

	// LoadSessionUser re-reads the account on each request so deleted
	// operators lose access immediately.
	sessionMgr.SetUserFetcher(authHandler.Auth)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(reqlog.Middleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appCfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Outside the session gate: scrapers carry no cookie, and the output
	// holds counts only. Restrict it at the network edge.
	registerCatalogMetrics(deps, logger)
	r.Handle("/metrics", promhttp.Handler())

	r.Route(APIPrefix, func(api chi.Router) {
		limit := ratelimit.ByRealIP(appCfg.AuthRateLimit, time.Minute)
		api.Mount("/auth", authfeature.Routes(authHandler, limit))

		moviesHandler := moviesfeature.NewHandler(deps.MongoDatabase, logger)
		api.Mount("/movies", moviesfeature.Routes(moviesHandler, sessionMgr))

		membersHandler := membersfeature.NewHandler(deps.MongoDatabase, logger)
		api.Mount("/members", membersfeature.Routes(membersHandler, sessionMgr))

		subsHandler := subsfeature.NewHandler(deps.MongoDatabase, logger)
		api.Mount("/subs", subsfeature.Routes(subsHandler, sessionMgr))
	})

	return r, nil
}

// registerCatalogMetrics exports collection sizes on /metrics. A second
// registration (BuildHandler called again in one process) keeps the first.
func registerCatalogMetrics(deps DBDeps, logger *zap.Logger) {
	err := prometheus.Register(metricsstore.NewCollector(deps.MongoDatabase, timeouts.Short()))
	var already prometheus.AlreadyRegisteredError
	if err != nil && !errors.As(err, &already) {
		logger.Warn("catalog metrics not registered", zap.Error(err))
	}
}
