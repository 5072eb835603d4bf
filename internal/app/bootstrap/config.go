// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/moviehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// minSessionKeyLen matches the floor enforced by auth.NewSessionManager.
const minSessionKeyLen = 32

const defaultSessionMaxAge = 15 * 24 * time.Hour

// appConfigKeys defines the configuration keys for MovieHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: MOVIEHUB_MONGO_URI, MOVIEHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "movie_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "jwt-movie-web", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "360h", Desc: "Session cookie lifetime (e.g., 360h, 24h)"},

	// Browser client
	{Name: "cors_allowed_origins", Default: "http://localhost:5173", Desc: "Comma-separated origins allowed to call the API"},

	// Auth endpoints
	{Name: "auth_rate_limit", Default: 20, Desc: "Signup/login requests per minute per client IP (0 disables)"},
	{Name: "bcrypt_cost", Default: bcrypt.DefaultCost, Desc: "bcrypt cost for password hashes"},

	// Background maintenance
	{Name: "orphan_sweep_interval", Default: "1h", Desc: "How often subscriptions pointing at deleted members or movies are removed (0 disables)"},

	// Database deadlines
	{Name: "timeout_ping", Default: "2s", Desc: "Health check ping deadline (e.g., 2s)"},
	{Name: "timeout_short", Default: "5s", Desc: "Single-document read deadline"},
	{Name: "timeout_medium", Default: "10s", Desc: "List read and write deadline"},
	{Name: "timeout_long", Default: "30s", Desc: "Cascading delete deadline"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, MOVIEHUB_* for app) and flags,
// merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "MOVIEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", defaultSessionMaxAge),

		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),

		AuthRateLimit: appValues.Int("auth_rate_limit"),
		BcryptCost:    appValues.Int("bcrypt_cost"),

		OrphanSweepInterval: appValues.Duration("orphan_sweep_interval", time.Hour),

		TimeoutPing:   appValues.Duration("timeout_ping", timeouts.DefaultPing),
		TimeoutShort:  appValues.Duration("timeout_short", timeouts.DefaultShort),
		TimeoutMedium: appValues.Duration("timeout_medium", timeouts.DefaultMedium),
		TimeoutLong:   appValues.Duration("timeout_long", timeouts.DefaultLong),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// It checks the MongoDB URI format and the session key length so that
// configuration errors surface before any connection is attempted.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if strings.TrimSpace(appCfg.MongoDatabase) == "" {
		return fmt.Errorf("mongo_database must be set")
	}
	if len(appCfg.SessionKey) < minSessionKeyLen {
		return fmt.Errorf("session_key must be at least %d characters", minSessionKeyLen)
	}
	if coreCfg != nil && coreCfg.Env == "prod" && strings.HasPrefix(appCfg.SessionKey, "dev-only-") {
		return fmt.Errorf("session_key still has the development default; set MOVIEHUB_SESSION_KEY")
	}
	if appCfg.SessionMaxAge <= 0 {
		return fmt.Errorf("session_max_age must be positive")
	}
	if appCfg.OrphanSweepInterval < 0 {
		return fmt.Errorf("orphan_sweep_interval must not be negative")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	return nil
}

// timeoutConfig maps the app's overrides onto the timeouts package.
func (c AppConfig) timeoutConfig() timeouts.Config {
	return timeouts.Config{
		Ping:   c.TimeoutPing,
		Short:  c.TimeoutShort,
		Medium: c.TimeoutMedium,
		Long:   c.TimeoutLong,
	}
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
