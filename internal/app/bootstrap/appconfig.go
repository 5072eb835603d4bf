// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, log level); everything specific to
// the movie catalog lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connections in the driver pool
	MongoMinPoolSize uint64 // Min connections kept open

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (32+ chars)
	SessionName   string        // Cookie name for sessions (default: jwt-movie-web)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime (default: 15 days)

	// Browser client
	CORSAllowedOrigins []string // Origins allowed to call the API with credentials

	// Auth endpoints
	AuthRateLimit int // Requests per minute per client IP on signup/login; 0 disables
	BcryptCost    int // bcrypt cost for new password hashes

	// Background maintenance
	OrphanSweepInterval time.Duration // How often dangling subscriptions are removed; 0 disables

	// Database deadlines; zero keeps the built-in default
	TimeoutPing   time.Duration
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}
