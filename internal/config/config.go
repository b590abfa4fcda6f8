package config

// Config holds server-level configuration
type Config struct {
	Port        string
	Environment string // "production" hides generator error strings from responses
	MongoURI    string
	MongoDB     string
	RedisURI    string

	// Rate limiter: RateLimit requests per RateWindowSec per client IP
	RateLimit     int
	RateWindowSec int

	// Report cache
	CacheTTLHours   int
	CacheMaxEntries int
}

// Load reads configuration from the environment with defaults
func Load() *Config {
	return &Config{
		Port:            getEnvOrDefault("PORT", "8080"),
		Environment:     getEnvOrDefault("ENVIRONMENT", "development"),
		MongoURI:        getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnvOrDefault("MONGO_DB", "mindscreen"),
		RedisURI:        getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RateLimit:       getEnvInt("RATE_LIMIT", 20),
		RateWindowSec:   getEnvInt("RATE_WINDOW_SEC", 60),
		CacheTTLHours:   getEnvInt("CACHE_TTL_HOURS", 24),
		CacheMaxEntries: getEnvInt("CACHE_MAX_ENTRIES", 1000),
	}
}

// IsProduction reports whether error strings should be hidden
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// RedisAddr strips an optional redis:// prefix
func (c *Config) RedisAddr() string {
	addr := c.RedisURI
	if len(addr) > 8 && addr[:8] == "redis://" {
		addr = addr[8:]
	}
	return addr
}
