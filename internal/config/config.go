package config // package config loads application configuration from environment variables

import (
    "errors"
    "fmt"
    "io/fs"
    "strings"
    "time"

    "github.com/caarlos0/env/v11"
    "github.com/joho/godotenv"
)

// Store backends selectable through STORE.
const (
    StoreMySQL  = "mysql"
    StoreMemory = "memory"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable; nested structs carry the cache, rate limit and
// Redis settings.
type Config struct {
    Env            string        `env:"APP_ENV" envDefault:"dev"`          // application environment (dev/test/prod)
    Port           string        `env:"APP_PORT" envDefault:"8080"`        // HTTP port to listen on
    Store          string        `env:"STORE" envDefault:"mysql"`          // mysql | memory
    DBUser         string        `env:"DB_USER"`                           // database username
    DBPass         string        `env:"DB_PASS"`                           // database password (optional)
    DBHost         string        `env:"DB_HOST" envDefault:"localhost"`    // database host address
    DBPort         string        `env:"DB_PORT" envDefault:"3306"`         // database port number
    DBName         string        `env:"DB_NAME"`                           // database name
    DBMigrate      bool          `env:"DB_MIGRATE" envDefault:"true"`      // apply the embedded schema at startup
    JWTSecret      string        `env:"JWT_SECRET"`                        // enables bearer auth on write routes when set
    AccessTTLMin   int           `env:"ACCESS_TOKEN_TTL_MIN" envDefault:"60"`
    LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
    LogJSON        bool          `env:"LOG_JSON" envDefault:"false"`
    RabbitMQURL    string        `env:"RABBITMQ_URL"`                      // events are disabled when empty
    RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

    Cache     CacheConfig
    RateLimit RateLimitConfig
    Redis     RedisConfig
}

// Load reads an optional .env file and then the process environment into a
// Config.  Values already present in the environment win over the file.
func Load() (Config, error) {
    if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
        return Config{}, fmt.Errorf("load .env: %w", err)
    }
    return FromEnv()
}

// FromEnv parses the process environment without touching .env files.
func FromEnv() (Config, error) {
    return parse("")
}

// FromEnvFor parses the environment like FromEnv but forces the store
// backend.  Tools that never open the database use it to skip the DB_*
// requirements.
func FromEnvFor(store string) (Config, error) {
    return parse(store)
}

func parse(store string) (Config, error) {
    var cfg Config
    if err := env.Parse(&cfg); err != nil {
        return Config{}, fmt.Errorf("parse env: %w", err)
    }
    if store != "" {
        cfg.Store = store
    }
    cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
    cfg.Cache.normalize()
    cfg.RateLimit.normalize()
    if err := cfg.validate(); err != nil {
        return Config{}, err
    }
    return cfg, nil
}

func (c Config) validate() error {
    switch c.Store {
    case StoreMemory:
        return nil
    case StoreMySQL:
        var missing []string
        if c.DBUser == "" {
            missing = append(missing, "DB_USER")
        }
        if c.DBName == "" {
            missing = append(missing, "DB_NAME")
        }
        if len(missing) > 0 {
            return fmt.Errorf("missing required env var(s) for mysql store: %s", strings.Join(missing, ", "))
        }
        return nil
    default:
        return fmt.Errorf("unknown STORE %q (want %s or %s)", c.Store, StoreMySQL, StoreMemory)
    }
}
